// main.go - CLI for the shielded mint proof pipeline.
//
// Three subcommands cover the full lifecycle:
//
//	setup   compile the circuit, run the trusted setup, persist artifacts
//	mint    build a demo mint bundle and write its canonical encoding
//	verify  decode a bundle and check its proof
package main

import (
	"encoding/hex"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yourorg/shieldmint/internal/asset"
	"github.com/yourorg/shieldmint/internal/keys"
	"github.com/yourorg/shieldmint/internal/merkle"
	"github.com/yourorg/shieldmint/internal/mint"
	"github.com/yourorg/shieldmint/internal/notes"
)

var (
	configPath string
	cfg        *Config
	logger     zerolog.Logger
)

func main() {
	// A .env file can override the environment; absence is not an error.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "mintd",
		Short: "Shielded asset mint proofs over BLS12-381",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = LoadConfig(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger = NewLogger(cfg.LogLevel)
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "mintd.json", "config file path")

	root.AddCommand(setupCmd(), mintCmd(), verifyCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Compile the mint circuit and persist the proving artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Info().Msg("compiling circuit and running setup, this takes a while")
			system, err := mint.Setup()
			if err != nil {
				return err
			}
			if err := system.Save(cfg.ParamsDir); err != nil {
				return err
			}
			logger.Info().Str("dir", cfg.ParamsDir).Msg("proving artifacts saved")
			return nil
		},
	}
}

func mintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mint",
		Short: "Build a mint bundle for the configured demo asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			system, err := mint.Load(cfg.ParamsDir)
			if err != nil {
				return err
			}

			key, err := keys.GenerateSpendingKey()
			if err != nil {
				return err
			}
			info := asset.Info{
				Name:  cfg.AssetName,
				Owner: key.PublicAddress(),
				Nonce: cfg.AssetNonce,
			}
			id := info.Identifier()
			logger.Info().
				Str("asset", cfg.AssetName).
				Str("identifier", hex.EncodeToString(id[:])).
				Uint64("value", cfg.MintValue).
				Msg("building mint bundle")

			createNote, err := notes.NewCreateAssetNote(info)
			if err != nil {
				return err
			}
			createCommitment, err := createNote.Commitment()
			if err != nil {
				return err
			}

			tree := merkle.NewTree()
			index := tree.Append(createCommitment)
			anchor, err := tree.Witness(index)
			if err != nil {
				return err
			}

			mintNote, err := notes.NewMintAssetNote(info, cfg.MintValue)
			if err != nil {
				return err
			}

			params, err := mint.NewParams(key, createNote, mintNote, anchor, system)
			if err != nil {
				return err
			}
			proof, err := params.Finalize(system)
			if err != nil {
				return err
			}

			out, err := os.Create(cfg.ProofPath)
			if err != nil {
				return err
			}
			defer out.Close()
			n, err := proof.WriteTo(out)
			if err != nil {
				return err
			}

			logger.Info().
				Str("path", cfg.ProofPath).
				Int64("bytes", n).
				Msg("mint bundle written")
			return nil
		},
	}
}

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Decode a mint bundle and verify its proof",
		RunE: func(cmd *cobra.Command, args []string) error {
			system, err := mint.LoadVerifier(cfg.ParamsDir)
			if err != nil {
				return err
			}

			in, err := os.Open(cfg.ProofPath)
			if err != nil {
				return err
			}
			defer in.Close()

			proof, err := mint.ReadProof(in)
			if err != nil {
				logger.Error().Err(err).Msg("bundle rejected at decode")
				return err
			}
			if err := proof.Verify(system); err != nil {
				logger.Error().Err(err).Msg("bundle rejected at verification")
				return err
			}

			id := proof.AssetType().Identifier()
			root := proof.RootHash()
			logger.Info().
				Str("identifier", hex.EncodeToString(id[:])).
				Str("root", root.String()).
				Msg("mint bundle verified")
			return nil
		},
	}
}
