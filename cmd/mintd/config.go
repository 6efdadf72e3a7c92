// config.go - Configuration for the mint tool.
package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Config holds the runtime settings of the mint tool.
type Config struct {
	// File paths
	ParamsDir string `json:"params_dir"`
	ProofPath string `json:"proof_path"`

	// Demo asset settings
	AssetName  string `json:"asset_name"`
	AssetNonce uint8  `json:"asset_nonce"`
	MintValue  uint64 `json:"mint_value"`

	// Logging
	LogLevel string `json:"log_level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ParamsDir:  "params",
		ProofPath:  "mint_proof.bin",
		AssetName:  "demo-asset",
		AssetNonce: 0,
		MintValue:  1000,
		LogLevel:   "info",
	}
}

// LoadConfig loads configuration from file, creating the default on first
// run.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.Open(configPath)
		if err != nil {
			return nil, errors.Wrap(err, "opening config file")
		}
		defer file.Close()

		var config Config
		if err := json.NewDecoder(file).Decode(&config); err != nil {
			return nil, errors.Wrap(err, "decoding config file")
		}
		return &config, nil
	}

	config := DefaultConfig()
	if err := SaveConfig(config, configPath); err != nil {
		return nil, errors.Wrap(err, "saving default config")
	}
	return config, nil
}

// SaveConfig writes configuration to file.
func SaveConfig(config *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	file, err := os.Create(configPath)
	if err != nil {
		return errors.Wrap(err, "creating config file")
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(config)
}

// Validate checks the configuration for obvious misuse.
func (c *Config) Validate() error {
	if c.ParamsDir == "" {
		return errors.New("params_dir must not be empty")
	}
	if c.ProofPath == "" {
		return errors.New("proof_path must not be empty")
	}
	if c.AssetName == "" {
		return errors.New("asset_name must not be empty")
	}
	if c.MintValue == 0 {
		return errors.New("mint_value must be positive")
	}
	return nil
}
