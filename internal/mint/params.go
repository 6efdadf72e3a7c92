// params.go - Building the prover-side mint bundle.
//
// Params is the secret-carrying half of the pipeline: it retains blinding
// randomness the public proof must never expose. The only way out is
// Finalize, which strips the secrets and self-verifies the result before
// letting it escape the minting path.

package mint

import (
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/twistededwards"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/pkg/errors"

	"github.com/yourorg/shieldmint/internal/asset"
	"github.com/yourorg/shieldmint/internal/keys"
	"github.com/yourorg/shieldmint/internal/merkle"
	"github.com/yourorg/shieldmint/internal/notes"
)

// Params is the prover-side bundle: the proof plus every public field the
// encoded form carries, and the retained secrets. Produced once by
// NewParams, consumed exactly once by Finalize, never transmitted.
type Params struct {
	proof groth16.Proof

	// Randomness of the mint-asset note commitment. Retained for forward
	// compatibility; nothing downstream reads it.
	mintNoteRandomness fr.Element

	createAssetCommitment fr.Element
	mintAssetCommitment   fr.Element
	valueCommitment       twistededwards.PointAffine
	assetType             asset.AssetType
	reserved              [ReservedLength]byte
	rootHash              fr.Element
}

// NewParams assembles the mint witness and proves it.
//
// It derives the proof generation key from the minting key, draws fresh
// value-commitment blinding, computes the value commitment, and invokes the
// proving system. Any prover failure aborts construction; no partial bundle
// is ever returned.
func NewParams(
	mintingKey keys.SpendingKey,
	createNote *notes.CreateAssetNote,
	mintNote *notes.MintAssetNote,
	anchor *merkle.Witness,
	prover ProofSystem,
) (*Params, error) {
	assetType, err := mintNote.Info.AssetType()
	if err != nil {
		return nil, err
	}

	createCommitment, err := createNote.Commitment()
	if err != nil {
		return nil, err
	}
	mintCommitment := mintNote.Commitment()

	blinding, err := asset.NewBlinding()
	if err != nil {
		return nil, errors.Wrap(err, "drawing value commitment blinding")
	}
	valueCommitment := assetType.ValueCommitment(mintNote.Value, blinding)

	w := &Witness{
		AssetType:          assetType,
		ProofGenerationKey: mintingKey.ProofGenerationKey(),
		CreateRandomness:   createNote.Randomness,
		MintRandomness:     mintNote.Randomness,
		Value:              mintNote.Value,
		ValueBlinding:      blinding,
		AuthPath:           anchor.AuthPath(),
		RootHash:           anchor.RootHash(),
		CreateCommitment:   createCommitment,
		MintCommitment:     mintCommitment,
		ValueCommitment:    valueCommitment,
	}

	proof, err := prover.Prove(w)
	if err != nil {
		return nil, err
	}

	return &Params{
		proof:                 proof,
		mintNoteRandomness:    mintNote.Randomness,
		createAssetCommitment: createCommitment,
		mintAssetCommitment:   mintCommitment,
		valueCommitment:       valueCommitment,
		assetType:             assetType,
		rootHash:              anchor.RootHash(),
	}, nil
}

// Finalize strips the secrets into a public Proof and immediately verifies
// it. The proof is returned only if that self-check passes, so no
// unverifiable proof ever leaves the minting path.
func (p *Params) Finalize(oracle VerifyingOracle) (*Proof, error) {
	proof := &Proof{
		proof:                 p.proof,
		createAssetCommitment: p.createAssetCommitment,
		mintAssetCommitment:   p.mintAssetCommitment,
		valueCommitment:       p.valueCommitment,
		assetType:             p.assetType,
		rootHash:              p.rootHash,
	}
	if err := proof.Verify(oracle); err != nil {
		return nil, err
	}
	return proof, nil
}

// WriteSignatureFields serializes the bundle's signature fields in the
// canonical layout. Byte-identical to the encoding of the finalized Proof.
func (p *Params) WriteSignatureFields(w io.Writer) (int64, error) {
	return writeSignatureFields(
		w,
		p.proof,
		p.createAssetCommitment,
		p.mintAssetCommitment,
		p.valueCommitment,
		p.assetType.Identifier(),
		p.reserved,
		p.rootHash,
	)
}
