// circuit.go - The Groth16 statement authorizing an asset mint.
//
// Public inputs are declared in the protocol order the verifier rebuilds:
// packed identifier (2), create-asset commitment, root hash, value
// commitment x, value commitment y, mint-asset commitment. Reordering these
// fields is a breaking protocol change.

package mint

import (
	tedwards "github.com/consensys/gnark-crypto/ecc/twistededwards"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/native/twistededwards"
	"github.com/consensys/gnark/std/hash/mimc"

	"github.com/yourorg/shieldmint/internal/asset"
	"github.com/yourorg/shieldmint/internal/merkle"
)

// NumPublicInputs is the length of the public-input vector: a protocol
// constant shared with the verifier.
const NumPublicInputs = 7

// identifierBitCount is the number of witnessed identifier bits.
const identifierBitCount = asset.IdentifierLength * 8

// valueBitCount bounds minted amounts to 64 bits.
const valueBitCount = 64

// Circuit proves that a mint of Value units of the identified asset is
// authorized: the prover knows the proof generation key behind the owner
// address committed in the create-asset note, that note is accumulated
// under the public root, and the public value commitment point hides
// exactly Value.
type Circuit struct {
	PackedIdentifier [asset.PackedCount]frontend.Variable `gnark:",public"`
	CreateCommitment frontend.Variable                    `gnark:",public"`
	RootHash         frontend.Variable                    `gnark:",public"`
	ValueCommitmentX frontend.Variable                    `gnark:",public"`
	ValueCommitmentY frontend.Variable                    `gnark:",public"`
	MintCommitment   frontend.Variable                    `gnark:",public"`

	IdentifierBits     [identifierBitCount]frontend.Variable
	ProofGenerationKey frontend.Variable
	CreateRandomness   frontend.Variable
	MintRandomness     frontend.Variable
	Value              frontend.Variable
	ValueBlinding      frontend.Variable
	Siblings           [merkle.Depth]frontend.Variable
	PathBits           [merkle.Depth]frontend.Variable
}

func (c *Circuit) Define(api frontend.API) error {
	// The packed public inputs must be exactly the multipacking of the
	// witnessed identifier bits.
	for i := range c.IdentifierBits {
		api.AssertIsBoolean(c.IdentifierBits[i])
	}
	api.AssertIsEqual(
		c.PackedIdentifier[0],
		api.FromBinary(c.IdentifierBits[:asset.PackChunkBits]...),
	)
	api.AssertIsEqual(
		c.PackedIdentifier[1],
		api.FromBinary(c.IdentifierBits[asset.PackChunkBits:]...),
	)

	hasher, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}

	// Owner address from the proof generation key.
	hasher.Write(c.ProofGenerationKey)
	owner := hasher.Sum()

	// Create-asset note commitment.
	hasher.Reset()
	hasher.Write(c.PackedIdentifier[0], c.PackedIdentifier[1], owner, c.CreateRandomness)
	createCommitment := hasher.Sum()
	api.AssertIsEqual(c.CreateCommitment, createCommitment)

	// Mint-asset note commitment.
	hasher.Reset()
	hasher.Write(c.PackedIdentifier[0], c.PackedIdentifier[1], c.Value, c.MintRandomness)
	api.AssertIsEqual(c.MintCommitment, hasher.Sum())

	// The create-asset commitment is accumulated under the anchor.
	node := createCommitment
	for i := 0; i < merkle.Depth; i++ {
		api.AssertIsBoolean(c.PathBits[i])
		left := api.Select(c.PathBits[i], c.Siblings[i], node)
		right := api.Select(c.PathBits[i], node, c.Siblings[i])
		hasher.Reset()
		hasher.Write(left, right)
		node = hasher.Sum()
	}
	api.AssertIsEqual(c.RootHash, node)

	// Minted amounts fit in 64 bits.
	api.ToBinary(c.Value, valueBitCount)

	// Value commitment: V = value*H_asset + blinding*R on Jubjub.
	curve, err := twistededwards.NewEdCurve(api, tedwards.BLS12_381)
	if err != nil {
		return err
	}
	params := curve.Params()
	base := twistededwards.Point{X: params.Base[0], Y: params.Base[1]}

	hasher.Reset()
	hasher.Write(c.PackedIdentifier[0], c.PackedIdentifier[1])
	assetGenerator := curve.ScalarMul(base, hasher.Sum())
	blindingBase := curve.ScalarMul(base, asset.BlindingBaseScalar())

	valuePart := curve.ScalarMul(assetGenerator, c.Value)
	blindingPart := curve.ScalarMul(blindingBase, c.ValueBlinding)
	commitment := curve.Add(valuePart, blindingPart)

	api.AssertIsEqual(c.ValueCommitmentX, commitment.X)
	api.AssertIsEqual(c.ValueCommitmentY, commitment.Y)

	return nil
}
