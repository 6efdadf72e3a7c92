// witness.go - The ephemeral private witness behind one mint proof.

package mint

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/twistededwards"
	"github.com/consensys/gnark/frontend"

	"github.com/yourorg/shieldmint/internal/asset"
	"github.com/yourorg/shieldmint/internal/merkle"
)

// Witness gathers everything one proof needs: the secrets, the Merkle
// anchor, and the public values the statement is bound to. It exists only
// for the duration of a single Prove call and is never serialized.
type Witness struct {
	AssetType          asset.AssetType
	ProofGenerationKey fr.Element
	CreateRandomness   fr.Element
	MintRandomness     fr.Element
	Value              uint64
	ValueBlinding      *big.Int
	AuthPath           [merkle.Depth]merkle.PathNode
	RootHash           fr.Element
	CreateCommitment   fr.Element
	MintCommitment     fr.Element
	ValueCommitment    twistededwards.PointAffine
}

// assignment maps the witness onto the circuit, public and private slots
// alike.
func (w *Witness) assignment() *Circuit {
	c := &Circuit{
		CreateCommitment:   w.CreateCommitment,
		RootHash:           w.RootHash,
		ValueCommitmentX:   w.ValueCommitment.X,
		ValueCommitmentY:   w.ValueCommitment.Y,
		MintCommitment:     w.MintCommitment,
		ProofGenerationKey: w.ProofGenerationKey,
		CreateRandomness:   w.CreateRandomness,
		MintRandomness:     w.MintRandomness,
		Value:              w.Value,
		ValueBlinding:      w.ValueBlinding,
	}

	packed := asset.PackIdentifier(w.AssetType.Identifier())
	for i := range packed {
		c.PackedIdentifier[i] = packed[i]
	}

	bits := w.AssetType.Identifier().Bits()
	for i, bit := range bits {
		if bit {
			c.IdentifierBits[i] = 1
		} else {
			c.IdentifierBits[i] = 0
		}
	}

	for i, node := range w.AuthPath {
		c.Siblings[i] = node.Sibling
		if node.Right {
			c.PathBits[i] = 1
		} else {
			c.PathBits[i] = 0
		}
	}

	return c
}

var _ frontend.Circuit = (*Circuit)(nil)
