// notes.go - Note types feeding the mint proof.
//
// A create-asset note commits to an asset's description and owner; a
// mint-asset note commits to an amount of that asset. Both carry their own
// commitment randomness, drawn fresh at construction, and expose the MiMC
// commitment the circuit re-derives.

package notes

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/mimc"
	"github.com/pkg/errors"

	"github.com/yourorg/shieldmint/internal/asset"
)

// CreateAssetNote records the creation of an asset.
type CreateAssetNote struct {
	Info       asset.Info
	Randomness fr.Element
}

// NewCreateAssetNote builds a create-asset note with fresh commitment
// randomness.
func NewCreateAssetNote(info asset.Info) (*CreateAssetNote, error) {
	var r fr.Element
	if _, err := r.SetRandom(); err != nil {
		return nil, errors.Wrap(err, "drawing note randomness")
	}
	return &CreateAssetNote{Info: info, Randomness: r}, nil
}

// Commitment returns cm = MiMC(packed_id[0], packed_id[1], owner, r).
func (n *CreateAssetNote) Commitment() (fr.Element, error) {
	var owner fr.Element
	if err := owner.SetBytesCanonical(n.Info.Owner[:]); err != nil {
		return fr.Element{}, errors.Wrap(err, "owner address is not a canonical field element")
	}

	packed := asset.PackIdentifier(n.Info.Identifier())

	h := mimc.NewMiMC()
	for i := range packed {
		b := packed[i].Bytes()
		h.Write(b[:])
	}
	ob := owner.Bytes()
	h.Write(ob[:])
	rb := n.Randomness.Bytes()
	h.Write(rb[:])

	var cm fr.Element
	cm.SetBytes(h.Sum(nil))
	return cm, nil
}

// MintAssetNote records the minting of additional units of an asset.
type MintAssetNote struct {
	Info       asset.Info
	Value      uint64
	Randomness fr.Element
}

// NewMintAssetNote builds a mint-asset note with fresh commitment
// randomness.
func NewMintAssetNote(info asset.Info, value uint64) (*MintAssetNote, error) {
	var r fr.Element
	if _, err := r.SetRandom(); err != nil {
		return nil, errors.Wrap(err, "drawing note randomness")
	}
	return &MintAssetNote{Info: info, Value: value, Randomness: r}, nil
}

// Commitment returns cm = MiMC(packed_id[0], packed_id[1], value, r).
func (n *MintAssetNote) Commitment() fr.Element {
	packed := asset.PackIdentifier(n.Info.Identifier())

	var value fr.Element
	value.SetUint64(n.Value)

	h := mimc.NewMiMC()
	for i := range packed {
		b := packed[i].Bytes()
		h.Write(b[:])
	}
	vb := value.Bytes()
	h.Write(vb[:])
	rb := n.Randomness.Bytes()
	h.Write(rb[:])

	var cm fr.Element
	cm.SetBytes(h.Sum(nil))
	return cm
}
