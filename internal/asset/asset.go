// asset.go - Asset identity for the shielded mint protocol.
//
// An asset is named by a fixed-length identifier derived from its public
// description (name, owner address, nonce). The identifier is the value the
// mint circuit binds into its public inputs, so its derivation and encoding
// are protocol constants.

package asset

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2s"
)

// IdentifierLength is the protocol-wide byte length of an asset identifier.
const IdentifierLength = 32

// identifierPersonalization domain-separates asset identifier derivation
// from every other BLAKE2s use in the protocol.
const identifierPersonalization = "shieldmint.asset.v1"

// ErrInvalidIdentifier is returned for identifiers no asset can carry.
var ErrInvalidIdentifier = errors.New("asset: invalid asset identifier")

// Identifier is the fixed-length byte string naming an asset type.
type Identifier [IdentifierLength]byte

// IsZero reports whether the identifier is all zero. The zero identifier is
// unreachable from Info.Identifier and therefore invalid on the wire.
func (id Identifier) IsZero() bool {
	return id == Identifier{}
}

func (id Identifier) String() string {
	return hex.EncodeToString(id[:])
}

// Bits expands the identifier into its little-endian bit sequence: bit k of
// byte j appears at position 8*j+k. This is the expansion the circuit packs
// into field elements, so the order is load-bearing.
func (id Identifier) Bits() [IdentifierLength * 8]bool {
	var bits [IdentifierLength * 8]bool
	for j, b := range id {
		for k := 0; k < 8; k++ {
			bits[8*j+k] = (b>>k)&1 == 1
		}
	}
	return bits
}

// AssetType wraps a validated identifier and exposes the asset-specific
// value commitment capability.
type AssetType struct {
	id Identifier
}

// FromIdentifier validates an identifier read from the wire and wraps it.
func FromIdentifier(id Identifier) (AssetType, error) {
	if id.IsZero() {
		return AssetType{}, ErrInvalidIdentifier
	}
	return AssetType{id: id}, nil
}

// Identifier returns the wrapped identifier.
func (a AssetType) Identifier() Identifier {
	return a.id
}

// PublicAddress is the address of an asset owner, derived from their
// proof generation key.
type PublicAddress [32]byte

// Info is the public description of an asset. Its derived identifier is
// what every note and proof about the asset refers to.
type Info struct {
	Name  string
	Owner PublicAddress
	Nonce uint8
}

// Identifier derives the asset identifier from the description.
func (i Info) Identifier() Identifier {
	h, err := blake2s.New256(nil)
	if err != nil {
		// blake2s.New256 only fails for bad key lengths; nil key cannot.
		panic(err)
	}
	h.Write([]byte(identifierPersonalization))
	h.Write(i.Owner[:])
	h.Write([]byte{i.Nonce})
	h.Write([]byte(i.Name))

	var id Identifier
	copy(id[:], h.Sum(nil))
	return id
}

// AssetType derives and validates the asset type for this description.
func (i Info) AssetType() (AssetType, error) {
	return FromIdentifier(i.Identifier())
}
