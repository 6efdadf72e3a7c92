// pack.go - Deterministic bit-packing of asset identifiers into field
// elements.
//
// The verifier feeds the packed identifier to the proof check as the first
// two public inputs, and the circuit recomputes the same packing from the
// witnessed identifier bits. The two sides must agree bit for bit; changing
// the chunk width or bit order is a breaking protocol change.

package asset

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// PackChunkBits is the number of identifier bits packed into one field
// element: one less than the field bit size, so every chunk is strictly
// smaller than the modulus.
const PackChunkBits = fr.Bits - 1

// PackedCount is the number of field elements a packed identifier occupies.
const PackedCount = 2

// PackIdentifier packs the little-endian bit expansion of the identifier
// into exactly two field elements. Bit k of chunk c contributes 2^k to
// element c. Pure and deterministic.
func PackIdentifier(id Identifier) [PackedCount]fr.Element {
	bits := id.Bits()

	var packed [PackedCount]fr.Element
	for c := 0; c < PackedCount; c++ {
		v := new(big.Int)
		for k := 0; k < PackChunkBits; k++ {
			i := c*PackChunkBits + k
			if i >= len(bits) {
				break
			}
			if bits[i] {
				v.SetBit(v, k, 1)
			}
		}
		packed[c].SetBigInt(v)
	}
	return packed
}
