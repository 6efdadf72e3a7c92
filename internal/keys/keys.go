// keys.go - Minting capability keys.
//
// A spending key is the root secret of a minting capability. The proof
// generation key derived from it is what actually enters the mint witness;
// the public address derived in turn is what create-asset notes commit to
// and what the circuit re-derives to prove ownership.

package keys

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/mimc"
	"golang.org/x/crypto/blake2b"

	"github.com/yourorg/shieldmint/internal/asset"
)

// proofGenerationTag domain-separates the proof generation key expansion.
const proofGenerationTag = "shieldmint.pgk.v1"

// SpendingKey is the root secret of a minting capability.
type SpendingKey [32]byte

// GenerateSpendingKey draws a spending key from the platform CSPRNG.
func GenerateSpendingKey() (SpendingKey, error) {
	var k SpendingKey
	if _, err := io.ReadFull(rand.Reader, k[:]); err != nil {
		return SpendingKey{}, err
	}
	return k, nil
}

// ProofGenerationKey expands the spending key into the scalar the mint
// circuit witnesses. BLAKE2b-512 output is wide-reduced into the field, so
// the result is unbiased.
func (k SpendingKey) ProofGenerationKey() fr.Element {
	h, err := blake2b.New512(nil)
	if err != nil {
		panic(err)
	}
	h.Write([]byte(proofGenerationTag))
	h.Write(k[:])

	wide := new(big.Int).SetBytes(h.Sum(nil))
	wide.Mod(wide, fr.Modulus())

	var pgk fr.Element
	pgk.SetBigInt(wide)
	return pgk
}

// PublicAddress derives the owner address committed into create-asset
// notes: the MiMC digest of the proof generation key. The circuit performs
// the same derivation from the witnessed key.
func (k SpendingKey) PublicAddress() asset.PublicAddress {
	pgk := k.ProofGenerationKey()
	b := pgk.Bytes()

	h := mimc.NewMiMC()
	h.Write(b[:])

	var addr asset.PublicAddress
	copy(addr[:], h.Sum(nil))
	return addr
}
