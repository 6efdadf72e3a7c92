// valuecommitment.go - Hiding commitments to minted amounts.
//
// A value commitment is a Jubjub point V = value*H + blinding*R, where H is
// the asset-specific generator and R the fixed blinding base. Neither the
// value nor the blinding factor is recoverable from V alone.

package asset

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/mimc"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/twistededwards"
)

// blindingBaseScalarHex is the fixed discrete log of the blinding base R
// against the curve base point. The circuit multiplies the base by the same
// constant, so the two sides always agree on R.
const blindingBaseScalarHex = "52ab5cd0a44fea135b5ed03246f1c1b1a42e07ff609532480a341ec9b34861"

// BlindingBaseScalar returns a fresh copy of the blinding base scalar.
func BlindingBaseScalar() *big.Int {
	s, ok := new(big.Int).SetString(blindingBaseScalarHex, 16)
	if !ok {
		panic("asset: malformed blinding base scalar constant")
	}
	return s
}

// GenerateBlinding draws a fresh blinding factor uniformly from the Jubjub
// scalar field. It reads 64 bytes from the given source and wide-reduces
// them modulo the group order, so no modulo bias is introduced. Pass
// crypto/rand.Reader outside of tests.
func GenerateBlinding(rng io.Reader) (*big.Int, error) {
	var buf [64]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return nil, err
	}
	curve := twistededwards.GetEdwardsCurve()
	r := new(big.Int).SetBytes(buf[:])
	return r.Mod(r, &curve.Order), nil
}

// NewBlinding draws a blinding factor from the platform CSPRNG.
func NewBlinding() (*big.Int, error) {
	return GenerateBlinding(rand.Reader)
}

// GeneratorScalar derives the discrete log of the asset-specific generator
// H against the curve base point, as the MiMC digest of the packed
// identifier. The circuit performs the identical derivation on its public
// inputs.
func (a AssetType) GeneratorScalar() *big.Int {
	packed := PackIdentifier(a.id)

	h := mimc.NewMiMC()
	for i := range packed {
		b := packed[i].Bytes()
		h.Write(b[:])
	}

	var e fr.Element
	e.SetBytes(h.Sum(nil))
	return e.BigInt(new(big.Int))
}

// Generator returns the asset-specific value commitment generator H.
func (a AssetType) Generator() twistededwards.PointAffine {
	curve := twistededwards.GetEdwardsCurve()
	var p twistededwards.PointAffine
	p.ScalarMultiplication(&curve.Base, a.GeneratorScalar())
	return p
}

// BlindingBase returns the fixed generator R masking committed values.
func BlindingBase() twistededwards.PointAffine {
	curve := twistededwards.GetEdwardsCurve()
	var p twistededwards.PointAffine
	p.ScalarMultiplication(&curve.Base, BlindingBaseScalar())
	return p
}

// ValueCommitment computes V = value*H + blinding*R. Pure function of its
// inputs; callers draw the blinding factor fresh per commitment.
func (a AssetType) ValueCommitment(value uint64, blinding *big.Int) twistededwards.PointAffine {
	gen := a.Generator()
	base := BlindingBase()

	var vPart, rPart, out twistededwards.PointAffine
	vPart.ScalarMultiplication(&gen, new(big.Int).SetUint64(value))
	rPart.ScalarMultiplication(&base, blinding)
	out.Add(&vPart, &rPart)
	return out
}
