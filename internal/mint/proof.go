// proof.go - The public mint proof bundle, its canonical encoding, and the
// verifier.
//
// Wire layout, fixed order, no framing beyond what the proof's own
// serializer embeds:
//
//	[proof][create_asset_commitment:32][mint_asset_commitment:32]
//	[value_commitment:32][asset_identifier:32][reserved:12][root_hash:32]
//
// The same bytes serve signing and transmission; the two paths must never
// diverge.

package mint

import (
	"io"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/twistededwards"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/pkg/errors"

	"github.com/yourorg/shieldmint/internal/asset"
)

// ReservedLength is the width of the reserved wire slot. The slot is
// semantically inert but keeps its position and width.
const ReservedLength = 12

// Proof is the public mint bundle: every secret stripped, immutable, and
// the only representation that goes on the wire. Instances from Finalize
// are pre-verified; instances from ReadProof are NOT, and the caller must
// run Verify before trusting them.
type Proof struct {
	proof                 groth16.Proof
	createAssetCommitment fr.Element
	mintAssetCommitment   fr.Element
	valueCommitment       twistededwards.PointAffine
	assetType             asset.AssetType
	reserved              [ReservedLength]byte
	rootHash              fr.Element
}

// CreateAssetCommitment returns the commitment of the create-asset note.
func (p *Proof) CreateAssetCommitment() fr.Element { return p.createAssetCommitment }

// MintAssetCommitment returns the commitment of the mint-asset note.
func (p *Proof) MintAssetCommitment() fr.Element { return p.mintAssetCommitment }

// ValueCommitment returns the hiding commitment to the minted amount.
func (p *Proof) ValueCommitment() twistededwards.PointAffine { return p.valueCommitment }

// AssetType returns the asset this mint refers to.
func (p *Proof) AssetType() asset.AssetType { return p.assetType }

// RootHash returns the Merkle anchor the create-asset note was proven
// against.
func (p *Proof) RootHash() fr.Element { return p.rootHash }

// WriteTo encodes the bundle in the canonical layout.
func (p *Proof) WriteTo(w io.Writer) (int64, error) {
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

// ReadProof decodes a bundle from its canonical encoding. Decoding is
// all-or-nothing: any field failing canonical-form validation rejects the
// whole read with an ErrDecode-classified error. The result is not
// verified; run Verify before trusting it.
func ReadProof(r io.Reader) (*Proof, error) {
	p := &Proof{proof: groth16.NewProof(ecc.BLS12_381)}

	if _, err := p.proof.ReadFrom(r); err != nil {
		return nil, decodeErr(err, "proof")
	}

	var err error
	if p.createAssetCommitment, err = readScalar(r); err != nil {
		return nil, decodeErr(err, "create asset commitment")
	}
	if p.mintAssetCommitment, err = readScalar(r); err != nil {
		return nil, decodeErr(err, "mint asset commitment")
	}

	var pointBytes [32]byte
	if _, err := io.ReadFull(r, pointBytes[:]); err != nil {
		return nil, decodeErr(err, "value commitment")
	}
	if _, err := p.valueCommitment.SetBytes(pointBytes[:]); err != nil {
		return nil, decodeErr(err, "value commitment")
	}
	if !p.valueCommitment.IsOnCurve() {
		return nil, decodeErr(errors.New("point not on curve"), "value commitment")
	}

	var id asset.Identifier
	if _, err := io.ReadFull(r, id[:]); err != nil {
		return nil, decodeErr(err, "asset identifier")
	}
	if p.assetType, err = asset.FromIdentifier(id); err != nil {
		return nil, decodeErr(err, "asset identifier")
	}

	if _, err := io.ReadFull(r, p.reserved[:]); err != nil {
		return nil, decodeErr(err, "reserved slot")
	}

	if p.rootHash, err = readScalar(r); err != nil {
		return nil, decodeErr(err, "root hash")
	}

	return p, nil
}

// PublicInputs rebuilds the protocol-mandated public-input vector:
//
//	[packed_id[0], packed_id[1], create_commitment, root_hash,
//	 value_commitment.x, value_commitment.y, mint_commitment]
//
// The ordering is a protocol constant; reordering it is a breaking change.
func (p *Proof) PublicInputs() []fr.Element {
	packed := asset.PackIdentifier(p.assetType.Identifier())

	inputs := make([]fr.Element, NumPublicInputs)
	inputs[0] = packed[0]
	inputs[1] = packed[1]
	inputs[2] = p.createAssetCommitment
	inputs[3] = p.rootHash
	inputs[4] = p.valueCommitment.X
	inputs[5] = p.valueCommitment.Y
	inputs[6] = p.mintAssetCommitment
	return inputs
}

// Verify checks the proof against its reconstructed public inputs. Any
// cryptographic failure surfaces as ErrVerification; success returns nil.
func (p *Proof) Verify(oracle VerifyingOracle) error {
	return oracle.Verify(p.proof, p.PublicInputs())
}

func writeSignatureFields(
	w io.Writer,
	proof groth16.Proof,
	createCommitment fr.Element,
	mintCommitment fr.Element,
	valueCommitment twistededwards.PointAffine,
	id asset.Identifier,
	reserved [ReservedLength]byte,
	rootHash fr.Element,
) (int64, error) {
	total, err := proof.WriteTo(w)
	if err != nil {
		return total, err
	}

	writeField := func(b []byte) error {
		n, err := w.Write(b)
		total += int64(n)
		return err
	}

	cb := createCommitment.Bytes()
	if err := writeField(cb[:]); err != nil {
		return total, err
	}
	mb := mintCommitment.Bytes()
	if err := writeField(mb[:]); err != nil {
		return total, err
	}
	if err := writeField(valueCommitment.Marshal()); err != nil {
		return total, err
	}
	if err := writeField(id[:]); err != nil {
		return total, err
	}
	if err := writeField(reserved[:]); err != nil {
		return total, err
	}
	rb := rootHash.Bytes()
	if err := writeField(rb[:]); err != nil {
		return total, err
	}
	return total, nil
}

func readScalar(r io.Reader) (fr.Element, error) {
	var buf [fr.Bytes]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return fr.Element{}, err
	}
	var e fr.Element
	if err := e.SetBytesCanonical(buf[:]); err != nil {
		return fr.Element{}, err
	}
	return e, nil
}

func decodeErr(err error, field string) error {
	return errors.Wrapf(ErrDecode, "%s: %v", field, err)
}
