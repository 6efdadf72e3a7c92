package mint

import (
	"bytes"
	"sync"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/shieldmint/internal/asset"
	"github.com/yourorg/shieldmint/internal/keys"
	"github.com/yourorg/shieldmint/internal/merkle"
	"github.com/yourorg/shieldmint/internal/notes"
)

// trailerLength is everything after the proof in the canonical encoding:
// three 32-byte scalars, the 32-byte point, the identifier, the reserved
// slot and the root hash.
const trailerLength = 32 + 32 + 32 + asset.IdentifierLength + ReservedLength + 32

// Compiling the circuit and running the Groth16 setup dominates the suite,
// so every test shares one system and one finalized proof.
var (
	sysOnce sync.Once
	sys     *System
	sysErr  error

	fixOnce sync.Once
	fix     *fixture
	fixErr  error
)

type fixture struct {
	key        keys.SpendingKey
	info       asset.Info
	createNote *notes.CreateAssetNote
	mintNote   *notes.MintAssetNote
	anchor     *merkle.Witness
	params     *Params
	proof      *Proof
	encoded    []byte
}

func testSystem(t *testing.T) *System {
	t.Helper()
	sysOnce.Do(func() { sys, sysErr = Setup() })
	require.NoError(t, sysErr)
	return sys
}

func buildFixture(s *System) (*fixture, error) {
	key, err := keys.GenerateSpendingKey()
	if err != nil {
		return nil, err
	}
	info := asset.Info{Name: "testcoin", Owner: key.PublicAddress(), Nonce: 1}

	createNote, err := notes.NewCreateAssetNote(info)
	if err != nil {
		return nil, err
	}
	createCommitment, err := createNote.Commitment()
	if err != nil {
		return nil, err
	}

	tree := merkle.NewTree()
	index := tree.Append(createCommitment)
	anchor, err := tree.Witness(index)
	if err != nil {
		return nil, err
	}

	mintNote, err := notes.NewMintAssetNote(info, 1000)
	if err != nil {
		return nil, err
	}

	params, err := NewParams(key, createNote, mintNote, anchor, s)
	if err != nil {
		return nil, err
	}
	proof, err := params.Finalize(s)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, err
	}

	return &fixture{
		key:        key,
		info:       info,
		createNote: createNote,
		mintNote:   mintNote,
		anchor:     anchor,
		params:     params,
		proof:      proof,
		encoded:    buf.Bytes(),
	}, nil
}

func testFixture(t *testing.T) *fixture {
	t.Helper()
	s := testSystem(t)
	fixOnce.Do(func() { fix, fixErr = buildFixture(s) })
	require.NoError(t, fixErr)
	return fix
}

func TestMintEndToEnd(t *testing.T) {
	f := testFixture(t)

	// The finalized proof self-verified; an independent decode-then-verify
	// must also pass.
	decoded, err := ReadProof(bytes.NewReader(f.encoded))
	require.NoError(t, err)
	require.NoError(t, decoded.Verify(testSystem(t)))
}

func TestEncodedLength(t *testing.T) {
	f := testFixture(t)

	// Everything after the proof's own serialization is the fixed trailer.
	r := bytes.NewReader(f.encoded)
	gproof := groth16.NewProof(ecc.BLS12_381)
	_, err := gproof.ReadFrom(r)
	require.NoError(t, err)
	assert.Equal(t, trailerLength, r.Len())
}

func TestRoundTrip(t *testing.T) {
	f := testFixture(t)

	decoded, err := ReadProof(bytes.NewReader(f.encoded))
	require.NoError(t, err)

	a, b := f.proof.CreateAssetCommitment(), decoded.CreateAssetCommitment()
	assert.True(t, a.Equal(&b))
	a, b = f.proof.MintAssetCommitment(), decoded.MintAssetCommitment()
	assert.True(t, a.Equal(&b))
	a, b = f.proof.RootHash(), decoded.RootHash()
	assert.True(t, a.Equal(&b))
	vc, dvc := f.proof.ValueCommitment(), decoded.ValueCommitment()
	assert.True(t, vc.Equal(&dvc))
	assert.Equal(t, f.proof.AssetType().Identifier(), decoded.AssetType().Identifier())

	var reencoded bytes.Buffer
	_, err = decoded.WriteTo(&reencoded)
	require.NoError(t, err)
	assert.Equal(t, f.encoded, reencoded.Bytes())
}

func TestSigningBytesMatchWireBytes(t *testing.T) {
	f := testFixture(t)

	var sig bytes.Buffer
	_, err := f.params.WriteSignatureFields(&sig)
	require.NoError(t, err)
	assert.Equal(t, f.encoded, sig.Bytes())
}

func TestReservedSlotIsZeroOnWire(t *testing.T) {
	f := testFixture(t)

	trailer := f.encoded[len(f.encoded)-trailerLength:]
	reserved := trailer[96+asset.IdentifierLength : 96+asset.IdentifierLength+ReservedLength]
	assert.Equal(t, make([]byte, ReservedLength), reserved)
}

func TestTamperSensitivity(t *testing.T) {
	f := testFixture(t)
	s := testSystem(t)
	trailerStart := len(f.encoded) - trailerLength

	regions := map[string]int{
		"create asset commitment": trailerStart,
		"mint asset commitment":   trailerStart + 32,
		"value commitment":        trailerStart + 64,
		"asset identifier":        trailerStart + 96,
		"root hash":               trailerStart + 96 + asset.IdentifierLength + ReservedLength,
	}

	for name, offset := range regions {
		t.Run(name, func(t *testing.T) {
			tampered := append([]byte(nil), f.encoded...)
			tampered[offset+7] ^= 0x01

			decoded, err := ReadProof(bytes.NewReader(tampered))
			if err != nil {
				require.ErrorIs(t, err, ErrDecode)
				return
			}
			require.ErrorIs(t, decoded.Verify(s), ErrVerification)
		})
	}
}

func TestWrongRootFailsVerification(t *testing.T) {
	f := testFixture(t)
	s := testSystem(t)

	var unrelated fr.Element
	_, err := unrelated.SetRandom()
	require.NoError(t, err)

	tampered := append([]byte(nil), f.encoded...)
	rb := unrelated.Bytes()
	copy(tampered[len(tampered)-32:], rb[:])

	decoded, err := ReadProof(bytes.NewReader(tampered))
	require.NoError(t, err)
	require.ErrorIs(t, decoded.Verify(s), ErrVerification)
}

func TestTruncatedEncodingFailsDecode(t *testing.T) {
	f := testFixture(t)

	// Cut mid value commitment.
	cut := len(f.encoded) - trailerLength + 64 + 16
	_, err := ReadProof(bytes.NewReader(f.encoded[:cut]))
	require.ErrorIs(t, err, ErrDecode)
}

func TestValueCommitmentsUnlinkableAcrossBuilds(t *testing.T) {
	f := testFixture(t)
	s := testSystem(t)

	// Same notes, same anchor, fresh blinding: a second build must commit
	// to the value differently yet still verify.
	params, err := NewParams(f.key, f.createNote, f.mintNote, f.anchor, s)
	require.NoError(t, err)
	proof, err := params.Finalize(s)
	require.NoError(t, err)

	vc1, vc2 := f.proof.ValueCommitment(), proof.ValueCommitment()
	assert.False(t, vc1.Equal(&vc2))
}

func TestVerifyRejectsShortInputVector(t *testing.T) {
	f := testFixture(t)
	s := testSystem(t)

	inputs := f.proof.PublicInputs()
	require.Len(t, inputs, NumPublicInputs)
	require.ErrorIs(t, s.Verify(nil, inputs[:3]), ErrVerification)
}

func TestPublicInputOrdering(t *testing.T) {
	f := testFixture(t)

	inputs := f.proof.PublicInputs()
	packed := asset.PackIdentifier(f.proof.AssetType().Identifier())

	assert.True(t, inputs[0].Equal(&packed[0]))
	assert.True(t, inputs[1].Equal(&packed[1]))
	cc := f.proof.CreateAssetCommitment()
	assert.True(t, inputs[2].Equal(&cc))
	rh := f.proof.RootHash()
	assert.True(t, inputs[3].Equal(&rh))
	vc := f.proof.ValueCommitment()
	assert.True(t, inputs[4].Equal(&vc.X))
	assert.True(t, inputs[5].Equal(&vc.Y))
	mc := f.proof.MintAssetCommitment()
	assert.True(t, inputs[6].Equal(&mc))
}
