package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/shieldmint/internal/asset"
	"github.com/yourorg/shieldmint/internal/keys"
)

func testInfo(t *testing.T) asset.Info {
	t.Helper()
	key, err := keys.GenerateSpendingKey()
	require.NoError(t, err)
	return asset.Info{Name: "testcoin", Owner: key.PublicAddress(), Nonce: 1}
}

func TestCreateNoteCommitmentHidesRandomness(t *testing.T) {
	info := testInfo(t)

	n1, err := NewCreateAssetNote(info)
	require.NoError(t, err)
	n2, err := NewCreateAssetNote(info)
	require.NoError(t, err)

	c1, err := n1.Commitment()
	require.NoError(t, err)
	c2, err := n2.Commitment()
	require.NoError(t, err)
	assert.False(t, c1.Equal(&c2), "fresh randomness must change the commitment")
}

func TestCreateNoteCommitmentDeterministic(t *testing.T) {
	n, err := NewCreateAssetNote(testInfo(t))
	require.NoError(t, err)

	a, err := n.Commitment()
	require.NoError(t, err)
	b, err := n.Commitment()
	require.NoError(t, err)
	assert.True(t, a.Equal(&b))
}

func TestMintNoteCommitmentBindsValue(t *testing.T) {
	info := testInfo(t)

	n, err := NewMintAssetNote(info, 1000)
	require.NoError(t, err)

	other := *n
	other.Value = 1001

	c1 := n.Commitment()
	c2 := other.Commitment()
	assert.False(t, c1.Equal(&c2), "commitment must bind the minted value")
}

func TestCommitmentsAreIndependent(t *testing.T) {
	info := testInfo(t)

	create, err := NewCreateAssetNote(info)
	require.NoError(t, err)
	mint, err := NewMintAssetNote(info, 7)
	require.NoError(t, err)

	cc, err := create.Commitment()
	require.NoError(t, err)
	mc := mint.Commitment()
	assert.False(t, cc.Equal(&mc))
}
