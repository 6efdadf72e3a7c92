package merkle

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(v uint64) fr.Element {
	var e fr.Element
	e.SetUint64(v)
	return e
}

// foldPath recomputes the root from a leaf and its authentication path,
// mirroring the circuit's node-for-node walk.
func foldPath(l fr.Element, path [Depth]PathNode) fr.Element {
	node := l
	for _, p := range path {
		if p.Right {
			node = hashNode(p.Sibling, node)
		} else {
			node = hashNode(node, p.Sibling)
		}
	}
	return node
}

func TestWitnessRecomputesRoot(t *testing.T) {
	tree := NewTree()
	leaves := []fr.Element{leaf(1), leaf(2), leaf(3), leaf(4), leaf(5)}
	for _, l := range leaves {
		tree.Append(l)
	}

	for i, l := range leaves {
		w, err := tree.Witness(i)
		require.NoError(t, err)

		root := foldPath(l, w.AuthPath())
		wr := w.RootHash()
		assert.True(t, root.Equal(&wr), "leaf %d path must fold to the root", i)

		tr := tree.Root()
		assert.True(t, wr.Equal(&tr), "witness root must match the tree root")
	}
}

func TestRootChangesWithLeaves(t *testing.T) {
	tree := NewTree()
	empty := tree.Root()

	tree.Append(leaf(1))
	one := tree.Root()
	assert.False(t, empty.Equal(&one))

	tree.Append(leaf(2))
	two := tree.Root()
	assert.False(t, one.Equal(&two))
}

func TestWitnessOutOfRange(t *testing.T) {
	tree := NewTree()
	_, err := tree.Witness(0)
	require.Error(t, err)

	tree.Append(leaf(9))
	_, err = tree.Witness(1)
	require.Error(t, err)
	_, err = tree.Witness(-1)
	require.Error(t, err)
}

func TestSize(t *testing.T) {
	tree := NewTree()
	require.Equal(t, 0, tree.Size())
	tree.Append(leaf(1))
	tree.Append(leaf(2))
	require.Equal(t, 2, tree.Size())
}
