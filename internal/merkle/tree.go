// tree.go - Fixed-depth MiMC Merkle accumulator over note commitments.
//
// The mint circuit recomputes an authentication path node for node, so the
// hashing layout here (left-then-right MiMC, zero-subtree padding) is part
// of the protocol, not an implementation detail.

package merkle

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/mimc"
	"github.com/pkg/errors"
)

// Depth is the fixed height of the accumulator.
const Depth = 32

// PathNode is one level of an authentication path. Right reports whether
// the node on the path is the right child at this level.
type PathNode struct {
	Sibling fr.Element
	Right   bool
}

// Witness anchors one leaf: the authentication path up to the root that was
// current when the witness was taken.
type Witness struct {
	Path [Depth]PathNode
	root fr.Element
}

// RootHash returns the anchored root.
func (w *Witness) RootHash() fr.Element {
	return w.root
}

// AuthPath returns the authentication path, leaf level first.
func (w *Witness) AuthPath() [Depth]PathNode {
	return w.Path
}

// Tree is an append-only accumulator. Absent subtrees hash as all-zero
// leaves.
type Tree struct {
	leaves []fr.Element
	zero   [Depth + 1]fr.Element
}

// NewTree returns an empty accumulator with its zero-subtree hashes
// precomputed.
func NewTree() *Tree {
	t := &Tree{}
	for d := 0; d < Depth; d++ {
		t.zero[d+1] = hashNode(t.zero[d], t.zero[d])
	}
	return t
}

// Append adds a leaf and returns its index.
func (t *Tree) Append(leaf fr.Element) int {
	t.leaves = append(t.leaves, leaf)
	return len(t.leaves) - 1
}

// Size returns the number of appended leaves.
func (t *Tree) Size() int {
	return len(t.leaves)
}

// Root folds the current leaves up to the fixed-depth root.
func (t *Tree) Root() fr.Element {
	nodes := append([]fr.Element(nil), t.leaves...)
	for d := 0; d < Depth; d++ {
		next := make([]fr.Element, (len(nodes)+1)/2)
		for i := range next {
			left := t.nodeAt(nodes, d, 2*i)
			right := t.nodeAt(nodes, d, 2*i+1)
			next[i] = hashNode(left, right)
		}
		if len(next) == 0 {
			next = []fr.Element{hashNode(t.zero[d], t.zero[d])}
		}
		nodes = next
	}
	return nodes[0]
}

// Witness returns the authentication path for the leaf at index, anchored
// at the current root.
func (t *Tree) Witness(index int) (*Witness, error) {
	if index < 0 || index >= len(t.leaves) {
		return nil, errors.Errorf("merkle: leaf index %d out of range (%d leaves)", index, len(t.leaves))
	}

	w := &Witness{}
	nodes := append([]fr.Element(nil), t.leaves...)
	pos := index
	for d := 0; d < Depth; d++ {
		sibling := pos ^ 1
		w.Path[d] = PathNode{
			Sibling: t.nodeAt(nodes, d, sibling),
			Right:   pos&1 == 1,
		}

		next := make([]fr.Element, (len(nodes)+1)/2)
		for i := range next {
			next[i] = hashNode(t.nodeAt(nodes, d, 2*i), t.nodeAt(nodes, d, 2*i+1))
		}
		if len(next) == 0 {
			next = []fr.Element{hashNode(t.zero[d], t.zero[d])}
		}
		nodes = next
		pos >>= 1
	}
	w.root = nodes[0]
	return w, nil
}

func (t *Tree) nodeAt(level []fr.Element, depth, i int) fr.Element {
	if i < len(level) {
		return level[i]
	}
	return t.zero[depth]
}

func hashNode(left, right fr.Element) fr.Element {
	h := mimc.NewMiMC()
	lb := left.Bytes()
	h.Write(lb[:])
	rb := right.Bytes()
	h.Write(rb[:])

	var out fr.Element
	out.SetBytes(h.Sum(nil))
	return out
}
