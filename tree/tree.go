// Package tree implements the parse tree data model of spec.md §4.6: a
// flat array of nodes linked by index rather than pointer, the
// way internal/ictiobus/types.Tree lays out its own AST nodes, plus a
// Pattern matcher for querying the result.
package tree

import (
	"github.com/dekarrin/taul/symbol"
)

// noIndex marks an absent link (no parent, no sibling, no child).
const noIndex = -1

// Node is one entry of a Tree's flat node array, per spec.md §4.6: parent,
// left/right sibling, and rightmost-child links, all by index into the same
// Tree's Nodes slice.
type Node struct {
	ID   symbol.ID // the LPR/PPR id this node was produced from
	Name string    // the rule's name, for diagnostics
	Pos  int
	Len  int
	Text string // matched source text, populated for lexical (leaf) nodes

	Syntactic bool // true for a syntactic (PPR) node, false for lexical (LPR/token)

	Parent       int
	LeftSibling  int
	RightSibling int
	RightChild   int // the most recently appended child, or noIndex
}

// Tree is a sealed, immutable parse tree once construction finishes (Close
// brings the root to depth zero); Abort marks it as representing a failed
// parse without discarding the partial structure built so far, so callers
// can still inspect how far parsing got.
type Tree struct {
	nodes   []Node
	root    int
	aborted bool
	sealed  bool
}

// Nodes returns every node in construction order: a node made by
// WrapAsFirstChild comes after the subtree it wraps, and skip leaves sit
// where they were recorded. The returned slice must not be mutated.
func (t *Tree) Nodes() []Node {
	return t.nodes
}

// Root returns the index of the tree's root node, or noIndex if the tree is
// empty.
func (t *Tree) Root() int {
	return t.root
}

// IsAborted returns whether the parse that built this tree was aborted.
func (t *Tree) IsAborted() bool {
	return t.aborted
}

// IsSealed returns whether the tree has at least one node and no open
// syntactic scope remained when it was built (spec.md §4.6). A Builder that
// is Done() with unbalanced Syntactic/Close calls, or that never received
// any node at all, produces an unsealed Tree.
func (t *Tree) IsSealed() bool {
	return t.sealed
}

// At returns the node at index i.
func (t *Tree) At(i int) Node {
	return t.nodes[i]
}

// Children returns the indices of i's children, left to right.
func (t *Tree) Children(i int) []int {
	node := t.nodes[i]
	if node.RightChild == noIndex {
		return nil
	}
	// Walk left from the rightmost child to the leftmost, then reverse.
	var rev []int
	cur := node.RightChild
	for cur != noIndex {
		rev = append(rev, cur)
		cur = t.nodes[cur].LeftSibling
	}
	out := make([]int, len(rev))
	for i, idx := range rev {
		out[len(rev)-1-i] = idx
	}
	return out
}

// Equal compares two trees structurally, ignoring each tree's own aborted
// flag (spec.md §4.6: abortedness is a property of how a parse ended, not
// of the shape it produced). Per spec.md §4.6, two trees are equal iff both
// are sealed and node-wise equal; an unsealed tree is equal to nothing, not
// even itself.
func (t *Tree) Equal(other *Tree) bool {
	if t == nil || other == nil {
		return t == other
	}
	if !t.sealed || !other.sealed {
		return false
	}
	if len(t.nodes) != len(other.nodes) {
		return false
	}
	for i := range t.nodes {
		a, b := t.nodes[i], other.nodes[i]
		if a.ID != b.ID || a.Name != b.Name || a.Pos != b.Pos || a.Len != b.Len ||
			a.Text != b.Text || a.Syntactic != b.Syntactic ||
			a.Parent != b.Parent || a.LeftSibling != b.LeftSibling ||
			a.RightSibling != b.RightSibling || a.RightChild != b.RightChild {
			return false
		}
	}
	return true
}
