package tree

import (
	"github.com/dekarrin/taul/internal/util"
	"github.com/dekarrin/taul/symbol"
)

// Builder accumulates a Tree incrementally, the way a Parser's Listener
// drives it in package pipeline: Syntactic opens a new non-leaf node and
// descends into it, Lexical appends a leaf (a matched token), Skip records a
// skip-qualified token that is kept out of the child links (so out of
// syntactic matching) but still recorded for diagnostics, and Close ascends back out of the most recently opened
// Syntactic node.
type Builder struct {
	nodes []Node
	open  util.Stack[int] // indices of nodes currently open for children
	root  int

	aborted bool
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{root: noIndex}
}

// Startup is a no-op for Builder: a Tree has no state to initialize before
// its first node, and Done computes sealedness from the final open stack
// regardless of whether Startup was ever called.
func (b *Builder) Startup() {}

// Shutdown is a no-op for Builder; call Done to obtain the finished Tree.
func (b *Builder) Shutdown() {}

// Syntactic opens a new non-leaf node for a PPR match and descends into it;
// subsequent Lexical/Skip/Syntactic calls become its children until a
// matching Close. It returns the new node's index, for a caller that later
// needs to pass it back to WrapAsFirstChild.
func (b *Builder) Syntactic(id symbol.ID, name string, pos int) int {
	return b.push(Node{ID: id, Name: name, Pos: pos, Syntactic: true})
}

// Lexical appends a leaf node for a matched token as a child of whatever
// node is currently open. With no node open, the first such node becomes the
// root and later ones are linked to nothing.
func (b *Builder) Lexical(id symbol.ID, name string, pos, length int, text string) {
	b.append(Node{ID: id, Name: name, Pos: pos, Len: length, Text: text})
}

// Skip records a leaf node for a skip-qualified token in the node array,
// with Parent set to the currently open node, but links it into no child or
// sibling chain: Children, Close's Len and Pattern matching never see it,
// while Nodes (and so diagnostics) still does.
func (b *Builder) Skip(id symbol.ID, name string, pos, length int, text string) {
	n := Node{ID: id, Name: name, Pos: pos, Len: length, Text: text,
		Parent: noIndex, LeftSibling: noIndex, RightSibling: noIndex, RightChild: noIndex}
	if !b.open.Empty() {
		n.Parent = b.open.Peek()
	}
	b.nodes = append(b.nodes, n)
}

func (b *Builder) push(n Node) int {
	idx := b.append(n)
	b.open.Push(idx)
	return idx
}

func (b *Builder) append(n Node) int {
	n.Parent = noIndex
	n.LeftSibling = noIndex
	n.RightSibling = noIndex
	n.RightChild = noIndex

	idx := len(b.nodes)
	if !b.open.Empty() {
		parent := b.open.Peek()
		n.Parent = parent
		prevChild := b.nodes[parent].RightChild
		if prevChild != noIndex {
			n.LeftSibling = prevChild
			b.nodes[prevChild].RightSibling = idx
		}
		b.nodes[parent].RightChild = idx
	} else if b.root == noIndex {
		b.root = idx
	}

	b.nodes = append(b.nodes, n)
	return idx
}

// Close ascends out of the most recently opened Syntactic node, setting its
// Len to span from its own Pos through the end of its last child (or 0 if
// it matched no children at all — an empty PPR match), and returns that
// node's index.
func (b *Builder) Close() int {
	if b.open.Empty() {
		return noIndex
	}
	idx := b.open.Pop()
	node := &b.nodes[idx]
	if node.RightChild == noIndex {
		node.Len = 0
		return idx
	}
	last := b.nodes[node.RightChild]
	node.Len = (last.Pos + last.Len) - node.Pos
	return idx
}

// WrapAsFirstChild creates and opens a new node with the given id/name,
// positioned at existingRoot's own Pos, and reparents the already-completed
// subtree rooted at existingRoot to be its first child. This is the
// precedence-rewrite rule's runtime counterpart (spec.md §4.3): each time a
// recursive-tail alternative is matched, the result parsed so far is
// wrapped as the left operand of a new node one level up, producing the
// left-leaning tree shape boundary scenario S5 requires. The new node is
// left open, exactly like Syntactic, for the tail's remaining matched
// elements to be appended as further children before the caller Closes it.
func (b *Builder) WrapAsFirstChild(existingRoot int, id symbol.ID, name string) int {
	old := b.nodes[existingRoot]

	wIdx := len(b.nodes)
	w := Node{
		ID: id, Name: name, Pos: old.Pos,
		Parent: old.Parent, LeftSibling: noIndex, RightSibling: noIndex,
		RightChild: existingRoot,
	}

	if old.Parent != noIndex {
		parent := &b.nodes[old.Parent]
		if parent.RightChild == existingRoot {
			parent.RightChild = wIdx
		}
	} else if b.root == existingRoot {
		b.root = wIdx
	}
	if old.LeftSibling != noIndex {
		b.nodes[old.LeftSibling].RightSibling = wIdx
		w.LeftSibling = old.LeftSibling
	}
	if old.RightSibling != noIndex {
		b.nodes[old.RightSibling].LeftSibling = wIdx
		w.RightSibling = old.RightSibling
	}

	b.nodes = append(b.nodes, w)
	b.nodes[existingRoot].Parent = wIdx
	b.nodes[existingRoot].LeftSibling = noIndex
	b.nodes[existingRoot].RightSibling = noIndex

	b.open.Push(wIdx)
	return wIdx
}

// Abort marks the tree under construction as representing a failed parse,
// without discarding whatever partial structure was built.
func (b *Builder) Abort() {
	b.aborted = true
}

// Done closes the builder's accumulated nodes into a Tree. Per spec.md §4.6
// the result is sealed only if it has at least one node and no Syntactic
// scope was left open (every Syntactic call was matched by a Close).
func (b *Builder) Done() *Tree {
	sealed := len(b.nodes) > 0 && b.open.Empty()
	return &Tree{nodes: b.nodes, root: b.root, aborted: b.aborted, sealed: sealed}
}
