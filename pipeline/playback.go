package pipeline

import "github.com/dekarrin/taul/tree"

// Playback replays t against l as a depth-first traversal of the finished
// tree rather than a re-parse of any source: Startup, a Syntactic/Close pair
// around each syntactic node's children, a Lexical event for each lexical
// node linked into the tree, then Abort if t is aborted, then Shutdown. It
// emits no Skip or WrapAsFirstChild events: skip leaves are not replayed,
// and a node made by WrapAsFirstChild is replayed as an ordinary Syntactic
// node around the subtree it wrapped. Abort comes after every node, not
// where the live parse raised it. An unsealed t (one with no nodes, or with a
// Builder left open) still gets Startup/Shutdown, but nothing in between:
// there is no well-formed traversal to replay.
func Playback(t *tree.Tree, l Listener) {
	l.Startup()
	if t.IsSealed() {
		playbackNode(t, t.Root(), l)
	}
	if t.IsAborted() {
		l.Abort()
	}
	l.Shutdown()
}

func playbackNode(t *tree.Tree, i int, l Listener) {
	node := t.At(i)
	if !node.Syntactic {
		l.Lexical(node.ID, node.Name, node.Pos, node.Len, node.Text)
		return
	}
	l.Syntactic(node.ID, node.Name, node.Pos)
	for _, child := range t.Children(i) {
		playbackNode(t, child, l)
	}
	l.Close()
}
