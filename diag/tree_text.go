package diag

import (
	"strconv"
	"strings"

	"github.com/dekarrin/taul/tree"
)

// Tree renders t in the parse-tree text format of spec.md §6: one line per
// node in creation order (the order of Tree.Nodes), indented one tab per level, each line
// either "[pos N, len M] id name 'text'" for a lexical node or
// "[pos N, len M] id name" for a syntactic one.
func Tree(t *tree.Tree) string {
	var sb strings.Builder
	for _, idx := range nodeOrder(t) {
		n := t.At(idx)
		sb.WriteString(strings.Repeat("\t", level(t, idx)))
		sb.WriteString(nodeLine(n))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// nodeLine formats a single node the way Tree's per-line format does,
// without any indentation; Tree is its only caller.
func nodeLine(n tree.Node) string {
	head := fmtPosLen(n.Pos, n.Len) + " " + n.ID.String() + " " + n.Name
	if n.Syntactic {
		return head
	}
	return head + " " + quoteText(n.Text)
}

func fmtPosLen(pos, length int) string {
	return "[pos " + strconv.Itoa(pos) + ", len " + strconv.Itoa(length) + "]"
}

// nodeOrder returns every node index of t in the creation order the flat
// node array stores them in; Tree.Nodes() is that array directly, so this is
// just its index sequence.
func nodeOrder(t *tree.Tree) []int {
	nodes := t.Nodes()
	out := make([]int, len(nodes))
	for i := range nodes {
		out[i] = i
	}
	return out
}

// level walks idx's parent chain to compute its depth, used for indentation;
// the flat array has no stored level field, so this is the direct way to
// recover it from the Parent links spec.md §4.6 describes.
func level(t *tree.Tree, idx int) int {
	depth := 0
	cur := t.At(idx)
	for cur.Parent >= 0 {
		depth++
		cur = t.At(cur.Parent)
	}
	return depth
}
