package tree

import "github.com/dekarrin/taul/symbol"

// Pattern matches a shape against a Tree's nodes, mirroring the tree's own
// construction API (Lexical/Syntactic/LooseSyntactic below echo Builder's
// Lexical/Syntactic): an expected ID (or a wildcard, if Any is set), an
// expected position and length (checked only if MatchPosLen is set, letting
// a caller that doesn't care about exact placement omit it), and zero or
// more child Patterns. Matching is loose by default — extra children the
// Pattern doesn't mention are simply not visited, rather than causing a
// mismatch — since that is the form a caller picking out one subtree of
// interest wants most often; Strict requires an exact one-to-one match
// against every child, and Opaque (only ever set by LooseSyntactic) stops
// descent entirely once the node's own identity, position, and length match.
type Pattern struct {
	ID          symbol.ID
	Any         bool
	Pos         int
	Len         int
	MatchPosLen bool
	Children    []Pattern
	Strict      bool
	Opaque      bool
}

// Lexical builds a Pattern matching a leaf node's id, position, and length
// exactly.
func Lexical(id symbol.ID, pos, length int) Pattern {
	return Pattern{ID: id, Pos: pos, Len: length, MatchPosLen: true}
}

// Syntactic builds a strict Pattern over a syntactic (PPR) id, position,
// and length: children must match the given Patterns one-to-one, in order,
// recursively.
func Syntactic(id symbol.ID, pos, length int, children ...Pattern) Pattern {
	return Pattern{ID: id, Pos: pos, Len: length, MatchPosLen: true, Strict: true, Children: children}
}

// LooseSyntactic builds a Pattern over a syntactic (PPR) id, position, and
// length that treats the matched node's interior as opaque: its children,
// however many there are or whatever shape they take, are never inspected.
func LooseSyntactic(id symbol.ID, pos, length int) Pattern {
	return Pattern{ID: id, Pos: pos, Len: length, MatchPosLen: true, Opaque: true}
}

// Match reports whether p matches the subtree rooted at node index i in t.
func (p Pattern) Match(t *Tree, i int) bool {
	node := t.At(i)
	if !p.Any && node.ID != p.ID {
		return false
	}
	if p.MatchPosLen && (node.Pos != p.Pos || node.Len != p.Len) {
		return false
	}
	if p.Opaque {
		return true
	}
	if len(p.Children) == 0 {
		return true
	}

	kids := t.Children(i)
	if p.Strict && len(kids) != len(p.Children) {
		return false
	}
	if len(kids) < len(p.Children) {
		return false
	}
	for idx, childPattern := range p.Children {
		if !childPattern.Match(t, kids[idx]) {
			return false
		}
	}
	return true
}

// Find returns the index of the first node in t (depth-first, pre-order)
// whose subtree matches p, and whether one was found.
func Find(t *Tree, p Pattern) (int, bool) {
	if t.Root() == noIndex {
		return 0, false
	}
	return findFrom(t, p, t.Root())
}

func findFrom(t *Tree, p Pattern, i int) (int, bool) {
	if p.Match(t, i) {
		return i, true
	}
	for _, child := range t.Children(i) {
		if idx, ok := findFrom(t, p, child); ok {
			return idx, true
		}
	}
	return 0, false
}
