package lower

import (
	"github.com/dekarrin/taul/spec"
	"github.com/dekarrin/taul/symbol"
)

// charsetToSet folds parsed charset pairs into a canonical symbol.Set over
// the code point partition.
func charsetToSet(pairs []spec.CharsetPair) symbol.Set {
	var s symbol.Set
	for _, p := range pairs {
		s.Add(symbol.NewRange(symbol.FromCodePoint(p.Low), symbol.FromCodePoint(p.High)))
	}
	return s
}

// splitPrecedence implements the left-recursion-elimination rewrite of
// spec.md §4.3 for one precedence-qualified PPR: alternatives whose first
// element directly references the rule itself are "recursive tails" — their
// self-reference prefix is stripped and recorded separately — and every
// other alternative is a "base" alternative, the only kind legally used to
// enter the rule from outside. A runtime parser drives this by parsing one
// base alternative, then repeatedly checking whether the next input admits
// one of the tail alternatives (by the FIRST set of its post-prefix
// elements) and, if so, consuming it and left-folding the result into the
// tree built so far (spec.md §8's boundary scenario S5's left-leaning parse
// of a chain like `1+2+3`).
func splitPrecedence(r RuleDef) PrecedenceInfo {
	var info PrecedenceInfo
	precedence := 0

	for i, alt := range r.Alternatives {
		if isSelfPrefixed(alt, r.Name) {
			info.TailAltIndices = append(info.TailAltIndices, i)
			info.TailPrecedence = append(info.TailPrecedence, precedence)
			precedence++
			r.Alternatives[i] = alt[1:]
			continue
		}
		info.BaseAltIndices = append(info.BaseAltIndices, i)
	}

	return info
}

// isSelfPrefixed returns whether alt's first element is a direct reference
// to name — the shape the base/recursive-tail split looks for.
func isSelfPrefixed(alt Alternative, name string) bool {
	if len(alt) == 0 {
		return false
	}
	first := alt[0]
	return first.Kind == ElemRef && first.RefName == name
}
