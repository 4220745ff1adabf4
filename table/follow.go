package table

import (
	"github.com/dekarrin/taul/lower"
	"github.com/dekarrin/taul/spec"
	"github.com/dekarrin/taul/symbol"
)

// followSets holds the accumulated FOLLOW set of every PPR, computed by a
// fixed-point pass over every rule's alternatives. LPRs have no FOLLOW: a
// lexical rule's alternatives are never nullable-chained into a surrounding
// syntactic continuation, since lexing only ever matches the longest single
// token starting at the current position (spec.md §4.5).
type followSets struct {
	sets map[string]symbol.Set
}

func (f *followSets) add(name string, s symbol.Set) bool {
	if f.sets == nil {
		f.sets = make(map[string]symbol.Set)
	}
	before := f.sets[name]
	merged := symbol.Union(before, s)
	if len(merged.Ranges()) == len(before.Ranges()) && sameRanges(merged, before) {
		return false
	}
	f.sets[name] = merged
	return true
}

func sameRanges(a, b symbol.Set) bool {
	ar, br := a.Ranges(), b.Ranges()
	if len(ar) != len(br) {
		return false
	}
	for i := range ar {
		if !ar[i].Equal(br[i]) {
			return false
		}
	}
	return true
}

// computeFollow runs the standard FOLLOW fixed-point: seed the grammar's
// entry PPR (its first-defined PPR — the whole grammar's start symbol) with
// end-of-input, then repeatedly walk every PPR's
// alternatives propagating FIRST-of-what-follows into each nonterminal
// occurrence's FOLLOW set until nothing changes.
func computeFollow(ll lower.LLSpec, fc *firstComputer) followSets {
	var follow followSets

	startName := firstPPRName(ll)
	if startName != "" {
		var eoi symbol.Set
		eoi.Add(symbol.Single(symbol.EndOfInput))
		follow.add(startName, eoi)
	}

	changed := true
	for changed {
		changed = false
		for _, r := range ll.Rules {
			if !isPPRRule(r) {
				continue
			}
			for _, alt := range r.Alternatives {
				if walkFollow(alt, r.Name, follow.sets[r.Name], fc, &follow) {
					changed = true
				}
			}
		}
	}

	return follow
}

func isPPRRule(r lower.RuleDef) bool {
	return r.Kind == spec.PPR
}

// walkFollow walks one alternative's top-level element list, propagating
// FOLLOW into every nonterminal Ref it contains (recursing into nested
// Sequence/Choice/quantifier children), given outerFollow: what follows the
// alternative itself in its own rule's context (the rule's current FOLLOW
// set). Returns whether any FOLLOW set changed.
func walkFollow(elems []lower.Element, ruleName string, outerFollow symbol.Set, fc *firstComputer, follow *followSets) bool {
	changed := false
	for i, e := range elems {
		contFirst, contNullable := firstOfRemainder(elems[i+1:], fc)
		if contNullable {
			contFirst = symbol.Union(contFirst, outerFollow)
		}
		if e.Kind == lower.ElemRef && !e.RefIsLPR {
			if follow.add(e.RefName, contFirst) {
				changed = true
			}
		}
		if walkFollowInto(e, ruleName, contFirst, fc, follow) {
			changed = true
		}
	}
	return changed
}

// walkFollowInto recurses FOLLOW propagation into a composite element's own
// children, treating whatever follows the composite itself (afterward) as
// their eventual continuation.
func walkFollowInto(e lower.Element, ruleName string, afterward symbol.Set, fc *firstComputer, follow *followSets) bool {
	changed := false
	switch e.Kind {
	case lower.ElemSequence:
		if walkFollow(e.Children, ruleName, afterward, fc, follow) {
			changed = true
		}
	case lower.ElemChoice:
		for _, alt := range e.Alts {
			if walkFollow(alt, ruleName, afterward, fc, follow) {
				changed = true
			}
		}
	case lower.ElemOptional, lower.ElemLookahead, lower.ElemLookaheadNot:
		if walkFollow(e.Children, ruleName, afterward, fc, follow) {
			changed = true
		}
	case lower.ElemKleeneStar, lower.ElemKleenePlus:
		// The body may repeat, so its own FIRST feeds back into its own
		// FOLLOW alongside whatever follows the quantifier as a whole.
		selfFirst, _ := firstOfRemainder(e.Children, fc)
		loopFollow := symbol.Union(selfFirst, afterward)
		if walkFollow(e.Children, ruleName, loopFollow, fc, follow) {
			changed = true
		}
	}
	return changed
}

// firstOfRemainder computes the FIRST set (and overall nullability) of a
// top-level element list, the same concatenation rule altFirst uses.
func firstOfRemainder(elems []lower.Element, fc *firstComputer) (symbol.Set, bool) {
	r := fc.altFirst(elems)
	return r.set, r.nullable
}

func firstPPRName(ll lower.LLSpec) string {
	for _, r := range ll.Rules {
		if isPPRRule(r) {
			return r.Name
		}
	}
	return ""
}
