package table

import (
	"github.com/dekarrin/taul/lower"
	"github.com/dekarrin/taul/symbol"
	"github.com/dekarrin/taul/taulerr"
)

// firstResult is the FIRST set of one Element or Alternative, plus whether
// it can match zero length (nullable).
type firstResult struct {
	set      symbol.Set
	nullable bool
}

func union(a, b firstResult) firstResult {
	return firstResult{set: symbol.Union(a.set, b.set), nullable: a.nullable || b.nullable}
}

// firstComputer memoizes per-rule FIRST/nullable results and detects the
// "trivial left recursion" ambiguity case: a non-precedence rule that
// re-enters itself (directly or through other rules) before consuming a
// terminal, which the lowerer only rewrites away for precedence-qualified
// PPRs (spec.md §4.3) and so must be caught here instead of infinite-looping.
type firstComputer struct {
	ll    lower.LLSpec
	ids   IDs
	ec    *taulerr.Counter
	cache map[string]firstResult
	busy  map[string]bool
}

func newFirstComputer(ll lower.LLSpec, ids IDs, ec *taulerr.Counter) *firstComputer {
	return &firstComputer{
		ll:    ll,
		ids:   ids,
		ec:    ec,
		cache: make(map[string]firstResult),
		busy:  make(map[string]bool),
	}
}

func (fc *firstComputer) ruleFirst(name string) firstResult {
	if r, ok := fc.cache[name]; ok {
		return r
	}
	if fc.busy[name] {
		fc.ec.Report(taulerr.New(taulerr.ErrIllegalAmbiguity, noLoc(), false,
			"rule %q is left-recursive without a precedence qualifier to rewrite it", name))
		return firstResult{}
	}
	fc.busy[name] = true
	defer delete(fc.busy, name)

	rule, found := fc.ll.Rule(name)
	if !found {
		return firstResult{}
	}

	var result firstResult
	for i, alt := range rule.Alternatives {
		// Skip precedence-recursive tails: they are never entered directly,
		// only consulted by the runtime's continuation loop, so they
		// contribute nothing to the rule's own entry FIRST set.
		if info, has := fc.ll.Precedence[name]; has && containsInt(info.TailAltIndices, i) {
			continue
		}
		result = union(result, fc.altFirst(alt))
	}

	fc.cache[name] = result
	return result
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// altFirst computes FIRST/nullable of a top-level element sequence: the
// concatenation's FIRST is its first element's FIRST, plus the next
// element's FIRST if the first is nullable, and so on; the whole
// concatenation is nullable only if every element is.
func (fc *firstComputer) altFirst(elems []lower.Element) firstResult {
	var set symbol.Set
	allNullable := true
	for _, e := range elems {
		ef := fc.elemFirst(e)
		set = symbol.Union(set, ef.set)
		if !ef.nullable {
			allNullable = false
			break
		}
	}
	return firstResult{set: set, nullable: allNullable}
}

func (fc *firstComputer) elemFirst(e lower.Element) firstResult {
	switch e.Kind {
	case lower.ElemString:
		runes := []rune(e.Str)
		if len(runes) == 0 {
			return firstResult{nullable: true}
		}
		var s symbol.Set
		s.Add(symbol.Single(symbol.FromCodePoint(runes[0])))
		return firstResult{set: s}
	case lower.ElemCharset:
		return firstResult{set: e.Charset}
	case lower.ElemAny:
		var s symbol.Set
		s.Add(symbol.NewRange(0, symbol.MaxCodePoint))
		return firstResult{set: s}
	case lower.ElemToken:
		return firstResult{set: fc.ids.AllLPRIDs()}
	case lower.ElemFailure:
		var s symbol.Set
		s.Add(symbol.Single(symbol.Failure))
		return firstResult{set: s}
	case lower.ElemEnd:
		var s symbol.Set
		s.Add(symbol.Single(symbol.EndOfInput))
		return firstResult{set: s}
	case lower.ElemRef:
		if e.RefIsLPR {
			if id, known := fc.ids.byName[e.RefName]; known && fc.ids.IsLPR(e.RefName) {
				var s symbol.Set
				s.Add(symbol.Single(id))
				return firstResult{}.withTerminal(s)
			}
		}
		return fc.ruleFirst(e.RefName)
	case lower.ElemSequence:
		return fc.altFirst(e.Children)
	case lower.ElemChoice:
		var result firstResult
		for _, alt := range e.Alts {
			result = union(result, fc.altFirst(alt))
		}
		return result
	case lower.ElemLookahead, lower.ElemLookaheadNot:
		// Zero-width: always nullable, contributes its child's FIRST purely
		// for diagnostic/ambiguity purposes (it never itself consumes).
		inner := fc.childFirst(e)
		return firstResult{set: inner.set, nullable: true}
	case lower.ElemNot:
		// Consumes exactly one terminal iff its content does not match;
		// modeling its exact complement FIRST set is outside what this
		// table builder needs (the runtime pipeline matches it directly),
		// so report it as matching anything one-wide.
		var s symbol.Set
		s.Add(symbol.NewRange(0, symbol.MaxCodePoint))
		return firstResult{set: s}
	case lower.ElemOptional, lower.ElemKleeneStar:
		inner := fc.childFirst(e)
		return firstResult{set: inner.set, nullable: true}
	case lower.ElemKleenePlus:
		inner := fc.childFirst(e)
		return firstResult{set: inner.set, nullable: inner.nullable}
	}
	return firstResult{}
}

func (fc *firstComputer) childFirst(e lower.Element) firstResult {
	if len(e.Children) == 0 {
		return firstResult{nullable: true}
	}
	return fc.elemFirst(e.Children[0])
}

// withTerminal is a small helper so elemFirst's LPR-terminal branch reads
// like the others.
func (r firstResult) withTerminal(s symbol.Set) firstResult {
	r.set = symbol.Union(r.set, s)
	return r
}
