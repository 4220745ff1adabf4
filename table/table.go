package table

import (
	"github.com/dekarrin/taul/lower"
	"github.com/dekarrin/taul/source"
	"github.com/dekarrin/taul/symbol"
	"github.com/dekarrin/taul/taulerr"
)

func noLoc() source.Location { return source.Location{} }

// RuleTable is the computed parse-table data for one rule: its assigned
// PREDICT set per alternative, keyed by alternative index, used by the
// runtime parser to choose which alternative to commit to given one token of
// lookahead (spec.md §4.4). The lexer does not consult it.
type RuleTable struct {
	Predict []symbol.Set // Predict[i] is alternative i's PREDICT set
}

// Tables is the parse-table builder's full output: FIRST, FOLLOW, and
// PREDICT for every rule, plus the ID assignment they were computed over.
type Tables struct {
	IDs    IDs
	First  map[string]symbol.Set
	Follow map[string]symbol.Set
	Rules  map[string]RuleTable
}

// Build computes FIRST, FOLLOW, and PREDICT over ll and checks every rule
// for ambiguity, reporting ErrIllegalAmbiguity to ec for any rule whose
// alternatives cannot be distinguished by PREDICT alone (including the
// trivial-left-recursion case, caught during FIRST computation). Build
// assumes ll already passed Validate and Lower successfully.
func Build(ll lower.LLSpec, ec *taulerr.Counter) (Tables, bool) {
	ids := AssignIDs(ll)
	fc := newFirstComputer(ll, ids, ec)

	first := make(map[string]symbol.Set)
	for _, r := range ll.Rules {
		first[r.Name] = fc.ruleFirst(r.Name).set
	}

	follow := computeFollow(ll, fc)

	rules := make(map[string]RuleTable)
	for _, r := range ll.Rules {
		rt := buildRuleTable(r, ll, fc, follow)
		rules[r.Name] = rt
		checkAmbiguity(r, ll, rt, ec)
	}

	return Tables{IDs: ids, First: first, Follow: follow.sets, Rules: rules}, ec.Len() == 0
}

func buildRuleTable(r lower.RuleDef, ll lower.LLSpec, fc *firstComputer, follow followSets) RuleTable {
	rt := RuleTable{Predict: make([]symbol.Set, len(r.Alternatives))}
	ruleFollow := follow.sets[r.Name]

	for i, alt := range r.Alternatives {
		af := fc.altFirst(alt)
		predict := af.set
		if af.nullable {
			predict = symbol.Union(predict, ruleFollow)
		}
		rt.Predict[i] = predict
	}
	return rt
}

// checkAmbiguity reports ErrIllegalAmbiguity for any two alternatives of r
// whose PREDICT sets overlap. Precedence-rewritten PPRs are checked in two
// independent groups — base alternatives against each other, and tail
// alternatives against each other — since the two groups are never compared
// against the same lookahead token by the runtime (spec.md §4.3: only base
// alternatives are considered at rule entry; tails are only consulted by the
// continuation loop).
func checkAmbiguity(r lower.RuleDef, ll lower.LLSpec, rt RuleTable, ec *taulerr.Counter) {
	info, hasPrecedence := ll.Precedence[r.Name]
	if !hasPrecedence {
		reportOverlaps(r.Name, rt, allIndices(len(r.Alternatives)), ec)
		return
	}
	reportOverlaps(r.Name, rt, info.BaseAltIndices, ec)
	reportOverlaps(r.Name, rt, info.TailAltIndices, ec)
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func reportOverlaps(ruleName string, rt RuleTable, indices []int, ec *taulerr.Counter) {
	for a := 0; a < len(indices); a++ {
		for b := a + 1; b < len(indices); b++ {
			i, j := indices[a], indices[b]
			if symbol.Intersect(rt.Predict[i], rt.Predict[j]).Empty() {
				continue
			}
			ec.Report(taulerr.New(taulerr.ErrIllegalAmbiguity, noLoc(), false,
				"rule %q: alternatives %d and %d are ambiguous under one token of lookahead", ruleName, i, j))
		}
	}
}
