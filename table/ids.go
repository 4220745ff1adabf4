// Package table builds the parse tables spec.md §4.4 describes: FIRST,
// FOLLOW, and PREDICT sets over an LLSpec's rules, plus the ambiguity check
// that rejects a grammar whose alternatives cannot be told apart by one
// token/code point of lookahead. It assigns each rule its symbol.ID as a
// side effect of needing one integer space to express both terminals and
// nonterminal occurrences uniformly, the same role internal/ictiobus's
// grammar package plays for ll1 table construction.
package table

import (
	"github.com/dekarrin/taul/lower"
	"github.com/dekarrin/taul/spec"
	"github.com/dekarrin/taul/symbol"
)

// IDs is the rule-name-to-symbol.ID assignment derived from an LLSpec's
// rule order: LPRs and PPRs are each numbered separately, in the order they
// appear in LLSpec.Rules, which is definition order (the order of the rule
// bodies, not of their declarations).
type IDs struct {
	byName map[string]symbol.ID
	kind   map[string]lowerKind
}

type lowerKind uint8

const (
	kindLPR lowerKind = iota
	kindPPR
)

// AssignIDs allocates a symbol.ID to every rule in ll.
func AssignIDs(ll lower.LLSpec) IDs {
	ids := IDs{byName: make(map[string]symbol.ID), kind: make(map[string]lowerKind)}

	lprN, pprN := 0, 0
	for _, r := range ll.Rules {
		if r.Kind == spec.LPR {
			ids.byName[r.Name] = symbol.LPRID(lprN)
			ids.kind[r.Name] = kindLPR
			lprN++
		} else {
			ids.byName[r.Name] = symbol.PPRID(pprN)
			ids.kind[r.Name] = kindPPR
			pprN++
		}
	}
	return ids
}

// ID returns the assigned ID of a rule by name.
func (ids IDs) ID(name string) symbol.ID {
	return ids.byName[name]
}

// IsLPR returns whether name was assigned to the LPR partition.
func (ids IDs) IsLPR(name string) bool {
	return ids.kind[name] == kindLPR
}

// AllLPRIDs returns the set of every allocated LPR id, the FIRST set of a
// `token` primary in PPR scope (it matches a token produced by any LPR).
func (ids IDs) AllLPRIDs() symbol.Set {
	var s symbol.Set
	for name, k := range ids.kind {
		if k == kindLPR {
			s.Add(symbol.Single(ids.byName[name]))
		}
	}
	return s
}
