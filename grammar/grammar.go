// Package grammar assembles the validator, lowerer, and parse-table builder
// into the single immutable Grammar object spec.md §3/§4.4 describes: the
// one artifact the runtime pipeline (package pipeline) actually drives.
// Building one is a one-shot, all-or-nothing operation, the same shape as
// ictiobus's own "lex+parse table generation is a batch step, consumption is
// a separate concern" split.
package grammar

import (
	"github.com/google/uuid"

	"github.com/dekarrin/taul/lower"
	"github.com/dekarrin/taul/spec"
	"github.com/dekarrin/taul/symbol"
	"github.com/dekarrin/taul/table"
	"github.com/dekarrin/taul/taulerr"
	"github.com/dekarrin/taul/validate"
)

// Rule is one rule of a built Grammar: its assigned ID, its structural
// definition, and its computed parse table.
type Rule struct {
	ID        symbol.ID
	Name      string
	Kind      spec.Opcode // spec.LPR or spec.PPR
	Qualifier spec.Qualifier
	Def       lower.RuleDef
	Table     table.RuleTable
}

// Grammar is the complete, immutable result of loading a Spec: every rule,
// addressable by name or by ID, its precedence-rewrite metadata (for
// precedence PPRs), and a BuildID stamping this particular build for
// diagnostics and cache invalidation in hosting tools.
type Grammar struct {
	BuildID uuid.UUID

	rulesByName map[string]Rule
	lprOrder    []string
	pprOrder    []string

	Precedence map[string]lower.PrecedenceInfo
	first      map[string]symbol.Set
	follow     map[string]symbol.Set
}

// Load runs the full Validate -> Lower -> Build pipeline over s and, on
// success, assembles a Grammar. buildID is supplied by the caller (rather
// than generated here) so that repeated loads of the same Spec in tests are
// reproducible; production callers should pass uuid.New().
func Load(s spec.Spec, buildID uuid.UUID, ec *taulerr.Counter) (*Grammar, bool) {
	if !validate.Validate(s, ec) {
		return nil, false
	}

	ll, ok := lower.Lower(s, ec)
	if !ok {
		return nil, false
	}

	tables, ok := table.Build(ll, ec)
	if !ok {
		return nil, false
	}

	g := &Grammar{
		BuildID:     buildID,
		rulesByName: make(map[string]Rule),
		Precedence:  ll.Precedence,
		first:       tables.First,
		follow:      tables.Follow,
	}

	for _, r := range ll.Rules {
		id := tables.IDs.ID(r.Name)
		rule := Rule{
			ID:        id,
			Name:      r.Name,
			Kind:      r.Kind,
			Qualifier: r.Qualifier,
			Def:       r,
			Table:     tables.Rules[r.Name],
		}
		g.rulesByName[r.Name] = rule
		if r.Kind == spec.LPR {
			g.lprOrder = append(g.lprOrder, r.Name)
		} else {
			g.pprOrder = append(g.pprOrder, r.Name)
		}
	}

	return g, true
}

// Rule looks up a rule by name.
func (g *Grammar) Rule(name string) (Rule, bool) {
	r, ok := g.rulesByName[name]
	return r, ok
}

// LPRs returns every LPR's name, in definition order.
func (g *Grammar) LPRs() []string {
	return g.lprOrder
}

// PPRs returns every PPR's name, in definition order.
func (g *Grammar) PPRs() []string {
	return g.pprOrder
}

// StartRule returns the name of the grammar's entry PPR: its first-defined
// PPR.
func (g *Grammar) StartRule() (string, bool) {
	if len(g.pprOrder) == 0 {
		return "", false
	}
	return g.pprOrder[0], true
}

// First returns the FIRST set computed for a rule by name.
func (g *Grammar) First(name string) symbol.Set {
	return g.first[name]
}

// Follow returns the FOLLOW set computed for a PPR by name.
func (g *Grammar) Follow(name string) symbol.Set {
	return g.follow[name]
}
