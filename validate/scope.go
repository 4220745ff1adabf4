package validate

import "github.com/dekarrin/taul/spec"

// exprFrame is one entry in the expression-scope stack: spec.md §4.2's
// per-composite-expression bookkeeping (current alternative count, the
// subexpression count within the current alternative, and the four
// non-propagating marks that constrain what may legally appear inside).
type exprFrame struct {
	op spec.Opcode

	altCount     int
	subexprCount int

	singleTerminal      bool
	noAlternation       bool
	singleSubexpression bool
	noEndSubexpression  bool
}

// defFrame is one entry in the definition-scope stack: the rule currently
// being defined. At most one is open in well-formed input; the stack exists
// so a malformed spec (a stray lpr/ppr nested inside another) doesn't
// corrupt validator state, per spec.md §4.2.
type defFrame struct {
	name      string
	kind      spec.Opcode // spec.LPR or spec.PPR
	qualifier spec.Qualifier
}
