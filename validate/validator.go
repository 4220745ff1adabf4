// Package validate implements the Spec validator (spec.md §4.2): a single
// forward walk over a spec.Spec's instruction stream that enforces every
// structural rule spec.md §7 names, using two explicit stacks — one tracking
// the rule currently being defined, one tracking the nested composite
// expression currently open — in the same non-recursive, explicit-stack
// style as internal/ictiobus's own table-driven walkers.
package validate

import (
	"github.com/dekarrin/taul/internal/util"
	"github.com/dekarrin/taul/source"
	"github.com/dekarrin/taul/spec"
	"github.com/dekarrin/taul/taulerr"
)

// primaryAllowedInSingleTerminalScope reports whether op is a primary legal
// directly inside a single-terminal scope (the body of a lookahead,
// lookahead_not or not assertion): end, any, charset, a
// single-character string, or a name reference to an LPR. This is broader
// than "a single-char string or LPR reference" alone so that end (boundary
// scenario S3, `f: -end;`) and charset (S4, `f: ~[abc];`) are both
// admissible, matching what the boundary scenarios require in practice.
func primaryAllowedInSingleTerminalScope(op spec.Opcode) bool {
	switch op {
	case spec.End, spec.Any, spec.Charset, spec.String, spec.Name:
		return true
	}
	return false
}

// validator holds the two-stack state for one Validate call.
type validator struct {
	src *source.Code
	ec  *taulerr.Counter

	defs  util.Stack[defFrame]
	exprs util.Stack[exprFrame]

	declaredKind  map[string]spec.Opcode
	declaredOrder []string
	defined       map[string]bool

	sawDefinition bool
	curPos        uint32
}

// Validate walks s's instruction stream, reporting every violation it finds
// to ec, and returns whether s was fully well-formed. A well-formed s is
// unchanged on return: validation never rewrites the stream, it only
// inspects it (rewriting is the lowerer's job, spec.md §4.3).
func Validate(s spec.Spec, ec *taulerr.Counter) bool {
	v := &validator{
		src:          s.Source(),
		ec:           ec,
		declaredKind: make(map[string]spec.Opcode),
		defined:      make(map[string]bool),
	}

	spec.Interpret(s, spec.VisitorFunc(func(ev spec.Event) {
		switch ev.Kind {
		case spec.EventInstruction:
			v.visit(ev.Instr)
		case spec.EventShutdown:
			v.shutdown()
		}
	}))

	return ec.Len() == 0
}

func (v *validator) loc() (source.Location, bool) {
	if v.src == nil {
		return source.Location{}, false
	}
	return v.src.Resolve(int(v.curPos)), true
}

func (v *validator) report(kind error, format string, args ...any) {
	loc, ok := v.loc()
	v.ec.Report(taulerr.New(kind, loc, ok, format, args...))
}

// currentScopeKind returns the rule kind (spec.LPR or spec.PPR) of the
// innermost open definition, or the zero Opcode (spec.Pos, never a rule
// kind, used here as a "none" sentinel) if no definition is open.
func (v *validator) currentScopeKind() spec.Opcode {
	if v.defs.Empty() {
		return 0 // zero value of Opcode is spec.Pos, never a rule kind
	}
	return v.defs.Peek().kind
}

func (v *validator) visit(in spec.Instruction) {
	if in.Op == spec.Pos {
		v.curPos = in.SourcePos
		return
	}
	v.curPos = in.SourcePos

	switch in.Op {
	case spec.LPRDecl, spec.PPRDecl:
		v.visitDecl(in)
		return
	case spec.LPR, spec.PPR:
		v.visitDefOpen(in)
		return
	case spec.Close:
		v.visitClose()
		return
	}

	// Everything else requires an open definition scope.
	if v.defs.Empty() {
		v.report(taulerr.ErrIllegalInNoScope, "%s outside any rule definition", in.Op)
		return
	}

	switch in.Op {
	case spec.Alternative:
		v.visitAlternative()
	case spec.Sequence, spec.Lookahead, spec.LookaheadNot, spec.Not,
		spec.Optional, spec.KleeneStar, spec.KleenePlus:
		v.visitCompositeOpen(in)
	case spec.End, spec.Any, spec.Token, spec.Failure:
		v.visitBarePrimary(in)
	case spec.String:
		v.visitString(in)
	case spec.Charset:
		v.visitCharset(in)
	case spec.Name:
		v.visitNameRef(in)
	}
}

func (v *validator) visitDecl(in spec.Instruction) {
	if v.sawDefinition {
		v.report(taulerr.ErrIllegalRuleDeclare, "declaration of %q follows a rule definition; all declarations must precede all definitions", in.Name)
		return
	}
	if !v.defs.Empty() {
		v.report(taulerr.ErrIllegalRuleDeclare, "declaration of %q nested inside another rule's definition", in.Name)
		return
	}
	if _, exists := v.declaredKind[in.Name]; exists {
		v.report(taulerr.ErrRuleNameConflict, "rule %q declared more than once", in.Name)
		return
	}
	v.declaredKind[in.Name] = in.Op
	v.declaredOrder = append(v.declaredOrder, in.Name)
}

func (v *validator) visitDefOpen(in spec.Instruction) {
	v.sawDefinition = true

	if !v.defs.Empty() {
		v.report(taulerr.ErrIllegalRuleDeclare, "definition of %q nested inside another rule's definition", in.Name)
		// Push anyway so Close bookkeeping does not go further out of sync
		// than necessary for the remainder of this (already malformed)
		// stream.
	}

	declKind, declared := v.declaredKind[in.Name]
	if !declared {
		v.report(taulerr.ErrRuleNeverDeclared, "rule %q was never declared", in.Name)
	} else if declKind != in.Op {
		v.report(taulerr.ErrIllegalRuleDeclare, "rule %q declared as %s but defined as %s", in.Name, declKind, in.Op)
	}

	if v.defined[in.Name] {
		v.report(taulerr.ErrRuleAlreadyDefined, "rule %q defined more than once", in.Name)
	}
	v.defined[in.Name] = true

	if in.Qualifier.Count() > 1 {
		v.report(taulerr.ErrIllegalMultipleQualifiers, "rule %q carries more than one qualifier (%s)", in.Name, in.Qualifier)
	} else {
		valid := in.Qualifier.ValidForLPR()
		if in.Op == spec.PPR {
			valid = in.Qualifier.ValidForPPR()
		}
		if !valid {
			v.report(taulerr.ErrIllegalQualifier, "qualifier %s is not legal on a %s", in.Qualifier, in.Op)
		}
	}

	v.defs.Push(defFrame{name: in.Name, kind: in.Op, qualifier: in.Qualifier})
	v.exprs.Push(exprFrame{op: in.Op, altCount: 1})
}

func (v *validator) visitClose() {
	if v.exprs.Empty() {
		v.report(taulerr.ErrStrayClose, "close with no open expression")
		return
	}
	closed := v.exprs.Pop()

	if !v.exprs.Empty() {
		// Peek returns a copy, so pop, update and re-push the parent frame.
		parent := v.exprs.Pop()
		parent.subexprCount++
		v.exprs.Push(parent)
	}

	if closed.op == spec.LPR || closed.op == spec.PPR {
		if !v.defs.Empty() {
			v.defs.Pop()
		}
	}
}

func (v *validator) visitAlternative() {
	top := v.exprs.Peek()
	if top.noAlternation {
		v.report(taulerr.ErrIllegalInNoAlternationScope, "'|' is not legal directly inside %s", top.op)
		return
	}
	// Peek returns a copy, so write back by popping and re-pushing the
	// updated frame.
	top = v.exprs.Pop()
	top.altCount++
	top.subexprCount = 0
	v.exprs.Push(top)
}

func (v *validator) visitCompositeOpen(in spec.Instruction) {
	parent := v.exprs.Peek()

	if err := v.checkScopeForOpcode(in.Op); err != nil {
		v.report(err, "%s is not legal in this scope", in.Op)
	}

	if parent.singleTerminal {
		v.report(taulerr.ErrIllegalInSingleTerminalScope, "%s is not a legal single terminal", in.Op)
	}
	if parent.singleSubexpression && parent.subexprCount >= 1 {
		v.report(taulerr.ErrIllegalInSingleSubexprScope, "%s is a second subexpression where only one is allowed", in.Op)
	}

	child := exprFrame{op: in.Op}
	switch in.Op {
	case spec.Lookahead, spec.LookaheadNot:
		child.singleSubexpression = true
		child.noAlternation = true
		child.singleTerminal = true
	case spec.Not:
		child.singleSubexpression = true
		child.noAlternation = true
		child.singleTerminal = true
	case spec.Optional, spec.KleeneStar, spec.KleenePlus:
		child.singleSubexpression = true
		child.noAlternation = true
	case spec.Sequence:
		// Plain grouping: no marks of its own, but inherits
		// no-end-subexpression from a parent that is itself propagating it,
		// and activates it fresh when opened directly under an assertion.
		if parent.op == spec.Lookahead || parent.op == spec.LookaheadNot || parent.op == spec.Not {
			child.noEndSubexpression = true
		} else if parent.noEndSubexpression {
			child.noEndSubexpression = true
		}
	}
	// Any frame opened while a no-end-subexpression frame is active keeps
	// propagating it to its own descendants, except the exemption above
	// (an assertion's own direct, unwrapped single-terminal slot, which
	// never opens a frame at all for bare primaries like end).
	if in.Op != spec.Sequence && parent.noEndSubexpression {
		child.noEndSubexpression = true
	}

	child.altCount = 1
	v.exprs.Push(child)
}

// checkScopeForOpcode enforces the LPR/PPR opcode partition: String, Charset,
// and Any are LPR-only; Token and Failure are PPR-only. Structural opcodes
// (Sequence and friends) and End and Name are legal in both.
func (v *validator) checkScopeForOpcode(op spec.Opcode) error {
	switch v.currentScopeKind() {
	case spec.LPR:
		if op == spec.Token || op == spec.Failure {
			return taulerr.ErrIllegalInLPRScope
		}
	case spec.PPR:
		if op == spec.Any || op == spec.String || op == spec.Charset {
			return taulerr.ErrIllegalInPPRScope
		}
	}
	return nil
}

// checkSingleSubexprBudget enforces the same one-subexpression-per-alternative
// limit on bare primaries that visitCompositeOpen enforces on composites —
// a single-terminal scope is a special case of a single-subexpression scope,
// so a second primary in a row is illegal for the same reason a second
// composite would be.
func (v *validator) checkSingleSubexprBudget(op spec.Opcode) {
	top := v.exprs.Peek()
	if top.singleSubexpression && top.subexprCount >= 1 {
		v.report(taulerr.ErrIllegalInSingleSubexprScope, "%s is a second subexpression where only one is allowed", op)
	}
}

func (v *validator) visitBarePrimary(in spec.Instruction) {
	if err := v.checkScopeForOpcode(in.Op); err != nil {
		v.report(err, "%s is not legal in this scope", in.Op)
	}
	v.checkEndRestriction(in)
	v.checkSingleSubexprBudget(in.Op)
	v.checkSingleTerminalRestriction(in, true)
	v.countSubexpr()
}

func (v *validator) visitString(in spec.Instruction) {
	if err := v.checkScopeForOpcode(in.Op); err != nil {
		v.report(err, "%s is not legal in this scope", in.Op)
	}
	v.checkSingleSubexprBudget(in.Op)

	top := v.exprs.Peek()
	if top.singleTerminal {
		decoded, err := spec.UnescapeString(in.Text)
		if err != nil {
			v.report(taulerr.ErrIllegalStringLiteral, "invalid string literal: %v", err)
		} else if len([]rune(decoded)) != 1 {
			v.report(taulerr.ErrIllegalInSingleTerminalScope, "string literal in single-terminal scope must be exactly one character")
		}
	}
	v.countSubexpr()
}

func (v *validator) visitCharset(in spec.Instruction) {
	if err := v.checkScopeForOpcode(in.Op); err != nil {
		v.report(err, "%s is not legal in this scope", in.Op)
	}
	v.checkSingleSubexprBudget(in.Op)
	if _, err := spec.ParseCharset(in.Text); err != nil {
		v.report(taulerr.ErrIllegalCharsetLiteral, "invalid charset literal: %v", err)
	}
	v.countSubexpr()
}

func (v *validator) visitNameRef(in spec.Instruction) {
	v.checkSingleSubexprBudget(in.Op)

	kind, declared := v.declaredKind[in.Name]
	if !declared {
		v.report(taulerr.ErrRuleNeverDeclared, "reference to rule %q, which was never declared", in.Name)
		v.countSubexpr()
		return
	}

	if v.currentScopeKind() == spec.LPR && kind == spec.PPR {
		v.report(taulerr.ErrRuleMayNotBePPR, "rule %q referenced from LPR scope is a PPR", in.Name)
	}

	top := v.exprs.Peek()
	if top.singleTerminal && kind != spec.LPR {
		v.report(taulerr.ErrIllegalInSingleTerminalScope, "name reference in single-terminal scope must name an LPR")
	}
	v.countSubexpr()
}

// checkEndRestriction enforces the no-end-subexpression mark: end is illegal
// directly inside a Sequence frame that inherited the mark via propagation
// from an enclosing assertion, but is always legal as an assertion's own
// direct (unwrapped) content — see boundary scenario S3.
func (v *validator) checkEndRestriction(in spec.Instruction) {
	if in.Op != spec.End {
		return
	}
	top := v.exprs.Peek()
	if top.noEndSubexpression {
		v.report(taulerr.ErrIllegalInNoEndSubexprScope, "'end' is not legal here")
	}
}

// checkSingleTerminalRestriction enforces that only the expanded primary set
// (see primaryAllowedInSingleTerminalScope) may appear in a single-terminal
// scope, for primaries whose opcode alone (without payload inspection)
// settles the question.
func (v *validator) checkSingleTerminalRestriction(in spec.Instruction, isBarePrimary bool) {
	top := v.exprs.Peek()
	if !top.singleTerminal {
		return
	}
	if isBarePrimary && !primaryAllowedInSingleTerminalScope(in.Op) {
		v.report(taulerr.ErrIllegalInSingleTerminalScope, "%s is not a legal single terminal", in.Op)
	}
}

func (v *validator) countSubexpr() {
	top := v.exprs.Pop()
	top.subexprCount++
	v.exprs.Push(top)
}

func (v *validator) shutdown() {
	if !v.exprs.Empty() || !v.defs.Empty() {
		v.report(taulerr.ErrScopeNotClosed, "%d expression scope(s) and %d definition scope(s) left open at end of input", v.exprs.Len(), v.defs.Len())
	}

	for _, name := range v.declaredOrder {
		if !v.defined[name] {
			v.report(taulerr.ErrRuleNeverDefined, "rule %q was declared but never defined", name)
		}
	}
}
