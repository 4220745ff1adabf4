// Package taulerr holds the fixed error-kind taxonomy of spec.md §7 and the
// Error/Counter types used to carry and accumulate them. It generalizes the
// sentinel-cause pattern of the teacher's server/serr package (one
// errors.New value per cause, a typed Error participating in errors.Is) to a
// closed enum of validator/loader/runtime error kinds.
package taulerr

import "errors"

// Kind sentinels. Exactly one of these is the cause of any Error returned by
// the spec validator, the LL lowerer, the parse-table builder, the grammar
// loader, or the runtime pipeline. Use errors.Is(err, taulerr.ErrXxx) to test
// for a specific kind.
var (
	ErrSourceCodeNotFound = errors.New("source code not found")

	ErrScopeNotClosed = errors.New("scope not closed")
	ErrStrayClose     = errors.New("stray close")

	ErrRuleNameConflict  = errors.New("rule name conflict")
	ErrRuleNeverDeclared = errors.New("rule never declared")
	ErrRuleNeverDefined  = errors.New("rule never defined")
	ErrRuleAlreadyDefined = errors.New("rule already defined")
	ErrRuleNotFound      = errors.New("rule not found")
	ErrRuleMayNotBePPR   = errors.New("rule may not be a PPR")
	ErrIllegalRuleDeclare = errors.New("illegal rule declaration")

	ErrIllegalInLPRScope = errors.New("illegal opcode in LPR scope")
	ErrIllegalInPPRScope = errors.New("illegal opcode in PPR scope")
	ErrIllegalInNoScope  = errors.New("illegal opcode outside any rule scope")

	ErrIllegalQualifier          = errors.New("illegal qualifier for this kind of rule")
	ErrIllegalMultipleQualifiers = errors.New("illegal multiple qualifiers on one rule")

	ErrIllegalInSingleTerminalScope  = errors.New("illegal opcode in single-terminal scope")
	ErrIllegalInNoAlternationScope   = errors.New("illegal opcode in no-alternation scope")
	ErrIllegalInSingleSubexprScope   = errors.New("illegal opcode in single-subexpression scope")
	ErrIllegalInNoEndSubexprScope    = errors.New("illegal 'end' in no-end-subexpression scope")

	ErrIllegalStringLiteral  = errors.New("illegal string literal")
	ErrIllegalCharsetLiteral = errors.New("illegal charset literal")

	ErrIllegalAmbiguity = errors.New("illegal ambiguity")
	ErrSyntaxError      = errors.New("syntax error")
	ErrInternal         = errors.New("internal error")
)
