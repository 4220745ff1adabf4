// Package lower rewrites a validated spec into a flat LL form: precedence
// PPRs are split into a base/recursive-tail shape (spec.md §4.3) so that the
// parse-table builder and runtime parser never need general left-recursion
// support. Its output, LLSpec, is a structured (rather than flat-instruction)
// view of the grammar's rules and alternatives, since every downstream phase
// (the parse-table builder's FIRST/FOLLOW computation, the parser's table
// driving) needs element-level structure rather than a raw opcode stream.
package lower

import (
	"github.com/dekarrin/taul/source"
	"github.com/dekarrin/taul/spec"
	"github.com/dekarrin/taul/symbol"
)

// ElementKind tags one node of a flattened alternative.
type ElementKind uint8

const (
	ElemString ElementKind = iota
	ElemCharset
	ElemAny
	ElemToken
	ElemFailure
	ElemEnd
	ElemRef
	ElemSequence
	ElemChoice
	ElemLookahead
	ElemLookaheadNot
	ElemNot
	ElemOptional
	ElemKleeneStar
	ElemKleenePlus
)

// Element is one node of a flattened alternative's element list. Composite
// kinds (Sequence and the three assertions and three quantifiers) hold their
// operand(s) in Children; ElemChoice (a parenthesized group that itself uses
// alternation, e.g. `(a|b) c`) holds its branches in Alts instead;
// String/Charset/Ref hold their payload directly.
type Element struct {
	Kind ElementKind

	Str      string     // ElemString: the decoded literal text
	Charset  symbol.Set // ElemCharset: the parsed code point set
	RefName  string     // ElemRef: the referenced rule's name
	RefIsLPR bool       // ElemRef: whether the reference resolved to an LPR

	Children []Element     // operand(s) for single-child/flat-sequence kinds
	Alts     []Alternative // ElemChoice only: the group's branches
}

// Alternative is one flattened production alternative: an ordered,
// top-level list of Elements (the concatenation that must all match, in
// order, for the alternative to match).
type Alternative []Element

// RuleDef is one rule's definition after lowering.
type RuleDef struct {
	Name         string
	Kind         spec.Opcode // spec.LPR or spec.PPR
	Qualifier    spec.Qualifier
	Alternatives []Alternative
}

// PrecedenceInfo describes how a precedence-qualified PPR was rewritten,
// per spec.md §4.3: its alternatives are partitioned into "base" (no
// self-reference) and "recursive tail" (self-reference prefix stripped),
// with each tail tagged by a monotonically increasing precedence value in
// declaration order.
type PrecedenceInfo struct {
	BaseAltIndices []int
	TailAltIndices []int
	TailPrecedence []int
}

// LLSpec is the lowerer's output: every rule of the validated spec, in
// structured form, plus precedence-rewrite metadata for precedence PPRs.
type LLSpec struct {
	Rules      []RuleDef
	Source     *source.Code
	Precedence map[string]PrecedenceInfo
}

// Rule looks up a rule definition by name.
func (s LLSpec) Rule(name string) (RuleDef, bool) {
	for _, r := range s.Rules {
		if r.Name == name {
			return r, true
		}
	}
	return RuleDef{}, false
}
