// Package spec implements the instruction stream that describes lexer and
// parser rules (spec.md §4.1): an immutable, opcode-tagged record sequence
// built once by a Writer and thereafter walked, never mutated, by every
// downstream phase (validator, lowerer, parse-table builder, disassembler).
package spec

import "fmt"

// Opcode tags one kind of instruction in a Spec. There are exactly the 21
// opcodes spec.md §3 lists; every phase that walks a Spec is expected to
// exhaustively switch over this set (spec.md §9's "adding an opcode is a
// compile-time prompt to extend every phase" design note).
type Opcode uint8

const (
	Pos Opcode = iota
	Close
	Alternative
	LPRDecl
	PPRDecl
	LPR
	PPR
	End
	Any
	String
	Charset
	Token
	Failure
	Name
	Sequence
	Lookahead
	LookaheadNot
	Not
	Optional
	KleeneStar
	KleenePlus

	numOpcodes
)

var opcodeNames = [numOpcodes]string{
	Pos:          "pos",
	Close:        "close",
	Alternative:  "alternative",
	LPRDecl:      "lpr_decl",
	PPRDecl:      "ppr_decl",
	LPR:          "lpr",
	PPR:          "ppr",
	End:          "end",
	Any:          "any",
	String:       "string",
	Charset:      "charset",
	Token:        "token",
	Failure:      "failure",
	Name:         "name",
	Sequence:     "sequence",
	Lookahead:    "lookahead",
	LookaheadNot: "lookahead_not",
	Not:          "not",
	Optional:     "optional",
	KleeneStar:   "kleene_star",
	KleenePlus:   "kleene_plus",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return fmt.Sprintf("opcode(%d)", uint8(op))
}

// IsCompositeExpr returns whether op opens an expression scope in the
// validator's expression-scope stack (spec.md §4.2): sequence, the three
// assertions, the three quantifiers, and the two rule-body openers.
func (op Opcode) IsCompositeExpr() bool {
	switch op {
	case Sequence, Lookahead, LookaheadNot, Not, Optional, KleeneStar, KleenePlus, LPR, PPR:
		return true
	}
	return false
}

// IsQuantifier returns whether op is one of the three quantifier opcodes.
func (op Opcode) IsQuantifier() bool {
	switch op {
	case Optional, KleeneStar, KleenePlus:
		return true
	}
	return false
}

// IsAssertion returns whether op is one of the three non-consuming (or, for
// Not, consuming-but-predicate) assertion opcodes.
func (op Opcode) IsAssertion() bool {
	switch op {
	case Lookahead, LookaheadNot, Not:
		return true
	}
	return false
}

// IsPrimary returns whether op is a leaf expression primary: a terminal
// producer or a name reference.
func (op Opcode) IsPrimary() bool {
	switch op {
	case End, Any, String, Charset, Token, Failure, Name:
		return true
	}
	return false
}
