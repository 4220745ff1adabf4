package symbol

import "fmt"

// RuleRef names the rule that produced a token, kept alongside the raw
// symbol ID so diagnostics can print a human-readable rule name without the
// pipeline needing to hold a *grammar.Grammar reference just for that.
type RuleRef struct {
	Name      string
	Qualifier uint8 // mirrors spec.Qualifier's wire encoding; see spec package
}

// Token is the terminal symbol produced by a Lexer and consumed by a Parser:
// an LPR id (or Failure/EndOfInput) with its position, matched length, and
// an optional reference to the rule that produced it.
type Token struct {
	id   ID
	Pos  int
	Len  int
	Rule *RuleRef
}

// NewToken builds a Token for a successful LPR match.
func NewToken(lprID ID, pos, length int, rule *RuleRef) Token {
	return Token{id: lprID, Pos: pos, Len: length, Rule: rule}
}

// NewFailureToken builds a Token standing in for a lexical failure spanning
// length bytes (failures may be coalesced, so length need not be 1).
func NewFailureToken(pos, length int) Token {
	return Token{id: Failure, Pos: pos, Len: length}
}

// NewEndOfInputToken builds the single end-of-input Token emitted once a
// Lexer is exhausted.
func NewEndOfInputToken(pos int) Token {
	return Token{id: EndOfInput, Pos: pos, Len: 0}
}

// ID returns the symbol ID of the token: an LPR id, Failure, or EndOfInput.
func (t Token) ID() ID { return t.id }

// IsFailure reports whether the token stands in for a lexical failure.
func (t Token) IsFailure() bool { return t.id == Failure }

// IsEndOfInput reports whether the token is the end-of-input sentinel.
func (t Token) IsEndOfInput() bool { return t.id == EndOfInput }

func (t Token) String() string {
	name := "?"
	if t.Rule != nil {
		name = t.Rule.Name
	} else if t.IsFailure() {
		name = "<failure>"
	} else if t.IsEndOfInput() {
		name = "<end-of-input>"
	}
	return fmt.Sprintf("[pos %d, len %d] %s", t.Pos, t.Len, name)
}
