package pipeline

import "github.com/dekarrin/taul/symbol"

// ErrorHandler decides how a Parser recovers from a token that matches none
// of the current rule's PREDICT sets, mirroring
// internal/ictiobus/parse's pluggable recovery strategy rather than hard-
// coding one policy into the parser loop.
type ErrorHandler interface {
	// Recover is called with the offending token and the rule the parser
	// was trying to match it against. If it returns true, the parser
	// discards tokens until Sync reports a resumption point; if false, it
	// discards nothing. Either way the parser then closes the rule's node
	// with the tree marked aborted and the parse fails: matching does not
	// resume after the discarded tokens.
	Recover(tok symbol.Token, ruleName string) (shouldRetry bool)

	// Sync reports whether tok is a safe point to resume parsing at, once
	// Recover has asked for a retry.
	Sync(tok symbol.Token, follow symbol.Set) bool
}

// NoRecoveryErrorHandler aborts the parse on the first syntax error.
type NoRecoveryErrorHandler struct{}

func (NoRecoveryErrorHandler) Recover(symbol.Token, string) bool { return false }
func (NoRecoveryErrorHandler) Sync(symbol.Token, symbol.Set) bool { return true }

// RegularErrorHandler implements panic-mode discarding: it has the parser
// discard tokens until one lands in the calling rule's FOLLOW set (or
// end-of-input). The parser does not resume matching from that token; the
// parse still fails with the tree marked aborted.
type RegularErrorHandler struct {
	// MaxSkip caps how many tokens Sync will discard looking for a
	// resumption point before giving up, guarding against a FOLLOW set
	// that never recurs before the input runs out. Zero means unbounded.
	MaxSkip int

	skipped int
}

func (h *RegularErrorHandler) Recover(symbol.Token, string) bool {
	h.skipped = 0
	return true
}

func (h *RegularErrorHandler) Sync(tok symbol.Token, follow symbol.Set) bool {
	if tok.IsEndOfInput() {
		return true
	}
	if follow.Contains(tok.ID()) {
		return true
	}
	if h.MaxSkip > 0 && h.skipped >= h.MaxSkip {
		return true
	}
	h.skipped++
	return false
}
