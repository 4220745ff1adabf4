package pipeline

import (
	"github.com/dekarrin/taul/grammar"
	"github.com/dekarrin/taul/lower"
	"github.com/dekarrin/taul/source"
	"github.com/dekarrin/taul/spec"
	"github.com/dekarrin/taul/symbol"
	"github.com/dekarrin/taul/taulerr"
	"github.com/dekarrin/taul/tree"
)

// Parser drives a Lexer against a Grammar's PPRs, using each rule's
// precomputed PREDICT sets to choose an alternative with one token of
// lookahead (spec.md §4.4), and a Listener to record the resulting
// structure. Precedence-qualified PPRs are driven by a dedicated
// continuation loop (spec.md §4.3): parse one base alternative, then
// repeatedly check whether a tail alternative's stripped-prefix FIRST
// predicts the token now at the front of the stream, left-folding the
// result via Listener.WrapAsFirstChild for as long as one does.
type Parser struct {
	g       *grammar.Grammar
	lx      *Lexer
	src     *source.Code
	ec      *taulerr.Counter
	onError ErrorHandler

	lookahead    symbol.Token
	hasLookahead bool
	pendingSkips []symbol.Token

	// selfStack names the precedence rule(s) whose tail-continuation
	// elements are currently being matched, innermost last. A self-
	// referencing Ref inside those elements must recurse into the rule's
	// base alternatives only (spec.md §4.3's left-fold loop, not a nested
	// copy of it) — otherwise "1+2+3" would right-fold instead of
	// left-fold, since the inner match would itself greedily consume the
	// trailing "+3".
	selfStack []string
}

func (p *Parser) pushSelf(name string) { p.selfStack = append(p.selfStack, name) }
func (p *Parser) popSelf()             { p.selfStack = p.selfStack[:len(p.selfStack)-1] }

func (p *Parser) currentSelf() (string, bool) {
	if len(p.selfStack) == 0 {
		return "", false
	}
	return p.selfStack[len(p.selfStack)-1], true
}

// NewParser creates a Parser reading tokens from lx against g, reporting
// diagnostics (located against src) to ec. A nil onError defaults to
// NoRecoveryErrorHandler.
func NewParser(g *grammar.Grammar, lx *Lexer, src *source.Code, ec *taulerr.Counter, onError ErrorHandler) *Parser {
	if onError == nil {
		onError = NoRecoveryErrorHandler{}
	}
	return &Parser{g: g, lx: lx, src: src, ec: ec, onError: onError}
}

// Parse matches the grammar's start rule against the full token stream,
// builds a parse tree via an internal tree.Builder, and returns it. The
// returned tree's IsAborted reports whether a syntax error forced early
// termination even under a recovering ErrorHandler.
func (p *Parser) Parse() (*tree.Tree, bool) {
	b := tree.NewBuilder()
	ok := p.ParseNoTree(b)
	return b.Done(), ok
}

// ParseNoTree matches the grammar's start rule, driving l for every
// structural event instead of building a tree.Tree directly — for a caller
// that wants to observe a parse without paying for a Tree, or that drives
// its own Listener implementation.
func (p *Parser) ParseNoTree(l Listener) bool {
	l.Startup()
	defer l.Shutdown()

	start, found := p.g.StartRule()
	if !found {
		p.report(nil, "grammar has no start rule")
		return false
	}
	ok := p.matchPPR(start, l)
	return ok
}

func (p *Parser) peek() symbol.Token {
	if !p.hasLookahead {
		p.lookahead = p.nextSignificant()
		p.hasLookahead = true
	}
	return p.lookahead
}

func (p *Parser) advance() symbol.Token {
	tok := p.peek()
	p.hasLookahead = false
	return tok
}

// nextSignificant pulls tokens from the Lexer until one is not
// skip-qualified; skip-qualified tokens never reach the parser's own
// lookahead logic (spec.md §4.2) but are still worth keeping around for a
// Listener that wants to report them, which matchPPR's caller does via
// the pending-skips mechanism below.
func (p *Parser) nextSignificant() symbol.Token {
	for {
		tok := p.lx.Next()
		if tok.IsFailure() || tok.IsEndOfInput() {
			return tok
		}
		if tok.Rule != nil && spec.Qualifier(tok.Rule.Qualifier).Has(spec.QualSkip) {
			p.pendingSkips = append(p.pendingSkips, tok)
			continue
		}
		return tok
	}
}

func (p *Parser) flushSkips(l Listener) {
	for _, tok := range p.pendingSkips {
		name := "?"
		if tok.Rule != nil {
			name = tok.Rule.Name
		}
		l.Skip(tok.ID(), name, tok.Pos, tok.Len, p.textOf(tok))
	}
	p.pendingSkips = nil
}

func (p *Parser) report(tok *symbol.Token, format string, args ...any) {
	loc := source.Location{}
	hasLoc := false
	if tok != nil && p.src != nil {
		loc = p.src.Resolve(tok.Pos)
		hasLoc = true
	}
	p.ec.Report(taulerr.New(taulerr.ErrSyntaxError, loc, hasLoc, format, args...))
}

// matchPPR matches named PPR rule against the token stream, driving l for
// the resulting structure.
func (p *Parser) matchPPR(name string, l Listener) bool {
	rule, found := p.g.Rule(name)
	if !found {
		p.report(nil, "rule %q not found", name)
		return false
	}

	info, hasPrecedence := p.g.Precedence[name]
	if !hasPrecedence {
		return p.matchAlternatives(rule, allAltIndices(len(rule.Def.Alternatives)), name, l)
	}

	handle, ok := p.matchOneOf(rule, info.BaseAltIndices, name, l)
	if !ok {
		return false
	}
	for {
		tok := p.peek()
		matchedTail := -1
		for _, ai := range info.TailAltIndices {
			predict := rule.Table.Predict[ai]
			if predict.Contains(tok.ID()) {
				matchedTail = ai
				break
			}
		}
		if matchedTail < 0 {
			break
		}
		p.flushSkips(l)
		l.WrapAsFirstChild(handle, rule.ID, name)
		p.pushSelf(name)
		ok := p.matchElements(rule.Def.Alternatives[matchedTail], l)
		p.popSelf()
		if !ok {
			return false
		}
		handle = l.Close()
	}
	return true
}

// matchSelfBaseOnly matches name's base alternatives only, with no
// continuation loop — the right-operand position of one of name's own tail
// alternatives, which must not itself re-run name's left-fold loop.
func (p *Parser) matchSelfBaseOnly(name string, l Listener) bool {
	rule, found := p.g.Rule(name)
	if !found {
		p.report(nil, "rule %q not found", name)
		return false
	}
	info := p.g.Precedence[name]
	return p.matchAlternatives(rule, info.BaseAltIndices, name, l)
}

func allAltIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// matchAlternatives opens a Syntactic node for rule, picks one of the given
// alternative indices by PREDICT, matches it, and closes the node.
func (p *Parser) matchAlternatives(rule grammar.Rule, indices []int, name string, l Listener) bool {
	_, ok := p.matchOneOf(rule, indices, name, l)
	return ok
}

// matchOneOf opens a Syntactic node for rule, matches whichever of the given
// alternative indices is predicted by the current lookahead, closes the
// node, and returns its handle.
func (p *Parser) matchOneOf(rule grammar.Rule, indices []int, name string, l Listener) (int, bool) {
	p.flushSkips(l)
	tok := p.peek()

	chosen := -1
	for _, ai := range indices {
		if rule.Table.Predict[ai].Contains(tok.ID()) {
			chosen = ai
			break
		}
	}

	handle := l.Syntactic(rule.ID, name, tok.Pos)
	if chosen < 0 {
		retry := p.onError.Recover(tok, name)
		p.report(&tok, "unexpected token in rule %q", name)
		l.Abort()
		if !retry {
			l.Close()
			return handle, false
		}
		follow := p.g.Follow(name)
		for !p.onError.Sync(p.peek(), follow) {
			p.advance()
		}
		l.Close()
		return handle, false
	}

	if !p.matchElements(rule.Def.Alternatives[chosen], l) {
		l.Close()
		return handle, false
	}
	handle = l.Close()
	return handle, true
}

func (p *Parser) matchElements(elems []lower.Element, l Listener) bool {
	for _, e := range elems {
		if !p.matchElement(e, l) {
			return false
		}
	}
	return true
}

func (p *Parser) matchElement(e lower.Element, l Listener) bool {
	switch e.Kind {
	case lower.ElemToken:
		return p.consumeAnyToken(l)
	case lower.ElemFailure:
		return p.consumeFailureToken(l)
	case lower.ElemEnd:
		tok := p.peek()
		return tok.IsEndOfInput()
	case lower.ElemRef:
		if e.RefIsLPR {
			return p.consumeSpecificLPR(e.RefName, l)
		}
		if self, ok := p.currentSelf(); ok && self == e.RefName {
			return p.matchSelfBaseOnly(e.RefName, l)
		}
		return p.matchPPR(e.RefName, l)
	case lower.ElemSequence:
		return p.matchElements(e.Children, l)
	case lower.ElemChoice:
		return p.matchChoice(e, l)
	case lower.ElemLookahead:
		return p.matchAssertionOnly(e, false)
	case lower.ElemLookaheadNot:
		return p.matchAssertionOnly(e, true)
	case lower.ElemNot:
		return p.matchNot(e, l)
	case lower.ElemOptional:
		if p.elementPredicted(e) {
			return p.matchElements(e.Children, l)
		}
		return true
	case lower.ElemKleeneStar:
		for p.elementPredicted(e) {
			if !p.matchElements(e.Children, l) {
				return false
			}
		}
		return true
	case lower.ElemKleenePlus:
		if !p.matchElements(e.Children, l) {
			return false
		}
		for p.elementPredicted(e) {
			if !p.matchElements(e.Children, l) {
				return false
			}
		}
		return true
	}
	return false
}

// elementPredicted reports whether the current lookahead token could begin
// e's body, a coarse per-element lookahead check used to drive Optional and
// the two Kleene quantifiers (which have no alternative-level PREDICT set of
// their own to consult, unlike a rule's top-level alternatives).
func (p *Parser) elementPredicted(e lower.Element) bool {
	tok := p.peek()
	for _, c := range e.Children {
		if p.elementStartsWith(c, tok) {
			return true
		}
	}
	return false
}

func (p *Parser) elementStartsWith(e lower.Element, tok symbol.Token) bool {
	switch e.Kind {
	case lower.ElemToken:
		return !tok.IsFailure() && !tok.IsEndOfInput()
	case lower.ElemFailure:
		return tok.IsFailure()
	case lower.ElemEnd:
		return tok.IsEndOfInput()
	case lower.ElemRef:
		if e.RefIsLPR {
			return tok.ID() == p.lprID(e.RefName)
		}
		rule, found := p.g.Rule(e.RefName)
		if !found {
			return false
		}
		return p.g.First(e.RefName).Contains(tok.ID()) || len(rule.Def.Alternatives) == 0
	case lower.ElemSequence:
		if len(e.Children) == 0 {
			return true
		}
		return p.elementStartsWith(e.Children[0], tok)
	case lower.ElemChoice:
		for _, alt := range e.Alts {
			if len(alt) > 0 && p.elementStartsWith(alt[0], tok) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

func (p *Parser) lprID(name string) symbol.ID {
	rule, _ := p.g.Rule(name)
	return rule.ID
}

func (p *Parser) matchChoice(e lower.Element, l Listener) bool {
	tok := p.peek()
	for _, alt := range e.Alts {
		if len(alt) == 0 || p.elementStartsWith(alt[0], tok) {
			return p.matchElements(alt, l)
		}
	}
	p.report(&tok, "no alternative of a parenthesized group matched")
	return false
}

// matchAssertionOnly checks the lookahead/lookahead_not assertion without
// consuming any input, per spec.md's zero-width assertion semantics.
func (p *Parser) matchAssertionOnly(e lower.Element, negate bool) bool {
	tok := p.peek()
	matched := false
	if len(e.Children) > 0 {
		matched = p.elementStartsWith(e.Children[0], tok)
	}
	if negate {
		return !matched
	}
	return matched
}

// matchNot consumes exactly one token, succeeding only if it does not match
// the negated child — a "not" never succeeds at end-of-input (there is no
// token there to be something other than the forbidden shape).
func (p *Parser) matchNot(e lower.Element, l Listener) bool {
	tok := p.peek()
	if tok.IsEndOfInput() {
		return false
	}
	if len(e.Children) > 0 && p.elementStartsWith(e.Children[0], tok) {
		return false
	}
	return p.consumeAnyToken(l)
}

func (p *Parser) consumeAnyToken(l Listener) bool {
	p.flushSkips(l)
	tok := p.advance()
	if tok.IsFailure() || tok.IsEndOfInput() {
		return false
	}
	name := "?"
	if tok.Rule != nil {
		name = tok.Rule.Name
	}
	l.Lexical(tok.ID(), name, tok.Pos, tok.Len, p.textOf(tok))
	return true
}

func (p *Parser) consumeSpecificLPR(name string, l Listener) bool {
	p.flushSkips(l)
	tok := p.peek()
	if tok.ID() != p.lprID(name) {
		p.report(&tok, "expected %q", name)
		return false
	}
	p.advance()
	l.Lexical(tok.ID(), name, tok.Pos, tok.Len, p.textOf(tok))
	return true
}

func (p *Parser) consumeFailureToken(l Listener) bool {
	p.flushSkips(l)
	tok := p.peek()
	if !tok.IsFailure() {
		return false
	}
	p.advance()
	l.Lexical(tok.ID(), "<failure>", tok.Pos, tok.Len, p.textOf(tok))
	return true
}

func (p *Parser) textOf(tok symbol.Token) string {
	if p.src == nil {
		return ""
	}
	text := p.src.Text()
	if tok.Pos < 0 || tok.Pos+tok.Len > len(text) {
		return ""
	}
	return text[tok.Pos : tok.Pos+tok.Len]
}
