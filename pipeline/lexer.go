package pipeline

import (
	"github.com/dekarrin/taul/grammar"
	"github.com/dekarrin/taul/lower"
	"github.com/dekarrin/taul/spec"
	"github.com/dekarrin/taul/symbol"
)

// Lexer drives a Reader against a Grammar's LPRs to produce the longest
// matching token at each position, per spec.md §4.5: every LPR is tried,
// the longest successful match wins (ties broken by definition order), and
// a position with no match at all produces a one-length failure token —
// even when some LPR matched zero length there, since a zero-length
// successful match is never allowed to stand in for real progress. Every
// code point the Lexer actually consumes is read through reader.Peek/Next,
// so an observer bound to the Reader sees it, the same pull-based
// Reader→Lexer split spec.md §4.5 describes for the two roles.
type Lexer struct {
	g      *grammar.Grammar
	reader *Reader
}

// NewLexer creates a Lexer driving reader against g's LPRs.
func NewLexer(g *grammar.Grammar, reader *Reader) *Lexer {
	return &Lexer{g: g, reader: reader}
}

// Next returns the next token and advances the reader past it. Skip- and
// support-qualified tokens are returned like any other at top level, save
// for support itself: spec.md §4.5 rule 1 makes a support-qualified LPR
// invisible at top level (it is reachable only via a name reference from
// another rule), so it is excluded from the candidates tried here. It is
// the Parser's job to decide which qualifiers (skip) it silently filters
// from its own view.
func (lx *Lexer) Next() symbol.Token {
	pos := lx.reader.Pos()
	if lx.reader.Done() {
		return symbol.NewEndOfInputToken(pos)
	}

	bestLen := -1
	var bestRule string
	for _, name := range lx.g.LPRs() {
		rule, found := lx.g.Rule(name)
		if !found || rule.Qualifier.Has(spec.QualSupport) {
			continue
		}
		n, ok := lx.tryMatch(name, pos)
		if !ok {
			continue
		}
		length := n - pos
		if length == 0 {
			// A zero-length match never stands, at any position; if nothing
			// longer matches, the one-length failure token below is produced.
			continue
		}
		if length > bestLen {
			bestLen = length
			bestRule = name
		}
	}

	if bestLen < 0 {
		lx.reader.Reset(pos)
		g := lx.reader.Next()
		return symbol.NewFailureToken(pos, g.Len)
	}

	rule, _ := lx.g.Rule(bestRule)
	lx.reader.Reset(pos)
	for lx.reader.Pos() < pos+bestLen {
		lx.reader.Next()
	}
	ref := &symbol.RuleRef{Name: bestRule, Qualifier: uint8(rule.Qualifier)}
	return symbol.NewToken(rule.ID, pos, bestLen, ref)
}

// glyphAt reads the glyph at an arbitrary byte offset without committing to
// it: every exploratory match attempt (including ones on a losing
// alternative or a losing LPR) goes through this rather than Next, so only
// the winning match's glyphs are ever actually consumed (and observed) by
// Next above.
func (lx *Lexer) glyphAt(pos int) symbol.Glyph {
	lx.reader.Reset(pos)
	return lx.reader.Peek()
}

// tryMatch attempts to match LPR rule name starting at byte offset pos,
// returning the byte offset just past the match on success. A support- or
// skip-qualified rule is still reachable here: this is used both for
// top-level candidates (already filtered by Next) and for a name reference
// invoking another LPR as a subroutine, where qualifiers play no role.
func (lx *Lexer) tryMatch(name string, pos int) (int, bool) {
	rule, found := lx.g.Rule(name)
	if !found {
		return pos, false
	}
	for _, alt := range rule.Def.Alternatives {
		if end, ok := lx.matchElements(alt, pos); ok {
			return end, true
		}
	}
	return pos, false
}

func (lx *Lexer) matchElements(elems []lower.Element, pos int) (int, bool) {
	cur := pos
	for _, e := range elems {
		next, ok := lx.matchElement(e, cur)
		if !ok {
			return pos, false
		}
		cur = next
	}
	return cur, true
}

func (lx *Lexer) matchElement(e lower.Element, pos int) (int, bool) {
	switch e.Kind {
	case lower.ElemString:
		return lx.matchString(e.Str, pos)
	case lower.ElemCharset:
		return lx.matchOneRune(pos, func(r rune) bool { return e.Charset.Contains(symbol.FromCodePoint(r)) })
	case lower.ElemAny:
		return lx.matchOneRune(pos, func(rune) bool { return true })
	case lower.ElemEnd:
		g := lx.glyphAt(pos)
		return pos, g.IsEndOfInput()
	case lower.ElemRef:
		if !e.RefIsLPR {
			return pos, false
		}
		return lx.tryMatch(e.RefName, pos)
	case lower.ElemSequence:
		return lx.matchElements(e.Children, pos)
	case lower.ElemChoice:
		for _, alt := range e.Alts {
			if end, ok := lx.matchElements(alt, pos); ok {
				return end, true
			}
		}
		return pos, false
	case lower.ElemLookahead:
		if _, ok := lx.matchChild(e, pos); ok {
			return pos, true
		}
		return pos, false
	case lower.ElemLookaheadNot:
		if _, ok := lx.matchChild(e, pos); ok {
			return pos, false
		}
		return pos, true
	case lower.ElemNot:
		g := lx.glyphAt(pos)
		if g.IsEndOfInput() {
			return pos, false
		}
		_, matched := lx.matchChild(e, pos)
		if matched {
			return pos, false
		}
		return pos + g.Len, true
	case lower.ElemOptional:
		if end, ok := lx.matchChild(e, pos); ok {
			return end, true
		}
		return pos, true
	case lower.ElemKleeneStar:
		return lx.matchRepeated(e, pos), true
	case lower.ElemKleenePlus:
		end := lx.matchRepeated(e, pos)
		if end == pos {
			return pos, false
		}
		return end, true
	}
	return pos, false
}

func (lx *Lexer) matchChild(e lower.Element, pos int) (int, bool) {
	if len(e.Children) == 0 {
		return pos, true
	}
	return lx.matchElement(e.Children[0], pos)
}

func (lx *Lexer) matchRepeated(e lower.Element, pos int) int {
	cur := pos
	for {
		next, ok := lx.matchChild(e, cur)
		if !ok || next == cur {
			return cur
		}
		cur = next
	}
}

func (lx *Lexer) matchString(s string, pos int) (int, bool) {
	cur := pos
	for _, want := range s {
		g := lx.glyphAt(cur)
		if g.IsFailure() || g.IsEndOfInput() || g.CodePoint() != want {
			return pos, false
		}
		cur += g.Len
	}
	return cur, true
}

func (lx *Lexer) matchOneRune(pos int, pred func(rune) bool) (int, bool) {
	g := lx.glyphAt(pos)
	if g.IsFailure() || g.IsEndOfInput() {
		return pos, false
	}
	if !pred(g.CodePoint()) {
		return pos, false
	}
	return pos + g.Len, true
}
