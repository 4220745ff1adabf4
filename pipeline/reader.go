// Package pipeline implements the runtime Reader -> Lexer -> Parser chain
// of spec.md §4.5: a pull-based pipeline where each stage asks the one
// below it for the next symbol only when it needs one, mirroring
// internal/ictiobus/lex.Lexer's own incremental, non-buffering scan loop.
package pipeline

import (
	"unicode/utf8"

	"github.com/dekarrin/taul/symbol"
)

// Reader decodes a source text into a stream of glyphs (single decoded code
// points, or a one-byte Failure glyph for an undecodable byte), tracking a
// byte-offset cursor that Peek/Next/Reset operate on.
type Reader struct {
	text     string
	pos      int
	observer func(symbol.Glyph)
}

// NewReader creates a Reader over text starting at offset 0.
func NewReader(text string) *Reader {
	return &Reader{text: text}
}

// Pos returns the Reader's current byte offset.
func (r *Reader) Pos() int {
	return r.pos
}

// Done returns whether the Reader has reached the end of its text.
func (r *Reader) Done() bool {
	return r.pos >= len(r.text)
}

// Reset moves the Reader's cursor to an arbitrary byte offset; the Lexer
// uses it to back up between the candidate matches it tries at a position.
func (r *Reader) Reset(pos int) {
	r.pos = pos
}

// Bind attaches observer to the Reader; every subsequent call to Next
// invokes it with the glyph just emitted. Passing nil detaches any
// previously bound observer. Peek never notifies the observer, since it
// does not advance the cursor.
func (r *Reader) Bind(observer func(symbol.Glyph)) {
	r.observer = observer
}

// Peek returns the next glyph without consuming it.
func (r *Reader) Peek() symbol.Glyph {
	return r.glyphAt(r.pos)
}

// Next returns the next glyph and advances past it, notifying any bound
// observer with the emitted glyph.
func (r *Reader) Next() symbol.Glyph {
	g := r.glyphAt(r.pos)
	r.pos += g.Len
	if r.observer != nil {
		r.observer(g)
	}
	return g
}

func (r *Reader) glyphAt(pos int) symbol.Glyph {
	if pos >= len(r.text) {
		return symbol.NewEndOfInputGlyph(pos)
	}
	rn, size := utf8.DecodeRuneInString(r.text[pos:])
	if rn == utf8.RuneError && size <= 1 {
		return symbol.NewFailureGlyph(pos)
	}
	return symbol.NewGlyph(rn, pos, size)
}
