package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/taul/symbol"
)

func Test_Reader_peekDoesNotAdvance(t *testing.T) {
	r := NewReader("ab")
	g := r.Peek()
	assert.Equal(t, 'a', g.CodePoint())
	assert.Equal(t, 0, r.Pos())
	g2 := r.Peek()
	assert.Equal(t, g, g2)
}

func Test_Reader_nextAdvancesByGlyphLength(t *testing.T) {
	r := NewReader("aéb")
	g := r.Next()
	assert.Equal(t, 'a', g.CodePoint())
	assert.Equal(t, 1, r.Pos())

	g = r.Next()
	assert.Equal(t, 'é', g.CodePoint())
	assert.Equal(t, 3, r.Pos())

	g = r.Next()
	assert.Equal(t, 'b', g.CodePoint())
	assert.Equal(t, 4, r.Pos())
}

func Test_Reader_doneAtEndOfInput(t *testing.T) {
	r := NewReader("a")
	assert.False(t, r.Done())
	r.Next()
	assert.True(t, r.Done())
	g := r.Peek()
	assert.True(t, g.IsEndOfInput())
}

func Test_Reader_resetRepositionsCursor(t *testing.T) {
	r := NewReader("abc")
	r.Next()
	r.Next()
	assert.Equal(t, 2, r.Pos())
	r.Reset(0)
	assert.Equal(t, 0, r.Pos())
	g := r.Next()
	assert.Equal(t, 'a', g.CodePoint())
}

func Test_Reader_undecodableByteYieldsFailureGlyph(t *testing.T) {
	r := NewReader(string([]byte{0xff}))
	g := r.Next()
	assert.True(t, g.IsFailure())
	assert.Equal(t, 1, g.Len)
}

func Test_Reader_bindNotifiesObserverOnNext(t *testing.T) {
	r := NewReader("ab")
	var seen []symbol.Glyph
	r.Bind(func(g symbol.Glyph) { seen = append(seen, g) })

	r.Peek()
	assert.Empty(t, seen, "Peek must not notify the observer")

	r.Next()
	r.Next()
	if assert.Len(t, seen, 2) {
		assert.Equal(t, 'a', seen[0].CodePoint())
		assert.Equal(t, 'b', seen[1].CodePoint())
	}
}

func Test_Reader_bindNilDetachesObserver(t *testing.T) {
	r := NewReader("a")
	called := false
	r.Bind(func(symbol.Glyph) { called = true })
	r.Bind(nil)
	r.Next()
	assert.False(t, called)
}
