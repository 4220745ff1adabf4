package tree

import (
	"testing"

	"github.com/dekarrin/taul/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Builder_flatLeafSequence(t *testing.T) {
	b := NewBuilder()
	b.Lexical(symbol.LPRID(0), "int", 0, 1, "1")
	b.Lexical(symbol.LPRID(1), "plus", 1, 1, "+")
	b.Lexical(symbol.LPRID(0), "int", 2, 1, "2")
	tr := b.Done()

	require.Len(t, tr.Nodes(), 3)
	assert.Nil(t, tr.Children(tr.Root()))
}

func Test_Builder_nestedSyntactic(t *testing.T) {
	b := NewBuilder()
	b.Syntactic(symbol.PPRID(0), "expr", 0)
	b.Lexical(symbol.LPRID(0), "int", 0, 1, "1")
	b.Syntactic(symbol.PPRID(1), "tail", 1)
	b.Lexical(symbol.LPRID(1), "plus", 1, 1, "+")
	b.Lexical(symbol.LPRID(0), "int", 2, 1, "2")
	b.Close() // tail
	b.Close() // expr
	tr := b.Done()

	root := tr.At(tr.Root())
	assert.Equal(t, 0, root.Pos)
	assert.Equal(t, 3, root.Len)

	kids := tr.Children(tr.Root())
	require.Len(t, kids, 2)
	tailNode := tr.At(kids[1])
	assert.Equal(t, "tail", tailNode.Name)
	assert.Equal(t, 2, tailNode.Len)
}

func Test_Pattern_looseMatchIgnoresExtraChildren(t *testing.T) {
	b := NewBuilder()
	b.Syntactic(symbol.PPRID(0), "expr", 0)
	b.Lexical(symbol.LPRID(0), "int", 0, 1, "1")
	b.Lexical(symbol.LPRID(1), "plus", 1, 1, "+")
	b.Lexical(symbol.LPRID(0), "int", 2, 1, "2")
	b.Close()
	tr := b.Done()

	p := Pattern{ID: symbol.PPRID(0), Children: []Pattern{{ID: symbol.LPRID(0)}}}
	idx, found := Find(tr, p)
	require.True(t, found)
	assert.Equal(t, tr.Root(), idx)
}

func Test_Pattern_matchChecksPosAndLen(t *testing.T) {
	b := NewBuilder()
	b.Lexical(symbol.LPRID(0), "int", 0, 1, "1")
	b.Lexical(symbol.LPRID(0), "int", 1, 2, "22")
	tr := b.Done()

	assert.True(t, Lexical(symbol.LPRID(0), 1, 2).Match(tr, 1))
	assert.False(t, Lexical(symbol.LPRID(0), 0, 2).Match(tr, 1), "wrong pos must not match")
	assert.False(t, Lexical(symbol.LPRID(0), 1, 1).Match(tr, 1), "wrong len must not match")
}

func Test_Pattern_syntacticStrictRequiresExactChildCount(t *testing.T) {
	b := NewBuilder()
	b.Syntactic(symbol.PPRID(0), "expr", 0)
	b.Lexical(symbol.LPRID(0), "int", 0, 1, "1")
	b.Lexical(symbol.LPRID(1), "plus", 1, 1, "+")
	b.Close()
	tr := b.Done()

	ok := Syntactic(symbol.PPRID(0), 0, 2, Lexical(symbol.LPRID(0), 0, 1), Lexical(symbol.LPRID(1), 1, 1))
	assert.True(t, ok.Match(tr, tr.Root()))

	tooFew := Syntactic(symbol.PPRID(0), 0, 2, Lexical(symbol.LPRID(0), 0, 1))
	assert.False(t, tooFew.Match(tr, tr.Root()), "strict pattern must reject a short child list")
}

func Test_Pattern_looseSyntacticTreatsInteriorAsOpaque(t *testing.T) {
	b := NewBuilder()
	b.Syntactic(symbol.PPRID(0), "outer", 0)
	b.Syntactic(symbol.PPRID(1), "inner", 0)
	b.Lexical(symbol.LPRID(0), "int", 0, 1, "1")
	b.Lexical(symbol.LPRID(1), "plus", 1, 1, "+")
	b.Close() // inner
	b.Close() // outer
	tr := b.Done()

	// inner has two children of its own, but the loose pattern only checks
	// its id/pos/len and must not require (or even look at) them.
	p := LooseSyntactic(symbol.PPRID(1), 0, 2)
	idx, found := Find(tr, p)
	require.True(t, found)
	assert.NotEqual(t, tr.Root(), idx)
}

func Test_Tree_equalIgnoresAbortedFlag(t *testing.T) {
	b1 := NewBuilder()
	b1.Lexical(symbol.LPRID(0), "int", 0, 1, "1")
	t1 := b1.Done()

	b2 := NewBuilder()
	b2.Lexical(symbol.LPRID(0), "int", 0, 1, "1")
	b2.Abort()
	t2 := b2.Done()

	assert.True(t, t1.Equal(t2))
	assert.True(t, t2.IsAborted())
	assert.False(t, t1.IsAborted())
}
