package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/taul/source"
	"github.com/dekarrin/taul/spec"
	"github.com/dekarrin/taul/taulerr"
)

func Test_Parser_simpleSequence(t *testing.T) {
	g := buildGrammar(t, func(w *spec.Writer) {
		w.LPRDecl("ws")
		w.LPRDecl("plus")
		w.LPRDecl("int")
		w.PPRDecl("expr")

		w.LPR("ws", spec.QualSkip)
		w.Charset(" \t\n")
		w.Close()

		w.LPR("plus", spec.QualNone)
		w.String("+")
		w.Close()

		w.LPR("int", spec.QualNone)
		w.KleenePlus()
		w.Charset("0-9")
		w.Close()
		w.Close()

		w.PPR("expr", spec.QualNone)
		w.Name("int")
		w.Name("plus")
		w.Name("int")
		w.Close()
	})

	src := source.New("1 + 2")
	lx := NewLexer(g, NewReader(src.Text()))
	var ec taulerr.Counter
	p := NewParser(g, lx, src, &ec, nil)

	tr, ok := p.Parse()
	require.True(t, ok, "errors: %v", ec.Errors())
	require.False(t, tr.IsAborted())
	kids := tr.Children(tr.Root())
	require.Len(t, kids, 3)
	assert.Equal(t, "int", tr.At(kids[0]).Name)
	assert.Equal(t, "plus", tr.At(kids[1]).Name)
	assert.Equal(t, "int", tr.At(kids[2]).Name)
}

func Test_Parser_precedenceLeftFold(t *testing.T) {
	g := buildGrammar(t, func(w *spec.Writer) {
		w.LPRDecl("ws")
		w.LPRDecl("plus")
		w.LPRDecl("int")
		w.PPRDecl("e")

		w.LPR("ws", spec.QualSkip)
		w.Charset(" ")
		w.Close()

		w.LPR("plus", spec.QualNone)
		w.String("+")
		w.Close()

		w.LPR("int", spec.QualNone)
		w.KleenePlus()
		w.Charset("0-9")
		w.Close()
		w.Close()

		w.PPR("e", spec.QualPrecedence)
		w.Name("int")
		w.Alternative()
		w.Name("e")
		w.Name("plus")
		w.Name("e")
		w.Close()
	})

	src := source.New("1+2+3")
	lx := NewLexer(g, NewReader(src.Text()))
	var ec taulerr.Counter
	p := NewParser(g, lx, src, &ec, nil)

	tr, ok := p.Parse()
	require.True(t, ok, "errors: %v", ec.Errors())
	require.False(t, tr.IsAborted())

	// Left-leaning shape: ((1+2)+3). Every use of rule "e" (base or operand)
	// produces its own "e" node, so the root's first child is itself an "e"
	// node wrapping "1+2", and the root's last child is an "e" node wrapping
	// the bare int 3.
	root := tr.Root()
	kids := tr.Children(root)
	require.Len(t, kids, 3)
	eRule, _ := g.Rule("e")
	assert.Equal(t, eRule.ID, tr.At(kids[0]).ID)
	assert.Equal(t, eRule.ID, tr.At(kids[2]).ID)

	innerKids := tr.Children(kids[0])
	require.Len(t, innerKids, 3)
	assert.Equal(t, eRule.ID, tr.At(innerKids[0]).ID)
	assert.Equal(t, "1", tr.At(tr.Children(innerKids[0])[0]).Text)
	assert.Equal(t, eRule.ID, tr.At(innerKids[2]).ID)
	assert.Equal(t, "2", tr.At(tr.Children(innerKids[2])[0]).Text)
	assert.Equal(t, "3", tr.At(tr.Children(kids[2])[0]).Text)
}

func Test_Parser_syntaxErrorNoRecovery(t *testing.T) {
	g := buildGrammar(t, func(w *spec.Writer) {
		w.LPRDecl("int")
		w.PPRDecl("expr")

		w.LPR("int", spec.QualNone)
		w.Charset("0-9")
		w.Close()

		w.PPR("expr", spec.QualNone)
		w.Name("int")
		w.Close()
	})

	src := source.New("x")
	lx := NewLexer(g, NewReader(src.Text()))
	var ec taulerr.Counter
	p := NewParser(g, lx, src, &ec, nil)

	tr, ok := p.Parse()
	assert.False(t, ok)
	assert.True(t, tr.IsAborted())
	assert.NotEmpty(t, ec.Errors())
}
