package pipeline

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/taul/grammar"
	"github.com/dekarrin/taul/spec"
	"github.com/dekarrin/taul/taulerr"
)

func buildGrammar(t *testing.T, build func(w *spec.Writer)) *grammar.Grammar {
	t.Helper()
	w := spec.NewWriter(nil)
	build(w)

	var ec taulerr.Counter
	g, ok := grammar.Load(w.Done(), uuid.New(), &ec)
	require.True(t, ok, "errors: %v", ec.Errors())
	return g
}

func Test_Lexer_longestMatchWins(t *testing.T) {
	g := buildGrammar(t, func(w *spec.Writer) {
		w.LPRDecl("ws")
		w.LPRDecl("kw_if")
		w.LPRDecl("ident")

		w.LPR("ws", spec.QualSkip)
		w.Charset(" \t\n")
		w.Close()

		w.LPR("kw_if", spec.QualNone)
		w.String("if")
		w.Close()

		w.LPR("ident", spec.QualNone)
		w.KleenePlus()
		w.Charset("a-z")
		w.Close()
		w.Close()
	})

	lx := NewLexer(g, NewReader("ifx"))
	tok := lx.Next()
	identRule, _ := g.Rule("ident")
	assert.Equal(t, identRule.ID, tok.ID())
	assert.Equal(t, 0, tok.Pos)
	assert.Equal(t, 3, tok.Len)
}

func Test_Lexer_skipsNothingItselfJustReportsQualifier(t *testing.T) {
	g := buildGrammar(t, func(w *spec.Writer) {
		w.LPRDecl("ws")
		w.LPR("ws", spec.QualSkip)
		w.Charset(" ")
		w.Close()
	})

	lx := NewLexer(g, NewReader(" "))
	tok := lx.Next()
	wsRule, _ := g.Rule("ws")
	assert.Equal(t, wsRule.ID, tok.ID())
	assert.Equal(t, 1, tok.Len)
}

func Test_Lexer_unmatchedByteProducesFailureToken(t *testing.T) {
	g := buildGrammar(t, func(w *spec.Writer) {
		w.LPRDecl("digit")
		w.LPR("digit", spec.QualNone)
		w.Charset("0-9")
		w.Close()
	})

	lx := NewLexer(g, NewReader("#"))
	tok := lx.Next()
	assert.True(t, tok.IsFailure())
	assert.Equal(t, 1, tok.Len)
}

func Test_Lexer_supportQualifiedRuleInvisibleAtTopLevel(t *testing.T) {
	g := buildGrammar(t, func(w *spec.Writer) {
		w.LPRDecl("digit")
		w.LPRDecl("num")

		w.LPR("digit", spec.QualSupport)
		w.Charset("0-9")
		w.Close()

		w.LPR("num", spec.QualNone)
		w.KleenePlus()
		w.Name("digit")
		w.Close()
		w.Close()
	})

	lx := NewLexer(g, NewReader("1"))
	tok := lx.Next()
	numRule, _ := g.Rule("num")
	assert.Equal(t, numRule.ID, tok.ID())
	assert.Equal(t, 1, tok.Len)
}

func Test_Lexer_endOfInputToken(t *testing.T) {
	g := buildGrammar(t, func(w *spec.Writer) {
		w.LPRDecl("digit")
		w.LPR("digit", spec.QualNone)
		w.Charset("0-9")
		w.Close()
	})

	lx := NewLexer(g, NewReader(""))
	tok := lx.Next()
	assert.True(t, tok.IsEndOfInput())
}
