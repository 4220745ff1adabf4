package diag

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/taul/grammar"
	"github.com/dekarrin/taul/pipeline"
	"github.com/dekarrin/taul/source"
	"github.com/dekarrin/taul/spec"
	"github.com/dekarrin/taul/taulerr"
)

func loadGrammar(t *testing.T, s spec.Spec) *grammar.Grammar {
	t.Helper()
	var ec taulerr.Counter
	g, ok := grammar.Load(s, uuid.New(), &ec)
	require.True(t, ok, "errors: %v", ec.Errors())
	return g
}

func Test_Disassemble_rendersOneLinePerInstruction(t *testing.T) {
	src := source.New("")
	w := spec.NewWriter(src)
	w.LPRDecl("int")
	w.LPR("int", spec.QualNone)
	w.Charset("0-9")
	w.Close()
	w.Close()

	out := Disassemble(w.Done())
	require.NotEmpty(t, out)
	assert.Contains(t, out, "lpr_decl int")
	assert.Contains(t, out, `charset "0-9"`)
}

func Test_Disassemble_empty(t *testing.T) {
	src := source.New("")
	w := spec.NewWriter(src)
	assert.Empty(t, Disassemble(w.Done()))
}

func Test_Tree_rendersIndentedLines(t *testing.T) {
	src := source.New("")
	w := spec.NewWriter(src)
	w.LPRDecl("ws")
	w.LPRDecl("int")
	w.PPRDecl("expr")

	w.LPR("ws", spec.QualSkip)
	w.Charset(" ")
	w.Close()

	w.LPR("int", spec.QualNone)
	w.KleenePlus()
	w.Charset("0-9")
	w.Close()
	w.Close()

	w.PPR("expr", spec.QualNone)
	w.Name("int")
	w.Close()

	g := loadGrammar(t, w.Done())

	src2 := source.New("1")
	lx := pipeline.NewLexer(g, pipeline.NewReader(src2.Text()))
	var ec taulerr.Counter
	p := pipeline.NewParser(g, lx, src2, &ec, nil)

	tr, ok := p.Parse()
	require.True(t, ok, "errors: %v", ec.Errors())

	out := Tree(tr)
	require.NotEmpty(t, out)
	assert.Contains(t, out, "expr")
	assert.Contains(t, out, `'1'`)
}
