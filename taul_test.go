package taul

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/taul/source"
	"github.com/dekarrin/taul/spec"
)

func Test_Load_and_Parse_endToEnd(t *testing.T) {
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

	var ec Counter
	g, ok := Load(w.Done(), uuid.New(), &ec)
	require.True(t, ok, "errors: %v", ec.Errors())
	require.NotNil(t, g)

	parseSrc := source.New("42")
	var parseEc Counter
	tr, ok := Parse(g, parseSrc, &parseEc)
	require.True(t, ok, "errors: %v", parseEc.Errors())
	assert.False(t, tr.IsAborted())
}
