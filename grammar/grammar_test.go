package grammar

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/taul/spec"
	"github.com/dekarrin/taul/taulerr"
)

func Test_Load_buildsGrammar(t *testing.T) {
	w := spec.NewWriter(nil)
	w.LPRDecl("ws")
	w.LPRDecl("int")
	w.PPRDecl("expr")

	w.LPR("ws", spec.QualSkip)
	w.Charset(" \t\n")
	w.Close()

	w.LPR("int", spec.QualNone)
	w.Charset("0-9")
	w.Close()

	w.PPR("expr", spec.QualNone)
	w.Name("int")
	w.Close()

	var ec taulerr.Counter
	g, ok := Load(w.Done(), uuid.New(), &ec)
	require.True(t, ok, "errors: %v", ec.Errors())
	require.NotNil(t, g)

	assert.ElementsMatch(t, []string{"ws", "int"}, g.LPRs())
	assert.Equal(t, []string{"expr"}, g.PPRs())

	start, found := g.StartRule()
	require.True(t, found)
	assert.Equal(t, "expr", start)

	intRule, found := g.Rule("int")
	require.True(t, found)
	assert.True(t, intRule.ID.IsLPR())
}

func Test_Load_failsOnValidationError(t *testing.T) {
	w := spec.NewWriter(nil)
	w.Close() // stray close

	var ec taulerr.Counter
	g, ok := Load(w.Done(), uuid.New(), &ec)
	assert.False(t, ok)
	assert.Nil(t, g)
	assert.NotEmpty(t, ec.Errors())
}
