package taulconfig

import (
	"strings"
	"testing"

	"github.com/dekarrin/taul/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Decode_zeroValueIsUsable(t *testing.T) {
	var o Options
	assert.False(t, o.StrictAmbiguity)
	assert.False(t, o.DisablePrecedenceRewrite)
	assert.Equal(t, 0, o.MaxErrorLookahead)
}

func Test_Decode_fromBytes(t *testing.T) {
	data := []byte(`
strict_ambiguity = true
max_error_lookahead = 5
`)
	o, err := Decode(data)
	require.NoError(t, err)
	assert.True(t, o.StrictAmbiguity)
	assert.Equal(t, 5, o.MaxErrorLookahead)
}

func Test_DecodeReader_fromIOReader(t *testing.T) {
	r := strings.NewReader(`default_skip_qualifier = true`)
	o, err := DecodeReader(r)
	require.NoError(t, err)
	assert.True(t, o.DefaultSkipQualifier)
}

func Test_DecodeInvalidTOML_errors(t *testing.T) {
	_, err := Decode([]byte(`not = valid = toml`))
	assert.Error(t, err)
}

func Test_NewErrorHandler_honorsMaxErrorLookahead(t *testing.T) {
	o := Options{MaxErrorLookahead: 3}
	h := o.NewErrorHandler()
	require.NotNil(t, h)
	rh, ok := h.(*pipeline.RegularErrorHandler)
	require.True(t, ok)
	assert.Equal(t, 3, rh.MaxSkip)
}
