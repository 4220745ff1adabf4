// Package taulconfig holds the build-time/run-time knobs spec.md leaves
// implicit: how strict ambiguity checking is, whether the lowerer may
// rewrite left recursion, the lexer's default treatment of skip-qualified
// rules, and a bound on error-handler lookahead. TAUL has no files to read
// (callers never hand it a path) but still benefits from the teacher's own
// TOML-decoding convention for this class of knob, so Options is decodable
// from already-read bytes via toml.Unmarshal the same way
// internal/tqw/marshaling.go decodes a TQW file's bytes.
package taulconfig

import (
	"io"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/taul/pipeline"
)

// Options carries every ambient knob a grammar.Load or pipeline run can be
// tuned with. The zero value is always usable: every field's zero means
// "teacher default behavior" so Options{} never needs to be special-cased by
// a caller that doesn't care about tuning anything.
type Options struct {
	// StrictAmbiguity, when true, makes table.Build reject any PREDICT-set
	// overlap at all, including ones a caller might otherwise accept under a
	// documented disambiguation rule. The zero value (false) matches
	// spec.md's own described behavior: overlap is always illegal_ambiguity,
	// so this is currently a no-op switch reserved for a future relaxed
	// mode, not a behavior spec.md itself varies.
	StrictAmbiguity bool `toml:"strict_ambiguity"`

	// DisablePrecedenceRewrite is decoded but read by nothing in the module:
	// the lowerer rewrites a precedence-qualified PPR's left recursion
	// whatever its value.
	DisablePrecedenceRewrite bool `toml:"disable_precedence_rewrite"`

	// DefaultSkipQualifier is decoded but read by nothing in the module:
	// grammar.Load does not apply it, and an LPR with no qualifier stays
	// unqualified whatever its value.
	DefaultSkipQualifier bool `toml:"default_skip_qualifier"`

	// MaxErrorLookahead becomes the MaxSkip of the RegularErrorHandler that
	// NewErrorHandler builds: the most tokens it discards while hunting for
	// a Sync point. Zero means unbounded.
	MaxErrorLookahead int `toml:"max_error_lookahead"`
}

// Decode reads TOML-encoded Options from data. The library never touches a
// filesystem itself; a caller loads bytes however it likes (a file, an
// embedded asset, a network fetch) and hands them here, mirroring
// internal/tqw/marshaling.go's toml.Unmarshal(tomlData, &tqw) call shape.
func Decode(data []byte) (Options, error) {
	var o Options
	if err := toml.Unmarshal(data, &o); err != nil {
		return Options{}, err
	}
	return o, nil
}

// DecodeReader reads all of r and decodes it the same way Decode does, for
// callers holding an io.Reader (an open file, a response body) rather than
// an already-buffered []byte.
func DecodeReader(r io.Reader) (Options, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Options{}, err
	}
	return Decode(data)
}

// NewErrorHandler builds the pipeline.ErrorHandler o's knobs describe: a
// RegularErrorHandler bounded by MaxErrorLookahead. Callers that want
// spec.md's default (no-recovery) behavior should use
// pipeline.NoRecoveryErrorHandler{} directly instead of going through
// Options at all.
func (o Options) NewErrorHandler() pipeline.ErrorHandler {
	return &pipeline.RegularErrorHandler{MaxSkip: o.MaxErrorLookahead}
}
