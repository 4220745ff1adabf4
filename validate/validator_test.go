package validate

import (
	"errors"
	"testing"

	"github.com/dekarrin/taul/spec"
	"github.com/dekarrin/taul/taulerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstKind(t *testing.T, ec *taulerr.Counter) error {
	t.Helper()
	require.NotEmpty(t, ec.Errors())
	return ec.Errors()[0].Kind
}

func Test_Validate_wellFormedLPRAndPPR(t *testing.T) {
	w := spec.NewWriter(nil)
	w.LPRDecl("ws")
	w.PPRDecl("expr")

	w.LPR("ws", spec.QualSkip)
	w.Charset("a-c")
	w.Close()

	w.PPR("expr", spec.QualNone)
	w.Name("ws")
	w.Close()

	var ec taulerr.Counter
	ok := Validate(w.Done(), &ec)
	assert.True(t, ok)
	assert.Empty(t, ec.Errors())
}

func Test_Validate_strayClose(t *testing.T) {
	w := spec.NewWriter(nil)
	w.Close()

	var ec taulerr.Counter
	ok := Validate(w.Done(), &ec)
	assert.False(t, ok)
	assert.ErrorIs(t, firstKind(t, &ec), taulerr.ErrStrayClose)
}

func Test_Validate_undeclaredReference(t *testing.T) {
	w := spec.NewWriter(nil)
	w.LPRDecl("a")
	w.LPR("a", spec.QualNone)
	w.Name("nope")
	w.Close()

	var ec taulerr.Counter
	ok := Validate(w.Done(), &ec)
	assert.False(t, ok)
	assert.True(t, errors.Is(firstKind(t, &ec), taulerr.ErrRuleNeverDeclared))
}

func Test_Validate_multipleQualifiers(t *testing.T) {
	w := spec.NewWriter(nil)
	w.LPRDecl("a")
	w.LPR("a", spec.QualSkip|spec.QualSupport)
	w.Any()
	w.Close()

	var ec taulerr.Counter
	ok := Validate(w.Done(), &ec)
	assert.False(t, ok)
	assert.True(t, errors.Is(firstKind(t, &ec), taulerr.ErrIllegalMultipleQualifiers))
}

func Test_Validate_illegalQualifierForKind(t *testing.T) {
	w := spec.NewWriter(nil)
	w.PPRDecl("p")
	w.PPR("p", spec.QualSkip)
	w.Token()
	w.Close()

	var ec taulerr.Counter
	ok := Validate(w.Done(), &ec)
	assert.False(t, ok)
	assert.True(t, errors.Is(firstKind(t, &ec), taulerr.ErrIllegalQualifier))
}

func Test_Validate_tokenIllegalInLPRScope(t *testing.T) {
	w := spec.NewWriter(nil)
	w.LPRDecl("a")
	w.LPR("a", spec.QualNone)
	w.Token()
	w.Close()

	var ec taulerr.Counter
	ok := Validate(w.Done(), &ec)
	assert.False(t, ok)
	assert.True(t, errors.Is(firstKind(t, &ec), taulerr.ErrIllegalInLPRScope))
}

func Test_Validate_charsetIllegalInPPRScope(t *testing.T) {
	w := spec.NewWriter(nil)
	w.PPRDecl("p")
	w.PPR("p", spec.QualNone)
	w.Charset("a-z")
	w.Close()

	var ec taulerr.Counter
	ok := Validate(w.Done(), &ec)
	assert.False(t, ok)
	assert.True(t, errors.Is(firstKind(t, &ec), taulerr.ErrIllegalInPPRScope))
}

// boundary scenario S3: `f: -end;` — end legal as an assertion's own direct,
// unwrapped content; lookahead_not's own frame carries no
// no-end-subexpression mark.
func Test_Validate_endDirectlyUnderLookaheadNotIsLegal(t *testing.T) {
	w := spec.NewWriter(nil)
	w.LPRDecl("f")
	w.LPR("f", spec.QualNone)
	w.LookaheadNot()
	w.End()
	w.Close()
	w.Close()

	var ec taulerr.Counter
	ok := Validate(w.Done(), &ec)
	assert.True(t, ok)
	assert.Empty(t, ec.Errors())
}

// end nested inside a sequence opened directly under lookahead_not is still
// illegal: the mark propagates through an explicit grouping. The sequence
// itself is reported first, as illegal in lookahead_not's single-terminal
// scope; the end inside it is reported after that.
func Test_Validate_endInsideSequenceUnderLookaheadNotIsIllegal(t *testing.T) {
	w := spec.NewWriter(nil)
	w.LPRDecl("f")
	w.LPR("f", spec.QualNone)
	w.LookaheadNot()
	w.Sequence()
	w.End()
	w.Any()
	w.Close() // close sequence
	w.Close() // close lookahead_not
	w.Close() // close lpr

	var ec taulerr.Counter
	ok := Validate(w.Done(), &ec)
	assert.False(t, ok)
	assert.True(t, errors.Is(firstKind(t, &ec), taulerr.ErrIllegalInSingleTerminalScope))
	sawNoEnd := false
	for _, e := range ec.Errors() {
		if errors.Is(e.Kind, taulerr.ErrIllegalInNoEndSubexprScope) {
			sawNoEnd = true
		}
	}
	assert.True(t, sawNoEnd)
}

// boundary scenario S4: `f: ~[abc];` — a charset is a legal single terminal
// inside not.
func Test_Validate_charsetInsideNotIsLegal(t *testing.T) {
	w := spec.NewWriter(nil)
	w.LPRDecl("f")
	w.LPR("f", spec.QualNone)
	w.Not()
	w.Charset("abc")
	w.Close()
	w.Close()

	var ec taulerr.Counter
	ok := Validate(w.Done(), &ec)
	assert.True(t, ok)
	assert.Empty(t, ec.Errors())
}

// `f: &('a' 'b');` — a sequence of two strings opened directly under
// lookahead is illegal: lookahead marks single-terminal just like not.
func Test_Validate_sequenceInsideLookaheadIsIllegal(t *testing.T) {
	w := spec.NewWriter(nil)
	w.LPRDecl("f")
	w.LPR("f", spec.QualNone)
	w.Lookahead()
	w.Sequence()
	w.String("a")
	w.String("b")
	w.Close() // close sequence
	w.Close() // close lookahead
	w.Close() // close lpr

	var ec taulerr.Counter
	ok := Validate(w.Done(), &ec)
	assert.False(t, ok)
	assert.True(t, errors.Is(firstKind(t, &ec), taulerr.ErrIllegalInSingleTerminalScope))
}

// `f: &(x?);` — a quantifier opened directly under lookahead is illegal for
// the same reason.
func Test_Validate_quantifierInsideLookaheadIsIllegal(t *testing.T) {
	w := spec.NewWriter(nil)
	w.LPRDecl("x")
	w.LPRDecl("f")
	w.LPR("x", spec.QualNone)
	w.Any()
	w.Close()

	w.LPR("f", spec.QualNone)
	w.Lookahead()
	w.Optional()
	w.Name("x")
	w.Close() // close optional
	w.Close() // close lookahead
	w.Close() // close lpr

	var ec taulerr.Counter
	ok := Validate(w.Done(), &ec)
	assert.False(t, ok)
	assert.True(t, errors.Is(firstKind(t, &ec), taulerr.ErrIllegalInSingleTerminalScope))
}

// lookahead_not carries the same restriction as lookahead.
func Test_Validate_sequenceInsideLookaheadNotIsIllegal(t *testing.T) {
	w := spec.NewWriter(nil)
	w.LPRDecl("f")
	w.LPR("f", spec.QualNone)
	w.LookaheadNot()
	w.Sequence()
	w.String("a")
	w.String("b")
	w.Close() // close sequence
	w.Close() // close lookahead_not
	w.Close() // close lpr

	var ec taulerr.Counter
	ok := Validate(w.Done(), &ec)
	assert.False(t, ok)
	assert.True(t, errors.Is(firstKind(t, &ec), taulerr.ErrIllegalInSingleTerminalScope))
}

func Test_Validate_twoPrimariesInsideNotIsIllegal(t *testing.T) {
	w := spec.NewWriter(nil)
	w.LPRDecl("f")
	w.LPR("f", spec.QualNone)
	w.Not()
	w.Any()
	w.Any()
	w.Close()
	w.Close()

	var ec taulerr.Counter
	ok := Validate(w.Done(), &ec)
	assert.False(t, ok)
	assert.True(t, errors.Is(firstKind(t, &ec), taulerr.ErrIllegalInSingleSubexprScope))
}

func Test_Validate_ruleDeclaredButNeverDefined(t *testing.T) {
	w := spec.NewWriter(nil)
	w.LPRDecl("a")
	w.LPRDecl("b")
	w.LPR("a", spec.QualNone)
	w.Any()
	w.Close()

	var ec taulerr.Counter
	ok := Validate(w.Done(), &ec)
	assert.False(t, ok)
	assert.True(t, errors.Is(firstKind(t, &ec), taulerr.ErrRuleNeverDefined))
}

func Test_Validate_declarationAfterDefinitionIsIllegal(t *testing.T) {
	w := spec.NewWriter(nil)
	w.LPRDecl("a")
	w.LPR("a", spec.QualNone)
	w.Any()
	w.Close()
	w.LPRDecl("b")

	var ec taulerr.Counter
	ok := Validate(w.Done(), &ec)
	assert.False(t, ok)
	assert.True(t, errors.Is(firstKind(t, &ec), taulerr.ErrIllegalRuleDeclare))
}

func Test_Validate_referencingPPRFromLPRScopeIsIllegal(t *testing.T) {
	w := spec.NewWriter(nil)
	w.LPRDecl("a")
	w.PPRDecl("p")
	w.LPR("a", spec.QualNone)
	w.Name("p")
	w.Close()
	w.PPR("p", spec.QualNone)
	w.Token()
	w.Close()

	var ec taulerr.Counter
	ok := Validate(w.Done(), &ec)
	assert.False(t, ok)
	assert.True(t, errors.Is(firstKind(t, &ec), taulerr.ErrRuleMayNotBePPR))
}
