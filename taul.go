package taul

import (
	"github.com/google/uuid"

	"github.com/dekarrin/taul/grammar"
	"github.com/dekarrin/taul/pipeline"
	"github.com/dekarrin/taul/source"
	"github.com/dekarrin/taul/spec"
	"github.com/dekarrin/taul/taulerr"
	"github.com/dekarrin/taul/tree"
)

// Grammar is the assembled, immutable result of Load: rule storage, id
// allocation, and parse tables, ready to drive any number of pipelines.
type Grammar = grammar.Grammar

// Tree is a sealed parse tree produced by a Parser.
type Tree = tree.Tree

// Counter accumulates errors across a Load or parse, per spec.md §7's
// "first error cancels downstream building" propagation rule.
type Counter = taulerr.Counter

// Reader is the code-point cursor pipeline.Lexer drives over source text.
type Reader = pipeline.Reader

// Lexer tokenizes source text against a Grammar's LPRs.
type Lexer = pipeline.Lexer

// Parser drives a Lexer and Listener over a Grammar's PPRs.
type Parser = pipeline.Parser

// Listener receives structural events as a Parser works; *tree.Builder
// implements it.
type Listener = pipeline.Listener

// ErrorHandler decides how a Parser recovers from a syntax error.
type ErrorHandler = pipeline.ErrorHandler

// Load validates, lowers, and builds s into a Grammar, the way
// internal/ictiobus.NewParser et al. wrap their subpackages' own
// constructors behind one front door. Errors are accumulated into ec; Load
// returns (nil, false) on any error, a non-nil Grammar on success, mirroring
// spec.md §7's "load(spec) returns a grammar on zero errors or nothing on
// any error" contract. buildID stamps the grammar's BuildID (e.g. uuid.New()
// for a fresh build, or a caller-supplied value when reproducing one).
func Load(s spec.Spec, buildID uuid.UUID, ec *taulerr.Counter) (*Grammar, bool) {
	return grammar.Load(s, buildID, ec)
}

// NewReader returns a Reader positioned at the start of text.
func NewReader(text string) *Reader {
	return pipeline.NewReader(text)
}

// NewLexer returns a Lexer that tokenizes reader's text against g's LPRs.
func NewLexer(g *Grammar, reader *Reader) *Lexer {
	return pipeline.NewLexer(g, reader)
}

// NewParser returns a Parser driving lx over g's PPRs, reporting errors into
// ec with positions resolved against src. onError may be nil, in which case
// the parser aborts on the first syntax error
// (pipeline.NoRecoveryErrorHandler's behavior) rather than attempting
// recovery.
func NewParser(g *Grammar, lx *Lexer, src *source.Code, ec *taulerr.Counter, onError ErrorHandler) *Parser {
	return pipeline.NewParser(g, lx, src, ec, onError)
}

// Parse is a convenience entry point combining NewReader, NewLexer, and
// NewParser for the common case of parsing a whole source.Code in one call,
// with no custom error recovery, the way a caller reaching only for
// taul.Parse never needs to touch the pipeline subpackage at all.
func Parse(g *Grammar, src *source.Code, ec *taulerr.Counter) (*Tree, bool) {
	lx := NewLexer(g, NewReader(src.Text()))
	p := NewParser(g, lx, src, ec, nil)
	return p.Parse()
}
