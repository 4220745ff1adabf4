// Package symbol holds the value types shared by every stage of the TAUL
// pipeline: code points and the glyphs built from them, LPR/PPR-keyed token
// symbols, and the canonical range/set machinery used to describe both.
//
// Every rule in a grammar, lexical or syntactic, is allocated exactly one ID
// from this space, and the space is partitioned so membership in a partition
// is an arithmetic test rather than a lookup.
package symbol

import "fmt"

// ID is a symbol identifier: a code point when lexing, an LPR or PPR id when
// parsing, or one of the three sentinels below. The partitions are disjoint
// contiguous ranges of the same underlying integer space.
type ID uint32

// MaxCodePoint is the highest legal Unicode code point (U+10FFFF).
const MaxCodePoint = ID(0x10FFFF)

const (
	// Epsilon sits at the top of the ID space, just below Failure, and
	// denotes the empty match. It is never a legal glyph or token value on its own; it
	// appears only in FIRST-set "includes epsilon" bookkeeping and as the
	// sentinel empty alternative.
	Epsilon ID = 0xFFFFFFFF - 2

	// Failure denotes a lexical or syntactic failure symbol produced when no
	// rule matches at the current position.
	Failure ID = 0xFFFFFFFF - 1

	// EndOfInput denotes the end-of-text sentinel emitted once by the reader,
	// lexer, and parser's implicit bottom-of-stack marker.
	EndOfInput ID = 0xFFFFFFFF
)

// Partition boundaries. Code points occupy [0, MaxCodePoint]. LPR ids and PPR
// ids each get a contiguous block above that, sized generously (2^24 rules is
// far beyond any real grammar) so that no legitimate grammar can collide with
// the sentinels above.
const (
	lprBase ID = MaxCodePoint + 1
	lprSize ID = 1 << 24
	pprBase ID = lprBase + lprSize
	pprSize ID = 1 << 24
	pprEnd  ID = pprBase + pprSize
)

// IsCodePoint returns whether id names a Unicode code point (a legal glyph
// value, not a sentinel).
func (id ID) IsCodePoint() bool {
	return id <= MaxCodePoint
}

// IsLPR returns whether id lies in the lexical production rule partition.
func (id ID) IsLPR() bool {
	return id >= lprBase && id < pprBase
}

// IsPPR returns whether id lies in the parser production rule partition.
func (id ID) IsPPR() bool {
	return id >= pprBase && id < pprEnd
}

// IsSentinel returns whether id is one of Epsilon, Failure, or EndOfInput.
func (id ID) IsSentinel() bool {
	return id == Epsilon || id == Failure || id == EndOfInput
}

// LPRID returns the ID for the n'th allocated LPR (0-indexed).
func LPRID(n int) ID {
	return lprBase + ID(n)
}

// PPRID returns the ID for the n'th allocated PPR (0-indexed).
func PPRID(n int) ID {
	return pprBase + ID(n)
}

// LPROrdinal returns the allocation index of an LPR id; panics if id is not
// an LPR id.
func LPROrdinal(id ID) int {
	if !id.IsLPR() {
		panic(fmt.Sprintf("symbol: %d is not an LPR id", id))
	}
	return int(id - lprBase)
}

// PPROrdinal returns the allocation index of a PPR id; panics if id is not a
// PPR id.
func PPROrdinal(id ID) int {
	if !id.IsPPR() {
		panic(fmt.Sprintf("symbol: %d is not a PPR id", id))
	}
	return int(id - pprBase)
}

// CodePoint converts id to a rune, valid only when id.IsCodePoint().
func (id ID) CodePoint() rune {
	return rune(id)
}

// FromCodePoint wraps a rune as a symbol ID.
func FromCodePoint(cp rune) ID {
	return ID(cp)
}

func (id ID) String() string {
	switch id {
	case Epsilon:
		return "<epsilon>"
	case Failure:
		return "<failure>"
	case EndOfInput:
		return "<end-of-input>"
	}
	if id.IsLPR() {
		return fmt.Sprintf("<lpr#%d>", LPROrdinal(id))
	}
	if id.IsPPR() {
		return fmt.Sprintf("<ppr#%d>", PPROrdinal(id))
	}
	return fmt.Sprintf("%U", id.CodePoint())
}
