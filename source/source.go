// Package source models source text as an ordered sequence of pages and
// resolves byte offsets into that text to (origin, line, column) locations
// for diagnostics. It performs no file I/O and no encoding detection; callers
// hand it already-decoded text, exactly as spec.md's non-goals require.
package source

import (
	"strconv"
	"strings"
)

// Page is one contiguous origin-tagged span of source text: typically a
// single file's contents, but callers may synthesize pages for any other
// unit (a REPL line, a generated fragment) that deserves its own origin
// string in diagnostics.
type Page struct {
	Origin string
	Pos    int // starting byte offset within the concatenated text
	Len    int // byte length of this page's text
}

// Code is the concatenation of zero or more Pages, plus line-start indexing
// used to resolve any offset into a human location.
type Code struct {
	text  string
	pages []Page

	// lineStarts[i] is the byte offset where line i+1 (1-indexed) begins.
	lineStarts []int
}

// New builds a Code from a single anonymous page covering all of text.
func New(text string) *Code {
	return NewPages([]Page{{Origin: "", Pos: 0, Len: len(text)}}, text)
}

// NewPages builds a Code from explicit pages over text. The pages must be
// contiguous and in order, and their combined length must equal len(text);
// this is the caller's responsibility to arrange, mirroring how
// taul::source_code is assembled page-by-page upstream of the core.
func NewPages(pages []Page, text string) *Code {
	c := &Code{text: text, pages: pages}
	c.indexLines()
	return c
}

func (c *Code) indexLines() {
	c.lineStarts = []int{0}
	i := 0
	for i < len(c.text) {
		switch c.text[i] {
		case '\r':
			if i+1 < len(c.text) && c.text[i+1] == '\n' {
				i++ // CRLF counted once
			}
			c.lineStarts = append(c.lineStarts, i+1)
		case '\n':
			c.lineStarts = append(c.lineStarts, i+1)
		}
		i++
	}
}

// Text returns the full concatenated source text.
func (c *Code) Text() string {
	return c.text
}

// Len returns the total byte length of the source text.
func (c *Code) Len() int {
	return len(c.text)
}

// Pages returns the pages making up this Code, in order.
func (c *Code) Pages() []Page {
	return c.pages
}

// Location is a resolved human-readable position: an origin string plus
// 1-indexed line and column.
type Location struct {
	Origin string
	Line   int
	Column int
}

func (l Location) String() string {
	if l.Origin == "" {
		return l.lineColString()
	}
	return l.Origin + ":" + l.lineColString()
}

func (l Location) lineColString() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(l.Line))
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(l.Column))
	return sb.String()
}

// Resolve converts a byte offset into the concatenated text into a Location.
// Offsets past the end of the text resolve to the end-of-text location, as
// required by spec.md §3.
func (c *Code) Resolve(pos int) Location {
	if pos > len(c.text) {
		pos = len(c.text)
	}
	if pos < 0 {
		pos = 0
	}

	origin := c.originAt(pos)
	line := c.lineAt(pos)
	lineStart := c.lineStarts[line-1]
	col := pos - lineStart + 1

	return Location{Origin: origin, Line: line, Column: col}
}

func (c *Code) originAt(pos int) string {
	for _, p := range c.pages {
		if pos >= p.Pos && pos < p.Pos+p.Len {
			return p.Origin
		}
	}
	if len(c.pages) > 0 {
		return c.pages[len(c.pages)-1].Origin
	}
	return ""
}

func (c *Code) lineAt(pos int) int {
	lo, hi := 0, len(c.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if c.lineStarts[mid] <= pos {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1
}
