// Package diag implements the two read-only text formats of spec.md §6 used
// for diagnostics only: a disassembly listing of a spec.Spec's instruction
// stream, and the parse-tree text format for a tree.Tree. Neither format is
// a serialization the rest of the module reads back; both exist purely so a
// human (or a test) can see what a Spec or Tree actually contains, the same
// minimal role the original TAUL's disassemble_spec.h/.cpp played before
// that front end was dropped from scope.
package diag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/taul/spec"
)

// wrapCol is the fixed column width long annotation lines are wrapped to,
// matching the 60-column wrap the teacher uses for its own diagnostic text
// (tunascript/syntax/ast.go's ExpTextNode.String wraps at the same width).
const wrapCol = 60

// Disassemble renders s's instruction stream as one line per instruction:
// index, source position, and the instruction's own String() form. It never
// participates in compiling a grammar; it exists purely to make a Spec's
// contents inspectable.
func Disassemble(s spec.Spec) string {
	ins := s.Instructions()
	if len(ins) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, in := range ins {
		line := fmt.Sprintf("%4d [pos %d] %s", i, in.SourcePos, in.String())
		if len(line) > wrapCol {
			line = rosed.Edit(line).Wrap(wrapCol).String()
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// DisassembleInstruction renders a single instruction the way Disassemble
// would within its stream, without the leading index, for reporting one
// instruction rather than a whole spec.
func DisassembleInstruction(in spec.Instruction) string {
	return fmt.Sprintf("[pos %d] %s", in.SourcePos, in.String())
}

// quoteText renders a lexical node's matched text between single quotes,
// with the same escaping strconv.Quote applies to its contents.
func quoteText(s string) string {
	q := strconv.Quote(s)
	return "'" + q[1:len(q)-1] + "'"
}
