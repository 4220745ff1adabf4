package spec

import "github.com/dekarrin/taul/source"

// Spec is an immutable instruction stream describing lexer and parser rules.
// It is built once by a Writer and never mutated after Done(); every
// downstream phase receives it by value copy of the header with a shared
// read-only backing slice.
type Spec struct {
	instructions []Instruction
	src          *source.Code
}

// Instructions returns the instruction stream, in recorded order. The
// returned slice must not be mutated.
func (s Spec) Instructions() []Instruction {
	return s.instructions
}

// Source returns the source code object associated with this Spec for
// diagnostics, or nil if none was set.
func (s Spec) Source() *source.Code {
	return s.src
}

// Len returns the number of instructions in the stream.
func (s Spec) Len() int {
	return len(s.instructions)
}

// Concat appends b's instructions after a's verbatim, preserving a's source
// association (spec.md §4.1). Neither a nor b is modified.
func Concat(a, b Spec) Spec {
	out := make([]Instruction, 0, len(a.instructions)+len(b.instructions))
	out = append(out, a.instructions...)
	out = append(out, b.instructions...)
	return Spec{instructions: out, src: a.src}
}
