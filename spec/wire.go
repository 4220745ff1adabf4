package spec

import (
	"fmt"
	"io"

	"github.com/dekarrin/rezi"
	"github.com/dekarrin/taul/source"
)

// EncodeTo writes s's instruction stream to w as a single rezi.EncBinary
// encoding of the whole []Instruction slice, the same "encode a value for
// wire/storage" role rezi plays for game.State in the teacher's sqlite DAO.
// Every field of every Instruction is encoded, whether or not its opcode uses
// it; the output is not an opcode-tagged stream with a per-opcode operand
// region, and only DecodeFrom reads it back.
func EncodeTo(w io.Writer, s Spec) error {
	data := rezi.EncBinary(s.instructions)
	_, err := w.Write(data)
	return err
}

// DecodeFrom reads a Spec previously written by EncodeTo from r, associating
// it with src for diagnostics (src may be nil).
func DecodeFrom(r io.Reader, src *source.Code) (Spec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Spec{}, fmt.Errorf("read spec wire data: %w", err)
	}

	var instructions []Instruction
	n, err := rezi.DecBinary(data, &instructions)
	if err != nil {
		return Spec{}, fmt.Errorf("decode spec wire data: %w", err)
	}
	if n != len(data) {
		return Spec{}, fmt.Errorf("spec wire data has %d trailing bytes after decoding", len(data)-n)
	}

	return Spec{instructions: instructions, src: src}, nil
}
