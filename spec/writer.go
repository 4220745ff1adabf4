package spec

import "github.com/dekarrin/taul/source"

// Writer builds a Spec one instruction at a time via one method per opcode,
// the way ictiobus's lexerTemplate accumulates patterns before a Lexer
// snapshot is taken, except here the accumulation itself is the deliverable:
// Done() hands back an immutable Spec and resets the Writer for reuse.
//
// Every recorded instruction is implicitly tagged with the most recent Pos
// value (default 0), so callers only need to call Pos when the source
// position actually changes.
type Writer struct {
	instructions []Instruction
	curPos       uint32
	src          *source.Code
}

// NewWriter creates an empty Writer, optionally associated with src for
// diagnostics (src may be nil).
func NewWriter(src *source.Code) *Writer {
	return &Writer{src: src}
}

func (w *Writer) record(in Instruction) {
	in.SourcePos = w.curPos
	w.instructions = append(w.instructions, in)
}

// Pos sets the source offset subsequently recorded instructions are tagged
// with, until the next call to Pos.
func (w *Writer) Pos(newPos uint32) { w.curPos = newPos }

func (w *Writer) Close()        { w.record(Instruction{Op: Close}) }
func (w *Writer) Alternative()  { w.record(Instruction{Op: Alternative}) }
func (w *Writer) End()          { w.record(Instruction{Op: End}) }
func (w *Writer) Any()          { w.record(Instruction{Op: Any}) }
func (w *Writer) Token()        { w.record(Instruction{Op: Token}) }
func (w *Writer) Failure()      { w.record(Instruction{Op: Failure}) }
func (w *Writer) Sequence()     { w.record(Instruction{Op: Sequence}) }
func (w *Writer) Lookahead()    { w.record(Instruction{Op: Lookahead}) }
func (w *Writer) LookaheadNot() { w.record(Instruction{Op: LookaheadNot}) }
func (w *Writer) Not()          { w.record(Instruction{Op: Not}) }
func (w *Writer) Optional()     { w.record(Instruction{Op: Optional}) }
func (w *Writer) KleeneStar()   { w.record(Instruction{Op: KleeneStar}) }
func (w *Writer) KleenePlus()   { w.record(Instruction{Op: KleenePlus}) }

func (w *Writer) LPRDecl(name string) { w.record(Instruction{Op: LPRDecl, Name: name}) }
func (w *Writer) PPRDecl(name string) { w.record(Instruction{Op: PPRDecl, Name: name}) }
func (w *Writer) Name(name string)    { w.record(Instruction{Op: Name, Name: name}) }

func (w *Writer) LPR(name string, q Qualifier) {
	w.record(Instruction{Op: LPR, Name: name, Qualifier: q})
}
func (w *Writer) PPR(name string, q Qualifier) {
	w.record(Instruction{Op: PPR, Name: name, Qualifier: q})
}

// String records a string literal instruction. raw is the literal source
// text between quotes, not yet escape-processed; use UnescapeString to
// resolve it to its matched code point sequence when needed.
func (w *Writer) String(raw string) { w.record(Instruction{Op: String, Text: raw}) }

// Charset records a charset literal instruction. raw is the literal source
// text between brackets, not yet escape-processed.
func (w *Writer) Charset(raw string) { w.record(Instruction{Op: Charset, Text: raw}) }

// Done returns the finished Spec and resets the Writer to empty so it may be
// reused to build another.
func (w *Writer) Done() Spec {
	s := Spec{instructions: w.instructions, src: w.src}
	w.instructions = nil
	w.curPos = 0
	return s
}
