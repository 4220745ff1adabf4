package spec

import "strconv"

// Instruction is one record in a Spec's instruction stream. Only the fields
// relevant to its Op are meaningful; this mirrors the wire format's
// per-opcode fixed operand regions (spec.md §6) while keeping a single Go
// struct rather than a tagged union, since every phase needs to inspect Op
// before touching any operand anyway.
type Instruction struct {
	Op Opcode

	// SourcePos is the most recent pos(new_pos) value in effect when this
	// instruction was recorded, used purely for diagnostics.
	SourcePos uint32

	// Name is the operand for lpr_decl, ppr_decl, lpr, ppr, and name.
	Name string

	// Qualifier is the operand for lpr and ppr.
	Qualifier Qualifier

	// Text is the operand for string and charset: the literal payload
	// before escape processing, for both (ParseCharset in escape.go decodes
	// a charset's text into its (low,high) pairs).
	Text string
}

func (in Instruction) String() string {
	switch in.Op {
	case Pos:
		return "pos"
	case LPRDecl, PPRDecl, Name:
		return in.Op.String() + " " + in.Name
	case LPR, PPR:
		return in.Op.String() + " " + in.Name + " " + in.Qualifier.String()
	case String:
		return "string " + strconv.Quote(in.Text)
	case Charset:
		return "charset " + strconv.Quote(in.Text)
	default:
		return in.Op.String()
	}
}
