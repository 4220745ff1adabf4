package spec

// Event is delivered once per instruction walked by an Interpreter, plus the
// Startup/Shutdown bookends. Within any Instruction event, NextOp exposes
// the opcode of the next instruction (with no next instruction NextOp is the
// zero Opcode, which is Pos, so HasNext must be checked), giving
// phases single-token lookahead during lowering without needing to index
// the stream themselves.
type Event struct {
	Kind EventKind

	// Instr is populated when Kind == EventInstruction.
	Instr Instruction

	// HasNext and NextOp describe the instruction following Instr, if any.
	HasNext bool
	NextOp  Opcode
}

// EventKind tags an Event.
type EventKind uint8

const (
	EventStartup EventKind = iota
	EventInstruction
	EventShutdown
)

// Visitor receives interpreter events. Implementations are expected to
// exhaustively switch on ev.Instr.Op for EventInstruction events (spec.md §9's
// "visitor / double-dispatch over 21 opcodes" design note): the validator
// and the LL lowerer are each one closed Visitor.
type Visitor interface {
	Visit(ev Event)
}

// VisitorFunc adapts a plain function to a Visitor.
type VisitorFunc func(ev Event)

func (f VisitorFunc) Visit(ev Event) { f(ev) }

// Interpret walks s's instruction stream exactly once, issuing EventStartup,
// one EventInstruction per instruction (each with correct single-token
// lookahead), and EventShutdown, to v.
func Interpret(s Spec, v Visitor) {
	v.Visit(Event{Kind: EventStartup})

	ins := s.Instructions()
	for i, in := range ins {
		ev := Event{Kind: EventInstruction, Instr: in}
		if i+1 < len(ins) {
			ev.HasNext = true
			ev.NextOp = ins[i+1].Op
		}
		v.Visit(ev)
	}

	v.Visit(Event{Kind: EventShutdown})
}
