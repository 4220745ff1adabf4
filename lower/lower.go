package lower

import (
	"github.com/dekarrin/taul/internal/util"
	"github.com/dekarrin/taul/source"
	"github.com/dekarrin/taul/spec"
	"github.com/dekarrin/taul/taulerr"
)

// defFrame tracks the rule currently being built, mirroring validate's own
// definition-scope stack; Lower assumes its input already passed Validate,
// so it only needs enough bookkeeping to know which rule an in-progress
// buildFrame belongs to.
type defFrame struct {
	name      string
	kind      spec.Opcode
	qualifier spec.Qualifier
}

// buildFrame accumulates one open composite expression's alternatives as
// Lower replays the instruction stream: a rule body and a parenthesized
// sequence are both represented this way, since both may legally contain
// top-level alternation.
type buildFrame struct {
	op   spec.Opcode
	alts []Alternative
	cur  Alternative
}

func (f *buildFrame) append(e Element) {
	f.cur = append(f.cur, e)
}

func (f *buildFrame) nextAlt() {
	f.alts = append(f.alts, f.cur)
	f.cur = nil
}

// finish closes out the frame's last in-progress alternative and returns
// every alternative collected.
func (f *buildFrame) finish() []Alternative {
	f.nextAlt()
	return f.alts
}

type lowerer struct {
	ec *taulerr.Counter

	declaredKind map[string]spec.Opcode

	defs   util.Stack[defFrame]
	frames util.Stack[buildFrame]

	rules []RuleDef
}

// Lower rewrites s — assumed to have already passed Validate — into an
// LLSpec: a structured rule/alternative/element view with precedence PPRs
// split into base and recursive-tail alternatives (spec.md §4.3). It
// reports to ec and returns ok=false only if s turns out to be malformed in
// a way Validate should have already caught; callers are expected to call
// Validate first and skip Lower entirely if it failed.
func Lower(s spec.Spec, ec *taulerr.Counter) (LLSpec, bool) {
	l := &lowerer{
		ec:           ec,
		declaredKind: make(map[string]spec.Opcode),
	}

	spec.Interpret(s, spec.VisitorFunc(func(ev spec.Event) {
		if ev.Kind == spec.EventInstruction {
			l.visit(ev.Instr)
		}
	}))

	if !l.defs.Empty() || !l.frames.Empty() {
		l.internalErr("unclosed scope remained after lowering; input was not fully validated")
		return LLSpec{}, false
	}

	out := LLSpec{
		Rules:      l.rules,
		Source:     s.Source(),
		Precedence: make(map[string]PrecedenceInfo),
	}
	for _, r := range out.Rules {
		if r.Kind == spec.PPR && r.Qualifier.Has(spec.QualPrecedence) {
			out.Precedence[r.Name] = splitPrecedence(r)
		}
	}

	return out, ec.Len() == 0
}

func (l *lowerer) internalErr(format string, args ...any) {
	l.ec.Report(taulerr.New(taulerr.ErrInternal, source.Location{}, false, format, args...))
}

func (l *lowerer) visit(in spec.Instruction) {
	switch in.Op {
	case spec.Pos:
		return
	case spec.LPRDecl, spec.PPRDecl:
		l.declaredKind[in.Name] = in.Op
		return
	case spec.LPR, spec.PPR:
		l.defs.Push(defFrame{name: in.Name, kind: in.Op, qualifier: in.Qualifier})
		l.frames.Push(buildFrame{op: in.Op})
		return
	case spec.Alternative:
		if l.frames.Empty() {
			return
		}
		top := l.frames.Pop()
		top.nextAlt()
		l.frames.Push(top)
		return
	case spec.Close:
		l.visitClose()
		return
	}

	var e Element
	switch in.Op {
	case spec.End:
		e = Element{Kind: ElemEnd}
	case spec.Any:
		e = Element{Kind: ElemAny}
	case spec.Token:
		e = Element{Kind: ElemToken}
	case spec.Failure:
		e = Element{Kind: ElemFailure}
	case spec.String:
		decoded, err := spec.UnescapeString(in.Text)
		if err != nil {
			l.internalErr("string literal failed to decode during lowering: %v", err)
			return
		}
		e = Element{Kind: ElemString, Str: decoded}
	case spec.Charset:
		pairs, err := spec.ParseCharset(in.Text)
		if err != nil {
			l.internalErr("charset literal failed to decode during lowering: %v", err)
			return
		}
		e = Element{Kind: ElemCharset, Charset: charsetToSet(pairs)}
	case spec.Name:
		kind := l.declaredKind[in.Name]
		e = Element{Kind: ElemRef, RefName: in.Name, RefIsLPR: kind == spec.LPR}
	case spec.Sequence, spec.Lookahead, spec.LookaheadNot, spec.Not,
		spec.Optional, spec.KleeneStar, spec.KleenePlus:
		l.frames.Push(buildFrame{op: in.Op})
		return
	default:
		return
	}

	if l.frames.Empty() {
		l.internalErr("%s encountered outside any rule body during lowering", in.Op)
		return
	}
	top := l.frames.Pop()
	top.append(e)
	l.frames.Push(top)
}

func (l *lowerer) visitClose() {
	if l.frames.Empty() {
		l.internalErr("stray close encountered during lowering")
		return
	}
	f := l.frames.Pop()
	alts := f.finish()

	if f.op == spec.LPR || f.op == spec.PPR {
		if l.defs.Empty() {
			l.internalErr("rule body closed with no matching definition during lowering")
			return
		}
		d := l.defs.Pop()
		l.rules = append(l.rules, RuleDef{
			Name:         d.name,
			Kind:         d.kind,
			Qualifier:    d.qualifier,
			Alternatives: alts,
		})
		return
	}

	var e Element
	switch f.op {
	case spec.Sequence:
		if len(alts) == 1 {
			e = Element{Kind: ElemSequence, Children: alts[0]}
		} else {
			e = Element{Kind: ElemChoice, Alts: alts}
		}
	case spec.Lookahead:
		e = Element{Kind: ElemLookahead, Children: singleChild(alts)}
	case spec.LookaheadNot:
		e = Element{Kind: ElemLookaheadNot, Children: singleChild(alts)}
	case spec.Not:
		e = Element{Kind: ElemNot, Children: singleChild(alts)}
	case spec.Optional:
		e = Element{Kind: ElemOptional, Children: singleChild(alts)}
	case spec.KleeneStar:
		e = Element{Kind: ElemKleeneStar, Children: singleChild(alts)}
	case spec.KleenePlus:
		e = Element{Kind: ElemKleenePlus, Children: singleChild(alts)}
	default:
		l.internalErr("unexpected open frame kind %s during lowering", f.op)
		return
	}

	if l.frames.Empty() {
		l.internalErr("%s closed outside any rule body during lowering", f.op)
		return
	}
	parent := l.frames.Pop()
	parent.append(e)
	l.frames.Push(parent)
}

// singleChild extracts the lone operand of a single-subexpression frame
// (an assertion or quantifier): exactly one alternative with exactly one
// element, in well-formed input.
func singleChild(alts []Alternative) []Element {
	if len(alts) != 1 || len(alts[0]) == 0 {
		return nil
	}
	return []Element{alts[0][0]}
}
