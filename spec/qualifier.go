package spec

import (
	"math/bits"
	"strings"
)

// Qualifier tags an lpr/ppr instruction with how its rule participates
// outside its own definition (spec.md §3). It is a bitmask rather than a
// plain enum so that a malformed spec can legally *carry* more than one
// qualifier bit (the wire format's qualifier operand is a single byte,
// spec.md §6) for the validator to reject with ErrIllegalMultipleQualifiers
// — a well-formed spec always has exactly zero or one bit set.
type Qualifier uint8

const (
	QualNone       Qualifier = 0
	QualSkip       Qualifier = 1 << 0
	QualSupport    Qualifier = 1 << 1
	QualPrecedence Qualifier = 1 << 2
)

// Count returns how many qualifier bits are set.
func (q Qualifier) Count() int {
	return bits.OnesCount8(uint8(q))
}

// Has returns whether bit is set in q.
func (q Qualifier) Has(bit Qualifier) bool {
	return q&bit != 0
}

func (q Qualifier) String() string {
	if q == QualNone {
		return "none"
	}
	var parts []string
	if q.Has(QualSkip) {
		parts = append(parts, "skip")
	}
	if q.Has(QualSupport) {
		parts = append(parts, "support")
	}
	if q.Has(QualPrecedence) {
		parts = append(parts, "precedence")
	}
	return strings.Join(parts, "+")
}

// lprAllowedQualifiers and pprAllowedQualifiers are the bits legal for each
// rule kind, independent of the "at most one bit" rule checked separately.
const (
	lprAllowedQualifiers = QualSkip | QualSupport
	pprAllowedQualifiers = QualSupport | QualPrecedence
)

// ValidForLPR returns whether q uses only bits legal on an lpr instruction.
func (q Qualifier) ValidForLPR() bool {
	return q&^lprAllowedQualifiers == 0
}

// ValidForPPR returns whether q uses only bits legal on a ppr instruction.
func (q Qualifier) ValidForPPR() bool {
	return q&^pprAllowedQualifiers == 0
}
