package taulerr

import (
	"fmt"

	"github.com/dekarrin/taul/source"
)

// Error is a single diagnostic: one of the Kind sentinels in kinds.go, plus the
// source location it was raised at (if any) and a human message. It mirrors
// server/serr.Error's shape (a message plus a cause chain usable with
// errors.Is), but is specialized to exactly one Kind cause per Error rather
// than an arbitrary list, since every diagnostic in this taxonomy has a
// single well-defined kind.
type Error struct {
	Kind     error
	Location source.Location
	HasLoc   bool
	Msg      string
}

// New builds an Error of the given kind with a formatted message. Pass a
// zero source.Location and hasLoc=false when no position is meaningful (for
// example ErrSourceCodeNotFound, which precedes there being any source to
// point at).
func New(kind error, loc source.Location, hasLoc bool, format string, args ...any) Error {
	return Error{
		Kind:     kind,
		Location: loc,
		HasLoc:   hasLoc,
		Msg:      fmt.Sprintf(format, args...),
	}
}

// At is a convenience for the common case of an error with a location.
func At(kind error, loc source.Location, format string, args ...any) Error {
	return New(kind, loc, true, format, args...)
}

// Error implements the error interface. If the Error carries a location, it
// is printed in "origin:line:col: message" form, else just the message.
func (e Error) Error() string {
	if e.HasLoc {
		return fmt.Sprintf("%s: %s", e.Location, e.Msg)
	}
	return e.Msg
}

// Unwrap exposes the Kind sentinel to errors.Is/errors.As.
func (e Error) Unwrap() error {
	return e.Kind
}
