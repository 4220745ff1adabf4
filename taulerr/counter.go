package taulerr

// Counter accumulates Errors across the validator, lowerer, and parse-table
// builder phases and implements the "first error cancels downstream
// building" propagation rule of spec.md §7: once any phase reports an error,
// Cancelled returns true and later phases are expected to check it and stop
// producing new output (while still being allowed to keep running to
// surface further diagnostics of their own, per spec.md's
// error-discovery-without-spurious-output language).
type Counter struct {
	errs      []Error
	cancelled bool
}

// Report records err and marks the counter cancelled.
func (c *Counter) Report(err Error) {
	c.errs = append(c.errs, err)
	c.cancelled = true
}

// Cancel marks the counter cancelled without adding an error (used by a
// phase's cancel() call propagated from an upstream phase that has already
// reported its own error).
func (c *Counter) Cancel() {
	c.cancelled = true
}

// Cancelled returns whether any error has been reported, or Cancel called
// directly.
func (c *Counter) Cancelled() bool {
	return c.cancelled
}

// Errors returns every Error reported so far, in report order.
func (c *Counter) Errors() []Error {
	return c.errs
}

// Len returns the number of errors reported so far.
func (c *Counter) Len() int {
	return len(c.errs)
}
