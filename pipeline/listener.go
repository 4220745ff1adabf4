package pipeline

import "github.com/dekarrin/taul/symbol"

// Listener receives structural events as a Parser works, the same shape
// tree.Builder itself implements — Parser drives a Listener rather than a
// *tree.Builder directly so callers can observe a parse (for tracing,
// incremental UI, etc.) without requiring a Tree be built at all.
type Listener interface {
	// Startup is called once, before any other event, at the beginning of
	// a parse.
	Startup()

	// Syntactic is called when a PPR alternative begins matching; it
	// returns an opaque handle to the newly opened node (tree.Builder
	// returns a node index), used only to pass back into WrapAsFirstChild.
	Syntactic(id symbol.ID, name string, pos int) int

	// Lexical is called for each token consumed as a direct match.
	Lexical(id symbol.ID, name string, pos, length int, text string)

	// Skip is called for a skip-qualified token silently consumed between
	// matches.
	Skip(id symbol.ID, name string, pos, length int, text string)

	// Close ends the most recently opened Syntactic node and returns its
	// handle.
	Close() int

	// WrapAsFirstChild is called when a precedence rewrite's tail
	// alternative wraps the node at existingRoot as its own first child; it
	// returns a handle for the newly opened wrapping node.
	WrapAsFirstChild(existingRoot int, id symbol.ID, name string) int

	// Abort marks the parse as having failed without discarding whatever
	// partial structure was built.
	Abort()

	// Shutdown is called once, after every other event, at the end of a
	// parse (whether or not it was aborted).
	Shutdown()
}
