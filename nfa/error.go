// Package nfa compiles a parsed component tree into a Thompson NFA and
// simulates it without backtracking.
//
// The automaton is a flat, append-only state table. Compilation composes one
// fragment per tree node by wiring epsilon edges; simulation runs the PikeVM,
// a parallel state-set walk that is linear in the input per start offset.
package nfa

import (
	"errors"
	"fmt"
)

// ErrTooComplex indicates the pattern would compile to more states than the
// configured limit allows.
var ErrTooComplex = errors.New("pattern too complex")

// CompileError wraps a compilation failure with pattern context.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("nfa compilation failed for pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("nfa compilation failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error { return e.Err }

// BuildError reports a malformed automaton detected by the Builder.
type BuildError struct {
	Message string
	StateID StateID
}

func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("nfa build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("nfa build error: %s", e.Message)
}
