package nfa

import "fmt"

// StateID uniquely identifies an NFA state within one compiled automaton.
// IDs are dense indexes into the automaton's state table and are never
// reused after creation.
type StateID uint32

// InvalidState represents an unset or dangling state reference.
const InvalidState StateID = 0xFFFFFFFF

// StateKind identifies the type of an NFA state and determines which of its
// fields are valid.
type StateKind uint8

const (
	// StateMatch is the accepting state.
	StateMatch StateKind = iota

	// StateByteRange consumes a single byte in [lo, hi].
	StateByteRange

	// StateSparse consumes a single byte matching one of several ranges
	// (character class).
	StateSparse

	// StateSplit has epsilon transitions to two states (alternation,
	// quantifier entry/exit).
	StateSplit

	// StateEpsilon has one epsilon transition (sequencing glue).
	StateEpsilon

	// StateLook is a zero-width assertion checked against the scan
	// position; it consumes no input.
	StateLook

	// StateFail is a dead state with no transitions, emitted for classes
	// that can match no byte.
	StateFail
)

// String returns a human-readable name for the kind.
func (k StateKind) String() string {
	switch k {
	case StateMatch:
		return "Match"
	case StateByteRange:
		return "ByteRange"
	case StateSparse:
		return "Sparse"
	case StateSplit:
		return "Split"
	case StateEpsilon:
		return "Epsilon"
	case StateLook:
		return "Look"
	case StateFail:
		return "Fail"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Look identifies a zero-width position predicate.
type Look uint8

const (
	// LookStartText holds only at the start of the input ('^').
	LookStartText Look = iota

	// LookEndText holds only at the end of the input ('$').
	LookEndText
)

// String returns the pattern spelling of the assertion.
func (l Look) String() string {
	if l == LookStartText {
		return "^"
	}
	return "$"
}

// Holds reports whether the assertion is satisfied at byte offset pos of
// the haystack.
func (l Look) Holds(haystack []byte, pos int) bool {
	switch l {
	case LookStartText:
		return pos == 0
	case LookEndText:
		return pos == len(haystack)
	}
	return false
}

// Transition is one byte range and target of a sparse state.
type Transition struct {
	Lo   byte
	Hi   byte
	Next StateID
}

// State is a single NFA state. The kind determines which fields are valid.
type State struct {
	id   StateID
	kind StateKind

	lo, hi byte
	next   StateID // target for ByteRange, Epsilon, Look

	transitions []Transition // Sparse

	left, right StateID // Split

	look Look
}

// ID returns the state's identifier.
func (s *State) ID() StateID { return s.id }

// Kind returns the state's kind.
func (s *State) Kind() StateKind { return s.kind }

// IsMatch reports whether this is the accepting state.
func (s *State) IsMatch() bool { return s.kind == StateMatch }

// ByteRange returns the consumed range and target of a ByteRange state.
func (s *State) ByteRange() (lo, hi byte, next StateID) {
	if s.kind == StateByteRange {
		return s.lo, s.hi, s.next
	}
	return 0, 0, InvalidState
}

// Transitions returns the ranges of a Sparse state, nil otherwise.
func (s *State) Transitions() []Transition {
	if s.kind == StateSparse {
		return s.transitions
	}
	return nil
}

// Split returns the two epsilon successors of a Split state.
func (s *State) Split() (left, right StateID) {
	if s.kind == StateSplit {
		return s.left, s.right
	}
	return InvalidState, InvalidState
}

// Epsilon returns the successor of an Epsilon state.
func (s *State) Epsilon() StateID {
	if s.kind == StateEpsilon {
		return s.next
	}
	return InvalidState
}

// LookAssert returns the predicate and successor of a Look state.
func (s *State) LookAssert() (Look, StateID) {
	if s.kind == StateLook {
		return s.look, s.next
	}
	return 0, InvalidState
}

// String returns a human-readable representation of the state.
func (s *State) String() string {
	switch s.kind {
	case StateMatch:
		return fmt.Sprintf("State(%d, Match)", s.id)
	case StateByteRange:
		if s.lo == s.hi {
			return fmt.Sprintf("State(%d, ByteRange %q -> %d)", s.id, s.lo, s.next)
		}
		return fmt.Sprintf("State(%d, ByteRange [%q-%q] -> %d)", s.id, s.lo, s.hi, s.next)
	case StateSparse:
		return fmt.Sprintf("State(%d, Sparse %d ranges)", s.id, len(s.transitions))
	case StateSplit:
		return fmt.Sprintf("State(%d, Split -> [%d, %d])", s.id, s.left, s.right)
	case StateEpsilon:
		return fmt.Sprintf("State(%d, Epsilon -> %d)", s.id, s.next)
	case StateLook:
		return fmt.Sprintf("State(%d, Look %s -> %d)", s.id, s.look, s.next)
	case StateFail:
		return fmt.Sprintf("State(%d, Fail)", s.id)
	default:
		return fmt.Sprintf("State(%d, Unknown)", s.id)
	}
}

// NFA is a compiled Thompson automaton: an immutable state table with one
// start and one accepting state. It is safe to share across goroutines;
// all mutable search state lives in the PikeVM.
type NFA struct {
	states []State
	start  StateID

	// anchoredStart is true when every path through the pattern begins
	// with a '^' assertion, letting searches skip restart positions > 0.
	anchoredStart bool
}

// Start returns the start state.
func (n *NFA) Start() StateID { return n.start }

// AnchoredStart reports whether the pattern can only match at offset 0.
func (n *NFA) AnchoredStart() bool { return n.anchoredStart }

// State returns the state with the given ID, or nil for an invalid ID.
func (n *NFA) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// IsMatch reports whether id names the accepting state.
func (n *NFA) IsMatch(id StateID) bool {
	if s := n.State(id); s != nil {
		return s.IsMatch()
	}
	return false
}

// States returns the number of states in the automaton.
func (n *NFA) States() int { return len(n.states) }

// String returns a short summary of the automaton.
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, start: %d, anchoredStart: %v}",
		len(n.states), n.start, n.anchoredStart)
}
