package nfa

import "fmt"

// Builder constructs an NFA incrementally. The state table is append-only:
// every Add method allocates a fresh state and returns its ID. Forward
// references are left as InvalidState and wired later with Patch/PatchSplit.
type Builder struct {
	states []State
	start  StateID
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		states: make([]State, 0, 16),
		start:  InvalidState,
	}
}

// AddMatch adds the accepting state and returns its ID.
func (b *Builder) AddMatch() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateMatch})
	return id
}

// AddByteRange adds a state consuming one byte in [lo, hi].
func (b *Builder) AddByteRange(lo, hi byte, next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateByteRange, lo: lo, hi: hi, next: next})
	return id
}

// AddSparse adds a state consuming one byte matching any of the given
// ranges. The slice is copied.
func (b *Builder) AddSparse(transitions []Transition) StateID {
	id := StateID(len(b.states))
	trans := make([]Transition, len(transitions))
	copy(trans, transitions)
	b.states = append(b.states, State{id: id, kind: StateSparse, transitions: trans})
	return id
}

// AddSplit adds a state with epsilon edges to two successors.
func (b *Builder) AddSplit(left, right StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateSplit, left: left, right: right})
	return id
}

// AddEpsilon adds a state with a single epsilon edge.
func (b *Builder) AddEpsilon(next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateEpsilon, next: next})
	return id
}

// AddLook adds a zero-width assertion state.
func (b *Builder) AddLook(look Look, next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateLook, look: look, next: next})
	return id
}

// AddFail adds a dead state with no transitions.
func (b *Builder) AddFail() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateFail})
	return id
}

// Patch sets the single successor of a state. Only kinds with one 'next'
// slot (ByteRange, Epsilon, Look) can be patched.
func (b *Builder) Patch(stateID, target StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{Message: "state ID out of bounds", StateID: stateID}
	}
	s := &b.states[stateID]
	switch s.kind {
	case StateByteRange, StateEpsilon, StateLook:
		s.next = target
		return nil
	default:
		return &BuildError{
			Message: fmt.Sprintf("cannot patch state of kind %s", s.kind),
			StateID: stateID,
		}
	}
}

// PatchSplit sets both successors of a Split state.
func (b *Builder) PatchSplit(stateID, left, right StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{Message: "state ID out of bounds", StateID: stateID}
	}
	s := &b.states[stateID]
	if s.kind != StateSplit {
		return &BuildError{
			Message: fmt.Sprintf("expected Split state, got %s", s.kind),
			StateID: stateID,
		}
	}
	s.left = left
	s.right = right
	return nil
}

// SetStart sets the automaton's start state.
func (b *Builder) SetStart(start StateID) {
	b.start = start
}

// States returns the current number of states.
func (b *Builder) States() int { return len(b.states) }

// Validate checks that the start state is set and every reference points
// inside the table.
func (b *Builder) Validate() error {
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set", StateID: InvalidState}
	}
	if int(b.start) >= len(b.states) {
		return &BuildError{Message: "start state out of bounds", StateID: b.start}
	}
	check := func(id, target StateID) error {
		if target != InvalidState && int(target) >= len(b.states) {
			return &BuildError{
				Message: fmt.Sprintf("dangling reference to state %d", target),
				StateID: id,
			}
		}
		return nil
	}
	for i := range b.states {
		s := &b.states[i]
		id := StateID(i)
		switch s.kind {
		case StateByteRange, StateEpsilon, StateLook:
			if err := check(id, s.next); err != nil {
				return err
			}
		case StateSplit:
			if err := check(id, s.left); err != nil {
				return err
			}
			if err := check(id, s.right); err != nil {
				return err
			}
		case StateSparse:
			for _, tr := range s.transitions {
				if err := check(id, tr.Next); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// BuildOption configures the finished NFA.
type BuildOption func(*NFA)

// WithAnchoredStart marks the automaton as matching only at offset 0.
func WithAnchoredStart(anchored bool) BuildOption {
	return func(n *NFA) { n.anchoredStart = anchored }
}

// Build validates and finalizes the automaton.
func (b *Builder) Build(opts ...BuildOption) (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	n := &NFA{
		states: b.states,
		start:  b.start,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}
