package nfa

import (
	"github.com/coregx/rex/internal/sparse"
)

// PikeVM simulates the NFA by maintaining the epsilon-closure of a set of
// active states and consuming one input byte at a time. The active set is
// deduplicated each step, so the walk is linear in the input per start
// offset and never backtracks.
//
// Matching is leftmost-longest: among candidate matches the smallest start
// wins, and at that start the largest end wins. The parallel simulation
// yields this directly without a greedy/lazy distinction.
//
// A PikeVM owns its working sets (thread queues, visited set, closure
// stack). The underlying NFA is immutable and shared; for concurrent
// searches use one PikeVM per goroutine.
type PikeVM struct {
	nfa *NFA

	queue   []thread
	next    []thread
	visited *sparse.Set
	stack   []StateID
}

// thread is one execution path through the automaton: an NFA state plus
// the offset where this attempt started.
type thread struct {
	state StateID
	start int
}

// Match is a half-open [Start, End) span in the haystack.
type Match struct {
	Start int
	End   int
}

// NewPikeVM creates a simulator for the given automaton.
func NewPikeVM(n *NFA) *PikeVM {
	capacity := n.States()
	if capacity < 16 {
		capacity = 16
	}
	return &PikeVM{
		nfa:     n,
		queue:   make([]thread, 0, capacity),
		next:    make([]thread, 0, capacity),
		visited: sparse.New(uint32(n.States())),
		stack:   make([]StateID, 0, capacity),
	}
}

// NFA returns the automaton this simulator runs.
func (p *PikeVM) NFA() *NFA { return p.nfa }

func (p *PikeVM) reset() {
	p.queue = p.queue[:0]
	p.next = p.next[:0]
	p.visited.Clear()
}

// SearchAt finds the leftmost-longest match beginning at or after 'at'.
// It takes the full haystack rather than a slice so the '^' and '$'
// predicates see true input boundaries. Returns (-1, -1, false) when no
// match exists.
func (p *PikeVM) SearchAt(haystack []byte, at int) (start, end int, found bool) {
	if at < 0 || at > len(haystack) {
		return -1, -1, false
	}
	p.reset()

	bestStart, bestEnd := -1, -1
	anchored := p.nfa.AnchoredStart()

	for pos := at; pos <= len(haystack); pos++ {
		// Seed a fresh attempt at every position until a match is found;
		// later starts cannot beat a known leftmost match. Anchored
		// patterns can only ever start at offset 0.
		if bestStart == -1 && (!anchored || pos == 0) {
			p.visited.Clear()
			p.closure(&p.queue, thread{state: p.nfa.Start(), start: pos}, haystack, pos)
		}

		for _, t := range p.queue {
			if p.nfa.IsMatch(t.state) && betterMatch(bestStart, bestEnd, t.start, pos) {
				bestStart, bestEnd = t.start, pos
			}
		}

		if pos >= len(haystack) {
			break
		}

		if bestStart != -1 {
			// Only threads that started at or before the best start can
			// still improve the result.
			alive := false
			for _, t := range p.queue {
				if t.start <= bestStart {
					alive = true
					break
				}
			}
			if !alive {
				break
			}
		}

		if len(p.queue) > 0 {
			b := haystack[pos]
			p.visited.Clear()
			for _, t := range p.queue {
				p.step(t, b, haystack, pos+1)
			}
		}
		p.queue, p.next = p.next, p.queue[:0]
	}

	if bestStart == -1 {
		return -1, -1, false
	}
	return bestStart, bestEnd, true
}

// betterMatch implements leftmost-longest preference.
func betterMatch(bestStart, bestEnd, candStart, candEnd int) bool {
	if bestStart == -1 {
		return true
	}
	if candStart != bestStart {
		return candStart < bestStart
	}
	return candEnd > bestEnd
}

// FindPrefixAt runs the automaton anchored at 'at' and returns the longest
// end offset of a match starting exactly there.
func (p *PikeVM) FindPrefixAt(haystack []byte, at int) (end int, found bool) {
	if at < 0 || at > len(haystack) {
		return -1, false
	}
	p.reset()
	p.closure(&p.queue, thread{state: p.nfa.Start(), start: at}, haystack, at)

	last := -1
	for pos := at; pos <= len(haystack); pos++ {
		for _, t := range p.queue {
			if p.nfa.IsMatch(t.state) && pos > last {
				last = pos
			}
		}
		if len(p.queue) == 0 || pos >= len(haystack) {
			break
		}
		b := haystack[pos]
		p.visited.Clear()
		for _, t := range p.queue {
			p.step(t, b, haystack, pos+1)
		}
		p.queue, p.next = p.next, p.queue[:0]
	}
	return last, last != -1
}

// IsMatch reports whether the pattern matches anywhere in the haystack.
// It exits on the first accepting state without tracking positions.
func (p *PikeVM) IsMatch(haystack []byte) bool {
	p.reset()
	anchored := p.nfa.AnchoredStart()

	for pos := 0; pos <= len(haystack); pos++ {
		if !anchored || pos == 0 {
			p.visited.Clear()
			p.closure(&p.queue, thread{state: p.nfa.Start(), start: pos}, haystack, pos)
		}
		for _, t := range p.queue {
			if p.nfa.IsMatch(t.state) {
				return true
			}
		}
		if pos >= len(haystack) || len(p.queue) == 0 && anchored {
			break
		}
		if len(p.queue) > 0 {
			b := haystack[pos]
			p.visited.Clear()
			for _, t := range p.queue {
				p.step(t, b, haystack, pos+1)
			}
		}
		p.queue, p.next = p.next, p.queue[:0]
	}
	return false
}

// closure adds a thread and everything reachable from it over epsilon
// edges and satisfied zero-width assertions to dst. The traversal is an
// explicit worklist with a visited guard: unbounded quantifiers compile to
// genuine epsilon cycles, and the guard is what terminates them.
func (p *PikeVM) closure(dst *[]thread, t thread, haystack []byte, pos int) {
	p.stack = p.stack[:0]
	sid := t.state

	for {
		if p.visited.Insert(uint32(sid)) {
			if s := p.nfa.State(sid); s != nil {
				switch s.Kind() {
				case StateMatch, StateByteRange, StateSparse:
					*dst = append(*dst, thread{state: sid, start: t.start})

				case StateEpsilon:
					if next := s.Epsilon(); next != InvalidState {
						sid = next
						continue
					}

				case StateSplit:
					left, right := s.Split()
					if right != InvalidState {
						p.stack = append(p.stack, right)
					}
					if left != InvalidState {
						sid = left
						continue
					}

				case StateLook:
					look, next := s.LookAssert()
					if look.Holds(haystack, pos) && next != InvalidState {
						sid = next
						continue
					}

				case StateFail:
					// Dead end.
				}
			}
		}

		if len(p.stack) == 0 {
			return
		}
		sid = p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
	}
}

// step feeds one input byte to a thread, seeding the next generation with
// the closure of every transition the byte satisfies.
func (p *PikeVM) step(t thread, b byte, haystack []byte, nextPos int) {
	s := p.nfa.State(t.state)
	if s == nil {
		return
	}
	switch s.Kind() {
	case StateByteRange:
		lo, hi, next := s.ByteRange()
		if b >= lo && b <= hi {
			p.closure(&p.next, thread{state: next, start: t.start}, haystack, nextPos)
		}
	case StateSparse:
		for _, tr := range s.Transitions() {
			if b >= tr.Lo && b <= tr.Hi {
				p.closure(&p.next, thread{state: tr.Next, start: t.start}, haystack, nextPos)
			}
		}
	}
}
