// Package sparse provides a sparse set over small uint32 universes.
//
// The simulator uses it to deduplicate NFA states per generation: insertion,
// membership, and clearing are all O(1), and Clear does not touch the backing
// arrays, so one set can be reused across every step of a search.
package sparse

// Set is a set of uint32 values below a fixed capacity.
//
// It keeps a dense slice of members for iteration and a sparse slice mapping
// each value to its dense index for membership tests. Values at or above the
// capacity are silently rejected.
type Set struct {
	sparse []uint32
	dense  []uint32
}

// New creates a set able to hold values in [0, capacity).
func New(capacity uint32) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds v to the set. It reports whether v was newly inserted;
// false means v was already present (or out of range).
func (s *Set) Insert(v uint32) bool {
	if v >= uint32(len(s.sparse)) {
		return false
	}
	if s.Contains(v) {
		return false
	}
	s.sparse[v] = uint32(len(s.dense))
	s.dense = append(s.dense, v)
	return true
}

// Contains reports whether v is in the set.
func (s *Set) Contains(v uint32) bool {
	if v >= uint32(len(s.sparse)) {
		return false
	}
	i := s.sparse[v]
	return i < uint32(len(s.dense)) && s.dense[i] == v
}

// Clear empties the set in O(1).
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.dense)
}

// Values returns the members in insertion order.
// The slice is valid until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense
}
