package meta

// Match is one successful match: a half-open [start, end) span plus a
// reference to the haystack it was found in. The haystack is held by
// reference, not copied.
type Match struct {
	start    int
	end      int
	haystack []byte
}

// NewMatch creates a match over the given haystack.
func NewMatch(start, end int, haystack []byte) *Match {
	return &Match{start: start, end: end, haystack: haystack}
}

// Start returns the inclusive start offset.
func (m *Match) Start() int { return m.start }

// End returns the exclusive end offset.
func (m *Match) End() int { return m.end }

// Len returns the match length in bytes.
func (m *Match) Len() int { return m.end - m.start }

// Bytes returns the matched bytes as a view into the haystack.
func (m *Match) Bytes() []byte { return m.haystack[m.start:m.end] }

// String returns the matched text.
func (m *Match) String() string { return string(m.Bytes()) }
