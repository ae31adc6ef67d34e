// Package literal extracts literal byte sequences from parsed patterns.
//
// The literals feed prefilter selection: a pattern like hello|world can be
// searched with a multi-substring scan instead of the automaton, and a
// pattern like hello.* can at least skip ahead to the next "hello" before
// the automaton runs. A Literal is one candidate byte string; a Seq is the
// set of alternatives extracted from a pattern.
package literal

import (
	"bytes"
	"sort"
)

// Literal is one byte sequence extracted from a pattern.
//
// Complete reports whether the literal is an exact member of the pattern's
// language rather than just a required prefix. When every literal in a Seq
// is complete, the set IS the language and matching needs no automaton at
// all.
//
// Example:
//
//	cat|dog   → {cat, complete} {dog, complete}
//	cat.*     → {cat, incomplete}
type Literal struct {
	// Bytes is the literal byte sequence.
	Bytes []byte

	// Complete is true when Bytes is a whole match, not just a prefix.
	Complete bool
}

// New creates a literal.
func New(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns the literal's length in bytes.
func (l Literal) Len() int { return len(l.Bytes) }

// String returns a debugging representation.
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq is a set of alternative literals extracted from one pattern. Every
// match of the pattern starts with one of the sequence's literals, which
// is the soundness contract prefilters rely on.
type Seq struct {
	literals []Literal
}

// NewSeq creates a sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// IsEmpty reports whether the sequence has no literals.
func (s *Seq) IsEmpty() bool { return s.Len() == 0 }

// Get returns the literal at index i.
func (s *Seq) Get(i int) Literal { return s.literals[i] }

// Literals returns the backing slice. Callers must not mutate it.
func (s *Seq) Literals() []Literal {
	if s == nil {
		return nil
	}
	return s.literals
}

// Push appends a literal.
func (s *Seq) Push(l Literal) {
	s.literals = append(s.literals, l)
}

// AllComplete reports whether every literal in the sequence is complete.
// Empty sequences report false: no literals means no language.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, l := range s.literals {
		if !l.Complete {
			return false
		}
	}
	return true
}

// MinLen returns the length of the shortest literal, 0 when empty.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	min := s.literals[0].Len()
	for _, l := range s.literals[1:] {
		if l.Len() < min {
			min = l.Len()
		}
	}
	return min
}

// MaxLen returns the length of the longest literal, 0 when empty.
func (s *Seq) MaxLen() int {
	max := 0
	for _, l := range s.Literals() {
		if l.Len() > max {
			max = l.Len()
		}
	}
	return max
}

// HasEmpty reports whether the sequence contains the empty literal. An
// empty literal means the pattern can match at any position, which makes
// the sequence useless as a prefilter.
func (s *Seq) HasEmpty() bool {
	for _, l := range s.Literals() {
		if l.Len() == 0 {
			return true
		}
	}
	return false
}

// Minimize removes literals that are redundant for prefix scanning: a
// literal is dropped when a shorter literal in the set is a prefix of it,
// since any occurrence of the longer one contains the shorter one. The
// survivor always loses its Complete flag when a distinct longer literal is
// dropped: the dropped literal describes a match the survivor's bytes alone
// cannot confirm. Exact duplicates are Dedup's job.
//
// Example:
//
//	{foo} {foobar}  →  {foo, incomplete}
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	sort.Slice(s.literals, func(i, j int) bool {
		return len(s.literals[i].Bytes) < len(s.literals[j].Bytes)
	})

	kept := make([]Literal, 0, len(s.literals))
	for _, cur := range s.literals {
		redundant := false
		for k := range kept {
			if bytes.HasPrefix(cur.Bytes, kept[k].Bytes) {
				kept[k].Complete = false
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, cur)
		}
	}
	s.literals = kept
}

// Dedup removes exact duplicate literals, keeping the first occurrence.
// Two literals with equal bytes merge; the merged literal is complete only
// if both were.
func (s *Seq) Dedup() {
	if s.Len() < 2 {
		return
	}
	kept := s.literals[:0]
	for _, cur := range s.literals {
		dup := false
		for k := range kept {
			if bytes.Equal(kept[k].Bytes, cur.Bytes) {
				if !cur.Complete {
					kept[k].Complete = false
				}
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, cur)
		}
	}
	s.literals = kept
}

// LongestCommonPrefix returns the longest byte prefix shared by every
// literal in the sequence. Since every match starts with one of the
// literals, every match also starts with this prefix, so it is itself a
// sound single-substring prefilter.
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return nil
	}
	prefix := s.literals[0].Bytes
	for _, l := range s.literals[1:] {
		prefix = commonPrefix(prefix, l.Bytes)
		if len(prefix) == 0 {
			return nil
		}
	}
	out := make([]byte, len(prefix))
	copy(out, prefix)
	return out
}

func commonPrefix(a, b []byte) []byte {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
