// Package prefilter accelerates searching by scanning for literal bytes
// before the automaton runs.
//
// A prefilter answers one question: what is the earliest position at or
// after 'start' where a match could begin? Positions before the answer are
// rejected wholesale with substring primitives, which are far cheaper per
// byte than automaton simulation. The engine then verifies the candidate
// with the automaton, so a prefilter only ever has to be sound, never
// exact.
//
// Strategy selection by extracted literal shape:
//   - single 1-byte literal  → memchr (bytes.IndexByte)
//   - single longer literal  → memmem (bytes.Index)
//   - several literals       → Aho-Corasick automaton
//   - shared prefix fallback → memmem on the common prefix
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/rex/literal"
)

// Prefilter finds candidate match positions.
//
// The contract: no match of the underlying pattern begins in
// [start, Find(haystack, start)). A return of -1 means no match begins
// anywhere at or after start.
type Prefilter interface {
	// Find returns the earliest candidate position at or after start,
	// or -1 when none exists.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a candidate is already a whole match,
	// letting the caller skip automaton verification.
	IsComplete() bool

	// LiteralLen returns the matched literal's length when IsComplete
	// reports true, and 0 otherwise.
	LiteralLen() int

	// HeapBytes returns the prefilter's heap footprint, for stats.
	HeapBytes() int
}

// Builder selects and constructs a prefilter from an extracted literal
// sequence.
type Builder struct {
	seq *literal.Seq
}

// NewBuilder creates a builder for the given prefix literals. The caller
// should Minimize the sequence first so redundant literals do not force a
// multi-literal strategy.
func NewBuilder(seq *literal.Seq) *Builder {
	return &Builder{seq: seq}
}

// Build returns the best prefilter for the literals, or nil when no
// effective prefilter exists. A sequence containing the empty literal is
// useless: it certifies nothing about where matches begin.
func (b *Builder) Build() Prefilter {
	seq := b.seq
	if seq.IsEmpty() || seq.HasEmpty() {
		return nil
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if lit.Len() == 1 {
			return newMemchr(lit.Bytes[0], lit.Complete)
		}
		return newMemmem(lit.Bytes, lit.Complete)
	}

	if pf := newAhoCorasick(seq); pf != nil {
		return pf
	}

	// The automaton could not be built; a shared prefix still narrows
	// the search soundly.
	if lcp := seq.LongestCommonPrefix(); len(lcp) == 1 {
		return newMemchr(lcp[0], false)
	} else if len(lcp) > 1 {
		return newMemmem(lcp, false)
	}
	return nil
}

// memchr scans for a single byte.
type memchr struct {
	needle   byte
	complete bool
}

func newMemchr(needle byte, complete bool) Prefilter {
	return &memchr{needle: needle, complete: complete}
}

func (p *memchr) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.IndexByte(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *memchr) IsComplete() bool { return p.complete }

func (p *memchr) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

func (p *memchr) HeapBytes() int { return 0 }

// memmem scans for a single substring.
type memmem struct {
	needle   []byte
	complete bool
}

func newMemmem(needle []byte, complete bool) Prefilter {
	cp := make([]byte, len(needle))
	copy(cp, needle)
	return &memmem{needle: cp, complete: complete}
}

func (p *memmem) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.Index(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *memmem) IsComplete() bool { return p.complete }

func (p *memmem) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}

func (p *memmem) HeapBytes() int { return len(p.needle) }

// ahoCorasick scans for any of several literals at once.
//
// The automaton reports the occurrence with the leftmost END, whose start
// need not be the leftmost possible match start: with literals {ab, aaab}
// on "aaab", the earliest-ending occurrence is "ab" at offset 2 while a
// match may begin at 0. Subtracting the longest literal length from the
// reported end yields a position provably at or before every match start,
// which is exactly the Find contract.
type ahoCorasick struct {
	auto    *ahocorasick.Automaton
	maxLen  int
	patLens int
}

func newAhoCorasick(seq *literal.Seq) Prefilter {
	builder := ahocorasick.NewBuilder()
	total := 0
	for _, lit := range seq.Literals() {
		builder.AddPattern(lit.Bytes)
		total += lit.Len()
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoCorasick{auto: auto, maxLen: seq.MaxLen(), patLens: total}
}

func (p *ahoCorasick) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	cand := m.End - p.maxLen
	if cand < start {
		cand = start
	}
	return cand
}

// IsComplete always reports false: the candidate is a lower bound, not an
// occurrence, so verification is required even for complete literal sets.
func (p *ahoCorasick) IsComplete() bool { return false }

func (p *ahoCorasick) LiteralLen() int { return 0 }

func (p *ahoCorasick) HeapBytes() int { return p.patLens }
