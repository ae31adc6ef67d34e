package literal

import (
	"github.com/coregx/rex/syntax"
)

// ExtractorConfig bounds literal extraction.
//
// Limits keep pathological patterns from exploding during extraction:
// alternations multiply the literal count, character classes multiply it
// again, and counted repetitions multiply literal length.
type ExtractorConfig struct {
	// MaxLiterals caps the number of extracted literals. Extraction that
	// would exceed the cap degrades to an incomplete or empty result
	// instead. Default: 64.
	MaxLiterals int

	// MaxLiteralLen caps the length of each literal. Longer candidates
	// are truncated and marked incomplete. Default: 64.
	MaxLiteralLen int

	// MaxClassSize caps how large a character class may be before it is
	// treated as opaque instead of enumerated byte by byte. Default: 10.
	MaxClassSize int
}

// DefaultConfig returns the default extraction limits.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor walks a parsed component tree and collects the literal
// prefixes every match must begin with.
type Extractor struct {
	config   ExtractorConfig
	anchored bool
}

// NewExtractor creates an extractor with the given limits. Zero limits are
// replaced with defaults.
func NewExtractor(config ExtractorConfig) *Extractor {
	def := DefaultConfig()
	if config.MaxLiterals == 0 {
		config.MaxLiterals = def.MaxLiterals
	}
	if config.MaxLiteralLen == 0 {
		config.MaxLiteralLen = def.MaxLiteralLen
	}
	if config.MaxClassSize == 0 {
		config.MaxClassSize = def.MaxClassSize
	}
	return &Extractor{config: config}
}

// Prefixes extracts the prefix literal set of the tree.
//
// The result upholds the prefilter contract: every match of the pattern
// begins with one of the returned literals. When additionally AllComplete
// reports true, the literal set is exactly the pattern's language and
// matching needs no automaton. An empty result means no useful prefixes
// exist (for example when an alternation branch starts with a wildcard).
//
// Examples:
//
//	cat|dog     → {cat, complete} {dog, complete}
//	cat.*       → {cat, incomplete}
//	[ab]x       → {ax, complete} {bx, complete}
//	.*cat       → {empty, incomplete} (no usable prefix)
//	^cat        → {cat, incomplete}
func (e *Extractor) Prefixes(tree syntax.Node) *Seq {
	e.anchored = false
	seq := e.extract(tree)
	if seq == nil {
		return NewSeq()
	}
	seq.Dedup()
	// Anchors constrain where a match may sit in the haystack, which the
	// literal set cannot express. Keeping the literals as incomplete
	// prefixes stays sound; claiming completeness would not.
	if e.anchored {
		markIncomplete(seq)
	}
	return seq
}

// extract returns the prefix sequence for one node, or nil when the node
// admits matches with no known prefix.
func (e *Extractor) extract(node syntax.Node) *Seq {
	switch n := node.(type) {
	case *syntax.Literal:
		return NewSeq(New([]byte{n.Ch}, true))

	case *syntax.CharClass:
		return e.enumerateClass(n)

	case *syntax.Group:
		return e.extract(n.Sub)

	case *syntax.Concat:
		return e.extractConcat(n.Subs)

	case *syntax.Alternate:
		left := e.extract(n.Left)
		if left == nil {
			return nil
		}
		right := e.extract(n.Right)
		if right == nil {
			return nil
		}
		if left.Len()+right.Len() > e.config.MaxLiterals {
			return nil
		}
		for _, l := range right.Literals() {
			left.Push(l)
		}
		return left

	case *syntax.Quantifier:
		return e.extractQuantifier(n)

	case *syntax.AnchorStart, *syntax.AnchorEnd:
		e.anchored = true
		return NewSeq(New(nil, true))

	default:
		return nil
	}
}

func (e *Extractor) extractConcat(subs []syntax.Node) *Seq {
	acc := NewSeq(New(nil, true))
	for _, sub := range subs {
		if !acc.AllComplete() {
			break
		}
		next := e.extract(sub)
		if next == nil {
			markIncomplete(acc)
			break
		}
		crossed := e.cross(acc, next)
		if crossed == nil {
			markIncomplete(acc)
			break
		}
		acc = crossed
	}
	return acc
}

func (e *Extractor) extractQuantifier(n *syntax.Quantifier) *Seq {
	if n.Max == 0 {
		return NewSeq(New(nil, true))
	}
	if n.Min == 0 {
		// The repetition may match nothing, so it contributes no
		// required prefix and nothing after it can either.
		return NewSeq(New(nil, false))
	}
	sub := e.extract(n.Sub)
	if sub == nil {
		return nil
	}
	acc := NewSeq(New(nil, true))
	for i := 0; i < n.Min; i++ {
		if !acc.AllComplete() {
			break
		}
		crossed := e.cross(acc, sub)
		if crossed == nil {
			markIncomplete(acc)
			break
		}
		acc = crossed
	}
	if n.Max != n.Min {
		markIncomplete(acc)
	}
	return acc
}

// enumerateClass expands a small class into one single-byte literal per
// member. Large classes are opaque: enumerating [a-z] as 26 alternatives
// would bloat every cross product downstream.
func (e *Extractor) enumerateClass(n *syntax.CharClass) *Seq {
	size := 0
	for _, r := range n.Ranges {
		size += int(r.Hi) - int(r.Lo) + 1
	}
	if size == 0 || size > e.config.MaxClassSize {
		return nil
	}
	seq := NewSeq()
	for _, r := range n.Ranges {
		for b := int(r.Lo); b <= int(r.Hi); b++ {
			seq.Push(New([]byte{byte(b)}, true))
		}
	}
	return seq
}

// cross concatenates every complete literal of a with every literal of b.
// Incomplete literals in a pass through unchanged: a prefix that already
// ends in unknown territory cannot be extended. Returns nil when the
// product would blow past MaxLiterals.
func (e *Extractor) cross(a, b *Seq) *Seq {
	if a.Len()*b.Len() > e.config.MaxLiterals {
		return nil
	}
	out := NewSeq()
	for _, x := range a.Literals() {
		if !x.Complete {
			out.Push(x)
			continue
		}
		for _, y := range b.Literals() {
			comb := make([]byte, 0, len(x.Bytes)+len(y.Bytes))
			comb = append(comb, x.Bytes...)
			comb = append(comb, y.Bytes...)
			complete := y.Complete
			if len(comb) > e.config.MaxLiteralLen {
				comb = comb[:e.config.MaxLiteralLen]
				complete = false
			}
			out.Push(New(comb, complete))
		}
	}
	return out
}

func markIncomplete(s *Seq) {
	for i := range s.literals {
		s.literals[i].Complete = false
	}
}
