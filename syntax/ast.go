// Package syntax parses the restricted regex dialect into a component tree.
//
// The dialect supports single-byte literals, character classes with ranges
// and negation, the predefined classes \d \w \s (and their negations), the
// wildcard '.', the anchors '^' and '$', alternation '|', grouping '(...)',
// a fixed escape set, and the quantifiers * + ? {m} {m,} {m,n}.
//
// Parsing is eager and total: a pattern either produces a complete tree or
// fails with *Error carrying the byte offset of the offending construct.
// Grouping is structural only; the dialect has no captures, lookaround, or
// backreferences.
package syntax

// Unbounded marks a quantifier with no upper repetition bound.
const Unbounded = -1

// Node is a node of the parsed component tree. The set of implementations
// is closed: Literal, CharClass, Quantifier, AnchorStart, AnchorEnd,
// Alternate, Group, and Concat. The compiler switches exhaustively over it.
type Node interface {
	node()
}

// Literal matches exactly one input byte.
type Literal struct {
	Ch byte
}

// Range is an inclusive byte range inside a character class.
type Range struct {
	Lo, Hi byte
}

// CharClass matches any single byte inside one of its ranges.
//
// Ranges are always sorted, non-overlapping, and non-adjacent. Negation is
// resolved at parse time by complementing over the byte alphabet, so "any
// byte but X" is stored as at most two ranges rather than 255 single-byte
// entries. Escape-sequence classes (\d, \w, ...) and the wildcard '.'
// desugar to CharClass during parsing.
type CharClass struct {
	Ranges []Range
}

// Matches reports whether b is a member of the class.
func (c *CharClass) Matches(b byte) bool {
	for _, r := range c.Ranges {
		if b >= r.Lo && b <= r.Hi {
			return true
		}
	}
	return false
}

// Quantifier repeats Sub between Min and Max times.
// Max is Unbounded for the open-ended forms * + {m,}.
type Quantifier struct {
	Sub Node
	Min int
	Max int
}

// AnchorStart is the zero-width '^' assertion: the scan position must be
// the start of the input. It is a position predicate wherever it appears.
type AnchorStart struct{}

// AnchorEnd is the zero-width '$' assertion: the scan position must be
// the end of the input.
type AnchorEnd struct{}

// Alternate matches either Left or Right.
type Alternate struct {
	Left  Node
	Right Node
}

// Group wraps a parenthesized subexpression. It only delimits structure;
// the dialect materializes no captures.
type Group struct {
	Sub Node
}

// Concat matches its subexpressions in order. An empty Concat matches the
// empty string; the empty pattern parses to one.
type Concat struct {
	Subs []Node
}

func (*Literal) node()     {}
func (*CharClass) node()   {}
func (*Quantifier) node()  {}
func (*AnchorStart) node() {}
func (*AnchorEnd) node()   {}
func (*Alternate) node()   {}
func (*Group) node()       {}
func (*Concat) node()      {}

// normalize sorts and merges the ranges of a class into canonical form.
func normalize(ranges []Range) []Range {
	if len(ranges) <= 1 {
		return ranges
	}
	// Insertion sort: class range counts are tiny.
	for i := 1; i < len(ranges); i++ {
		for j := i; j > 0 && ranges[j].Lo < ranges[j-1].Lo; j-- {
			ranges[j], ranges[j-1] = ranges[j-1], ranges[j]
		}
	}
	out := ranges[:1]
	for _, r := range ranges[1:] {
		last := &out[len(out)-1]
		if int(r.Lo) <= int(last.Hi)+1 {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// complement returns the ranges matching every byte the input does not.
// The input must be in canonical form.
func complement(ranges []Range) []Range {
	var out []Range
	next := 0
	for _, r := range ranges {
		if int(r.Lo) > next {
			out = append(out, Range{Lo: byte(next), Hi: r.Lo - 1})
		}
		next = int(r.Hi) + 1
	}
	if next <= 0xFF {
		out = append(out, Range{Lo: byte(next), Hi: 0xFF})
	}
	return out
}

// Predefined classes. Fresh slices are returned because parsing may
// complement them in place.

func digitRanges() []Range {
	return []Range{{'0', '9'}}
}

func wordRanges() []Range {
	return []Range{{'0', '9'}, {'A', 'Z'}, {'_', '_'}, {'a', 'z'}}
}

func spaceRanges() []Range {
	return []Range{{'\t', '\n'}, {'\v', '\r'}, {' ', ' '}}
}

func anyRanges() []Range {
	return []Range{{0x00, 0xFF}}
}
