package syntax

// maxNestDepth bounds group nesting so hostile patterns cannot overflow the
// parser's stack.
const maxNestDepth = 250

// Parse parses a pattern into its component tree.
// It fails with *Error on the first syntax violation; no partial tree is
// ever returned. Parsing has no side effects beyond the returned tree.
func Parse(pattern string) (Node, error) {
	p := &parser{pattern: pattern}
	n, err := p.parseAlternate()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.pattern) {
		// parseAlternate only stops early on ')'.
		return nil, p.errorAt(ErrUnexpectedParen, p.pos)
	}
	return n, nil
}

type parser struct {
	pattern string
	pos     int
	depth   int
}

func (p *parser) errorAt(code ErrorCode, pos int) *Error {
	return &Error{Code: code, Pattern: p.pattern, Pos: pos}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.pattern)
}

// peek returns the current byte, or 0 at end of pattern.
func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.pattern[p.pos]
}

// parseAlternate parses a sequence of '|'-separated concatenations.
// Alternation is the lowest-precedence operator.
func (p *parser) parseAlternate() (Node, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	for !p.eof() && p.peek() == '|' {
		p.pos++
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		left = &Alternate{Left: left, Right: right}
	}
	return left, nil
}

// parseConcat parses a run of quantified atoms. An empty run (empty pattern,
// empty group, empty alternation branch) yields an empty Concat, which
// matches the empty string.
func (p *parser) parseConcat() (Node, error) {
	var subs []Node
	for !p.eof() {
		switch c := p.peek(); c {
		case '|', ')':
			return concat(subs), nil
		case '*', '+', '?', '{':
			// Quantifiers are consumed by parseTerm right after their atom,
			// so one showing up here has nothing to repeat.
			return nil, p.errorAt(ErrMissingRepeatArgument, p.pos)
		}
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		subs = append(subs, term)
	}
	return concat(subs), nil
}

func concat(subs []Node) Node {
	if len(subs) == 1 {
		return subs[0]
	}
	return &Concat{Subs: subs}
}

// parseTerm parses one atom plus an optional quantifier suffix.
func (p *parser) parseTerm() (Node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.eof() || !isQuantifierStart(p.peek()) {
		return atom, nil
	}

	quantPos := p.pos
	switch atom.(type) {
	case *AnchorStart, *AnchorEnd:
		return nil, p.errorAt(ErrZeroWidthRepeat, quantPos)
	}

	var min, max int
	switch p.peek() {
	case '*':
		min, max = 0, Unbounded
		p.pos++
	case '+':
		min, max = 1, Unbounded
		p.pos++
	case '?':
		min, max = 0, 1
		p.pos++
	case '{':
		min, max, err = p.parseBounds()
		if err != nil {
			return nil, err
		}
	}

	if !p.eof() && isQuantifierStart(p.peek()) {
		return nil, p.errorAt(ErrNestedRepeat, p.pos)
	}
	return &Quantifier{Sub: atom, Min: min, Max: max}, nil
}

func isQuantifierStart(c byte) bool {
	return c == '*' || c == '+' || c == '?' || c == '{'
}

// parseBounds parses {m}, {m,} or {m,n}. The opening '{' is at p.pos.
// Bounds must be non-negative decimal integers with m <= n.
func (p *parser) parseBounds() (min, max int, err error) {
	open := p.pos
	p.pos++ // '{'

	min, ok := p.parseInt()
	if !ok {
		return 0, 0, p.errorAt(ErrInvalidRepeat, open)
	}
	switch p.peek() {
	case '}':
		p.pos++
		return min, min, nil
	case ',':
		p.pos++
	default:
		return 0, 0, p.errorAt(ErrInvalidRepeat, open)
	}
	if p.peek() == '}' {
		p.pos++
		return min, Unbounded, nil
	}
	max, ok = p.parseInt()
	if !ok || p.peek() != '}' {
		return 0, 0, p.errorAt(ErrInvalidRepeat, open)
	}
	p.pos++
	if min > max {
		return 0, 0, p.errorAt(ErrInvalidRepeat, open)
	}
	return min, max, nil
}

// parseInt consumes a run of decimal digits. Repetition counts are capped
// to keep the compiled automaton's size proportional to the pattern.
func (p *parser) parseInt() (int, bool) {
	const maxRepeat = 1000
	start := p.pos
	n := 0
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		n = n*10 + int(p.peek()-'0')
		if n > maxRepeat {
			return 0, false
		}
		p.pos++
	}
	return n, p.pos > start
}

// parseAtom parses a single literal, class, group, anchor, or escape.
func (p *parser) parseAtom() (Node, error) {
	switch c := p.peek(); c {
	case '(':
		open := p.pos
		p.pos++
		p.depth++
		if p.depth > maxNestDepth {
			return nil, p.errorAt(ErrMissingParen, open)
		}
		sub, err := p.parseAlternate()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, p.errorAt(ErrMissingParen, open)
		}
		p.pos++
		p.depth--
		return &Group{Sub: sub}, nil
	case '[':
		return p.parseClass()
	case '^':
		p.pos++
		return &AnchorStart{}, nil
	case '$':
		p.pos++
		return &AnchorEnd{}, nil
	case '.':
		p.pos++
		return &CharClass{Ranges: anyRanges()}, nil
	case '\\':
		return p.parseEscape()
	default:
		p.pos++
		return &Literal{Ch: c}, nil
	}
}

// parseEscape parses a '\X' sequence outside a character class.
// The recognized set is fixed; anything else is a syntax error.
func (p *parser) parseEscape() (Node, error) {
	slash := p.pos
	if p.pos+1 >= len(p.pattern) {
		return nil, p.errorAt(ErrTrailingBackslash, slash)
	}
	c := p.pattern[p.pos+1]
	p.pos += 2

	switch c {
	case 'd':
		return &CharClass{Ranges: digitRanges()}, nil
	case 'D':
		return &CharClass{Ranges: complement(digitRanges())}, nil
	case 'w':
		return &CharClass{Ranges: wordRanges()}, nil
	case 'W':
		return &CharClass{Ranges: complement(wordRanges())}, nil
	case 's':
		return &CharClass{Ranges: spaceRanges()}, nil
	case 'S':
		return &CharClass{Ranges: complement(spaceRanges())}, nil
	case 'n':
		return &Literal{Ch: '\n'}, nil
	case 'r':
		return &Literal{Ch: '\r'}, nil
	case 't':
		return &Literal{Ch: '\t'}, nil
	case '\\', '.', '*', '+', '?', '(', ')', '[', ']', '{', '}', '|', '^', '$', '-':
		return &Literal{Ch: c}, nil
	}
	return nil, p.errorAt(ErrInvalidEscape, slash)
}

// parseClass parses a '[...]' character class. The opening '[' is at p.pos.
//
// A ']' directly after '[' or '[^' is a literal member rather than the
// terminator, so "[]]" is the class containing ']'. Negation complements
// over the whole byte alphabet immediately.
func (p *parser) parseClass() (Node, error) {
	open := p.pos
	p.pos++ // '['

	negated := false
	if p.peek() == '^' {
		negated = true
		p.pos++
	}

	var ranges []Range
	first := true
	for {
		if p.eof() {
			return nil, p.errorAt(ErrUnterminatedClass, open)
		}
		c := p.peek()
		if c == ']' && !first {
			p.pos++
			break
		}
		first = false

		lo, multi, err := p.parseClassMember()
		if err != nil {
			return nil, err
		}
		if multi != nil {
			// A predefined class inside [...] contributes its ranges and
			// cannot form an a-z style range.
			ranges = append(ranges, multi...)
			continue
		}

		// Range if '-' follows and isn't the trailing "[x-]" form.
		if p.peek() == '-' && p.pos+1 < len(p.pattern) && p.pattern[p.pos+1] != ']' {
			dash := p.pos
			p.pos++
			hi, himulti, err := p.parseClassMember()
			if err != nil {
				return nil, err
			}
			if himulti != nil || lo > hi {
				return nil, p.errorAt(ErrInvalidClassRange, dash)
			}
			ranges = append(ranges, Range{Lo: lo, Hi: hi})
			continue
		}
		ranges = append(ranges, Range{Lo: lo, Hi: lo})
	}

	ranges = normalize(ranges)
	if negated {
		ranges = complement(ranges)
	}
	return &CharClass{Ranges: ranges}, nil
}

// parseClassMember parses one class member: a literal byte, an escaped
// byte, or a predefined class escape. Exactly one of the return values is
// meaningful: multi is non-nil for predefined classes, otherwise the single
// byte is returned.
func (p *parser) parseClassMember() (b byte, multi []Range, err error) {
	c := p.peek()
	if c != '\\' {
		p.pos++
		return c, nil, nil
	}

	slash := p.pos
	if p.pos+1 >= len(p.pattern) {
		return 0, nil, p.errorAt(ErrTrailingBackslash, slash)
	}
	e := p.pattern[p.pos+1]
	p.pos += 2

	switch e {
	case 'd':
		return 0, digitRanges(), nil
	case 'D':
		return 0, complement(digitRanges()), nil
	case 'w':
		return 0, wordRanges(), nil
	case 'W':
		return 0, complement(wordRanges()), nil
	case 's':
		return 0, spaceRanges(), nil
	case 'S':
		return 0, complement(spaceRanges()), nil
	case 'n':
		return '\n', nil, nil
	case 'r':
		return '\r', nil, nil
	case 't':
		return '\t', nil, nil
	case '\\', ']', '[', '-', '^', '.', '*', '+', '?', '(', ')', '{', '}', '|', '$':
		return e, nil, nil
	}
	return 0, nil, p.errorAt(ErrInvalidEscape, slash)
}
