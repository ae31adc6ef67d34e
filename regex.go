// Package rex implements a compact regular expression engine for a
// restricted dialect with linear-time matching guarantees.
//
// The dialect supports literals, '.', character classes with ranges and
// negation, the predefined classes \d \D \w \W \s \S, grouping,
// alternation, the quantifiers * + ? {m} {m,} {m,n}, and the anchors
// ^ and $. There are no capture groups and no backtracking: patterns
// compile to a Thompson NFA simulated in parallel, so matching is
// O(pattern * input) even for pathological inputs.
//
// Matching is byte-wise and leftmost-longest: the match starting earliest
// wins, and among matches at that start the longest wins. '.' matches any
// byte including newline.
//
// Basic usage:
//
//	re, err := rex.Compile(`[0-9]+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	re.MatchString("order 42")          // true
//	re.FindString("order 42")           // "42"
//	re.ReplaceAllString("order 42", "#") // "order #"
//
// A compiled Regex selects its execution strategy up front: pure literal
// patterns never run the automaton, patterns with required prefixes skip
// ahead with substring scans, and everything else runs the simulator
// directly. Compiled patterns are safe for concurrent use.
package rex

import (
	"github.com/coregx/rex/meta"
	"github.com/coregx/rex/nfa"
	"github.com/coregx/rex/syntax"
)

// Regex is a compiled regular expression. It is immutable and safe for
// concurrent use by multiple goroutines.
type Regex struct {
	engine  *meta.Engine
	pattern string
}

// Regexp is an alias for Regex for callers used to the stdlib name.
type Regexp = Regex

// Compile compiles a pattern with the default configuration.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics on error. Intended for patterns
// known valid at program start.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("rex: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with an explicit configuration,
// allowing custom automaton size and literal extraction limits.
func CompileWithConfig(pattern string, config meta.Config) (*Regex, error) {
	tree, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	engine, err := meta.NewEngine(tree, config)
	if err != nil {
		return nil, err
	}
	return &Regex{engine: engine, pattern: pattern}, nil
}

// DefaultConfig returns the default compilation configuration.
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// QuoteMeta returns a pattern that matches the literal text s: every
// metacharacter of the dialect is backslash-escaped.
func QuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$-`

	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, 0, len(s)+n)
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf = append(buf, '\\')
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}

func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}

// String returns the source pattern.
func (r *Regex) String() string {
	return r.pattern
}

// Match reports whether b contains any match of the pattern.
func (r *Regex) Match(b []byte) bool {
	return r.engine.IsMatch(b)
}

// MatchString reports whether s contains any match of the pattern.
func (r *Regex) MatchString(s string) bool {
	return r.Match([]byte(s))
}

// MatchPrefix reports whether a match starts at the beginning of b.
func (r *Regex) MatchPrefix(b []byte) bool {
	_, found := r.engine.FindPrefix(b, 0)
	return found
}

// FindPrefixIndex returns the end of the longest match starting at the
// beginning of b, or -1 when no match starts there.
func (r *Regex) FindPrefixIndex(b []byte) int {
	end, found := r.engine.FindPrefix(b, 0)
	if !found {
		return -1
	}
	return end
}

// Find returns the leftmost-longest match in b, or nil when there is
// none. The result aliases b.
func (r *Regex) Find(b []byte) []byte {
	m := r.engine.Find(b)
	if m == nil {
		return nil
	}
	return m.Bytes()
}

// FindString returns the leftmost-longest match in s, or "" when there is
// none. Use FindStringIndex to distinguish no match from an empty match.
func (r *Regex) FindString(s string) string {
	m := r.engine.Find([]byte(s))
	if m == nil {
		return ""
	}
	return m.String()
}

// FindIndex returns the span of the leftmost-longest match as a two
// element slice, or nil when there is none.
func (r *Regex) FindIndex(b []byte) []int {
	m := r.engine.Find(b)
	if m == nil {
		return nil
	}
	return []int{m.Start(), m.End()}
}

// FindStringIndex is FindIndex on a string haystack.
func (r *Regex) FindStringIndex(s string) []int {
	return r.FindIndex([]byte(s))
}

// FindAllIndex returns the spans of successive non-overlapping matches.
// If n >= 0 at most n matches are returned; a negative n means all. After
// an empty match the scan advances one byte, so an empty-matching pattern
// yields a match at every position including len(b).
func (r *Regex) FindAllIndex(b []byte, n int) [][]int {
	if n == 0 {
		return nil
	}
	var out [][]int
	at := 0
	for at <= len(b) {
		m := r.engine.FindAt(b, at)
		if m == nil {
			break
		}
		out = append(out, []int{m.Start(), m.End()})
		if n > 0 && len(out) >= n {
			break
		}
		if m.End() == m.Start() {
			at = m.End() + 1
		} else {
			at = m.End()
		}
	}
	return out
}

// FindAll returns successive non-overlapping matches as sub-slices of b.
// See FindAllIndex for the n and empty-match rules.
func (r *Regex) FindAll(b []byte, n int) [][]byte {
	indices := r.FindAllIndex(b, n)
	if indices == nil {
		return nil
	}
	out := make([][]byte, len(indices))
	for i, span := range indices {
		out[i] = b[span[0]:span[1]]
	}
	return out
}

// FindAllString returns successive non-overlapping matches in s.
func (r *Regex) FindAllString(s string, n int) []string {
	indices := r.FindAllIndex([]byte(s), n)
	if indices == nil {
		return nil
	}
	out := make([]string, len(indices))
	for i, span := range indices {
		out[i] = s[span[0]:span[1]]
	}
	return out
}

// FindAllStringIndex is FindAllIndex on a string haystack.
func (r *Regex) FindAllStringIndex(s string, n int) [][]int {
	return r.FindAllIndex([]byte(s), n)
}

// Count returns the number of non-overlapping matches in b. If n > 0 at
// most n matches are counted; n <= 0 counts all.
func (r *Regex) Count(b []byte, n int) int {
	if n <= 0 {
		return r.engine.Count(b)
	}
	count, at := 0, 0
	for at <= len(b) && count < n {
		m := r.engine.FindAt(b, at)
		if m == nil {
			break
		}
		count++
		if m.End() == m.Start() {
			at = m.End() + 1
		} else {
			at = m.End()
		}
	}
	return count
}

// CountString is Count on a string haystack.
func (r *Regex) CountString(s string, n int) int {
	return r.Count([]byte(s), n)
}

// ReplaceAll returns a copy of src with every match replaced by repl. The
// dialect has no capture groups, so repl is inserted literally.
func (r *Regex) ReplaceAll(src, repl []byte) []byte {
	return r.replaceN(src, -1, func([]byte) []byte { return repl })
}

// ReplaceAllString returns a copy of src with every match replaced by
// repl, inserted literally.
func (r *Regex) ReplaceAllString(src, repl string) string {
	return string(r.ReplaceAll([]byte(src), []byte(repl)))
}

// ReplaceAllN is ReplaceAll limited to the first n matches. A negative n
// replaces all matches; n == 0 returns a copy of src unchanged.
func (r *Regex) ReplaceAllN(src, repl []byte, n int) []byte {
	return r.replaceN(src, n, func([]byte) []byte { return repl })
}

// ReplaceAllStringN is ReplaceAllN on string arguments.
func (r *Regex) ReplaceAllStringN(src, repl string, n int) string {
	return string(r.ReplaceAllN([]byte(src), []byte(repl), n))
}

// ReplaceAllFunc returns a copy of src where every match is replaced by
// the return value of repl applied to the matched bytes.
func (r *Regex) ReplaceAllFunc(src []byte, repl func([]byte) []byte) []byte {
	return r.replaceN(src, -1, repl)
}

// ReplaceAllStringFunc is ReplaceAllFunc on string arguments.
func (r *Regex) ReplaceAllStringFunc(src string, repl func(string) string) string {
	return string(r.replaceN([]byte(src), -1, func(m []byte) []byte {
		return []byte(repl(string(m)))
	}))
}

// replaceN drives all replacement variants. Matches are found with the
// same iteration rules as FindAllIndex, so empty matches insert repl
// between bytes without consuming input.
func (r *Regex) replaceN(src []byte, n int, repl func([]byte) []byte) []byte {
	buf := make([]byte, 0, len(src))
	at, prev, count := 0, 0, 0
	for at <= len(src) {
		if n >= 0 && count >= n {
			break
		}
		m := r.engine.FindAt(src, at)
		if m == nil {
			break
		}
		buf = append(buf, src[prev:m.Start()]...)
		buf = append(buf, repl(m.Bytes())...)
		prev = m.End()
		count++
		if m.End() == m.Start() {
			at = m.End() + 1
		} else {
			at = m.End()
		}
	}
	return append(buf, src[prev:]...)
}

// Split slices s around all matches of the pattern and returns the pieces
// between them. If n > 0 at most n pieces are returned, the last holding
// the unsplit remainder; a negative n means no limit; n == 0 returns nil.
func (r *Regex) Split(s string, n int) []string {
	if n == 0 {
		return nil
	}

	indices := r.FindAllStringIndex(s, -1)
	if len(indices) == 0 {
		return []string{s}
	}

	out := make([]string, 0, len(indices)+1)
	prev := 0
	for _, span := range indices {
		if n > 0 && len(out) >= n-1 {
			break
		}
		out = append(out, s[prev:span[0]])
		prev = span[1]
	}
	return append(out, s[prev:])
}

// Strategy returns the execution strategy selected at compile time.
func (r *Regex) Strategy() meta.Strategy {
	return r.engine.Strategy()
}

// Stats returns a snapshot of the engine's search counters.
func (r *Regex) Stats() meta.Stats {
	return r.engine.Stats()
}

// NFA returns the compiled automaton, mainly for inspection.
func (r *Regex) NFA() *nfa.NFA {
	return r.engine.NFA()
}

// Dot returns the automaton in Graphviz DOT form for debugging.
func (r *Regex) Dot() string {
	return r.engine.NFA().Dot()
}
