package meta

import (
	"sync"
	"testing"

	"github.com/coregx/rex/syntax"
)

func newEngine(t *testing.T, pattern string) *Engine {
	t.Helper()
	tree, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	e, err := NewEngine(tree, DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine(%q): %v", pattern, err)
	}
	return e
}

func TestStrategySelection(t *testing.T) {
	tests := []struct {
		pattern string
		want    Strategy
	}{
		{"hello", UseLiteral},
		{"x", UseLiteral},
		{"cat|dog", UseAhoCorasick},
		{"hello.*", UsePrefilteredNFA},
		{"^hello", UsePrefilteredNFA},
		{".*", UseNFA},
		{"[a-z]+", UseNFA},
		{"a*", UseNFA},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			e := newEngine(t, tt.pattern)
			if got := e.Strategy(); got != tt.want {
				t.Errorf("Strategy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStrategyDisabledPrefilter(t *testing.T) {
	tree, err := syntax.Parse("hello")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	config := DefaultConfig()
	config.EnablePrefilter = false
	e, err := NewEngine(tree, config)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if e.Strategy() != UseNFA {
		t.Errorf("Strategy() = %v, want UseNFA", e.Strategy())
	}
	m := e.Find([]byte("say hello"))
	if m == nil || m.Start() != 4 || m.End() != 9 {
		t.Errorf("Find = %v, want [4, 9)", m)
	}
}

func TestNewEngineInvalidConfig(t *testing.T) {
	tree, err := syntax.Parse("a")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	config := DefaultConfig()
	config.MaxStates = 0
	if _, err := NewEngine(tree, config); err == nil {
		t.Fatal("expected config error")
	}
}

// Every strategy must produce identical answers; only the path differs.
func TestFindAcrossStrategies(t *testing.T) {
	tests := []struct {
		pattern  string
		haystack string
		start    int
		end      int
	}{
		{"hello", "say hello world", 4, 9},
		{"hello", "nothing here", -1, -1},
		{"cat|dog", "I have a dog", 9, 12},
		{"cat|dog", "catalogue", 0, 3},
		{"cat|dog", "bird", -1, -1},
		{"hello.*", "well hello there", 5, 16},
		{"^hello", "hello world", 0, 5},
		{"^hello", "say hello", -1, -1},
		{"[0-9]+", "order 1234 shipped", 6, 10},
		{"a*", "bbb", 0, 0},
		{"colou?r", "my color", 3, 8},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.haystack, func(t *testing.T) {
			e := newEngine(t, tt.pattern)
			m := e.Find([]byte(tt.haystack))
			if tt.start == -1 {
				if m != nil {
					t.Fatalf("Find = [%d, %d), want nil", m.Start(), m.End())
				}
				return
			}
			if m == nil {
				t.Fatalf("Find = nil, want [%d, %d)", tt.start, tt.end)
			}
			if m.Start() != tt.start || m.End() != tt.end {
				t.Errorf("Find = [%d, %d), want [%d, %d)", m.Start(), m.End(), tt.start, tt.end)
			}
			if want := tt.haystack[tt.start:tt.end]; m.String() != want {
				t.Errorf("String() = %q, want %q", m.String(), want)
			}
		})
	}
}

func TestFindAt(t *testing.T) {
	e := newEngine(t, "ab")
	haystack := []byte("ab ab ab")

	m := e.FindAt(haystack, 1)
	if m == nil || m.Start() != 3 || m.End() != 5 {
		t.Errorf("FindAt(1) = %v, want [3, 5)", m)
	}
	if m := e.FindAt(haystack, 7); m != nil {
		t.Errorf("FindAt(7) = [%d, %d), want nil", m.Start(), m.End())
	}
	if m := e.FindAt(haystack, -1); m != nil {
		t.Error("FindAt(-1) should be nil")
	}
	if m := e.FindAt(haystack, 9); m != nil {
		t.Error("FindAt past end should be nil")
	}
}

// Aho-Corasick candidates are lower bounds; verification must still find
// the leftmost-longest match among overlapping alternatives.
func TestAhoCorasickLeftmost(t *testing.T) {
	e := newEngine(t, "ab|aaab")
	if e.Strategy() != UseAhoCorasick {
		t.Fatalf("Strategy() = %v, want UseAhoCorasick", e.Strategy())
	}
	m := e.Find([]byte("xaaabx"))
	if m == nil || m.Start() != 1 || m.End() != 5 {
		t.Errorf("Find = %v, want [1, 5)", m)
	}
}

// An alternation whose branches share a prefix minimizes to a single
// incomplete literal. If the survivor kept its complete flag the engine
// would answer with the short branch and never run the automaton.
func TestSharedPrefixAlternation(t *testing.T) {
	tests := []struct {
		pattern  string
		haystack string
		start    int
		end      int
	}{
		{"foo|foobar", "a foobar here", 2, 8},
		{"ab|abc", "xabcx", 1, 4},
		{"f|foo", "foo", 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			e := newEngine(t, tt.pattern)
			if e.Strategy() == UseLiteral {
				t.Fatalf("Strategy() = %v, automaton must verify shared-prefix branches", e.Strategy())
			}
			m := e.Find([]byte(tt.haystack))
			if m == nil || m.Start() != tt.start || m.End() != tt.end {
				t.Errorf("Find = %v, want [%d, %d)", m, tt.start, tt.end)
			}
		})
	}
}

func TestIsMatch(t *testing.T) {
	tests := []struct {
		pattern  string
		haystack string
		want     bool
	}{
		{"hello", "say hello", true},
		{"hello", "goodbye", false},
		{"cat|dog", "hotdog", true},
		{"cat|dog", "bird", false},
		{"hello.*", "hello", true},
		{"[0-9]+", "no digits", false},
		{"a*", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.haystack, func(t *testing.T) {
			e := newEngine(t, tt.pattern)
			if got := e.IsMatch([]byte(tt.haystack)); got != tt.want {
				t.Errorf("IsMatch = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindPrefix(t *testing.T) {
	e := newEngine(t, "a+")
	end, found := e.FindPrefix([]byte("aaab"), 0)
	if !found || end != 3 {
		t.Errorf("FindPrefix(0) = (%d, %v), want (3, true)", end, found)
	}
	if _, found := e.FindPrefix([]byte("baaa"), 0); found {
		t.Error("FindPrefix at non-matching start should fail")
	}
	if _, found := e.FindPrefix([]byte("a"), 5); found {
		t.Error("FindPrefix out of range should fail")
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		pattern  string
		haystack string
		want     int
	}{
		{"a", "banana", 3},
		{"an", "banana", 2},
		{"x", "banana", 0},
		{"a*", "aaa", 2},
		{"a*", "abab", 5},
		{"", "ab", 3},
		{"cat|dog", "cat dog cat", 3},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.haystack, func(t *testing.T) {
			e := newEngine(t, tt.pattern)
			if got := e.Count([]byte(tt.haystack)); got != tt.want {
				t.Errorf("Count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStatsCounters(t *testing.T) {
	e := newEngine(t, "hello")
	e.Find([]byte("say hello"))
	e.IsMatch([]byte("say hello"))
	stats := e.Stats()
	if stats.LiteralSearches != 2 {
		t.Errorf("LiteralSearches = %d, want 2", stats.LiteralSearches)
	}
	if stats.NFASearches != 0 {
		t.Errorf("NFASearches = %d, want 0", stats.NFASearches)
	}

	e = newEngine(t, "hello.*")
	e.Find([]byte("say hello there"))
	stats = e.Stats()
	if stats.PrefilterSearches != 1 {
		t.Errorf("PrefilterSearches = %d, want 1", stats.PrefilterSearches)
	}
	if stats.NFASearches == 0 {
		t.Error("expected NFA verification runs")
	}
}

func TestConcurrentSearches(t *testing.T) {
	e := newEngine(t, "[0-9]+")
	haystack := []byte("order 1234 shipped on day 17")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m := e.Find(haystack)
				if m == nil || m.Start() != 6 || m.End() != 10 {
					t.Errorf("Find = %v, want [6, 10)", m)
					return
				}
				if !e.IsMatch(haystack) {
					t.Error("IsMatch = false, want true")
					return
				}
			}
		}()
	}
	wg.Wait()
}
