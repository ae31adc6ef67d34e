package nfa

import (
	"errors"
	"strings"
	"testing"

	"github.com/coregx/rex/syntax"
)

func compilePattern(t *testing.T, pattern string) *NFA {
	t.Helper()
	tree, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	n, err := Compile(tree)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	return n
}

func TestCompileBasicPatterns(t *testing.T) {
	patterns := []string{
		"",
		"a",
		"abc",
		"a|b",
		"(ab)*",
		"a+b?c*",
		"[a-z0-9_]",
		"[^aeiou]",
		"a{2,5}",
		"a{3}",
		"a{2,}",
		"^hello$",
		".",
		`\d+\.\d+`,
	}
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			n := compilePattern(t, pattern)
			if n.States() == 0 {
				t.Fatal("expected at least one state")
			}
			if n.State(n.Start()) == nil {
				t.Fatal("start state not in table")
			}
			match := false
			for id := 0; id < n.States(); id++ {
				if n.IsMatch(StateID(id)) {
					match = true
				}
			}
			if !match {
				t.Fatal("no accepting state")
			}
		})
	}
}

func TestCompileAnchoredStart(t *testing.T) {
	tests := []struct {
		pattern  string
		anchored bool
	}{
		{"^abc", true},
		{"abc", false},
		{"^a|^b", true},
		{"^a|b", false},
		{"(^a)b", true},
		{"(^a)+", true},
		{"(^a)*", false},
		{"a^b", false},
		{"^", true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n := compilePattern(t, tt.pattern)
			if got := n.AnchoredStart(); got != tt.anchored {
				t.Errorf("AnchoredStart() = %v, want %v", got, tt.anchored)
			}
		})
	}
}

func TestCompileStateLimit(t *testing.T) {
	// Each mandatory repetition duplicates the subexpression, so a large
	// counted repeat of a counted repeat blows past any sane state cap.
	tree, err := syntax.Parse("(a{100}){100}")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c := NewCompiler(CompilerConfig{MaxStates: 500})
	_, err = c.Compile(tree)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, ErrTooComplex) {
		t.Errorf("expected ErrTooComplex, got %v", err)
	}
	var cerr *CompileError
	if !errors.As(err, &cerr) {
		t.Errorf("expected *CompileError, got %T", err)
	}
}

func TestCompileWithinLimit(t *testing.T) {
	tree, err := syntax.Parse("a{100}")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	n, err := NewCompiler(CompilerConfig{MaxStates: 500}).Compile(tree)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if n.States() < 100 {
		t.Errorf("expected at least 100 states, got %d", n.States())
	}
}

func TestCompileEmptyClass(t *testing.T) {
	// The parser cannot produce a class with zero ranges, but the compiler
	// must still be total over the tree type.
	n, err := Compile(&syntax.CharClass{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	vm := NewPikeVM(n)
	for _, input := range []string{"", "a", "\x00"} {
		if vm.IsMatch([]byte(input)) {
			t.Errorf("empty class matched %q", input)
		}
	}
}

func TestCompileQuantifierZeroMax(t *testing.T) {
	n, err := Compile(&syntax.Quantifier{Sub: &syntax.Literal{Ch: 'a'}, Min: 0, Max: 0})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	vm := NewPikeVM(n)
	if start, end, ok := vm.SearchAt([]byte("aaa"), 0); !ok || start != 0 || end != 0 {
		t.Errorf("got (%d, %d, %v), want (0, 0, true)", start, end, ok)
	}
}

func TestDotOutput(t *testing.T) {
	n := compilePattern(t, "^a[bc]+$")
	dot := n.Dot()
	if !strings.HasPrefix(dot, "digraph nfa {") {
		t.Errorf("missing digraph header:\n%s", dot)
	}
	if !strings.Contains(dot, "doublecircle") {
		t.Errorf("missing accepting state shape:\n%s", dot)
	}
	if !strings.Contains(dot, "start ->") {
		t.Errorf("missing start edge:\n%s", dot)
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Errorf("unterminated graph:\n%s", dot)
	}
}

func TestStateString(t *testing.T) {
	n := compilePattern(t, "a|b")
	for id := 0; id < n.States(); id++ {
		s := n.State(StateID(id))
		if s.String() == "" {
			t.Errorf("state %d: empty String()", id)
		}
	}
	if n.String() == "" {
		t.Error("empty NFA String()")
	}
}
