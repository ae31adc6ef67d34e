// Cross-checks against the standard library regexp package over the shared
// dialect subset. Stdlib engines are put in Longest() mode to line up with
// this package's leftmost-longest semantics.
//
// Patterns and inputs stay inside the overlap of the two dialects: ASCII
// inputs without newline (`.` here matches any byte) and without vertical
// tab (`\s` here includes it, stdlib's does not), and replacements without
// `$` (substitution here is literal). Iteration comparisons skip patterns
// that can match the empty string: this package reports an empty match at
// every unconsumed position, stdlib drops an empty match adjacent to the
// previous match, so FindAll and friends legitimately disagree there.
package rex

import (
	"math/rand"
	"reflect"
	"regexp"
	"testing"
)

// compatPatterns compile under both engines with identical Find semantics
// on the inputs this file generates.
var compatPatterns = []string{
	``,
	`a`,
	`abc`,
	`a*`,
	`a+`,
	`a?`,
	`a{2,3}`,
	`a{2}`,
	`a{2,}`,
	`(ab)+`,
	`(ab)*c`,
	`ab|abc`,
	`foo|foobar`,
	`cat|dog`,
	`a|b|c`,
	`[abc]`,
	`[a-z]+`,
	`[^a-z]`,
	`[^0-9]+`,
	`[0-9]{2,4}`,
	`\d+`,
	`\w+`,
	`\s`,
	`\d*\w`,
	`.`,
	`.*`,
	`a.c`,
	`^abc`,
	`abc$`,
	`^a+$`,
	`^$`,
	`x(y|z)*`,
	`(a|ab)(c|bcd)`,
	`colou?r`,
}

var compatInputs = []string{
	"",
	"a",
	"aa",
	"aaa",
	"aaaa",
	"abc",
	"abcabc",
	"xabcx",
	"ab",
	"abab",
	"ababc",
	"foobar",
	"a foobar here",
	"I have a dog",
	"catalogue",
	"0123",
	"order 1234 shipped",
	"x yz",
	"xyzzy",
	"abcbcd",
	"my color",
	"my colour",
	"   ",
	"_under_score_",
}

func mustCompileT(t *testing.T, pattern string) *Regex {
	t.Helper()
	re, err := Compile(pattern)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	return re
}

func stdlibLongest(t *testing.T, pattern string) *regexp.Regexp {
	t.Helper()
	sre, err := regexp.Compile(pattern)
	if err != nil {
		t.Fatalf("stdlib Compile(%q): %v", pattern, err)
	}
	sre.Longest()
	return sre
}

func TestStdlibCompatFind(t *testing.T) {
	for _, pattern := range compatPatterns {
		re := mustCompileT(t, pattern)
		sre := stdlibLongest(t, pattern)
		for _, input := range compatInputs {
			if got, want := re.MatchString(input), sre.MatchString(input); got != want {
				t.Errorf("MatchString(%q, %q) = %v, stdlib %v", pattern, input, got, want)
			}
			got := re.FindStringIndex(input)
			want := sre.FindStringIndex(input)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("FindStringIndex(%q, %q) = %v, stdlib %v", pattern, input, got, want)
			}
		}
	}
}

func TestStdlibCompatFindAll(t *testing.T) {
	for _, pattern := range compatPatterns {
		re := mustCompileT(t, pattern)
		sre := stdlibLongest(t, pattern)
		if sre.MatchString("") {
			continue
		}
		for _, input := range compatInputs {
			got := re.FindAllStringIndex(input, -1)
			want := sre.FindAllStringIndex(input, -1)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("FindAllStringIndex(%q, %q) = %v, stdlib %v", pattern, input, got, want)
			}
		}
	}
}

func TestStdlibCompatReplaceSplit(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		repl    string
	}{
		{`a+`, "aaa b aa", "-"},
		{`\s+`, "too   many spaces", " "},
		{`ab|abc`, "xabcx", "<>"},
		{`,`, ",a,b,,c,", "|"},
		{`[0-9]+`, "a1b22c333", "#"},
	}
	for _, tt := range tests {
		re := mustCompileT(t, tt.pattern)
		sre := stdlibLongest(t, tt.pattern)
		if got, want := re.ReplaceAllString(tt.input, tt.repl), sre.ReplaceAllString(tt.input, tt.repl); got != want {
			t.Errorf("ReplaceAllString(%q, %q, %q) = %q, stdlib %q", tt.pattern, tt.input, tt.repl, got, want)
		}
		for _, n := range []int{-1, 1, 2, 3} {
			got := re.Split(tt.input, n)
			want := sre.Split(tt.input, n)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Split(%q, %q, %d) = %q, stdlib %q", tt.pattern, tt.input, n, got, want)
			}
		}
	}
}

// Randomized differential check with a fixed seed so failures reproduce.
func TestStdlibCompatRandomInputs(t *testing.T) {
	const alphabet = "aabbc01 xz_"
	rng := rand.New(rand.NewSource(1))
	for _, pattern := range compatPatterns {
		re := mustCompileT(t, pattern)
		sre := stdlibLongest(t, pattern)
		matchesEmpty := sre.MatchString("")
		for i := 0; i < 200; i++ {
			buf := make([]byte, rng.Intn(20))
			for j := range buf {
				buf[j] = alphabet[rng.Intn(len(alphabet))]
			}
			input := string(buf)
			got := re.FindStringIndex(input)
			want := sre.FindStringIndex(input)
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("FindStringIndex(%q, %q) = %v, stdlib %v", pattern, input, got, want)
			}
			if matchesEmpty {
				continue
			}
			gotAll := re.FindAllStringIndex(input, -1)
			wantAll := sre.FindAllStringIndex(input, -1)
			if !reflect.DeepEqual(gotAll, wantAll) {
				t.Fatalf("FindAllStringIndex(%q, %q) = %v, stdlib %v", pattern, input, gotAll, wantAll)
			}
		}
	}
}
