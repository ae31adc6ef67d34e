package meta

import (
	"github.com/coregx/rex/literal"
	"github.com/coregx/rex/prefilter"
)

// Strategy identifies which execution plan the engine selected at compile
// time.
type Strategy uint8

const (
	// UseNFA runs the automaton over every position. The fallback when no
	// usable literals exist.
	UseNFA Strategy = iota

	// UsePrefilteredNFA skips ahead with a single-literal scan, then runs
	// the automaton only at candidate positions.
	UsePrefilteredNFA

	// UseAhoCorasick skips ahead with a multi-literal scan, then runs the
	// automaton only at candidate positions.
	UseAhoCorasick

	// UseLiteral answers directly from substring search. Selected when
	// the pattern's language is exactly one literal.
	UseLiteral
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case UseNFA:
		return "NFA"
	case UsePrefilteredNFA:
		return "PrefilteredNFA"
	case UseAhoCorasick:
		return "AhoCorasick"
	case UseLiteral:
		return "Literal"
	default:
		return "Unknown"
	}
}

// selectStrategy classifies the built prefilter.
func selectStrategy(pf prefilter.Prefilter, seq *literal.Seq) Strategy {
	switch {
	case pf == nil:
		return UseNFA
	case pf.IsComplete():
		return UseLiteral
	case seq.Len() > 1:
		return UseAhoCorasick
	default:
		return UsePrefilteredNFA
	}
}
