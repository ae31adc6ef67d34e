// Package meta orchestrates pattern execution: it compiles a parsed
// pattern into an automaton, extracts literals, builds a prefilter, and
// selects the cheapest strategy that answers each query.
//
// The strategies, cheapest first:
//   - UseLiteral: the pattern is a single literal; substring search
//     answers everything and the automaton never runs.
//   - UseAhoCorasick: several literal alternatives; a multi-pattern scan
//     finds candidates the automaton then verifies.
//   - UsePrefilteredNFA: a required literal prefix narrows where the
//     automaton has to run.
//   - UseNFA: no usable literals; pure automaton simulation.
//
// An Engine is safe for concurrent use: all mutable search state lives in
// pooled per-search simulators.
package meta

import (
	"fmt"
)

// Config bounds compilation and controls prefiltering.
type Config struct {
	// MaxStates caps the compiled automaton's state table. Counted
	// repetitions duplicate states, so this bounds memory for patterns
	// like a{1000}{1000}. Default: 10000.
	MaxStates int

	// MaxLiterals caps how many literal alternatives extraction may
	// produce. Default: 64.
	MaxLiterals int

	// MaxLiteralLen caps the length of each extracted literal.
	// Default: 64.
	MaxLiteralLen int

	// MaxClassSize caps how large a character class may be before it is
	// treated as opaque during extraction. Default: 10.
	MaxClassSize int

	// EnablePrefilter enables literal prefiltering. When false every
	// search runs the automaton directly. Default: true.
	EnablePrefilter bool
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		MaxStates:       10000,
		MaxLiterals:     64,
		MaxLiteralLen:   64,
		MaxClassSize:    10,
		EnablePrefilter: true,
	}
}

// Validate reports whether every parameter is in range.
func (c Config) Validate() error {
	if c.MaxStates < 1 || c.MaxStates > 1_000_000 {
		return fmt.Errorf("meta: MaxStates %d out of range [1, 1000000]", c.MaxStates)
	}
	if c.MaxLiterals < 1 || c.MaxLiterals > 1000 {
		return fmt.Errorf("meta: MaxLiterals %d out of range [1, 1000]", c.MaxLiterals)
	}
	if c.MaxLiteralLen < 1 || c.MaxLiteralLen > 1024 {
		return fmt.Errorf("meta: MaxLiteralLen %d out of range [1, 1024]", c.MaxLiteralLen)
	}
	if c.MaxClassSize < 1 || c.MaxClassSize > 256 {
		return fmt.Errorf("meta: MaxClassSize %d out of range [1, 256]", c.MaxClassSize)
	}
	return nil
}
