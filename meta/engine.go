package meta

import (
	"sync"
	"sync/atomic"

	"github.com/coregx/rex/literal"
	"github.com/coregx/rex/nfa"
	"github.com/coregx/rex/prefilter"
	"github.com/coregx/rex/syntax"
)

// Engine executes one compiled pattern. It is immutable after NewEngine
// and safe for concurrent use; per-search simulator state comes from an
// internal pool.
type Engine struct {
	nfa       *nfa.NFA
	prefilter prefilter.Prefilter
	literals  *literal.Seq
	strategy  Strategy

	pool  sync.Pool
	stats Stats
}

// Stats counts searches by execution path. Counters are updated
// atomically and only ever increase.
type Stats struct {
	// LiteralSearches counts queries answered by substring search alone.
	LiteralSearches uint64

	// PrefilterSearches counts queries that consulted a prefilter before
	// running the automaton.
	PrefilterSearches uint64

	// NFASearches counts automaton runs, including verification runs
	// behind a prefilter.
	NFASearches uint64
}

// NewEngine compiles the parsed tree and selects an execution strategy.
func NewEngine(tree syntax.Node, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	compiled, err := nfa.NewCompiler(nfa.CompilerConfig{MaxStates: config.MaxStates}).Compile(tree)
	if err != nil {
		return nil, err
	}

	e := &Engine{nfa: compiled, strategy: UseNFA}
	e.pool.New = func() interface{} {
		return nfa.NewPikeVM(e.nfa)
	}

	if config.EnablePrefilter {
		extractor := literal.NewExtractor(literal.ExtractorConfig{
			MaxLiterals:   config.MaxLiterals,
			MaxLiteralLen: config.MaxLiteralLen,
			MaxClassSize:  config.MaxClassSize,
		})
		seq := extractor.Prefixes(tree)
		seq.Minimize()
		e.literals = seq
		e.prefilter = prefilter.NewBuilder(seq).Build()
		e.strategy = selectStrategy(e.prefilter, seq)
	}
	return e, nil
}

// NFA returns the compiled automaton.
func (e *Engine) NFA() *nfa.NFA { return e.nfa }

// Strategy returns the selected execution strategy.
func (e *Engine) Strategy() Strategy { return e.strategy }

// Literals returns the extracted prefix literals, which may be empty.
func (e *Engine) Literals() *literal.Seq { return e.literals }

// Stats returns a snapshot of the search counters.
func (e *Engine) Stats() Stats {
	return Stats{
		LiteralSearches:   atomic.LoadUint64(&e.stats.LiteralSearches),
		PrefilterSearches: atomic.LoadUint64(&e.stats.PrefilterSearches),
		NFASearches:       atomic.LoadUint64(&e.stats.NFASearches),
	}
}

func (e *Engine) getVM() *nfa.PikeVM {
	return e.pool.Get().(*nfa.PikeVM)
}

func (e *Engine) putVM(vm *nfa.PikeVM) {
	e.pool.Put(vm)
}

// IsMatch reports whether the pattern matches anywhere in the haystack.
func (e *Engine) IsMatch(haystack []byte) bool {
	switch e.strategy {
	case UseLiteral:
		atomic.AddUint64(&e.stats.LiteralSearches, 1)
		return e.prefilter.Find(haystack, 0) != -1

	case UseAhoCorasick, UsePrefilteredNFA:
		atomic.AddUint64(&e.stats.PrefilterSearches, 1)
		cand := e.prefilter.Find(haystack, 0)
		if cand == -1 {
			return false
		}
		atomic.AddUint64(&e.stats.NFASearches, 1)
		vm := e.getVM()
		defer e.putVM(vm)
		_, _, found := vm.SearchAt(haystack, cand)
		return found

	default:
		atomic.AddUint64(&e.stats.NFASearches, 1)
		vm := e.getVM()
		defer e.putVM(vm)
		return vm.IsMatch(haystack)
	}
}

// Find returns the leftmost-longest match, or nil when there is none.
func (e *Engine) Find(haystack []byte) *Match {
	return e.FindAt(haystack, 0)
}

// FindAt returns the leftmost-longest match beginning at or after 'at',
// or nil when there is none. Zero-width assertions still see the true
// haystack boundaries.
func (e *Engine) FindAt(haystack []byte, at int) *Match {
	if at < 0 || at > len(haystack) {
		return nil
	}

	switch e.strategy {
	case UseLiteral:
		atomic.AddUint64(&e.stats.LiteralSearches, 1)
		pos := e.prefilter.Find(haystack, at)
		if pos == -1 {
			return nil
		}
		return NewMatch(pos, pos+e.prefilter.LiteralLen(), haystack)

	case UseAhoCorasick, UsePrefilteredNFA:
		atomic.AddUint64(&e.stats.PrefilterSearches, 1)
		return e.findWithPrefilter(haystack, at)

	default:
		atomic.AddUint64(&e.stats.NFASearches, 1)
		vm := e.getVM()
		defer e.putVM(vm)
		start, end, found := vm.SearchAt(haystack, at)
		if !found {
			return nil
		}
		return NewMatch(start, end, haystack)
	}
}

// findWithPrefilter alternates candidate finding and anchored automaton
// verification. The prefilter contract guarantees no match begins before
// the candidate, so the first verified candidate is the leftmost match.
func (e *Engine) findWithPrefilter(haystack []byte, at int) *Match {
	vm := e.getVM()
	defer e.putVM(vm)

	pos := at
	for pos <= len(haystack) {
		cand := e.prefilter.Find(haystack, pos)
		if cand == -1 {
			return nil
		}
		atomic.AddUint64(&e.stats.NFASearches, 1)
		if end, ok := vm.FindPrefixAt(haystack, cand); ok {
			return NewMatch(cand, end, haystack)
		}
		pos = cand + 1
	}
	return nil
}

// FindPrefix returns the longest match end for a match starting exactly
// at 'at'. Used for anchored prefix queries.
func (e *Engine) FindPrefix(haystack []byte, at int) (end int, found bool) {
	if at < 0 || at > len(haystack) {
		return -1, false
	}
	atomic.AddUint64(&e.stats.NFASearches, 1)
	vm := e.getVM()
	defer e.putVM(vm)
	return vm.FindPrefixAt(haystack, at)
}

// Count returns the number of non-overlapping matches. After an empty
// match the scan advances one byte so it always terminates.
func (e *Engine) Count(haystack []byte) int {
	count, at := 0, 0
	for at <= len(haystack) {
		m := e.FindAt(haystack, at)
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
