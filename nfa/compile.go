package nfa

import (
	"fmt"

	"github.com/coregx/rex/syntax"
)

// CompilerConfig bounds NFA compilation.
type CompilerConfig struct {
	// MaxStates caps the size of the compiled state table. Counted
	// repetitions duplicate their subexpression, so the cap keeps
	// patterns like a{1000}{1000} from exhausting memory.
	MaxStates int
}

// DefaultCompilerConfig returns the default compilation limits.
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{MaxStates: 10000}
}

// Compiler translates a component tree into a Thompson NFA.
//
// Every tree node compiles to a fragment (start, end): end is always a
// state with a free 'next' slot, so fragments compose by patching end to
// the next fragment's start. The whole tree becomes one fragment whose end
// is patched into the single accepting state.
type Compiler struct {
	config  CompilerConfig
	builder *Builder
}

// NewCompiler creates a compiler with the given configuration.
func NewCompiler(config CompilerConfig) *Compiler {
	if config.MaxStates == 0 {
		config.MaxStates = DefaultCompilerConfig().MaxStates
	}
	return &Compiler{config: config}
}

// Compile compiles a parsed tree with default limits.
func Compile(tree syntax.Node) (*NFA, error) {
	return NewCompiler(DefaultCompilerConfig()).Compile(tree)
}

// Compile compiles the tree into an automaton. It is deterministic and
// total over any tree the parser can produce.
func (c *Compiler) Compile(tree syntax.Node) (*NFA, error) {
	c.builder = NewBuilder()

	start, end, err := c.compileNode(tree)
	if err != nil {
		return nil, err
	}

	match := c.builder.AddMatch()
	if err := c.builder.Patch(end, match); err != nil {
		return nil, &CompileError{Err: err}
	}
	c.builder.SetStart(start)

	nfa, err := c.builder.Build(WithAnchoredStart(startsAnchored(tree)))
	if err != nil {
		return nil, &CompileError{Err: err}
	}
	return nfa, nil
}

// compileNode emits the fragment for one tree node.
func (c *Compiler) compileNode(node syntax.Node) (start, end StateID, err error) {
	if c.builder.States() > c.config.MaxStates {
		return InvalidState, InvalidState, &CompileError{Err: ErrTooComplex}
	}

	switch n := node.(type) {
	case *syntax.Literal:
		id := c.builder.AddByteRange(n.Ch, n.Ch, InvalidState)
		return id, id, nil

	case *syntax.CharClass:
		return c.compileClass(n)

	case *syntax.Concat:
		return c.compileConcat(n.Subs)

	case *syntax.Alternate:
		return c.compileAlternate(n)

	case *syntax.Group:
		// Structural only: compiles to exactly the child's fragment.
		return c.compileNode(n.Sub)

	case *syntax.Quantifier:
		return c.compileQuantifier(n)

	case *syntax.AnchorStart:
		id := c.builder.AddLook(LookStartText, InvalidState)
		return id, id, nil

	case *syntax.AnchorEnd:
		id := c.builder.AddLook(LookEndText, InvalidState)
		return id, id, nil

	default:
		return InvalidState, InvalidState, &CompileError{
			Err: fmt.Errorf("unsupported component %T", node),
		}
	}
}

// compileClass emits a byte-consuming state for a character class. Classes
// are stored as canonical ranges, so membership (including negation, which
// the parser already complemented) is a handful of range checks rather than
// an enumerated transition table.
func (c *Compiler) compileClass(n *syntax.CharClass) (start, end StateID, err error) {
	switch len(n.Ranges) {
	case 0:
		// Matches no byte at all, e.g. [^\x00-...] covering everything.
		// A dead start and an unreachable end keep the fragment shape.
		dead := c.builder.AddFail()
		out := c.builder.AddEpsilon(InvalidState)
		return dead, out, nil
	case 1:
		r := n.Ranges[0]
		id := c.builder.AddByteRange(r.Lo, r.Hi, InvalidState)
		return id, id, nil
	default:
		out := c.builder.AddEpsilon(InvalidState)
		trans := make([]Transition, len(n.Ranges))
		for i, r := range n.Ranges {
			trans[i] = Transition{Lo: r.Lo, Hi: r.Hi, Next: out}
		}
		id := c.builder.AddSparse(trans)
		return id, out, nil
	}
}

// compileConcat chains child fragments with epsilon patches. The empty
// concatenation compiles to a single pass-through state, so it matches the
// empty string.
func (c *Compiler) compileConcat(subs []syntax.Node) (start, end StateID, err error) {
	if len(subs) == 0 {
		id := c.builder.AddEpsilon(InvalidState)
		return id, id, nil
	}
	start, end = InvalidState, InvalidState
	for _, sub := range subs {
		s, e, err := c.compileNode(sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		if start == InvalidState {
			start = s
		} else if err := c.builder.Patch(end, s); err != nil {
			return InvalidState, InvalidState, &CompileError{Err: err}
		}
		end = e
	}
	return start, end, nil
}

// compileAlternate emits a split into both branches and an epsilon join.
func (c *Compiler) compileAlternate(n *syntax.Alternate) (start, end StateID, err error) {
	ls, le, err := c.compileNode(n.Left)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	rs, re, err := c.compileNode(n.Right)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	split := c.builder.AddSplit(ls, rs)
	out := c.builder.AddEpsilon(InvalidState)
	if err := c.builder.Patch(le, out); err != nil {
		return InvalidState, InvalidState, &CompileError{Err: err}
	}
	if err := c.builder.Patch(re, out); err != nil {
		return InvalidState, InvalidState, &CompileError{Err: err}
	}
	return split, out, nil
}

// compileQuantifier emits min mandatory copies of the subexpression, then
// either a guarded loop (unbounded) or max-min optional copies that can
// each skip straight to the exit.
func (c *Compiler) compileQuantifier(n *syntax.Quantifier) (start, end StateID, err error) {
	if n.Max == 0 {
		// {0,0} consumes nothing.
		id := c.builder.AddEpsilon(InvalidState)
		return id, id, nil
	}

	start, end = InvalidState, InvalidState
	link := func(s StateID) error {
		if start == InvalidState {
			start = s
			return nil
		}
		return c.builder.Patch(end, s)
	}

	for i := 0; i < n.Min; i++ {
		s, e, err := c.compileNode(n.Sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		if err := link(s); err != nil {
			return InvalidState, InvalidState, &CompileError{Err: err}
		}
		end = e
	}

	if n.Max == syntax.Unbounded {
		// One more copy in a loop: the split enters the copy or exits,
		// and the copy's end feeds back into the split. The epsilon
		// cycle this creates is handled by the simulator's visited set.
		s, e, err := c.compileNode(n.Sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		out := c.builder.AddEpsilon(InvalidState)
		split := c.builder.AddSplit(s, out)
		if err := c.builder.Patch(e, split); err != nil {
			return InvalidState, InvalidState, &CompileError{Err: err}
		}
		if err := link(split); err != nil {
			return InvalidState, InvalidState, &CompileError{Err: err}
		}
		return start, out, nil
	}

	optional := n.Max - n.Min
	if optional == 0 {
		return start, end, nil
	}
	out := c.builder.AddEpsilon(InvalidState)
	for i := 0; i < optional; i++ {
		s, e, err := c.compileNode(n.Sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		split := c.builder.AddSplit(s, out)
		if err := link(split); err != nil {
			return InvalidState, InvalidState, &CompileError{Err: err}
		}
		end = e
	}
	if err := c.builder.Patch(end, out); err != nil {
		return InvalidState, InvalidState, &CompileError{Err: err}
	}
	return start, out, nil
}

// startsAnchored reports whether every path through the tree begins with a
// '^' assertion. It is a conservative analysis used only to skip useless
// restart offsets during unanchored search.
func startsAnchored(node syntax.Node) bool {
	switch n := node.(type) {
	case *syntax.AnchorStart:
		return true
	case *syntax.Group:
		return startsAnchored(n.Sub)
	case *syntax.Concat:
		if len(n.Subs) == 0 {
			return false
		}
		return startsAnchored(n.Subs[0])
	case *syntax.Alternate:
		return startsAnchored(n.Left) && startsAnchored(n.Right)
	case *syntax.Quantifier:
		return n.Min >= 1 && startsAnchored(n.Sub)
	default:
		return false
	}
}
