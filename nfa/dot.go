package nfa

import (
	"fmt"
	"strings"
)

// Dot renders the automaton in Graphviz DOT form for debugging. It is a
// pure read-only projection of the state table; nothing about matching
// depends on it.
func (n *NFA) Dot() string {
	var b strings.Builder
	b.WriteString("digraph nfa {\n")
	b.WriteString("\trankdir=LR;\n")
	fmt.Fprintf(&b, "\tstart [shape=point];\n\tstart -> %d;\n", n.start)

	for i := range n.states {
		s := &n.states[i]
		shape := "circle"
		if s.IsMatch() {
			shape = "doublecircle"
		}
		fmt.Fprintf(&b, "\t%d [shape=%s];\n", s.id, shape)

		switch s.kind {
		case StateByteRange:
			fmt.Fprintf(&b, "\t%d -> %d [label=%q];\n", s.id, s.next, rangeLabel(s.lo, s.hi))
		case StateSparse:
			for _, tr := range s.transitions {
				fmt.Fprintf(&b, "\t%d -> %d [label=%q];\n", s.id, tr.Next, rangeLabel(tr.Lo, tr.Hi))
			}
		case StateEpsilon:
			if s.next != InvalidState {
				fmt.Fprintf(&b, "\t%d -> %d [label=\"ε\"];\n", s.id, s.next)
			}
		case StateSplit:
			if s.left != InvalidState {
				fmt.Fprintf(&b, "\t%d -> %d [label=\"ε\"];\n", s.id, s.left)
			}
			if s.right != InvalidState {
				fmt.Fprintf(&b, "\t%d -> %d [label=\"ε\"];\n", s.id, s.right)
			}
		case StateLook:
			if s.next != InvalidState {
				fmt.Fprintf(&b, "\t%d -> %d [label=%q];\n", s.id, s.next, s.look.String())
			}
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func rangeLabel(lo, hi byte) string {
	if lo == hi {
		return byteLabel(lo)
	}
	return byteLabel(lo) + "-" + byteLabel(hi)
}

func byteLabel(b byte) string {
	if b >= 0x21 && b <= 0x7E {
		return string(b)
	}
	return fmt.Sprintf("\\x%02x", b)
}
