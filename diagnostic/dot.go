// Package diagnostic exports a compiled mode's DFA as Graphviz DOT, for
// visual inspection while authoring or debugging mode definitions.
package diagnostic

import (
	"fmt"
	"io"

	"github.com/coregx/lexgen/dfa"
	"github.com/coregx/lexgen/mode"
)

// WriteDOT renders m's DFA as a Graphviz digraph: accepting states are
// drawn as double circles annotated with their winning terminal id, and
// edges are labeled with the canonical syntax of the class they carry.
func WriteDOT(w io.Writer, m *mode.CompiledMode) error {
	fmt.Fprintf(w, "digraph %s {\n", dotQuote(m.Name))
	fmt.Fprintln(w, "\trankdir=LR;")

	states := m.DFA.States()
	for _, s := range states {
		shape := "circle"
		label := fmt.Sprintf("%d", s.ID())
		if terminal, ok := s.IsAccept(); ok {
			shape = "doublecircle"
			label = fmt.Sprintf("%d\\n(t%d)", s.ID(), terminal)
		}
		if s.ID() == dfa.DeadState {
			continue
		}
		fmt.Fprintf(w, "\t%d [shape=%s, label=%q];\n", s.ID(), shape, label)
	}

	registry := m.DFA.Registry()
	for _, s := range states {
		if s.ID() == dfa.DeadState {
			continue
		}
		for _, e := range s.Edges() {
			if e.Target == dfa.DeadState {
				continue
			}
			label := registry.Class(e.Class).String()
			fmt.Fprintf(w, "\t%d -> %d [label=%q];\n", s.ID(), e.Target, label)
		}
	}

	fmt.Fprintln(w, "}")
	return nil
}

func dotQuote(name string) string {
	if name == "" {
		return "mode"
	}
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			out = append(out, c)
			continue
		}
		out = append(out, '_')
	}
	return string(out)
}
