// Package mode compiles one scanner mode (C6): an ordered list of
// patterns sharing a character-class registry, their terminal ids and
// priorities, their optional trailing-context (lookahead) patterns, and
// the terminal-to-mode transition table that drives mode switching.
package mode

import (
	"fmt"

	"github.com/coregx/lexgen/classes"
	"github.com/coregx/lexgen/dfa"
	"github.com/coregx/lexgen/lexerr"
	"github.com/coregx/lexgen/nfa"
	"github.com/coregx/lexgen/pattern"
)

// ID identifies a mode within a Scanner.
type ID int32

// LookaheadDef describes a pattern's trailing-context requirement: the
// candidate match is only committed if the lookahead regex does (Kind ==
// pattern.LookPositive) or does not (pattern.LookNegative) match the text
// immediately following the candidate span.
type LookaheadDef struct {
	Kind   pattern.LookKind
	Source string
}

// PatternDef is one pattern entry within a mode, in declaration order;
// order doubles as priority (earlier wins ties), per spec.md's tie-break
// rule.
type PatternDef struct {
	Source    string
	Terminal  nfa.TerminalID
	Lookahead *LookaheadDef
}

// Def is the input to Compile: one mode's patterns and its outgoing
// terminal-to-mode transitions.
type Def struct {
	Name        string
	Patterns    []PatternDef
	Transitions map[nfa.TerminalID]ID
}

// Lookahead is a compiled trailing-context automaton paired with its kind.
type Lookahead struct {
	Kind pattern.LookKind
	DFA  *dfa.DFA
}

// CompiledMode is the fully compiled form of one mode: its DFA, its
// terminal-to-mode transition table, and any lookahead automata keyed by
// the terminal they guard.
type CompiledMode struct {
	Name        string
	DFA         *dfa.DFA
	Transitions map[nfa.TerminalID]ID
	Lookaheads  map[nfa.TerminalID]*Lookahead
}

// Compile builds a CompiledMode from def, registering every pattern's
// character classes into the shared registry so identical classes reused
// across modes collapse to one ClassId.
func Compile(def Def, registry *classes.Registry) (*CompiledMode, error) {
	if len(def.Patterns) == 0 {
		return nil, lexerr.New(lexerr.DfaBuild, fmt.Sprintf("mode %q has no patterns", def.Name))
	}

	specs := make([]nfa.PatternSpec, len(def.Patterns))
	lookaheads := make(map[nfa.TerminalID]*Lookahead)

	for i, pd := range def.Patterns {
		ast, err := pattern.Parse(pd.Source, registry)
		if err != nil {
			return nil, err
		}
		n, err := nfa.Compile(ast)
		if err != nil {
			return nil, err
		}
		specs[i] = nfa.PatternSpec{Terminal: pd.Terminal, Priority: i, NFA: n}

		if pd.Lookahead != nil {
			lookAST, err := pattern.ParseLookahead(pd.Lookahead.Kind, pd.Lookahead.Source, registry)
			if err != nil {
				return nil, err
			}
			lookN, err := nfa.Compile(lookAST)
			if err != nil {
				return nil, err
			}
			lookMulti := nfa.BuildMultiNFA([]nfa.PatternSpec{{Terminal: pd.Terminal, Priority: 0, NFA: lookN}})
			lookDFA, err := dfa.Compile(lookMulti, registry)
			if err != nil {
				return nil, err
			}
			lookaheads[pd.Terminal] = &Lookahead{Kind: pd.Lookahead.Kind, DFA: dfa.Minimize(lookDFA)}
		}
	}

	multi := nfa.BuildMultiNFA(specs)
	d, err := dfa.Compile(multi, registry)
	if err != nil {
		return nil, err
	}
	d = dfa.Minimize(d)
	if err := d.ValidateAccepting(); err != nil {
		return nil, lexerr.WithPattern(lexerr.DfaBuild, def.Name, 0, err.Error())
	}

	transitions := def.Transitions
	if transitions == nil {
		transitions = make(map[nfa.TerminalID]ID)
	}

	return &CompiledMode{
		Name:        def.Name,
		DFA:         d,
		Transitions: transitions,
		Lookaheads:  lookaheads,
	}, nil
}

// NextMode reports which mode to switch to after a match of the given
// terminal, if def.Transitions names one.
func (m *CompiledMode) NextMode(terminal nfa.TerminalID) (ID, bool) {
	id, ok := m.Transitions[terminal]
	return id, ok
}
