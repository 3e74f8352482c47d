// Package prefilter implements the literal fast path (C: literal
// prefilter): when every pattern in a mode is a pure literal (a
// concatenation of single-rune classes with no alternation or
// repetition), scanning can skip straight to the next possible match
// start using a multi-literal search instead of stepping the DFA one
// rune at a time through non-matching text.
//
// The DFA remains authoritative for the actual match: the prefilter only
// ever proposes a candidate start position for the scanner to resume
// stepping the DFA from, grounded in how the teacher's (now-removed)
// meta package used package ahocorasick purely to jump the cursor ahead
// of a literal prefix before falling back to its real matching engines.
package prefilter

import (
	"strings"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/lexgen/classes"
	"github.com/coregx/lexgen/pattern"
)

// Prefilter finds the next byte offset at which one of a mode's literal
// patterns could possibly start.
type Prefilter struct {
	automaton *ahocorasick.Automaton
}

// ForMode builds a Prefilter for the given pattern sources if every one of
// them is a pure literal; ok is false (with a nil Prefilter) if even one
// pattern needs the DFA's full generality, since skipping past a position
// could then miss a class-pattern match starting there.
func ForMode(sources []string, registry *classes.Registry) (p *Prefilter, ok bool, err error) {
	literals := make([][]byte, 0, len(sources))
	for _, src := range sources {
		ast, perr := pattern.Parse(src, registry)
		if perr != nil {
			return nil, false, perr
		}
		lit, isLit := literalOf(ast.Root, registry)
		if !isLit {
			return nil, false, nil
		}
		literals = append(literals, []byte(lit))
	}

	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern(lit)
	}
	automaton, berr := builder.Build()
	if berr != nil {
		return nil, false, berr
	}
	return &Prefilter{automaton: automaton}, true, nil
}

// NextCandidate returns the byte offset of the next position at or after
// from where some literal could start matching, or ok=false if none
// remain in input.
func (p *Prefilter) NextCandidate(input string, from int) (pos int, ok bool) {
	m := p.automaton.Find([]byte(input), from)
	if m == nil {
		return 0, false
	}
	return m.Start, true
}

// literalOf reports whether node is a pure literal (a Class matching
// exactly one rune, or a Concat of such classes) and, if so, its text.
func literalOf(node pattern.Node, registry *classes.Registry) (string, bool) {
	switch v := node.(type) {
	case pattern.Class:
		cls := registry.Class(v.ID)
		ranges := cls.Ranges()
		if len(ranges) != 1 || ranges[0].Lo != ranges[0].Hi {
			return "", false
		}
		return string(ranges[0].Lo), true
	case pattern.Concat:
		var sb strings.Builder
		for _, child := range v.Nodes {
			s, ok := literalOf(child, registry)
			if !ok {
				return "", false
			}
			sb.WriteString(s)
		}
		return sb.String(), true
	case pattern.Empty:
		return "", true
	default:
		return "", false
	}
}
