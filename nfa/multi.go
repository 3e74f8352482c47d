package nfa

// TerminalID identifies which pattern within a mode produced a match.
type TerminalID int32

// PatternSpec is one pattern's compiled NFA plus the metadata the multi-
// pattern union and later the DFA compiler need to resolve which pattern
// won when several patterns accept at the same position.
type PatternSpec struct {
	Terminal TerminalID
	// Priority breaks ties between patterns that match the same longest
	// span; lower Priority wins, matching declaration order within a mode
	// per spec.md's "first pattern listed wins" tie-break rule.
	Priority int
	NFA      *NFA
}

// MultiNFA is the union of every pattern in a mode (C4): one synthetic
// start state epsilon-branches into each pattern's start, and every
// pattern's original accept state is kept and mapped in Accepts to that
// pattern's TerminalID/Priority so the DFA compiler can track, for each
// DFA state, the full set of NFA accept states (and thus candidate
// patterns) reachable by the input consumed so far.
type MultiNFA struct {
	States []State
	Start  StateID

	// Accepts maps an accepting StateID (one per unioned pattern) back to
	// the pattern metadata that state belongs to.
	Accepts map[StateID]PatternSpec
}

// BuildMultiNFA unions the given per-pattern NFAs into one MultiNFA.
func BuildMultiNFA(specs []PatternSpec) *MultiNFA {
	b := NewBuilder()
	starts := make([]StateID, 0, len(specs))
	accepts := make(map[StateID]PatternSpec, len(specs))

	for _, spec := range specs {
		offset := StateID(len(b.states))
		for _, s := range spec.NFA.States {
			shifted := shiftState(s, offset)
			b.states = append(b.states, shifted)
		}
		start := spec.NFA.Start + offset
		accept := spec.NFA.Accept + offset
		starts = append(starts, start)
		accepts[accept] = spec
	}

	start := buildSplitChain(b, starts)
	return &MultiNFA{States: b.states, Start: start, Accepts: accepts}
}

// shiftState rewrites every StateID a state references by offset, so an
// independently compiled NFA's states can be appended into a shared slice
// without colliding with states already present.
func shiftState(s State, offset StateID) State {
	out := s
	out.id = s.id + offset
	switch s.kind {
	case StateClass, StateEpsilon:
		if s.next != InvalidState {
			out.next = s.next + offset
		}
	case StateSplit:
		if s.left != InvalidState {
			out.left = s.left + offset
		}
		if s.right != InvalidState {
			out.right = s.right + offset
		}
	}
	return out
}

// IsAccept reports whether id is one of the unioned accept states, and if
// so returns the pattern metadata it belongs to.
func (m *MultiNFA) IsAccept(id StateID) (PatternSpec, bool) {
	spec, ok := m.Accepts[id]
	return spec, ok
}

// State returns the state with the given id, mirroring nfa.NFA.State.
func (m *MultiNFA) State(id StateID) *State { return &m.States[id] }
