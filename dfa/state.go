// Package dfa implements the DFA compiler (C5): subset construction over a
// MultiNFA with overlap-aware class transitions, plus Moore's-algorithm
// partition-refinement minimization.
//
// State shape is grounded in the teacher's dfa/lazy.State
// (id/transitions/isMatch/nfaStates), retyped here for a class-labeled
// alphabet: the teacher keys transitions by byte (map[byte]StateID) since
// its alphabet is 256 bytes; this package's alphabet is the open set of
// registered character classes, so a State instead carries an edge list
// keyed by classes.ID, and more than one edge may fire for a single input
// rune when two registered classes overlap (spec.md §4.5's overlap-aware
// transition model).
package dfa

import (
	"github.com/coregx/lexgen/classes"
	"github.com/coregx/lexgen/nfa"
)

// StateID identifies a DFA state.
type StateID int32

// DeadState is the distinguished sink state: no input leads out of it, and
// it is never accepting. It always exists at index 0.
const DeadState StateID = 0

// InvalidState marks the absence of a state, distinct from DeadState.
const InvalidState StateID = -1

// Edge is one outgoing class-labeled transition.
type Edge struct {
	Class  classes.ID
	Target StateID
}

// State is one DFA state: a set of NFA states (its subset-construction
// identity), the edges found for those states' class transitions so far,
// and, if any underlying NFA state is a pattern's accept state, which
// pattern wins ties at this state.
type State struct {
	id StateID

	// nfaStates is the canonical sorted set of MultiNFA state ids this DFA
	// state represents, kept so two states can be told apart (or merged)
	// via subset identity, and so lazily-discovered overlap unions can be
	// minted into new DFA states (or matched against existing ones).
	nfaStates []nfa.StateID

	edges []Edge

	isAccept bool
	terminal nfa.TerminalID
	priority int
}

// ID returns the state's id.
func (s *State) ID() StateID { return s.id }

// IsAccept reports whether this state accepts, and if so for which
// pattern (the lowest-Priority pattern among any that accept here).
func (s *State) IsAccept() (nfa.TerminalID, bool) { return s.terminal, s.isAccept }

// Edges returns the state's class-labeled outgoing edges.
func (s *State) Edges() []Edge { return s.edges }
