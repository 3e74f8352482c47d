// Package nfa implements Thompson construction (C3) from a pattern AST and
// the multi-pattern union of a mode's patterns into one NFA (C4).
//
// States are labeled by classes.ID rather than by byte: the teacher this
// package descends from (coregx-coregex/nfa) labels states by byte range
// since it matches raw []byte haystacks, but this scanner matches Unicode
// scalar text (spec.md excludes raw-byte matching), so every transition
// here consumes one rune under a classes.ID predicate instead of one byte
// under a [lo,hi] range.
package nfa

import (
	"fmt"

	"github.com/coregx/lexgen/classes"
)

// StateID uniquely identifies an NFA state.
type StateID int32

// InvalidState marks an unset or dangling state reference.
const InvalidState StateID = -1

// StateKind identifies the type of NFA state and which fields are valid.
type StateKind uint8

const (
	// StateMatch is an accepting state with no outgoing transitions.
	StateMatch StateKind = iota
	// StateClass transitions to Next on any rune admitted by Class.
	StateClass
	// StateSplit is an epsilon transition to two states, used for
	// alternation and for a quantifier's loop/exit branches.
	StateSplit
	// StateEpsilon is a single unconditional epsilon transition, used to
	// sequence fragments and as a patchable join point.
	StateEpsilon
)

// String returns a human-readable name for the state kind.
func (k StateKind) String() string {
	switch k {
	case StateMatch:
		return "Match"
	case StateClass:
		return "Class"
	case StateSplit:
		return "Split"
	case StateEpsilon:
		return "Epsilon"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// State is a single NFA state. Which fields are meaningful depends on Kind.
type State struct {
	id   StateID
	kind StateKind

	class classes.ID // valid for StateClass
	next  StateID    // valid for StateClass / StateEpsilon

	left, right StateID // valid for StateSplit
}

// ID returns the state's identifier.
func (s *State) ID() StateID { return s.id }

// Kind returns the state's kind.
func (s *State) Kind() StateKind { return s.kind }

// Class returns the class label of a StateClass state.
func (s *State) Class() classes.ID { return s.class }

// Next returns the single successor of a StateClass/StateEpsilon state.
func (s *State) Next() StateID { return s.next }

// Split returns the two successors of a StateSplit state.
func (s *State) Split() (left, right StateID) { return s.left, s.right }

// NFA is one compiled pattern: a single start and accept state,
// Thompson-style, with no anchors, captures, or lookaround folded in.
type NFA struct {
	States []State
	Start  StateID
	Accept StateID
}

// State returns the state with the given id.
func (n *NFA) State(id StateID) *State { return &n.States[id] }
