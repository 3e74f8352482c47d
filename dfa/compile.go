package dfa

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/coregx/lexgen/classes"
	"github.com/coregx/lexgen/internal/conv"
	"github.com/coregx/lexgen/internal/sparse"
	"github.com/coregx/lexgen/lexerr"
	"github.com/coregx/lexgen/nfa"
)

// DFA is a compiled mode automaton: a subset-construction image of a
// MultiNFA, built eagerly for every single-class edge and lazily widened,
// under lock, whenever two overlapping classes both fire for the same
// input rune. The RWMutex-guarded lazy-insert pattern is grounded in the
// teacher's dfa/lazy.Cache.GetOrInsert.
type DFA struct {
	registry *classes.Registry
	multi    *nfa.MultiNFA

	mu     sync.RWMutex
	states []*State
	index  map[string]StateID
	start  StateID
}

// Compile runs subset construction (C5) over multi, eagerly building one
// DFA state per reachable epsilon closure and one edge per distinct
// ClassId found among its member states. Edges whose classes overlap are
// only unioned on demand, inside Step, since the set of rune values that
// actually exercise an overlap cannot be enumerated up front over an
// open-ended Unicode alphabet.
func Compile(multi *nfa.MultiNFA, registry *classes.Registry) (*DFA, error) {
	d := &DFA{
		registry: registry,
		multi:    multi,
		index:    make(map[string]StateID),
	}
	d.states = append(d.states, &State{id: DeadState})
	d.index[""] = DeadState

	startSet := closure(multi, []nfa.StateID{multi.Start})
	startID := d.internLocked(startSet)
	d.start = startID

	queue := []StateID{startID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if id == DeadState {
			continue
		}
		newIDs := d.ensureEdgesLocked(id)
		queue = append(queue, newIDs...)
	}
	return d, nil
}

// Start returns the DFA's start state.
func (d *DFA) Start() StateID { return d.start }

// State returns the state with the given id.
func (d *DFA) State(id StateID) *State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.states[id]
}

// States returns every state built so far, for diagnostic export. The
// slice reflects only states discovered up to the moment of the call;
// states minted later by Step's lazy overlap merging are not retroactively
// included.
func (d *DFA) States() []*State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*State, len(d.states))
	copy(out, d.states)
	return out
}

// Registry returns the class registry this DFA's edges were built
// against, so a diagnostic exporter can render edge labels.
func (d *DFA) Registry() *classes.Registry { return d.registry }

// Step computes the successor of stateID on rune r, lazily materializing a
// new DFA state the first time two overlapping classes both admit r from
// the same state.
func (d *DFA) Step(stateID StateID, r rune) StateID {
	d.mu.RLock()
	state := d.states[stateID]
	if state.edges == nil && stateID != DeadState {
		d.mu.RUnlock()
		d.mu.Lock()
		d.ensureEdgesLocked(stateID)
		d.mu.Unlock()
		d.mu.RLock()
	}
	var matched []StateID
	for _, e := range state.edges {
		if d.registry.Matches(e.Class, r) {
			matched = appendUnique(matched, e.Target)
		}
	}
	d.mu.RUnlock()

	switch len(matched) {
	case 0:
		return DeadState
	case 1:
		return matched[0]
	default:
		return d.mergeLocked(matched)
	}
}

func appendUnique(ids []StateID, id StateID) []StateID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

// mergeLocked unions the NFA-state sets of several already-built DFA
// states into one (possibly new) DFA state, under the write lock.
func (d *DFA) mergeLocked(targets []StateID) StateID {
	d.mu.Lock()
	defer d.mu.Unlock()

	seen := make(map[nfa.StateID]struct{})
	var merged []nfa.StateID
	for _, t := range targets {
		for _, id := range d.states[t].nfaStates {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				merged = append(merged, id)
			}
		}
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i] < merged[j] })

	id := d.internLocked(merged)
	d.ensureEdgesLocked(id)
	return id
}

// internLocked returns the StateID for a canonical NFA-state set, creating
// a new DFA state if this exact set has not been seen before. Caller must
// hold d.mu for writing (or be single-threaded, as during Compile).
func (d *DFA) internLocked(set []nfa.StateID) StateID {
	if len(set) == 0 {
		return DeadState
	}
	key := stateKey(set)
	if id, ok := d.index[key]; ok {
		return id
	}

	id := StateID(len(d.states))
	st := &State{id: id, nfaStates: set}
	for _, nid := range set {
		ns := d.multi.State(nid)
		if ns.Kind() != nfa.StateMatch {
			continue
		}
		spec, ok := d.multi.IsAccept(nid)
		if !ok {
			continue
		}
		if !st.isAccept || spec.Priority < st.priority {
			st.isAccept = true
			st.terminal = spec.Terminal
			st.priority = spec.Priority
		}
	}

	d.states = append(d.states, st)
	d.index[key] = id
	return id
}

// ensureEdgesLocked computes the outgoing edges of state id from its
// member NFA class-transitions, grouping by ClassId and interning one
// target DFA state per distinct class. It returns the ids of any newly
// created target states so a build-time BFS can enqueue them; mergeLocked
// and Step call this directly and ignore the return value, so a state first
// interned during a lazy merge gets its edges when Step first leaves it.
func (d *DFA) ensureEdgesLocked(id StateID) []StateID {
	state := d.states[id]
	if state.edges != nil {
		return nil
	}

	byClass := make(map[classes.ID][]nfa.StateID)
	var order []classes.ID
	for _, nid := range state.nfaStates {
		ns := d.multi.State(nid)
		if ns.Kind() != nfa.StateClass {
			continue
		}
		cls := ns.Class()
		if _, seen := byClass[cls]; !seen {
			order = append(order, cls)
		}
		byClass[cls] = append(byClass[cls], ns.Next())
	}

	var newIDs []StateID
	edges := make([]Edge, 0, len(order))
	for _, cls := range order {
		targetSet := closure(d.multi, byClass[cls])
		key := stateKey(targetSet)
		_, existed := d.index[key]
		target := d.internLocked(targetSet)
		if !existed && target != DeadState {
			newIDs = append(newIDs, target)
		}
		edges = append(edges, Edge{Class: cls, Target: target})
	}
	state.edges = edges
	return newIDs
}

// closure computes the epsilon closure of seeds within a MultiNFA,
// following Split and Epsilon states and stopping at Class and Match
// states, which are the only members retained. Grounded in the subset-
// construction worklist technique of the teacher's (now-removed)
// nfa/composite_dfa.go, generalized from its 8-part bitmask-capped
// configSet to an internal/sparse.SparseSet over an unbounded NFA.
func closure(multi *nfa.MultiNFA, seeds []nfa.StateID) []nfa.StateID {
	visited := sparse.NewSparseSet(conv.IntToUint32(len(multi.States)))
	stack := append([]nfa.StateID(nil), seeds...)
	var out []nfa.StateID

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == nfa.InvalidState || visited.Contains(uint32(id)) {
			continue
		}
		visited.Insert(uint32(id))

		s := multi.State(id)
		switch s.Kind() {
		case nfa.StateSplit:
			l, r := s.Split()
			stack = append(stack, l, r)
		case nfa.StateEpsilon:
			stack = append(stack, s.Next())
		default: // StateClass, StateMatch
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func stateKey(set []nfa.StateID) string {
	if len(set) == 0 {
		return ""
	}
	var b strings.Builder
	for i, id := range set {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(id)))
	}
	return b.String()
}

// ValidateAccepting returns an error if the DFA has no reachable accepting
// state at all, which would mean the mode's patterns can never match
// anything (e.g. every pattern reduced to an empty alternation).
func (d *DFA) ValidateAccepting() error {
	for _, s := range d.states {
		if s.isAccept {
			return nil
		}
	}
	return lexerr.New(lexerr.DfaBuild, "compiled automaton has no reachable accepting state")
}
