package lexgen

import (
	"sync/atomic"
	"unicode/utf8"

	"github.com/coregx/lexgen/classes"
	"github.com/coregx/lexgen/dfa"
	"github.com/coregx/lexgen/mode"
	"github.com/coregx/lexgen/nfa"
	"github.com/coregx/lexgen/pattern"
	"github.com/coregx/lexgen/prefilter"
)

// Match is one non-overlapping scan result: the winning pattern's terminal
// id and its byte-offset span [Start, End) within the scanned input.
type Match struct {
	Terminal nfa.TerminalID
	Start    int
	End      int
}

// ModeSwitcher is implemented by Scanner and everything built on top of
// it (FindIterator, PositionIterator); current_mode is the one piece of
// mutable state a Scanner and its iterators all observe through whichever
// handle mutates it.
type ModeSwitcher interface {
	SetMode(m mode.ID)
	CurrentMode() mode.ID
	ModeName(i mode.ID) (string, bool)
}

type runtimeMode struct {
	compiled  *mode.CompiledMode
	prefilter *prefilter.Prefilter
}

// Scanner holds an immutable set of compiled modes and the single mutable
// field current_mode, stored atomically so concurrent scanning from
// multiple goroutines (an implementation choice the spec explicitly
// leaves open) never races, grounded in the teacher's meta.Engine use of
// sync/atomic counters.
type Scanner struct {
	registry    *classes.Registry
	modes       []*runtimeMode
	currentMode atomic.Int32
}

// SetMode assigns current_mode, observable immediately by every live
// iterator bound to this scanner.
func (s *Scanner) SetMode(m mode.ID) { s.currentMode.Store(int32(m)) }

// CurrentMode returns the active mode.
func (s *Scanner) CurrentMode() mode.ID { return mode.ID(s.currentMode.Load()) }

// ModeName returns the name of mode i, or ok=false if i is out of range.
func (s *Scanner) ModeName(i mode.ID) (string, bool) {
	if int(i) < 0 || int(i) >= len(s.modes) {
		return "", false
	}
	return s.modes[i].compiled.Name, true
}

// MatchCharClass reports whether ch is admitted by the registered class
// cid, the inner loop's character predicate.
func (s *Scanner) MatchCharClass(cid classes.ID, ch rune) bool {
	return s.registry.Matches(cid, ch)
}

// FindIter constructs a new iterator bound to this scanner, positioned at
// byte offset 0.
func (s *Scanner) FindIter(input string) *FindIterator {
	return newFindIterator(s, input)
}

func (s *Scanner) runtimeModeAt(id mode.ID) *runtimeMode {
	return s.modes[id]
}

// acceptRecord is one candidate accept found while stepping the DFA from
// a single start position, in increasing end-offset order.
type acceptRecord struct {
	terminal nfa.TerminalID
	offset   int
}

// matchAt runs the single-match procedure (spec step 1-6) starting the
// search no earlier than byte offset from. It tries successive start
// positions until a committable match is found or the input is
// exhausted, backtracking through the accept stack on lookahead failure
// before giving up on a given start position.
func (s *Scanner) matchAt(input string, rm *runtimeMode, from int) (Match, bool) {
	start := from
	for start <= len(input) {
		if start == len(input) {
			break
		}

		accepts := scanFrom(rm.compiled.DFA, input, start)
		for i := len(accepts) - 1; i >= 0; i-- {
			acc := accepts[i]
			if s.lookaheadOK(rm, acc, input) {
				return Match{Terminal: acc.terminal, Start: start, End: acc.offset}, true
			}
		}

		next := start
		if rm.prefilter != nil {
			pos, ok := rm.prefilter.NextCandidate(input, start+1)
			if !ok {
				return Match{}, false
			}
			next = pos
		} else {
			_, size := utf8.DecodeRuneInString(input[start:])
			if size == 0 {
				return Match{}, false
			}
			next = start + size
		}
		start = next
	}
	return Match{}, false
}

// scanFrom steps rm's DFA one rune at a time from start, recording every
// accept reached along the way in increasing end-offset order (the
// backtracking accept stack).
func scanFrom(d *dfa.DFA, input string, start int) []acceptRecord {
	state := d.Start()
	var accepts []acceptRecord
	offset := start
	for offset < len(input) {
		r, size := utf8.DecodeRuneInString(input[offset:])
		state = d.Step(state, r)
		if state == dfa.DeadState {
			break
		}
		offset += size
		if terminal, ok := d.State(state).IsAccept(); ok {
			accepts = append(accepts, acceptRecord{terminal: terminal, offset: offset})
		}
	}
	return accepts
}

// lookaheadOK reports whether acc's pattern has no lookahead requirement,
// or its requirement is satisfied by the text immediately following the
// candidate span.
func (s *Scanner) lookaheadOK(rm *runtimeMode, acc acceptRecord, input string) bool {
	look, ok := rm.compiled.Lookaheads[acc.terminal]
	if !ok {
		return true
	}
	matched := lookaheadMatches(look.DFA, input[acc.offset:])
	if look.Kind == pattern.LookPositive {
		return matched
	}
	return !matched
}

// lookaheadMatches reports whether some prefix of text (including the
// empty prefix) is accepted by a lookahead automaton.
func lookaheadMatches(d *dfa.DFA, text string) bool {
	state := d.Start()
	if _, ok := d.State(state).IsAccept(); ok {
		return true
	}
	for _, r := range text {
		state = d.Step(state, r)
		if state == dfa.DeadState {
			return false
		}
		if _, ok := d.State(state).IsAccept(); ok {
			return true
		}
	}
	return false
}
