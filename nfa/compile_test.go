package nfa

import (
	"testing"

	"github.com/coregx/lexgen/classes"
	"github.com/coregx/lexgen/pattern"
)

// simulate runs a simple backtracking NFA simulation against input,
// reporting whether the whole string is accepted. It exists purely to
// exercise Compile's fragment wiring in isolation, before the DFA/scanner
// layers exist to do this more efficiently.
func simulate(t *testing.T, n *NFA, reg *classes.Registry, input string) bool {
	t.Helper()
	runes := []rune(input)
	var visit func(id StateID, pos int, seen map[StateID]bool) bool
	visit = func(id StateID, pos int, seen map[StateID]bool) bool {
		if seen[id] {
			return false
		}
		seen[id] = true
		s := n.State(id)
		switch s.Kind() {
		case StateMatch:
			return pos == len(runes)
		case StateEpsilon:
			return visit(s.Next(), pos, seen)
		case StateSplit:
			l, r := s.Split()
			return visit(l, pos, map[StateID]bool{}) || visit(r, pos, map[StateID]bool{})
		case StateClass:
			if pos >= len(runes) {
				return false
			}
			if !reg.Matches(s.Class(), runes[pos]) {
				return false
			}
			return visit(s.Next(), pos+1, map[StateID]bool{})
		}
		return false
	}
	return visit(n.Start, 0, map[StateID]bool{})
}

func compileSrc(t *testing.T, src string) (*NFA, *classes.Registry) {
	t.Helper()
	reg := classes.NewRegistry()
	ast, err := pattern.Parse(src, reg)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	n, err := Compile(ast)
	if err != nil {
		t.Fatalf("compile %q: %v", src, err)
	}
	return n, reg
}

func TestCompileLiteralAndConcat(t *testing.T) {
	n, reg := compileSrc(t, "abc")
	if !simulate(t, n, reg, "abc") {
		t.Error("expected abc to match")
	}
	if simulate(t, n, reg, "ab") {
		t.Error("expected ab to not match")
	}
}

func TestCompileAlternation(t *testing.T) {
	n, reg := compileSrc(t, "cat|dog|bird")
	for _, in := range []string{"cat", "dog", "bird"} {
		if !simulate(t, n, reg, in) {
			t.Errorf("expected %q to match", in)
		}
	}
	if simulate(t, n, reg, "fish") {
		t.Error("expected fish to not match")
	}
}

func TestCompileStarPlusQuest(t *testing.T) {
	star, regS := compileSrc(t, "a*")
	if !simulate(t, star, regS, "") || !simulate(t, star, regS, "aaaa") {
		t.Error("a* should match empty string and repeats")
	}

	plus, regP := compileSrc(t, "a+")
	if simulate(t, plus, regP, "") {
		t.Error("a+ should not match empty string")
	}
	if !simulate(t, plus, regP, "aaa") {
		t.Error("a+ should match aaa")
	}

	quest, regQ := compileSrc(t, "ab?")
	if !simulate(t, quest, regQ, "a") || !simulate(t, quest, regQ, "ab") {
		t.Error("ab? should match both a and ab")
	}
	if simulate(t, quest, regQ, "abb") {
		t.Error("ab? should not match abb")
	}
}

func TestCompileBoundedRepeat(t *testing.T) {
	n, reg := compileSrc(t, "a{2,3}")
	if simulate(t, n, reg, "a") {
		t.Error("a{2,3} should reject a single a")
	}
	if !simulate(t, n, reg, "aa") || !simulate(t, n, reg, "aaa") {
		t.Error("a{2,3} should accept aa and aaa")
	}
	if simulate(t, n, reg, "aaaa") {
		t.Error("a{2,3} should reject aaaa")
	}
}

func TestCompileExactRepeat(t *testing.T) {
	n, reg := compileSrc(t, "a{3}")
	if simulate(t, n, reg, "aa") || simulate(t, n, reg, "aaaa") {
		t.Error("a{3} should only accept exactly 3")
	}
	if !simulate(t, n, reg, "aaa") {
		t.Error("a{3} should accept exactly 3")
	}
}

func TestCompileOpenEndedRepeat(t *testing.T) {
	n, reg := compileSrc(t, "a{2,}")
	if simulate(t, n, reg, "a") {
		t.Error("a{2,} should reject a single a")
	}
	if !simulate(t, n, reg, "aa") || !simulate(t, n, reg, "aaaaaa") {
		t.Error("a{2,} should accept 2 or more")
	}
}

func TestCompileValidatesCleanly(t *testing.T) {
	n, _ := compileSrc(t, `[a-zA-Z_][a-zA-Z0-9_]*`)
	b := &Builder{states: n.States}
	if err := b.Validate(); err != nil {
		t.Errorf("expected compiled NFA to validate cleanly, got %v", err)
	}
}
