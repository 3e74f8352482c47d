package mode

import (
	"testing"

	"github.com/coregx/lexgen/classes"
	"github.com/coregx/lexgen/nfa"
	"github.com/coregx/lexgen/pattern"
)

func TestCompileBuildsTransitionsAndLookahead(t *testing.T) {
	reg := classes.NewRegistry()
	def := Def{
		Name: "INITIAL",
		Patterns: []PatternDef{
			{Source: "if", Terminal: 0},
			{Source: `[a-z]+`, Terminal: 1},
			{Source: "foo", Terminal: 2, Lookahead: &LookaheadDef{Kind: pattern.LookPositive, Source: `\d`}},
		},
		Transitions: map[nfa.TerminalID]ID{0: 1},
	}

	cm, err := Compile(def, reg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if cm.Name != "INITIAL" {
		t.Errorf("Name = %q", cm.Name)
	}
	if target, ok := cm.NextMode(0); !ok || target != 1 {
		t.Errorf("NextMode(0) = %v, %v; want 1, true", target, ok)
	}
	if _, ok := cm.NextMode(1); ok {
		t.Error("expected no transition for terminal 1")
	}
	look, ok := cm.Lookaheads[2]
	if !ok || look.Kind != pattern.LookPositive {
		t.Fatalf("expected a positive lookahead for terminal 2, got %+v ok=%v", look, ok)
	}
}

func TestCompileRejectsEmptyMode(t *testing.T) {
	reg := classes.NewRegistry()
	_, err := Compile(Def{Name: "EMPTY"}, reg)
	if err == nil {
		t.Fatal("expected an error for a mode with no patterns")
	}
}
