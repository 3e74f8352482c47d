package nfa

import (
	"testing"

	"github.com/coregx/lexgen/classes"
	"github.com/coregx/lexgen/pattern"
)

func TestBuildMultiNFAPreservesPerPatternAccepts(t *testing.T) {
	reg := classes.NewRegistry()
	ifN, _ := compileFromSrc(t, reg, "if")
	idN, _ := compileFromSrc(t, reg, `[a-z]+`)

	multi := BuildMultiNFA([]PatternSpec{
		{Terminal: 0, Priority: 0, NFA: ifN},
		{Terminal: 1, Priority: 1, NFA: idN},
	})

	var acceptCount int
	for id := range multi.States {
		if _, ok := multi.IsAccept(StateID(id)); ok {
			acceptCount++
		}
	}
	if acceptCount != 2 {
		t.Fatalf("expected 2 accept states in the union, got %d", acceptCount)
	}
}

func compileFromSrc(t *testing.T, reg *classes.Registry, src string) (*NFA, *classes.Registry) {
	t.Helper()
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
