package lexgen

import (
	"testing"

	"github.com/coregx/lexgen/mode"
)

func TestPositionIteratorAnnotatesMatches(t *testing.T) {
	b := NewBuilder().AddPatterns(mode.PatternDef{Source: `[a-z]+`, Terminal: 0})
	s := mustBuild(t, b)

	pit := NewPositionIterator(s.FindIter("hello\nworld"))
	first := pit.NextMatch()
	if first == nil || first.StartPos.Line != 1 || first.StartPos.Column != 1 {
		t.Fatalf("expected first match at line 1 col 1, got %+v", first)
	}
	second := pit.NextMatch()
	if second == nil || second.StartPos.Line != 2 || second.StartPos.Column != 1 {
		t.Fatalf("expected second match at line 2 col 1, got %+v", second)
	}
	if pit.NextMatch() != nil {
		t.Error("expected iteration to end")
	}
}
