package modedef

import (
	"testing"

	"github.com/coregx/lexgen/nfa"
)

const commentJSON = `[
  { "name": "INITIAL",
    "patterns": [ { "pattern": "/\\*", "token_type": 1 } ],
    "transitions": [ [1, 1] ] },
  { "name": "COMMENT",
    "patterns": [
      { "pattern": "\\*/", "token_type": 2 },
      { "pattern": "[.\\r\\n]", "token_type": 3 } ],
    "transitions": [ [2, 0] ] }
]`

func TestDecodeJSON(t *testing.T) {
	defs, err := DecodeJSON([]byte(commentJSON))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 modes, got %d", len(defs))
	}
	if defs[0].Name != "INITIAL" || defs[1].Name != "COMMENT" {
		t.Errorf("unexpected mode names: %q, %q", defs[0].Name, defs[1].Name)
	}
	if len(defs[0].Patterns) != 1 || defs[0].Patterns[0].Source != `/\*` {
		t.Errorf("unexpected INITIAL patterns: %+v", defs[0].Patterns)
	}
	if target, ok := defs[0].Transitions[nfa.TerminalID(1)]; !ok || target != 1 {
		t.Errorf("expected terminal 1 to transition to mode 1, got %v ok=%v", target, ok)
	}
	if len(defs[1].Patterns) != 2 {
		t.Fatalf("expected 2 patterns in COMMENT, got %d", len(defs[1].Patterns))
	}
	if target, ok := defs[1].Transitions[nfa.TerminalID(2)]; !ok || target != 0 {
		t.Errorf("expected terminal 2 to transition to mode 0, got %v ok=%v", target, ok)
	}
}

func TestDecodeYAML(t *testing.T) {
	yamlSrc := `
- name: INITIAL
  patterns:
    - pattern: "/\\*"
      token_type: 1
  transitions:
    - [1, 1]
- name: COMMENT
  patterns:
    - pattern: "\\*/"
      token_type: 2
    - pattern: "[.\\r\\n]"
      token_type: 3
  transitions:
    - [2, 0]
`
	defs, err := DecodeYAML([]byte(yamlSrc))
	if err != nil {
		t.Fatalf("DecodeYAML: %v", err)
	}
	if len(defs) != 2 || defs[0].Name != "INITIAL" {
		t.Fatalf("unexpected decode result: %+v", defs)
	}
}

func TestDecodeJSONRejectsOutOfRangeTransition(t *testing.T) {
	bad := `[ { "name": "ONLY", "patterns": [ { "pattern": "a", "token_type": 1 } ], "transitions": [ [1, 5] ] } ]`
	if _, err := DecodeJSON([]byte(bad)); err == nil {
		t.Fatal("expected error for out-of-range transition target")
	}
}
