// Package modedef decodes the JSON/YAML mode-definition interchange format
// (spec.md §6) into mode.Def values ready for mode.Compile. The format is
// an array of mode objects, each with a name, an index-prioritized pattern
// list, and transitions keyed by the terminal id that triggers them:
//
//	[
//	  { "name": "INITIAL",
//	    "patterns": [ { "pattern": "/\\*", "token_type": 1 } ],
//	    "transitions": [ [1, 1] ] },
//	  { "name": "COMMENT",
//	    "patterns": [
//	      { "pattern": "\\*/", "token_type": 2 },
//	      { "pattern": "[.\\r\\n]", "token_type": 3 } ],
//	    "transitions": [ [2, 0] ] }
//	]
package modedef

import (
	"encoding/json"

	goyaml "github.com/goccy/go-yaml"

	"github.com/coregx/lexgen/lexerr"
	"github.com/coregx/lexgen/mode"
	"github.com/coregx/lexgen/nfa"
)

// patternEntry mirrors one element of a mode's "patterns" array.
type patternEntry struct {
	Pattern   string `json:"pattern" yaml:"pattern"`
	TokenType int32  `json:"token_type" yaml:"token_type"`
}

// modeEntry mirrors one element of the top-level mode-definition array.
// Transitions decode as [terminal_id, target_mode_index] pairs; the target
// mode index refers to this array's own ordering and is converted directly
// to a mode.ID by toDefs after a range check.
type modeEntry struct {
	Name        string         `json:"name" yaml:"name"`
	Patterns    []patternEntry `json:"patterns" yaml:"patterns"`
	Transitions [][2]int32     `json:"transitions" yaml:"transitions"`
}

// DecodeJSON parses the JSON interchange format into mode.Def values,
// indexed the same way as the source array (mode.ID(i) for entry i).
func DecodeJSON(data []byte) ([]mode.Def, error) {
	var entries []modeEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, lexerr.Wrap(lexerr.Io, "", err)
	}
	return toDefs(entries)
}

// DecodeYAML parses the YAML interchange format into mode.Def values, via
// github.com/goccy/go-yaml.
func DecodeYAML(data []byte) ([]mode.Def, error) {
	var entries []modeEntry
	if err := goyaml.Unmarshal(data, &entries); err != nil {
		return nil, lexerr.Wrap(lexerr.Io, "", err)
	}
	return toDefs(entries)
}

func toDefs(entries []modeEntry) ([]mode.Def, error) {
	defs := make([]mode.Def, len(entries))
	for i, e := range entries {
		patterns := make([]mode.PatternDef, len(e.Patterns))
		for j, p := range e.Patterns {
			patterns[j] = mode.PatternDef{
				Source:   p.Pattern,
				Terminal: nfa.TerminalID(p.TokenType),
			}
		}
		transitions := make(map[nfa.TerminalID]mode.ID, len(e.Transitions))
		for _, t := range e.Transitions {
			terminal, target := t[0], t[1]
			if int(target) < 0 || int(target) >= len(entries) {
				return nil, lexerr.New(lexerr.Io, "mode definition: transition target mode index out of range")
			}
			transitions[nfa.TerminalID(terminal)] = mode.ID(target)
		}
		defs[i] = mode.Def{Name: e.Name, Patterns: patterns, Transitions: transitions}
	}
	return defs, nil
}
