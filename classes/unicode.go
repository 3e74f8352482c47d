package classes

import "unicode"

// FromRangeTable flattens a unicode.RangeTable (category, script, or
// property table from the standard library's unicode package) into
// RuneRanges suitable for Register. Used for \p{L}-style class escapes.
func FromRangeTable(t *unicode.RangeTable) []RuneRange {
	var out []RuneRange
	for _, r16 := range t.R16 {
		lo, hi := rune(r16.Lo), rune(r16.Hi)
		if r16.Stride == 1 {
			out = append(out, RuneRange{Lo: lo, Hi: hi})
			continue
		}
		for r := lo; r <= hi; r += rune(r16.Stride) {
			out = append(out, RuneRange{Lo: r, Hi: r})
		}
	}
	for _, r32 := range t.R32 {
		lo, hi := rune(r32.Lo), rune(r32.Hi)
		if r32.Stride == 1 {
			out = append(out, RuneRange{Lo: lo, Hi: hi})
			continue
		}
		for r := lo; r <= hi; r += rune(r32.Stride) {
			out = append(out, RuneRange{Lo: r, Hi: r})
		}
	}
	return out
}

// Digits is the \d shorthand: [0-9].
var Digits = []RuneRange{{Lo: '0', Hi: '9'}}

// WordChars is the \w shorthand: [0-9A-Za-z_].
var WordChars = []RuneRange{
	{Lo: '0', Hi: '9'},
	{Lo: 'A', Hi: 'Z'},
	{Lo: 'a', Hi: 'z'},
	{Lo: '_', Hi: '_'},
}

// SpaceChars is the \s shorthand: the Perl whitespace set.
var SpaceChars = []RuneRange{
	{Lo: '\t', Hi: '\n'},
	{Lo: '\f', Hi: '\r'},
	{Lo: ' ', Hi: ' '},
}

// UnicodeProperty resolves a \p{Name} escape to a range table, searching
// the general categories first and then scripts, matching the lookup order
// of regexp/syntax's own \p{} handling.
func UnicodeProperty(name string) (*unicode.RangeTable, bool) {
	if t, ok := unicode.Categories[name]; ok {
		return t, true
	}
	if t, ok := unicode.Scripts[name]; ok {
		return t, true
	}
	if t, ok := unicode.Properties[name]; ok {
		return t, true
	}
	return nil, false
}

// AnyExceptNewline is the range set for `.` under the default (non-dot-all)
// semantics required by spec.md's "dot is taken to match any character
// except \n" rule.
func AnyExceptNewline() []RuneRange {
	return []RuneRange{
		{Lo: 0, Hi: '\n' - 1},
		{Lo: '\n' + 1, Hi: maxRune},
	}
}
