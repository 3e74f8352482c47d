package pattern

import (
	"github.com/coregx/lexgen/classes"
	"github.com/coregx/lexgen/lexerr"
)

// parseEscape handles a top-level `\X` atom: Perl shorthands (\d \D \w \W
// \s \S), Unicode properties (\p{Name}, \P{Name}), the rejected anchors
// (\b \B \A \z), and literal escapes of metacharacters / control chars.
func (p *Parser) parseEscape() (Node, error) {
	p.pos++ // consume '\\'
	if p.isEOF() {
		return nil, p.errf(lexerr.RegexSyntax, "trailing backslash")
	}
	c := p.peekByte()

	switch c {
	case 'b', 'B', 'A', 'z':
		return nil, p.errf(lexerr.UnsupportedFeature, "anchor \\%c is not supported", c)
	case 'd', 'D', 'w', 'W', 's', 'S':
		p.pos++
		id := p.registerShorthand(c)
		return Class{ID: id}, nil
	case 'p', 'P':
		return p.parseUnicodeProperty()
	}

	r, ok := decodeControlEscape(c)
	if ok {
		p.pos++
		id := p.registry.Register([]classes.RuneRange{{Lo: r, Hi: r}}, escapedName(r))
		return Class{ID: id}, nil
	}

	// Any other escaped character is a literal (metacharacters like
	// `\.` `\*` `\(` `\[` `\\` `\|` etc. all fall here).
	r = p.advanceRune()
	id := p.registry.Register([]classes.RuneRange{{Lo: r, Hi: r}}, escapedName(r))
	return Class{ID: id}, nil
}

func (p *Parser) registerShorthand(c byte) classes.ID {
	switch c {
	case 'd':
		return p.registry.Register(classes.Digits, `\d`)
	case 'D':
		return p.registry.RegisterNegated(classes.Digits, `\D`)
	case 'w':
		return p.registry.Register(classes.WordChars, `\w`)
	case 'W':
		return p.registry.RegisterNegated(classes.WordChars, `\W`)
	case 's':
		return p.registry.Register(classes.SpaceChars, `\s`)
	case 'S':
		return p.registry.RegisterNegated(classes.SpaceChars, `\S`)
	}
	panic("unreachable shorthand")
}

func decodeControlEscape(c byte) (rune, bool) {
	switch c {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case 'f':
		return '\f', true
	case 'v':
		return '\v', true
	case '0':
		return 0, true
	}
	return 0, false
}

func escapedName(r rune) string {
	return "\\" + string(r)
}

// parseUnicodeProperty handles `\p{Name}`, `\P{Name}` (negated), and the
// single-letter short form `\pL`.
func (p *Parser) parseUnicodeProperty() (Node, error) {
	negated := p.peekByte() == 'P'
	p.pos++ // consume 'p'/'P'

	var name string
	if p.peekByte() == '{' {
		p.pos++
		start := p.pos
		for !p.isEOF() && p.peekByte() != '}' {
			p.pos++
		}
		if p.isEOF() {
			return nil, p.errf(lexerr.RegexSyntax, "unterminated \\p{...}")
		}
		name = p.src[start:p.pos]
		p.pos++ // consume '}'
	} else {
		if p.isEOF() {
			return nil, p.errf(lexerr.RegexSyntax, "expected property name after \\p")
		}
		name = string(p.advanceRune())
	}

	table, ok := classes.UnicodeProperty(name)
	if !ok {
		return nil, p.errf(lexerr.RegexSyntax, "unknown unicode property %q", name)
	}
	ranges := classes.FromRangeTable(table)
	label := `\p{` + name + `}`
	if negated {
		label = `\P{` + name + `}`
		return Class{ID: p.registry.RegisterNegated(ranges, label)}, nil
	}
	return Class{ID: p.registry.Register(ranges, label)}, nil
}
