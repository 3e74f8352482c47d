package pattern

import (
	"github.com/coregx/lexgen/classes"
	"github.com/coregx/lexgen/lexerr"
)

// parseClass parses a bracketed character class `[...]`, supporting
// negation, ranges, Perl shorthand escapes nested inside the brackets, and
// the set operators `&&` (intersection) and `--` (difference) applied
// against a bracketed right-hand operand, e.g. `[a-z&&[^aeiou]]`. Operators
// associate left to right against the set built so far. An unescaped `.`
// inside the brackets stands for any character except `\n`, so `[.\r\n]`
// admits every character; `\.` is a literal dot.
func (p *Parser) parseClass() (Node, error) {
	p.pos++ // consume '['
	negated := false
	if p.peekByte() == '^' {
		p.pos++
		negated = true
	}

	set, err := p.parseClassBody()
	if err != nil {
		return nil, err
	}

	for {
		if p.matchOperator("&&") {
			rhs, err := p.parseBracketedOperand()
			if err != nil {
				return nil, err
			}
			set = intersect(set, rhs)
			continue
		}
		if p.matchOperator("--") {
			rhs, err := p.parseBracketedOperand()
			if err != nil {
				return nil, err
			}
			set = subtract(set, rhs)
			continue
		}
		break
	}

	if p.peekByte() != ']' {
		return nil, p.errf(lexerr.RegexSyntax, "expected ']'")
	}
	p.pos++

	var id classes.ID
	if negated {
		id = p.registry.RegisterNegated(set, "[^...]")
	} else {
		id = p.registry.Register(set, "[...]")
	}
	return Class{ID: id}, nil
}

func (p *Parser) matchOperator(op string) bool {
	if len(p.src)-p.pos < len(op) {
		return false
	}
	if p.src[p.pos:p.pos+len(op)] != op {
		return false
	}
	p.pos += len(op)
	return true
}

// parseBracketedOperand parses the `[...]` right-hand side of a class set
// operator. Unlike the outer class, it does not itself accept further `&&`
// / `--` operators — operators chain at the outer level only.
func (p *Parser) parseBracketedOperand() ([]classes.RuneRange, error) {
	if p.peekByte() != '[' {
		return nil, p.errf(lexerr.RegexSyntax, "expected '[' after class set operator")
	}
	p.pos++
	negated := false
	if p.peekByte() == '^' {
		p.pos++
		negated = true
	}
	set, err := p.parseClassBody()
	if err != nil {
		return nil, err
	}
	if p.peekByte() != ']' {
		return nil, p.errf(lexerr.RegexSyntax, "expected ']'")
	}
	p.pos++
	if negated {
		return negateRanges(set), nil
	}
	return set, nil
}

// parseClassBody parses the union of ranges/singles/shorthands up to (but
// not including) the closing ']' or a set operator.
func (p *Parser) parseClassBody() ([]classes.RuneRange, error) {
	var set []classes.RuneRange
	for !p.isEOF() && p.peekByte() != ']' && !p.atSetOperator() {
		ranges, err := p.parseClassItem()
		if err != nil {
			return nil, err
		}
		set = append(set, ranges...)
	}
	if len(set) == 0 {
		return nil, p.errf(lexerr.RegexSyntax, "empty character class")
	}
	return set, nil
}

func (p *Parser) atSetOperator() bool {
	rest := p.src[p.pos:]
	return len(rest) >= 2 && (rest[:2] == "&&" || rest[:2] == "--")
}

// parseClassItem parses one item inside `[...]`: a nested shorthand escape
// (\d, \w, ...), a literal escape, an unescaped `.` (any character except
// `\n`), or a single char possibly starting a `lo-hi` range.
func (p *Parser) parseClassItem() ([]classes.RuneRange, error) {
	if p.peekByte() == '\\' {
		p.pos++
		if p.isEOF() {
			return nil, p.errf(lexerr.RegexSyntax, "trailing backslash in class")
		}
		c := p.peekByte()
		switch c {
		case 'd':
			p.pos++
			return classes.Digits, nil
		case 'D':
			p.pos++
			return negateRanges(classes.Digits), nil
		case 'w':
			p.pos++
			return classes.WordChars, nil
		case 'W':
			p.pos++
			return negateRanges(classes.WordChars), nil
		case 's':
			p.pos++
			return classes.SpaceChars, nil
		case 'S':
			p.pos++
			return negateRanges(classes.SpaceChars), nil
		}
		if r, ok := decodeControlEscape(c); ok {
			p.pos++
			return p.maybeRange(r)
		}
		return p.maybeRange(p.advanceRune())
	}
	if p.peekByte() == '.' {
		p.pos++
		return classes.AnyExceptNewline(), nil
	}
	return p.maybeRange(p.advanceRune())
}

// maybeRange checks for a following `-hi` to turn a single char into a
// range; a trailing `-` immediately before `]` is treated as a literal
// hyphen, matching common regex-dialect leniency.
func (p *Parser) maybeRange(lo rune) ([]classes.RuneRange, error) {
	if p.peekByte() != '-' || p.isEOF() {
		return []classes.RuneRange{{Lo: lo, Hi: lo}}, nil
	}
	save := p.pos
	p.pos++ // consume '-'
	if p.isEOF() || p.peekByte() == ']' {
		p.pos = save
		return []classes.RuneRange{{Lo: lo, Hi: lo}}, nil
	}
	var hi rune
	if p.peekByte() == '\\' {
		p.pos++
		if p.isEOF() {
			return nil, p.errf(lexerr.RegexSyntax, "trailing backslash in class range")
		}
		c := p.peekByte()
		if r, ok := decodeControlEscape(c); ok {
			p.pos++
			hi = r
		} else {
			hi = p.advanceRune()
		}
	} else {
		hi = p.advanceRune()
	}
	if hi < lo {
		return nil, p.errf(lexerr.RegexSyntax, "invalid range %q-%q: reversed bounds", lo, hi)
	}
	return []classes.RuneRange{{Lo: lo, Hi: hi}}, nil
}

func negateRanges(ranges []classes.RuneRange) []classes.RuneRange {
	tmp := classes.NewRegistry()
	id := tmp.RegisterNegated(ranges, "")
	return tmp.Class(id).Ranges()
}

func intersect(a, b []classes.RuneRange) []classes.RuneRange {
	var out []classes.RuneRange
	for _, ra := range a {
		for _, rb := range b {
			lo := max(ra.Lo, rb.Lo)
			hi := min(ra.Hi, rb.Hi)
			if lo <= hi {
				out = append(out, classes.RuneRange{Lo: lo, Hi: hi})
			}
		}
	}
	return out
}

func subtract(a, b []classes.RuneRange) []classes.RuneRange {
	return intersect(a, negateRanges(b))
}
