package pattern

import (
	"testing"

	"github.com/coregx/lexgen/classes"
	"github.com/coregx/lexgen/lexerr"
)

func mustParse(t *testing.T, src string) (*AST, *classes.Registry) {
	t.Helper()
	reg := classes.NewRegistry()
	ast, err := Parse(src, reg)
	if err != nil {
		t.Fatalf("Parse(%q) unexpected error: %v", src, err)
	}
	return ast, reg
}

func TestParseAccepts(t *testing.T) {
	tests := []string{
		"hello",
		`\d+`,
		`[a-zA-Z_][a-zA-Z0-9_]*`,
		"a|b|c",
		`\*/`,
		"(?:ab)+",
		"a{2,4}",
		"a{3}",
		"a{2,}",
		`[a-z&&[^aeiou]]`,
		`[a-z--[aeiou]]`,
		`\p{L}+`,
		".",
		"[.\\r\\n]",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			mustParse(t, src)
		})
	}
}

func TestParseRejectsUnsupported(t *testing.T) {
	tests := []struct {
		src  string
		kind lexerr.Kind
	}{
		{"^abc", lexerr.UnsupportedFeature},
		{"abc$", lexerr.UnsupportedFeature},
		{`\babc`, lexerr.UnsupportedFeature},
		{`\Babc`, lexerr.UnsupportedFeature},
		{`\Aabc`, lexerr.UnsupportedFeature},
		{`abc\z`, lexerr.UnsupportedFeature},
		{"(abc)", lexerr.UnsupportedFeature},
		{"(?i:abc)", lexerr.UnsupportedFeature},
		{"(abc", lexerr.RegexSyntax},
		{"a{4,2}", lexerr.RegexSyntax},
		{"[z-a]", lexerr.RegexSyntax},
		{"", lexerr.RegexSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			reg := classes.NewRegistry()
			_, err := Parse(tt.src, reg)
			if err == nil {
				t.Fatalf("Parse(%q) expected error, got none", tt.src)
			}
			var lexErr *lexerr.Error
			if !asLexErr(err, &lexErr) {
				t.Fatalf("Parse(%q) error is not *lexerr.Error: %v", tt.src, err)
			}
			if lexErr.Kind != tt.kind {
				t.Errorf("Parse(%q) kind = %v, want %v", tt.src, lexErr.Kind, tt.kind)
			}
		})
	}
}

func asLexErr(err error, target **lexerr.Error) bool {
	if le, ok := err.(*lexerr.Error); ok {
		*target = le
		return true
	}
	return false
}

func TestParseSharesClassesAcrossPatterns(t *testing.T) {
	reg := classes.NewRegistry()
	ast1, err := Parse(`[a-z]+`, reg)
	if err != nil {
		t.Fatal(err)
	}
	ast2, err := Parse(`[a-z]*`, reg)
	if err != nil {
		t.Fatal(err)
	}

	id1 := ast1.Root.(Repeat).Node.(Class).ID
	id2 := ast2.Root.(Repeat).Node.(Class).ID
	if id1 != id2 {
		t.Errorf("expected [a-z] to share one ClassId across patterns, got %d and %d", id1, id2)
	}
}

func TestParseDotExcludesNewline(t *testing.T) {
	ast, reg := mustParse(t, ".")
	cls := ast.Root.(Class)
	if reg.Matches(cls.ID, '\n') {
		t.Fatal("dot must not match newline")
	}
	if !reg.Matches(cls.ID, 'x') {
		t.Fatal("dot must match ordinary characters")
	}
}
