package classes

import "testing"

func TestRegistryInternsEqualClasses(t *testing.T) {
	r := NewRegistry()

	id1 := r.Register([]RuneRange{{Lo: 'a', Hi: 'z'}}, "[a-z]")
	id2 := r.Register([]RuneRange{{Lo: 'a', Hi: 'm'}, {Lo: 'n', Hi: 'z'}}, "[a-z] split")
	if id1 != id2 {
		t.Fatalf("expected equal canonical classes to share an id, got %d and %d", id1, id2)
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 registered class, got %d", r.Len())
	}
}

func TestRegistryDistinctOverlappingClasses(t *testing.T) {
	r := NewRegistry()

	digits := r.Register(RuneRange{Lo: '0', Hi: '9'}.slice(), "[0-9]")
	word := r.Register([]RuneRange{{Lo: '0', Hi: '9'}, {Lo: 'a', Hi: 'z'}, {Lo: '_', Hi: '_'}}, "\\w")
	if digits == word {
		t.Fatalf("expected distinct classes to get distinct ids")
	}
	if !r.Matches(digits, '5') || !r.Matches(word, '5') {
		t.Fatalf("expected '5' to match both overlapping classes")
	}
	if r.Matches(digits, 'a') {
		t.Fatalf("digits class must not match 'a'")
	}
	if !r.Matches(word, 'a') {
		t.Fatalf("word class must match 'a'")
	}
}

func (r RuneRange) slice() []RuneRange { return []RuneRange{r} }

func TestMatchesBinarySearch(t *testing.T) {
	r := NewRegistry()
	id := r.Register([]RuneRange{{Lo: 'a', Hi: 'c'}, {Lo: 'x', Hi: 'z'}, {Lo: '0', Hi: '9'}}, "")

	cases := []struct {
		r    rune
		want bool
	}{
		{'a', true}, {'b', true}, {'c', true}, {'d', false},
		{'x', true}, {'z', true}, {'w', false},
		{'0', true}, {'9', true}, {'/', false},
	}
	for _, tc := range cases {
		if got := r.Matches(id, tc.r); got != tc.want {
			t.Errorf("Matches(%q) = %v, want %v", tc.r, got, tc.want)
		}
	}
}

func TestRegisterNegated(t *testing.T) {
	r := NewRegistry()
	id := r.RegisterNegated([]RuneRange{{Lo: '0', Hi: '9'}}, "[^0-9]")
	if r.Matches(id, '5') {
		t.Fatalf("negated digit class must not match '5'")
	}
	if !r.Matches(id, 'x') {
		t.Fatalf("negated digit class must match 'x'")
	}
	if r.Matches(id, 0xD900) {
		t.Fatalf("negated class must exclude UTF-16 surrogate range")
	}
}

func TestAnyExceptNewlineExcludesOnlyNewline(t *testing.T) {
	r := NewRegistry()
	id := r.Register(AnyExceptNewline(), ".")
	if r.Matches(id, '\n') {
		t.Fatalf("dot must not match newline by default")
	}
	if !r.Matches(id, 'x') || !r.Matches(id, '\r') {
		t.Fatalf("dot must match any non-newline character")
	}
}
