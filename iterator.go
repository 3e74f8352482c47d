package lexgen

import (
	"sort"
	"unicode/utf8"

	"github.com/coregx/lexgen/mode"
)

// PeekKind classifies the outcome of FindIterator.PeekN.
type PeekKind int

const (
	// PeekMatches reports n matches were found without hitting end of
	// input or a mode switch.
	PeekMatches PeekKind = iota
	// PeekReachedEnd reports fewer than n matches were found because the
	// input ran out; the matches collected so far are returned.
	PeekReachedEnd
	// PeekReachedModeSwitch reports peeking stopped because the (k+1)-th
	// match would occur after a mode transition; the k matches found
	// under the current mode are returned.
	PeekReachedModeSwitch
	// PeekNotFound reports no match at all was found before end of input.
	PeekNotFound
)

// PeekResult is the outcome of a PeekN call.
type PeekResult struct {
	Kind    PeekKind
	Matches []Match
}

// FindIterator scans a single input string for non-overlapping matches,
// advancing its cursor on each NextMatch call and observing (and, via
// SetMode, mutating) the mode state shared with its Scanner.
type FindIterator struct {
	scanner     *Scanner
	input       string
	cursor      int
	base        int
	lineOffsets []int
}

func newFindIterator(s *Scanner, input string) *FindIterator {
	return &FindIterator{
		scanner:     s,
		input:       input,
		lineOffsets: computeLineOffsets(input),
	}
}

// computeLineOffsets returns the byte offset of the start of every line in
// input; line 0 always starts at offset 0. Precomputed once up front since
// the whole input is already resident in memory, rather than appended
// incrementally as matches are discovered.
func computeLineOffsets(input string) []int {
	offsets := []int{0}
	for i := 0; i < len(input); i++ {
		if input[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// NextMatch returns the next non-overlapping match, or nil once the input
// is exhausted without one.
func (it *FindIterator) NextMatch() *Match {
	rm := it.scanner.runtimeModeAt(it.scanner.CurrentMode())
	m, ok := it.scanner.matchAt(it.input, rm, it.cursor)
	if !ok {
		it.cursor = len(it.input)
		return nil
	}
	it.cursor = m.End
	if next, ok := rm.compiled.NextMode(m.Terminal); ok {
		it.scanner.SetMode(next)
	}
	reported := Match{Terminal: m.Terminal, Start: m.Start + it.base, End: m.End + it.base}
	return &reported
}

// PeekN looks ahead up to n matches without mutating the iterator's
// cursor or the scanner's current mode: it simulates against a local
// cursor and a local "would-be" mode, stopping early at end of input or
// at the point a mode transition would occur.
func (it *FindIterator) PeekN(n int) PeekResult {
	cursor := it.cursor
	curMode := it.scanner.CurrentMode()
	var matches []Match

	for len(matches) < n {
		rm := it.scanner.runtimeModeAt(curMode)
		m, ok := it.scanner.matchAt(it.input, rm, cursor)
		if !ok {
			if len(matches) == 0 {
				return PeekResult{Kind: PeekNotFound}
			}
			return PeekResult{Kind: PeekReachedEnd, Matches: matches}
		}

		if _, switched := rm.compiled.NextMode(m.Terminal); switched {
			matches = append(matches, Match{Terminal: m.Terminal, Start: m.Start + it.base, End: m.End + it.base})
			if len(matches) == n {
				return PeekResult{Kind: PeekMatches, Matches: matches}
			}
			return PeekResult{Kind: PeekReachedModeSwitch, Matches: matches}
		}

		matches = append(matches, Match{Terminal: m.Terminal, Start: m.Start + it.base, End: m.End + it.base})
		cursor = m.End
	}
	return PeekResult{Kind: PeekMatches, Matches: matches}
}

// AdvanceTo moves the cursor to byte offset p (relative to this
// iterator's own input, ignoring any WithOffset shift), clamped to the
// nearest rune boundary at or after p, and returns the resulting cursor.
func (it *FindIterator) AdvanceTo(p int) int {
	if p < 0 {
		p = 0
	}
	if p > len(it.input) {
		p = len(it.input)
	}
	for p < len(it.input) && !isRuneStart(it.input[p]) {
		p++
	}
	it.cursor = p
	return it.cursor
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// WithOffset shifts every subsequently reported match span by o, for
// scanning a slice of a larger document while reporting absolute
// positions; it does not affect internal cursor or line-offset
// bookkeeping, which remain local to this iterator's own input.
func (it *FindIterator) WithOffset(o int) *FindIterator {
	it.base = o
	return it
}

// Offset returns the current reporting offset set by WithOffset.
func (it *FindIterator) Offset() int { return it.base }

// Position resolves a local byte offset (as originally produced by this
// iterator's own input, before any WithOffset shift is added) into a
// 1-based line and a 1-based, rune-counted column since the start of
// that line.
func (it *FindIterator) Position(off int) Position {
	line := sort.Search(len(it.lineOffsets), func(i int) bool {
		return it.lineOffsets[i] > off
	}) - 1
	if line < 0 {
		line = 0
	}
	lineStart := it.lineOffsets[line]
	col := 1
	for i := lineStart; i < off && i < len(it.input); {
		_, size := utf8.DecodeRuneInString(it.input[i:])
		if size == 0 {
			break
		}
		i += size
		col++
	}
	return Position{Line: line + 1, Column: col}
}

// SetMode, CurrentMode and ModeName delegate to the wrapped Scanner, so a
// FindIterator satisfies ModeSwitcher the same way its Scanner does.
func (it *FindIterator) SetMode(m mode.ID)    { it.scanner.SetMode(m) }
func (it *FindIterator) CurrentMode() mode.ID { return it.scanner.CurrentMode() }
func (it *FindIterator) ModeName(i mode.ID) (string, bool) {
	return it.scanner.ModeName(i)
}
