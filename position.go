package lexgen

import "github.com/coregx/lexgen/mode"

// Position is a 1-based line and a 1-based, rune-counted column.
type Position struct {
	Line   int
	Column int
}

// MatchWithPosition pairs a Match with the resolved Position of its start
// and end offsets.
type MatchWithPosition struct {
	Match
	StartPos Position
	EndPos   Position
}

// PositionIterator wraps a FindIterator, attaching line/column positions
// to every match it produces.
type PositionIterator struct {
	inner *FindIterator
}

// NewPositionIterator wraps it for position-annotated iteration.
func NewPositionIterator(it *FindIterator) *PositionIterator {
	return &PositionIterator{inner: it}
}

// NextMatch returns the next match with its resolved start and end
// positions, or nil once the input is exhausted.
func (p *PositionIterator) NextMatch() *MatchWithPosition {
	m := p.inner.NextMatch()
	if m == nil {
		return nil
	}
	return &MatchWithPosition{
		Match:    *m,
		StartPos: p.inner.Position(m.Start - p.inner.base),
		EndPos:   p.inner.Position(m.End - p.inner.base),
	}
}

// SetMode, CurrentMode and ModeName delegate to the wrapped FindIterator.
func (p *PositionIterator) SetMode(m mode.ID)    { p.inner.SetMode(m) }
func (p *PositionIterator) CurrentMode() mode.ID { return p.inner.CurrentMode() }
func (p *PositionIterator) ModeName(i mode.ID) (string, bool) {
	return p.inner.ModeName(i)
}
