// Package selection tracks the highlighted rectangle of the grid view.
package selection

import (
	"errors"
	"fmt"

	"github.com/kobzarvs/qchart/internal/grid"
)

// ErrInvalidArgument is returned for coordinates outside the render space.
// It signals a caller bug rather than a recoverable state.
var ErrInvalidArgument = errors.New("invalid argument")

// Surface is the rendered table a selection lives on.
type Surface interface {
	RenderSize() (rows, cols int)
	ShowHeaderRow() bool
	ShowHeaderColumn() bool
}

// Range is an anchor (Start) and focus (End) pair. It is stored as set;
// use Rect for the normalized rectangle. A nil Start means no selection.
type Range struct {
	Start *grid.RenderIndex
	End   *grid.RenderIndex
}

func (r Range) Empty() bool { return r.Start == nil || r.End == nil }

// IsMultiple reports whether the range covers more than one cell.
func (r Range) IsMultiple() bool {
	return !r.Empty() && *r.Start != *r.End
}

// Rect returns the normalized rectangle of the range.
func (r Range) Rect() (grid.Rect, bool) {
	if r.Empty() {
		return grid.Rect{}, false
	}
	return grid.RectOf(*r.Start, *r.End), true
}

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) delta() (int, int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	default:
		return 0, 1
	}
}

// IndexKind distinguishes the results of SelectedRow and SelectedColumn.
type IndexKind int

const (
	IndexNone IndexKind = iota
	// IndexHeader means the whole visible header band is selected.
	IndexHeader
	IndexSelected
)

type IndexSelection struct {
	Kind  IndexKind
	Index int
}

// Selection is the current range over a surface.
type Selection struct {
	surface Surface
	rng     Range

	// OnChange runs after every range change so the view can repaint.
	OnChange func(Range)
	// OnCollapse runs when an extended range shrinks back to one cell.
	OnCollapse func()
}

func New(s Surface) *Selection {
	return &Selection{surface: s}
}

// Range returns a copy of the current range.
func (s *Selection) Range() Range {
	if s.rng.Empty() {
		return Range{}
	}
	a, b := *s.rng.Start, *s.rng.End
	return Range{Start: &a, End: &b}
}

func (s *Selection) bounds() (maxRow, maxCol int) {
	rows, cols := s.surface.RenderSize()
	return rows - 1, cols - 1
}

// SetRange replaces the range. A nil pair clears the selection.
func (s *Selection) SetRange(start, end *grid.RenderIndex) error {
	if start == nil && end == nil {
		s.rng = Range{}
		s.changed()
		return nil
	}
	if start == nil || end == nil {
		return fmt.Errorf("%w: half-open selection", ErrInvalidArgument)
	}
	if start.Row < 0 || start.Col < 0 || end.Row < 0 || end.Col < 0 {
		return fmt.Errorf("%w: negative coordinate in %v..%v", ErrInvalidArgument, *start, *end)
	}
	a, b := *start, *end
	s.rng = Range{Start: &a, End: &b}
	s.changed()
	return nil
}

// SetStart begins a fresh single-cell selection at p.
func (s *Selection) SetStart(p grid.RenderIndex) error {
	return s.SetRange(&p, &p)
}

// SetEnd moves the focus of the current range to p.
func (s *Selection) SetEnd(p grid.RenderIndex) error {
	if s.rng.Empty() {
		return nil
	}
	if p.Row < 0 || p.Col < 0 {
		return fmt.Errorf("%w: negative coordinate %v", ErrInvalidArgument, p)
	}
	s.rng.End = &p
	if !s.rng.IsMultiple() && s.OnCollapse != nil {
		s.OnCollapse()
	}
	s.changed()
	return nil
}

// TransformEnd moves the focus by a delta, clamped to the content area.
func (s *Selection) TransformEnd(dRow, dCol int) {
	if s.rng.Empty() {
		return
	}
	maxRow, maxCol := s.bounds()
	end := *s.rng.End
	end.Row = clamp(end.Row+dRow, 1, maxRow)
	end.Col = clamp(end.Col+dCol, 1, maxCol)
	_ = s.SetEnd(end)
}

// Clamp pulls both corners back inside the content area after the surface
// shrank.
func (s *Selection) Clamp() {
	if s.rng.Empty() {
		return
	}
	maxRow, maxCol := s.bounds()
	for _, p := range []*grid.RenderIndex{s.rng.Start, s.rng.End} {
		p.Row = clamp(p.Row, 1, maxRow)
		p.Col = clamp(p.Col, 1, maxCol)
	}
	s.changed()
}

// SelectAll selects the whole content area.
func (s *Selection) SelectAll() {
	maxRow, maxCol := s.bounds()
	_ = s.SetRange(&grid.RenderIndex{Row: 1, Col: 1}, &grid.RenderIndex{Row: maxRow, Col: maxCol})
}

// IsSelectAll reports whether the range is exactly the content area.
func (s *Selection) IsSelectAll() bool {
	rect, ok := s.rng.Rect()
	if !ok {
		return false
	}
	maxRow, maxCol := s.bounds()
	return rect == grid.Rect{Top: 1, Left: 1, Bottom: maxRow, Right: maxCol}
}

// SelectedRow returns the row whose full width is selected.
func (s *Selection) SelectedRow() IndexSelection {
	rect, ok := s.rng.Rect()
	if !ok {
		return IndexSelection{}
	}
	_, maxCol := s.bounds()
	if rect.Top != rect.Bottom || rect.Left != 1 || rect.Right != maxCol {
		return IndexSelection{}
	}
	if rect.Top == 1 && s.surface.ShowHeaderRow() {
		return IndexSelection{Kind: IndexHeader}
	}
	return IndexSelection{Kind: IndexSelected, Index: rect.Top}
}

// SelectedColumn returns the column whose full height is selected.
func (s *Selection) SelectedColumn() IndexSelection {
	rect, ok := s.rng.Rect()
	if !ok {
		return IndexSelection{}
	}
	maxRow, _ := s.bounds()
	if rect.Left != rect.Right || rect.Top != 1 || rect.Bottom != maxRow {
		return IndexSelection{}
	}
	if rect.Left == 1 && s.surface.ShowHeaderColumn() {
		return IndexSelection{Kind: IndexHeader}
	}
	return IndexSelection{Kind: IndexSelected, Index: rect.Left}
}

// Move relocates the single-cell selection one step, or grows the range
// when extend is set. Moving off the content area is a no-op.
func (s *Selection) Move(dir Direction, extend bool) {
	if s.rng.Empty() {
		return
	}
	dr, dc := dir.delta()
	if extend {
		s.TransformEnd(dr, dc)
		return
	}
	maxRow, maxCol := s.bounds()
	next := *s.rng.Start
	next.Row += dr
	next.Col += dc
	if next.Row < 1 || next.Row > maxRow || next.Col < 1 || next.Col > maxCol {
		return
	}
	_ = s.SetStart(next)
}

// MoveByTab relocates one column right, or left when back is set.
func (s *Selection) MoveByTab(back bool) {
	if back {
		s.Move(Left, false)
		return
	}
	s.Move(Right, false)
}

// MoveByEnter relocates one row down, or up when back is set.
func (s *Selection) MoveByEnter(back bool) {
	if back {
		s.Move(Up, false)
		return
	}
	s.Move(Down, false)
}

// Highlight returns the cells to paint as current. Band cells are never
// included.
func (s *Selection) Highlight() (grid.Rect, bool) {
	rect, ok := s.rng.Rect()
	if !ok {
		return grid.Rect{}, false
	}
	rect.Top = max(rect.Top, 1)
	rect.Left = max(rect.Left, 1)
	rect.Bottom = max(rect.Bottom, 1)
	rect.Right = max(rect.Right, 1)
	return rect, true
}

func (s *Selection) changed() {
	if s.OnChange != nil {
		s.OnChange(s.rng)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
