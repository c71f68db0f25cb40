package selection

import (
	"errors"
	"testing"

	"github.com/kobzarvs/qchart/internal/grid"
)

func at(row, col int) grid.RenderIndex { return grid.RenderIndex{Row: row, Col: col} }

func newTestSelection() (*Selection, *grid.Grid) {
	g := grid.New()
	return New(g), g
}

func TestSetRangeValidation(t *testing.T) {
	s, _ := newTestSelection()
	start, end := at(-1, 2), at(3, 3)
	if err := s.SetRange(&start, &end); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("SetRange negative err = %v, want ErrInvalidArgument", err)
	}
	if err := s.SetRange(nil, &end); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("SetRange half nil err = %v", err)
	}
	if err := s.SetRange(nil, nil); err != nil {
		t.Fatalf("SetRange(nil, nil) err = %v", err)
	}
	if !s.Range().Empty() {
		t.Fatalf("range not cleared")
	}
}

func TestSetStartAndEnd(t *testing.T) {
	s, _ := newTestSelection()
	changes := 0
	collapsed := 0
	s.OnChange = func(Range) { changes++ }
	s.OnCollapse = func() { collapsed++ }

	_ = s.SetEnd(at(2, 2))
	if !s.Range().Empty() {
		t.Fatalf("SetEnd without a range should be ignored")
	}
	_ = s.SetStart(at(2, 2))
	if s.Range().IsMultiple() {
		t.Fatalf("single cell reported as multiple")
	}
	_ = s.SetEnd(at(4, 3))
	if !s.Range().IsMultiple() {
		t.Fatalf("range should be multiple")
	}
	_ = s.SetEnd(at(2, 2))
	if collapsed != 1 {
		t.Fatalf("collapse hook ran %d times, want 1", collapsed)
	}
	if changes != 3 {
		t.Fatalf("change hook ran %d times, want 3", changes)
	}
}

func TestTransformEndClamps(t *testing.T) {
	s, g := newTestSelection()
	rows, cols := g.RenderSize()
	s.TransformEnd(1, 1)
	if !s.Range().Empty() {
		t.Fatalf("TransformEnd without range should be a no-op")
	}
	_ = s.SetStart(at(3, 3))
	deltas := [][2]int{{-100, 0}, {0, -100}, {1000, 1000}, {-5, 2}, {7, -9}, {0, 0}}
	for _, d := range deltas {
		s.TransformEnd(d[0], d[1])
		end := *s.Range().End
		if end.Row < 1 || end.Row > rows-1 || end.Col < 1 || end.Col > cols-1 {
			t.Fatalf("TransformEnd(%d,%d) -> %+v out of bounds", d[0], d[1], end)
		}
	}
	s.TransformEnd(1000, 1000)
	if end := *s.Range().End; end != at(rows-1, cols-1) {
		t.Fatalf("end = %+v, want bottom right", end)
	}
	if start := *s.Range().Start; start != at(3, 3) {
		t.Fatalf("start moved to %+v", start)
	}
}

func TestIsSelectAll(t *testing.T) {
	s, g := newTestSelection()
	rows, cols := g.RenderSize()
	maxRow, maxCol := rows-1, cols-1
	if s.IsSelectAll() {
		t.Fatalf("empty selection is not select all")
	}
	s.SelectAll()
	if !s.IsSelectAll() {
		t.Fatalf("SelectAll not detected")
	}
	reversed := []grid.RenderIndex{at(maxRow, maxCol), at(1, 1)}
	_ = s.SetRange(&reversed[0], &reversed[1])
	if !s.IsSelectAll() {
		t.Fatalf("reversed full range not detected")
	}
	shortOf := [][2]grid.RenderIndex{
		{at(2, 1), at(maxRow, maxCol)},
		{at(1, 2), at(maxRow, maxCol)},
		{at(1, 1), at(maxRow-1, maxCol)},
		{at(1, 1), at(maxRow, maxCol-1)},
	}
	for _, r := range shortOf {
		_ = s.SetRange(&r[0], &r[1])
		if s.IsSelectAll() {
			t.Fatalf("%v..%v reported as select all", r[0], r[1])
		}
	}
}

func TestSelectedRowAndColumn(t *testing.T) {
	s, g := newTestSelection()
	rows, cols := g.RenderSize()
	a, b := at(3, 1), at(3, cols-1)
	_ = s.SetRange(&a, &b)
	if got := s.SelectedRow(); got != (IndexSelection{Kind: IndexSelected, Index: 3}) {
		t.Fatalf("SelectedRow = %+v", got)
	}
	if got := s.SelectedColumn(); got.Kind != IndexNone {
		t.Fatalf("SelectedColumn = %+v, want none", got)
	}

	a, b = at(1, 1), at(1, cols-1)
	_ = s.SetRange(&a, &b)
	if got := s.SelectedRow(); got.Kind != IndexHeader {
		t.Fatalf("header row selection = %+v", got)
	}
	g.SetShowHeaderRow(false)
	rows, cols = g.RenderSize()
	b = at(1, cols-1)
	_ = s.SetRange(&a, &b)
	if got := s.SelectedRow(); got != (IndexSelection{Kind: IndexSelected, Index: 1}) {
		t.Fatalf("SelectedRow with hidden header = %+v", got)
	}

	a, b = at(1, 4), at(rows-1, 4)
	_ = s.SetRange(&a, &b)
	if got := s.SelectedColumn(); got != (IndexSelection{Kind: IndexSelected, Index: 4}) {
		t.Fatalf("SelectedColumn = %+v", got)
	}
	a, b = at(2, 4), at(rows-1, 4)
	_ = s.SetRange(&a, &b)
	if got := s.SelectedColumn(); got.Kind != IndexNone {
		t.Fatalf("partial column = %+v, want none", got)
	}
}

func TestMove(t *testing.T) {
	s, g := newTestSelection()
	rows, cols := g.RenderSize()
	_ = s.SetStart(at(1, 1))
	s.Move(Up, false)
	s.Move(Left, false)
	if got := *s.Range().Start; got != at(1, 1) {
		t.Fatalf("move past top left = %+v", got)
	}
	s.Move(Down, false)
	s.Move(Right, false)
	if got := *s.Range().Start; got != at(2, 2) {
		t.Fatalf("move = %+v, want (2,2)", got)
	}
	s.Move(Down, true)
	s.Move(Right, true)
	r := s.Range()
	if *r.Start != at(2, 2) || *r.End != at(3, 3) {
		t.Fatalf("extend = %+v..%+v", *r.Start, *r.End)
	}
	s.Move(Left, false)
	if r := s.Range(); r.IsMultiple() || *r.Start != at(2, 1) {
		t.Fatalf("relocate from anchor = %+v..%+v", *r.Start, *r.End)
	}

	_ = s.SetStart(at(rows-1, cols-1))
	s.Move(Down, false)
	s.Move(Right, false)
	if got := *s.Range().Start; got != at(rows-1, cols-1) {
		t.Fatalf("move past bottom right = %+v", got)
	}
}

func TestMoveByTabAndEnter(t *testing.T) {
	s, _ := newTestSelection()
	_ = s.SetStart(at(2, 2))
	s.MoveByTab(false)
	s.MoveByEnter(false)
	if got := *s.Range().Start; got != at(3, 3) {
		t.Fatalf("tab+enter = %+v", got)
	}
	s.MoveByTab(true)
	s.MoveByEnter(true)
	if got := *s.Range().Start; got != at(2, 2) {
		t.Fatalf("shift tab+enter = %+v", got)
	}
}

func TestHighlightClampsBands(t *testing.T) {
	s, _ := newTestSelection()
	if _, ok := s.Highlight(); ok {
		t.Fatalf("highlight without range")
	}
	a, b := at(0, 0), at(3, 2)
	_ = s.SetRange(&a, &b)
	rect, ok := s.Highlight()
	if !ok || rect != (grid.Rect{Top: 1, Left: 1, Bottom: 3, Right: 2}) {
		t.Fatalf("Highlight = %+v, %v", rect, ok)
	}
}

func TestClamp(t *testing.T) {
	s, g := newTestSelection()
	g.SetCell(grid.GridIndex{Row: 12, Col: 1}, "x")
	a, b := at(12, 1), at(13, 2)
	_ = s.SetRange(&a, &b)
	g.DeleteRow(12)
	g.DeleteRow(11)
	s.Clamp()
	rows, _ := g.RenderSize()
	if r := s.Range(); r.End.Row != rows-1 || r.Start.Row > rows-1 {
		t.Fatalf("Clamp = %+v..%+v, rows %d", *r.Start, *r.End, rows)
	}
}
