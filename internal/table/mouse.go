package table

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qchart/internal/grid"
)

const doubleClickInterval = 400 * time.Millisecond

// HandleMouse maps a mouse event onto the layout of the last render.
func (t *Table) HandleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	btn := ev.Buttons()
	if btn == tcell.ButtonNone {
		t.dragging = false
		return
	}
	switch t.page {
	case PageData:
		t.mouseGrid(x, y, btn)
	case PageChart:
		if btn&tcell.Button1 != 0 {
			t.mouseChart(x, y)
		}
	}
}

func (t *Table) mouseGrid(x, y int, btn tcell.ButtonMask) {
	switch {
	case btn&tcell.WheelUp != 0:
		t.scrollRow = max(t.scrollRow-1, 0)
		return
	case btn&tcell.WheelDown != 0:
		rows, _ := t.grid.RenderSize()
		t.scrollRow = min(t.scrollRow+1, max(rows-2, 0))
		return
	case btn&tcell.Button1 == 0:
		return
	}

	at, ok := t.cellAt(x, y)
	if !ok {
		return
	}
	if t.dragging {
		rng := t.sel.Range()
		if at.Row > 0 && at.Col > 0 && !rng.Empty() && at != *rng.End {
			_ = t.sel.SetEnd(at)
			t.lastClick = time.Time{}
		}
		return
	}
	if t.mode == ModeEdit {
		t.commitEdit(CommitOverwrite)
	}
	if t.mode == ModeCommand {
		t.closeCommand()
	}

	rows, cols := t.grid.RenderSize()
	switch {
	case at.Row == 0 && at.Col > 0:
		_ = t.sel.SetRange(&grid.RenderIndex{Row: 1, Col: at.Col}, &grid.RenderIndex{Row: rows - 1, Col: at.Col})
		return
	case at.Col == 0 && at.Row > 0:
		_ = t.sel.SetRange(&grid.RenderIndex{Row: at.Row, Col: 1}, &grid.RenderIndex{Row: at.Row, Col: cols - 1})
		return
	case at.Row == 0 || at.Col == 0:
		t.sel.SelectAll()
		return
	}

	now := time.Now()
	double := at == t.lastCell && now.Sub(t.lastClick) < doubleClickInterval
	t.lastCell, t.lastClick = at, now
	_ = t.sel.SetStart(at)
	if double && t.grid.Editable(at) {
		t.beginEdit(EditAppend)
		return
	}
	t.dragging = true
}

// cellAt finds the render cell drawn at a screen position. Band cells come
// back with a zero row or column.
func (t *Table) cellAt(x, y int) (grid.RenderIndex, bool) {
	var at grid.RenderIndex
	found := false
	if y == 0 {
		found = true
	}
	for _, r := range t.layout.rows {
		if y == r.pos {
			at.Row, found = r.index, true
		}
	}
	if !found {
		return at, false
	}
	if x < t.layout.bandWidth {
		return at, true
	}
	for _, c := range t.layout.cols {
		if x >= c.pos && x < c.pos+c.size {
			at.Col = c.index
			return at, true
		}
	}
	return at, false
}

func (t *Table) mouseChart(x, y int) {
	if y == 0 {
		for _, g := range t.layout.gallery {
			if x >= g.pos && x < g.pos+g.size {
				if g.kind != t.chart.Type() {
					t.setChartType(g.kind)
				}
				return
			}
		}
		return
	}
	if y == t.layout.seriesY && t.layout.seriesY > 0 {
		for _, s := range t.layout.series {
			if x >= s.pos && x < s.pos+s.size {
				t.seriesCursor = s.index
				t.toggleSeries(t.data.DataRecords().SeriesNames())
				return
			}
		}
	}
}
