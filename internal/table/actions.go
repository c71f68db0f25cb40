package table

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qchart/internal/grid"
	"github.com/kobzarvs/qchart/internal/render"
	"github.com/kobzarvs/qchart/internal/selection"
)

const (
	actionMoveUp             = "move_up"
	actionMoveDown           = "move_down"
	actionMoveLeft           = "move_left"
	actionMoveRight          = "move_right"
	actionExtendUp           = "extend_up"
	actionExtendDown         = "extend_down"
	actionExtendLeft         = "extend_left"
	actionExtendRight        = "extend_right"
	actionNextCell           = "next_cell"
	actionPrevCell           = "prev_cell"
	actionNextRow            = "next_row"
	actionPrevRow            = "prev_row"
	actionEditAppend         = "edit_append"
	actionDelete             = "delete"
	actionSelectAll          = "select_all"
	actionCopy               = "copy"
	actionCut                = "cut"
	actionPaste              = "paste"
	actionInsertRow          = "insert_row"
	actionInsertColumn       = "insert_column"
	actionDeleteRow          = "delete_row"
	actionDeleteColumn       = "delete_column"
	actionToggleHeaderRow    = "toggle_header_row"
	actionToggleHeaderColumn = "toggle_header_column"
	actionChartPage          = "chart_page"
	actionDataPage           = "data_page"
	actionEnterCommand       = "enter_command"
	actionQuit               = "quit"

	actionCancelEdit     = "cancel_edit"
	actionCommitNextRow  = "commit_next_row"
	actionCommitPrevRow  = "commit_prev_row"
	actionCommitNextCell = "commit_next_cell"
	actionCommitPrevCell = "commit_prev_cell"
	actionCaretLeft      = "caret_left"
	actionCaretRight     = "caret_right"
	actionCaretStart     = "caret_start"
	actionCaretEnd       = "caret_end"
	actionBackspace      = "backspace"
	actionDeleteChar     = "delete_char"

	actionPrevType        = "prev_type"
	actionNextType        = "next_type"
	actionPrevSeries      = "prev_series"
	actionNextSeries      = "next_series"
	actionToggleSeries    = "toggle_series"
	actionToggleStack     = "toggle_stack"
	actionToggleGrid      = "toggle_grid"
	actionToggleValues    = "toggle_values"
	actionNextPalette     = "next_palette"
	actionExport          = "export"
	actionSwapOrientation = "swap_orientation"
)

func (t *Table) handleGridKey(ev *tcell.EventKey) bool {
	if action, ok := t.keymap.grid[keyString(ev)]; ok {
		return t.execGridAction(action)
	}
	if printable(ev) {
		rng := t.sel.Range()
		if rng.Empty() || rng.IsMultiple() || !t.grid.Editable(*rng.Start) {
			return false
		}
		t.beginEdit(EditClear)
		t.insertRune(ev.Rune())
	}
	return false
}

func (t *Table) execGridAction(action string) bool {
	switch action {
	case actionMoveUp:
		t.sel.Move(selection.Up, false)
	case actionMoveDown:
		t.sel.Move(selection.Down, false)
	case actionMoveLeft:
		t.sel.Move(selection.Left, false)
	case actionMoveRight:
		t.sel.Move(selection.Right, false)
	case actionExtendUp:
		t.sel.Move(selection.Up, true)
	case actionExtendDown:
		t.sel.Move(selection.Down, true)
	case actionExtendLeft:
		t.sel.Move(selection.Left, true)
	case actionExtendRight:
		t.sel.Move(selection.Right, true)
	case actionNextCell:
		t.sel.MoveByTab(false)
	case actionPrevCell:
		t.sel.MoveByTab(true)
	case actionNextRow:
		t.sel.MoveByEnter(false)
	case actionPrevRow:
		t.sel.MoveByEnter(true)
	case actionEditAppend:
		rng := t.sel.Range()
		if !rng.Empty() && t.grid.Editable(*rng.Start) {
			t.beginEdit(EditAppend)
		}
	case actionDelete:
		t.deleteSelection()
	case actionSelectAll:
		t.sel.SelectAll()
	case actionCopy:
		t.copySelection(false)
	case actionCut:
		t.copySelection(true)
	case actionPaste:
		text, err := t.clip.ReadAll()
		if err != nil {
			t.setError("clipboard_failed", err)
			return false
		}
		t.paste(text)
	case actionInsertRow:
		t.insertRow()
	case actionInsertColumn:
		t.insertColumn()
	case actionDeleteRow:
		t.deleteRow()
	case actionDeleteColumn:
		t.deleteColumn()
	case actionToggleHeaderRow:
		t.toggleHeaderRow(!t.grid.ShowHeaderRow())
	case actionToggleHeaderColumn:
		t.toggleHeaderColumn(!t.grid.ShowHeaderColumn())
	case actionChartPage:
		t.setPage(PageChart)
	case actionEnterCommand:
		t.openCommand()
	case actionQuit:
		return t.quit(false)
	}
	return false
}

// deleteSelection clears everything on select all, otherwise the editable
// cells of the selection.
func (t *Table) deleteSelection() {
	rect, ok := t.sel.Highlight()
	if !ok {
		return
	}
	if t.sel.IsSelectAll() {
		t.grid.Clear()
	} else {
		t.grid.ClearRange(rect)
	}
	t.markChanged()
}

func (t *Table) copySelection(cut bool) {
	rect, ok := t.sel.Highlight()
	if !ok {
		return
	}
	if err := t.clip.WriteAll(t.grid.Copy(rect)); err != nil {
		t.setError("clipboard_failed", err)
		return
	}
	if cut {
		t.grid.ClearRange(rect)
		t.markChanged()
		t.setStatus(t.loc.Get("cut"))
		return
	}
	t.setStatus(t.loc.Get("copied"))
}

// paste writes clipboard text at the selection and reselects the pasted
// range once the grid has been redrawn.
func (t *Table) paste(text string) {
	if t.mode == ModeCommand {
		for _, r := range text {
			switch r {
			case '\n', '\r':
			case '\t':
				t.insertCommandRune(' ')
			default:
				t.insertCommandRune(r)
			}
		}
		return
	}
	if t.mode == ModeEdit {
		for _, r := range text {
			if r != '\n' && r != '\r' {
				t.insertRune(r)
			}
		}
		return
	}
	if t.page != PageData || text == "" {
		return
	}
	rect, ok := t.sel.Highlight()
	if !ok {
		return
	}
	target := t.grid.Paste(text, rect)
	t.markChanged()
	t.setStatus(t.loc.Get("pasted"))
	t.Defer(func() {
		start := grid.RenderIndex{Row: target.Top, Col: target.Left}
		end := grid.RenderIndex{Row: target.Bottom, Col: target.Right}
		_ = t.sel.SetRange(&start, &end)
	})
}

// selectedIndex is the logical row and column under the selection anchor.
func (t *Table) selectedIndex() (grid.GridIndex, bool) {
	rng := t.sel.Range()
	if rng.Empty() {
		return grid.GridIndex{}, false
	}
	return t.grid.ToGrid(*rng.Start), true
}

func (t *Table) insertRow() {
	at, ok := t.selectedIndex()
	if !ok {
		return
	}
	if !t.grid.InsertRow(at.Row) {
		t.setStatus(t.loc.Get("header_refused"))
		return
	}
	t.markChanged()
}

func (t *Table) insertColumn() {
	at, ok := t.selectedIndex()
	if !ok {
		return
	}
	if !t.grid.InsertColumn(at.Col) {
		t.setStatus(t.loc.Get("header_refused"))
		return
	}
	t.markChanged()
}

func (t *Table) deleteRow() {
	at, ok := t.selectedIndex()
	if !ok {
		return
	}
	if at.Row < 1 {
		t.setStatus(t.loc.Get("header_refused"))
		return
	}
	if t.grid.DeleteRow(at.Row) {
		t.markChanged()
		t.Defer(t.sel.Clamp)
	}
}

func (t *Table) deleteColumn() {
	at, ok := t.selectedIndex()
	if !ok {
		return
	}
	if at.Col < 1 {
		t.setStatus(t.loc.Get("header_refused"))
		return
	}
	if t.grid.DeleteColumn(at.Col) {
		t.markChanged()
		t.Defer(t.sel.Clamp)
	}
}

func (t *Table) toggleHeaderRow(show bool) {
	t.grid.SetShowHeaderRow(show)
	t.markChanged()
}

func (t *Table) toggleHeaderColumn(show bool) {
	t.grid.SetShowHeaderColumn(show)
	t.markChanged()
}

func (t *Table) handleChartKey(ev *tcell.EventKey) bool {
	action, ok := t.keymap.chart[keyString(ev)]
	if !ok {
		return false
	}
	names := t.data.DataRecords().SeriesNames()
	switch action {
	case actionPrevType:
		t.setChartType(t.chart.Type().Next(-1))
	case actionNextType:
		t.setChartType(t.chart.Type().Next(1))
	case actionPrevSeries:
		if t.seriesCursor > 0 {
			t.seriesCursor--
		}
	case actionNextSeries:
		if t.seriesCursor < len(names)-1 {
			t.seriesCursor++
		}
	case actionToggleSeries:
		t.toggleSeries(names)
	case actionToggleStack:
		t.chart.SetStacked(!t.chart.Stacked())
		t.saveChartSettings()
	case actionToggleGrid:
		t.chart.SetGridVisible(!t.chart.GridVisible())
		t.saveChartSettings()
	case actionToggleValues:
		t.chart.SetValueVisible(!t.chart.ValueVisible())
		t.saveChartSettings()
	case actionNextPalette:
		t.nextPalette()
	case actionExport:
		t.export(t.exportPath)
	case actionSwapOrientation:
		v, _ := t.data.IsColumnCategory()
		t.data.SetColumnCategory(!v)
		t.chart.SetActiveSeries(nil)
		t.seriesCursor = 0
	case actionDataPage:
		t.setPage(PageData)
	case actionEnterCommand:
		t.openCommand()
	case actionQuit:
		return t.quit(false)
	}
	return false
}

func (t *Table) setChartType(kind render.Type) {
	t.chart.SetType(kind)
	t.saveChartSettings()
}

// toggleSeries flips whether the series under the cursor takes part in
// stacking.
func (t *Table) toggleSeries(names []string) {
	if t.seriesCursor >= len(names) {
		return
	}
	var active []string
	for i, n := range names {
		on := t.chart.IsActive(n)
		if i == t.seriesCursor {
			on = !on
		}
		if on {
			active = append(active, n)
		}
	}
	if len(active) == len(names) {
		active = nil
	}
	if len(active) == 0 && len(names) > 0 {
		// Deactivating the last series would read as "all active".
		return
	}
	t.chart.SetActiveSeries(active)
}

func (t *Table) nextPalette() {
	names := render.PaletteNames()
	next := names[0]
	for i, n := range names {
		if n == t.chart.PaletteName() {
			next = names[(i+1)%len(names)]
		}
	}
	_ = t.chart.SetPalette(next, nil)
	t.saveChartSettings()
}
