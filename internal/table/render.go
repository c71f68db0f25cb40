package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/qchart/internal/grid"
	"github.com/kobzarvs/qchart/internal/render"
)

// span is a drawn column or row of the grid, kept for mouse hit tests.
type span struct {
	pos   int
	size  int
	index int
}

type layout struct {
	bandWidth int
	rows      []span
	cols      []span
	gallery   []gallerySpan
	seriesY   int
	series    []span
}

type gallerySpan struct {
	span
	kind render.Type
}

// Render draws the active page, the status line and the command line.
func (t *Table) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.width, t.height = w, h

	statusY := h - 2
	cmdY := h - 1
	viewHeight := max(h-2, 0)
	if h < 2 {
		statusY, cmdY = h-1, h-1
	}

	s.SetStyle(t.styles.main)
	s.Clear()
	t.layout = layout{}

	cx, cy, cursor := -1, -1, false
	switch t.page {
	case PageData:
		cx, cy, cursor = t.renderGrid(s, w, viewHeight)
	case PageChart:
		t.renderChart(s, w, viewHeight)
	}
	if statusY >= 0 {
		t.renderStatusline(s, w, statusY)
	}
	if cmdY >= 0 {
		x := t.renderCommandline(s, w, cmdY)
		if t.mode == ModeCommand {
			cx, cy, cursor = x, cmdY, true
		}
	}
	if cursor && cx >= 0 && cx < w {
		s.ShowCursor(cx, cy)
	} else {
		s.HideCursor()
	}
	s.Show()
}

// columnWidth is the drawn width of a render column.
func (t *Table) columnWidth(col int) int {
	lc := t.grid.ToGrid(grid.RenderIndex{Row: 1, Col: col}).Col
	cw := t.grid.DisplayWidth(lc) + 1
	return min(max(cw, t.cfg.Editor.CellWidth), max(t.cfg.Editor.MaxCellWidth, t.cfg.Editor.CellWidth))
}

// scrollIntoView adjusts the scroll offsets so the focus cell is drawn.
func (t *Table) scrollIntoView(w, viewHeight, bandWidth int) {
	rng := t.sel.Range()
	if rng.Empty() {
		return
	}
	focus := *rng.End
	if t.mode == ModeEdit {
		focus = t.edit.at
	}
	visibleRows := max(viewHeight-1, 1)
	if focus.Row-1 < t.scrollRow {
		t.scrollRow = focus.Row - 1
	}
	if focus.Row-1 >= t.scrollRow+visibleRows {
		t.scrollRow = focus.Row - visibleRows
	}
	if focus.Col-1 < t.scrollCol {
		t.scrollCol = focus.Col - 1
	}
	for t.scrollCol < focus.Col-1 {
		used := bandWidth
		for c := t.scrollCol + 1; c <= focus.Col; c++ {
			used += t.columnWidth(c)
		}
		if used <= w {
			break
		}
		t.scrollCol++
	}
	t.scrollRow = max(t.scrollRow, 0)
	t.scrollCol = max(t.scrollCol, 0)
}

func (t *Table) renderGrid(s tcell.Screen, w, viewHeight int) (cx, cy int, cursor bool) {
	if viewHeight <= 0 {
		return -1, -1, false
	}
	rows, cols := t.grid.RenderSize()
	bandWidth := max(len(strconv.Itoa(rows-1))+1, 3)
	t.scrollIntoView(w, viewHeight, bandWidth)
	t.layout.bandWidth = bandWidth

	x := bandWidth
	for c := t.scrollCol + 1; c < cols && x < w; c++ {
		cw := t.columnWidth(c)
		t.layout.cols = append(t.layout.cols, span{pos: x, size: cw, index: c})
		x += cw
	}
	for y, r := 1, t.scrollRow+1; y < viewHeight && r < rows; y, r = y+1, r+1 {
		t.layout.rows = append(t.layout.rows, span{pos: y, size: 1, index: r})
	}

	highlight, hasHighlight := t.sel.Highlight()

	// Bands.
	clearLine(s, 0, w, t.styles.band)
	for _, c := range t.layout.cols {
		style := t.styles.band
		if hasHighlight && c.index >= highlight.Left && c.index <= highlight.Right {
			style = style.Bold(true)
		}
		drawCentered(s, c.pos, 0, c.size, grid.ColumnLabel(c.index), style)
	}
	for _, r := range t.layout.rows {
		style := t.styles.band
		if hasHighlight && r.index >= highlight.Top && r.index <= highlight.Bottom {
			style = style.Bold(true)
		}
		label := strconv.Itoa(r.index)
		drawText(s, 0, r.pos, bandWidth, runewidth.FillLeft(label, bandWidth-1)+" ", style)
	}

	// Cells.
	cx, cy = -1, -1
	for _, r := range t.layout.rows {
		for _, c := range t.layout.cols {
			at := grid.RenderIndex{Row: r.index, Col: c.index}
			style := t.cellStyle(at)
			if hasHighlight && highlight.Contains(at) {
				style = t.styles.selection
			}
			if t.mode == ModeEdit && at == t.edit.at {
				cx = t.drawEdit(s, c.pos, r.pos, c.size)
				cy = r.pos
				continue
			}
			fill(s, c.pos, r.pos, c.size, style)
			drawText(s, c.pos+1, r.pos, c.size-2, t.grid.RenderCell(at), style)
		}
	}
	return cx, cy, cx >= 0
}

// cellStyle is the resting style of a content cell.
func (t *Table) cellStyle(at grid.RenderIndex) tcell.Style {
	if (t.grid.ShowHeaderRow() && at.Row == 1) || (t.grid.ShowHeaderColumn() && at.Col == 1) {
		return t.styles.header
	}
	return t.styles.main
}

// drawEdit draws the open editor into a cell and returns the caret column.
func (t *Table) drawEdit(s tcell.Screen, x, y, width int) int {
	room := max(width-2, 1)
	text := t.edit.text
	start := 0
	for runewidth.StringWidth(string(text[start:t.edit.caret])) > room {
		start++
	}
	fill(s, x, y, width, t.styles.edit)
	drawText(s, x+1, y, width-1, string(text[start:]), t.styles.edit)
	return x + 1 + runewidth.StringWidth(string(text[start:t.edit.caret]))
}

func (t *Table) renderChart(s tcell.Screen, w, viewHeight int) {
	if viewHeight <= 0 {
		return
	}

	// Gallery.
	clearLine(s, 0, w, t.styles.band)
	x := 0
	for _, kind := range render.Types {
		label := " " + t.loc.Get("chart_"+string(kind)) + " "
		style := t.styles.band
		if kind == t.chart.Type() {
			style = t.styles.selection
		}
		n := drawText(s, x, 0, w-x, label, style)
		t.layout.gallery = append(t.layout.gallery, gallerySpan{span{pos: x, size: n}, kind})
		x += n
		if x >= w {
			break
		}
	}
	if viewHeight < 2 {
		return
	}

	drawText(s, 0, 1, w, t.chartSummary(), t.styles.main)

	y := 2
	if y < viewHeight {
		t.layout.seriesY = y
		x := drawText(s, 0, y, w, t.loc.Get("series")+":", t.styles.band)
		for i, name := range t.data.DataRecords().SeriesNames() {
			mark := "[ ]"
			if t.chart.IsActive(name) {
				mark = "[x]"
			}
			style := t.styles.main
			if i == t.seriesCursor {
				style = t.styles.selection
			}
			n := drawText(s, x+1, y, w-x-1, mark+" "+name, style)
			t.layout.series = append(t.layout.series, span{pos: x + 1, size: n, index: i})
			x += n + 1
			if x >= w {
				break
			}
		}
	}

	top := 4
	if top >= viewHeight {
		return
	}
	rows := t.chart.Preview(t.data, w, viewHeight-top)
	if rows == nil {
		drawText(s, 1, top, w-1, t.loc.Get("no_data"), t.styles.band)
		return
	}
	palette := t.chart.PaletteHex()
	for i, row := range rows {
		x := 0
		for _, seg := range row {
			style := t.styles.main
			if seg.Color >= 0 && len(palette) > 0 {
				style = style.Foreground(parseColor(palette[seg.Color%len(palette)], tcell.ColorDefault))
			}
			x += drawText(s, x, top+i, w-x, seg.Text, style)
		}
	}
}

// chartSummary lists the chart options on one line.
func (t *Table) chartSummary() string {
	var parts []string
	if title := t.chart.Title(); title != "" {
		parts = append(parts, title)
	}
	if t.chart.Stacked() {
		parts = append(parts, t.loc.Get("stacked"))
	}
	onOff := func(v bool) string {
		if v {
			return "on"
		}
		return "off"
	}
	parts = append(parts,
		"grid "+onOff(t.chart.GridVisible()),
		"values "+onOff(t.chart.ValueVisible()),
		"palette "+t.chart.PaletteName(),
	)
	if t.chart.Type() == render.People {
		parts = append(parts, "shape "+t.chart.PeopleShape())
	}
	return " " + strings.Join(parts, " | ")
}

func (t *Table) renderStatusline(s tcell.Screen, w, y int) {
	page := t.loc.Get("page_" + t.page.String())
	var mode string
	switch t.mode {
	case ModeEdit:
		mode = t.loc.Get("mode_edit")
	case ModeCommand:
		mode = t.loc.Get("mode_command")
	default:
		mode = t.loc.Get("mode_view")
	}
	dirty := ""
	if t.dirty {
		dirty = "*"
	}
	left := fmt.Sprintf(" %s | %s%s ", strings.ToUpper(mode), page, dirty)

	right := ""
	if rect, ok := t.sel.Highlight(); ok && t.page == PageData {
		start := grid.RenderIndex{Row: rect.Top, Col: rect.Left}
		end := grid.RenderIndex{Row: rect.Bottom, Col: rect.Right}
		right = " " + start.String()
		if start != end {
			right += ":" + end.String()
		}
		right += " "
	} else if t.page == PageChart {
		right = " " + t.loc.Get("chart_"+string(t.chart.Type())) + " "
	}

	line := composeStatusLine(left, right, w)
	for x, r := range line {
		if x >= w {
			break
		}
		s.SetContent(x, y, r, nil, t.styles.status)
	}
}

// renderCommandline draws the command being typed, or the last status
// message. It returns the cursor column.
func (t *Table) renderCommandline(s tcell.Screen, w, y int) int {
	clearLine(s, y, w, t.styles.command)
	if t.mode == ModeCommand {
		text := append([]rune{':'}, t.cmd...)
		drawText(s, 0, y, w, string(text), t.styles.command)
		return runewidth.StringWidth(string(text[:t.cmdCursor+1]))
	}
	style := t.styles.command
	if t.statusErr {
		style = t.styles.err
	}
	drawText(s, 0, y, w, t.status, style)
	return -1
}

func clearLine(s tcell.Screen, y, w int, style tcell.Style) {
	fill(s, 0, y, w, style)
}

func fill(s tcell.Screen, x, y, w int, style tcell.Style) {
	for i := 0; i < w; i++ {
		s.SetContent(x+i, y, ' ', nil, style)
	}
}

// drawText writes text clipped to width cells and returns the number of
// cells used.
func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) int {
	if width <= 0 {
		return 0
	}
	used := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if used+rw > width {
			break
		}
		s.SetContent(x+used, y, r, nil, style)
		used += rw
	}
	return used
}

func drawCentered(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	fill(s, x, y, width, style)
	n := runewidth.StringWidth(text)
	drawText(s, x+max((width-n)/2, 0), y, width, text, style)
}

func composeStatusLine(left, right string, width int) []rune {
	if width <= 0 {
		return nil
	}
	leftRunes := []rune(left)
	rightRunes := []rune(right)
	if len(leftRunes)+len(rightRunes) > width {
		if len(rightRunes) >= width {
			rightRunes = rightRunes[len(rightRunes)-width:]
			leftRunes = nil
		} else {
			leftRunes = leftRunes[:width-len(rightRunes)]
		}
	}
	line := make([]rune, 0, width)
	line = append(line, leftRunes...)
	for i := len(leftRunes) + len(rightRunes); i < width; i++ {
		line = append(line, ' ')
	}
	return append(line, rightRunes...)
}
