package grid

import "github.com/kobzarvs/qchart/internal/sheetclip"

// Rendered size limits: the view always shows at least this many content
// rows or columns, plus one spare row and column to type into.
const (
	minRowsWithHeader    = 4
	minRowsWithoutHeader = 5
)

// ToGrid converts a render index to the logical index it displays. Band
// cells (row 0 or column 0) map outside the content.
func (g *Grid) ToGrid(at RenderIndex) GridIndex {
	i := GridIndex{Row: at.Row - 1, Col: at.Col - 1}
	if !g.showHeaderRow {
		i.Row++
	}
	if !g.showHeaderColumn {
		i.Col++
	}
	return i
}

// ToRender converts a logical index to its render index. ok is false for
// cells of a hidden header band.
func (g *Grid) ToRender(at GridIndex) (RenderIndex, bool) {
	if (!g.showHeaderRow && at.Row == 0) || (!g.showHeaderColumn && at.Col == 0) {
		return RenderIndex{}, false
	}
	r := RenderIndex{Row: at.Row, Col: at.Col}
	if g.showHeaderRow {
		r.Row++
	}
	if g.showHeaderColumn {
		r.Col++
	}
	return r, true
}

// RenderCell returns the value displayed at a render index.
func (g *Grid) RenderCell(at RenderIndex) string {
	if at.Row < 1 || at.Col < 1 {
		return ""
	}
	return g.Cell(g.ToGrid(at))
}

// SetRenderCell writes the cell displayed at a render index.
func (g *Grid) SetRenderCell(at RenderIndex, v string) {
	if at.Row < 1 || at.Col < 1 {
		return
	}
	g.SetCell(g.ToGrid(at), v)
}

// RenderSize returns the number of rendered rows and columns, bands
// included. The view never shrinks below a 7x7 table and always keeps a
// spare row and column past the data.
func (g *Grid) RenderSize() (rows, cols int) {
	return renderExtent(g.Rows()-1, g.showHeaderRow), renderExtent(g.Cols()-1, g.showHeaderColumn)
}

func renderExtent(data int, header bool) int {
	if header {
		return max(data, minRowsWithHeader) + 3
	}
	return max(data, minRowsWithoutHeader) + 2
}

// Editable reports whether the cell at a render index accepts input. Bands
// are never editable and neither is the corner shared by both header bands.
func (g *Grid) Editable(at RenderIndex) bool {
	if at.Row < 1 || at.Col < 1 {
		return false
	}
	rows, cols := g.RenderSize()
	if at.Row >= rows || at.Col >= cols {
		return false
	}
	if g.showHeaderRow && g.showHeaderColumn && at.Row == 1 && at.Col == 1 {
		return false
	}
	return true
}

// ClearRange blanks the editable cells of a render rectangle.
func (g *Grid) ClearRange(rect Rect) {
	for r := rect.Top; r <= rect.Bottom; r++ {
		for c := rect.Left; c <= rect.Right; c++ {
			at := RenderIndex{Row: r, Col: c}
			if !g.Editable(at) {
				continue
			}
			idx := g.ToGrid(at)
			if idx.Row < g.Rows() && idx.Col < g.Cols() {
				g.cells[idx.Row][idx.Col] = ""
			}
		}
	}
}

// Paste decodes clipboard text into the selection anchored at sel's top left
// corner. The target is the larger of the selection and the pasted block in
// each direction; a block smaller than the target is tiled. It returns the
// target rectangle.
func (g *Grid) Paste(text string, sel Rect) Rect {
	src := sheetclip.Parse(text)
	srcRows := len(src)
	srcCols := 0
	for _, row := range src {
		srcCols = max(srcCols, len(row))
	}
	if srcRows == 0 || srcCols == 0 {
		return sel
	}
	target := Rect{
		Top:    sel.Top,
		Left:   sel.Left,
		Bottom: sel.Top + max(sel.Rows(), srcRows) - 1,
		Right:  sel.Left + max(sel.Cols(), srcCols) - 1,
	}
	for r := target.Top; r <= target.Bottom; r++ {
		line := src[(r-target.Top)%srcRows]
		for c := target.Left; c <= target.Right; c++ {
			at := RenderIndex{Row: r, Col: c}
			if g.showHeaderRow && g.showHeaderColumn && r == 1 && c == 1 {
				continue
			}
			v := ""
			if i := (c - target.Left) % srcCols; i < len(line) {
				v = line[i]
			}
			g.SetRenderCell(at, v)
		}
	}
	return target
}
