// Package grid holds the chart data table edited in the grid view, the two
// coordinate spaces used to address it and its header band bookkeeping.
package grid

import (
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/qchart/internal/sheetclip"
)

// MaxCellLength caps the number of characters stored in one cell.
const MaxCellLength = 255

// Grid is the single source of truth for the edited table. The logical table
// always carries the header row and header column; while a header band is
// hidden its values live in a cache and the band itself is blank and not
// rendered.
type Grid struct {
	cells            [][]string
	showHeaderRow    bool
	showHeaderColumn bool
	// cachedHeaderRow is indexed by logical column, cachedHeaderColumn by
	// logical row. Both are nil while the matching band is shown.
	cachedHeaderRow    []string
	cachedHeaderColumn []string
}

// New returns an empty grid with both header bands shown.
func New() *Grid {
	return &Grid{
		cells:            [][]string{{""}},
		showHeaderRow:    true,
		showHeaderColumn: true,
	}
}

// FromMatrix builds a grid from host or clipboard data. The first row and
// column are the header bands.
func FromMatrix(m [][]string) *Grid {
	g := New()
	g.Replace(m)
	return g
}

func (g *Grid) Rows() int { return len(g.cells) }

func (g *Grid) Cols() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}

func (g *Grid) ShowHeaderRow() bool    { return g.showHeaderRow }
func (g *Grid) ShowHeaderColumn() bool { return g.showHeaderColumn }

// Cell returns the value at a logical index, or "" outside the table.
func (g *Grid) Cell(at GridIndex) string {
	if at.Row < 0 || at.Row >= g.Rows() || at.Col < 0 || at.Col >= g.Cols() {
		return ""
	}
	return g.cells[at.Row][at.Col]
}

// SetCell stores v at a logical index, growing the table as needed.
func (g *Grid) SetCell(at GridIndex, v string) {
	if at.Row < 0 || at.Col < 0 {
		return
	}
	g.grow(at.Row+1, at.Col+1)
	g.cells[at.Row][at.Col] = truncate(v)
}

// Matrix returns a copy of the logical table.
func (g *Grid) Matrix() [][]string {
	out := make([][]string, len(g.cells))
	for r, row := range g.cells {
		out[r] = append([]string(nil), row...)
	}
	return out
}

// Replace swaps in new content. Ragged input is padded; hidden header bands
// are cached from the new content.
func (g *Grid) Replace(m [][]string) {
	cols := 1
	for _, row := range m {
		if len(row) > cols {
			cols = len(row)
		}
	}
	rows := len(m)
	if rows == 0 {
		rows = 1
	}
	g.cells = make([][]string, rows)
	for r := range g.cells {
		g.cells[r] = make([]string, cols)
		if r < len(m) {
			for c, v := range m[r] {
				g.cells[r][c] = truncate(v)
			}
		}
	}
	g.cachedHeaderRow = nil
	g.cachedHeaderColumn = nil
	if !g.showHeaderRow {
		g.showHeaderRow = true
		g.SetShowHeaderRow(false)
	}
	if !g.showHeaderColumn {
		g.showHeaderColumn = true
		g.SetShowHeaderColumn(false)
	}
}

// Clear blanks every cell, cached header values included, keeping the shape.
func (g *Grid) Clear() {
	for _, row := range g.cells {
		for c := range row {
			row[c] = ""
		}
	}
	for i := range g.cachedHeaderRow {
		g.cachedHeaderRow[i] = ""
	}
	for i := range g.cachedHeaderColumn {
		g.cachedHeaderColumn[i] = ""
	}
}

// IsEmpty reports whether every cell is blank.
func (g *Grid) IsEmpty() bool {
	for _, row := range g.cells {
		for _, v := range row {
			if v != "" {
				return false
			}
		}
	}
	return true
}

func (g *Grid) grow(rows, cols int) {
	if cols < g.Cols() {
		cols = g.Cols()
	}
	if cols > g.Cols() {
		for r := range g.cells {
			g.cells[r] = append(g.cells[r], make([]string, cols-len(g.cells[r]))...)
		}
		if g.cachedHeaderRow != nil {
			g.cachedHeaderRow = append(g.cachedHeaderRow, make([]string, cols-len(g.cachedHeaderRow))...)
		}
	}
	for len(g.cells) < rows {
		g.cells = append(g.cells, make([]string, cols))
		if g.cachedHeaderColumn != nil {
			g.cachedHeaderColumn = append(g.cachedHeaderColumn, "")
		}
	}
}

func truncate(v string) string {
	if len(v) <= MaxCellLength {
		return v
	}
	runes := []rune(v)
	if len(runes) <= MaxCellLength {
		return v
	}
	return string(runes[:MaxCellLength])
}

// DisplayWidth is the terminal width of the widest value in a logical column.
func (g *Grid) DisplayWidth(col int) int {
	w := 0
	for _, row := range g.cells {
		if col < len(row) {
			if n := runewidth.StringWidth(row[col]); n > w {
				w = n
			}
		}
	}
	return w
}

// Copy encodes the cells of a render rectangle as clipboard text.
func (g *Grid) Copy(rect Rect) string {
	rows := make([][]string, 0, rect.Rows())
	for r := rect.Top; r <= rect.Bottom; r++ {
		row := make([]string, 0, rect.Cols())
		for c := rect.Left; c <= rect.Right; c++ {
			row = append(row, g.RenderCell(RenderIndex{Row: r, Col: c}))
		}
		rows = append(rows, row)
	}
	return sheetclip.Stringify(rows)
}
