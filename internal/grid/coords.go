package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// GridIndex addresses the logical table held by a Grid. Row 0 is the header
// row (series or category names across the top) and column 0 is the header
// column. Both are 0-based.
type GridIndex struct {
	Row int
	Col int
}

// RenderIndex addresses the rendered table. Row 0 is the column letter band
// and column 0 is the row number band, so content starts at (1, 1).
type RenderIndex struct {
	Row int
	Col int
}

func (r RenderIndex) String() string {
	return ColumnLabel(r.Col) + strconv.Itoa(r.Row)
}

// Rect is an inclusive rectangle of render coordinates.
type Rect struct {
	Top    int
	Left   int
	Bottom int
	Right  int
}

// RectOf returns the normalized rectangle spanned by two corners.
func RectOf(a, b RenderIndex) Rect {
	r := Rect{Top: a.Row, Left: a.Col, Bottom: b.Row, Right: b.Col}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	return r
}

func (r Rect) Rows() int { return r.Bottom - r.Top + 1 }
func (r Rect) Cols() int { return r.Right - r.Left + 1 }

func (r Rect) Contains(p RenderIndex) bool {
	return p.Row >= r.Top && p.Row <= r.Bottom && p.Col >= r.Left && p.Col <= r.Right
}

// ColumnLabel returns the spreadsheet column name of a 1-based column index:
// 1 -> A, 26 -> Z, 27 -> AA, 52 -> AZ, 53 -> BA, 703 -> AAA.
func ColumnLabel(n int) string {
	if n <= 0 {
		return ""
	}
	var buf []byte
	for n > 0 {
		n--
		buf = append(buf, byte('A'+n%26))
		n /= 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// ParseColumnLabel is the inverse of ColumnLabel.
func ParseColumnLabel(label string) (int, error) {
	n, err := excelize.ColumnNameToNumber(strings.TrimSpace(label))
	if err != nil {
		return 0, fmt.Errorf("invalid column label %q: %w", label, err)
	}
	return n, nil
}

// ParseCellRef parses a reference such as "B3" into render coordinates.
func ParseCellRef(ref string) (RenderIndex, error) {
	col, row, err := excelize.CellNameToCoordinates(strings.TrimSpace(ref))
	if err != nil {
		return RenderIndex{}, fmt.Errorf("invalid cell reference %q: %w", ref, err)
	}
	return RenderIndex{Row: row, Col: col}, nil
}
