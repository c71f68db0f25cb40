package host

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// cellRange uses excelize's 1-based coordinates.
type cellRange struct {
	Col1, Row1, Col2, Row2 int
}

func parseRange(ref string) (cellRange, error) {
	ref = strings.ReplaceAll(strings.TrimSpace(ref), "$", "")
	a, b, ok := strings.Cut(ref, ":")
	if !ok {
		b = a
	}
	c1, r1, err := excelize.CellNameToCoordinates(a)
	if err != nil {
		return cellRange{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	c2, r2, err := excelize.CellNameToCoordinates(b)
	if err != nil {
		return cellRange{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	return cellRange{
		Col1: min(c1, c2), Row1: min(r1, r2),
		Col2: max(c1, c2), Row2: max(r1, r2),
	}, nil
}

func (r cellRange) String() string {
	a, _ := excelize.CoordinatesToCellName(r.Col1, r.Row1)
	b, _ := excelize.CoordinatesToCellName(r.Col2, r.Row2)
	return a + ":" + b
}

func (r cellRange) Absolute() string {
	a, _ := excelize.CoordinatesToCellName(r.Col1, r.Row1, true)
	b, _ := excelize.CoordinatesToCellName(r.Col2, r.Row2, true)
	return a + ":" + b
}
