package grid

import (
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func sample() *Grid {
	return FromMatrix([][]string{
		{"", "A", "B"},
		{"1", "x", "10"},
		{"2", "y", "20"},
	})
}

func TestColumnLabel(t *testing.T) {
	spot := map[int]string{1: "A", 2: "B", 26: "Z", 27: "AA", 28: "AB", 52: "AZ", 53: "BA", 702: "ZZ", 703: "AAA"}
	for n, want := range spot {
		if got := ColumnLabel(n); got != want {
			t.Fatalf("ColumnLabel(%d) = %q, want %q", n, got, want)
		}
	}
	seen := make(map[string]bool)
	prev := ""
	for n := 1; n <= 1000; n++ {
		label := ColumnLabel(n)
		if seen[label] {
			t.Fatalf("ColumnLabel(%d) = %q collides", n, label)
		}
		seen[label] = true
		if len(label) == len(prev) && label <= prev {
			t.Fatalf("ColumnLabel(%d) = %q not after %q", n, label, prev)
		}
		if len(label) < len(prev) {
			t.Fatalf("ColumnLabel(%d) = %q shorter than %q", n, label, prev)
		}
		if name, err := excelize.ColumnNumberToName(n); err != nil || name != label {
			t.Fatalf("ColumnLabel(%d) = %q, excelize names it %q (%v)", n, label, name, err)
		}
		back, err := ParseColumnLabel(label)
		if err != nil || back != n {
			t.Fatalf("ParseColumnLabel(%q) = %d, %v, want %d", label, back, err, n)
		}
		prev = label
	}
}

func TestParseCellRef(t *testing.T) {
	got, err := ParseCellRef("ab12")
	if err != nil {
		t.Fatalf("ParseCellRef error: %v", err)
	}
	if want := (RenderIndex{Row: 12, Col: 28}); got != want {
		t.Fatalf("ParseCellRef = %+v, want %+v", got, want)
	}
	if got.String() != "AB12" {
		t.Fatalf("String = %q", got.String())
	}
	for ref, want := range map[string]RenderIndex{
		"B3":    {Row: 3, Col: 2},
		" c4 ":  {Row: 4, Col: 3},
		"$D$10": {Row: 10, Col: 4},
	} {
		if got, err := ParseCellRef(ref); err != nil || got != want {
			t.Fatalf("ParseCellRef(%q) = %+v, %v, want %+v", ref, got, err, want)
		}
	}
	for _, bad := range []string{"", "12", "A", "A0", "1A", "A1B", "B-2"} {
		if _, err := ParseCellRef(bad); err == nil {
			t.Fatalf("ParseCellRef(%q) expected error", bad)
		}
	}
}

func TestSetCellGrowsAndTruncates(t *testing.T) {
	g := New()
	g.SetCell(GridIndex{Row: 2, Col: 3}, strings.Repeat("é", 300))
	if g.Rows() != 3 || g.Cols() != 4 {
		t.Fatalf("size = %dx%d, want 3x4", g.Rows(), g.Cols())
	}
	for _, row := range g.Matrix() {
		if len(row) != 4 {
			t.Fatalf("ragged row %q", row)
		}
	}
	if n := len([]rune(g.Cell(GridIndex{Row: 2, Col: 3}))); n != MaxCellLength {
		t.Fatalf("cell length = %d, want %d", n, MaxCellLength)
	}
	if g.Cell(GridIndex{Row: 9, Col: 9}) != "" {
		t.Fatalf("out of range cell not empty")
	}
}

func TestReplacePadsRaggedRows(t *testing.T) {
	g := FromMatrix([][]string{{"a"}, {"b", "c", "d"}})
	want := [][]string{{"a", "", ""}, {"b", "c", "d"}}
	if got := g.Matrix(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Matrix = %q, want %q", got, want)
	}
}

func TestRenderMapping(t *testing.T) {
	g := sample()
	if got := g.RenderCell(RenderIndex{Row: 1, Col: 2}); got != "A" {
		t.Fatalf("render (1,2) = %q, want A", got)
	}
	g.SetShowHeaderRow(false)
	if got := g.RenderCell(RenderIndex{Row: 1, Col: 2}); got != "x" {
		t.Fatalf("hidden header row: render (1,2) = %q, want x", got)
	}
	if _, ok := g.ToRender(GridIndex{Row: 0, Col: 1}); ok {
		t.Fatalf("hidden header row should not render")
	}
	g.SetShowHeaderColumn(false)
	if got := g.RenderCell(RenderIndex{Row: 2, Col: 2}); got != "20" {
		t.Fatalf("both hidden: render (2,2) = %q, want 20", got)
	}
	at, ok := g.ToRender(GridIndex{Row: 2, Col: 2})
	if !ok || at != (RenderIndex{Row: 2, Col: 2}) {
		t.Fatalf("ToRender = %+v, %v", at, ok)
	}
}

func TestRenderSize(t *testing.T) {
	g := New()
	rows, cols := g.RenderSize()
	if rows != 7 || cols != 7 {
		t.Fatalf("empty render size = %dx%d, want 7x7", rows, cols)
	}
	g.SetShowHeaderRow(false)
	g.SetShowHeaderColumn(false)
	rows, cols = g.RenderSize()
	if rows != 7 || cols != 7 {
		t.Fatalf("hidden headers render size = %dx%d, want 7x7", rows, cols)
	}
	g = New()
	g.SetCell(GridIndex{Row: 9, Col: 2}, "v")
	rows, _ = g.RenderSize()
	if rows != 12 {
		t.Fatalf("render rows = %d, want 12", rows)
	}
}

func TestEditable(t *testing.T) {
	g := sample()
	cases := []struct {
		at   RenderIndex
		want bool
	}{
		{RenderIndex{Row: 0, Col: 2}, false},
		{RenderIndex{Row: 2, Col: 0}, false},
		{RenderIndex{Row: 1, Col: 1}, false},
		{RenderIndex{Row: 1, Col: 2}, true},
		{RenderIndex{Row: 6, Col: 6}, true},
		{RenderIndex{Row: 7, Col: 1}, false},
	}
	for _, c := range cases {
		if got := g.Editable(c.at); got != c.want {
			t.Fatalf("Editable(%+v) = %v, want %v", c.at, got, c.want)
		}
	}
	g.SetShowHeaderColumn(false)
	if !g.Editable(RenderIndex{Row: 1, Col: 1}) {
		t.Fatalf("corner should be editable once a header band is hidden")
	}
}

func TestHeaderToggleRestores(t *testing.T) {
	g := sample()
	orig := g.Matrix()
	g.SetShowHeaderRow(false)
	if got := g.CachedHeaderRow(); !reflect.DeepEqual(got, []string{"", "A", "B"}) {
		t.Fatalf("cached header row = %q", got)
	}
	if got := g.Matrix()[0]; !reflect.DeepEqual(got, []string{"", "", ""}) {
		t.Fatalf("hidden header row not cleared: %q", got)
	}
	g.SetShowHeaderRow(false)
	g.SetShowHeaderRow(true)
	g.SetShowHeaderRow(true)
	if got := g.Matrix(); !reflect.DeepEqual(got, orig) {
		t.Fatalf("after toggle = %q, want %q", got, orig)
	}

	g.SetShowHeaderColumn(false)
	g.SetShowHeaderColumn(true)
	if got := g.Matrix(); !reflect.DeepEqual(got, orig) {
		t.Fatalf("after column toggle = %q, want %q", got, orig)
	}
}

func TestHeaderCornerSurvivesCrossedToggles(t *testing.T) {
	g := FromMatrix([][]string{{"corner", "A"}, {"1", "x"}})
	orig := g.Matrix()
	g.SetShowHeaderRow(false)
	g.SetShowHeaderColumn(false)
	g.SetShowHeaderRow(true)
	g.SetShowHeaderColumn(true)
	if got := g.Matrix(); !reflect.DeepEqual(got, orig) {
		t.Fatalf("after crossed toggles = %q, want %q", got, orig)
	}
	g.SetShowHeaderColumn(false)
	g.SetShowHeaderRow(false)
	g.SetShowHeaderColumn(true)
	g.SetShowHeaderRow(true)
	if got := g.Matrix(); !reflect.DeepEqual(got, orig) {
		t.Fatalf("after reversed toggles = %q, want %q", got, orig)
	}
}

func TestStructuralEditsKeepCachesAligned(t *testing.T) {
	g := sample()
	g.SetShowHeaderColumn(false)
	if !g.InsertRow(2) {
		t.Fatalf("InsertRow failed")
	}
	if got := g.CachedHeaderColumn(); !reflect.DeepEqual(got, []string{"", "1", "", "2"}) {
		t.Fatalf("cached header column = %q", got)
	}
	if !g.DeleteRow(1) {
		t.Fatalf("DeleteRow failed")
	}
	g.SetShowHeaderColumn(true)
	want := [][]string{{"", "A", "B"}, {"", "", ""}, {"2", "y", "20"}}
	if got := g.Matrix(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Matrix = %q, want %q", got, want)
	}

	g.SetShowHeaderRow(false)
	g.InsertColumn(1)
	g.DeleteColumn(3)
	g.SetShowHeaderRow(true)
	want = [][]string{{"", "", "A"}, {"", "", ""}, {"2", "", "y"}}
	if got := g.Matrix(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Matrix = %q, want %q", got, want)
	}
	if g.InsertRow(0) || g.DeleteRow(0) || g.DeleteColumn(0) || g.DeleteRow(10) {
		t.Fatalf("header band or out of range edit should be refused")
	}
}

func TestClearRangeSkipsBands(t *testing.T) {
	g := sample()
	g.ClearRange(Rect{Top: 1, Left: 1, Bottom: 3, Right: 2})
	want := [][]string{{"", "", "B"}, {"", "", "10"}, {"", "", "20"}}
	if got := g.Matrix(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Matrix = %q, want %q", got, want)
	}
}

func TestClear(t *testing.T) {
	g := sample()
	g.SetShowHeaderRow(false)
	g.Clear()
	if !g.IsEmpty() {
		t.Fatalf("grid not empty after Clear")
	}
	g.SetShowHeaderRow(true)
	if !g.IsEmpty() || g.Rows() != 3 || g.Cols() != 3 {
		t.Fatalf("Clear changed shape or kept cached headers: %q", g.Matrix())
	}
}

func TestPasteTiles(t *testing.T) {
	g := New()
	g.SetShowHeaderRow(false)
	g.SetShowHeaderColumn(false)
	target := g.Paste("a\tb\nc\td", Rect{Top: 1, Left: 1, Bottom: 4, Right: 4})
	if target != (Rect{Top: 1, Left: 1, Bottom: 4, Right: 4}) {
		t.Fatalf("target = %+v", target)
	}
	src := [][]string{{"a", "b"}, {"c", "d"}}
	for r := 1; r <= 4; r++ {
		for c := 1; c <= 4; c++ {
			got := g.RenderCell(RenderIndex{Row: r, Col: c})
			if want := src[(r-1)%2][(c-1)%2]; got != want {
				t.Fatalf("cell (%d,%d) = %q, want %q", r, c, got, want)
			}
		}
	}
}

func TestPasteGrowsFromSingleCell(t *testing.T) {
	g := sample()
	target := g.Paste("p\tq\tr\ns\tt\tu\n", Rect{Top: 3, Left: 3, Bottom: 3, Right: 3})
	if target != (Rect{Top: 3, Left: 3, Bottom: 4, Right: 5}) {
		t.Fatalf("target = %+v", target)
	}
	if g.Rows() != 4 || g.Cols() != 5 {
		t.Fatalf("size = %dx%d, want 4x5", g.Rows(), g.Cols())
	}
	if got := g.Cell(GridIndex{Row: 3, Col: 4}); got != "u" {
		t.Fatalf("cell = %q, want u", got)
	}
	if got := g.Copy(target); got != "p\tq\tr\ns\tt\tu" {
		t.Fatalf("Copy = %q", got)
	}
}

func TestPasteSkipsCorner(t *testing.T) {
	g := sample()
	g.Paste("z", Rect{Top: 1, Left: 1, Bottom: 1, Right: 2})
	if got := g.Cell(GridIndex{Row: 0, Col: 0}); got != "" {
		t.Fatalf("corner = %q, want empty", got)
	}
	if got := g.Cell(GridIndex{Row: 0, Col: 1}); got != "z" {
		t.Fatalf("header cell = %q, want z", got)
	}
}
