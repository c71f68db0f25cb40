package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/kobzarvs/qchart/internal/chartdata"
)

func sampleData() *chartdata.Data {
	d := chartdata.New()
	d.SetChartData([][]string{
		{"", "Q1", "Q2", "Q3"},
		{"North", "10", "20", "30"},
		{"South", "5", "15", "-2"},
	})
	return d
}

func TestParseTypeAndCycle(t *testing.T) {
	if got, err := ParseType("PIE"); err != nil || got != Pie {
		t.Fatalf("unexpected %v %v", got, err)
	}
	if _, err := ParseType("radar"); err == nil {
		t.Fatalf("expected error")
	}
	if Column.Next(-1) != People || People.Next(1) != Column || Bar.Next(1) != Line {
		t.Fatalf("unexpected gallery order")
	}
}

func TestSetPalette(t *testing.T) {
	r := New(Column)
	if err := r.SetPalette("warm", nil); err != nil || r.PaletteName() != "warm" {
		t.Fatalf("select warm: %v", err)
	}
	if err := r.SetPalette("custom", []string{"#112233", "#abc"}); err != nil {
		t.Fatalf("custom palette: %v", err)
	}
	if len(r.palette) != 2 {
		t.Fatalf("expected two colors, got %d", len(r.palette))
	}
	if err := r.SetPalette("custom", []string{"red"}); err == nil {
		t.Fatalf("expected invalid color error")
	}
	if err := r.SetPalette("nope", nil); err == nil {
		t.Fatalf("expected unknown palette error")
	}
	if r.PaletteName() != "custom" {
		t.Fatalf("failed selection must keep previous palette")
	}
}

func TestActiveSeries(t *testing.T) {
	r := New(Column)
	if !r.IsActive("anything") {
		t.Fatalf("all series are active by default")
	}
	r.SetActiveSeries([]string{"North"})
	if !r.IsActive("North") || r.IsActive("South") {
		t.Fatalf("unexpected active set")
	}
	recs := sampleData().DataRecords()
	if got := r.stackedSeries(recs); len(got) != 1 || got[0].Name != "North" {
		t.Fatalf("unexpected stacked series %+v", got)
	}
	r.SetActiveSeries(nil)
	if len(r.stackedSeries(recs)) != 2 {
		t.Fatalf("clearing restores all series")
	}
}

func TestPreviewBars(t *testing.T) {
	r := New(Column)
	r.SetTitle("Sales")
	rows := r.Preview(sampleData(), 40, 0)
	if len(rows) != 1+3*2 {
		t.Fatalf("expected title plus one row per category and series, got %d", len(rows))
	}
	if rows[0].String() != "Sales" {
		t.Fatalf("unexpected title row %q", rows[0].String())
	}
	if !strings.HasPrefix(rows[1].String(), "Q1") || !strings.HasPrefix(rows[2].String(), "  ") {
		t.Fatalf("unexpected labels %q %q", rows[1].String(), rows[2].String())
	}
	// Q3 North is the largest value and fills the bar area.
	longest := strings.Count(rows[5].String(), "█")
	for _, row := range rows[1:] {
		if strings.Count(row.String(), "█") > longest {
			t.Fatalf("bar longer than the maximum: %q", row.String())
		}
	}
	if strings.Count(rows[6].String(), "█") != 0 {
		t.Fatalf("negative values draw no bar: %q", rows[6].String())
	}
}

func TestPreviewStackedUsesActiveSeries(t *testing.T) {
	r := New(Bar)
	r.SetStacked(true)
	r.SetValueVisible(true)
	r.SetActiveSeries([]string{"South"})
	rows := r.Preview(sampleData(), 40, 0)
	if len(rows) != 3 {
		t.Fatalf("expected one row per category, got %d", len(rows))
	}
	for _, seg := range rows[0] {
		if seg.Color > 0 {
			t.Fatalf("only one series is stacked, got color %d", seg.Color)
		}
	}
	if !strings.HasSuffix(rows[0].String(), " 5") {
		t.Fatalf("expected value suffix, got %q", rows[0].String())
	}
}

func TestPreviewPieAndPeople(t *testing.T) {
	r := New(Pie)
	rows := r.Preview(sampleData(), 30, 0)
	if len(rows) != 3 || !strings.HasSuffix(rows[0].String(), "17%") {
		t.Fatalf("unexpected pie rows %v", rows)
	}

	r.SetType(People)
	r.SetPeopleShape("star")
	r.SetPeopleShape("dragon")
	rows = r.Preview(sampleData(), 30, 2)
	if len(rows) != 2 || !strings.Contains(rows[0].String(), "★") {
		t.Fatalf("unexpected people rows %v", rows)
	}
}

func TestPreviewEmpty(t *testing.T) {
	if rows := New(Line).Preview(chartdata.New(), 40, 10); rows != nil {
		t.Fatalf("expected no rows, got %v", rows)
	}
}

func TestDrawFormats(t *testing.T) {
	for _, kind := range Types {
		for _, f := range []Format{PNG, SVG} {
			r := New(kind)
			r.SetTitle("Sales")
			r.SetSize(400, 300)
			var buf bytes.Buffer
			if err := r.Draw(&buf, sampleData(), f); err != nil {
				t.Fatalf("%s/%s: %v", kind, f, err)
			}
			if f == PNG && !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
				t.Fatalf("%s: expected png output", kind)
			}
			if f == SVG && !bytes.Contains(buf.Bytes(), []byte("<svg")) {
				t.Fatalf("%s: expected svg output", kind)
			}
		}
	}
}

func TestDrawNoData(t *testing.T) {
	var buf bytes.Buffer
	if err := New(Column).Draw(&buf, chartdata.New(), PNG); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if err := New(People).Draw(&buf, chartdata.New(), PNG); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func dataOf(m [][]string, columnCategory bool) *chartdata.Data {
	d := chartdata.New()
	d.SetChartData(m)
	d.SetColumnCategory(columnCategory)
	return d
}

func TestDrawDegenerateData(t *testing.T) {
	shapes := []struct {
		name       string
		data       *chartdata.Data
		noPositive bool
	}{
		{"zeros", dataOf([][]string{{"", "Q1", "Q2"}, {"North", "0", "0"}, {"South", "0", "0"}}, true), true},
		{"negative", dataOf([][]string{{"", "Q1", "Q2"}, {"North", "-4", "-1"}, {"South", "-2", "-8"}}, true), true},
		{"mixed signs", dataOf([][]string{{"", "Q1", "Q2"}, {"North", "5", "-3"}, {"South", "-2", "4"}}, true), false},
		{"one category", dataOf([][]string{{"", "North", "South"}, {"Q1", "7", "3"}}, false), false},
		{"one value", dataOf([][]string{{"", "North"}, {"Q1", "7"}}, false), false},
		{"flat", dataOf([][]string{{"", "Q1", "Q2"}, {"North", "5", "5"}}, true), false},
	}
	for _, shape := range shapes {
		for _, kind := range Types {
			for _, stacked := range []bool{false, true} {
				for _, f := range []Format{PNG, SVG} {
					r := New(kind)
					r.SetStacked(stacked)
					r.SetValueVisible(true)
					r.SetSize(400, 300)
					var buf bytes.Buffer
					err := r.Draw(&buf, shape.data, f)
					if shape.noPositive && (kind == Pie || kind == People) {
						if !errors.Is(err, ErrNoData) {
							t.Fatalf("%s %s stacked=%v: expected ErrNoData, got %v", shape.name, kind, stacked, err)
						}
						continue
					}
					if err != nil {
						t.Fatalf("%s %s stacked=%v %s: %v", shape.name, kind, stacked, f, err)
					}
					if buf.Len() == 0 {
						t.Fatalf("%s %s stacked=%v %s: empty output", shape.name, kind, stacked, f)
					}
				}
			}
		}
	}
}

func TestDrawNoActiveSeries(t *testing.T) {
	for _, kind := range []Type{Column, Bar, Line, Area} {
		r := New(kind)
		r.SetStacked(true)
		r.SetActiveSeries([]string{"Nobody"})
		var buf bytes.Buffer
		if err := r.Draw(&buf, sampleData(), PNG); !errors.Is(err, ErrNoData) {
			t.Fatalf("%s: expected ErrNoData, got %v", kind, err)
		}
	}
}

func TestValueRange(t *testing.T) {
	tests := []struct {
		name     string
		vs       []float64
		withZero bool
		lo, hi   float64
	}{
		{"empty", nil, true, 0, 1},
		{"zeros", []float64{0, 0}, true, 0, 1},
		{"negative with zero", []float64{-4, -1}, true, -4, 0},
		{"single value", []float64{5}, false, 5, 5},
		{"spread", []float64{12, 87}, false, 12, 87},
	}
	for _, tt := range tests {
		got := valueRange(tt.vs, tt.withZero)
		if !(got.Min <= tt.lo && got.Max >= tt.hi && got.Max > got.Min) {
			t.Fatalf("%s: range [%v, %v] does not cover [%v, %v]", tt.name, got.Min, got.Max, tt.lo, tt.hi)
		}
	}
}
