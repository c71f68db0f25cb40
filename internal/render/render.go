// Package render draws chart records, either exported through go-chart or as
// a text preview for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/kobzarvs/qchart/internal/chartdata"
)

type Type string

const (
	Column Type = "column"
	Bar    Type = "bar"
	Line   Type = "line"
	Area   Type = "area"
	Pie    Type = "pie"
	People Type = "people"
)

// Types is the gallery order.
var Types = []Type{Column, Bar, Line, Area, Pie, People}

func ParseType(s string) (Type, error) {
	for _, t := range Types {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown chart type %q", s)
}

// Next returns the gallery neighbour of t, wrapping around.
func (t Type) Next(step int) Type {
	for i, c := range Types {
		if c == t {
			n := len(Types)
			return Types[((i+step)%n+n)%n]
		}
	}
	return Column
}

type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Source provides the records a chart is drawn from.
type Source interface {
	DataRecords() *chartdata.Records
	PeopleRecords() []chartdata.PeopleRecord
}

// Renderer holds the display options of one chart.
type Renderer struct {
	kind        Type
	title       string
	xLabel      string
	yLabel      string
	paletteName string
	palette     []drawing.Color
	paletteHex  []string
	grid        bool
	values      bool
	stacked     bool
	active      map[string]bool
	width       int
	height      int
	peopleShape string
}

func New(kind Type) *Renderer {
	r := &Renderer{
		kind:        kind,
		grid:        true,
		width:       800,
		height:      480,
		peopleShape: "person",
	}
	_ = r.SetPalette(DefaultPalette, nil)
	return r
}

func (r *Renderer) Type() Type             { return r.kind }
func (r *Renderer) SetType(t Type)         { r.kind = t }
func (r *Renderer) Title() string          { return r.title }
func (r *Renderer) SetTitle(title string)  { r.title = title }
func (r *Renderer) Stacked() bool          { return r.stacked }
func (r *Renderer) SetStacked(v bool)      { r.stacked = v }
func (r *Renderer) GridVisible() bool      { return r.grid }
func (r *Renderer) SetGridVisible(v bool)  { r.grid = v }
func (r *Renderer) ValueVisible() bool     { return r.values }
func (r *Renderer) SetValueVisible(v bool) { r.values = v }
func (r *Renderer) PaletteName() string    { return r.paletteName }
func (r *Renderer) PeopleShape() string    { return r.peopleShape }

func (r *Renderer) AxisLabels() (x, y string) { return r.xLabel, r.yLabel }

func (r *Renderer) SetAxisLabels(x, y string) {
	r.xLabel, r.yLabel = x, y
}

func (r *Renderer) SetSize(width, height int) {
	if width > 0 {
		r.width = width
	}
	if height > 0 {
		r.height = height
	}
}

func (r *Renderer) SetPeopleShape(shape string) {
	if _, ok := shapes[shape]; ok {
		r.peopleShape = shape
	}
}

// SetActiveSeries limits stacking to the named series. No names means all.
func (r *Renderer) SetActiveSeries(names []string) {
	if len(names) == 0 {
		r.active = nil
		return
	}
	r.active = make(map[string]bool, len(names))
	for _, n := range names {
		r.active[n] = true
	}
}

// IsActive reports whether the named series takes part in stacking.
func (r *Renderer) IsActive(name string) bool {
	return r.active == nil || r.active[name]
}

// stackedSeries is the subset of series drawn when stacking.
func (r *Renderer) stackedSeries(recs *chartdata.Records) []chartdata.Series {
	var out []chartdata.Series
	for _, s := range recs.Series {
		if r.IsActive(s.Name) {
			out = append(out, s)
		}
	}
	return out
}

func (r *Renderer) color(i int) drawing.Color {
	return r.palette[i%len(r.palette)]
}
