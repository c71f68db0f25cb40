package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/kobzarvs/qchart/internal/chartdata"
)

var ErrNoData = errors.New("no chart data")

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// Draw renders the chart for src into w.
func (r *Renderer) Draw(w io.Writer, src Source, f Format) error {
	provider := chart.PNG
	if f == SVG {
		provider = chart.SVG
	}
	recs := src.DataRecords()
	if r.kind != People && (len(recs.Series) == 0 || len(recs.Categories.Data) == 0) {
		return ErrNoData
	}

	var c renderable
	switch r.kind {
	case Column, Bar:
		c = r.bars(recs)
	case Line, Area:
		c = r.lines(recs)
	case Pie:
		c = r.pie(recs)
	case People:
		c = r.people(src.PeopleRecords())
	default:
		return fmt.Errorf("unknown chart type %q", r.kind)
	}
	if c == nil {
		return ErrNoData
	}
	if err := c.Render(provider, w); err != nil {
		return fmt.Errorf("render %s chart: %w", r.kind, err)
	}
	return nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func (r *Renderer) gridStyle() chart.Style {
	if !r.grid {
		return chart.Hidden()
	}
	return chart.Style{StrokeColor: drawing.ColorFromHex("dddddd"), StrokeWidth: 1}
}

// valueRange returns a rounded axis range covering vs. The range never
// collapses to a single value.
func valueRange(vs []float64, withZero bool) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	if withZero {
		lo, hi = 0, 0
	}
	for _, v := range vs {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if math.IsInf(lo, 0) {
		lo, hi = 0, 0
	}
	if lo == hi {
		if lo == 0 {
			hi = 1
		} else {
			pad := math.Abs(lo) / 2
			lo, hi = lo-pad, hi+pad
		}
	}
	step := chart.GetRoundToForDelta(hi - lo)
	return &chart.ContinuousRange{Min: chart.RoundDown(lo, step), Max: chart.RoundUp(hi, step)}
}

// categoryTicks places labels at 0..n-1 and pads the axis by half a slot on
// both sides so a single category still spans a range.
func categoryTicks(labels []string) []chart.Tick {
	n := len(labels)
	ticks := make([]chart.Tick, 0, n+2)
	ticks = append(ticks, chart.Tick{Value: -0.5})
	for i, l := range labels {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: l})
	}
	return append(ticks, chart.Tick{Value: float64(n) - 0.5})
}

// barBox is one filled rectangle in data space: [lo, hi] along the category
// axis and [from, to] along the value axis.
type barBox struct {
	lo, hi   float64
	from, to float64
	color    drawing.Color
	label    string
}

type barLayout struct {
	categories []string
	boxes      []barBox
	horizontal bool
	values     *chart.ContinuousRange
}

// bars lays out column (vertical) and bar (horizontal) charts. Unstacked
// series sit side by side inside a category slot; stacked series grow away
// from zero, positive and negative values separately.
func (r *Renderer) bars(recs *chartdata.Records) renderable {
	series := recs.Series
	if r.stacked {
		series = r.stackedSeries(recs)
	}
	if len(series) == 0 {
		return nil
	}
	l := &barLayout{categories: recs.Categories.Data, horizontal: r.kind == Bar}
	for ci := range recs.Categories.Data {
		slot := float64(ci)
		if r.stacked {
			var pos, neg float64
			for si, s := range series {
				v := s.Data[ci]
				b := barBox{lo: slot - 0.35, hi: slot + 0.35, color: r.color(si), label: r.valueLabel(v)}
				if v >= 0 {
					b.from, b.to = pos, pos+v
					pos += v
				} else {
					b.from, b.to = neg, neg+v
					neg += v
				}
				l.boxes = append(l.boxes, b)
			}
			continue
		}
		width := 0.8 / float64(len(series))
		for si, s := range series {
			lo := slot - 0.4 + float64(si)*width
			l.boxes = append(l.boxes, barBox{
				lo: lo, hi: lo + width,
				to:    s.Data[ci],
				color: r.color(si),
				label: r.valueLabel(s.Data[ci]),
			})
		}
	}

	var legend []chart.Series
	for si, s := range series {
		legend = append(legend, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: []float64{0},
			YValues: []float64{0},
			Style:   chart.Style{StrokeColor: r.color(si), StrokeWidth: 4},
		})
	}
	c := r.barChart(l, legend)
	if len(series) > 1 {
		c.Elements = append(c.Elements, chart.Legend(c))
	}
	return c
}

func (r *Renderer) label(name string, v float64) string {
	if !r.values {
		return name
	}
	return name + " " + formatValue(v)
}

func (r *Renderer) valueLabel(v float64) string {
	if !r.values {
		return ""
	}
	return formatValue(v)
}

// barChart wraps a layout in a chart whose axes match the layout's data
// space. The series only feed the legend; the boxes are drawn as an element.
func (r *Renderer) barChart(l *barLayout, series []chart.Series) *chart.Chart {
	var ends []float64
	for _, b := range l.boxes {
		ends = append(ends, b.from, b.to)
	}
	l.values = valueRange(ends, true)

	c := &chart.Chart{
		Title:      r.title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		Series:     series,
	}
	if l.horizontal {
		labels := make([]string, len(l.categories))
		for i, cat := range l.categories {
			labels[len(labels)-1-i] = cat
		}
		c.XAxis = chart.XAxis{Name: r.yLabel, Range: l.values, GridMajorStyle: r.gridStyle()}
		c.YAxis = chart.YAxis{Name: r.xLabel, Ticks: categoryTicks(labels)}
	} else {
		c.XAxis = chart.XAxis{Name: r.xLabel, Ticks: categoryTicks(l.categories)}
		c.YAxis = chart.YAxis{Name: r.yLabel, Range: l.values, GridMajorStyle: r.gridStyle()}
	}
	c.Elements = []chart.Renderable{l.draw}
	return c
}

func (l *barLayout) draw(r chart.Renderer, cb chart.Box, defaults chart.Style) {
	n := float64(len(l.categories))
	delta := l.values.Max - l.values.Min
	along := func(v float64, extent int) int {
		return int(math.Round((v + 0.5) / n * float64(extent)))
	}
	across := func(v float64, extent int) int {
		return int(math.Round((v - l.values.Min) / delta * float64(extent)))
	}
	text := chart.Style{FontSize: 8, FontColor: drawing.ColorBlack}.InheritFrom(defaults)

	for _, b := range l.boxes {
		lo, hi := math.Min(b.from, b.to), math.Max(b.from, b.to)
		var box chart.Box
		if l.horizontal {
			box = chart.Box{
				Top:    cb.Top + along(b.lo, cb.Height()),
				Bottom: cb.Top + along(b.hi, cb.Height()),
				Left:   cb.Left + across(lo, cb.Width()),
				Right:  cb.Left + across(hi, cb.Width()),
			}
		} else {
			box = chart.Box{
				Left:   cb.Left + along(b.lo, cb.Width()),
				Right:  cb.Left + along(b.hi, cb.Width()),
				Top:    cb.Bottom - across(hi, cb.Height()),
				Bottom: cb.Bottom - across(lo, cb.Height()),
			}
		}
		chart.Draw.Box(r, box, chart.Style{FillColor: b.color, StrokeColor: b.color, StrokeWidth: 1})
		if b.label != "" {
			tb := chart.Draw.MeasureText(r, b.label, text)
			x, y := box.Center()
			chart.Draw.Text(r, b.label, x-tb.Width()/2, y+tb.Height()/2, text)
		}
	}

	// zero line
	axis := chart.Style{StrokeColor: chart.DefaultAxisColor, StrokeWidth: 1}
	axis.GetStrokeOptions().WriteToRenderer(r)
	if l.horizontal {
		x := cb.Left + across(0, cb.Width())
		r.MoveTo(x, cb.Top)
		r.LineTo(x, cb.Bottom)
	} else {
		y := cb.Bottom - across(0, cb.Height())
		r.MoveTo(cb.Left, y)
		r.LineTo(cb.Right, y)
	}
	r.Stroke()
	r.ResetStyle()
}

func (r *Renderer) lines(recs *chartdata.Records) renderable {
	series := recs.Series
	if r.stacked {
		series = r.stackedSeries(recs)
	}
	if len(series) == 0 {
		return nil
	}
	n := len(recs.Categories.Data)
	// A single category is drawn as a short flat segment around its tick.
	xs := []float64{-0.4, 0.4}
	at := func(int) int { return 0 }
	if n > 1 {
		xs = make([]float64, n)
		for i := range xs {
			xs[i] = float64(i)
		}
		at = func(i int) int { return i }
	}

	base := make([]float64, n)
	var all []float64
	out := make([]chart.Series, 0, len(series))
	for si, s := range series {
		ys := make([]float64, len(xs))
		for i := range ys {
			v := s.Data[at(i)]
			if r.stacked {
				v += base[at(i)]
			}
			ys[i] = v
		}
		if r.stacked {
			for i := range ys {
				base[at(i)] = ys[i]
			}
		}
		all = append(all, ys...)
		style := chart.Style{StrokeColor: r.color(si), StrokeWidth: 2}
		if r.kind == Area {
			style.FillColor = r.color(si).WithAlpha(96)
		}
		out = append(out, chart.ContinuousSeries{Name: s.Name, XValues: xs, YValues: ys, Style: style})
	}

	c := &chart.Chart{
		Title:      r.title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Name: r.xLabel, Ticks: categoryTicks(recs.Categories.Data), GridMajorStyle: r.gridStyle()},
		YAxis:      chart.YAxis{Name: r.yLabel, Range: valueRange(all, r.kind == Area), GridMajorStyle: r.gridStyle()},
		Series:     out,
	}
	c.Elements = []chart.Renderable{chart.Legend(c)}
	return c
}

// pie uses the first series.
func (r *Renderer) pie(recs *chartdata.Records) renderable {
	first := recs.Series[0]
	var values []chart.Value
	for i, cat := range recs.Categories.Data {
		if first.Data[i] <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: r.label(cat, first.Data[i]),
			Value: first.Data[i],
			Style: chart.Style{FillColor: r.color(i), StrokeColor: drawing.ColorWhite},
		})
	}
	if len(values) == 0 {
		return nil
	}
	return chart.PieChart{
		Title:  r.title,
		Width:  r.width,
		Height: r.height,
		Values: values,
	}
}

func (r *Renderer) people(recs []chartdata.PeopleRecord) renderable {
	if len(recs) == 0 {
		return nil
	}
	l := &barLayout{horizontal: true}
	for i, rec := range recs {
		l.categories = append(l.categories, rec.Category)
		l.boxes = append(l.boxes, barBox{
			lo: float64(i) - 0.35, hi: float64(i) + 0.35,
			to:    rec.Value,
			color: r.color(i),
			label: r.valueLabel(rec.Value),
		})
	}
	legend := []chart.Series{chart.ContinuousSeries{
		XValues: []float64{0},
		YValues: []float64{0},
		Style:   chart.Style{StrokeColor: r.color(0), StrokeWidth: 4},
	}}
	return r.barChart(l, legend)
}
