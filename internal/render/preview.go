package render

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/qchart/internal/chartdata"
)

const sparks = "▁▂▃▄▅▆▇█"

var shapes = map[string]rune{
	"person": '☻',
	"circle": '●',
	"square": '■',
	"star":   '★',
}

// ShapeNames lists the pictograph shapes.
func ShapeNames() []string { return []string{"person", "circle", "square", "star"} }

// Segment is a run of preview text in one palette color. Color -1 is the
// default foreground.
type Segment struct {
	Text  string
	Color int
}

type Row []Segment

func (r Row) String() string {
	var b strings.Builder
	for _, s := range r {
		b.WriteString(s.Text)
	}
	return b.String()
}

func plain(text string) Row { return Row{{Text: text, Color: -1}} }

// Preview lays the chart out as text rows at most width cells wide. An empty
// result means there is nothing to draw.
func (r *Renderer) Preview(src Source, width, height int) []Row {
	var body []Row
	if r.kind == People {
		body = r.previewPeople(src.PeopleRecords(), width)
	} else {
		recs := src.DataRecords()
		if len(recs.Series) == 0 || len(recs.Categories.Data) == 0 {
			return nil
		}
		switch r.kind {
		case Line, Area:
			body = r.previewSpark(recs, width)
		case Pie:
			body = r.previewPie(recs, width)
		default:
			body = r.previewBars(recs, width)
		}
	}
	if len(body) == 0 {
		return nil
	}
	var rows []Row
	if r.title != "" {
		rows = append(rows, plain(runewidth.Truncate(r.title, width, "…")))
	}
	rows = append(rows, body...)
	if height > 0 && len(rows) > height {
		rows = rows[:height]
	}
	return rows
}

func labelWidth(labels []string, width int) int {
	w := 0
	for _, l := range labels {
		w = max(w, runewidth.StringWidth(l))
	}
	return max(1, min(w, width/3))
}

func pad(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}

func scaled(v, top float64, room int) int {
	if top <= 0 || v <= 0 {
		return 0
	}
	return int(math.Round(v / top * float64(room)))
}

func (r *Renderer) valueSuffix(v float64) string {
	if !r.values {
		return ""
	}
	return " " + formatValue(v)
}

func (r *Renderer) previewBars(recs *chartdata.Records, width int) []Row {
	cats := recs.Categories.Data
	lw := labelWidth(cats, width)
	room := max(1, width-lw-1)
	if r.values {
		room = max(1, room-8)
	}
	var rows []Row
	if r.stacked {
		series := r.stackedSeries(recs)
		top := 0.0
		for ci := range cats {
			sum := 0.0
			for _, s := range series {
				sum += max(s.Data[ci], 0)
			}
			top = max(top, sum)
		}
		for ci, cat := range cats {
			row := Row{{Text: pad(cat, lw) + " ", Color: -1}}
			sum := 0.0
			for si, s := range series {
				v := max(s.Data[ci], 0)
				sum += v
				if n := scaled(v, top, room); n > 0 {
					row = append(row, Segment{Text: strings.Repeat("█", n), Color: si})
				}
			}
			if r.values {
				row = append(row, Segment{Text: r.valueSuffix(sum), Color: -1})
			}
			rows = append(rows, row)
		}
		return rows
	}

	top := 0.0
	for _, s := range recs.Series {
		for _, v := range s.Data {
			top = max(top, v)
		}
	}
	for ci, cat := range cats {
		for si, s := range recs.Series {
			label := ""
			if si == 0 {
				label = cat
			}
			row := Row{{Text: pad(label, lw) + " ", Color: -1}}
			bar := strings.Repeat("█", scaled(s.Data[ci], top, room))
			row = append(row, Segment{Text: bar, Color: si})
			if r.values {
				row = append(row, Segment{Text: r.valueSuffix(s.Data[ci]), Color: -1})
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func (r *Renderer) previewSpark(recs *chartdata.Records, width int) []Row {
	series := recs.Series
	if r.stacked {
		series = r.stackedSeries(recs)
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s.Data {
			lo, hi = min(lo, v), max(hi, v)
		}
	}
	names := make([]string, len(series))
	for i, s := range series {
		names[i] = s.Name
	}
	lw := labelWidth(names, width)
	room := max(1, width-lw-1)
	levels := []rune(sparks)

	var rows []Row
	for si, s := range series {
		var b strings.Builder
		for i, v := range s.Data {
			if i >= room {
				break
			}
			level := len(levels) - 1
			if hi > lo {
				level = int(math.Round((v - lo) / (hi - lo) * float64(len(levels)-1)))
			}
			b.WriteRune(levels[level])
		}
		rows = append(rows, Row{
			{Text: pad(s.Name, lw) + " ", Color: -1},
			{Text: b.String(), Color: si},
		})
	}
	return rows
}

func (r *Renderer) previewPie(recs *chartdata.Records, width int) []Row {
	first := recs.Series[0]
	total := 0.0
	for _, v := range first.Data {
		total += max(v, 0)
	}
	if total == 0 {
		return nil
	}
	lw := labelWidth(recs.Categories.Data, width)
	room := max(1, width-lw-6)
	var rows []Row
	for i, cat := range recs.Categories.Data {
		v := first.Data[i]
		if v <= 0 {
			continue
		}
		share := v / total
		rows = append(rows, Row{
			{Text: pad(cat, lw) + " ", Color: -1},
			{Text: strings.Repeat("█", max(1, scaled(share, 1, room))), Color: i},
			{Text: " " + formatValue(math.Round(share*100)) + "%", Color: -1},
		})
	}
	return rows
}

func (r *Renderer) previewPeople(recs []chartdata.PeopleRecord, width int) []Row {
	if len(recs) == 0 {
		return nil
	}
	labels := make([]string, len(recs))
	top := 0.0
	for i, rec := range recs {
		labels[i] = rec.Category
		top = max(top, rec.Value)
	}
	lw := labelWidth(labels, width)
	room := max(1, width-lw-1)
	if r.values {
		room = max(1, room-8)
	}
	shape := string(shapes[r.peopleShape])
	var rows []Row
	for i, rec := range recs {
		row := Row{
			{Text: pad(rec.Category, lw) + " ", Color: -1},
			{Text: strings.Repeat(shape, max(1, scaled(rec.Value, top, room))), Color: i},
		}
		if r.values {
			row = append(row, Segment{Text: r.valueSuffix(rec.Value), Color: -1})
		}
		rows = append(rows, row)
	}
	return rows
}
