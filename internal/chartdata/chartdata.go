// Package chartdata turns the edited table into the category and series
// records consumed by chart renderers.
package chartdata

import (
	"math"
	"strconv"
	"strings"
)

// Categories holds the category axis name and its labels.
type Categories struct {
	Name string
	Data []string
}

// Series is one named run of values along the category axis.
type Series struct {
	Name string
	Data []float64
}

// Record is one category with the value of every series.
type Record struct {
	Category string
	Values   map[string]float64
}

// Records is the tabular view handed to renderers.
type Records struct {
	Categories Categories
	Series     []Series
	Rows       []Record
}

// SeriesNames returns the series names in table order.
func (r *Records) SeriesNames() []string {
	names := make([]string, len(r.Series))
	for i, s := range r.Series {
		names[i] = s.Name
	}
	return names
}

// PeopleRecord is one pictograph row.
type PeopleRecord struct {
	Category string
	Value    float64
}

// Data is the customized chart data of one editing session.
type Data struct {
	matrix           [][]string
	isColumnCategory *bool
	isDataChanged    bool
	records          *Records
}

func New() *Data {
	return &Data{}
}

// SetChartData stores a new table snapshot. Row 0 and column 0 are the
// header bands. Derived records are rebuilt on the next read.
func (d *Data) SetChartData(m [][]string) {
	d.matrix = trim(m)
	d.isDataChanged = true
}

// Matrix returns a copy of the stored snapshot.
func (d *Data) Matrix() [][]string {
	out := make([][]string, len(d.matrix))
	for r, row := range d.matrix {
		out[r] = append([]string(nil), row...)
	}
	return out
}

// IsCustomizedDataDefined reports whether the snapshot holds any value.
func (d *Data) IsCustomizedDataDefined() bool {
	for _, row := range d.matrix {
		for _, v := range row {
			if strings.TrimSpace(v) != "" {
				return true
			}
		}
	}
	return false
}

// IsColumnCategory reports whether the header row holds the categories.
// ok is false until the orientation has been decided.
func (d *Data) IsColumnCategory() (v, ok bool) {
	if d.isColumnCategory == nil {
		return false, false
	}
	return *d.isColumnCategory, true
}

// SetColumnCategory overrides the inferred orientation.
func (d *Data) SetColumnCategory(v bool) {
	d.isColumnCategory = &v
	d.isDataChanged = true
}

// DataRecords returns the tabular records. The same value is returned until
// the next SetChartData or SetColumnCategory.
func (d *Data) DataRecords() *Records {
	if d.records == nil || d.isDataChanged {
		d.records = d.build()
		d.isDataChanged = false
	}
	return d.records
}

// PeopleRecords pairs each category with the first series value, keeping
// strictly positive values only.
func (d *Data) PeopleRecords() []PeopleRecord {
	recs := d.DataRecords()
	if len(recs.Series) == 0 {
		return nil
	}
	first := recs.Series[0]
	var out []PeopleRecord
	for i, name := range recs.Categories.Data {
		if i >= len(first.Data) || !(first.Data[i] > 0) {
			continue
		}
		out = append(out, PeopleRecord{Category: name, Value: first.Data[i]})
	}
	return out
}

func (d *Data) build() *Records {
	m := d.matrix
	rows, cols := len(m), 0
	if rows > 0 {
		cols = len(m[0])
	}
	if d.isColumnCategory == nil && rows > 0 {
		v := cols >= rows
		d.isColumnCategory = &v
	}
	if d.isColumnCategory != nil && *d.isColumnCategory {
		m = transpose(m)
		rows, cols = cols, rows
	}

	recs := &Records{}
	if rows == 0 {
		return recs
	}
	recs.Categories.Name = m[0][0]
	for r := 1; r < rows; r++ {
		recs.Categories.Data = append(recs.Categories.Data, categoryName(m[r][0], r))
	}
	for c := 1; c < cols; c++ {
		s := Series{Name: seriesName(m[0][c], c)}
		for r := 1; r < rows; r++ {
			s.Data = append(s.Data, number(m[r][c]))
		}
		recs.Series = append(recs.Series, s)
	}
	for i, name := range recs.Categories.Data {
		rec := Record{Category: name, Values: make(map[string]float64, len(recs.Series))}
		for _, s := range recs.Series {
			rec.Values[s.Name] = s.Data[i]
		}
		recs.Rows = append(recs.Rows, rec)
	}
	return recs
}

// categoryName keeps labels non-empty; renderers need a label per position.
func categoryName(v string, index int) string {
	if strings.TrimSpace(v) == "" {
		return strconv.Itoa(index)
	}
	return v
}

// seriesName keeps names unique enough for renderers that merge series of
// the same name.
func seriesName(v string, index int) string {
	if strings.TrimSpace(v) == "" {
		return "Series" + strconv.Itoa(index)
	}
	return v
}

func number(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// trim drops trailing rows and columns that hold no value.
func trim(m [][]string) [][]string {
	rows, cols := 0, 0
	for r, row := range m {
		for c, v := range row {
			if strings.TrimSpace(v) != "" {
				rows = max(rows, r+1)
				cols = max(cols, c+1)
			}
		}
	}
	out := make([][]string, rows)
	for r := range out {
		out[r] = make([]string, cols)
		copy(out[r], m[r])
	}
	return out
}

func transpose(m [][]string) [][]string {
	if len(m) == 0 {
		return m
	}
	out := make([][]string, len(m[0]))
	for c := range out {
		out[c] = make([]string, len(m))
		for r := range m {
			out[c][r] = m[r][c]
		}
	}
	return out
}
