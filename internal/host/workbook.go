package host

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/xuri/excelize/v2"

	"github.com/kobzarvs/qchart/internal/logger"
)

const settingsSheet = "_qchart_settings"

var ErrBindingNotFound = errors.New("binding not found")

// BindingEvent reports new values written through a named binding.
type BindingEvent struct {
	Name string
	Ref  string
}

// SelectionEvent reports a change of the document selection.
type SelectionEvent struct {
	Sheet string
	Ref   string
}

// Workbook is an xlsx document opened as the chart's host.
type Workbook struct {
	mu        sync.Mutex
	f         *excelize.File
	path      string
	sheet     string
	selection string

	bindingHandlers   []func(BindingEvent)
	selectionHandlers []func(SelectionEvent)
}

// Open loads the workbook at path, or starts a new one if it does not exist.
func Open(path string) (*Workbook, error) {
	var f *excelize.File
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		f = excelize.NewFile()
	} else {
		f, err = excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("open workbook %s: %w", path, err)
		}
	}
	w := &Workbook{f: f, path: path, sheet: f.GetSheetName(f.GetActiveSheetIndex())}
	if w.sheet == settingsSheet || w.sheet == "" {
		w.sheet = f.GetSheetName(0)
	}
	return w, nil
}

func (w *Workbook) Path() string { return w.path }

func (w *Workbook) Sheet() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sheet
}

// Close releases the underlying file without saving.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Save writes the workbook back to its path.
func (w *Workbook) Save() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", w.path, err)
	}
	logger.Info("workbook saved", "path", w.path)
	return nil
}

// Select makes ref ("B2:D7" or "Sheet2!B2:D7") the document selection.
func (w *Workbook) Select(ref string) error {
	sheet, rng, err := w.resolve(ref)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.sheet = sheet
	w.selection = rng.String()
	handlers := append([]func(SelectionEvent){}, w.selectionHandlers...)
	w.mu.Unlock()
	for _, h := range handlers {
		h(SelectionEvent{Sheet: sheet, Ref: rng.String()})
	}
	return nil
}

// Selection returns the current selection reference, "" when the whole used
// range is meant.
func (w *Workbook) Selection() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selection
}

func (w *Workbook) OnSelectionChanged(fn func(SelectionEvent)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selectionHandlers = append(w.selectionHandlers, fn)
}

func (w *Workbook) OnBindingChanged(fn func(BindingEvent)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.bindingHandlers = append(w.bindingHandlers, fn)
}

// ReadSelection returns the unformatted values of the current selection, or
// of the used range of the active sheet when nothing is selected.
func (w *Workbook) ReadSelection(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.selection == "" {
		rows, err := w.f.GetRows(w.sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", w.sheet, err)
		}
		return rows, nil
	}
	rng, err := parseRange(w.selection)
	if err != nil {
		return nil, err
	}
	return w.readRange(w.sheet, rng)
}

// Bind creates or moves the named binding to ref.
func (w *Workbook) Bind(ctx context.Context, name, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sheet, rng, err := w.resolve(ref)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bind(name, sheet, rng)
}

func (w *Workbook) bind(name, sheet string, rng cellRange) error {
	_ = w.f.DeleteDefinedName(&excelize.DefinedName{Name: name})
	err := w.f.SetDefinedName(&excelize.DefinedName{
		Name:     name,
		RefersTo: QuoteSheet(sheet) + "!" + rng.Absolute(),
	})
	if err != nil {
		return fmt.Errorf("bind %s: %w", name, err)
	}
	logger.Debug("binding created", "name", name, "sheet", sheet, "ref", rng.String())
	return nil
}

// Release removes the named binding.
func (w *Workbook) Release(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, _, err := w.lookup(name); err != nil {
		return err
	}
	if err := w.f.DeleteDefinedName(&excelize.DefinedName{Name: name}); err != nil {
		return fmt.Errorf("release %s: %w", name, err)
	}
	return nil
}

// ReadBinding returns the values under the named binding.
func (w *Workbook) ReadBinding(ctx context.Context, name string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	sheet, rng, err := w.lookup(name)
	if err != nil {
		return nil, err
	}
	return w.readRange(sheet, rng)
}

// WriteBinding stores m at the binding's top left corner, resizes the
// binding to m and blanks cells the old binding covered outside of m.
func (w *Workbook) WriteBinding(ctx context.Context, name string, m [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	sheet, old, err := w.lookup(name)
	if err != nil {
		w.mu.Unlock()
		return err
	}
	cols := 1
	for _, row := range m {
		cols = max(cols, len(row))
	}
	next := cellRange{
		Col1: old.Col1, Row1: old.Row1,
		Col2: old.Col1 + cols - 1, Row2: old.Row1 + max(len(m), 1) - 1,
	}
	for row := old.Row1; row <= max(old.Row2, next.Row2); row++ {
		for col := old.Col1; col <= max(old.Col2, next.Col2); col++ {
			v := ""
			if r, c := row-old.Row1, col-old.Col1; r < len(m) && c < len(m[r]) {
				v = m[r][c]
			}
			if err := w.setValue(sheet, col, row, v); err != nil {
				w.mu.Unlock()
				return err
			}
		}
	}
	if err := w.bind(name, sheet, next); err != nil {
		w.mu.Unlock()
		return err
	}
	handlers := append([]func(BindingEvent){}, w.bindingHandlers...)
	w.mu.Unlock()
	for _, h := range handlers {
		h(BindingEvent{Name: name, Ref: next.String()})
	}
	return nil
}

func (w *Workbook) setValue(sheet string, col, row int, v string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	// Numbers are stored as numbers only when they print back unchanged,
	// so "007", "NaN" and "Inf" stay text.
	t := strings.TrimSpace(v)
	if f, err := strconv.ParseFloat(t, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) &&
		strconv.FormatFloat(f, 'f', -1, 64) == t {
		return w.f.SetCellValue(sheet, cell, f)
	}
	return w.f.SetCellStr(sheet, cell, v)
}

func (w *Workbook) readRange(sheet string, rng cellRange) ([][]string, error) {
	out := make([][]string, 0, rng.Row2-rng.Row1+1)
	for row := rng.Row1; row <= rng.Row2; row++ {
		line := make([]string, 0, rng.Col2-rng.Col1+1)
		for col := rng.Col1; col <= rng.Col2; col++ {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return nil, err
			}
			v, err := w.f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
			if err != nil {
				return nil, fmt.Errorf("read %s!%s: %w", sheet, cell, err)
			}
			line = append(line, v)
		}
		out = append(out, line)
	}
	return out, nil
}

func (w *Workbook) lookup(name string) (string, cellRange, error) {
	for _, dn := range w.f.GetDefinedName() {
		if dn.Name != name {
			continue
		}
		i := strings.LastIndex(dn.RefersTo, "!")
		if i < 0 {
			break
		}
		sheet, ref := dn.RefersTo[:i], dn.RefersTo[i+1:]
		rng, err := parseRange(ref)
		if err != nil {
			return "", cellRange{}, err
		}
		return unquoteSheet(strings.TrimPrefix(sheet, "=")), rng, nil
	}
	return "", cellRange{}, fmt.Errorf("%w: %s", ErrBindingNotFound, name)
}

// resolve splits an optionally sheet qualified reference.
func (w *Workbook) resolve(ref string) (string, cellRange, error) {
	w.mu.Lock()
	sheet := w.sheet
	w.mu.Unlock()
	if i := strings.LastIndex(ref, "!"); i >= 0 {
		sheet, ref = unquoteSheet(ref[:i]), ref[i+1:]
	}
	if idx, err := w.f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return "", cellRange{}, fmt.Errorf("sheet not found: %s", sheet)
	}
	rng, err := parseRange(ref)
	if err != nil {
		return "", cellRange{}, err
	}
	return sheet, rng, nil
}

// QuoteSheet prepares a sheet name for use in a reference such as
// "'Q1 sales'!A1".
func QuoteSheet(name string) string {
	if strings.ContainsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	}) {
		return "'" + strings.ReplaceAll(name, "'", "''") + "'"
	}
	return name
}

func unquoteSheet(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'") {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}
