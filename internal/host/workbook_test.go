package host

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func newBook(t *testing.T) *Workbook {
	t.Helper()
	w, err := Open(filepath.Join(t.TempDir(), "book.xlsx"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func seed(t *testing.T, w *Workbook, m [][]string) {
	t.Helper()
	ctx := context.Background()
	ref := cellRange{Col1: 1, Row1: 1, Col2: len(m[0]), Row2: len(m)}
	if err := w.Bind(ctx, "seed", ref.String()); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if err := w.WriteBinding(ctx, "seed", m); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestParseRange(t *testing.T) {
	r, err := parseRange("$C$4:A1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if r != (cellRange{Col1: 1, Row1: 1, Col2: 3, Row2: 4}) {
		t.Fatalf("unexpected range %+v", r)
	}
	if r.String() != "A1:C4" || r.Absolute() != "$A$1:$C$4" {
		t.Fatalf("unexpected format %s %s", r.String(), r.Absolute())
	}
	if _, err := parseRange("nope"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestReadSelection(t *testing.T) {
	w := newBook(t)
	seed(t, w, [][]string{{"", "Q1", "Q2"}, {"North", "10", "12.5"}, {"South", "7", "3"}})

	got, err := w.ReadSelection(context.Background())
	if err != nil {
		t.Fatalf("read used range: %v", err)
	}
	if got[1][2] != "12.5" || got[2][0] != "South" {
		t.Fatalf("unexpected used range %v", got)
	}

	var events []SelectionEvent
	w.OnSelectionChanged(func(e SelectionEvent) { events = append(events, e) })
	if err := w.Select("B2:C3"); err != nil {
		t.Fatalf("select: %v", err)
	}
	got, err = w.ReadSelection(context.Background())
	if err != nil {
		t.Fatalf("read selection: %v", err)
	}
	want := [][]string{{"10", "12.5"}, {"7", "3"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if len(events) != 1 || events[0].Ref != "B2:C3" {
		t.Fatalf("unexpected selection events %v", events)
	}
	if err := w.Select("Missing!A1"); err == nil {
		t.Fatalf("expected unknown sheet error")
	}
}

func TestBindingRoundTripAndResize(t *testing.T) {
	w := newBook(t)
	ctx := context.Background()
	if err := w.Bind(ctx, "chart", "B2:D4"); err != nil {
		t.Fatalf("bind: %v", err)
	}
	var events []BindingEvent
	w.OnBindingChanged(func(e BindingEvent) { events = append(events, e) })

	if err := w.WriteBinding(ctx, "chart", [][]string{{"a", "b", "c"}, {"1", "2", "3"}, {"4", "5", "6"}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.WriteBinding(ctx, "chart", [][]string{{"x", "y"}, {"9", "8"}}); err != nil {
		t.Fatalf("shrink: %v", err)
	}
	got, err := w.ReadBinding(ctx, "chart")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(got, [][]string{{"x", "y"}, {"9", "8"}}) {
		t.Fatalf("unexpected binding values %v", got)
	}
	if err := w.Select("B2:D4"); err != nil {
		t.Fatalf("select: %v", err)
	}
	all, _ := w.ReadSelection(ctx)
	if all[2][2] != "" || all[0][2] != "" {
		t.Fatalf("old cells should be blanked, got %v", all)
	}
	if len(events) != 2 || events[1].Ref != "B2:C3" {
		t.Fatalf("unexpected binding events %v", events)
	}

	if err := w.Release(ctx, "chart"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := w.ReadBinding(ctx, "chart"); !errors.Is(err, ErrBindingNotFound) {
		t.Fatalf("expected ErrBindingNotFound, got %v", err)
	}
}

func TestSettingsPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	w, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok, _ := w.GetSetting("chartSettings"); ok {
		t.Fatalf("expected no setting")
	}
	if err := w.SetSetting("chartSettings", `{"title":"Sales"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := w.SetSetting("chartSettings", `{"title":"Revenue"}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := w.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = w.Close()

	w, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer w.Close()
	v, ok, err := w.GetSetting("chartSettings")
	if err != nil || !ok || v != `{"title":"Revenue"}` {
		t.Fatalf("unexpected setting %q %v %v", v, ok, err)
	}
	if w.Sheet() == settingsSheet {
		t.Fatalf("settings sheet must not become the active sheet")
	}
}

func TestNumericTextSurvivesSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	w, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	want := [][]string{{"NaN", "Inf", "007"}, {"12.5", "-3", "1e3"}}
	seed(t, w, want)
	if err := w.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = w.Close()

	w, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer w.Close()
	got, err := w.ReadBinding(context.Background(), "seed")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestQuoteSheet(t *testing.T) {
	tests := map[string]string{
		"Sheet1":     "Sheet1",
		"Q1 sales":   "'Q1 sales'",
		"a-b":        "'a-b'",
		"Bob's data": "'Bob''s data'",
	}
	for in, want := range tests {
		if got := QuoteSheet(in); got != want {
			t.Fatalf("QuoteSheet(%q) = %q, want %q", in, got, want)
		}
		if got := unquoteSheet(QuoteSheet(in)); got != in {
			t.Fatalf("unquoteSheet(%q) = %q", QuoteSheet(in), got)
		}
	}
}

func TestQuotedSheetReferences(t *testing.T) {
	w := newBook(t)
	ctx := context.Background()
	const name = "Bob's data"
	if _, err := w.f.NewSheet(name); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	ref := QuoteSheet(name) + "!B2:C3"
	if err := w.Select(ref); err != nil {
		t.Fatalf("select %s: %v", ref, err)
	}
	if w.Sheet() != name || w.Selection() != "B2:C3" {
		t.Fatalf("selected %q %q", w.Sheet(), w.Selection())
	}
	if err := w.Bind(ctx, "chart", ref); err != nil {
		t.Fatalf("bind: %v", err)
	}
	m := [][]string{{"a", "b"}, {"1", "2"}}
	if err := w.WriteBinding(ctx, "chart", m); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := w.ReadBinding(ctx, "chart")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Fatalf("expected %v, got %v", m, got)
	}
}

func TestGo(t *testing.T) {
	done := make(chan Result[int], 1)
	Go(context.Background(), func(context.Context) (int, error) { return 42, nil }, func(r Result[int]) { done <- r })
	select {
	case r := <-done:
		if r.Status != Succeeded || r.Value != 42 {
			t.Fatalf("unexpected result %+v", r)
		}
	case <-time.After(time.Second):
		t.Fatalf("timeout")
	}

	boom := errors.New("boom")
	failed := make(chan Result[int], 1)
	Go(context.Background(), func(context.Context) (int, error) { return 0, boom }, func(r Result[int]) { failed <- r })
	if r := <-failed; r.Status != Failed || !errors.Is(r.Err, boom) {
		t.Fatalf("unexpected result %+v", r)
	}
}
