package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	m := NewManagerAt(path, 0)
	if m.ActiveWorkbook() != "" {
		t.Fatalf("expected empty session")
	}
	m.SetWorkbook("/tmp/a.xlsx", WorkbookState{Sheet: "Sheet1", Range: "A1:C4", Binding: "qchart", Page: "chart", CursorRow: 2})
	if err := m.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	m2 := NewManagerAt(path, 0)
	st, ok := m2.Workbook("/tmp/a.xlsx")
	if !ok || st.Range != "A1:C4" || st.Page != "chart" || st.CursorRow != 2 {
		t.Fatalf("unexpected state %+v %v", st, ok)
	}
	if m2.ActiveWorkbook() != "/tmp/a.xlsx" {
		t.Fatalf("unexpected active workbook %q", m2.ActiveWorkbook())
	}
}

func TestCorruptSessionStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := NewManagerAt(path, 0)
	m.SetWorkbook("x", WorkbookState{})
	if err := m.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := m.Stop(); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}

func TestSessionPathUsesXDGState(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	got, err := sessionPath()
	if err != nil {
		t.Fatalf("session path: %v", err)
	}
	if got != filepath.Join(dir, "qchart", "session.json") {
		t.Fatalf("unexpected path %s", got)
	}
}
