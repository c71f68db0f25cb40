package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// WorkbookState is what the editor remembers about one workbook.
type WorkbookState struct {
	Sheet     string `json:"sheet,omitempty"`
	Range     string `json:"range,omitempty"`
	Binding   string `json:"binding,omitempty"`
	Page      string `json:"page,omitempty"` // "data", "chart"
	CursorRow int    `json:"cursor_row,omitempty"`
	CursorCol int    `json:"cursor_col,omitempty"`
}

// Session stores the editor state across runs.
type Session struct {
	Workbooks      map[string]WorkbookState `json:"workbooks"`
	ActiveWorkbook string                   `json:"active_workbook,omitempty"`
	LastSaved      time.Time                `json:"last_saved"`
}

// Manager handles session persistence
type Manager struct {
	mu       sync.RWMutex
	session  Session
	path     string
	dirty    bool
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewManager opens the session in the XDG state directory and starts
// autosave when interval is positive.
func NewManager(interval time.Duration) (*Manager, error) {
	path, err := sessionPath()
	if err != nil {
		return nil, err
	}
	return NewManagerAt(path, interval), nil
}

// NewManagerAt is NewManager with an explicit file.
func NewManagerAt(path string, interval time.Duration) *Manager {
	m := &Manager{
		session:  Session{Workbooks: make(map[string]WorkbookState)},
		path:     path,
		stopChan: make(chan struct{}),
	}
	// Load existing session
	m.load()

	// Start autosave timer
	if interval > 0 {
		go m.autosaveLoop(interval)
	}
	return m
}

func sessionPath() (string, error) {
	// XDG state directory
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(stateDir, "qchart")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create state dir: %w", err)
	}
	return filepath.Join(dir, "session.json"), nil
}

func (m *Manager) load() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return // No existing session, start fresh
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return // Corrupt file is replaced on the next save
	}
	if s.Workbooks == nil {
		s.Workbooks = make(map[string]WorkbookState)
	}
	m.session = s
}

// Save persists the session to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.dirty {
		return nil
	}

	m.session.LastSaved = time.Now()
	data, err := json.MarshalIndent(m.session, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	m.dirty = false
	return nil
}

// ForceSave saves even if not dirty
func (m *Manager) ForceSave() error {
	m.mu.Lock()
	m.dirty = true
	m.mu.Unlock()
	return m.Save()
}

// Workbook returns the saved state for a workbook
func (m *Manager) Workbook(absPath string) (WorkbookState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.session.Workbooks[absPath]
	return st, ok
}

// SetWorkbook records state for a workbook and makes it the active one.
func (m *Manager) SetWorkbook(absPath string, st WorkbookState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Workbooks[absPath] = st
	m.session.ActiveWorkbook = absPath
	m.dirty = true
}

// ActiveWorkbook is the workbook of the last session, "" if none
func (m *Manager) ActiveWorkbook() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.ActiveWorkbook
}

func (m *Manager) autosaveLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			_ = m.Save()
		case <-m.stopChan:
			return
		}
	}
}

// Stop stops the autosave loop and saves final state
func (m *Manager) Stop() error {
	m.stopOnce.Do(func() { close(m.stopChan) })
	return m.ForceSave()
}
