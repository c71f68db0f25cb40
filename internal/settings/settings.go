// Package settings persists chart and people-chart settings in the host
// document.
package settings

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/kobzarvs/qchart/internal/logger"
)

const (
	ChartKey  = "chartSettings"
	PeopleKey = "chartPeopleSettings"
)

// Store is the document scoped key/value store settings are kept in.
type Store interface {
	GetSetting(key string) (string, bool, error)
	SetSetting(key, value string) error
}

// Colors is the palette chosen for a chart.
type Colors struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type ChartSettings struct {
	Title           string `json:"title"`
	GridVisibility  bool   `json:"gridVisibility"`
	ValueVisibility bool   `json:"valueVisibility"`
	XAxisLabel      string `json:"xAxisLabel"`
	YAxisLabel      string `json:"yAxisLabel"`
	Colors          Colors `json:"colors"`
	PeopleLabel     string `json:"peopleLabel"`
	ChartType       string `json:"chartType,omitempty"`
	Stacked         bool   `json:"stacked,omitempty"`
}

type PeopleSettings struct {
	Title string `json:"title"`
	Shape string `json:"shape"`
	Theme string `json:"theme"`
	SKU   string `json:"sku"`
}

func DefaultChart() ChartSettings {
	return ChartSettings{GridVisibility: true, ChartType: "column"}
}

func DefaultPeople() PeopleSettings {
	return PeopleSettings{Shape: "person", Theme: "office"}
}

// Manager keeps the settings in memory and writes them back to the store
// when they change.
type Manager struct {
	mu       sync.RWMutex
	store    Store
	chart    ChartSettings
	people   PeopleSettings
	dirty    bool
	stopChan chan struct{}
	stopped  sync.Once
}

// NewManager loads the settings from store. A zero interval disables
// autosave; Save and Stop still flush.
func NewManager(store Store, interval time.Duration) (*Manager, error) {
	m := &Manager{
		store:    store,
		chart:    DefaultChart(),
		people:   DefaultPeople(),
		stopChan: make(chan struct{}),
	}
	if err := m.load(); err != nil {
		return nil, err
	}
	if interval > 0 {
		go m.autosaveLoop(interval)
	}
	return m, nil
}

func (m *Manager) load() error {
	if err := loadKey(m.store, ChartKey, &m.chart); err != nil {
		return err
	}
	return loadKey(m.store, PeopleKey, &m.people)
}

func loadKey(store Store, key string, v any) error {
	raw, ok, err := store.GetSetting(key)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		logger.Warn("ignoring malformed settings", "key", key, "error", err)
	}
	return nil
}

// Chart returns a copy of the chart settings.
func (m *Manager) Chart() ChartSettings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c := m.chart
	c.Colors.Values = append([]string(nil), m.chart.Colors.Values...)
	return c
}

func (m *Manager) People() PeopleSettings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.people
}

// UpdateChart applies fn to the chart settings and marks them dirty.
func (m *Manager) UpdateChart(fn func(*ChartSettings)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.chart)
	m.dirty = true
}

func (m *Manager) UpdatePeople(fn func(*PeopleSettings)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.people)
	m.dirty = true
}

func (m *Manager) Dirty() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dirty
}

// Save writes both settings objects if anything changed.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.dirty {
		return nil
	}
	if err := saveKey(m.store, ChartKey, m.chart); err != nil {
		return err
	}
	if err := saveKey(m.store, PeopleKey, m.people); err != nil {
		return err
	}
	m.dirty = false
	return nil
}

func saveKey(store Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := store.SetSetting(key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (m *Manager) autosaveLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := m.Save(); err != nil {
				logger.Warn("settings autosave failed", "error", err)
			}
		case <-m.stopChan:
			return
		}
	}
}

// Stop ends autosave and flushes pending changes.
func (m *Manager) Stop() error {
	m.stopped.Do(func() { close(m.stopChan) })
	return m.Save()
}
