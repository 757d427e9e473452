// Package config persists viewer preferences between runs.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const (
	DefaultScale = 4
	MinScale     = 1
	MaxScale     = 10
)

// Preferences are the settings remembered between runs
type Preferences struct {
	Scale   int    `json:"scale"`
	Backend string `json:"backend,omitempty"`
}

// DefaultPreferences is used when no file exists yet
var DefaultPreferences = Preferences{
	Scale: DefaultScale,
}

// Manager loads and saves Preferences as JSON
type Manager struct {
	mu       sync.RWMutex
	prefs    Preferences
	filePath string
}

var (
	current     *Manager
	currentOnce sync.Once
)

// DefaultPath returns preferences.json under the user config directory,
// or in the working directory when there is none.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "preferences.json"
	}
	return filepath.Join(dir, "starmap", "preferences.json")
}

// Current returns the process-wide manager for DefaultPath, loading it on
// first use. Load errors leave the defaults in place.
func Current() *Manager {
	currentOnce.Do(func() {
		current, _ = Open(DefaultPath())
	})
	return current
}

// Open creates a manager for path and loads it. A missing file is not an
// error; the manager then holds DefaultPreferences.
func Open(path string) (*Manager, error) {
	m := &Manager{
		prefs:    DefaultPreferences,
		filePath: path,
	}
	return m, m.Load()
}

// Load reads the preferences file
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	prefs := DefaultPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return err
	}
	prefs.Scale = clampScale(prefs.Scale)
	m.prefs = prefs
	return nil
}

// Get returns a copy of the preferences
func (m *Manager) Get() Preferences {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.prefs
}

// Scale returns the window scale factor
func (m *Manager) Scale() int {
	return m.Get().Scale
}

// SetScale stores the window scale factor, clamped to [MinScale, MaxScale]
func (m *Manager) SetScale(scale int) error {
	m.mu.Lock()
	m.prefs.Scale = clampScale(scale)
	m.mu.Unlock()
	return m.Save()
}

// SetBackend stores the last used backend name
func (m *Manager) SetBackend(name string) error {
	m.mu.Lock()
	m.prefs.Backend = name
	m.mu.Unlock()
	return m.Save()
}

// Save writes the preferences file
func (m *Manager) Save() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(m.filePath), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(m.prefs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.filePath, data, 0o644)
}

func clampScale(s int) int {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
