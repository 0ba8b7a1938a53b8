package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kobzarvs/livenum/internal/logger"
)

const autosaveInterval = 15 * time.Second

// FieldState stores the last contents of a single field
type FieldState struct {
	Text   string `json:"text"`
	Cursor int    `json:"cursor"`
	// Value is the number shown, kept for readers of the session file
	Value string `json:"value,omitempty"`
}

// Session stores the state of every field, keyed by field name
type Session struct {
	Fields      map[string]FieldState `json:"fields"`
	ActiveField string                `json:"active_field,omitempty"`
	LastSaved   time.Time             `json:"last_saved"`
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

// NewManager loads the session file and starts saving it periodically.
func NewManager() (*Manager, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return newManager(path, autosaveInterval), nil
}

func newManager(path string, interval time.Duration) *Manager {
	m := &Manager{
		session: Session{
			Fields: make(map[string]FieldState),
		},
		path:     path,
		stopChan: make(chan struct{}),
	}

	m.load()

	go m.autosaveLoop(interval)

	return m
}

// Path returns the session file location under the XDG state directory.
func Path() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(stateDir, "livenum")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

func (m *Manager) load() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return // No existing session, start fresh
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		logger.Warn("session file unreadable, starting fresh", "path", m.path, "error", err)
		return
	}
	if session.Fields == nil {
		session.Fields = make(map[string]FieldState)
	}
	m.session = session
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
		return err
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

// FieldState returns the saved state for a field
func (m *Manager) FieldState(name string) (FieldState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.session.Fields[name]
	return state, ok
}

// SetFieldState updates the state for a field and marks it active
func (m *Manager) SetFieldState(name string, state FieldState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.Fields[name] == state && m.session.ActiveField == name {
		return
	}
	m.session.Fields[name] = state
	m.session.ActiveField = name
	m.dirty = true
}

// ActiveField returns the last edited field
func (m *Manager) ActiveField() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.ActiveField
}

func (m *Manager) autosaveLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := m.Save(); err != nil {
				logger.Warn("session autosave failed", "path", m.path, "error", err)
			}
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
