package runstate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// State records what the daemon last produced, so a restart on a day that
// already has a report does not send a second notification.
type State struct {
	LastReportDate string    `json:"last_report_date"`
	LastRunAt      time.Time `json:"last_run_at"`
	LastAnalyzed   int       `json:"last_analyzed"`
	TotalRuns      int       `json:"total_runs"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Manager owns the persisted run state.
type Manager struct {
	mu       sync.Mutex
	state    *State
	filePath string
}

// NewManager creates a Manager, loading existing state from disk if present.
func NewManager(filePath string) (*Manager, error) {
	state, err := loadState(filePath)
	if err != nil {
		return nil, err
	}
	return &Manager{state: state, filePath: filePath}, nil
}

// Get returns a copy of the current state.
func (m *Manager) Get() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.state
}

// AlreadyReported reports whether a report for the given date was produced.
func (m *Manager) AlreadyReported(date string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.LastReportDate == date
}

// MarkReported records a completed run and persists the state.
func (m *Manager) MarkReported(date string, analyzed int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.LastReportDate = date
	m.state.LastRunAt = time.Now()
	m.state.LastAnalyzed = analyzed
	m.state.TotalRuns++
	return m.save()
}

func (m *Manager) save() error {
	m.state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(m.state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.filePath), 0755); err != nil {
		return err
	}
	return os.WriteFile(m.filePath, data, 0644)
}

// loadState reads the state file. Returns a zero state if it doesn't exist.
func loadState(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}
