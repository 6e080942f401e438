package settings

import (
	"sync"

	"github.com/tourney-hq/tourney-tracker/internal/scoring"
)

// MockStore is a mock implementation of the SettingsStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	GetFunc           func() (Settings, error)
	UpdateFunc        func(update Update) (Settings, error)
	ScoringTablesFunc func() (scoring.Tables, error)

	UpdateCalls []Update
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Get() (Settings, error) {
	if m.GetFunc != nil {
		return m.GetFunc()
	}
	return Settings{
		LeagueName: defaultLeagueName,
		Season:     defaultSeason,
		Scoring:    scoring.DefaultConfig(),
		Scoring2P:  scoring.DefaultTwoPlayerConfig(),
	}, nil
}

func (m *MockStore) Update(update Update) (Settings, error) {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, update)
	m.mu.Unlock()
	if m.UpdateFunc != nil {
		return m.UpdateFunc(update)
	}
	return m.Get()
}

func (m *MockStore) ScoringTables() (scoring.Tables, error) {
	if m.ScoringTablesFunc != nil {
		return m.ScoringTablesFunc()
	}
	return scoring.DefaultTables(), nil
}
