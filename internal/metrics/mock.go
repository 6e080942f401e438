package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	gamesRecorded     int
	penaltiesRecorded int
	sessionsCompleted int
	snapshotsExported int
	snapshotsImported int
	scoringDurations  []float64
	startupTime       float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		scoringDurations: make([]float64, 0),
	}
}

func (m *Mock) IncGamesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesRecorded++
}

func (m *Mock) IncPenaltiesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.penaltiesRecorded++
}

func (m *Mock) IncSessionsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessionsCompleted++
}

func (m *Mock) IncSnapshotsExported() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshotsExported++
}

func (m *Mock) IncSnapshotsImported() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshotsImported++
}

func (m *Mock) ObserveScoringDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoringDurations = append(m.scoringDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// GamesRecorded returns the number of times IncGamesRecorded was called.
func (m *Mock) GamesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesRecorded
}

// PenaltiesRecorded returns the number of times IncPenaltiesRecorded was called.
func (m *Mock) PenaltiesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.penaltiesRecorded
}

// SessionsCompleted returns the number of times IncSessionsCompleted was called.
func (m *Mock) SessionsCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionsCompleted
}

// SnapshotsExported returns the number of times IncSnapshotsExported was called.
func (m *Mock) SnapshotsExported() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotsExported
}

// SnapshotsImported returns the number of times IncSnapshotsImported was called.
func (m *Mock) SnapshotsImported() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotsImported
}
