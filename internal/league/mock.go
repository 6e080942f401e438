package league

import (
	"sync"

	"github.com/tourney-hq/tourney-tracker/internal/scoring"
	"github.com/tourney-hq/tourney-tracker/internal/standings"
)

// MockStore is a mock implementation of the LeagueStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateTeamFunc           func(name string, players []string, color, tag *string) (Team, error)
	GetTeamFunc              func(teamID string) (Team, error)
	ListTeamsFunc            func() ([]Team, error)
	UpdateTeamFunc           func(teamID, name string, players []string, color, tag *string) (Team, error)
	DeleteTeamFunc           func(teamID string) error
	CreateSessionFunc        func(name string, teamIDs []string) (Session, error)
	GetSessionFunc           func(sessionID string) (Session, error)
	ListSessionsFunc         func(status string) ([]Session, error)
	UpdateSessionFunc        func(sessionID string, name, status *string) (Session, error)
	DeleteSessionFunc        func(sessionID string) error
	AddGameFunc              func(sessionID, name string, placements map[string]int, roster map[string][]string, tables scoring.Tables) (Game, error)
	DeleteGameFunc           func(sessionID, gameID string) error
	AddPenaltyFunc           func(sessionID, teamID string, value int, reason string) (Penalty, error)
	DeletePenaltyFunc        func(sessionID, penaltyID string) error
	SessionScoresFunc        func(sessionID string) ([]standings.SessionScore, error)
	LeaderboardFunc          func() ([]standings.LeaderboardEntry, error)
	BackfillTeamIdentityFunc func() error
	ExportFunc               func() (Snapshot, error)
	ImportFunc               func(snapshot Snapshot) (ImportSummary, error)

	// Call records
	AddGameCalls []struct {
		SessionID  string
		Placements map[string]int
		Tables     scoring.Tables
	}
	AddPenaltyCalls []struct {
		SessionID string
		TeamID    string
		Value     int
	}
	ImportCalls []Snapshot
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) CreateTeam(name string, players []string, color, tag *string) (Team, error) {
	if m.CreateTeamFunc != nil {
		return m.CreateTeamFunc(name, players, color, tag)
	}
	return Team{Name: name, Players: players, Color: color, Tag: tag}, nil
}

func (m *MockStore) GetTeam(teamID string) (Team, error) {
	if m.GetTeamFunc != nil {
		return m.GetTeamFunc(teamID)
	}
	return Team{ID: teamID}, nil
}

func (m *MockStore) ListTeams() ([]Team, error) {
	if m.ListTeamsFunc != nil {
		return m.ListTeamsFunc()
	}
	return nil, nil
}

func (m *MockStore) UpdateTeam(teamID, name string, players []string, color, tag *string) (Team, error) {
	if m.UpdateTeamFunc != nil {
		return m.UpdateTeamFunc(teamID, name, players, color, tag)
	}
	return Team{ID: teamID, Name: name, Players: players, Color: color, Tag: tag}, nil
}

func (m *MockStore) DeleteTeam(teamID string) error {
	if m.DeleteTeamFunc != nil {
		return m.DeleteTeamFunc(teamID)
	}
	return nil
}

func (m *MockStore) CreateSession(name string, teamIDs []string) (Session, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(name, teamIDs)
	}
	return Session{Name: name, TeamIDs: teamIDs, Status: StatusActive}, nil
}

func (m *MockStore) GetSession(sessionID string) (Session, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(sessionID)
	}
	return Session{ID: sessionID, Status: StatusActive}, nil
}

func (m *MockStore) ListSessions(status string) ([]Session, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(status)
	}
	return nil, nil
}

func (m *MockStore) UpdateSession(sessionID string, name, status *string) (Session, error) {
	if m.UpdateSessionFunc != nil {
		return m.UpdateSessionFunc(sessionID, name, status)
	}
	return Session{ID: sessionID}, nil
}

func (m *MockStore) DeleteSession(sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(sessionID)
	}
	return nil
}

func (m *MockStore) AddGame(sessionID, name string, placements map[string]int, roster map[string][]string, tables scoring.Tables) (Game, error) {
	m.mu.Lock()
	m.AddGameCalls = append(m.AddGameCalls, struct {
		SessionID  string
		Placements map[string]int
		Tables     scoring.Tables
	}{sessionID, placements, tables})
	m.mu.Unlock()
	if m.AddGameFunc != nil {
		return m.AddGameFunc(sessionID, name, placements, roster, tables)
	}
	return Game{SessionID: sessionID, Name: name, PlayerPlacements: placements, TeamPlayerMap: roster}, nil
}

func (m *MockStore) DeleteGame(sessionID, gameID string) error {
	if m.DeleteGameFunc != nil {
		return m.DeleteGameFunc(sessionID, gameID)
	}
	return nil
}

func (m *MockStore) AddPenalty(sessionID, teamID string, value int, reason string) (Penalty, error) {
	m.mu.Lock()
	m.AddPenaltyCalls = append(m.AddPenaltyCalls, struct {
		SessionID string
		TeamID    string
		Value     int
	}{sessionID, teamID, value})
	m.mu.Unlock()
	if m.AddPenaltyFunc != nil {
		return m.AddPenaltyFunc(sessionID, teamID, value, reason)
	}
	return Penalty{SessionID: sessionID, TeamID: teamID, Value: value, Reason: reason}, nil
}

func (m *MockStore) DeletePenalty(sessionID, penaltyID string) error {
	if m.DeletePenaltyFunc != nil {
		return m.DeletePenaltyFunc(sessionID, penaltyID)
	}
	return nil
}

func (m *MockStore) SessionScores(sessionID string) ([]standings.SessionScore, error) {
	if m.SessionScoresFunc != nil {
		return m.SessionScoresFunc(sessionID)
	}
	return nil, nil
}

func (m *MockStore) Leaderboard() ([]standings.LeaderboardEntry, error) {
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc()
	}
	return nil, nil
}

func (m *MockStore) BackfillTeamIdentity() error {
	if m.BackfillTeamIdentityFunc != nil {
		return m.BackfillTeamIdentityFunc()
	}
	return nil
}

func (m *MockStore) Export() (Snapshot, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc()
	}
	return Snapshot{}, nil
}

func (m *MockStore) Import(snapshot Snapshot) (ImportSummary, error) {
	m.mu.Lock()
	m.ImportCalls = append(m.ImportCalls, snapshot)
	m.mu.Unlock()
	if m.ImportFunc != nil {
		return m.ImportFunc(snapshot)
	}
	return ImportSummary{Teams: len(snapshot.Teams), Sessions: len(snapshot.Sessions)}, nil
}
