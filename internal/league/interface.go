package league

import (
	"github.com/tourney-hq/tourney-tracker/internal/scoring"
	"github.com/tourney-hq/tourney-tracker/internal/standings"
)

// LeagueStore defines the interface for interacting with the league's data.
type LeagueStore interface {
	CreateTeam(name string, players []string, color, tag *string) (Team, error)
	GetTeam(teamID string) (Team, error)
	ListTeams() ([]Team, error)
	UpdateTeam(teamID, name string, players []string, color, tag *string) (Team, error)
	DeleteTeam(teamID string) error

	CreateSession(name string, teamIDs []string) (Session, error)
	GetSession(sessionID string) (Session, error)
	ListSessions(status string) ([]Session, error)
	UpdateSession(sessionID string, name, status *string) (Session, error)
	DeleteSession(sessionID string) error

	// AddGame computes the frozen point mappings from the placements and
	// roster using the given tables, then persists the game. Every roster
	// team must be a member of the session.
	AddGame(sessionID, name string, placements map[string]int, roster map[string][]string, tables scoring.Tables) (Game, error)
	DeleteGame(sessionID, gameID string) error
	AddPenalty(sessionID, teamID string, value int, reason string) (Penalty, error)
	DeletePenalty(sessionID, penaltyID string) error

	SessionScores(sessionID string) ([]standings.SessionScore, error)
	Leaderboard() ([]standings.LeaderboardEntry, error)

	// BackfillTeamIdentity assigns default colors and tags to teams missing
	// them. Idempotent; run once at startup.
	BackfillTeamIdentity() error

	Export() (Snapshot, error)
	Import(snapshot Snapshot) (ImportSummary, error)
}
