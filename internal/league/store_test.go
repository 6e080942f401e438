package league_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourney-hq/tourney-tracker/internal/database"
	"github.com/tourney-hq/tourney-tracker/internal/league"
	"github.com/tourney-hq/tourney-tracker/internal/scoring"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (league.LeagueStore, *sql.DB) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return league.New(db), db
}

func strPtr(s string) *string { return &s }

func createTeams(t *testing.T, store league.LeagueStore, names ...string) []league.Team {
	t.Helper()
	teams := make([]league.Team, 0, len(names))
	for _, name := range names {
		team, err := store.CreateTeam(name, []string{name + " P1", name + " P2"}, nil, nil)
		require.NoError(t, err)
		teams = append(teams, team)
	}
	return teams
}

func TestCreateAndGetTeam(t *testing.T) {
	store, _ := setupTestDB(t)

	team, err := store.CreateTeam("  The Regulars  ", []string{" Alice ", "", "Bob"}, strPtr("#3498db"), strPtr(" REGS "))
	require.NoError(t, err)

	assert.Len(t, team.ID, 12)
	assert.Equal(t, "The Regulars", team.Name)
	assert.Equal(t, []string{"Alice", "Bob"}, team.Players)
	require.NotNil(t, team.Color)
	assert.Equal(t, "#3498db", *team.Color)
	require.NotNil(t, team.Tag)
	assert.Equal(t, "REGS", *team.Tag)

	loaded, err := store.GetTeam(team.ID)
	require.NoError(t, err)
	assert.Equal(t, team.ID, loaded.ID)
	assert.Equal(t, team.Players, loaded.Players)
}

func TestCreateTeamValidation(t *testing.T) {
	store, _ := setupTestDB(t)

	_, err := store.CreateTeam("   ", []string{"A"}, nil, nil)
	assert.ErrorIs(t, err, league.ErrValidation)
}

func TestCreateTeamTruncatesLongTag(t *testing.T) {
	store, _ := setupTestDB(t)

	team, err := store.CreateTeam("Team", nil, nil, strPtr("LONGTAG"))
	require.NoError(t, err)
	require.NotNil(t, team.Tag)
	assert.Equal(t, "LONG", *team.Tag)
}

func TestUpdateTeam(t *testing.T) {
	store, _ := setupTestDB(t)
	teams := createTeams(t, store, "Original")

	updated, err := store.UpdateTeam(teams[0].ID, "Renamed", []string{"Carol"}, strPtr("#e74c3c"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, []string{"Carol"}, updated.Players)
	assert.Nil(t, updated.Tag)

	loaded, err := store.GetTeam(teams[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", loaded.Name)
}

func TestDeleteTeam(t *testing.T) {
	store, _ := setupTestDB(t)
	teams := createTeams(t, store, "Doomed")

	require.NoError(t, store.DeleteTeam(teams[0].ID))

	_, err := store.GetTeam(teams[0].ID)
	assert.ErrorIs(t, err, league.ErrTeamNotFound)
	assert.ErrorIs(t, store.DeleteTeam(teams[0].ID), league.ErrTeamNotFound)
}

func TestCreateSessionValidation(t *testing.T) {
	store, _ := setupTestDB(t)
	teams := createTeams(t, store, "Alpha")

	t.Run("empty team list", func(t *testing.T) {
		_, err := store.CreateSession("Round 1", nil)
		assert.ErrorIs(t, err, league.ErrValidation)
	})

	t.Run("unknown team", func(t *testing.T) {
		_, err := store.CreateSession("Round 1", []string{teams[0].ID, "missing"})
		assert.ErrorIs(t, err, league.ErrValidation)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := store.CreateSession("  ", []string{teams[0].ID})
		assert.ErrorIs(t, err, league.ErrValidation)
	})
}

func TestSessionLifecycle(t *testing.T) {
	store, _ := setupTestDB(t)
	teams := createTeams(t, store, "Alpha", "Beta")
	teamIDs := []string{teams[0].ID, teams[1].ID}

	session, err := store.CreateSession("Round 1", teamIDs)
	require.NoError(t, err)
	assert.Equal(t, league.StatusActive, session.Status)
	assert.Equal(t, teamIDs, session.TeamIDs)

	t.Run("list filters by status", func(t *testing.T) {
		active, err := store.ListSessions(league.StatusActive)
		require.NoError(t, err)
		assert.Len(t, active, 1)

		completed, err := store.ListSessions(league.StatusCompleted)
		require.NoError(t, err)
		assert.Empty(t, completed)
	})

	t.Run("complete the session", func(t *testing.T) {
		status := league.StatusCompleted
		updated, err := store.UpdateSession(session.ID, nil, &status)
		require.NoError(t, err)
		assert.Equal(t, league.StatusCompleted, updated.Status)
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		bad := "paused"
		_, err := store.UpdateSession(session.ID, nil, &bad)
		assert.ErrorIs(t, err, league.ErrValidation)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.DeleteSession(session.ID))
		_, err := store.GetSession(session.ID)
		assert.ErrorIs(t, err, league.ErrSessionNotFound)
	})
}

func TestAddGameFreezesPoints(t *testing.T) {
	store, _ := setupTestDB(t)
	teams := createTeams(t, store, "Alpha", "Beta")
	t1, t2 := teams[0].ID, teams[1].ID

	session, err := store.CreateSession("Round 1", []string{t1, t2})
	require.NoError(t, err)

	placements := map[string]int{"Alice": 1, "Bob": 2, "Carol": 3, "Dave": 4}
	roster := map[string][]string{t1: {"Alice", "Bob"}, t2: {"Carol", "Dave"}}

	game, err := store.AddGame(session.ID, "Game 1", placements, roster, scoring.DefaultTables())
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"Alice": 4, "Bob": 3, "Carol": 2, "Dave": 1}, game.PlayerPoints)
	assert.Equal(t, map[string]int{t1: 7, t2: 3}, game.Points)
	assert.Equal(t, map[string]int{t1: 1, t2: 3}, game.Placements)

	// A later config change must not touch the stored game.
	custom := scoring.Tables{
		Standard:  scoring.Config{First: 10, Second: 7, Third: 5, Fourth: 2},
		TwoPlayer: scoring.DefaultTwoPlayerConfig(),
	}
	fresh, err := store.AddGame(session.ID, "Game 2", placements, roster, custom)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{t1: 17, t2: 7}, fresh.Points)

	loaded, err := store.GetSession(session.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Games, 2)
	assert.Equal(t, map[string]int{t1: 7, t2: 3}, loaded.Games[0].Points)
	assert.Equal(t, map[string]int{t1: 17, t2: 7}, loaded.Games[1].Points)
}

func TestAddGameRejectsForeignTeam(t *testing.T) {
	store, db := setupTestDB(t)
	teams := createTeams(t, store, "Alpha", "Beta")

	session, err := store.CreateSession("Round 1", []string{teams[0].ID})
	require.NoError(t, err)

	_, err = store.AddGame(session.ID, "Game 1",
		map[string]int{"A": 1, "B": 2},
		map[string][]string{teams[0].ID: {"A"}, teams[1].ID: {"B"}},
		scoring.DefaultTables())
	assert.ErrorIs(t, err, league.ErrValidation)

	// Nothing was written.
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM games").Scan(&count))
	assert.Zero(t, count)
}

func TestAddGameUnknownSession(t *testing.T) {
	store, _ := setupTestDB(t)

	_, err := store.AddGame("nope", "Game 1",
		map[string]int{"A": 1}, map[string][]string{"t1": {"A"}}, scoring.DefaultTables())
	assert.ErrorIs(t, err, league.ErrSessionNotFound)
}

func TestPenalties(t *testing.T) {
	store, _ := setupTestDB(t)
	teams := createTeams(t, store, "Alpha", "Beta")

	session, err := store.CreateSession("Round 1", []string{teams[0].ID, teams[1].ID})
	require.NoError(t, err)

	penalty, err := store.AddPenalty(session.ID, teams[0].ID, -2, "Late arrival")
	require.NoError(t, err)
	assert.Equal(t, -2, penalty.Value)

	t.Run("team outside the session is rejected", func(t *testing.T) {
		_, err := store.AddPenalty(session.ID, "outsider", -1, "nope")
		assert.ErrorIs(t, err, league.ErrValidation)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.DeletePenalty(session.ID, penalty.ID))
		assert.ErrorIs(t, store.DeletePenalty(session.ID, penalty.ID), league.ErrPenaltyNotFound)
	})
}

func TestDeleteSessionCascades(t *testing.T) {
	store, db := setupTestDB(t)
	teams := createTeams(t, store, "Alpha")

	session, err := store.CreateSession("Round 1", []string{teams[0].ID})
	require.NoError(t, err)

	_, err = store.AddGame(session.ID, "Game 1",
		map[string]int{"A": 1}, map[string][]string{teams[0].ID: {"A"}}, scoring.DefaultTables())
	require.NoError(t, err)
	_, err = store.AddPenalty(session.ID, teams[0].ID, -1, "Late")
	require.NoError(t, err)

	require.NoError(t, store.DeleteSession(session.ID))

	var games, penalties int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM games").Scan(&games))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM penalties").Scan(&penalties))
	assert.Zero(t, games)
	assert.Zero(t, penalties)
}

func TestSessionScores(t *testing.T) {
	store, _ := setupTestDB(t)
	teams := createTeams(t, store, "Alpha", "Beta")
	t1, t2 := teams[0].ID, teams[1].ID

	session, err := store.CreateSession("Round 1", []string{t1, t2})
	require.NoError(t, err)

	_, err = store.AddGame(session.ID, "Game 1",
		map[string]int{"Alice": 1, "Bob": 2, "Carol": 3, "Dave": 4},
		map[string][]string{t1: {"Alice", "Bob"}, t2: {"Carol", "Dave"}},
		scoring.DefaultTables())
	require.NoError(t, err)
	_, err = store.AddPenalty(session.ID, t1, -1, "Late")
	require.NoError(t, err)

	scores, err := store.SessionScores(session.ID)
	require.NoError(t, err)
	require.Len(t, scores, 2)

	assert.Equal(t, t1, scores[0].TeamID)
	assert.Equal(t, 7, scores[0].GamePoints)
	assert.Equal(t, -1, scores[0].PenaltyPoints)
	assert.Equal(t, 6, scores[0].Total)
	assert.Equal(t, t2, scores[1].TeamID)
	assert.Equal(t, 3, scores[1].Total)
}

func TestLeaderboardOnlyCountsCompletedSessions(t *testing.T) {
	store, _ := setupTestDB(t)
	teams := createTeams(t, store, "Alpha", "Beta")
	t1, t2 := teams[0].ID, teams[1].ID

	session, err := store.CreateSession("Round 1", []string{t1, t2})
	require.NoError(t, err)
	_, err = store.AddGame(session.ID, "Game 1",
		map[string]int{"Alice": 1, "Bob": 2, "Carol": 3, "Dave": 4},
		map[string][]string{t1: {"Alice", "Bob"}, t2: {"Carol", "Dave"}},
		scoring.DefaultTables())
	require.NoError(t, err)
	_, err = store.AddPenalty(session.ID, t1, -1, "Late")
	require.NoError(t, err)

	entries, err := store.Leaderboard()
	require.NoError(t, err)
	assert.Empty(t, entries, "active sessions must not contribute")

	status := league.StatusCompleted
	_, err = store.UpdateSession(session.ID, nil, &status)
	require.NoError(t, err)

	entries, err = store.Leaderboard()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, t1, entries[0].TeamID)
	assert.Equal(t, 6, entries[0].TotalPoints)
	assert.Equal(t, 1, entries[0].Wins)
	assert.Equal(t, 1, entries[0].Sessions)

	assert.Equal(t, t2, entries[1].TeamID)
	assert.Equal(t, 3, entries[1].TotalPoints)
	assert.Equal(t, 0, entries[1].Wins)
	assert.Equal(t, 1, entries[1].Sessions)
}
