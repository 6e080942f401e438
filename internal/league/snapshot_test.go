package league_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourney-hq/tourney-tracker/internal/database"
	"github.com/tourney-hq/tourney-tracker/internal/league"
	"github.com/tourney-hq/tourney-tracker/internal/scoring"
	"github.com/tourney-hq/tourney-tracker/internal/settings"
)

func TestExportImportRoundTrip(t *testing.T) {
	source, sourceDB := setupTestDB(t)

	alpha, err := source.CreateTeam("Alpha", []string{"Alice", "Bob"}, strPtr("#9b59b6"), strPtr("ALPH"))
	require.NoError(t, err)
	beta, err := source.CreateTeam("Beta", []string{"Carol", "Dave"}, nil, nil)
	require.NoError(t, err)
	t1, t2 := alpha.ID, beta.ID

	leagueName := "Winter League"
	_, err = settings.New(sourceDB).Update(settings.Update{LeagueName: &leagueName})
	require.NoError(t, err)

	session, err := source.CreateSession("Round 1", []string{t1, t2})
	require.NoError(t, err)
	_, err = source.AddGame(session.ID, "Game 1",
		map[string]int{"Alice": 1, "Bob": 2, "Carol": 3, "Dave": 4},
		map[string][]string{t1: {"Alice", "Bob"}, t2: {"Carol", "Dave"}},
		scoring.DefaultTables())
	require.NoError(t, err)
	_, err = source.AddPenalty(session.ID, t2, -2, "Unsportsmanlike")
	require.NoError(t, err)

	snapshot, err := source.Export()
	require.NoError(t, err)
	require.Len(t, snapshot.Teams, 2)
	require.Len(t, snapshot.Sessions, 1)
	require.Len(t, snapshot.Sessions[0].Games, 1)
	require.Len(t, snapshot.Sessions[0].Penalties, 1)

	// Restore into a fresh database.
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	t.Cleanup(teardown)
	target := league.New(db)

	summary, err := target.Import(snapshot)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Teams)
	assert.Equal(t, 1, summary.Sessions)

	restored, err := target.GetSession(session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.Name, restored.Name)
	assert.Equal(t, []string{t1, t2}, restored.TeamIDs)
	require.Len(t, restored.Games, 1)
	assert.Equal(t, map[string]int{t1: 7, t2: 3}, restored.Games[0].Points)
	require.Len(t, restored.Penalties, 1)
	assert.Equal(t, -2, restored.Penalties[0].Value)

	// Identity fields and settings survive the round trip untouched.
	team, err := target.GetTeam(t1)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", team.Name)
	require.NotNil(t, team.Color)
	assert.Equal(t, "#9b59b6", *team.Color)
	require.NotNil(t, team.Tag)
	assert.Equal(t, "ALPH", *team.Tag)

	plain, err := target.GetTeam(t2)
	require.NoError(t, err)
	assert.Nil(t, plain.Color)
	assert.Nil(t, plain.Tag)

	restoredSettings, err := settings.New(db).Get()
	require.NoError(t, err)
	assert.Equal(t, "Winter League", restoredSettings.LeagueName)

	scores, err := target.SessionScores(session.ID)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, 7, scores[0].Total)
	assert.Equal(t, 1, scores[1].Total)
}

func TestExportIncludesSettings(t *testing.T) {
	store, db := setupTestDB(t)
	settingsStore := settings.New(db)

	name := "Winter League"
	_, err := settingsStore.Update(settings.Update{LeagueName: &name})
	require.NoError(t, err)
	createTeams(t, store, "Alpha")

	snapshot, err := store.Export()
	require.NoError(t, err)
	assert.Equal(t, "Winter League", snapshot.Settings["league_name"])
}

func TestImportIsIdempotent(t *testing.T) {
	store, db := setupTestDB(t)
	teams := createTeams(t, store, "Alpha")

	session, err := store.CreateSession("Round 1", []string{teams[0].ID})
	require.NoError(t, err)

	snapshot, err := store.Export()
	require.NoError(t, err)

	_, err = store.Import(snapshot)
	require.NoError(t, err)
	_, err = store.Import(snapshot)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count))
	assert.Equal(t, 1, count)

	restored, err := store.GetSession(session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Round 1", restored.Name)
}

func TestImportValidation(t *testing.T) {
	t.Run("empty snapshot", func(t *testing.T) {
		store, _ := setupTestDB(t)
		_, err := store.Import(league.Snapshot{})
		assert.ErrorIs(t, err, league.ErrValidation)
	})

	t.Run("game referencing a foreign team rolls everything back", func(t *testing.T) {
		store, db := setupTestDB(t)
		snapshot := league.Snapshot{
			Teams: []league.TeamSnapshot{
				{ID: "team-one", Name: "Alpha", CreatedAt: "2026-01-05T10:00:00Z"},
			},
			Sessions: []league.SessionSnapshot{
				{
					ID:      "sess-one",
					Name:    "Round 1",
					Date:    "2026-01-06T18:00:00Z",
					TeamIDs: []string{"team-one"},
					Status:  league.StatusActive,
					Games: []league.GameSnapshot{
						{
							ID:            "game-one",
							Name:          "Game 1",
							TeamPlayerMap: map[string][]string{"stranger": {"X"}},
						},
					},
				},
			},
		}

		_, err := store.Import(snapshot)
		assert.ErrorIs(t, err, league.ErrValidation)

		var teamCount, sessionCount int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM teams").Scan(&teamCount))
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&sessionCount))
		assert.Zero(t, teamCount, "team insert must be rolled back")
		assert.Zero(t, sessionCount)
	})

	t.Run("bad timestamp", func(t *testing.T) {
		store, _ := setupTestDB(t)
		_, err := store.Import(league.Snapshot{
			Teams: []league.TeamSnapshot{{ID: "t1", Name: "Alpha", CreatedAt: "yesterday"}},
		})
		assert.ErrorIs(t, err, league.ErrValidation)
	})

	t.Run("invalid session status", func(t *testing.T) {
		store, _ := setupTestDB(t)
		_, err := store.Import(league.Snapshot{
			Sessions: []league.SessionSnapshot{
				{ID: "s1", Name: "Round 1", Status: "paused"},
			},
		})
		assert.ErrorIs(t, err, league.ErrValidation)
	})
}
