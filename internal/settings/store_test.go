package settings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourney-hq/tourney-tracker/internal/database"
	"github.com/tourney-hq/tourney-tracker/internal/scoring"
	"github.com/tourney-hq/tourney-tracker/internal/settings"
)

func setupTestStore(t *testing.T) settings.SettingsStore {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return settings.New(db)
}

func TestGetDefaults(t *testing.T) {
	store := setupTestStore(t)

	current, err := store.Get()
	require.NoError(t, err)

	assert.Equal(t, "Pro League", current.LeagueName)
	assert.Equal(t, "Season 4", current.Season)
	assert.Equal(t, "", current.Description)
	assert.Equal(t, scoring.DefaultConfig(), current.Scoring)
	assert.Equal(t, scoring.DefaultTwoPlayerConfig(), current.Scoring2P)
}

func TestUpdatePartial(t *testing.T) {
	store := setupTestStore(t)

	name := "Basement League"
	updated, err := store.Update(settings.Update{LeagueName: &name})
	require.NoError(t, err)

	assert.Equal(t, "Basement League", updated.LeagueName)
	// Untouched fields keep their defaults.
	assert.Equal(t, "Season 4", updated.Season)
	assert.Equal(t, scoring.DefaultConfig(), updated.Scoring)
}

func TestUpdateScoringTables(t *testing.T) {
	store := setupTestStore(t)

	custom := scoring.Config{First: 10, Second: 7, Third: 5, Fourth: 2}
	custom2p := scoring.TwoPlayerConfig{First: 3, Second: 0}
	updated, err := store.Update(settings.Update{Scoring: &custom, Scoring2P: &custom2p})
	require.NoError(t, err)

	assert.Equal(t, custom, updated.Scoring)
	assert.Equal(t, custom2p, updated.Scoring2P)

	tables, err := store.ScoringTables()
	require.NoError(t, err)
	assert.Equal(t, custom, tables.Standard)
	assert.Equal(t, custom2p, tables.TwoPlayer)
}

func TestUpdatePersistsAcrossReads(t *testing.T) {
	store := setupTestStore(t)

	season := "Season 5"
	_, err := store.Update(settings.Update{Season: &season})
	require.NoError(t, err)

	current, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "Season 5", current.Season)
}

func TestUpdateOverwritesExistingKey(t *testing.T) {
	store := setupTestStore(t)

	first := "League A"
	second := "League B"
	_, err := store.Update(settings.Update{LeagueName: &first})
	require.NoError(t, err)
	updated, err := store.Update(settings.Update{LeagueName: &second})
	require.NoError(t, err)

	assert.Equal(t, "League B", updated.LeagueName)
}
