package league_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackfillTeamIdentity(t *testing.T) {
	store, _ := setupTestDB(t)

	first, err := store.CreateTeam("The Regulars", nil, nil, nil)
	require.NoError(t, err)
	second, err := store.CreateTeam("Sharks", nil, strPtr("#123456"), strPtr("SHRK"))
	require.NoError(t, err)
	third, err := store.CreateTeam("Untouchables", nil, nil, nil)
	require.NoError(t, err)

	require.NoError(t, store.BackfillTeamIdentity())

	// One team was already colored, so the rotation starts at slot 1.
	loaded, err := store.GetTeam(first.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Color)
	assert.Equal(t, "#3498db", *loaded.Color, "first colorless team gets the palette slot after existing colors")
	require.NotNil(t, loaded.Tag)
	assert.Equal(t, "TR", *loaded.Tag)

	kept, err := store.GetTeam(second.ID)
	require.NoError(t, err)
	assert.Equal(t, "#123456", *kept.Color)
	assert.Equal(t, "SHRK", *kept.Tag)

	next, err := store.GetTeam(third.ID)
	require.NoError(t, err)
	require.NotNil(t, next.Color)
	assert.Equal(t, "#2ecc71", *next.Color)
	assert.Equal(t, "UNT", *next.Tag)

	t.Run("second run changes nothing", func(t *testing.T) {
		require.NoError(t, store.BackfillTeamIdentity())
		again, err := store.GetTeam(first.ID)
		require.NoError(t, err)
		assert.Equal(t, *loaded.Color, *again.Color)
		assert.Equal(t, *loaded.Tag, *again.Tag)
	})
}

func TestBackfillFollowsCreationOrder(t *testing.T) {
	store, _ := setupTestDB(t)

	// All teams land within the same second, so only insertion order can
	// keep the palette rotation deterministic.
	names := []string{"One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten"}
	teams := createTeams(t, store, names...)

	listed, err := store.ListTeams()
	require.NoError(t, err)
	require.Len(t, listed, len(names))
	for i, team := range listed {
		assert.Equal(t, names[i], team.Name, "position %d", i)
	}

	rotation := []string{
		"#e74c3c", "#3498db", "#2ecc71", "#f39c12",
		"#9b59b6", "#1abc9c", "#e67e22", "#e91e63",
	}
	require.NoError(t, store.BackfillTeamIdentity())
	for i, team := range teams {
		loaded, err := store.GetTeam(team.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded.Color)
		assert.Equal(t, rotation[i%len(rotation)], *loaded.Color, "color for %s", team.Name)
	}
}

func TestBackfillOffsetsByExistingColors(t *testing.T) {
	store, _ := setupTestDB(t)

	_, err := store.CreateTeam("Colored", nil, strPtr("#ffffff"), strPtr("COL"))
	require.NoError(t, err)
	plain, err := store.CreateTeam("Plain", nil, nil, nil)
	require.NoError(t, err)

	require.NoError(t, store.BackfillTeamIdentity())

	loaded, err := store.GetTeam(plain.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Color)
	assert.Equal(t, "#3498db", *loaded.Color, "one pre-colored team shifts the rotation by one")
}

func TestDefaultTagShapes(t *testing.T) {
	store, _ := setupTestDB(t)

	cases := map[string]string{
		"Ace":              "ACE",
		"the fast runners": "TFR",
		"Longsingleword":   "LON",
		"A B C D E":        "ABCD",
	}
	for name, want := range cases {
		team, err := store.CreateTeam(name, nil, nil, nil)
		require.NoError(t, err)
		require.NoError(t, store.BackfillTeamIdentity())
		loaded, err := store.GetTeam(team.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded.Tag)
		assert.Equal(t, want, *loaded.Tag, "tag for %q", name)
	}
}
