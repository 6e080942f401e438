package settings

import (
	"database/sql"
	"sync"

	"github.com/tourney-hq/tourney-tracker/internal/scoring"
)

// store handles all database operations for league settings.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Settings is the structured view over the persisted key-value rows.
type Settings struct {
	LeagueName  string                  `json:"league_name"`
	Season      string                  `json:"season"`
	Description string                  `json:"description"`
	Scoring     scoring.Config          `json:"scoring"`
	Scoring2P   scoring.TwoPlayerConfig `json:"scoring_2p"`
}

// Update carries a partial settings change; nil fields are left untouched.
type Update struct {
	LeagueName  *string                  `json:"league_name"`
	Season      *string                  `json:"season"`
	Description *string                  `json:"description"`
	Scoring     *scoring.Config          `json:"scoring"`
	Scoring2P   *scoring.TwoPlayerConfig `json:"scoring_2p"`
}

// Setting keys as stored in the settings table. The two scoring tables are
// JSON-encoded.
const (
	keyLeagueName  = "league_name"
	keySeason      = "season"
	keyDescription = "description"
	keyScoring     = "scoring"
	keyScoring2P   = "scoring_2p"
)

// Defaults applied until a key is explicitly written.
const (
	defaultLeagueName = "Pro League"
	defaultSeason     = "Season 4"
)
