package settings

import "github.com/tourney-hq/tourney-tracker/internal/scoring"

// SettingsStore defines the interface for reading and updating league
// settings.
type SettingsStore interface {
	Get() (Settings, error)
	Update(update Update) (Settings, error)
	// ScoringTables reads the current point tables. Callers read them once
	// per operation; stored games keep the points frozen at creation time.
	ScoringTables() (scoring.Tables, error)
}
