package settings

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/tourney-hq/tourney-tracker/internal/scoring"
)

// New creates a new SettingsStore.
func New(db *sql.DB) SettingsStore {
	return &store{db: db}
}

// Get reads all settings rows and applies defaults for absent keys.
func (s *store) Get() (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLocked()
}

func (s *store) getLocked() (Settings, error) {
	raw, err := s.readAll()
	if err != nil {
		return Settings{}, err
	}
	return buildSettings(raw), nil
}

// Update writes the non-nil fields and returns the resulting settings.
func (s *store) Update(update Update) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updates := map[string]string{}
	if update.LeagueName != nil {
		updates[keyLeagueName] = *update.LeagueName
	}
	if update.Season != nil {
		updates[keySeason] = *update.Season
	}
	if update.Description != nil {
		updates[keyDescription] = *update.Description
	}
	if update.Scoring != nil {
		encoded, err := json.Marshal(update.Scoring)
		if err != nil {
			return Settings{}, fmt.Errorf("failed to encode scoring table: %w", err)
		}
		updates[keyScoring] = string(encoded)
	}
	if update.Scoring2P != nil {
		encoded, err := json.Marshal(update.Scoring2P)
		if err != nil {
			return Settings{}, fmt.Errorf("failed to encode 2-player scoring table: %w", err)
		}
		updates[keyScoring2P] = string(encoded)
	}

	if len(updates) > 0 {
		tx, err := s.db.Begin()
		if err != nil {
			return Settings{}, err
		}
		for key, value := range updates {
			_, err := tx.Exec(`
				INSERT INTO settings (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value
			`, key, value)
			if err != nil {
				tx.Rollback()
				return Settings{}, fmt.Errorf("failed to write setting %q: %w", key, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return Settings{}, err
		}
		log.Info("Updated settings", "keys", len(updates))
	}

	return s.getLocked()
}

// ScoringTables reads the current point tables, falling back to the
// defaults for keys that were never written.
func (s *store) ScoringTables() (scoring.Tables, error) {
	current, err := s.Get()
	if err != nil {
		return scoring.Tables{}, err
	}
	return scoring.Tables{Standard: current.Scoring, TwoPlayer: current.Scoring2P}, nil
}

func (s *store) readAll() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	raw := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		raw[key] = value
	}
	return raw, rows.Err()
}

func buildSettings(raw map[string]string) Settings {
	result := Settings{
		LeagueName:  defaultLeagueName,
		Season:      defaultSeason,
		Description: "",
		Scoring:     scoring.DefaultConfig(),
		Scoring2P:   scoring.DefaultTwoPlayerConfig(),
	}
	if v, ok := raw[keyLeagueName]; ok {
		result.LeagueName = v
	}
	if v, ok := raw[keySeason]; ok {
		result.Season = v
	}
	if v, ok := raw[keyDescription]; ok {
		result.Description = v
	}
	if v, ok := raw[keyScoring]; ok {
		if err := json.Unmarshal([]byte(v), &result.Scoring); err != nil {
			log.Error("Failed to decode stored scoring table, using defaults", "error", err)
			result.Scoring = scoring.DefaultConfig()
		}
	}
	if v, ok := raw[keyScoring2P]; ok {
		if err := json.Unmarshal([]byte(v), &result.Scoring2P); err != nil {
			log.Error("Failed to decode stored 2-player scoring table, using defaults", "error", err)
			result.Scoring2P = scoring.DefaultTwoPlayerConfig()
		}
	}
	return result
}
