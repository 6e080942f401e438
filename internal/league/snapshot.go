package league

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Export serializes every team, session (with games and penalties) and
// settings row into a snapshot that Import can restore byte-for-byte:
// ids, colors, tags and settings values all survive the round trip.
func (s *store) Export() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	teams, err := s.listTeamsLocked()
	if err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{
		Teams:    make([]TeamSnapshot, 0, len(teams)),
		Sessions: make([]SessionSnapshot, 0),
		Settings: map[string]string{},
	}

	for _, team := range teams {
		snapshot.Teams = append(snapshot.Teams, TeamSnapshot{
			ID:        team.ID,
			Name:      team.Name,
			Players:   team.Players,
			Color:     team.Color,
			Tag:       team.Tag,
			CreatedAt: team.CreatedAt.Format(time.RFC3339),
		})
	}

	rows, err := s.db.Query("SELECT id, name, date, team_ids_json, status FROM sessions ORDER BY date, rowid")
	if err != nil {
		return Snapshot{}, err
	}
	defer rows.Close()

	sessions := make([]Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return Snapshot{}, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, err
	}

	for _, session := range sessions {
		if session.Games, err = s.loadGames(session.ID); err != nil {
			return Snapshot{}, err
		}
		if session.Penalties, err = s.loadPenalties(session.ID); err != nil {
			return Snapshot{}, err
		}

		out := SessionSnapshot{
			ID:        session.ID,
			Name:      session.Name,
			Date:      session.Date.Format(time.RFC3339),
			TeamIDs:   session.TeamIDs,
			Status:    session.Status,
			Games:     make([]GameSnapshot, 0, len(session.Games)),
			Penalties: make([]PenaltySnapshot, 0, len(session.Penalties)),
		}
		for _, game := range session.Games {
			out.Games = append(out.Games, GameSnapshot{
				ID:               game.ID,
				Name:             game.Name,
				PlayerPlacements: game.PlayerPlacements,
				PlayerPoints:     game.PlayerPoints,
				TeamPlayerMap:    game.TeamPlayerMap,
				Points:           game.Points,
				Placements:       game.Placements,
			})
		}
		for _, penalty := range session.Penalties {
			out.Penalties = append(out.Penalties, PenaltySnapshot{
				ID:     penalty.ID,
				TeamID: penalty.TeamID,
				Value:  penalty.Value,
				Reason: penalty.Reason,
			})
		}
		snapshot.Sessions = append(snapshot.Sessions, out)
	}

	settingsRows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return Snapshot{}, err
	}
	defer settingsRows.Close()
	for settingsRows.Next() {
		var key, value string
		if err := settingsRows.Scan(&key, &value); err != nil {
			return Snapshot{}, err
		}
		snapshot.Settings[key] = value
	}
	return snapshot, settingsRows.Err()
}

// Import restores a snapshot in a single transaction. Records are
// upserted, so re-importing an export over the same store is safe. Any
// validation failure rolls back the whole import; no partial writes
// survive.
func (s *store) Import(snapshot Snapshot) (ImportSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(snapshot.Teams) == 0 && len(snapshot.Sessions) == 0 {
		return ImportSummary{}, fmt.Errorf("%w: no data to import", ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return ImportSummary{}, err
	}

	summary, err := importLocked(tx, snapshot)
	if err != nil {
		tx.Rollback()
		return ImportSummary{}, err
	}
	if err := tx.Commit(); err != nil {
		return ImportSummary{}, err
	}

	log.Info("Imported snapshot", "teams", summary.Teams, "sessions", summary.Sessions)
	return summary, nil
}

func importLocked(tx execer, snapshot Snapshot) (ImportSummary, error) {
	var summary ImportSummary

	for _, team := range snapshot.Teams {
		if team.ID == "" {
			return ImportSummary{}, fmt.Errorf("%w: imported team is missing an id", ErrValidation)
		}
		createdAt := time.Now().UTC()
		if team.CreatedAt != "" {
			parsed, err := time.Parse(time.RFC3339, team.CreatedAt)
			if err != nil {
				return ImportSummary{}, fmt.Errorf("%w: bad createdAt for team %s: %v", ErrValidation, team.ID, err)
			}
			createdAt = parsed
		}
		playersJSON, err := json.Marshal(nonNil(team.Players))
		if err != nil {
			return ImportSummary{}, err
		}
		_, err = tx.Exec(`
			INSERT INTO teams (id, name, players_json, color, tag, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				players_json = excluded.players_json,
				color = excluded.color,
				tag = excluded.tag,
				created_at = excluded.created_at
		`, team.ID, team.Name, string(playersJSON), team.Color, team.Tag, createdAt.Unix())
		if err != nil {
			return ImportSummary{}, fmt.Errorf("failed to import team %s: %w", team.ID, err)
		}
		summary.Teams++
	}

	for _, session := range snapshot.Sessions {
		if session.ID == "" {
			return ImportSummary{}, fmt.Errorf("%w: imported session is missing an id", ErrValidation)
		}
		members := make(map[string]bool, len(session.TeamIDs))
		for _, teamID := range session.TeamIDs {
			members[teamID] = true
		}

		status := session.Status
		if status == "" {
			status = StatusActive
		}
		if status != StatusActive && status != StatusCompleted {
			return ImportSummary{}, fmt.Errorf("%w: session %s has invalid status %q", ErrValidation, session.ID, status)
		}

		date := time.Now().UTC()
		if session.Date != "" {
			parsed, err := time.Parse(time.RFC3339, session.Date)
			if err != nil {
				return ImportSummary{}, fmt.Errorf("%w: bad date for session %s: %v", ErrValidation, session.ID, err)
			}
			date = parsed
		}

		teamIDsJSON, err := json.Marshal(nonNil(session.TeamIDs))
		if err != nil {
			return ImportSummary{}, err
		}
		_, err = tx.Exec(`
			INSERT INTO sessions (id, name, date, team_ids_json, status)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				date = excluded.date,
				team_ids_json = excluded.team_ids_json,
				status = excluded.status
		`, session.ID, session.Name, date.Unix(), string(teamIDsJSON), status)
		if err != nil {
			return ImportSummary{}, fmt.Errorf("failed to import session %s: %w", session.ID, err)
		}

		for _, game := range session.Games {
			for teamID := range game.TeamPlayerMap {
				if !members[teamID] {
					return ImportSummary{}, fmt.Errorf("%w: game %s references team %q outside session %s",
						ErrValidation, game.ID, teamID, session.ID)
				}
			}
			_, err = tx.Exec(`
				INSERT INTO games (id, session_id, name, player_placements_json, player_points_json, team_player_map_json, points_json, placements_json)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					session_id = excluded.session_id,
					name = excluded.name,
					player_placements_json = excluded.player_placements_json,
					player_points_json = excluded.player_points_json,
					team_player_map_json = excluded.team_player_map_json,
					points_json = excluded.points_json,
					placements_json = excluded.placements_json
			`, game.ID, session.ID, game.Name,
				mustJSON(game.PlayerPlacements), mustJSON(game.PlayerPoints),
				mustJSON(game.TeamPlayerMap), mustJSON(game.Points), mustJSON(game.Placements))
			if err != nil {
				return ImportSummary{}, fmt.Errorf("failed to import game %s: %w", game.ID, err)
			}
		}

		for _, penalty := range session.Penalties {
			if !members[penalty.TeamID] {
				return ImportSummary{}, fmt.Errorf("%w: penalty %s references team %q outside session %s",
					ErrValidation, penalty.ID, penalty.TeamID, session.ID)
			}
			_, err = tx.Exec(`
				INSERT INTO penalties (id, session_id, team_id, value, reason)
				VALUES (?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					session_id = excluded.session_id,
					team_id = excluded.team_id,
					value = excluded.value,
					reason = excluded.reason
			`, penalty.ID, session.ID, penalty.TeamID, penalty.Value, penalty.Reason)
			if err != nil {
				return ImportSummary{}, fmt.Errorf("failed to import penalty %s: %w", penalty.ID, err)
			}
		}
		summary.Sessions++
	}

	for key, value := range snapshot.Settings {
		_, err := tx.Exec(`
			INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value)
		if err != nil {
			return ImportSummary{}, fmt.Errorf("failed to import setting %q: %w", key, err)
		}
	}

	return summary, nil
}

// mustJSON marshals map fields for storage. The maps come straight from
// decoded JSON, so encoding them back cannot fail.
func mustJSON(v any) string {
	encoded, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(encoded)
}

// nonNil keeps JSON columns as [] instead of null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
