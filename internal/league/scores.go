package league

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tourney-hq/tourney-tracker/internal/scoring"
	"github.com/tourney-hq/tourney-tracker/internal/standings"
)

// AddGame computes the frozen point mappings and persists the game. All
// validation runs before the insert; nothing is written on failure.
func (s *store) AddGame(sessionID, name string, placements map[string]int, roster map[string][]string, tables scoring.Tables) (Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.getSessionLocked(sessionID)
	if err != nil {
		return Game{}, err
	}

	members := make(map[string]bool, len(session.TeamIDs))
	for _, teamID := range session.TeamIDs {
		members[teamID] = true
	}
	for teamID := range roster {
		if !members[teamID] {
			return Game{}, fmt.Errorf("%w: team %q is not part of session %s", ErrValidation, teamID, sessionID)
		}
	}

	result, err := scoring.CalculateGame(tables, placements, roster)
	if err != nil {
		if errors.Is(err, scoring.ErrValidation) {
			return Game{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return Game{}, err
	}

	game := Game{
		ID:               newID(),
		SessionID:        sessionID,
		Name:             strings.TrimSpace(name),
		PlayerPlacements: placements,
		PlayerPoints:     result.PlayerPoints,
		TeamPlayerMap:    roster,
		Points:           result.TeamPoints,
		Placements:       result.TeamPlacements,
	}

	if err := s.insertGame(s.db, game); err != nil {
		return Game{}, fmt.Errorf("failed to insert game: %w", err)
	}

	log.Info("Recorded game", "sessionID", sessionID, "gameID", game.ID, "entrants", len(placements))
	return game, nil
}

func (s *store) DeleteGame(sessionID, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec("DELETE FROM games WHERE session_id = ? AND id = ?", sessionID, gameID)
	if err != nil {
		return err
	}
	return checkAffected(result, ErrGameNotFound)
}

// AddPenalty records a penalty against one of the session's teams.
func (s *store) AddPenalty(sessionID, teamID string, value int, reason string) (Penalty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.getSessionLocked(sessionID)
	if err != nil {
		return Penalty{}, err
	}

	member := false
	for _, id := range session.TeamIDs {
		if id == teamID {
			member = true
			break
		}
	}
	if !member {
		return Penalty{}, fmt.Errorf("%w: team %q is not part of session %s", ErrValidation, teamID, sessionID)
	}

	penalty := Penalty{
		ID:        newID(),
		SessionID: sessionID,
		TeamID:    teamID,
		Value:     value,
		Reason:    reason,
	}
	_, err = s.db.Exec(`
		INSERT INTO penalties (id, session_id, team_id, value, reason)
		VALUES (?, ?, ?, ?, ?)
	`, penalty.ID, penalty.SessionID, penalty.TeamID, penalty.Value, penalty.Reason)
	if err != nil {
		return Penalty{}, fmt.Errorf("failed to insert penalty: %w", err)
	}

	log.Info("Recorded penalty", "sessionID", sessionID, "teamID", teamID, "value", value)
	return penalty, nil
}

func (s *store) DeletePenalty(sessionID, penaltyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec("DELETE FROM penalties WHERE session_id = ? AND id = ?", sessionID, penaltyID)
	if err != nil {
		return err
	}
	return checkAffected(result, ErrPenaltyNotFound)
}

// SessionScores aggregates a session's stored game and penalty points into
// per-team scores, recomputed from the stored aggregates on every call.
func (s *store) SessionScores(sessionID string) ([]standings.SessionScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.getSessionLocked(sessionID)
	if err != nil {
		return nil, err
	}
	return standings.ScoreSession(sessionInput(session)), nil
}

// Leaderboard aggregates every completed session into cumulative standings.
func (s *store) Leaderboard() ([]standings.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, date, team_ids_json, status
		FROM sessions WHERE status = ? ORDER BY date, rowid
	`, StatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	completed := make([]Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		completed = append(completed, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	inputs := make([]standings.SessionInput, 0, len(completed))
	for _, session := range completed {
		if session.Games, err = s.loadGames(session.ID); err != nil {
			return nil, err
		}
		if session.Penalties, err = s.loadPenalties(session.ID); err != nil {
			return nil, err
		}
		inputs = append(inputs, sessionInput(session))
	}
	return standings.Leaderboard(inputs), nil
}

// sessionInput projects a loaded session onto the slice the aggregators
// consume.
func sessionInput(session Session) standings.SessionInput {
	in := standings.SessionInput{
		TeamIDs:   session.TeamIDs,
		Games:     make([]standings.TeamPoints, 0, len(session.Games)),
		Penalties: make([]standings.PenaltyPoints, 0, len(session.Penalties)),
	}
	for _, game := range session.Games {
		in.Games = append(in.Games, game.Points)
	}
	for _, penalty := range session.Penalties {
		in.Penalties = append(in.Penalties, standings.PenaltyPoints{TeamID: penalty.TeamID, Value: penalty.Value})
	}
	return in
}

// --- persistence helpers ---

// execer lets game inserts run against either the connection or an open
// transaction (import uses the latter).
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (s *store) insertGame(exec execer, game Game) error {
	placementsJSON, err := json.Marshal(game.PlayerPlacements)
	if err != nil {
		return err
	}
	pointsJSON, err := json.Marshal(game.PlayerPoints)
	if err != nil {
		return err
	}
	rosterJSON, err := json.Marshal(game.TeamPlayerMap)
	if err != nil {
		return err
	}
	teamPointsJSON, err := json.Marshal(game.Points)
	if err != nil {
		return err
	}
	teamPlacementsJSON, err := json.Marshal(game.Placements)
	if err != nil {
		return err
	}
	_, err = exec.Exec(`
		INSERT INTO games (id, session_id, name, player_placements_json, player_points_json, team_player_map_json, points_json, placements_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, game.ID, game.SessionID, game.Name, string(placementsJSON), string(pointsJSON), string(rosterJSON), string(teamPointsJSON), string(teamPlacementsJSON))
	return err
}

func (s *store) loadGames(sessionID string) ([]Game, error) {
	rows, err := s.db.Query(`
		SELECT id, session_id, name, player_placements_json, player_points_json, team_player_map_json, points_json, placements_json
		FROM games WHERE session_id = ? ORDER BY rowid
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]Game, 0)
	for rows.Next() {
		var game Game
		var placementsJSON, pointsJSON, rosterJSON, teamPointsJSON, teamPlacementsJSON string
		err := rows.Scan(&game.ID, &game.SessionID, &game.Name,
			&placementsJSON, &pointsJSON, &rosterJSON, &teamPointsJSON, &teamPlacementsJSON)
		if err != nil {
			return nil, err
		}
		for _, col := range []struct {
			raw  string
			dest any
		}{
			{placementsJSON, &game.PlayerPlacements},
			{pointsJSON, &game.PlayerPoints},
			{rosterJSON, &game.TeamPlayerMap},
			{teamPointsJSON, &game.Points},
			{teamPlacementsJSON, &game.Placements},
		} {
			if err := json.Unmarshal([]byte(col.raw), col.dest); err != nil {
				return nil, fmt.Errorf("failed to decode game %s: %w", game.ID, err)
			}
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

func (s *store) loadPenalties(sessionID string) ([]Penalty, error) {
	rows, err := s.db.Query(`
		SELECT id, session_id, team_id, value, reason
		FROM penalties WHERE session_id = ? ORDER BY rowid
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	penalties := make([]Penalty, 0)
	for rows.Next() {
		var penalty Penalty
		if err := rows.Scan(&penalty.ID, &penalty.SessionID, &penalty.TeamID, &penalty.Value, &penalty.Reason); err != nil {
			return nil, err
		}
		penalties = append(penalties, penalty)
	}
	return penalties, rows.Err()
}
