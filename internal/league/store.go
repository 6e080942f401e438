package league

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new LeagueStore.
func New(db *sql.DB) LeagueStore {
	return &store{db: db}
}

// newID returns a short random identifier, 12 hex chars.
func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

const maxTagLen = 4

// cleanPlayers trims player names and drops blank entries.
func cleanPlayers(players []string) []string {
	cleaned := make([]string, 0, len(players))
	for _, p := range players {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

// cleanTag trims a tag and truncates it to the maximum length. Blank tags
// become nil.
func cleanTag(tag *string) *string {
	if tag == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*tag)
	if trimmed == "" {
		return nil
	}
	if runes := []rune(trimmed); len(runes) > maxTagLen {
		trimmed = string(runes[:maxTagLen])
	}
	return &trimmed
}

func (s *store) CreateTeam(name string, players []string, color, tag *string) (Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return Team{}, fmt.Errorf("%w: team name is required", ErrValidation)
	}

	team := Team{
		ID:        newID(),
		Name:      name,
		Players:   cleanPlayers(players),
		Color:     color,
		Tag:       cleanTag(tag),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	playersJSON, err := json.Marshal(team.Players)
	if err != nil {
		return Team{}, err
	}
	_, err = s.db.Exec(`
		INSERT INTO teams (id, name, players_json, color, tag, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, team.ID, team.Name, string(playersJSON), team.Color, team.Tag, team.CreatedAt.Unix())
	if err != nil {
		return Team{}, fmt.Errorf("failed to insert team: %w", err)
	}

	log.Info("Created team", "teamID", team.ID, "name", team.Name)
	return team, nil
}

func (s *store) GetTeam(teamID string) (Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getTeamLocked(teamID)
}

func (s *store) getTeamLocked(teamID string) (Team, error) {
	row := s.db.QueryRow(`
		SELECT id, name, players_json, color, tag, created_at
		FROM teams WHERE id = ?
	`, teamID)
	return scanTeam(row)
}

func (s *store) ListTeams() ([]Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listTeamsLocked()
}

func (s *store) UpdateTeam(teamID, name string, players []string, color, tag *string) (Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, err := s.getTeamLocked(teamID)
	if err != nil {
		return Team{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return Team{}, fmt.Errorf("%w: team name is required", ErrValidation)
	}

	team.Name = name
	team.Players = cleanPlayers(players)
	team.Color = color
	team.Tag = cleanTag(tag)

	playersJSON, err := json.Marshal(team.Players)
	if err != nil {
		return Team{}, err
	}
	_, err = s.db.Exec(`
		UPDATE teams SET name = ?, players_json = ?, color = ?, tag = ? WHERE id = ?
	`, team.Name, string(playersJSON), team.Color, team.Tag, team.ID)
	if err != nil {
		return Team{}, fmt.Errorf("failed to update team: %w", err)
	}
	return team, nil
}

func (s *store) DeleteTeam(teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec("DELETE FROM teams WHERE id = ?", teamID)
	if err != nil {
		return err
	}
	return checkAffected(result, ErrTeamNotFound)
}

func (s *store) CreateSession(name string, teamIDs []string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return Session{}, fmt.Errorf("%w: session name is required", ErrValidation)
	}
	if len(teamIDs) == 0 {
		return Session{}, fmt.Errorf("%w: a session needs at least one team", ErrValidation)
	}
	for _, teamID := range teamIDs {
		if _, err := s.getTeamLocked(teamID); err != nil {
			return Session{}, fmt.Errorf("%w: unknown team %q", ErrValidation, teamID)
		}
	}

	session := Session{
		ID:        newID(),
		Name:      name,
		Date:      time.Now().UTC().Truncate(time.Second),
		TeamIDs:   teamIDs,
		Status:    StatusActive,
		Games:     []Game{},
		Penalties: []Penalty{},
	}

	teamIDsJSON, err := json.Marshal(session.TeamIDs)
	if err != nil {
		return Session{}, err
	}
	_, err = s.db.Exec(`
		INSERT INTO sessions (id, name, date, team_ids_json, status)
		VALUES (?, ?, ?, ?, ?)
	`, session.ID, session.Name, session.Date.Unix(), string(teamIDsJSON), session.Status)
	if err != nil {
		return Session{}, fmt.Errorf("failed to insert session: %w", err)
	}

	log.Info("Created session", "sessionID", session.ID, "name", session.Name, "teams", len(teamIDs))
	return session, nil
}

func (s *store) GetSession(sessionID string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getSessionLocked(sessionID)
}

func (s *store) getSessionLocked(sessionID string) (Session, error) {
	row := s.db.QueryRow(`
		SELECT id, name, date, team_ids_json, status
		FROM sessions WHERE id = ?
	`, sessionID)
	session, err := scanSession(row)
	if err != nil {
		return Session{}, err
	}
	if session.Games, err = s.loadGames(sessionID); err != nil {
		return Session{}, err
	}
	if session.Penalties, err = s.loadPenalties(sessionID); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (s *store) ListSessions(status string) ([]Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, name, date, team_ids_json, status FROM sessions`
	args := []any{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY date DESC, id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (s *store) UpdateSession(sessionID string, name, status *string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.getSessionLocked(sessionID)
	if err != nil {
		return Session{}, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return Session{}, fmt.Errorf("%w: session name is required", ErrValidation)
		}
		session.Name = trimmed
	}
	if status != nil {
		if *status != StatusActive && *status != StatusCompleted {
			return Session{}, fmt.Errorf("%w: invalid status %q", ErrValidation, *status)
		}
		session.Status = *status
	}

	_, err = s.db.Exec("UPDATE sessions SET name = ?, status = ? WHERE id = ?",
		session.Name, session.Status, session.ID)
	if err != nil {
		return Session{}, fmt.Errorf("failed to update session: %w", err)
	}
	return session, nil
}

func (s *store) DeleteSession(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Games and penalties go with it via ON DELETE CASCADE.
	result, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", sessionID)
	if err != nil {
		return err
	}
	return checkAffected(result, ErrSessionNotFound)
}

// --- scan helpers ---

func scanTeam(scanner interface{ Scan(...any) error }) (Team, error) {
	var team Team
	var playersJSON string
	var createdAt int64
	err := scanner.Scan(&team.ID, &team.Name, &playersJSON, &team.Color, &team.Tag, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Team{}, ErrTeamNotFound
		}
		return Team{}, err
	}
	if err := json.Unmarshal([]byte(playersJSON), &team.Players); err != nil {
		return Team{}, fmt.Errorf("failed to decode players for team %s: %w", team.ID, err)
	}
	team.CreatedAt = time.Unix(createdAt, 0).UTC()
	return team, nil
}

func scanSession(scanner interface{ Scan(...any) error }) (Session, error) {
	var session Session
	var teamIDsJSON string
	var date int64
	err := scanner.Scan(&session.ID, &session.Name, &date, &teamIDsJSON, &session.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, err
	}
	if err := json.Unmarshal([]byte(teamIDsJSON), &session.TeamIDs); err != nil {
		return Session{}, fmt.Errorf("failed to decode team ids for session %s: %w", session.ID, err)
	}
	session.Date = time.Unix(date, 0).UTC()
	session.Games = []Game{}
	session.Penalties = []Penalty{}
	return session, nil
}

func checkAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
