package league

import (
	"database/sql"
	"sync"
	"time"
)

// store handles all database operations for the league.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Session status values.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Team is a roster of player display names with optional identity fields.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Players   []string  `json:"players"`
	Color     *string   `json:"color"`
	Tag       *string   `json:"tag"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is a bounded block of play involving a fixed set of teams. It
// owns its games and penalties; deleting a session deletes both.
type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	TeamIDs   []string  `json:"team_ids"`
	Status    string    `json:"status"`
	Games     []Game    `json:"games"`
	Penalties []Penalty `json:"penalties"`
}

// Game holds the four derived mappings computed at creation time and never
// recomputed afterward. Placement keys are bare player names or composite
// "<team_id>::<player_name>" keys.
type Game struct {
	ID               string              `json:"id"`
	SessionID        string              `json:"session_id"`
	Name             string              `json:"name"`
	PlayerPlacements map[string]int      `json:"player_placements"`
	PlayerPoints     map[string]int      `json:"player_points"`
	TeamPlayerMap    map[string][]string `json:"team_player_map"`
	Points           map[string]int      `json:"points"`
	Placements       map[string]int      `json:"placements"`
}

// Penalty contributes its (typically negative) value directly to a team's
// session score.
type Penalty struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	TeamID    string `json:"team_id"`
	Value     int    `json:"value"`
	Reason    string `json:"reason"`
}

// Snapshot is the export/import wire shape. Field names match the original
// frontend payloads (camelCase) so existing exports keep importing.
type Snapshot struct {
	Teams    []TeamSnapshot    `json:"teams"`
	Sessions []SessionSnapshot `json:"sessions"`
	Settings map[string]string `json:"settings,omitempty"`
}

type TeamSnapshot struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Players   []string `json:"players"`
	Color     *string  `json:"color,omitempty"`
	Tag       *string  `json:"tag,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
}

type SessionSnapshot struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Date      string            `json:"date,omitempty"`
	TeamIDs   []string          `json:"teamIds"`
	Status    string            `json:"status"`
	Games     []GameSnapshot    `json:"games"`
	Penalties []PenaltySnapshot `json:"penalties"`
}

type GameSnapshot struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	PlayerPlacements map[string]int      `json:"playerPlacements"`
	PlayerPoints     map[string]int      `json:"playerPoints"`
	TeamPlayerMap    map[string][]string `json:"teamPlayerMap"`
	Points           map[string]int      `json:"points"`
	Placements       map[string]int      `json:"placements"`
}

type PenaltySnapshot struct {
	ID     string `json:"id"`
	TeamID string `json:"teamId"`
	Value  int    `json:"value"`
	Reason string `json:"reason"`
}

// ImportSummary reports how many records an import wrote.
type ImportSummary struct {
	Teams    int `json:"teams"`
	Sessions int `json:"sessions"`
}
