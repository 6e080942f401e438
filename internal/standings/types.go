package standings

// TeamPoints is a per-team point map as stored on a game at creation time.
type TeamPoints map[string]int

// PenaltyPoints is one penalty's contribution to a team's session score.
type PenaltyPoints struct {
	TeamID string
	Value  int
}

// SessionInput is the slice of a session the aggregators need: its team
// list in insertion order, its games' frozen team point maps, and its
// penalties.
type SessionInput struct {
	TeamIDs   []string
	Games     []TeamPoints
	Penalties []PenaltyPoints
}

// SessionScore is one team's score within a single session.
type SessionScore struct {
	TeamID        string `json:"team_id"`
	GamePoints    int    `json:"game_points"`
	PenaltyPoints int    `json:"penalty_points"`
	Total         int    `json:"total"`
}

// LeaderboardEntry is one team's cumulative standing across all completed
// sessions.
type LeaderboardEntry struct {
	TeamID      string `json:"team_id"`
	TotalPoints int    `json:"total_points"`
	Wins        int    `json:"wins"`
	Sessions    int    `json:"sessions"`
}
