package league

import (
	"strings"

	"github.com/charmbracelet/log"
)

// palette is the fixed team color rotation. Order matters: backfilled
// colors cycle through it starting after the teams that already have one.
var palette = []string{
	"#e74c3c", // red
	"#3498db", // blue
	"#2ecc71", // green
	"#f39c12", // amber
	"#9b59b6", // purple
	"#1abc9c", // teal
	"#e67e22", // orange
	"#e91e63", // pink
}

// defaultTag derives a short uppercase tag from a team name: short names
// are used whole, multi-word names contribute the initials of up to four
// words, anything else is cut to three characters.
func defaultTag(name string) string {
	trimmed := strings.TrimSpace(name)
	runes := []rune(trimmed)
	if len(runes) <= maxTagLen {
		return strings.ToUpper(trimmed)
	}
	words := strings.Fields(trimmed)
	if len(words) >= 2 {
		if len(words) > maxTagLen {
			words = words[:maxTagLen]
		}
		var b strings.Builder
		for _, word := range words {
			b.WriteRune([]rune(word)[0])
		}
		return strings.ToUpper(b.String())
	}
	return strings.ToUpper(string(runes[:3]))
}

// BackfillTeamIdentity assigns a default color and tag to every team
// missing one, in creation order. Teams that already have both fields are
// never touched, so the pass is idempotent and palette cycling stays
// deterministic across restarts.
func (s *store) BackfillTeamIdentity() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	teams, err := s.listTeamsLocked()
	if err != nil {
		return err
	}

	alreadyColored := 0
	for _, team := range teams {
		if team.Color != nil {
			alreadyColored++
		}
	}

	assigned := 0
	colorless := 0
	for _, team := range teams {
		changed := false
		if team.Color == nil {
			color := palette[(alreadyColored+colorless)%len(palette)]
			team.Color = &color
			colorless++
			changed = true
		}
		if team.Tag == nil {
			tag := defaultTag(team.Name)
			team.Tag = &tag
			changed = true
		}
		if !changed {
			continue
		}
		_, err := s.db.Exec("UPDATE teams SET color = ?, tag = ? WHERE id = ?", team.Color, team.Tag, team.ID)
		if err != nil {
			return err
		}
		assigned++
	}

	if assigned > 0 {
		log.Info("Backfilled team identity defaults", "teams", assigned)
	}
	return nil
}

func (s *store) listTeamsLocked() ([]Team, error) {
	// rowid preserves insertion order; created_at has only second
	// precision and ids are random, so neither can order reliably.
	rows, err := s.db.Query(`
		SELECT id, name, players_json, color, tag, created_at
		FROM teams ORDER BY rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]Team, 0)
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}
