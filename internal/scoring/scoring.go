package scoring

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation marks inputs that fail validation before anything is
// computed or persisted.
var ErrValidation = errors.New("validation failed")

// noPlacement is the best-placement value for a team with no resolvable
// entrant in a game. Larger than any real finishing position.
const noPlacement = 999

// ScopedKey builds the composite entrant key used to disambiguate players
// who share a name across teams in the same game.
func ScopedKey(teamID, playerName string) string {
	return teamID + "::" + playerName
}

// PointsFor returns the points awarded for a finishing position given the
// number of entrants in the game. Positions beyond the table fall back to
// the last configured position, never to zero.
func (t Tables) PointsFor(position, entrantCount int) int {
	if entrantCount <= 2 {
		switch position {
		case 1:
			return t.TwoPlayer.First
		case 2:
			return t.TwoPlayer.Second
		}
		return t.TwoPlayer.Second
	}
	switch position {
	case 1:
		return t.Standard.First
	case 2:
		return t.Standard.Second
	case 3:
		return t.Standard.Third
	case 4:
		return t.Standard.Fourth
	}
	return t.Standard.Fourth
}

// CalculateGame converts raw per-entrant placements into per-entrant points
// and per-team aggregates using the given point tables.
//
// Placement keys are either bare player names or composite keys built with
// ScopedKey. Team aggregation tries the composite key first and falls back
// to the bare name, so games recorded before composite keys existed keep
// computing identical aggregates.
func CalculateGame(tables Tables, placements map[string]int, roster map[string][]string) (GameResult, error) {
	if len(placements) == 0 {
		return GameResult{}, fmt.Errorf("%w: at least one placement is required", ErrValidation)
	}
	if len(roster) == 0 {
		return GameResult{}, fmt.Errorf("%w: at least one team is required", ErrValidation)
	}
	for key, pos := range placements {
		if strings.TrimSpace(key) == "" {
			return GameResult{}, fmt.Errorf("%w: empty entrant key", ErrValidation)
		}
		if pos < 1 {
			return GameResult{}, fmt.Errorf("%w: placement for %q must be >= 1, got %d", ErrValidation, key, pos)
		}
	}
	for teamID, players := range roster {
		if len(players) == 0 {
			return GameResult{}, fmt.Errorf("%w: team %q has no players", ErrValidation, teamID)
		}
	}

	entrantCount := len(placements)

	playerPoints := make(map[string]int, entrantCount)
	for key, pos := range placements {
		playerPoints[key] = tables.PointsFor(pos, entrantCount)
	}

	teamPoints := make(map[string]int, len(roster))
	teamPlacements := make(map[string]int, len(roster))
	for teamID, players := range roster {
		total := 0
		best := noPlacement
		for _, name := range players {
			key := resolveKey(teamID, name, placements)
			if key == "" {
				// Listed on the roster but never placed: contributes nothing.
				continue
			}
			total += playerPoints[key]
			if placements[key] < best {
				best = placements[key]
			}
		}
		teamPoints[teamID] = total
		teamPlacements[teamID] = best
	}

	return GameResult{
		PlayerPoints:   playerPoints,
		TeamPoints:     teamPoints,
		TeamPlacements: teamPlacements,
	}, nil
}

// resolveKey finds the placement key for a rostered player: scoped key
// first, bare name second, empty string when neither is placed.
func resolveKey(teamID, name string, placements map[string]int) string {
	if scoped := ScopedKey(teamID, name); hasKey(placements, scoped) {
		return scoped
	}
	if hasKey(placements, name) {
		return name
	}
	return ""
}

func hasKey(m map[string]int, key string) bool {
	_, ok := m[key]
	return ok
}
