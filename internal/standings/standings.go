// Package standings aggregates stored per-game and per-penalty points into
// session scores and the cross-session leaderboard. All functions are pure;
// callers pass transactionally consistent snapshots.
package standings

import "sort"

// ScoreSession aggregates a session's games and penalties into per-team
// scores, sorted descending by total. Teams not on the session's team list
// are ignored even if a game or penalty references them. The sort is
// stable, so tied teams keep the team-list order.
func ScoreSession(in SessionInput) []SessionScore {
	index := make(map[string]int, len(in.TeamIDs))
	scores := make([]SessionScore, 0, len(in.TeamIDs))
	for _, teamID := range in.TeamIDs {
		if _, ok := index[teamID]; ok {
			continue
		}
		index[teamID] = len(scores)
		scores = append(scores, SessionScore{TeamID: teamID})
	}

	for _, game := range in.Games {
		for teamID, pts := range game {
			if i, ok := index[teamID]; ok {
				scores[i].GamePoints += pts
			}
		}
	}
	for _, penalty := range in.Penalties {
		if i, ok := index[penalty.TeamID]; ok {
			scores[i].PenaltyPoints += penalty.Value
		}
	}
	for i := range scores {
		scores[i].Total = scores[i].GamePoints + scores[i].PenaltyPoints
	}

	sort.SliceStable(scores, func(a, b int) bool {
		return scores[a].Total > scores[b].Total
	})
	return scores
}

// Leaderboard aggregates completed sessions into cumulative standings.
// Every team on a session's team list gains a sessions count and its
// session total; the team with the strictly highest session total gains a
// win. When several teams tie for the session's highest total, the one
// listed first on the session's team list takes the win. Output is sorted
// descending by total points, stable by first-encounter order.
func Leaderboard(sessions []SessionInput) []LeaderboardEntry {
	index := make(map[string]int)
	entries := make([]LeaderboardEntry, 0)

	for _, session := range sessions {
		scores := ScoreSession(session)
		totals := make(map[string]int, len(scores))
		for _, score := range scores {
			totals[score.TeamID] = score.Total
		}

		winner := ""
		winnerTotal := 0
		for _, teamID := range session.TeamIDs {
			total, ok := totals[teamID]
			if !ok {
				continue
			}
			i, seen := index[teamID]
			if !seen {
				i = len(entries)
				index[teamID] = i
				entries = append(entries, LeaderboardEntry{TeamID: teamID})
			}
			entries[i].TotalPoints += total
			entries[i].Sessions++

			if winner == "" || total > winnerTotal {
				winner = teamID
				winnerTotal = total
			}
		}
		if winner != "" {
			entries[index[winner]].Wins++
		}
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].TotalPoints > entries[b].TotalPoints
	})
	return entries
}
