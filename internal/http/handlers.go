package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tourney-hq/tourney-tracker/internal/league"
	"github.com/tourney-hq/tourney-tracker/internal/settings"
)

func (s *Server) BannerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"service": "tourney-tracker",
			"status":  "ok",
		})
	}
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

type teamRequest struct {
	Name    string   `json:"name"`
	Players []string `json:"players"`
	Color   *string  `json:"color"`
	Tag     *string  `json:"tag"`
}

func (s *Server) ListTeamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := s.Store.ListTeams()
		if err != nil {
			respondError(w, err, "Failed to list teams")
			return
		}
		respondJSON(w, http.StatusOK, teams)
	}
}

func (s *Server) CreateTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req teamRequest
		if !decodeBody(w, r, &req) {
			return
		}
		team, err := s.Store.CreateTeam(req.Name, req.Players, req.Color, req.Tag)
		if err != nil {
			respondError(w, err, "Failed to create team")
			return
		}
		respondJSON(w, http.StatusCreated, team)
	}
}

func (s *Server) GetTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, err := s.Store.GetTeam(r.PathValue("teamID"))
		if err != nil {
			respondError(w, err, "Failed to get team")
			return
		}
		respondJSON(w, http.StatusOK, team)
	}
}

func (s *Server) UpdateTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req teamRequest
		if !decodeBody(w, r, &req) {
			return
		}
		team, err := s.Store.UpdateTeam(r.PathValue("teamID"), req.Name, req.Players, req.Color, req.Tag)
		if err != nil {
			respondError(w, err, "Failed to update team")
			return
		}
		respondJSON(w, http.StatusOK, team)
	}
}

func (s *Server) DeleteTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Store.DeleteTeam(r.PathValue("teamID")); err != nil {
			respondError(w, err, "Failed to delete team")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type sessionRequest struct {
	Name    string   `json:"name"`
	TeamIDs []string `json:"teamIds"`
}

type sessionUpdateRequest struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

func (s *Server) ListSessionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions, err := s.Store.ListSessions(r.URL.Query().Get("status"))
		if err != nil {
			respondError(w, err, "Failed to list sessions")
			return
		}
		respondJSON(w, http.StatusOK, sessions)
	}
}

func (s *Server) CreateSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sessionRequest
		if !decodeBody(w, r, &req) {
			return
		}
		session, err := s.Store.CreateSession(req.Name, req.TeamIDs)
		if err != nil {
			respondError(w, err, "Failed to create session")
			return
		}
		respondJSON(w, http.StatusCreated, session)
	}
}

func (s *Server) GetSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := s.Store.GetSession(r.PathValue("sessionID"))
		if err != nil {
			respondError(w, err, "Failed to get session")
			return
		}
		respondJSON(w, http.StatusOK, session)
	}
}

func (s *Server) UpdateSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sessionUpdateRequest
		if !decodeBody(w, r, &req) {
			return
		}
		session, err := s.Store.UpdateSession(r.PathValue("sessionID"), req.Name, req.Status)
		if err != nil {
			respondError(w, err, "Failed to update session")
			return
		}
		if req.Status != nil && *req.Status == league.StatusCompleted {
			s.Metrics.IncSessionsCompleted()
			s.Stats.Increment("sessions_completed")
		}
		respondJSON(w, http.StatusOK, session)
	}
}

func (s *Server) DeleteSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Store.DeleteSession(r.PathValue("sessionID")); err != nil {
			respondError(w, err, "Failed to delete session")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type gameRequest struct {
	Name             string              `json:"name"`
	PlayerPlacements map[string]int      `json:"playerPlacements"`
	TeamPlayerMap    map[string][]string `json:"teamPlayerMap"`
}

func (s *Server) AddGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req gameRequest
		if !decodeBody(w, r, &req) {
			return
		}

		// Point tables are read fresh on every game so a settings change
		// only affects games recorded afterwards.
		tables, err := s.Settings.ScoringTables()
		if err != nil {
			respondError(w, err, "Failed to load scoring tables")
			return
		}

		start := time.Now()
		game, err := s.Store.AddGame(r.PathValue("sessionID"), req.Name, req.PlayerPlacements, req.TeamPlayerMap, tables)
		if err != nil {
			respondError(w, err, "Failed to record game")
			return
		}
		s.Metrics.ObserveScoringDuration(time.Since(start).Seconds())
		s.Metrics.IncGamesRecorded()
		s.Stats.Increment("games_recorded")
		respondJSON(w, http.StatusCreated, game)
	}
}

func (s *Server) DeleteGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Store.DeleteGame(r.PathValue("sessionID"), r.PathValue("gameID")); err != nil {
			respondError(w, err, "Failed to delete game")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type penaltyRequest struct {
	TeamID string `json:"teamId"`
	Value  int    `json:"value"`
	Reason string `json:"reason"`
}

func (s *Server) AddPenaltyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req penaltyRequest
		if !decodeBody(w, r, &req) {
			return
		}
		penalty, err := s.Store.AddPenalty(r.PathValue("sessionID"), req.TeamID, req.Value, req.Reason)
		if err != nil {
			respondError(w, err, "Failed to record penalty")
			return
		}
		s.Metrics.IncPenaltiesRecorded()
		s.Stats.Increment("penalties_recorded")
		respondJSON(w, http.StatusCreated, penalty)
	}
}

func (s *Server) DeletePenaltyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Store.DeletePenalty(r.PathValue("sessionID"), r.PathValue("penaltyID")); err != nil {
			respondError(w, err, "Failed to delete penalty")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) SessionScoresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scores, err := s.Store.SessionScores(r.PathValue("sessionID"))
		if err != nil {
			respondError(w, err, "Failed to compute session scores")
			return
		}
		respondJSON(w, http.StatusOK, scores)
	}
}

// LeaderboardHandler serves the all-time standings over completed sessions.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := s.Store.Leaderboard()
		if err != nil {
			respondError(w, err, "Failed to compute leaderboard")
			return
		}
		respondJSON(w, http.StatusOK, entries)
	}
}

// StatsHandler serves the persisted operation counters.
func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := s.Stats.GetAll()
		if err != nil {
			respondError(w, err, "Failed to read stats")
			return
		}
		respondJSON(w, http.StatusOK, counters)
	}
}

func (s *Server) GetSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, err := s.Settings.Get()
		if err != nil {
			respondError(w, err, "Failed to read settings")
			return
		}
		respondJSON(w, http.StatusOK, current)
	}
}

func (s *Server) UpdateSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update settings.Update
		if !decodeBody(w, r, &update) {
			return
		}
		updated, err := s.Settings.Update(update)
		if err != nil {
			respondError(w, err, "Failed to update settings")
			return
		}
		respondJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) ExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := s.Store.Export()
		if err != nil {
			respondError(w, err, "Failed to export data")
			return
		}
		s.Metrics.IncSnapshotsExported()
		s.Stats.Increment("snapshots_exported")
		respondJSON(w, http.StatusOK, snapshot)
	}
}

func (s *Server) ImportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var snapshot league.Snapshot
		if !decodeBody(w, r, &snapshot) {
			return
		}

		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have imported snapshot",
				"teams", len(snapshot.Teams), "sessions", len(snapshot.Sessions))
			respondJSON(w, http.StatusOK, league.ImportSummary{
				Teams: len(snapshot.Teams), Sessions: len(snapshot.Sessions),
			})
			return
		}

		summary, err := s.Store.Import(snapshot)
		if err != nil {
			respondError(w, err, "Failed to import data")
			return
		}
		s.Metrics.IncSnapshotsImported()
		s.Stats.Increment("snapshots_imported")
		respondJSON(w, http.StatusOK, summary)
	}
}

// --- response helpers ---

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Error("Failed to decode request body", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// respondError maps store errors onto HTTP status codes: validation
// failures become 422, missing records 404, everything else 500.
func respondError(w http.ResponseWriter, err error, msg string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, league.ErrValidation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, league.ErrTeamNotFound),
		errors.Is(err, league.ErrSessionNotFound),
		errors.Is(err, league.ErrGameNotFound),
		errors.Is(err, league.ErrPenaltyNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		log.Error(msg, "error", err)
	} else {
		log.Warn(msg, "error", err)
	}
	http.Error(w, fmt.Sprintf("%s: %v", msg, err), status)
}
