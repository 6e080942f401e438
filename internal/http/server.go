package http

import (
	"net/http"

	"github.com/tourney-hq/tourney-tracker/internal/config"
	"github.com/tourney-hq/tourney-tracker/internal/league"
	"github.com/tourney-hq/tourney-tracker/internal/metrics"
	"github.com/tourney-hq/tourney-tracker/internal/settings"
)

func NewServer(store league.LeagueStore, settingsStore settings.SettingsStore, metricsSvc metrics.Metrics, stats metrics.MetricsStore, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Store:          store,
		Settings:       settingsStore,
		Metrics:        metricsSvc,
		Stats:          stats,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /{$}", Chain(s.BannerHandler(), paramsMiddleware))
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /api/teams", Chain(s.ListTeamsHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/teams", Chain(s.CreateTeamHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/teams/{teamID}", Chain(s.GetTeamHandler(), paramsMiddleware))
	s.Router.Handle("PUT /api/teams/{teamID}", Chain(s.UpdateTeamHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /api/teams/{teamID}", Chain(s.DeleteTeamHandler(), paramsMiddleware))

	s.Router.Handle("GET /api/sessions", Chain(s.ListSessionsHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/sessions", Chain(s.CreateSessionHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/sessions/{sessionID}", Chain(s.GetSessionHandler(), paramsMiddleware))
	s.Router.Handle("PUT /api/sessions/{sessionID}", Chain(s.UpdateSessionHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /api/sessions/{sessionID}", Chain(s.DeleteSessionHandler(), paramsMiddleware))

	s.Router.Handle("POST /api/sessions/{sessionID}/games", Chain(s.AddGameHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /api/sessions/{sessionID}/games/{gameID}", Chain(s.DeleteGameHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/sessions/{sessionID}/penalties", Chain(s.AddPenaltyHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /api/sessions/{sessionID}/penalties/{penaltyID}", Chain(s.DeletePenaltyHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/sessions/{sessionID}/scores", Chain(s.SessionScoresHandler(), paramsMiddleware))

	s.Router.Handle("GET /api/stats/leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/stats", Chain(s.StatsHandler(), paramsMiddleware))

	s.Router.Handle("GET /api/settings", Chain(s.GetSettingsHandler(), paramsMiddleware))
	s.Router.Handle("PUT /api/settings", Chain(s.UpdateSettingsHandler(), paramsMiddleware))

	s.Router.Handle("GET /api/export", Chain(s.ExportHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/import", Chain(s.ImportHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
