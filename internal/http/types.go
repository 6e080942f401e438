package http

import (
	"net/http"

	"github.com/tourney-hq/tourney-tracker/internal/config"
	"github.com/tourney-hq/tourney-tracker/internal/league"
	"github.com/tourney-hq/tourney-tracker/internal/metrics"
	"github.com/tourney-hq/tourney-tracker/internal/settings"
)

type Server struct {
	Store          league.LeagueStore
	Settings       settings.SettingsStore
	Metrics        metrics.Metrics
	Stats          metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
