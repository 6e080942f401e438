package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		GamesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_games_recorded_total",
			Help: "The total number of games recorded.",
		}),
		PenaltiesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_penalties_recorded_total",
			Help: "The total number of penalties recorded.",
		}),
		SessionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_sessions_completed_total",
			Help: "The total number of sessions marked as completed.",
		}),
		SnapshotsExported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_snapshots_exported_total",
			Help: "The total number of data exports served.",
		}),
		SnapshotsImported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_snapshots_imported_total",
			Help: "The total number of data imports applied.",
		}),
		ScoringDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tourney_scoring_duration_seconds",
			Help:    "The duration of individual game score calculations.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tourney_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.GamesRecorded,
		s.PenaltiesRecorded,
		s.SessionsCompleted,
		s.SnapshotsExported,
		s.SnapshotsImported,
		s.ScoringDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncGamesRecorded() {
	s.GamesRecorded.Inc()
}

func (s *Service) IncPenaltiesRecorded() {
	s.PenaltiesRecorded.Inc()
}

func (s *Service) IncSessionsCompleted() {
	s.SessionsCompleted.Inc()
}

func (s *Service) IncSnapshotsExported() {
	s.SnapshotsExported.Inc()
}

func (s *Service) IncSnapshotsImported() {
	s.SnapshotsImported.Inc()
}

func (s *Service) ObserveScoringDuration(duration float64) {
	s.ScoringDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
