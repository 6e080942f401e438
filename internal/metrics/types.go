package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	GamesRecorded      prometheus.Counter
	PenaltiesRecorded  prometheus.Counter
	SessionsCompleted  prometheus.Counter
	SnapshotsExported  prometheus.Counter
	SnapshotsImported  prometheus.Counter
	ScoringDuration    prometheus.Histogram
	StartupTimeSeconds prometheus.Gauge
}
