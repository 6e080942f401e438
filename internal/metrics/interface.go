package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncGamesRecorded()
	IncPenaltiesRecorded()
	IncSessionsCompleted()
	IncSnapshotsExported()
	IncSnapshotsImported()
	ObserveScoringDuration(duration float64)
	SetStartupTime(duration float64)
}

// MetricsStore persists cumulative counters across restarts, independent of
// the Prometheus registry which resets with the process.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
