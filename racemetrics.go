package happyeyeballs

import "github.com/ygrebnov/happyeyeballs/metrics"

// raceMetrics binds the generic metrics.Provider surface to the specific
// instruments a race emits. It is the one piece of observability this
// package adds beyond the spec's plain numeric accessors (spec §1
// Non-goals: "No observability beyond a small set of numeric accessors");
// callers who never configure a Provider get metrics.NoopProvider and pay
// nothing for it.
type raceMetrics struct {
	candidatesLaunched metrics.Counter
	candidatesInflight metrics.UpDownCounter
	outcomeWon         metrics.Counter
	outcomeFailed      metrics.Counter
	resolutionSeconds  metrics.Histogram
	connectSeconds     metrics.Histogram
}

func newRaceMetrics(p metrics.Provider) *raceMetrics {
	if p == nil {
		p = metrics.NewNoopProvider()
	}
	return &raceMetrics{
		candidatesLaunched: p.Counter("happyeyeballs_candidates_launched_total",
			metrics.WithDescription("candidate dial attempts launched"), metrics.WithUnit("1")),
		candidatesInflight: p.UpDownCounter("happyeyeballs_candidates_inflight",
			metrics.WithDescription("candidate dial attempts currently racing"), metrics.WithUnit("1")),
		outcomeWon: p.Counter("happyeyeballs_race_outcome_total",
			metrics.WithDescription("races won"), metrics.WithAttributes(map[string]string{"outcome": "won"})),
		outcomeFailed: p.Counter("happyeyeballs_race_outcome_total",
			metrics.WithDescription("races failed"), metrics.WithAttributes(map[string]string{"outcome": "failed"})),
		resolutionSeconds: p.Histogram("happyeyeballs_name_resolution_duration_seconds",
			metrics.WithUnit("seconds")),
		connectSeconds: p.Histogram("happyeyeballs_connect_duration_seconds",
			metrics.WithUnit("seconds")),
	}
}
