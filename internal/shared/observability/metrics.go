package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	LintDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "emblint_lint_seconds",
		Help:    "Time spent linting a single source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "emblint_run_seconds",
		Help:    "Wall time of a whole lint run.",
		Buckets: prometheus.DefBuckets,
	})

	FilesLintedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "emblint_files_linted_total",
		Help: "Total number of files linted.",
	})

	ViolationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emblint_violations_total",
		Help: "Total number of convention violations, by rule id.",
	}, []string{"rule"})

	ParseFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "emblint_parse_failures_total",
		Help: "Total number of files rejected with a parse error.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "emblint_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	WatchRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "emblint_watch_runs_total",
		Help: "Total number of incremental lint runs triggered by the watcher.",
	})
)
