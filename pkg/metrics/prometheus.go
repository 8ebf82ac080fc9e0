// Package metrics provides Prometheus metrics for the EcoSort service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus metric the service records.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Game metrics
	roundsScored    prometheus.Counter
	roundsDuplicate prometheus.Counter
	roundsRejected  prometheus.Counter
	scoreValues     prometheus.Histogram

	// Oracle metrics
	oracleRequests prometheus.Counter
	oracleErrors   prometheus.Counter
	oracleRetries  prometheus.Counter
	oracleLatency  prometheus.Histogram

	// Leaderboard metrics
	leaderboardUpdates prometheus.Counter
	leaderboardResets  prometheus.Counter
	leaderboardPlayers prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorsByComponent *prometheus.CounterVec
}

// Global manager instance backed by a custom registry so the default
// Go collectors do not pollute the exposition.
var (
	globalManager  *Manager
	customRegistry = prometheus.NewRegistry()
)

func init() {
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "ecosort",
		subsystem:        "game",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.roundsScored = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rounds_scored_total",
		Help:      "Total number of rounds scored.",
	})
	m.roundsDuplicate = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rounds_duplicate_total",
		Help:      "Total number of duplicate round submissions.",
	})
	m.roundsRejected = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rounds_rejected_total",
		Help:      "Total number of rounds rejected by validation.",
	})
	m.scoreValues = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_values",
		Help:      "Distribution of per-round scores.",
		Buckets:   []float64{0, 2, 5, 7, 10, 12, 15},
	})

	m.oracleRequests = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "oracle_requests_total",
		Help:      "Total number of classifier oracle calls.",
	})
	m.oracleErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "oracle_errors_total",
		Help:      "Total number of failed classifier oracle calls.",
	})
	m.oracleRetries = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "oracle_retries_total",
		Help:      "Total number of retried classifier oracle calls.",
	})
	m.oracleLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "oracle_latency_ms",
		Help:      "Classifier oracle call latency in milliseconds.",
		Buckets:   []float64{100, 250, 500, 1000, 2500, 5000, 10000, 30000},
	})

	m.leaderboardUpdates = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_updates_total",
		Help:      "Total number of leaderboard score updates.",
	})
	m.leaderboardResets = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_resets_total",
		Help:      "Total number of administrative leaderboard resets.",
	})
	m.leaderboardPlayers = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_players",
		Help:      "Current number of players on the leaderboard.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})

	m.errorsByComponent = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Total errors by component and kind.",
	}, []string{"component", "kind"})
}

// GetRegistry returns the registry backing the global manager, for the
// metrics exposition endpoint.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers recording against the global manager.

// RecordRoundScored counts one scored round and its score value.
func RecordRoundScored(score int) {
	if !globalManager.enabled {
		return
	}
	globalManager.roundsScored.Inc()
	globalManager.scoreValues.Observe(float64(score))
}

// RecordRoundDuplicate counts a duplicate round submission.
func RecordRoundDuplicate() {
	if !globalManager.enabled {
		return
	}
	globalManager.roundsDuplicate.Inc()
}

// RecordRoundRejected counts a round rejected by validation.
func RecordRoundRejected() {
	if !globalManager.enabled {
		return
	}
	globalManager.roundsRejected.Inc()
}

// RecordOracleRequest counts one classifier oracle call.
func RecordOracleRequest() {
	if !globalManager.enabled {
		return
	}
	globalManager.oracleRequests.Inc()
}

// RecordOracleError counts one failed classifier oracle call.
func RecordOracleError() {
	if !globalManager.enabled {
		return
	}
	globalManager.oracleErrors.Inc()
}

// RecordOracleRetry counts one retried classifier oracle call.
func RecordOracleRetry() {
	if !globalManager.enabled {
		return
	}
	globalManager.oracleRetries.Inc()
}

// RecordOracleLatency records oracle call latency in milliseconds.
func RecordOracleLatency(ms float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.oracleLatency.Observe(ms)
}

// RecordLeaderboardUpdate counts one leaderboard score update.
func RecordLeaderboardUpdate() {
	if !globalManager.enabled {
		return
	}
	globalManager.leaderboardUpdates.Inc()
}

// RecordLeaderboardReset counts one administrative reset.
func RecordLeaderboardReset() {
	if !globalManager.enabled {
		return
	}
	globalManager.leaderboardResets.Inc()
}

// UpdateLeaderboardPlayers sets the current player count gauge.
func UpdateLeaderboardPlayers(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.leaderboardPlayers.Set(float64(n))
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method string, ms float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(ms)
}

// RecordErrorByComponent counts an error for a component and kind.
func RecordErrorByComponent(component, kind string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorsByComponent.WithLabelValues(component, kind).Inc()
}
