package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the stats backend

var (
	// Upstream API metrics
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nbakit_api_calls_total",
			Help: "Total number of stats.nba.com API calls",
		},
		[]string{"endpoint", "status"},
	)

	APICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nbakit_api_call_duration_seconds",
			Help:    "Duration of API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// HTTP serving metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nbakit_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nbakit_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// Leaders engine metrics
	LeadersBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nbakit_leaders_builds_total",
			Help: "Total number of leaders payload builds",
		},
		[]string{"status"},
	)

	LeadersBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nbakit_leaders_build_duration_seconds",
			Help:    "Duration of leaders payload builds in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	QualifiedPlayers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nbakit_leaders_qualified_players",
			Help: "Number of players clearing the qualifiers on the last build",
		},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nbakit_cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nbakit_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	// Refresh pipeline metrics
	RefreshOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nbakit_refresh_operations_total",
			Help: "Total number of snapshot refresh operations",
		},
		[]string{"dataset", "status"},
	)

	RefreshDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nbakit_refresh_duration_seconds",
			Help:    "Duration of snapshot refresh operations in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"dataset"},
	)

	PlayersIngested = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nbakit_players_ingested_total",
			Help: "Number of player season rows in the latest snapshot",
		},
	)

	GamesIngested = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nbakit_games_ingested_total",
			Help: "Number of scheduled games in the latest snapshot",
		},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nbakit_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	// System metrics
	SystemUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nbakit_system_uptime_seconds",
			Help: "System uptime in seconds",
		},
	)

	LastSuccessfulRefresh = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nbakit_last_successful_refresh_timestamp",
			Help: "Timestamp of last successful refresh",
		},
	)
)

// RecordAPICall records an upstream API call metric
func RecordAPICall(endpoint, status string, duration float64) {
	APICallsTotal.WithLabelValues(endpoint, status).Inc()
	APICallDuration.WithLabelValues(endpoint).Observe(duration)
}

// RecordHTTPRequest records a served request
func RecordHTTPRequest(route, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(route, status).Inc()
	HTTPRequestDuration.WithLabelValues(route).Observe(duration)
}

// RecordLeadersBuild records one leaders payload build
func RecordLeadersBuild(status string, duration float64, qualified int) {
	LeadersBuildsTotal.WithLabelValues(status).Inc()
	LeadersBuildDuration.Observe(duration)
	if status == "success" {
		QualifiedPlayers.Set(float64(qualified))
	}
}

// RecordCacheHit records a cache hit
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}

// RecordRefresh records a snapshot refresh operation
func RecordRefresh(dataset, status string, duration float64) {
	RefreshOperationsTotal.WithLabelValues(dataset, status).Inc()
	RefreshDuration.WithLabelValues(dataset).Observe(duration)

	if status == "success" {
		LastSuccessfulRefresh.SetToCurrentTime()
	}
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}
