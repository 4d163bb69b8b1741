package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Copy Operation Metrics
var (
	// CopyOperationsStarted tracks accepted copy operations by kind (selected/all)
	CopyOperationsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "copy_operations_started_total",
			Help: "Total copy operations accepted by kind (selected/all)",
		},
		[]string{"kind"},
	)

	// CopyOperationsFinished tracks finished copy operations by outcome
	CopyOperationsFinished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "copy_operations_finished_total",
			Help: "Total copy operations finished by outcome (completed/failed/cancelled)",
		},
		[]string{"outcome"},
	)

	// CopyOperationsInFlight tracks currently running copy jobs
	CopyOperationsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "copy_operations_in_flight",
			Help: "Number of copy jobs currently running",
		},
	)

	// CopyRowsInserted tracks association rows inserted by copy jobs
	CopyRowsInserted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "copy_rows_inserted_total",
			Help: "Total association rows inserted by copy jobs",
		},
	)

	// CopyRowsSkipped tracks rows skipped because the association already existed
	CopyRowsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "copy_rows_skipped_total",
			Help: "Total rows skipped by copy jobs because the association already existed",
		},
	)

	// CopyOperationDuration tracks end-to-end copy job duration
	CopyOperationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "copy_operation_duration_seconds",
			Help:    "End-to-end copy job duration in seconds",
			Buckets: []float64{.1, .5, 1, 5, 15, 60, 300, 900, 3600},
		},
	)
)

// Count Cache Metrics
var (
	// CountCacheHits tracks collection total lookups served from cache
	CountCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "count_cache_hits_total",
			Help: "Total collection count lookups served from the in-memory cache",
		},
	)

	// CountCacheMisses tracks collection total lookups that hit PostgreSQL
	CountCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "count_cache_misses_total",
			Help: "Total collection count lookups that fell through to PostgreSQL",
		},
	)
)

// Redis Operation Metrics
var (
	// RedisOpsTotal tracks total Redis operations by command and status
	RedisOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_operations_total",
			Help: "Total Redis operations by command and status",
		},
		[]string{"operation", "status"},
	)

	// RedisOpDuration tracks Redis command latency in seconds
	RedisOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis command duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// RedisConnectionErrors tracks Redis connection errors
	RedisConnectionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redis_connection_errors_total",
			Help: "Total Redis connection errors",
		},
	)

	// CircuitBreakerStateChanges tracks circuit breaker state transitions
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)

	// CircuitBreakerState tracks current circuit breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)

// Build Information Metrics
var (
	// BuildInfo is a gauge that always returns 1, with build metadata as labels
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "build_info",
			Help: "Build information with version, commit, and go_version labels (value is always 1)",
		},
		[]string{"version", "commit", "go_version"},
	)
)
