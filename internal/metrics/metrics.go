// Package metrics provides centralized Prometheus metrics registry for the odds engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	EvaluationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "odds_apex",
		Name:      "evaluations_total",
		Help:      "Total number of evaluations by kind",
	}, []string{"kind"})
	EvaluationErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "odds_apex",
		Name:      "evaluation_errors_total",
		Help:      "Total number of rejected evaluations by reason",
	}, []string{"reason"})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "odds_apex",
		Name:      "cache_hits_total",
		Help:      "Total number of evaluation cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "odds_apex",
		Name:      "cache_misses_total",
		Help:      "Total number of evaluation cache misses",
	})
	RateLimitedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "odds_apex",
		Name:      "rate_limited_requests_total",
		Help:      "Total number of HTTP requests rejected by the rate limiter",
	})
)

// Gauge metrics
var (
	CacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "odds_apex",
		Name:      "cache_hit_ratio",
		Help:      "Ratio of evaluation cache hits to lookups",
	})
	LastOverround = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "odds_apex",
		Name:      "last_match_odds_overround",
		Help:      "Overround of the most recently quoted match odds book",
	})
)

// Histogram metrics
var (
	EvaluationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "odds_apex",
		Name:      "evaluation_duration_seconds",
		Help:      "Duration of evaluations in seconds",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	}, []string{"kind"})
	SimulationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "odds_apex",
		Name:      "simulation_duration_seconds",
		Help:      "Duration of Monte Carlo simulations in seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "odds_apex",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests by path and status code",
		Buckets:   prometheus.DefBuckets,
	}, []string{"path", "code"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(EvaluationsTotal)
		registry.MustRegister(EvaluationErrorsTotal)
		registry.MustRegister(CacheHitsTotal)
		registry.MustRegister(CacheMissesTotal)
		registry.MustRegister(RateLimitedTotal)

		// Register gauge metrics
		registry.MustRegister(CacheHitRatio)
		registry.MustRegister(LastOverround)

		// Register histogram metrics
		registry.MustRegister(EvaluationDuration)
		registry.MustRegister(SimulationDuration)
		registry.MustRegister(HTTPRequestDuration)

		// Register market metrics
		registry.MustRegister(RecommendationsTotal)
		registry.MustRegister(EdgeSize)
		registry.MustRegister(FairPrice)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordEvaluation records a completed evaluation.
func RecordEvaluation(kind string, durationSeconds float64) {
	EvaluationsTotal.WithLabelValues(kind).Inc()
	EvaluationDuration.WithLabelValues(kind).Observe(durationSeconds)
}

// RecordEvaluationError records a rejected evaluation.
func RecordEvaluationError(reason string) {
	EvaluationErrorsTotal.WithLabelValues(reason).Inc()
}

// RecordCacheHit records an evaluation cache hit.
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss records an evaluation cache miss.
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}

// UpdateCacheHitRatio updates the cache hit ratio gauge.
func UpdateCacheHitRatio(ratio float64) {
	CacheHitRatio.Set(ratio)
}

// UpdateOverround updates the match odds overround gauge.
func UpdateOverround(overround float64) {
	LastOverround.Set(overround)
}

// RecordSimulation records simulation duration.
func RecordSimulation(durationSeconds float64) {
	SimulationDuration.Observe(durationSeconds)
}

// RecordHTTPRequest records a served HTTP request.
func RecordHTTPRequest(path, code string, durationSeconds float64) {
	HTTPRequestDuration.WithLabelValues(path, code).Observe(durationSeconds)
}

// RecordRateLimited records a request rejected by the rate limiter.
func RecordRateLimited() {
	RateLimitedTotal.Inc()
}
