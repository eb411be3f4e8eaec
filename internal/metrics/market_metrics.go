// Package metrics defines market-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Market counter vectors
var (
	RecommendationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "odds_apex",
		Name:      "recommendations_total",
		Help:      "Total number of recommendations by market and direction",
	}, []string{"market", "direction"})
)

// Market histogram vectors
var (
	EdgeSize = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "odds_apex",
		Name:      "edge_size",
		Help:      "Edge between fair and live price for recommended bets",
		Buckets:   []float64{0.01, 0.02, 0.05, 0.1, 0.2, 0.3, 0.5, 0.75, 1.0},
	}, []string{"direction"})
)

// Market gauge vectors
var (
	FairPrice = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "odds_apex",
		Name:      "fair_price",
		Help:      "Most recent finite fair price for each market",
	}, []string{"market"})
)

// RecordRecommendation records a market recommendation.
func RecordRecommendation(market, direction string) {
	RecommendationsTotal.WithLabelValues(market, direction).Inc()
}

// RecordEdge records the edge of a recommended bet.
func RecordEdge(direction string, edge float64) {
	EdgeSize.WithLabelValues(direction).Observe(edge)
}

// UpdateFairPrice updates the fair price gauge for a market.
func UpdateFairPrice(market string, price float64) {
	FairPrice.WithLabelValues(market).Set(price)
}
