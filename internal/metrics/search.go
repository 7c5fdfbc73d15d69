package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gasit",
			Name:      "searches_total",
			Help:      "Total number of search pipeline executions",
		},
		[]string{"outcome"},
	)

	SearchTierFetched = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gasit",
			Name:      "search_tier_listings_fetched",
			Help:      "Listings materialized per tier query",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"tier"},
	)
)

// RegisterSearchMetrics registers search metrics explicitly (no init()).
func RegisterSearchMetrics() {
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchTierFetched)
}
