package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scansScored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nutriscan_scans_scored_total",
		Help: "Completed product analyses by quality band.",
	}, []string{"band"})

	productFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nutriscan_product_fetches_total",
		Help: "OpenFoodFacts lookups by outcome (ok, not_found, error).",
	}, []string{"outcome"})

	productFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "nutriscan_product_fetch_duration_seconds",
		Help:    "OpenFoodFacts lookup latency.",
		Buckets: prometheus.DefBuckets,
	})
)
