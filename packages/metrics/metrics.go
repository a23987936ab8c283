// Package metrics
package metrics

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PagesFetched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_pages_fetched_total",
			Help: "Total number of product pages fetched successfully.",
		},
	)
	FetchErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_fetch_errors_total",
			Help: "Total number of failed page fetches, labeled by reason.",
		},
		[]string{"reason"},
	)
	ProductsAdded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_products_added_total",
			Help: "Total number of products inserted into the catalog.",
		},
	)
	ProductsSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_products_skipped_total",
			Help: "Total number of products skipped as already ingested.",
		},
	)
	DBQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ingest_db_query_duration_seconds",
			Help:    "Duration of catalog store queries in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query_name"},
	)
)

func init() {
	prometheus.MustRegister(PagesFetched)
	prometheus.MustRegister(FetchErrors)
	prometheus.MustRegister(ProductsAdded)
	prometheus.MustRegister(ProductsSkipped)
	prometheus.MustRegister(DBQueryDuration)
}

func ExposeMetrics(addr string) {
	slog.Info("Exposing Prometheus metrics", "address", addr)
	http.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, nil); err != nil {
		slog.Error("Failed to start Prometheus metrics server", "error", err)
	}
}
