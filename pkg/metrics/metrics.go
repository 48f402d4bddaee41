// Package metrics defines the Prometheus collectors for indexing, search and
// HTTP traffic and exposes a scrape handler.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	SearchQueriesTotal   *prometheus.CounterVec
	SearchLatency        *prometheus.HistogramVec
	SearchResultsCount   prometheus.Histogram
	CacheHitsTotal       prometheus.Counter
	CacheMissesTotal     prometheus.Counter
	DocsIndexedTotal     prometheus.Counter
	TokensIndexedTotal   prometheus.Counter
	DocIndexDuration     prometheus.Histogram
	IndexKeywords        prometheus.Gauge
	IndexDocuments       prometheus.Gauge

	registry *prometheus.Registry
}

// New creates the collectors and registers them on a fresh registry, so
// several instances can coexist in one process.
func New() *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		SearchQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_queries_total",
				Help: "Total search queries by result type (found, not_found, error).",
			},
			[]string{"result_type"},
		),
		SearchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "search_latency_seconds",
				Help:    "Search query latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"cache_status"},
		),
		SearchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_results_count",
				Help:    "Number of documents returned per search query.",
				Buckets: []float64{0, 1, 2, 3, 4, 5},
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of cache misses.",
			},
		),
		DocsIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docs_indexed_total",
				Help: "Total documents indexed.",
			},
		),
		TokensIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tokens_indexed_total",
				Help: "Total keyword occurrences merged into the index.",
			},
		),
		DocIndexDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "document_index_duration_seconds",
				Help:    "Time to scan and merge one document.",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
		),
		IndexKeywords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "index_keywords",
				Help: "Number of distinct keywords in the index.",
			},
		),
		IndexDocuments: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "index_documents",
				Help: "Number of documents in the index.",
			},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.SearchQueriesTotal,
		m.SearchLatency,
		m.SearchResultsCount,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.DocsIndexedTotal,
		m.TokensIndexedTotal,
		m.DocIndexDuration,
		m.IndexKeywords,
		m.IndexDocuments,
	)

	return m
}

// DocumentIndexed records one merged document. It lets Metrics observe an
// index build.
func (m *Metrics) DocumentIndexed(_ context.Context, _ string, _, tokens int, elapsed time.Duration) {
	m.DocsIndexedTotal.Inc()
	m.TokensIndexedTotal.Add(float64(tokens))
	m.DocIndexDuration.Observe(elapsed.Seconds())
}

// SetIndexSize publishes the size of a finished index.
func (m *Metrics) SetIndexSize(documents, keywords int) {
	m.IndexDocuments.Set(float64(documents))
	m.IndexKeywords.Set(float64(keywords))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the scrape handler for this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
