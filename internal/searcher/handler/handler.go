// Package handler serves the search API over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/cache"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/parser"
	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/metrics"
)

type SearchExecutor interface {
	Execute(ctx context.Context, plan *parser.QueryPlan) (*executor.SearchResult, error)
	Limit() int
}

// IndexReader is the part of *indexer.Engine the handler reads.
type IndexReader interface {
	Lookup(keyword string) (index.OccurrenceList, bool)
	Ready() bool
	Stats() indexer.Stats
}

type SearchTracker interface {
	TrackSearch(ev analytics.SearchEvent)
}

type Handler struct {
	executor SearchExecutor
	index    IndexReader
	cache    *cache.QueryCache
	tracker  SearchTracker
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// Option attaches an optional collaborator.
type Option func(*Handler)

func WithCache(c *cache.QueryCache) Option  { return func(h *Handler) { h.cache = c } }
func WithTracker(t SearchTracker) Option    { return func(h *Handler) { h.tracker = t } }
func WithMetrics(m *metrics.Metrics) Option { return func(h *Handler) { h.metrics = m } }

func New(exec SearchExecutor, idx IndexReader, opts ...Option) *Handler {
	h := &Handler{
		executor: exec,
		index:    idx,
		logger:   logger.WithComponent("search-handler"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the search routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/search", h.Search)
	mux.HandleFunc("GET /api/v1/index/stats", h.IndexStats)
	mux.HandleFunc("GET /api/v1/keywords/{keyword}", h.Keyword)
	mux.HandleFunc("GET /api/v1/cache/stats", h.CacheStats)
	mux.HandleFunc("POST /api/v1/cache/invalidate", h.CacheInvalidate)
}

// Search answers ?q=kw1+OR+kw2 or ?kw1=..&kw2=... A query that matches
// nothing is a 200 with found=false.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	plan, err := planFromRequest(r)
	if err != nil {
		h.fail(w, err, "")
		return
	}

	var (
		result   *executor.SearchResult
		cacheHit bool
	)
	if h.cache != nil && h.index.Ready() {
		result, cacheHit, err = h.cache.GetOrCompute(ctx, plan, h.executor.Limit(), func() (*executor.SearchResult, error) {
			return h.executor.Execute(ctx, plan)
		})
	} else {
		result, err = h.executor.Execute(ctx, plan)
	}
	if err != nil {
		log.Error("search execution failed", "query", plan.RawQuery, "error", err)
		if h.metrics != nil {
			h.metrics.SearchQueriesTotal.WithLabelValues("error").Inc()
		}
		h.fail(w, err, "search failed")
		return
	}

	latency := time.Since(start)
	log.Info("search completed",
		"query", plan.RawQuery,
		"returned", len(result.Documents),
		"found", result.Found,
		"cache_hit", cacheHit,
		"latency", latency,
	)
	h.observe(result, cacheHit, latency)
	if h.tracker != nil {
		h.tracker.TrackSearch(analytics.SearchEvent{
			Query:     plan.String(),
			Keywords:  plan.Keywords(),
			Returned:  len(result.Documents),
			Found:     result.Found,
			LatencyUs: latency.Microseconds(),
			CacheHit:  cacheHit,
			RequestID: logger.RequestID(ctx),
		})
	}
	h.writeJSON(w, http.StatusOK, result)
}

func planFromRequest(r *http.Request) (*parser.QueryPlan, error) {
	q := r.URL.Query()
	if query := q.Get("q"); query != "" {
		return parser.Parse(query)
	}
	if q.Has("kw1") || q.Has("kw2") {
		return parser.FromKeywords(q.Get("kw1"), q.Get("kw2"))
	}
	return nil, apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest,
		"query parameter 'q' or parameters 'kw1' and 'kw2' are required")
}

func (h *Handler) observe(result *executor.SearchResult, cacheHit bool, latency time.Duration) {
	if h.metrics == nil {
		return
	}
	resultType, cacheStatus := "not_found", "miss"
	if result.Found {
		resultType = "found"
	}
	if cacheHit {
		cacheStatus = "hit"
		h.metrics.CacheHitsTotal.Inc()
	} else if h.cache != nil {
		h.metrics.CacheMissesTotal.Inc()
	}
	h.metrics.SearchQueriesTotal.WithLabelValues(resultType).Inc()
	h.metrics.SearchLatency.WithLabelValues(cacheStatus).Observe(latency.Seconds())
	h.metrics.SearchResultsCount.Observe(float64(len(result.Documents)))
}

func (h *Handler) IndexStats(w http.ResponseWriter, r *http.Request) {
	if !h.index.Ready() {
		h.fail(w, apperrors.ErrIndexNotReady, "")
		return
	}
	h.writeJSON(w, http.StatusOK, h.index.Stats())
}

// Keyword returns the occurrence list of one keyword, highest frequency
// first.
func (h *Handler) Keyword(w http.ResponseWriter, r *http.Request) {
	if !h.index.Ready() {
		h.fail(w, apperrors.ErrIndexNotReady, "")
		return
	}
	keyword := r.PathValue("keyword")
	occs, ok := h.index.Lookup(keyword)
	if !ok {
		h.fail(w, apperrors.NotFound("keyword", keyword), "")
		return
	}
	h.writeJSON(w, http.StatusOK, index.KeywordEntry{Keyword: keyword, Occurrences: occs})
}

func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}
	hits, misses := h.cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": fmt.Sprintf("%.1f%%", hitRate),
	})
}

func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeError(w, http.StatusServiceUnavailable, "caching is disabled")
		return
	}
	deleted, err := h.cache.Invalidate(r.Context())
	if err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "cache invalidation failed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"status": "invalidated", "keys_deleted": deleted})
}

// fail maps err to a status. AppError messages are shown to the client;
// other errors show fallback, or the error itself when fallback is empty.
func (h *Handler) fail(w http.ResponseWriter, err error, fallback string) {
	status := apperrors.HTTPStatusCode(err)
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		h.writeError(w, status, appErr.Message)
	case fallback != "" && status == http.StatusInternalServerError:
		h.writeError(w, status, fallback)
	default:
		h.writeError(w, status, err.Error())
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
