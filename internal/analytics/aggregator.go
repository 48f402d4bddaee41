package analytics

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"
)

type AggregatedStats struct {
	TotalSearches    int64        `json:"total_searches"`
	TotalDocsIndexed int64        `json:"total_docs_indexed"`
	CacheHits        int64        `json:"cache_hits"`
	CacheMisses      int64        `json:"cache_misses"`
	NotFoundCount    int64        `json:"not_found_count"`
	AvgLatencyUs     float64      `json:"avg_latency_us"`
	P50LatencyUs     int64        `json:"p50_latency_us"`
	P95LatencyUs     int64        `json:"p95_latency_us"`
	P99LatencyUs     int64        `json:"p99_latency_us"`
	TopQueries       []QueryCount `json:"top_queries"`
	NotFoundQueries  []QueryCount `json:"not_found_queries"`
	QueriesPerMinute float64      `json:"queries_per_minute"`
}

type QueryCount struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

const maxLatencySamples = 10000

// Aggregator keeps running search statistics in memory. It is a Sink.
type Aggregator struct {
	mu              sync.Mutex
	searches        int64
	docsIndexed     int64
	cacheHits       int64
	cacheMisses     int64
	notFound        int64
	latencies       []int64
	next            int
	queryCounts     map[string]int64
	notFoundQueries map[string]int64
	startTime       time.Time
	now             func() time.Time
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		latencies:       make([]int64, 0, 1024),
		queryCounts:     make(map[string]int64),
		notFoundQueries: make(map[string]int64),
		startTime:       time.Now(),
		now:             time.Now,
	}
}

func (a *Aggregator) Record(ev any) {
	switch e := ev.(type) {
	case SearchEvent:
		a.recordSearch(e)
	case IndexEvent:
		a.mu.Lock()
		a.docsIndexed++
		a.mu.Unlock()
	}
}

// TrackSearch records a search directly, for when no collector runs.
func (a *Aggregator) TrackSearch(ev SearchEvent) {
	ev.Type = EventSearch
	a.recordSearch(ev)
}

func (a *Aggregator) DocumentIndexed(context.Context, string, int, int, time.Duration) {
	a.mu.Lock()
	a.docsIndexed++
	a.mu.Unlock()
}

func (a *Aggregator) recordSearch(e SearchEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.searches++
	if e.CacheHit {
		a.cacheHits++
	} else {
		a.cacheMisses++
	}
	a.queryCounts[e.Query]++
	if !e.Found {
		a.notFound++
		a.notFoundQueries[e.Query]++
	}
	// ring buffer once full
	if len(a.latencies) < maxLatencySamples {
		a.latencies = append(a.latencies, e.LatencyUs)
	} else {
		a.latencies[a.next] = e.LatencyUs
		a.next = (a.next + 1) % maxLatencySamples
	}
}

func (a *Aggregator) Stats() AggregatedStats {
	a.mu.Lock()
	defer a.mu.Unlock()

	stats := AggregatedStats{
		TotalSearches:    a.searches,
		TotalDocsIndexed: a.docsIndexed,
		CacheHits:        a.cacheHits,
		CacheMisses:      a.cacheMisses,
		NotFoundCount:    a.notFound,
		TopQueries:       topN(a.queryCounts, 10),
		NotFoundQueries:  topN(a.notFoundQueries, 10),
	}
	if len(a.latencies) > 0 {
		sorted := slices.Clone(a.latencies)
		slices.Sort(sorted)
		var sum int64
		for _, l := range sorted {
			sum += l
		}
		stats.AvgLatencyUs = float64(sum) / float64(len(sorted))
		stats.P50LatencyUs = percentile(sorted, 50)
		stats.P95LatencyUs = percentile(sorted, 95)
		stats.P99LatencyUs = percentile(sorted, 99)
	}
	if elapsed := a.now().Sub(a.startTime).Minutes(); elapsed > 0 {
		stats.QueriesPerMinute = float64(stats.TotalSearches) / elapsed
	}
	return stats
}

func percentile(sorted []int64, pct int) int64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (pct * len(sorted)) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// topN orders by count descending, then query ascending.
func topN(counts map[string]int64, n int) []QueryCount {
	result := make([]QueryCount, 0, len(counts))
	for query, count := range counts {
		result = append(result, QueryCount{Query: query, Count: count})
	}
	slices.SortFunc(result, func(x, y QueryCount) int {
		if c := cmp.Compare(y.Count, x.Count); c != 0 {
			return c
		}
		return cmp.Compare(x.Query, y.Query)
	})
	if len(result) > n {
		result = result[:n]
	}
	return result
}
