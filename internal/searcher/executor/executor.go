// Package executor answers two-keyword OR searches against a built index.
package executor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/merger"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/parser"
	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/logger"
)

// Index is the read side of the keyword index.
type Index interface {
	Lookup(keyword string) (index.OccurrenceList, bool)
	Ready() bool
}

// SearchResult is the outcome of one search. Documents is nil and Found is
// false when neither keyword matched anything.
type SearchResult struct {
	Query     string         `json:"query"`
	Keywords  []string       `json:"keywords"`
	Documents []string       `json:"documents"`
	Found     bool           `json:"found"`
	TermStats map[string]int `json:"term_stats"`
}

type Executor struct {
	index  Index
	limit  int
	logger *slog.Logger
}

// New returns an Executor capping results at limit. A limit outside
// 1..merger.DefaultLimit means merger.DefaultLimit.
func New(idx Index, limit int) *Executor {
	if limit <= 0 || limit > merger.DefaultLimit {
		limit = merger.DefaultLimit
	}
	return &Executor{
		index:  idx,
		limit:  limit,
		logger: logger.WithComponent("query-executor"),
	}
}

func (e *Executor) Limit() int {
	return e.limit
}

func (e *Executor) Execute(ctx context.Context, plan *parser.QueryPlan) (*SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("search %q: %w", plan.RawQuery, err)
	}
	if !e.index.Ready() {
		return nil, apperrors.ErrIndexNotReady
	}

	firstDocs, _ := e.index.Lookup(plan.First)
	secondDocs, _ := e.index.Lookup(plan.Second)
	docs := merger.TopDocuments(firstDocs, secondDocs, e.limit)

	termStats := map[string]int{
		plan.First:  len(firstDocs),
		plan.Second: len(secondDocs),
	}
	e.logger.Debug("query executed",
		"query", plan.RawQuery,
		"keywords", plan.Keywords(),
		"first_matches", len(firstDocs),
		"second_matches", len(secondDocs),
		"results", len(docs),
	)
	return &SearchResult{
		Query:     plan.RawQuery,
		Keywords:  plan.Keywords(),
		Documents: docs,
		Found:     docs != nil,
		TermStats: termStats,
	}, nil
}
