// Package indexer owns the keyword index for one corpus: it loads the stop
// words, scans and merges every document in order, and then serves lookups.
package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/logger"
)

// Stats summarises a built index.
type Stats struct {
	Documents int           `json:"documents"`
	Keywords  int           `json:"keywords"`
	StopWords int           `json:"stop_words"`
	BuiltAt   time.Time     `json:"built_at"`
	BuildTime time.Duration `json:"build_time_ns"`
}

type Engine struct {
	mu        sync.RWMutex
	memIndex  *index.MemoryIndex
	stats     Stats
	built     bool
	observers []Observer
	logger    *slog.Logger
}

func NewEngine(observers ...Observer) *Engine {
	return &Engine{
		memIndex:  index.NewMemoryIndex(),
		observers: observers,
		logger:    logger.WithComponent("indexer"),
	}
}

// Build loads the stop words and then indexes every document of the corpus,
// one at a time in corpus order. It runs at most once per Engine. Any
// failure aborts the whole build and leaves the engine empty.
func (e *Engine) Build(ctx context.Context, corpus Corpus, stops StopWordSource) error {
	e.mu.RLock()
	built := e.built
	e.mu.RUnlock()
	if built {
		return apperrors.ErrIndexBuilt
	}

	start := time.Now()
	words, err := stops.StopWords(ctx)
	if err != nil {
		return fmt.Errorf("loading stop words: %w", err)
	}
	stopWords := tokenizer.NewStopWordsFrom(words)
	e.logger.Info("stop words loaded", "count", stopWords.Len())

	docIDs, err := corpus.DocumentIDs(ctx)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	memIndex := index.NewMemoryIndex()
	for _, docID := range docIDs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("index build interrupted: %w", err)
		}
		docStart := time.Now()
		tokens, err := corpus.Tokens(ctx, docID)
		if err != nil {
			return fmt.Errorf("reading document %q: %w", docID, err)
		}
		table, err := memIndex.AddDocument(docID, tokens, stopWords)
		if err != nil {
			return err
		}
		occurrences := 0
		for _, occ := range table.Keywords {
			occurrences += occ.Frequency
		}
		elapsed := time.Since(docStart)
		e.logger.Debug("document indexed",
			"doc_id", docID,
			"keywords", len(table.Keywords),
			"occurrences", occurrences,
			"index_keywords", memIndex.KeywordCount(),
		)
		for _, o := range e.observers {
			o.DocumentIndexed(ctx, docID, len(table.Keywords), occurrences, elapsed)
		}
	}

	stats := Stats{
		Documents: memIndex.DocCount(),
		Keywords:  memIndex.KeywordCount(),
		StopWords: stopWords.Len(),
		BuiltAt:   time.Now().UTC(),
		BuildTime: time.Since(start),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.built {
		return apperrors.ErrIndexBuilt
	}
	e.memIndex = memIndex
	e.stats = stats
	e.built = true
	e.logger.Info("index built",
		"documents", stats.Documents,
		"keywords", stats.Keywords,
		"stop_words", stats.StopWords,
		"duration", stats.BuildTime,
	)
	return nil
}

// Lookup returns the occurrence list for an already normalised keyword.
func (e *Engine) Lookup(keyword string) (index.OccurrenceList, bool) {
	e.mu.RLock()
	mi := e.memIndex
	e.mu.RUnlock()
	return mi.Lookup(keyword)
}

func (e *Engine) Snapshot() []index.KeywordEntry {
	e.mu.RLock()
	mi := e.memIndex
	e.mu.RUnlock()
	return mi.Snapshot()
}

func (e *Engine) Ready() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.built
}

func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stats
}
