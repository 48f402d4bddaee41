package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/source"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/postgres"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/resilience"
)

// corpusSource is a corpus that also supplies its stop words.
type corpusSource interface {
	indexer.Corpus
	indexer.StopWordSource
}

// openCorpus returns the configured corpus and a close func for whatever
// connection it holds.
func openCorpus(ctx context.Context, cfg *config.Config) (corpusSource, func(), error) {
	switch cfg.Corpus.Source {
	case config.SourcePostgres:
		client, err := connectPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("opening corpus database: %w", err)
		}
		slog.Info("reading corpus from postgres", "host", cfg.Postgres.Host, "database", cfg.Postgres.Database)
		return source.NewPostgres(client), func() { _ = client.Close() }, nil
	default:
		slog.Info("reading corpus from files", "docs", cfg.Corpus.DocsFile, "stop_words", cfg.Corpus.StopWordsFile)
		return source.NewFiles(cfg.Corpus), func() {}, nil
	}
}

// buildIndex opens the corpus and builds a fresh engine over it.
func buildIndex(ctx context.Context, cfg *config.Config, observers ...indexer.Observer) (*indexer.Engine, error) {
	corpus, closeFn, err := openCorpus(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	engine := indexer.NewEngine(observers...)
	if err := engine.Build(ctx, corpus, corpus); err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}
	return engine, nil
}

func connectPostgres(ctx context.Context, cfg config.PostgresConfig) (*postgres.Client, error) {
	var client *postgres.Client
	err := resilience.Retry(ctx, "postgres connect", resilience.ConnectRetry, func(ctx context.Context) error {
		var err error
		client, err = postgres.New(ctx, cfg)
		return err
	})
	return client, err
}
