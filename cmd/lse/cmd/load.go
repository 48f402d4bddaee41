package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/source"
)

func newLoadCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Copy a file corpus into Postgres",
		Long: `Read the documents file and stop-word file named by the corpus settings
and store them in the Postgres documents and stop_words tables, creating
the tables if needed. Documents keep their listing order.

Afterwards run with corpus.source set to postgres to index from the
database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := connectPostgres(cmd.Context(), root.cfg.Postgres)
			if err != nil {
				return err
			}
			defer client.Close()
			return loadCorpus(cmd.Context(), cmd.OutOrStdout(), source.NewFiles(root.cfg.Corpus), source.NewPostgres(client))
		},
	}
}

// corpusStore is where load writes; *source.Postgres implements it.
type corpusStore interface {
	EnsureSchema(ctx context.Context) error
	Put(ctx context.Context, docs map[string]string, order []string) error
	PutStopWords(ctx context.Context, words ...string) error
}

// loadCorpus copies every listed document and stop word from files to dst.
// Document bodies are stored as their whitespace-separated words, which
// index identically to the original text.
func loadCorpus(ctx context.Context, w io.Writer, files *source.Files, dst corpusStore) error {
	stops, err := files.StopWords(ctx)
	if err != nil {
		return err
	}
	ids, err := files.DocumentIDs(ctx)
	if err != nil {
		return err
	}
	docs := make(map[string]string, len(ids))
	order := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := docs[id]; dup {
			continue
		}
		tokens, err := files.Tokens(ctx, id)
		if err != nil {
			return err
		}
		docs[id] = strings.Join(slices.Collect(tokens), " ")
		order = append(order, id)
	}

	if err := dst.EnsureSchema(ctx); err != nil {
		return err
	}
	words := slices.Collect(stops)
	if err := dst.PutStopWords(ctx, words...); err != nil {
		return err
	}
	if err := dst.Put(ctx, docs, order); err != nil {
		return err
	}
	slog.Info("corpus loaded", "documents", len(order), "stop_words", len(words))
	_, err = fmt.Fprintf(w, "loaded %d documents and %d stop words\n", len(order), len(words))
	return err
}

var _ corpusStore = (*source.Postgres)(nil)
