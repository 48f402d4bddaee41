package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/index"
)

type indexOptions struct {
	keywords bool
	format   string
}

func newIndexCmd(root *rootOptions) *cobra.Command {
	var opts indexOptions

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the index and print its statistics",
		Long: `Build the keyword index over the configured corpus and print how many
documents, keywords and stop words it holds.

Examples:
  lse index --docs docs.txt --stop-words noisewords.txt
  lse index --keywords
  lse index --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := buildIndex(cmd.Context(), root.cfg)
			if err != nil {
				return err
			}
			return printIndex(cmd.OutOrStdout(), engine, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.keywords, "keywords", "k", false, "Also list every keyword with its occurrences")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func printIndex(w io.Writer, engine *indexer.Engine, opts indexOptions) error {
	stats := engine.Stats()
	if opts.format == "json" {
		out := struct {
			Stats    indexer.Stats        `json:"stats"`
			Keywords []index.KeywordEntry `json:"keywords,omitempty"`
		}{Stats: stats}
		if opts.keywords {
			out.Keywords = engine.Snapshot()
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(w, "documents:  %d\n", stats.Documents)
	fmt.Fprintf(w, "keywords:   %d\n", stats.Keywords)
	fmt.Fprintf(w, "stop words: %d\n", stats.StopWords)
	fmt.Fprintf(w, "build time: %s\n", stats.BuildTime)
	if !opts.keywords {
		return nil
	}
	fmt.Fprintln(w)
	for _, entry := range engine.Snapshot() {
		parts := make([]string, len(entry.Occurrences))
		for i, occ := range entry.Occurrences {
			parts[i] = fmt.Sprintf("%s(%d)", occ.Document, occ.Frequency)
		}
		fmt.Fprintf(w, "%s: %s\n", entry.Keyword, strings.Join(parts, " "))
	}
	return nil
}
