package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/parser"
)

func newSearchCmd(root *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "search <kw1> <kw2>",
		Short: "Build the index and run one two-keyword search",
		Long: `Build the index, then print the top documents containing kw1 or kw2,
most frequent first. On equal frequency kw1's document ranks first.
Keywords are matched exactly, so pass them in lower case.

Examples:
  lse search deep world
  lse search "deep OR world"
  lse search deep world --format json`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := parser.Parse(strings.Join(args, " "))
			if err != nil {
				return err
			}
			engine, err := buildIndex(cmd.Context(), root.cfg)
			if err != nil {
				return err
			}
			result, err := executor.New(engine, root.cfg.Search.Limit).Execute(cmd.Context(), plan)
			if err != nil {
				return err
			}
			slog.Debug("search finished", "query", plan.String(), "returned", len(result.Documents))
			return printResult(cmd.OutOrStdout(), result, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func printResult(w io.Writer, result *executor.SearchResult, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	if !result.Found {
		_, err := fmt.Fprintln(w, "no matches")
		return err
	}
	for i, doc := range result.Documents {
		if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, doc); err != nil {
			return err
		}
	}
	return nil
}
