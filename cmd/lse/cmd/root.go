// Package cmd provides the lse CLI commands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/logger"
)

// rootOptions carries the persistent flags and the config they resolve to.
type rootOptions struct {
	configPath    string
	logLevel      string
	logFormat     string
	docsFile      string
	stopWordsFile string
	baseDir       string

	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "lse",
		Short: "Little search engine: keyword index with two-keyword OR search",
		Long: `lse builds an in-memory keyword index over a corpus of text documents
and answers "kw1 OR kw2" searches with the top five documents by keyword
frequency.

The corpus comes from a documents file listing one document file per
word plus a stop-word file, or from Postgres.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to YAML config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: text, json")
	flags.StringVar(&opts.docsFile, "docs", "", "Documents file (file source)")
	flags.StringVar(&opts.stopWordsFile, "stop-words", "", "Stop-word file (file source)")
	flags.StringVar(&opts.baseDir, "base-dir", "", "Directory relative document names are resolved against")

	cmd.AddCommand(newIndexCmd(opts))
	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newLoadCmd(opts))

	return cmd
}

// load reads the config, lets explicit flags win over it, and installs the
// logger on the command's stderr.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = o.logFormat
	}
	if flags.Changed("docs") {
		cfg.Corpus.DocsFile = o.docsFile
	}
	if flags.Changed("stop-words") {
		cfg.Corpus.StopWordsFile = o.stopWordsFile
	}
	if flags.Changed("base-dir") {
		cfg.Corpus.BaseDir = o.baseDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger.Setup(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	o.cfg = cfg
	return nil
}
