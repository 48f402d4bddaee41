package source

import (
	"context"
	"iter"
	"path/filepath"
	"slices"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/config"
)

// Files reads the corpus from disk. DocsFile holds whitespace-separated
// document file names; each name is the document's ID and is resolved
// against BaseDir when relative. StopWordsFile holds whitespace-separated
// stop words.
type Files struct {
	DocsFile      string
	StopWordsFile string
	BaseDir       string
}

func NewFiles(cfg config.CorpusConfig) *Files {
	return &Files{
		DocsFile:      cfg.DocsFile,
		StopWordsFile: cfg.StopWordsFile,
		BaseDir:       cfg.BaseDir,
	}
}

func (f *Files) DocumentIDs(ctx context.Context) ([]string, error) {
	text, err := readFile("document list", f.DocsFile)
	if err != nil {
		return nil, err
	}
	return slices.Collect(tokenizer.Words(text)), nil
}

// Tokens reads the whole document up front so the sequence can be replayed.
func (f *Files) Tokens(ctx context.Context, docID string) (iter.Seq[string], error) {
	text, err := readFile("document", f.path(docID))
	if err != nil {
		return nil, err
	}
	return tokenizer.Words(text), nil
}

func (f *Files) StopWords(ctx context.Context) (iter.Seq[string], error) {
	text, err := readFile("stop-word file", f.StopWordsFile)
	if err != nil {
		return nil, err
	}
	return tokenizer.Words(text), nil
}

func (f *Files) path(docID string) string {
	if f.BaseDir == "" || filepath.IsAbs(docID) {
		return docID
	}
	return filepath.Join(f.BaseDir, docID)
}
