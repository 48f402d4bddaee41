package indexer

import (
	"context"
	"iter"
	"time"
)

// Corpus supplies the documents to index. DocumentIDs fixes the indexing
// order. Tokens returns a finite sequence that may be ranged over more than
// once; a document that cannot be located yields an error wrapping
// errors.ErrResourceNotFound.
type Corpus interface {
	DocumentIDs(ctx context.Context) ([]string, error)
	Tokens(ctx context.Context, docID string) (iter.Seq[string], error)
}

// StopWordSource supplies the stop words, read once before indexing.
type StopWordSource interface {
	StopWords(ctx context.Context) (iter.Seq[string], error)
}

// Observer is notified after each document is merged. Tokens counts the
// accepted keyword occurrences, Keywords the distinct keywords.
type Observer interface {
	DocumentIndexed(ctx context.Context, docID string, keywords, tokens int, elapsed time.Duration)
}
