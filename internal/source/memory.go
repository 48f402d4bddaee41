package source

import (
	"context"
	"iter"
	"slices"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
)

// Memory is a corpus held in memory, listed in the order documents were
// added.
type Memory struct {
	order     []string
	texts     map[string]string
	stopWords []string
}

func NewMemory(stopWords ...string) *Memory {
	return &Memory{
		texts:     make(map[string]string),
		stopWords: stopWords,
	}
}

// Add appends a document. Adding an ID twice lists it twice.
func (m *Memory) Add(docID, text string) *Memory {
	m.order = append(m.order, docID)
	m.texts[docID] = text
	return m
}

// List appends an ID without content, so Tokens reports it as missing.
func (m *Memory) List(docID string) *Memory {
	m.order = append(m.order, docID)
	return m
}

func (m *Memory) DocumentIDs(ctx context.Context) ([]string, error) {
	return slices.Clone(m.order), nil
}

func (m *Memory) Tokens(ctx context.Context, docID string) (iter.Seq[string], error) {
	text, ok := m.texts[docID]
	if !ok {
		return nil, apperrors.NotFound("document", docID)
	}
	return tokenizer.Words(text), nil
}

func (m *Memory) StopWords(ctx context.Context) (iter.Seq[string], error) {
	return slices.Values(m.stopWords), nil
}
