// Package index holds the keyword index: per-document keyword tables and the
// global keyword to occurrence-list mapping they are merged into.
package index

import (
	"fmt"
	"iter"
	"sort"
	"sync"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
)

// MemoryIndex maps each keyword to its occurrences, kept in descending
// frequency order as documents are merged. Documents are only ever added.
type MemoryIndex struct {
	mu    sync.RWMutex
	index map[string]OccurrenceList
	docs  map[string]struct{}
	order []string
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		index: make(map[string]OccurrenceList),
		docs:  make(map[string]struct{}),
	}
}

// AddDocument scans tokens and merges the resulting table. The table is
// returned so callers can report on it.
func (m *MemoryIndex) AddDocument(docID string, tokens iter.Seq[string], stopWords *tokenizer.StopWords) (DocumentTable, error) {
	table := ScanDocument(docID, tokens, stopWords)
	if err := m.Merge(table); err != nil {
		return table, err
	}
	return table, nil
}

// Merge folds one document's table into the index. Each occurrence is
// appended to its keyword's list and moved into place with InsertLast.
// Merging a document that is already present fails and leaves the index
// untouched.
func (m *MemoryIndex) Merge(table DocumentTable) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.docs[table.Document]; exists {
		return fmt.Errorf("merging document %q: %w: already indexed", table.Document, apperrors.ErrInvalidInput)
	}
	m.docs[table.Document] = struct{}{}
	m.order = append(m.order, table.Document)

	for keyword, occ := range table.Keywords {
		list, exists := m.index[keyword]
		if !exists {
			m.index[keyword] = OccurrenceList{*occ}
			continue
		}
		list, _ = InsertLast(append(list, *occ))
		m.index[keyword] = list
	}
	return nil
}

// Lookup returns a copy of the occurrence list for keyword. The keyword is
// used as given; no normalisation happens here.
func (m *MemoryIndex) Lookup(keyword string) (OccurrenceList, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list, exists := m.index[keyword]
	if !exists {
		return nil, false
	}
	out := make(OccurrenceList, len(list))
	copy(out, list)
	return out, true
}

// Snapshot returns every keyword with a copy of its list, sorted by keyword.
func (m *MemoryIndex) Snapshot() []KeywordEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]KeywordEntry, 0, len(m.index))
	for keyword, list := range m.index {
		occs := make(OccurrenceList, len(list))
		copy(occs, list)
		entries = append(entries, KeywordEntry{
			Keyword:     keyword,
			Occurrences: occs,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Keyword < entries[j].Keyword
	})
	return entries
}

// Documents returns the merged document IDs in merge order.
func (m *MemoryIndex) Documents() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

func (m *MemoryIndex) KeywordCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.index)
}

func (m *MemoryIndex) DocCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}
