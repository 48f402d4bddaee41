package index

import (
	"iter"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/tokenizer"
)

// ScanDocument counts the keywords of one document. Tokens rejected by the
// stop-word set's normaliser are skipped.
func ScanDocument(docID string, tokens iter.Seq[string], stopWords *tokenizer.StopWords) DocumentTable {
	table := DocumentTable{
		Document: docID,
		Keywords: make(map[string]*Occurrence),
	}
	for token := range tokens {
		keyword, ok := stopWords.Normalize(token)
		if !ok {
			continue
		}
		if occ, exists := table.Keywords[keyword]; exists {
			occ.Frequency++
			continue
		}
		table.Keywords[keyword] = &Occurrence{Document: docID, Frequency: 1}
	}
	return table
}
