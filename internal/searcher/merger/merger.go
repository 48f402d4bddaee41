// Package merger combines the occurrence lists of two keywords into one
// ranked list of documents.
package merger

import "github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/index"

// DefaultLimit is the most documents a result holds. It also applies when no
// positive limit is given.
const DefaultLimit = 5

// TopDocuments walks two descending occurrence lists together, always taking
// the entry with the higher frequency and the first list's entry on a tie.
// A document already taken is skipped, so a document under both keywords
// appears once at its first encounter. The walk stops after limit documents
// or when both lists are exhausted. A nil list stands for a keyword that is
// not indexed; with one list nil the other is taken in order. The result is
// nil when nothing matched.
func TopDocuments(first, second index.OccurrenceList, limit int) []string {
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}
	if len(first) == 0 && len(second) == 0 {
		return nil
	}
	docs := make([]string, 0, limit)
	seen := make(map[string]struct{}, limit)
	i, j := 0, 0
	for len(docs) < limit && (i < len(first) || j < len(second)) {
		var next index.Occurrence
		switch {
		case j >= len(second):
			next = first[i]
			i++
		case i >= len(first):
			next = second[j]
			j++
		case second[j].Frequency > first[i].Frequency:
			next = second[j]
			j++
		default:
			next = first[i]
			i++
		}
		if _, dup := seen[next.Document]; dup {
			continue
		}
		seen[next.Document] = struct{}{}
		docs = append(docs, next.Document)
	}
	if len(docs) == 0 {
		return nil
	}
	return docs
}
