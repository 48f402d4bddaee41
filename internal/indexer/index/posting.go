package index

// Occurrence records how many times a keyword appears in one document.
type Occurrence struct {
	Document  string `json:"document"`
	Frequency int    `json:"frequency"`
}

// OccurrenceList holds one keyword's occurrences in non-increasing
// frequency order, at most one entry per document.
type OccurrenceList []Occurrence

// Documents returns the document IDs in list order.
func (l OccurrenceList) Documents() []string {
	docs := make([]string, len(l))
	for i, occ := range l {
		docs[i] = occ.Document
	}
	return docs
}

// Sorted reports whether the list is in non-increasing frequency order.
func (l OccurrenceList) Sorted() bool {
	for i := 1; i < len(l); i++ {
		if l[i].Frequency > l[i-1].Frequency {
			return false
		}
	}
	return true
}

// DocumentTable is the keyword frequency table of a single document. It only
// lives while the document is scanned and merged.
type DocumentTable struct {
	Document string
	Keywords map[string]*Occurrence
}

// KeywordEntry pairs a keyword with its occurrence list.
type KeywordEntry struct {
	Keyword     string         `json:"keyword"`
	Occurrences OccurrenceList `json:"occurrences"`
}
