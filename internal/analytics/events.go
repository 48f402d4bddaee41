package analytics

import "time"

type EventType string

const (
	EventSearch   EventType = "search"
	EventIndexDoc EventType = "index_document"
)

// SearchEvent describes one answered search.
type SearchEvent struct {
	Type      EventType `json:"type"`
	Query     string    `json:"query"`
	Keywords  []string  `json:"keywords"`
	Returned  int       `json:"returned"`
	Found     bool      `json:"found"`
	LatencyUs int64     `json:"latency_us"`
	CacheHit  bool      `json:"cache_hit"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// IndexEvent describes one document merged during an index build.
type IndexEvent struct {
	Type        EventType `json:"type"`
	DocumentID  string    `json:"document_id"`
	Keywords    int       `json:"keywords"`
	Occurrences int       `json:"occurrences"`
	LatencyUs   int64     `json:"latency_us"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e SearchEvent) key() string { return string(e.Type) }
func (e IndexEvent) key() string  { return e.DocumentID }
