package index

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/tokenizer"
)

func TestScanDocument(t *testing.T) {
	sw := tokenizer.NewStopWords("a", "the")

	table := ScanDocument("d1", tokenizer.Words("The cat sat. sat!"), sw)

	assert.Equal(t, "d1", table.Document)
	assert.Equal(t, map[string]*Occurrence{
		"cat": {Document: "d1", Frequency: 1},
		"sat": {Document: "d1", Frequency: 2},
	}, table.Keywords)
}

func TestScanDocument_RejectsEverything(t *testing.T) {
	sw := tokenizer.NewStopWords("a")

	table := ScanDocument("noise", tokenizer.Words("A a 123 ... x-ray"), sw)

	assert.Empty(t, table.Keywords)
}

func TestScanDocument_CountsAcrossCase(t *testing.T) {
	table := ScanDocument("d", tokenizer.Words("Go GO go, go!"), nil)

	assert.Len(t, table.Keywords, 1)
	assert.Equal(t, 4, table.Keywords["go"].Frequency)
}
