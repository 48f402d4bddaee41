package merger

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/index"
)

func list(pairs ...any) index.OccurrenceList {
	out := make(index.OccurrenceList, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, index.Occurrence{Document: pairs[i].(string), Frequency: pairs[i+1].(int)})
	}
	return out
}

func TestTopDocuments(t *testing.T) {
	tests := []struct {
		name   string
		first  index.OccurrenceList
		second index.OccurrenceList
		want   []string
	}{
		{
			name:   "example cat or sat",
			first:  list("d2", 3, "d1", 1),
			second: list("d1", 2),
			want:   []string{"d2", "d1"},
		},
		{
			name: "both absent",
			want: nil,
		},
		{
			name:  "only first present",
			first: list("a", 9, "b", 4, "c", 4, "d", 2, "e", 1, "f", 1),
			want:  []string{"a", "b", "c", "d", "e"},
		},
		{
			name:   "only second present",
			second: list("x", 2, "y", 1),
			want:   []string{"x", "y"},
		},
		{
			name:   "tie prefers first keyword",
			first:  list("p", 3),
			second: list("q", 3),
			want:   []string{"p", "q"},
		},
		{
			name:   "second wins on higher frequency",
			first:  list("p", 2, "r", 1),
			second: list("q", 5, "s", 2),
			want:   []string{"q", "p", "s", "r"},
		},
		{
			name:   "duplicate emitted once at higher priority",
			first:  list("shared", 1, "only1", 1),
			second: list("shared", 7, "only2", 6),
			want:   []string{"shared", "only2", "only1"},
		},
		{
			name:   "capped at five",
			first:  list("a", 10, "b", 8, "c", 6, "d", 4),
			second: list("e", 9, "f", 7, "g", 5, "h", 3),
			want:   []string{"a", "e", "b", "f", "c"},
		},
		{
			name:   "duplicates do not count toward cap",
			first:  list("a", 5, "b", 4, "c", 3),
			second: list("a", 5, "b", 4, "c", 3, "d", 2, "e", 1, "f", 1),
			want:   []string{"a", "b", "c", "d", "e"},
		},
		{
			name:   "same keyword twice",
			first:  list("a", 2, "b", 1),
			second: list("a", 2, "b", 1),
			want:   []string{"a", "b"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopDocuments(tt.first, tt.second, DefaultLimit)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTopDocuments_Limit(t *testing.T) {
	first := list("a", 3, "b", 2, "c", 1)
	assert.Equal(t, []string{"a"}, TopDocuments(first, nil, 1))
	assert.Len(t, TopDocuments(first, nil, 0), 3, "non-positive limit falls back to the default")

	long := list("a", 7, "b", 6, "c", 5, "d", 4, "e", 3, "f", 2, "g", 1)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, TopDocuments(long, nil, 10))
}

func TestTopDocuments_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	randomList := func() index.OccurrenceList {
		n := rng.IntN(8)
		out := make(index.OccurrenceList, n)
		freq := 10
		for i := range out {
			freq -= rng.IntN(3)
			if freq < 1 {
				freq = 1
			}
			out[i] = index.Occurrence{Document: fmt.Sprintf("d%d", rng.IntN(10)), Frequency: freq}
		}
		return dedupe(out)
	}
	for round := 0; round < 300; round++ {
		first, second := randomList(), randomList()
		got := TopDocuments(first, second, DefaultLimit)

		assert.LessOrEqual(t, len(got), DefaultLimit)
		seen := map[string]bool{}
		for _, d := range got {
			assert.False(t, seen[d], "document %s repeated", d)
			seen[d] = true
		}
		if len(first) == 0 && len(second) == 0 {
			assert.Nil(t, got)
		} else {
			assert.NotEmpty(t, got)
		}
	}
}

func dedupe(l index.OccurrenceList) index.OccurrenceList {
	seen := map[string]bool{}
	out := l[:0]
	for _, occ := range l {
		if seen[occ.Document] {
			continue
		}
		seen[occ.Document] = true
		out = append(out, occ)
	}
	return out
}

func BenchmarkTopDocuments(b *testing.B) {
	first := make(index.OccurrenceList, 1000)
	second := make(index.OccurrenceList, 1000)
	for i := range first {
		first[i] = index.Occurrence{Document: fmt.Sprintf("a-%d", i), Frequency: 1000 - i}
		second[i] = index.Occurrence{Document: fmt.Sprintf("b-%d", i), Frequency: 1000 - i}
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = TopDocuments(first, second, DefaultLimit)
	}
}
