package indexer

import (
	"context"
	"errors"
	"iter"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/source"
	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
)

type recordingObserver struct {
	docs   []string
	tokens []int
}

func (r *recordingObserver) DocumentIndexed(_ context.Context, docID string, _, tokens int, _ time.Duration) {
	r.docs = append(r.docs, docID)
	r.tokens = append(r.tokens, tokens)
}

type failingStopWords struct{ err error }

func (f failingStopWords) StopWords(context.Context) (iter.Seq[string], error) { return nil, f.err }

func exampleCorpus() *source.Memory {
	return source.NewMemory("a", "the").
		Add("d1", "The cat sat. sat!").
		Add("d2", "A cat cat cat")
}

func TestEngine_Build(t *testing.T) {
	obs := &recordingObserver{}
	e := NewEngine(obs)
	corpus := exampleCorpus()

	require.NoError(t, e.Build(context.Background(), corpus, corpus))

	assert.True(t, e.Ready())
	cat, ok := e.Lookup("cat")
	require.True(t, ok)
	assert.Equal(t, index.OccurrenceList{{Document: "d2", Frequency: 3}, {Document: "d1", Frequency: 1}}, cat)
	sat, ok := e.Lookup("sat")
	require.True(t, ok)
	assert.Equal(t, index.OccurrenceList{{Document: "d1", Frequency: 2}}, sat)

	stats := e.Stats()
	assert.Equal(t, 2, stats.Documents)
	assert.Equal(t, 2, stats.Keywords)
	assert.Equal(t, 2, stats.StopWords)
	assert.False(t, stats.BuiltAt.IsZero())

	assert.Equal(t, []string{"d1", "d2"}, obs.docs)
	assert.Equal(t, []int{3, 3}, obs.tokens)
	assert.Len(t, e.Snapshot(), 2)
}

func TestEngine_BuildOnlyOnce(t *testing.T) {
	e := NewEngine()
	corpus := exampleCorpus()
	require.NoError(t, e.Build(context.Background(), corpus, corpus))

	err := e.Build(context.Background(), corpus, corpus)

	assert.True(t, errors.Is(err, apperrors.ErrIndexBuilt))
}

func TestEngine_MissingDocumentAbortsBuild(t *testing.T) {
	e := NewEngine()
	corpus := source.NewMemory("the").
		Add("d1", "cat").
		List("missing").
		Add("d3", "dog")

	err := e.Build(context.Background(), corpus, corpus)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
	assert.Contains(t, err.Error(), `"missing"`)
	assert.False(t, e.Ready())
	_, ok := e.Lookup("cat")
	assert.False(t, ok, "a failed build publishes nothing")
}

func TestEngine_MissingStopWordsAbortsBuild(t *testing.T) {
	e := NewEngine()

	err := e.Build(context.Background(), exampleCorpus(), failingStopWords{err: apperrors.NotFound("stop-word file", "noise.txt")})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
	assert.Contains(t, err.Error(), "loading stop words")
	assert.False(t, e.Ready())
}

func TestEngine_DuplicateDocumentAbortsBuild(t *testing.T) {
	e := NewEngine()
	corpus := source.NewMemory().Add("d1", "cat").Add("d1", "cat")

	err := e.Build(context.Background(), corpus, corpus)

	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	assert.False(t, e.Ready())
}

func TestEngine_CancelledContext(t *testing.T) {
	e := NewEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	corpus := exampleCorpus()

	err := e.Build(ctx, corpus, corpus)

	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, e.Ready())
}

func TestEngine_LookupBeforeBuild(t *testing.T) {
	e := NewEngine()
	_, ok := e.Lookup("cat")
	assert.False(t, ok)
	assert.False(t, e.Ready())
}
