package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFiles_ReadsCorpus(t *testing.T) {
	dir := t.TempDir()
	docs := writeFile(t, dir, "docs.txt", "d1.txt\nd2.txt\n")
	stops := writeFile(t, dir, "noise.txt", "a\nthe\n")
	writeFile(t, dir, "d1.txt", "The cat sat.\nsat!")
	writeFile(t, dir, "d2.txt", "A cat cat cat")
	f := &Files{DocsFile: docs, StopWordsFile: stops, BaseDir: dir}
	ctx := context.Background()

	ids, err := f.DocumentIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"d1.txt", "d2.txt"}, ids)

	tokens, err := f.Tokens(ctx, "d1.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"The", "cat", "sat.", "sat!"}, slices.Collect(tokens))
	assert.Equal(t, []string{"The", "cat", "sat.", "sat!"}, slices.Collect(tokens), "sequence replays")

	words, err := f.StopWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "the"}, slices.Collect(words))
}

func TestFiles_MissingResources(t *testing.T) {
	dir := t.TempDir()
	f := &Files{
		DocsFile:      filepath.Join(dir, "docs.txt"),
		StopWordsFile: filepath.Join(dir, "noise.txt"),
		BaseDir:       dir,
	}
	ctx := context.Background()

	_, err := f.DocumentIDs(ctx)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))

	_, err = f.StopWords(ctx)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))

	_, err = f.Tokens(ctx, "ghost.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
	assert.Contains(t, err.Error(), "ghost.txt")
}

func TestFiles_PathResolution(t *testing.T) {
	f := &Files{BaseDir: "/corpus"}
	assert.Equal(t, filepath.Join("/corpus", "a.txt"), f.path("a.txt"))
	assert.Equal(t, "/elsewhere/b.txt", f.path("/elsewhere/b.txt"))

	f.BaseDir = ""
	assert.Equal(t, "a.txt", f.path("a.txt"))
}
