// Package source provides the corpus and stop-word collaborators the indexer
// reads from: plain files, a Postgres database, or in-memory fixtures.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
)

// readFile maps a missing file to errors.ErrResourceNotFound.
func readFile(kind, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", apperrors.NotFound(kind, path)
		}
		return "", fmt.Errorf("reading %s %s: %w", kind, path, err)
	}
	return string(data), nil
}
