package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/postgres"
)

// Schema creates the tables Postgres reads from. Documents are indexed in
// ascending position, then name.
const Schema = `
CREATE TABLE IF NOT EXISTS documents (
	name     TEXT PRIMARY KEY,
	body     TEXT,
	position INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS stop_words (
	word TEXT PRIMARY KEY
);`

// Postgres reads the corpus from the documents and stop_words tables. A
// document row with a NULL body counts as missing.
type Postgres struct {
	client *postgres.Client
}

func NewPostgres(client *postgres.Client) *Postgres {
	return &Postgres{client: client}
}

func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.client.DB.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("creating corpus schema: %w", err)
	}
	return nil
}

// Put inserts or replaces documents, keeping the given order as their
// positions, inside one transaction.
func (p *Postgres) Put(ctx context.Context, docs map[string]string, order []string) error {
	return p.client.InTx(ctx, func(tx *sql.Tx) error {
		for pos, name := range order {
			body, ok := docs[name]
			if !ok {
				return fmt.Errorf("document %q: %w: no body given", name, apperrors.ErrInvalidInput)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO documents (name, body, position) VALUES ($1, $2, $3)
				 ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, position = EXCLUDED.position`,
				name, body, pos,
			); err != nil {
				return fmt.Errorf("inserting document %q: %w", name, err)
			}
		}
		return nil
	})
}

// PutStopWords adds stop words, ignoring ones already stored.
func (p *Postgres) PutStopWords(ctx context.Context, words ...string) error {
	return p.client.InTx(ctx, func(tx *sql.Tx) error {
		for _, w := range words {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO stop_words (word) VALUES ($1) ON CONFLICT DO NOTHING`, w,
			); err != nil {
				return fmt.Errorf("inserting stop word %q: %w", w, err)
			}
		}
		return nil
	})
}

func (p *Postgres) DocumentIDs(ctx context.Context) ([]string, error) {
	return p.column(ctx, `SELECT name FROM documents ORDER BY position, name`)
}

func (p *Postgres) Tokens(ctx context.Context, docID string) (iter.Seq[string], error) {
	var body sql.NullString
	err := p.client.DB.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = $1`, docID).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !body.Valid) {
		return nil, apperrors.NotFound("document", docID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying document %q: %w", docID, err)
	}
	return tokenizer.Words(body.String), nil
}

func (p *Postgres) StopWords(ctx context.Context) (iter.Seq[string], error) {
	words, err := p.column(ctx, `SELECT word FROM stop_words`)
	if err != nil {
		return nil, err
	}
	return slices.Values(words), nil
}

func (p *Postgres) column(ctx context.Context, query string) ([]string, error) {
	rows, err := p.client.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying corpus: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning corpus row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating corpus rows: %w", err)
	}
	return out, nil
}
