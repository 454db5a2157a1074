package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nao1215/neocc/internal/model"
)

// DocumentCache stores fetched documents in the documents table.
// It satisfies fetch.Cache.
type DocumentCache struct {
	db  *DB
	now func() time.Time
}

// NewDocumentCache returns a cache backed by d.
func NewDocumentCache(d *DB) *DocumentCache {
	return &DocumentCache{db: d, now: time.Now}
}

// Get returns the cached document for url when it is younger than
// maxAge. A non-positive maxAge never hits. Entries whose body no longer
// matches the stored hash are treated as missing.
func (c *DocumentCache) Get(ctx context.Context, url string, maxAge time.Duration) (*model.Document, bool, error) {
	if maxAge <= 0 {
		return nil, false, nil
	}
	query := `SELECT body, hash, fetched_at FROM documents WHERE url = ?`

	var (
		body      []byte
		hash      string
		fetchedAt string
	)
	err := c.db.db.QueryRowContext(ctx, query, url).Scan(&body, &hash, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached document: %w", err)
	}

	ts := parseTimestamp(fetchedAt)
	if c.now().Sub(ts) > maxAge {
		return nil, false, nil
	}
	if model.HashBody(body) != hash {
		return nil, false, nil
	}

	doc, err := model.NewDocument(url, body, ts)
	if err != nil {
		return nil, false, err
	}
	doc.FromCache = true
	return doc, true, nil
}

// Put stores doc, replacing any previous copy of its URL.
func (c *DocumentCache) Put(ctx context.Context, doc *model.Document) error {
	query := `
	INSERT INTO documents (url, body, hash, fetched_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(url) DO UPDATE SET
		body = excluded.body,
		hash = excluded.hash,
		fetched_at = excluded.fetched_at
	`
	if _, err := c.db.db.ExecContext(ctx, query, doc.URL, doc.Body, doc.Hash, formatTimestamp(doc.FetchedAt)); err != nil {
		return fmt.Errorf("failed to cache document: %w", err)
	}
	return nil
}

// Purge removes documents fetched before cutoff and returns how many
// were removed.
func (c *DocumentCache) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := c.db.db.ExecContext(ctx, `DELETE FROM documents WHERE fetched_at < ?`, formatTimestamp(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}
	return res.RowsAffected()
}
