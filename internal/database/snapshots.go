package database

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/nao1215/neocc/internal/model"
)

// Snapshot is the designator set of one list query.
type Snapshot struct {
	ID          int64
	List        model.ListName
	TakenAt     time.Time
	Designators []string
	Hash        string
}

// SnapshotMetadata describes a snapshot without loading its designators.
type SnapshotMetadata struct {
	ID      int64
	List    model.ListName
	TakenAt time.Time
	Count   int
	Hash    string
}

// SaveSnapshot stores the designators of a list result.
func (d *DB) SaveSnapshot(ctx context.Context, list model.ListName, designators []string, takenAt time.Time) (int64, error) {
	data, err := json.Marshal(designators)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize designators: %w", err)
	}
	query := `
	INSERT INTO list_snapshots (list_name, taken_at, designators, entry_count, hash)
	VALUES (?, ?, ?, ?, ?)
	`
	res, err := d.db.ExecContext(ctx, query,
		string(list),
		formatTimestamp(takenAt),
		string(data),
		len(designators),
		model.HashBody([]byte(strings.Join(designators, "\n"))),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return res.LastInsertId()
}

// SnapshotHistory returns the metadata of every snapshot of list, newest first.
func (d *DB) SnapshotHistory(ctx context.Context, list model.ListName) ([]SnapshotMetadata, error) {
	query := `
	SELECT id, list_name, taken_at, entry_count, hash
	FROM list_snapshots
	WHERE list_name = ?
	ORDER BY taken_at DESC, id DESC
	`
	rows, err := d.db.QueryContext(ctx, query, string(list))
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot history: %w", err)
	}
	defer rows.Close()

	var results []SnapshotMetadata
	for rows.Next() {
		var (
			meta    SnapshotMetadata
			name    string
			takenAt string
		)
		if err := rows.Scan(&meta.ID, &name, &takenAt, &meta.Count, &meta.Hash); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot metadata: %w", err)
		}
		meta.List = model.ListName(name)
		meta.TakenAt = parseTimestamp(takenAt)
		results = append(results, meta)
	}
	return results, rows.Err()
}

// LatestSnapshots returns up to n snapshots of list, newest first.
func (d *DB) LatestSnapshots(ctx context.Context, list model.ListName, n int) ([]*Snapshot, error) {
	query := `
	SELECT id, taken_at, designators, hash
	FROM list_snapshots
	WHERE list_name = ?
	ORDER BY taken_at DESC, id DESC
	LIMIT ?
	`
	rows, err := d.db.QueryContext(ctx, query, string(list), n)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshots: %w", err)
	}
	defer rows.Close()

	var results []*Snapshot
	for rows.Next() {
		var (
			s       = &Snapshot{List: list}
			takenAt string
			data    string
		)
		if err := rows.Scan(&s.ID, &takenAt, &data, &s.Hash); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		if err := json.Unmarshal([]byte(data), &s.Designators); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot %d: %w", s.ID, err)
		}
		s.TakenAt = parseTimestamp(takenAt)
		results = append(results, s)
	}
	return results, rows.Err()
}

// DiffDesignators returns the designators present only in newer (added)
// and only in older (removed), both sorted.
func DiffDesignators(older, newer []string) (added, removed []string) {
	inOld := make(map[string]bool, len(older))
	for _, d := range older {
		inOld[d] = true
	}
	inNew := make(map[string]bool, len(newer))
	for _, d := range newer {
		inNew[d] = true
		if !inOld[d] {
			added = append(added, d)
		}
	}
	for _, d := range older {
		if !inNew[d] {
			removed = append(removed, d)
		}
	}
	slices.Sort(added)
	slices.Sort(removed)
	return slices.Compact(added), slices.Compact(removed)
}
