package database

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/nao1215/neocc/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()
		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dbDir, FileName)); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
		if db.Path() != filepath.Join(dbDir, FileName) {
			t.Errorf("Path() = %q", db.Path())
		}
	})

	t.Run("CreateIfNotExists=false fails for missing database", func(t *testing.T) {
		t.Parallel()
		_, err := Open(t.TempDir(), Options{CreateIfNotExists: false})
		if err == nil {
			t.Error("expected error for missing database")
		}
	})

	t.Run("reopens an existing database", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		db, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		_ = db.Close()
		db, err = Open(dir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		_ = db.Close()
	})

	t.Run("applies WAL journal mode", func(t *testing.T) {
		t.Parallel()
		db, err := Open(t.TempDir(), DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		defer db.Close()

		var mode string
		if err := db.db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&mode); err != nil {
			t.Fatal(err)
		}
		if mode != "wal" {
			t.Errorf("journal_mode = %q, want wal", mode)
		}
	})
}

// TestDocumentCache tests storage, expiry and replacement of documents.
func TestDocumentCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := NewDocumentCache(setupTestDB(t))
	url := "https://neo.ssa.esa.int/PSDB-portlet/download?file=2023DW.risk"

	t.Run("miss on empty cache", func(t *testing.T) {
		if _, ok, err := cache.Get(ctx, url, time.Hour); ok || err != nil {
			t.Errorf("expected a miss, got ok=%v err=%v", ok, err)
		}
	})

	old, err := model.NewDocument(url, []byte("old body"), time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.Put(ctx, old); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	t.Run("stale entry misses", func(t *testing.T) {
		if _, ok, _ := cache.Get(ctx, url, time.Hour); ok {
			t.Error("entry older than max age should miss")
		}
	})

	t.Run("fresh entry hits", func(t *testing.T) {
		doc, ok, err := cache.Get(ctx, url, 3*time.Hour)
		if err != nil || !ok {
			t.Fatalf("expected a hit, got ok=%v err=%v", ok, err)
		}
		if doc.Text != "old body" || !doc.FromCache || doc.Hash != old.Hash {
			t.Errorf("unexpected document %+v", doc)
		}
	})

	t.Run("zero max age never hits", func(t *testing.T) {
		if _, ok, _ := cache.Get(ctx, url, 0); ok {
			t.Error("zero max age should miss")
		}
	})

	t.Run("put replaces", func(t *testing.T) {
		fresh, err := model.NewDocument(url, []byte("new body"), time.Now())
		if err != nil {
			t.Fatal(err)
		}
		if err := cache.Put(ctx, fresh); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		doc, ok, err := cache.Get(ctx, url, time.Hour)
		if err != nil || !ok || doc.Text != "new body" {
			t.Errorf("expected replaced document, got %+v ok=%v err=%v", doc, ok, err)
		}
	})

	t.Run("purge", func(t *testing.T) {
		n, err := cache.Purge(ctx, time.Now().Add(time.Hour))
		if err != nil || n != 1 {
			t.Errorf("Purge = %d, %v", n, err)
		}
		if _, ok, _ := cache.Get(ctx, url, time.Hour); ok {
			t.Error("purged entry should miss")
		}
	})
}

// TestSnapshots tests saving, ordering and loading list snapshots.
func TestSnapshots(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	first := []string{"2023DW", "99942 Apophis"}
	second := []string{"2023DW", "2024AA"}
	if _, err := db.SaveSnapshot(ctx, model.ListRisk, first, base); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	// Half a second later: fractional timestamps must still sort correctly.
	if _, err := db.SaveSnapshot(ctx, model.ListRisk, second, base.Add(500*time.Millisecond)); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := db.SaveSnapshot(ctx, model.ListNEA, []string{"433 Eros"}, base.Add(time.Hour)); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	history, err := db.SnapshotHistory(ctx, model.ListRisk)
	if err != nil {
		t.Fatalf("SnapshotHistory failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 risk snapshots, got %d", len(history))
	}
	if !history[0].TakenAt.Equal(base.Add(500*time.Millisecond)) || history[0].Count != 2 {
		t.Errorf("newest snapshot = %+v", history[0])
	}

	latest, err := db.LatestSnapshots(ctx, model.ListRisk, 2)
	if err != nil {
		t.Fatalf("LatestSnapshots failed: %v", err)
	}
	if len(latest) != 2 || !slices.Equal(latest[0].Designators, second) || !slices.Equal(latest[1].Designators, first) {
		t.Errorf("unexpected snapshots %+v", latest)
	}
	if latest[0].Hash == latest[1].Hash {
		t.Error("different designator sets should hash differently")
	}

	none, err := db.LatestSnapshots(ctx, model.ListPriority, 2)
	if err != nil || len(none) != 0 {
		t.Errorf("expected no snapshots, got %v %v", none, err)
	}
}

// TestDiffDesignators tests the added/removed computation.
func TestDiffDesignators(t *testing.T) {
	t.Parallel()

	added, removed := DiffDesignators(
		[]string{"2023DW", "99942 Apophis", "433 Eros"},
		[]string{"2024AA", "2023DW", "433 Eros", "2024AA"},
	)
	if !slices.Equal(added, []string{"2024AA"}) {
		t.Errorf("added = %v", added)
	}
	if !slices.Equal(removed, []string{"99942 Apophis"}) {
		t.Errorf("removed = %v", removed)
	}

	added, removed = DiffDesignators(nil, nil)
	if len(added) != 0 || len(removed) != 0 {
		t.Errorf("expected empty diff, got %v %v", added, removed)
	}
}
