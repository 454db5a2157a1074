package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// FileName is the database file created inside the data directory.
const FileName = "neocc.db"

// DB provides SQLite-based storage for the document cache and list
// snapshots.
type DB struct {
	db     *sql.DB
	dbPath string
}

// Options configures how Open treats the database file.
type Options struct {
	// CreateIfNotExists creates the directory and file on first use.
	// Without it, Open fails for a missing database.
	CreateIfNotExists bool

	// EnableWAL switches the journal to write-ahead logging so compare can
	// read while a list query writes.
	EnableWAL bool
}

// DefaultOptions creates the database on demand with WAL enabled.
func DefaultOptions() Options {
	return Options{CreateIfNotExists: true, EnableWAL: true}
}

// busyTimeout is how long a connection waits on a locked database.
const busyTimeout = 5 * time.Second

// Open opens the database in dbDir.
func Open(dbDir string, opts Options) (*DB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	} else if _, err := os.Stat(dbPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("no database at %s (run 'neocc list <name> --save' first)", dbPath)
		}
		return nil, fmt.Errorf("failed to check database path: %w", err)
	}

	db, err := sql.Open("sqlite", dataSourceName(dbPath, opts))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite only supports one writer; batch queries share this handle.
	db.SetMaxOpenConns(1)

	d := &DB{db: db, dbPath: dbPath}
	if err := d.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare schema: %w", err)
	}
	return d, nil
}

// dataSourceName builds a modernc URI with the pragmas applied to every
// new connection.
func dataSourceName(path string, opts Options) string {
	q := url.Values{}
	q.Set("mode", "rw")
	if opts.CreateIfNotExists {
		q.Set("mode", "rwc")
	}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	if opts.EnableWAL {
		q.Add("_pragma", "journal_mode(WAL)")
	}
	return "file:" + filepath.ToSlash(path) + "?" + q.Encode()
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.dbPath
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	const schema = `
	-- Documents cache raw response bodies keyed on their URL
	CREATE TABLE IF NOT EXISTS documents (
		url TEXT PRIMARY KEY,
		body BLOB NOT NULL,
		hash TEXT NOT NULL,
		fetched_at TEXT NOT NULL
	);

	-- List snapshots keep the designators of every saved list query
	CREATE TABLE IF NOT EXISTS list_snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		list_name TEXT NOT NULL,
		taken_at TEXT NOT NULL,
		designators TEXT NOT NULL,
		entry_count INTEGER NOT NULL,
		hash TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_list ON list_snapshots(list_name, taken_at);
	`
	_, err := d.db.ExecContext(ctx, schema)
	return err
}

// storedLayout has fixed-width fractional seconds so that stored
// timestamps sort lexically in time order.
const storedLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(storedLayout)
}

// parseTimestamp reads a stored timestamp. Unreadable values give the
// zero time, which every max-age check treats as stale.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
