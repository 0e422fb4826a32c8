package frontier

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the durable key-value mapping from URL hash to (canonical
// URL, done flag) that spec.md §4.6 requires. It is backed by SQLite,
// adapted from the teacher's queryable page store
// (internal/storage/sqlite.go), narrowed to the frontier's single
// table. database/sql pools and serializes access internally, so
// unlike the append-only journal this was distilled from, the store
// can stay open for the crawl's duration rather than being reopened
// per access; every mutation still happens under the Frontier's lock.
type Store struct {
	db *sql.DB
}

// PendingEntry is one not-yet-completed row rehydrated from the
// store on a non-restart startup.
type PendingEntry struct {
	Hash uint64
	URL  string
}

// OpenStore opens (or creates) the durable store at path. If restart
// is true, any existing file is deleted first so the crawl starts
// clean, per spec.md §4.6.
func OpenStore(path string, restart bool) (*Store, error) {
	if restart {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("frontier: removing store for restart: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("frontier: opening store: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS frontier_urls (
		hash INTEGER PRIMARY KEY,
		url  TEXT NOT NULL,
		done INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_frontier_done ON frontier_urls(done);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("frontier: creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Insert records a newly discovered URL as not-done. It is a no-op if
// the hash already exists, so repeated insertion of the same
// canonical URL is safe.
func (s *Store) Insert(hash uint64, url string) error {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO frontier_urls (hash, url, done) VALUES (?, ?, 0)`,
		int64(hash), url,
	)
	if err != nil {
		return fmt.Errorf("frontier: inserting url: %w", err)
	}
	return nil
}

// Exists reports whether hash has already been recorded, regardless
// of its done flag.
func (s *Store) Exists(hash uint64) (bool, error) {
	var dummy int
	err := s.db.QueryRow(`SELECT 1 FROM frontier_urls WHERE hash = ?`, int64(hash)).Scan(&dummy)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("frontier: checking existence: %w", err)
	}
	return true, nil
}

// MarkDone flips the done flag for hash. Spec.md §4.6 requires this
// be called exactly once per dequeued URL.
func (s *Store) MarkDone(hash uint64) error {
	_, err := s.db.Exec(`UPDATE frontier_urls SET done = 1 WHERE hash = ?`, int64(hash))
	if err != nil {
		return fmt.Errorf("frontier: marking done: %w", err)
	}
	return nil
}

// Pending returns every row whose done flag is false, for rehydration
// on a non-restart startup.
func (s *Store) Pending() ([]PendingEntry, error) {
	rows, err := s.db.Query(`SELECT hash, url FROM frontier_urls WHERE done = 0`)
	if err != nil {
		return nil, fmt.Errorf("frontier: querying pending urls: %w", err)
	}
	defer rows.Close()

	var out []PendingEntry
	for rows.Next() {
		var hash int64
		var url string
		if err := rows.Scan(&hash, &url); err != nil {
			return nil, fmt.Errorf("frontier: scanning pending row: %w", err)
		}
		out = append(out, PendingEntry{Hash: uint64(hash), URL: url})
	}
	return out, rows.Err()
}

// Close releases the store's underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
