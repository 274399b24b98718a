// Package store provides SQLite persistence for HomeScout run state: the
// favorites set, dismissed and pending identifiers, and the learned profile.
//
// The engine treats all of this as snapshots — read once at the start of a
// run, written once at the end. Corrupt or missing rows degrade to empty
// sets and the default profile; recovery is never the engine's problem.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/abelbrown/homescout/internal/listing"
	"github.com/abelbrown/homescout/internal/logging"
	"github.com/abelbrown/homescout/internal/prefs"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: all methods are safe for concurrent use via internal mutex,
// though the engine itself runs single-writer per invocation.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates a Store at the given database path, creating tables as
// needed. Uses WAL mode for file-based databases.
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Shared cache so every pooled connection sees the same database
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS favorites (
		id TEXT PRIMARY KEY,
		listing TEXT NOT NULL,
		favorited_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS dismissed (
		id TEXT PRIMARY KEY,
		dismissed_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS pending (
		id TEXT PRIMARY KEY,
		listing TEXT NOT NULL,
		position INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS profile (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		data TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_favorites_at ON favorites(favorited_at);
	CREATE INDEX IF NOT EXISTS idx_pending_position ON pending(position);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Favorites returns favorited listings oldest-first. That ordering is what
// makes preference derivation deterministic across runs. Rows whose snapshot
// fails to decode are skipped.
func (s *Store) Favorites() ([]listing.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, listing FROM favorites ORDER BY favorited_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	var out []listing.Listing
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		var l listing.Listing
		if err := json.Unmarshal([]byte(data), &l); err != nil {
			logging.Warn("Skipping corrupt favorite snapshot", "id", id)
			continue
		}
		if l.ID == "" {
			l.ID = id
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// AddFavorite stores a listing snapshot in the favorites set.
// Re-favoriting updates the snapshot but keeps the original timestamp.
func (s *Store) AddFavorite(l listing.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode listing: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO favorites (id, listing, favorited_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET listing = excluded.listing
	`, l.ID, string(data), time.Now().UTC())
	return err
}

// DismissedIDs returns the set of dismissed listing identifiers.
func (s *Store) DismissedIDs() (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id FROM dismissed`)
	if err != nil {
		return nil, fmt.Errorf("query dismissed: %w", err)
	}
	defer rows.Close()

	out := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}

// Dismiss adds identifiers to the dismissed set. Already-dismissed IDs are
// ignored.
func (s *Store) Dismiss(ids ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dismissLocked(ids)
}

func (s *Store) dismissLocked(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	stmt, err := s.db.Prepare(`INSERT OR IGNORE INTO dismissed (id, dismissed_at) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, id := range ids {
		if _, err := stmt.Exec(id, now); err != nil {
			return err
		}
	}
	return nil
}

// Pending returns the pending listings in shortlist order.
func (s *Store) Pending() ([]listing.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, listing FROM pending ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query pending: %w", err)
	}
	defer rows.Close()

	var out []listing.Listing
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		var l listing.Listing
		if err := json.Unmarshal([]byte(data), &l); err != nil {
			logging.Warn("Skipping corrupt pending snapshot", "id", id)
			continue
		}
		if l.ID == "" {
			l.ID = id
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// PendingIDs returns just the pending identifiers, in shortlist order.
func (s *Store) PendingIDs() ([]string, error) {
	pending, err := s.Pending()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(pending))
	for _, l := range pending {
		ids = append(ids, l.ID)
	}
	return ids, nil
}

// SetPending replaces the pending set with the given shortlist.
func (s *Store) SetPending(shortlist []listing.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM pending`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO pending (id, listing, position, created_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i, l := range shortlist {
		data, err := json.Marshal(l)
		if err != nil {
			return fmt.Errorf("encode listing %s: %w", l.ID, err)
		}
		if _, err := stmt.Exec(l.ID, string(data), i, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ExpirePending moves every pending identifier into the dismissed set and
// clears the pending table. This is the between-runs state machine: shown
// but never favorited means not interested.
func (s *Store) ExpirePending() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT OR IGNORE INTO dismissed (id, dismissed_at)
		SELECT id, ? FROM pending
	`, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	moved, _ := res.RowsAffected()

	if _, err := tx.Exec(`DELETE FROM pending`); err != nil {
		return 0, err
	}
	return int(moved), tx.Commit()
}

// RemovePending drops a single identifier from the pending set without
// dismissing it. Used when a pending listing is favorited during review.
func (s *Store) RemovePending(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`DELETE FROM pending WHERE id = ?`, id)
	return err
}

// Profile returns the persisted preference profile. Absent or corrupt data
// yields the default neutral profile, never an error the engine must handle.
func (s *Store) Profile() *prefs.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data string
	err := s.db.QueryRow(`SELECT data FROM profile WHERE id = 1`).Scan(&data)
	if err != nil {
		return prefs.Default()
	}

	var p prefs.Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		logging.Warn("Corrupt persisted profile, using defaults")
		return prefs.Default()
	}
	if p.NeighborhoodWeights == nil {
		p.NeighborhoodWeights = map[string]float64{}
	}
	if p.PreferredNeighborhoods == nil {
		p.PreferredNeighborhoods = []string{}
	}
	return &p
}

// SaveProfile persists the preference profile.
func (s *Store) SaveProfile(p *prefs.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO profile (id, data, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, string(data), time.Now().UTC())
	return err
}

// Counts returns favorites/dismissed/pending totals for the stats command.
func (s *Store) Counts() (favorites, dismissed, pending int, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, q := range []struct {
		table string
		dst   *int
	}{
		{"favorites", &favorites},
		{"dismissed", &dismissed},
		{"pending", &pending},
	} {
		if err = s.db.QueryRow(`SELECT COUNT(*) FROM ` + q.table).Scan(q.dst); err != nil {
			return 0, 0, 0, fmt.Errorf("count %s: %w", q.table, err)
		}
	}
	return favorites, dismissed, pending, nil
}
