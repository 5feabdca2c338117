package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoBatch is returned by Load when a key has never been written.
var ErrNoBatch = errors.New("cache: no batch stored under key")

// Store is the persistent batch store. Batches survive restarts and are
// readable without network access. Writes go through a single connection to
// keep sqlite happy under concurrent commands.
type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS batches (
			key      TEXT PRIMARY KEY,
			payload  TEXT NOT NULL,
			saved_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Store writes a batch under key, overwriting any previous value. The
// saved-at timestamp always reflects the latest write.
func (s *Store) Store(key string, b Batch) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encoding batch %q: %w", key, err)
	}
	_, err = s.writeDB.Exec(`
		INSERT INTO batches (key, payload, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			saved_at = excluded.saved_at
	`, key, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("storing batch %q: %w", key, err)
	}
	return nil
}

// Load returns the batch stored under key and when it was saved, or
// ErrNoBatch if the key has never been written.
func (s *Store) Load(key string) (Batch, time.Time, error) {
	var (
		payload string
		savedAt string
	)
	err := s.readDB.QueryRow("SELECT payload, saved_at FROM batches WHERE key = ?", key).Scan(&payload, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Batch{}, time.Time{}, ErrNoBatch
	}
	if err != nil {
		return Batch{}, time.Time{}, fmt.Errorf("loading batch %q: %w", key, err)
	}

	var b Batch
	if err := json.Unmarshal([]byte(payload), &b); err != nil {
		return Batch{}, time.Time{}, fmt.Errorf("decoding batch %q: %w", key, err)
	}
	t, err := time.Parse(time.RFC3339, savedAt)
	if err != nil {
		return Batch{}, time.Time{}, fmt.Errorf("parsing saved_at for %q: %w", key, err)
	}
	return b, t, nil
}

// Age returns how long ago the batch under key was saved.
func (s *Store) Age(key string) (time.Duration, error) {
	_, savedAt, err := s.Load(key)
	if err != nil {
		return 0, err
	}
	return time.Since(savedAt), nil
}

// Stale reports whether the batch under key is older than window. A missing
// or unreadable batch counts as stale.
func (s *Store) Stale(key string, window time.Duration) bool {
	age, err := s.Age(key)
	if err != nil {
		return true
	}
	return age > window
}

// Prune deletes batches older than retention and returns how many went.
func (s *Store) Prune(retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention).Format(time.RFC3339)
	res, err := s.writeDB.Exec("DELETE FROM batches WHERE saved_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning batches: %w", err)
	}
	return res.RowsAffected()
}

// Stats returns the number of stored batches, the total article count across
// them, and the on-disk size of the database file.
func (s *Store) Stats(dbPath string) (batches, articles int, size int64, err error) {
	rows, err := s.readDB.Query("SELECT payload FROM batches")
	if err != nil {
		return 0, 0, 0, fmt.Errorf("reading batches: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return 0, 0, 0, fmt.Errorf("scanning batch: %w", err)
		}
		var b Batch
		if err := json.Unmarshal([]byte(payload), &b); err != nil {
			continue
		}
		batches++
		articles += len(b.News) + len(b.Blogs)
	}
	if err := rows.Err(); err != nil {
		return 0, 0, 0, err
	}

	info, err := os.Stat(dbPath)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("stat db file: %w", err)
	}
	return batches, articles, info.Size(), nil
}

// LastRefresh returns when the last forced refresh ran, or the zero time if
// no refresh has been recorded.
func (s *Store) LastRefresh() time.Time {
	var value string
	if err := s.readDB.QueryRow("SELECT value FROM meta WHERE key = 'last_refresh'").Scan(&value); err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (s *Store) SetLastRefresh() error {
	return s.setMeta("last_refresh", time.Now().UTC().Format(time.RFC3339))
}

func (s *Store) setMeta(key, value string) error {
	_, err := s.writeDB.Exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
