// Package store persists computed digests in a SQLite database so batch
// runs skip files whose content has not changed.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"kanon/internal/logging"
)

// Store provides persistence for digests in .kanon/digests.db
type Store struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// Stats summarizes cache contents.
type Stats struct {
	Entries int    `json:"entries"`
	DBPath  string `json:"dbPath"`
}

// Open opens or creates the digest database under dir.
func Open(dir string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, "digests.db")
	dbExists := fileExists(dbPath)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open digest database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	s := &Store{conn: conn, logger: logger, dbPath: dbPath}

	if !dbExists {
		logger.Info("Creating digest database", map[string]any{"path": dbPath})
	}
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
CREATE TABLE IF NOT EXISTS digests (
	id            TEXT PRIMARY KEY,
	path          TEXT NOT NULL,
	mtime_unix_ns INTEGER NOT NULL,
	algo          TEXT NOT NULL,
	digest        TEXT NOT NULL,
	created_at    TEXT NOT NULL,
	UNIQUE(path, algo)
);
CREATE INDEX IF NOT EXISTS idx_digests_path ON digests(path);
`
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Get returns the cached digest for path under algo, if the stored entry
// matches the file's current mtime. A stale entry is a miss.
func (s *Store) Get(path string, mtimeUnixNs int64, algo string) (string, bool, error) {
	var (
		stored int64
		d      string
	)
	err := s.conn.QueryRow(
		"SELECT mtime_unix_ns, digest FROM digests WHERE path = ? AND algo = ?",
		path, algo,
	).Scan(&stored, &d)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query digest: %w", err)
	}
	if stored != mtimeUnixNs {
		return "", false, nil
	}
	return d, true, nil
}

// Put stores or replaces the digest for path under algo.
func (s *Store) Put(path string, mtimeUnixNs int64, algo, digest string) error {
	_, err := s.conn.Exec(`
INSERT INTO digests (id, path, mtime_unix_ns, algo, digest, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(path, algo) DO UPDATE SET
	mtime_unix_ns = excluded.mtime_unix_ns,
	digest        = excluded.digest,
	created_at    = excluded.created_at`,
		uuid.New().String(), path, mtimeUnixNs, algo, digest,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to store digest: %w", err)
	}
	return nil
}

// Invalidate removes all entries for path.
func (s *Store) Invalidate(path string) error {
	if _, err := s.conn.Exec("DELETE FROM digests WHERE path = ?", path); err != nil {
		return fmt.Errorf("failed to invalidate %s: %w", path, err)
	}
	return nil
}

// Clear removes every cached entry.
func (s *Store) Clear() error {
	if _, err := s.conn.Exec("DELETE FROM digests"); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// Stats reports cache size and location.
func (s *Store) Stats() (Stats, error) {
	var count int
	if err := s.conn.QueryRow("SELECT COUNT(*) FROM digests").Scan(&count); err != nil {
		return Stats{}, fmt.Errorf("failed to count entries: %w", err)
	}
	return Stats{Entries: count, DBPath: s.dbPath}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.conn.Close()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
