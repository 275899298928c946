package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"vkrishnan/ledger-match/internal/models"
)

// SQLiteLearnedStore persists learned narration-to-ledger mappings in a
// local SQLite database. Keys are exact narration text; each user scope
// gets its own database file.
type SQLiteLearnedStore struct {
	db *sql.DB
}

const learnedSchema = `
CREATE TABLE IF NOT EXISTS learned_mappings (
	narration_text TEXT PRIMARY KEY,
	mapped_ledger  TEXT NOT NULL,
	score          REAL NOT NULL DEFAULT 0,
	usage_count    INTEGER NOT NULL DEFAULT 1,
	last_used      TIMESTAMP NOT NULL
);
`

// OpenLearnedStore opens (and if needed creates) the learned-mapping
// database at the given path.
func OpenLearnedStore(path string) (*SQLiteLearnedStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("could not create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open learned-mapping database: %w", err)
	}
	if _, err := db.Exec(learnedSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not initialize learned-mapping schema: %w", err)
	}

	return &SQLiteLearnedStore{db: db}, nil
}

// Get returns the learned mapping for a narration key, if present.
func (s *SQLiteLearnedStore) Get(key string) (models.LearnedMapping, bool, error) {
	var entry models.LearnedMapping
	var lastUsed string

	row := s.db.QueryRow(
		`SELECT mapped_ledger, score, usage_count, last_used FROM learned_mappings WHERE narration_text = ?`,
		key,
	)
	err := row.Scan(&entry.Ledger, &entry.Score, &entry.UsageCount, &lastUsed)
	if err == sql.ErrNoRows {
		return models.LearnedMapping{}, false, nil
	}
	if err != nil {
		return models.LearnedMapping{}, false, fmt.Errorf("querying learned mapping: %w", err)
	}

	entry.LastUsed = parseTimestamp(lastUsed)
	return entry, true, nil
}

// Put inserts or replaces the learned mapping for a narration key.
func (s *SQLiteLearnedStore) Put(key string, entry models.LearnedMapping) error {
	_, err := s.db.Exec(
		`INSERT INTO learned_mappings (narration_text, mapped_ledger, score, usage_count, last_used)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(narration_text) DO UPDATE SET
			mapped_ledger = excluded.mapped_ledger,
			score         = excluded.score,
			usage_count   = excluded.usage_count,
			last_used     = excluded.last_used`,
		key, entry.Ledger, entry.Score, entry.UsageCount, entry.LastUsed.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing learned mapping: %w", err)
	}
	return nil
}

// All returns every learned mapping keyed by narration text.
func (s *SQLiteLearnedStore) All() (map[string]models.LearnedMapping, error) {
	rows, err := s.db.Query(
		`SELECT narration_text, mapped_ledger, score, usage_count, last_used FROM learned_mappings`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing learned mappings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]models.LearnedMapping)
	for rows.Next() {
		var key, lastUsed string
		var entry models.LearnedMapping
		if err := rows.Scan(&key, &entry.Ledger, &entry.Score, &entry.UsageCount, &lastUsed); err != nil {
			return nil, fmt.Errorf("scanning learned mapping: %w", err)
		}
		entry.LastUsed = parseTimestamp(lastUsed)
		out[key] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing learned mappings: %w", err)
	}
	return out, nil
}

// Close closes the underlying database.
func (s *SQLiteLearnedStore) Close() error {
	return s.db.Close()
}

func parseTimestamp(value string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05Z07:00"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
