// Copyright © 2025 Scrollkit contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/store.go
// Summary: SQLite-backed persistence of scroll position across sessions.
// Stores the engine's scroll ratio per document key; the ratio survives
// remeasurement, so a restored document lands at the same relative place
// even if its size changed.

package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS positions (
	key        TEXT PRIMARY KEY,
	ratio      REAL NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// Store persists scroll ratios keyed by document identity (typically an
// absolute file path).
type Store struct {
	db *sql.DB
}

// Open creates or opens the position database at dbPath, creating parent
// directories as needed.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create positions table: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveRatio upserts the scroll ratio for key. Ratios are clamped into [0,1]
// before storage, matching what the engine would do on restore anyway.
func (s *Store) SaveRatio(key string, ratio float64) error {
	if key == "" {
		return fmt.Errorf("empty position key")
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO positions (key, ratio, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET ratio = excluded.ratio, updated_at = excluded.updated_at`,
		key, ratio, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save position %q: %w", key, err)
	}
	return nil
}

// LoadRatio returns the stored ratio for key. The second return is false
// when no position has been saved for it.
func (s *Store) LoadRatio(key string) (float64, bool, error) {
	var ratio float64
	err := s.db.QueryRow("SELECT ratio FROM positions WHERE key = ?", key).Scan(&ratio)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("load position %q: %w", key, err)
	}
	return ratio, true, nil
}

// Forget removes the stored position for key, if any.
func (s *Store) Forget(key string) error {
	if _, err := s.db.Exec("DELETE FROM positions WHERE key = ?", key); err != nil {
		return fmt.Errorf("forget position %q: %w", key, err)
	}
	return nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}
