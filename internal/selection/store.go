// Package selection remembers which local week each user is looking at.
package selection

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// Store persists selections in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. ":memory:" keeps it in memory.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: an in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS week_selection (
		user_id INTEGER PRIMARY KEY,
		local_week INTEGER NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create week_selection table: %w", err)
	}
	return nil
}

// Get returns the selected local week of user. ok is false when none is set.
func (s *Store) Get(ctx context.Context, user int64) (week int, ok bool, err error) {
	err = s.db.QueryRowContext(ctx,
		"SELECT local_week FROM week_selection WHERE user_id = ?", user,
	).Scan(&week)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read selection: %w", err)
	}
	return week, true, nil
}

// Set records week as the selection of user.
func (s *Store) Set(ctx context.Context, user int64, week int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO week_selection (user_id, local_week) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET local_week = excluded.local_week, updated_at = CURRENT_TIMESTAMP`,
		user, week)
	if err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}
	return nil
}

// Clear forgets the selection of user.
func (s *Store) Clear(ctx context.Context, user int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM week_selection WHERE user_id = ?", user); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Memory keeps selections in process memory.
type Memory struct {
	mu    sync.RWMutex
	weeks map[int64]int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{weeks: make(map[int64]int)}
}

// Get returns the selected local week of user.
func (m *Memory) Get(_ context.Context, user int64) (int, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.weeks[user]
	return w, ok, nil
}

// Set records week as the selection of user.
func (m *Memory) Set(_ context.Context, user int64, week int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.weeks[user] = week
	return nil
}

// Clear forgets the selection of user.
func (m *Memory) Clear(_ context.Context, user int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.weeks, user)
	return nil
}
