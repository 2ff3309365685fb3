// Package store provides SQLite persistence for trendwatch: user
// preferences and the recently viewed trend history.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store handles SQLite persistence. Concrete type, no interface.
// All methods are safe for concurrent use.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// View is one opened trend detail.
type View struct {
	TrendID       int
	Keyword       string
	Category      string
	ApproxTraffic string
	Query         string // encoded list filter at the time of viewing
	ViewedAt      time.Time
	Count         int
}

// Open creates a Store at dbPath, creating tables if needed.
// File databases run in WAL mode.
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Shared cache so every pooled connection sees the same database.
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
	CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS views (
		trend_id INTEGER PRIMARY KEY,
		keyword TEXT NOT NULL,
		category TEXT,
		approx_traffic TEXT,
		query TEXT,
		viewed_at DATETIME NOT NULL,
		view_count INTEGER NOT NULL DEFAULT 1
	);

	CREATE INDEX IF NOT EXISTS idx_views_viewed ON views(viewed_at DESC);
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

// Preference returns the stored value for key. ok is false when the key
// was never set or has been cleared.
func (s *Store) Preference(key string) (value string, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	err = s.db.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read preference %q: %w", key, err)
	}
	return value, true, nil
}

// SetPreference stores value under key, replacing any previous value.
func (s *Store) SetPreference(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now())
	if err != nil {
		return fmt.Errorf("write preference %q: %w", key, err)
	}
	return nil
}

// ClearPreference removes key.
func (s *Store) ClearPreference(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM preferences WHERE key = ?", key); err != nil {
		return fmt.Errorf("clear preference %q: %w", key, err)
	}
	return nil
}

// RecordView upserts a history entry, bumping its count and timestamp.
func (s *Store) RecordView(v View) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v.ViewedAt.IsZero() {
		v.ViewedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO views (trend_id, keyword, category, approx_traffic, query, viewed_at, view_count)
		VALUES (?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(trend_id) DO UPDATE SET
			keyword = excluded.keyword,
			category = excluded.category,
			approx_traffic = excluded.approx_traffic,
			query = excluded.query,
			viewed_at = excluded.viewed_at,
			view_count = views.view_count + 1
	`, v.TrendID, v.Keyword, v.Category, v.ApproxTraffic, v.Query, v.ViewedAt)
	if err != nil {
		return fmt.Errorf("record view %d: %w", v.TrendID, err)
	}
	return nil
}

// RecentViews returns up to limit entries, most recent first.
func (s *Store) RecentViews(limit int) ([]View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT trend_id, keyword, category, approx_traffic, query, viewed_at, view_count
		FROM views
		ORDER BY viewed_at DESC, trend_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []View
	for rows.Next() {
		var v View
		var category, traffic, query sql.NullString
		if err := rows.Scan(&v.TrendID, &v.Keyword, &category, &traffic, &query, &v.ViewedAt, &v.Count); err != nil {
			return nil, err
		}
		v.Category = category.String
		v.ApproxTraffic = traffic.String
		v.Query = query.String
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}

// PruneViews keeps only the keep most recent entries and returns how many
// were removed.
func (s *Store) PruneViews(keep int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		DELETE FROM views WHERE trend_id NOT IN (
			SELECT trend_id FROM views ORDER BY viewed_at DESC, trend_id DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune views: %w", err)
	}
	return res.RowsAffected()
}
