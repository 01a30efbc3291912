// Package store handles SQLite persistence of saved patterns and the
// action history.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fchimpan/gh-kusa-painter/internal/pattern"

	_ "modernc.org/sqlite" // SQLite driver.
)

// HistoryLimit is the number of history entries kept.
const HistoryLimit = 100

// ErrNotFound is returned when a named pattern does not exist.
var ErrNotFound = errors.New("pattern not found")

// Store wraps SQLite access for saved patterns.
type Store struct {
	db *sql.DB
}

// SavedPattern is a named pattern with the stats computed when it was saved.
type SavedPattern struct {
	Name    string
	Points  []pattern.Point
	SavedAt time.Time
	Stats   pattern.Stats
}

// HistoryEntry records one action, such as a commit run or a saved pattern.
type HistoryEntry struct {
	ID     int64
	Action string
	At     time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS patterns (
			name TEXT PRIMARY KEY,
			points TEXT NOT NULL,
			saved_at TEXT NOT NULL,
			total_commits INTEGER NOT NULL,
			total_days INTEGER NOT NULL,
			week_start INTEGER NOT NULL,
			week_end INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			action TEXT NOT NULL,
			at TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SavePattern stores points under name, replacing any previous pattern
// with the same name.
func (s *Store) SavePattern(ctx context.Context, name string, points []pattern.Point, now time.Time) error {
	if name == "" {
		return fmt.Errorf("pattern name must not be empty")
	}
	if points == nil {
		points = []pattern.Point{}
	}
	data, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("failed to encode pattern: %w", err)
	}
	st := pattern.Summarize(points)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO patterns (name, points, saved_at, total_commits, total_days, week_start, week_end)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			points = excluded.points,
			saved_at = excluded.saved_at,
			total_commits = excluded.total_commits,
			total_days = excluded.total_days,
			week_start = excluded.week_start,
			week_end = excluded.week_end`,
		name,
		string(data),
		now.UTC().Format(time.RFC3339Nano),
		st.TotalCommits,
		st.TotalDays,
		st.WeekRange.Start,
		st.WeekRange.End,
	)
	return err
}

// LoadPattern returns the named pattern or ErrNotFound.
func (s *Store) LoadPattern(ctx context.Context, name string) (SavedPattern, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT name, points, saved_at, total_commits, total_days, week_start, week_end
		 FROM patterns WHERE name = ?`, name)
	p, err := scanPattern(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedPattern{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return p, err
}

// ListPatterns returns every saved pattern ordered by name.
func (s *Store) ListPatterns(ctx context.Context) ([]SavedPattern, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, points, saved_at, total_commits, total_days, week_start, week_end
		 FROM patterns ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []SavedPattern
	for rows.Next() {
		p, err := scanPattern(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ClearPatterns deletes every saved pattern and reports how many were removed.
func (s *Store) ClearPatterns(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM patterns`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// AddHistory appends an action and trims the history to HistoryLimit entries.
func (s *Store) AddHistory(ctx context.Context, action string, now time.Time) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `INSERT INTO history (action, at) VALUES (?, ?)`,
		action, now.UTC().Format(time.RFC3339Nano)); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM history WHERE id NOT IN (SELECT id FROM history ORDER BY id DESC LIMIT ?)`,
		HistoryLimit); err != nil {
		return err
	}
	return tx.Commit()
}

// History returns up to limit entries, oldest first. limit <= 0 returns all.
func (s *Store) History(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = HistoryLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, action, at FROM (
			SELECT id, action, at FROM history ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var at string
		if err := rows.Scan(&e.ID, &e.Action, &at); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, err
		}
		e.At = parsed
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPattern(sc scanner) (SavedPattern, error) {
	var (
		p       SavedPattern
		data    string
		savedAt string
	)
	if err := sc.Scan(&p.Name, &data, &savedAt, &p.Stats.TotalCommits, &p.Stats.TotalDays,
		&p.Stats.WeekRange.Start, &p.Stats.WeekRange.End); err != nil {
		return SavedPattern{}, err
	}
	if err := json.Unmarshal([]byte(data), &p.Points); err != nil {
		return SavedPattern{}, fmt.Errorf("failed to decode pattern %q: %w", p.Name, err)
	}
	parsed, err := time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return SavedPattern{}, err
	}
	p.SavedAt = parsed
	p.Stats.Intensity = pattern.Summarize(p.Points).Intensity
	return p, nil
}
