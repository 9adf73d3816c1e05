// Package rehearsal records how long each slide stays on screen during a run
// and summarises the timings per slide.
package rehearsal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNoSession is returned for an unknown or already finished session.
var ErrNoSession = errors.New("rehearsal: no such session")

// Store persists rehearsal sessions in SQLite.
type Store struct {
	db *sql.DB
}

// View is one stretch of time a slide spent on screen.
type View struct {
	SlideID   string
	Index     int
	Direction string
	EnteredAt time.Time
	Duration  time.Duration
}

// SlideStat aggregates the views of one slide.
type SlideStat struct {
	SlideID string        `json:"slideId"`
	Index   int           `json:"index"`
	Views   int           `json:"views"`
	Average time.Duration `json:"averageNs"`
	Longest time.Duration `json:"longestNs"`
}

// Session summarises one run.
type Session struct {
	ID         int64      `json:"id"`
	DeckID     string     `json:"deckId"`
	SectionID  string     `json:"sectionId"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	Views      int        `json:"views"`
}

// Open opens (creating if needed) the database at path. ":memory:" is
// accepted for tests.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=1&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps :memory: databases shared across calls.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			deck_id TEXT NOT NULL,
			section_id TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			finished_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS views (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			slide_id TEXT NOT NULL,
			slide_index INTEGER NOT NULL,
			direction TEXT NOT NULL DEFAULT '',
			entered_at DATETIME NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_views_session ON views(session_id);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_deck ON sessions(deck_id, section_id);`,
	}
	for _, q := range stmts {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Start opens a new session and returns its id.
func (s *Store) Start(ctx context.Context, deckID, sectionID string, at time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (deck_id, section_id, started_at) VALUES (?, ?, ?)`,
		deckID, sectionID, at.UTC())
	if err != nil {
		return 0, fmt.Errorf("start session: %w", err)
	}
	return res.LastInsertId()
}

// Record appends a view to an open session.
func (s *Store) Record(ctx context.Context, session int64, v View) error {
	if err := s.open(ctx, session); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO views (session_id, slide_id, slide_index, direction, entered_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		session, v.SlideID, v.Index, v.Direction, v.EnteredAt.UTC(), v.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("record view: %w", err)
	}
	return nil
}

// Finish closes a session.
func (s *Store) Finish(ctx context.Context, session int64, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET finished_at = ? WHERE id = ? AND finished_at IS NULL`,
		at.UTC(), session)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoSession
	}
	return nil
}

func (s *Store) open(ctx context.Context, session int64) error {
	var finished sql.NullTime
	err := s.db.QueryRowContext(ctx, `SELECT finished_at FROM sessions WHERE id = ?`, session).Scan(&finished)
	if errors.Is(err, sql.ErrNoRows) || finished.Valid {
		return ErrNoSession
	}
	return err
}

// Summary aggregates every recorded view of a section, ordered by slide
// position.
func (s *Store) Summary(ctx context.Context, deckID, sectionID string) ([]SlideStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.slide_id, MIN(v.slide_index), COUNT(*), AVG(v.duration_ms), MAX(v.duration_ms)
		FROM views v JOIN sessions s ON s.id = v.session_id
		WHERE s.deck_id = ? AND s.section_id = ?
		GROUP BY v.slide_id
		ORDER BY MIN(v.slide_index), v.slide_id`, deckID, sectionID)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	defer rows.Close()

	var out []SlideStat
	for rows.Next() {
		var st SlideStat
		var avg float64
		var longest int64
		if err := rows.Scan(&st.SlideID, &st.Index, &st.Views, &avg, &longest); err != nil {
			return nil, err
		}
		st.Average = time.Duration(avg * float64(time.Millisecond))
		st.Longest = time.Duration(longest) * time.Millisecond
		out = append(out, st)
	}
	return out, rows.Err()
}

// Sessions lists the most recent sessions, newest first.
func (s *Store) Sessions(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.deck_id, s.section_id, s.started_at, s.finished_at, COUNT(v.id)
		FROM sessions s LEFT JOIN views v ON v.session_id = s.id
		GROUP BY s.id
		ORDER BY s.started_at DESC, s.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var se Session
		var finished sql.NullTime
		if err := rows.Scan(&se.ID, &se.DeckID, &se.SectionID, &se.StartedAt, &finished, &se.Views); err != nil {
			return nil, err
		}
		if finished.Valid {
			t := finished.Time
			se.FinishedAt = &t
		}
		out = append(out, se)
	}
	return out, rows.Err()
}

// Clear deletes every session of deckID and returns how many were removed.
func (s *Store) Clear(ctx context.Context, deckID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE deck_id = ?`, deckID)
	if err != nil {
		return 0, fmt.Errorf("clear sessions: %w", err)
	}
	return res.RowsAffected()
}
