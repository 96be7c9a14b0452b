// Package storage provides SQLite-based persistence for recorded sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/coin-catcher/internal/replay"
)

var (
	// ErrNotFound is returned when no recording matches an ID.
	ErrNotFound = errors.New("storage: recording not found")
	// ErrAmbiguous is returned when an ID prefix matches several recordings.
	ErrAmbiguous = errors.New("storage: recording ID prefix is ambiguous")
)

// timeLayout is fixed-width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the SQLite database connection for the replay journal.
type Store struct {
	db *sql.DB
}

// RoundSummary is one journal row, without its events.
type RoundSummary struct {
	ID         string
	GameID     string
	Player     string
	Seed       int64
	TickRate   int
	Ticks      uint64
	EventCount int
	CreatedAt  time.Time
}

// Duration returns the wall-clock length of the recorded session.
func (r RoundSummary) Duration() time.Duration {
	if r.TickRate <= 0 {
		return 0
	}
	return time.Duration(r.Ticks) * time.Second / time.Duration(r.TickRate) //#nosec G115 -- tick counts fit int64
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			screen_w INTEGER NOT NULL,
			screen_h INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			final_hash INTEGER NOT NULL,
			settings BLOB,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_created ON rounds(created_at DESC);

		CREATE TABLE IF NOT EXISTS round_events (
			round_id TEXT NOT NULL REFERENCES rounds(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			kind INTEGER NOT NULL,
			a INTEGER NOT NULL DEFAULT 0,
			b INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (round_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRecording stores a recording and its events in one transaction.
func (s *Store) SaveRecording(rec replay.Recording) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = tx.Exec(
		`INSERT INTO rounds
		 (id, game_id, player, seed, screen_w, screen_h, tick_rate, ticks, final_hash, settings, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.GameID, rec.Player, rec.Seed,
		rec.ScreenW, rec.ScreenH, rec.TickRate,
		int64(rec.Ticks),     //#nosec G115 -- stored bit-for-bit
		int64(rec.FinalHash), //#nosec G115 -- stored bit-for-bit
		rec.Settings,
		createdAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save recording: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO round_events (round_id, seq, tick, kind, a, b) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare event insert: %w", err)
	}
	defer stmt.Close()

	for i, ev := range rec.Events {
		if _, err := stmt.Exec(rec.ID, i, int64(ev.Tick), int(ev.Kind), ev.A, ev.B); err != nil { //#nosec G115 -- tick counts fit int64
			return fmt.Errorf("storage: cannot save event %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit recording: %w", err)
	}
	return nil
}

// LoadRecording returns the recording with the given ID or unique ID prefix.
func (s *Store) LoadRecording(idOrPrefix string) (*replay.Recording, error) {
	id, err := s.resolveID(idOrPrefix)
	if err != nil {
		return nil, err
	}

	var rec replay.Recording
	var ticks, finalHash int64
	var createdAt any

	err = s.db.QueryRow(
		`SELECT id, game_id, player, seed, screen_w, screen_h, tick_rate, ticks, final_hash, settings, created_at
		 FROM rounds WHERE id = ?`,
		id,
	).Scan(
		&rec.ID, &rec.GameID, &rec.Player, &rec.Seed,
		&rec.ScreenW, &rec.ScreenH, &rec.TickRate,
		&ticks, &finalHash, &rec.Settings, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recording: %w", err)
	}
	rec.Ticks = uint64(ticks)         //#nosec G115 -- stored bit-for-bit
	rec.FinalHash = uint64(finalHash) //#nosec G115 -- stored bit-for-bit
	rec.CreatedAt = parseTime(createdAt)

	rows, err := s.db.Query(
		"SELECT tick, kind, a, b FROM round_events WHERE round_id = ? ORDER BY seq",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ev replay.Event
		var tick int64
		var kind int
		if err := rows.Scan(&tick, &kind, &ev.A, &ev.B); err != nil {
			return nil, fmt.Errorf("storage: cannot scan event: %w", err)
		}
		ev.Tick = uint64(tick) //#nosec G115 -- stored bit-for-bit
		ev.Kind = replay.EventKind(kind)
		rec.Events = append(rec.Events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &rec, nil
}

// resolveID expands a unique ID prefix to a full recording ID.
func (s *Store) resolveID(idOrPrefix string) (string, error) {
	if idOrPrefix == "" {
		return "", ErrNotFound
	}

	rows, err := s.db.Query(
		"SELECT id FROM rounds WHERE id = ? OR substr(id, 1, ?) = ? LIMIT 2",
		idOrPrefix, len(idOrPrefix), idOrPrefix,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot query recording IDs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if id == idOrPrefix {
			return id, nil
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", ErrNotFound
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %q", ErrAmbiguous, idOrPrefix)
	}
}

// RecentRounds retrieves the most recent recordings, newest first.
func (s *Store) RecentRounds(limit int) ([]RoundSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.game_id, r.player, r.seed, r.tick_rate, r.ticks,
		        (SELECT COUNT(*) FROM round_events e WHERE e.round_id = r.id),
		        r.created_at
		 FROM rounds r
		 ORDER BY r.created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recordings: %w", err)
	}
	defer rows.Close()

	var results []RoundSummary
	for rows.Next() {
		var r RoundSummary
		var ticks int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Player, &r.Seed, &r.TickRate, &ticks, &r.EventCount, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(ticks) //#nosec G115 -- stored bit-for-bit
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// DeleteRound removes a recording and its events.
func (s *Store) DeleteRound(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM round_events WHERE round_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete events: %w", err)
	}
	res, err := tx.Exec("DELETE FROM rounds WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete recording: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// parseTime handles the representations the driver may return.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
