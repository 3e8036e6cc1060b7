// Package storage keeps the append-only log of finished battles in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
)

// timeLayout is how created_at is stored.
const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite connection.
type Store struct {
	db *sql.DB
}

// Record is one finished battle.
type Record struct {
	ID        int64
	Mode      string
	Level     string
	Outcome   string // WIN or LOSE
	Score     int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			level TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL CHECK (outcome IN ('WIN', 'LOSE')),
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_mode ON results(mode);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(mode, score DESC);
		CREATE INDEX IF NOT EXISTS idx_results_recent ON results(created_at DESC);
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

// SaveRecord appends a finished battle and returns its row ID. A zero
// CreatedAt means now.
func (s *Store) SaveRecord(ctx context.Context, r Record) (int64, error) {
	at := r.CreatedAt
	if at.IsZero() {
		at = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO results (mode, level, outcome, score, created_at) VALUES (?, ?, ?, ?, ?)",
		r.Mode, r.Level, r.Outcome, r.Score, at.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// SaveResult implements tanks.ResultSink.
func (s *Store) SaveResult(ctx context.Context, r tanks.Result) error {
	_, err := s.SaveRecord(ctx, Record{
		Mode:      r.Mode,
		Level:     r.Level,
		Outcome:   string(r.Outcome),
		Score:     r.Score,
		CreatedAt: r.At,
	})
	return err
}

var _ tanks.ResultSink = (*Store)(nil)

// TopScores returns the best n results of a mode, highest score first.
func (s *Store) TopScores(mode string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.query(
		`SELECT id, mode, level, outcome, score, created_at
		 FROM results
		 WHERE mode = ?
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		mode, limit,
	)
}

// RecentResults returns the latest n results across all modes.
func (s *Store) RecentResults(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.query(
		`SELECT id, mode, level, outcome, score, created_at
		 FROM results
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) query(q string, args ...any) ([]Record, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Mode, &r.Level, &r.Outcome, &r.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// parseTime handles the driver returning either time.Time or text.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the best score of a mode, 0 when none is recorded.
func (s *Store) HighScore(mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM results WHERE mode = ?", mode).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearResults deletes every result of a mode.
func (s *Store) ClearResults(mode string) error {
	if _, err := s.db.Exec("DELETE FROM results WHERE mode = ?", mode); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// ModeStats aggregates the results of one mode.
type ModeStats struct {
	Mode       string
	Battles    int
	Wins       int
	Losses     int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// GetModeStats returns the aggregate for one mode.
func (s *Store) GetModeStats(mode string) (*ModeStats, error) {
	stats := &ModeStats{Mode: mode}
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'WIN' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0)
		 FROM results WHERE mode = ?`,
		mode,
	).Scan(&stats.Battles, &stats.Wins, &stats.HighScore, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	stats.Losses = stats.Battles - stats.Wins

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM results WHERE mode = ? ORDER BY created_at DESC LIMIT 1`,
		mode,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}
	return stats, nil
}

// GetAllModesStats returns the aggregate of every mode played so far.
func (s *Store) GetAllModesStats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*),
		        SUM(CASE WHEN outcome = 'WIN' THEN 1 ELSE 0 END),
		        MAX(score), AVG(score), MAX(created_at)
		 FROM results
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all modes stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModeStats)
	for rows.Next() {
		var m ModeStats
		var lastPlayed any
		if err := rows.Scan(&m.Mode, &m.Battles, &m.Wins, &m.HighScore, &m.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		m.Losses = m.Battles - m.Wins
		m.LastPlayed = parseTime(lastPlayed)
		stats[m.Mode] = &m
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
