// Package storage provides SQLite-based persistence for Subterra: the small
// integer preferences the session keeps between runs and a history of
// finished runs. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunEntry is a single finished run.
type RunEntry struct {
	ID        int64
	RunID     string
	Player    string
	Score     int
	Level     int
	Cave      int
	Outcome   string
	Played    int // Seconds spent flying
	CreatedAt time.Time
}

// Stats aggregates the run history of one player (or all players).
type Stats struct {
	Runs       int
	HighScore  int
	AvgScore   float64
	Completed  int
	LastPlayed time.Time
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
		CREATE TABLE IF NOT EXISTS prefs (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			cave INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			played_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player, score DESC);
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

// Int returns the preference stored under key, or def when it is absent.
func (s *Store) Int(key string, def int) (int, error) {
	var value int
	err := s.db.QueryRow("SELECT value FROM prefs WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("storage: cannot read preference %q: %w", key, err)
	}
	return value, nil
}

// SetInt stores a preference, replacing any previous value.
func (s *Store) SetInt(key string, value int) error {
	_, err := s.db.Exec(
		`INSERT INTO prefs (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write preference %q: %w", key, err)
	}
	return nil
}

// SaveRun records a finished run. An empty RunID is replaced by a new UUID.
// Returns the stored entry's run ID.
func (s *Store) SaveRun(run RunEntry) (string, error) {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, player, score, level, cave, outcome, played_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Player, run.Score, run.Level, run.Cave, run.Outcome, run.Played,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run.RunID, nil
}

// TopRuns retrieves the best runs ordered by score descending. An empty
// player selects every player.
func (s *Store) TopRuns(player string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, player, score, level, cave, outcome, played_secs, created_at
		 FROM runs
		 WHERE ? = '' OR player = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		player, player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.Player, &e.Score, &e.Level, &e.Cave,
			&e.Outcome, &e.Played, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest recorded run score, or 0 without runs.
// An empty player selects every player.
func (s *Store) HighScore(player string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE ? = '' OR player = ?",
		player, player,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Stats aggregates the run history. An empty player selects every player.
func (s *Store) Stats(player string) (*Stats, error) {
	stats := &Stats{}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(CASE WHEN outcome = 'completed' THEN 1 ELSE 0 END), 0),
		        MAX(created_at)
		 FROM runs WHERE ? = '' OR player = ?`,
		player, player,
	).Scan(&stats.Runs, &stats.HighScore, &stats.AvgScore, &stats.Completed, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// ClearRuns deletes the run history. Preferences are kept.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// ClearPrefs deletes every preference whose key starts with prefix.
// An empty prefix deletes every preference.
func (s *Store) ClearPrefs(prefix string) error {
	if _, err := s.db.Exec("DELETE FROM prefs WHERE substr(key, 1, ?) = ?", len(prefix), prefix); err != nil {
		return fmt.Errorf("storage: cannot clear preferences: %w", err)
	}
	return nil
}

// ClearUnscopedPrefs deletes the preferences stored without a scope, leaving
// every "scope/key" entry in place.
func (s *Store) ClearUnscopedPrefs() error {
	if _, err := s.db.Exec("DELETE FROM prefs WHERE instr(key, '/') = 0"); err != nil {
		return fmt.Errorf("storage: cannot clear preferences: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
