// Package storage provides SQLite-based persistence for lap times and
// race results. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// LapEntry represents a single recorded lap.
type LapEntry struct {
	ID         int64
	ModeID     string
	LapSeconds float64
	Seed       int64 // Arena seed the lap was driven on
	CreatedAt  time.Time
}

// RaceEntry represents one finished race.
type RaceEntry struct {
	ID           int64
	ModeID       string
	PlayerLaps   int
	BotLaps      int
	Winner       int // Car slot that finished first
	DurationSecs int
	Seed         int64
	CreatedAt    time.Time
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
		CREATE TABLE IF NOT EXISTS laps (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode_id TEXT NOT NULL,
			lap_seconds REAL NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_laps_mode_id ON laps(mode_id);
		CREATE INDEX IF NOT EXISTS idx_laps_best ON laps(mode_id, lap_seconds ASC);

		CREATE TABLE IF NOT EXISTS races (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode_id TEXT NOT NULL,
			player_laps INTEGER NOT NULL DEFAULT 0,
			bot_laps INTEGER NOT NULL DEFAULT 0,
			winner INTEGER NOT NULL,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_races_mode_id ON races(mode_id);
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

// SaveLap records a completed lap. Returns the ID of the inserted record.
func (s *Store) SaveLap(modeID string, lapSeconds float64, seed int64) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO laps (mode_id, lap_seconds, seed) VALUES (?, ?, ?)",
		modeID, lapSeconds, seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save lap: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopLaps retrieves the N fastest laps for the given mode, fastest first.
func (s *Store) TopLaps(modeID string, limit int) ([]LapEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode_id, lap_seconds, seed, created_at
		 FROM laps
		 WHERE mode_id = ?
		 ORDER BY lap_seconds ASC
		 LIMIT ?`,
		modeID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query laps: %w", err)
	}
	defer rows.Close()

	var entries []LapEntry
	for rows.Next() {
		var e LapEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.ModeID, &e.LapSeconds, &e.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestLap returns the fastest recorded lap for the given mode.
// Returns 0 if no laps exist.
func (s *Store) BestLap(modeID string) (float64, error) {
	var best sql.NullFloat64
	err := s.db.QueryRow(
		"SELECT MIN(lap_seconds) FROM laps WHERE mode_id = ?",
		modeID,
	).Scan(&best)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best lap: %w", err)
	}

	if !best.Valid {
		return 0, nil
	}

	return best.Float64, nil
}

// ClearLaps deletes all laps for the given mode.
func (s *Store) ClearLaps(modeID string) error {
	_, err := s.db.Exec("DELETE FROM laps WHERE mode_id = ?", modeID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear laps: %w", err)
	}
	return nil
}

// SaveRace records a finished race result.
func (s *Store) SaveRace(r RaceEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO races (mode_id, player_laps, bot_laps, winner, duration_secs, seed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ModeID, r.PlayerLaps, r.BotLaps, r.Winner, r.DurationSecs, r.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save race: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRaces retrieves the N most recent races for the given mode.
func (s *Store) RecentRaces(modeID string, limit int) ([]RaceEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode_id, player_laps, bot_laps, winner, duration_secs, seed, created_at
		 FROM races
		 WHERE mode_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		modeID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query races: %w", err)
	}
	defer rows.Close()

	var entries []RaceEntry
	for rows.Next() {
		var e RaceEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.ModeID, &e.PlayerLaps, &e.BotLaps, &e.Winner,
			&e.DurationSecs, &e.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTimestamp handles both time.Time and string datetime columns.
func parseTimestamp(v any) time.Time {
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
