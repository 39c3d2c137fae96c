// Package storage provides SQLite-based persistence for maze runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
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

	"github.com/vovakirdan/tui-maze/internal/core"
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is one finished attempt at a level.
type Run struct {
	ID        string
	LevelID   string
	Won       bool
	Cheat     bool // played with the cheat map; never counts as a best
	Time      float64
	Moves     float64
	CreatedAt time.Time
}

// Best holds the best time and the fewest moves of a level's won runs.
// The two may come from different runs.
type Best struct {
	LevelID string
	Time    float64
	Moves   float64
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
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			level_id TEXT NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			cheat INTEGER NOT NULL DEFAULT 0,
			time_secs REAL NOT NULL,
			moves REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(level_id, won, cheat, time_secs);
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

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(result core.RunResult, cheat bool) (string, error) {
	if result.LevelID == "" {
		return "", errors.New("storage: run has no level id")
	}
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO runs (id, level_id, won, cheat, time_secs, moves) VALUES (?, ?, ?, ?, ?, ?)",
		id, result.LevelID, boolInt(result.Won), boolInt(cheat), result.Time, result.Moves,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return id, nil
}

const runColumns = "id, level_id, won, cheat, time_secs, moves, created_at"

// TopRuns retrieves the fastest won runs of a level, cheat runs excluded.
func (s *Store) TopRuns(levelID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE level_id = ? AND won = 1 AND cheat = 0
		 ORDER BY time_secs ASC, moves ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// AllRuns retrieves every run of a level, newest first. An empty level ID
// returns the runs of all levels.
func (s *Store) AllRuns(levelID string) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR level_id = ?
		 ORDER BY created_at DESC, rowid DESC`,
		levelID, levelID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.LevelID, &r.Won, &r.Cheat, &r.Time, &r.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestRun returns the best time and fewest moves over a level's won,
// non-cheat runs. ok is false when the level was never won.
func (s *Store) BestRun(levelID string) (best Best, ok bool, err error) {
	var t, m sql.NullFloat64
	err = s.db.QueryRow(
		"SELECT MIN(time_secs), MIN(moves) FROM runs WHERE level_id = ? AND won = 1 AND cheat = 0",
		levelID,
	).Scan(&t, &m)
	if err != nil {
		return Best{}, false, fmt.Errorf("storage: cannot query best run: %w", err)
	}

	if !t.Valid {
		return Best{LevelID: levelID}, false, nil
	}
	return Best{LevelID: levelID, Time: t.Float64, Moves: m.Float64}, true, nil
}

// BestRuns returns the best record of every level that has been won.
func (s *Store) BestRuns() (map[string]Best, error) {
	rows, err := s.db.Query(
		`SELECT level_id, MIN(time_secs), MIN(moves)
		 FROM runs
		 WHERE won = 1 AND cheat = 0
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best runs: %w", err)
	}
	defer rows.Close()

	best := make(map[string]Best)
	for rows.Next() {
		var b Best
		if err := rows.Scan(&b.LevelID, &b.Time, &b.Moves); err != nil {
			return nil, fmt.Errorf("storage: cannot scan best row: %w", err)
		}
		best[b.LevelID] = b
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return best, nil
}

// ClearRuns deletes the runs of a level. An empty level ID clears all runs.
func (s *Store) ClearRuns(levelID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR level_id = ?", levelID, levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    string
	Attempts   int
	Wins       int
	AvgWinTime float64
	LastPlayed time.Time
}

// Deaths returns the attempts that did not end in a win.
func (s LevelStats) Deaths() int {
	return s.Attempts - s.Wins
}

// GetLevelStats retrieves aggregated statistics for a specific level.
func (s *Store) GetLevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0),
		        COALESCE(AVG(CASE WHEN won = 1 THEN time_secs END), 0), MAX(created_at)
		 FROM runs WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Attempts, &stats.Wins, &stats.AvgWinTime, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllLevelStats retrieves statistics for every level that has been played.
func (s *Store) GetAllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), SUM(won),
		        COALESCE(AVG(CASE WHEN won = 1 THEN time_secs END), 0), MAX(created_at)
		 FROM runs
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var lastPlayed any
		if err := rows.Scan(&ls.LevelID, &ls.Attempts, &ls.Wins, &ls.AvgWinTime, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastPlayed = parseTime(lastPlayed)
		stats[ls.LevelID] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// parseTime handles both time.Time and string datetimes from the driver.
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
