// Package storage provides SQLite-based persistence for loop run reports.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run report persistence.
type Store struct {
	db *sql.DB
}

// RunReport records what one loop run actually did: configured rates on
// one side, achieved counters on the other. Dropped counts backlog
// updates discarded at the catch-up cap.
type RunReport struct {
	ID         int64
	DemoID     string
	UpdateRate int
	FrameRate  int
	MaxCatchUp int
	Frames     int64
	Updates    int64
	Renders    int64
	Dropped    int64
	WallMillis int64
	CreatedAt  time.Time
}

// AchievedUPS reports the measured update rate of the run.
func (r RunReport) AchievedUPS() float64 {
	if r.WallMillis <= 0 {
		return 0
	}
	return float64(r.Updates) * 1000 / float64(r.WallMillis)
}

// AchievedFPS reports the measured frame rate of the run.
func (r RunReport) AchievedFPS() float64 {
	if r.WallMillis <= 0 {
		return 0
	}
	return float64(r.Frames) * 1000 / float64(r.WallMillis)
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			demo_id TEXT NOT NULL,
			update_rate INTEGER NOT NULL,
			frame_rate INTEGER NOT NULL,
			max_catch_up INTEGER NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			updates INTEGER NOT NULL DEFAULT 0,
			renders INTEGER NOT NULL DEFAULT 0,
			dropped INTEGER NOT NULL DEFAULT 0,
			wall_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_demo_id ON runs(demo_id);
		CREATE INDEX IF NOT EXISTS idx_runs_recent ON runs(demo_id, created_at DESC);
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

// SaveRun records a completed loop run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunReport) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (demo_id, update_rate, frame_rate, max_catch_up, frames, updates, renders, dropped, wall_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.DemoID, r.UpdateRate, r.FrameRate, r.MaxCatchUp,
		r.Frames, r.Updates, r.Renders, r.Dropped, r.WallMillis,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RunsForDemo retrieves the most recent runs for the given demo.
func (s *Store) RunsForDemo(demoID string, limit int) ([]RunReport, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, demo_id, update_rate, frame_rate, max_catch_up,
		        frames, updates, renders, dropped, wall_ms, created_at
		 FROM runs
		 WHERE demo_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		demoID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// RecentRuns retrieves the most recent runs across all demos.
func (s *Store) RecentRuns(limit int) ([]RunReport, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, demo_id, update_rate, frame_rate, max_catch_up,
		        frames, updates, renders, dropped, wall_ms, created_at
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// scanRuns reads RunReport rows from a query result.
func scanRuns(rows *sql.Rows) ([]RunReport, error) {
	var reports []RunReport
	for rows.Next() {
		var r RunReport
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.DemoID, &r.UpdateRate, &r.FrameRate, &r.MaxCatchUp,
			&r.Frames, &r.Updates, &r.Renders, &r.Dropped, &r.WallMillis,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTimestamp(createdAt)
		reports = append(reports, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return reports, nil
}

// parseTimestamp handles the driver returning either time.Time or string.
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

// DemoStats contains aggregated statistics for one demo's runs.
type DemoStats struct {
	DemoID       string
	RunCount     int
	TotalUpdates int64
	TotalDropped int64
	LastRun      time.Time
}

// StatsForDemo retrieves aggregated statistics for a specific demo.
func (s *Store) StatsForDemo(demoID string) (*DemoStats, error) {
	stats := &DemoStats{DemoID: demoID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(updates), 0), COALESCE(SUM(dropped), 0)
		 FROM runs WHERE demo_id = ?`,
		demoID,
	).Scan(&stats.RunCount, &stats.TotalUpdates, &stats.TotalDropped)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get demo stats: %w", err)
	}

	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE demo_id = ? ORDER BY created_at DESC LIMIT 1`,
		demoID,
	).Scan(&lastRun)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTimestamp(lastRun)
	}

	return stats, nil
}

// ClearRuns deletes all runs for the given demo.
func (s *Store) ClearRuns(demoID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE demo_id = ?", demoID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
