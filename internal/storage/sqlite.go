// Package storage provides SQLite-based persistence for frame captures.
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
)

// Store manages the SQLite database connection for the capture log.
type Store struct {
	db *sql.DB
}

// Capture records one exported frame.
type Capture struct {
	ID        string // UUID, assigned by SaveCapture when empty
	SceneID   string
	Format    string
	Width     int // Frame size before upscaling
	Height    int
	Scale     int
	Path      string // Output file, empty for in-memory exports
	Bytes     int64
	Source    string // One of the Source* constants
	CreatedAt time.Time
}

// Capture sources: the surface that wrote the file.
const (
	SourceTUI = "tui" // zero view, zero menu
	SourceSSH = "ssh" // zero serve
	SourceCLI = "cli" // zero render
)

// SceneStats contains aggregated capture statistics for a scene.
type SceneStats struct {
	SceneID      string
	Captures     int
	TotalBytes   int64
	LastCaptured time.Time
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
// created_at holds Unix nanoseconds so captures within one second still sort.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS captures (
			id TEXT PRIMARY KEY,
			scene_id TEXT NOT NULL,
			format TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			scale INTEGER NOT NULL DEFAULT 1,
			path TEXT NOT NULL DEFAULT '',
			bytes INTEGER NOT NULL DEFAULT 0,
			source TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_captures_scene_id ON captures(scene_id);
		CREATE INDEX IF NOT EXISTS idx_captures_created_at ON captures(created_at DESC);
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

// SaveCapture records a capture and returns it with ID and CreatedAt set.
func (s *Store) SaveCapture(c Capture) (Capture, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	if c.Scale < 1 {
		c.Scale = 1
	}

	_, err := s.db.Exec(
		`INSERT INTO captures
		 (id, scene_id, format, width, height, scale, path, bytes, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.SceneID, c.Format, c.Width, c.Height, c.Scale, c.Path, c.Bytes, c.Source,
		c.CreatedAt.UnixNano(),
	)
	if err != nil {
		return c, fmt.Errorf("storage: cannot save capture: %w", err)
	}
	return c, nil
}

// RecentCaptures retrieves the most recent captures across all scenes,
// newest first.
func (s *Store) RecentCaptures(limit int) ([]Capture, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, scene_id, format, width, height, scale, path, bytes, source, created_at
		 FROM captures
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query captures: %w", err)
	}
	return scanCaptures(rows)
}

// CapturesForScene retrieves the most recent captures of one scene,
// newest first.
func (s *Store) CapturesForScene(sceneID string, limit int) ([]Capture, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, scene_id, format, width, height, scale, path, bytes, source, created_at
		 FROM captures
		 WHERE scene_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		sceneID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query captures: %w", err)
	}
	return scanCaptures(rows)
}

// CaptureByID retrieves a capture by its ID. Returns nil if not found.
func (s *Store) CaptureByID(id string) (*Capture, error) {
	var c Capture
	var createdAt int64

	err := s.db.QueryRow(
		`SELECT id, scene_id, format, width, height, scale, path, bytes, source, created_at
		 FROM captures
		 WHERE id = ?`,
		id,
	).Scan(&c.ID, &c.SceneID, &c.Format, &c.Width, &c.Height, &c.Scale, &c.Path, &c.Bytes, &c.Source, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query capture: %w", err)
	}

	c.CreatedAt = time.Unix(0, createdAt)
	return &c, nil
}

// ClearCaptures deletes the capture records of a scene. Files are kept.
func (s *Store) ClearCaptures(sceneID string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM captures WHERE scene_id = ?", sceneID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear captures: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	return n, nil
}

// AllSceneStats retrieves capture statistics for every scene that has
// been captured.
func (s *Store) AllSceneStats() (map[string]*SceneStats, error) {
	rows, err := s.db.Query(
		`SELECT scene_id, COUNT(*), SUM(bytes), MAX(created_at)
		 FROM captures
		 GROUP BY scene_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scene stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*SceneStats)
	for rows.Next() {
		var st SceneStats
		var last int64
		if err := rows.Scan(&st.SceneID, &st.Captures, &st.TotalBytes, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastCaptured = time.Unix(0, last)
		stats[st.SceneID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

func scanCaptures(rows *sql.Rows) ([]Capture, error) {
	defer rows.Close()

	var captures []Capture
	for rows.Next() {
		var c Capture
		var createdAt int64
		if err := rows.Scan(&c.ID, &c.SceneID, &c.Format, &c.Width, &c.Height, &c.Scale, &c.Path, &c.Bytes, &c.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.CreatedAt = time.Unix(0, createdAt)
		captures = append(captures, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return captures, nil
}
