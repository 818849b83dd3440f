// Package cache persists scan history locally so past scans stay browsable
// when the backend is unreachable.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"avdash/pkg/domain"
)

// History is a SQLite-backed cache of scan jobs, keyed by scan id. The
// backend stays the source of truth; the cache only mirrors what refreshes
// have already seen.
type History struct {
	db *sql.DB
}

// Open creates or opens the cache database at dbPath. Use ":memory:" for
// testing.
func Open(dbPath string) (*History, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("cache: open database: %w", err)
	}
	// sqlite allows one writer; a single pooled connection also keeps
	// ":memory:" databases from splitting per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("cache: ping database: %w", err)
	}

	createTableSQL := `
		CREATE TABLE IF NOT EXISTS scans (
			scan_id        TEXT PRIMARY KEY,
			directory_path TEXT NOT NULL,
			scan_type      TEXT DEFAULT '',
			status         TEXT NOT NULL,
			total_files    INTEGER DEFAULT 0,
			infected_files INTEGER DEFAULT 0,
			clean_files    INTEGER DEFAULT 0,
			started_at     TEXT DEFAULT '',
			completed_at   TEXT DEFAULT ''
		);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("cache: create table: %w", err)
	}

	createIndexSQL := `
		CREATE INDEX IF NOT EXISTS idx_scans_started_at ON scans(started_at DESC);
	`
	if _, err := db.Exec(createIndexSQL); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("cache: create index: %w", err)
	}

	return &History{db: db}, nil
}

// Close releases the database handle.
func (h *History) Close() error {
	if err := h.db.Close(); err != nil {
		return fmt.Errorf("cache: close database: %w", err)
	}

	return nil
}

// Record upserts the given scan jobs by scan id. Jobs without an id are
// skipped.
func (h *History) Record(ctx context.Context, jobs ...domain.ScanJob) error {
	query := `
		INSERT INTO scans (scan_id, directory_path, scan_type, status,
			total_files, infected_files, clean_files, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(scan_id) DO UPDATE SET
			directory_path = excluded.directory_path,
			scan_type      = excluded.scan_type,
			status         = excluded.status,
			total_files    = excluded.total_files,
			infected_files = excluded.infected_files,
			clean_files    = excluded.clean_files,
			started_at     = excluded.started_at,
			completed_at   = excluded.completed_at
	`
	for _, job := range jobs {
		if job.ID == "" {
			continue
		}
		_, err := h.db.ExecContext(ctx, query,
			job.ID,
			job.DirectoryPath,
			string(job.ScanType),
			string(job.Status),
			job.TotalFiles,
			job.InfectedFiles,
			job.CleanFiles,
			formatTime(job.StartedAt),
			formatTime(job.CompletedAt),
		)
		if err != nil {
			return fmt.Errorf("cache: record scan %q: %w", job.ID, err)
		}
	}

	return nil
}

// Recent lists cached scans ordered by start time, newest first. limit <= 0
// returns everything.
func (h *History) Recent(ctx context.Context, limit int) ([]domain.ScanJob, error) {
	query := `
		SELECT scan_id, directory_path, scan_type, status,
			total_files, infected_files, clean_files, started_at, completed_at
		FROM scans
		ORDER BY started_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("cache: query scans: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var jobs []domain.ScanJob
	for rows.Next() {
		var (
			job                  domain.ScanJob
			scanType, status     string
			startedAt, completed string
		)
		if err := rows.Scan(&job.ID, &job.DirectoryPath, &scanType, &status,
			&job.TotalFiles, &job.InfectedFiles, &job.CleanFiles,
			&startedAt, &completed); err != nil {
			return nil, fmt.Errorf("cache: scan row: %w", err)
		}
		job.ScanType = domain.ScanType(scanType)
		job.Status = domain.ScanStatus(status)
		job.StartedAt = parseTime(startedAt)
		job.CompletedAt = parseTime(completed)
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cache: iterate rows: %w", err)
	}

	return jobs, nil
}

// storedTimeLayout keeps fractional seconds fixed width so the lexicographic
// ORDER BY on the text column matches chronological order.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t domain.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.UTC().Format(storedTimeLayout)
}

func parseTime(s string) domain.Time {
	if s == "" {
		return domain.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return domain.Time{}
	}

	return domain.NewTime(t)
}
