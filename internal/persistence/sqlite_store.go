package persistence

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/animelens/animelens/internal/jobs"
	"github.com/animelens/animelens/internal/service"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// SQLiteStore persists analysis jobs and finished file reports. The core
// pipeline stays stateless; only the job layer touches this store.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &SQLiteStore{db: db}
	if err := store.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
		return fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		return fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		version := migrationVersion(entry.Name())
		if version <= 0 {
			continue
		}
		var exists int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version).Scan(&exists); err != nil {
			return fmt.Errorf("check migration %s: %w", entry.Name(), err)
		}
		if exists > 0 {
			continue
		}
		content, err := migrationFiles.ReadFile(filepath.Join("migrations", entry.Name()))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		if _, err := s.db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
		}
		if _, err := s.db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			return fmt.Errorf("record migration %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// migrationVersion extracts the leading integer from a migration filename
// (e.g. "001_init.sql" → 1).
func migrationVersion(name string) int {
	for i, c := range name {
		if c < '0' || c > '9' {
			if i == 0 {
				return 0
			}
			n, _ := strconv.Atoi(name[:i])
			return n
		}
	}
	n, _ := strconv.Atoi(name)
	return n
}

// LoadJobs returns every persisted job.
func (s *SQLiteStore) LoadJobs(ctx context.Context) ([]*jobs.AnalysisJob, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, dedupe_key, payload, status, error, created_at, updated_at FROM jobs`)
	if err != nil {
		return nil, fmt.Errorf("load jobs: %w", err)
	}
	defer rows.Close()

	var ret []*jobs.AnalysisJob
	for rows.Next() {
		var job jobs.AnalysisJob
		var payload string
		if err := rows.Scan(&job.ID, &job.Source, &job.DedupeKey, &payload,
			&job.Status, &job.Error, &job.CreatedAt, &job.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan job row: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &job.Payload); err != nil {
			return nil, fmt.Errorf("decode payload for job %s: %w", job.ID, err)
		}
		ret = append(ret, &job)
	}
	return ret, rows.Err()
}

// UpsertJob inserts or replaces a job row.
func (s *SQLiteStore) UpsertJob(ctx context.Context, job *jobs.AnalysisJob) error {
	if job == nil {
		return nil
	}
	payload, err := json.Marshal(job.Payload)
	if err != nil {
		return fmt.Errorf("encode payload for job %s: %w", job.ID, err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO jobs
		(id, source, dedupe_key, payload, status, error, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source = excluded.source,
			dedupe_key = excluded.dedupe_key,
			payload = excluded.payload,
			status = excluded.status,
			error = excluded.error,
			updated_at = excluded.updated_at`,
		job.ID, job.Source, job.DedupeKey, string(payload),
		job.Status, job.Error, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert job %s: %w", job.ID, err)
	}
	return nil
}

// DeleteJob removes a job row.
func (s *SQLiteStore) DeleteJob(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}
	return nil
}

// SaveReport stores the finished report for a subtitle file, replacing any
// previous one for the same path.
func (s *SQLiteStore) SaveReport(ctx context.Context, report *service.FileReport) error {
	if report == nil {
		return nil
	}
	encoded, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report for %s: %w", report.Path, err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO reports (path, report)
		VALUES (?, ?)
		ON CONFLICT(path) DO UPDATE SET
			report = excluded.report,
			created_at = CURRENT_TIMESTAMP`,
		report.Path, string(encoded))
	if err != nil {
		return fmt.Errorf("save report for %s: %w", report.Path, err)
	}
	return nil
}

// GetReport loads the stored report for a subtitle file path. Returns
// (nil, nil) when no report exists.
func (s *SQLiteStore) GetReport(ctx context.Context, path string) (*service.FileReport, error) {
	var encoded string
	err := s.db.QueryRowContext(ctx,
		`SELECT report FROM reports WHERE path = ?`, path).Scan(&encoded)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get report for %s: %w", path, err)
	}
	var report service.FileReport
	if err := json.Unmarshal([]byte(encoded), &report); err != nil {
		return nil, fmt.Errorf("decode report for %s: %w", path, err)
	}
	return &report, nil
}
