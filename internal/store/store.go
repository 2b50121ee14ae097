// Package store persists load runs and their documents in SQLite.
//
// Each run is written in one transaction while holding a file lock next to
// the database, so concurrent dirloader processes never interleave writes.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/dirloader/internal/filelock"
	"github.com/harrison/dirloader/internal/models"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// ErrRunNotFound is returned when no run has the requested ID
var ErrRunNotFound = errors.New("run not found")

// Store manages the SQLite database of load runs
type Store struct {
	db       *sql.DB
	dbPath   string
	lockPath string
}

// NewStore creates a new Store and applies pending migrations.
// Parent directories of file-based databases are created as needed.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == MemoryPath {
		return openAndInitStore(dbPath)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	return openAndInitStore(dbPath)
}

// openAndInitStore opens the database connection and initializes schema
func openAndInitStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// PRAGMAs are per connection, and every connection to :memory: is a
	// separate database
	db.SetMaxOpenConns(1)

	s := &Store{db: db, dbPath: dbPath}
	if dbPath != MemoryPath {
		s.lockPath = dbPath + ".lock"
	}

	// busy_timeout must be set first so the rest wait on locks
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := s.withWriteLock(context.Background(), s.ApplyMigrations); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return s, nil
}

// execWithRetry executes a statement with exponential backoff on lock errors.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// withWriteLock runs fn under the database's file lock.
// In-memory databases are private to the process and skip the lock.
func (s *Store) withWriteLock(ctx context.Context, fn func(context.Context) error) error {
	if s.lockPath == "" {
		return fn(ctx)
	}
	return filelock.WithLock(ctx, s.lockPath, func() error {
		return fn(ctx)
	})
}

// Path returns the database path
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun stores a run summary with its documents and skipped files.
// Documents keep their slice order through the position column.
func (s *Store) SaveRun(ctx context.Context, result *models.LoadResult, docs []models.Document) error {
	if result == nil {
		return fmt.Errorf("result cannot be nil")
	}
	if result.RunID == "" {
		return fmt.Errorf("result has no run id")
	}

	return s.withWriteLock(ctx, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback()

		_, err = tx.ExecContext(ctx, `INSERT INTO load_runs
			(run_id, root, pattern, candidates, loaded, skipped, units, started_at, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			result.RunID,
			result.Root,
			result.Pattern,
			result.Candidates,
			result.Loaded,
			result.SkippedCount(),
			result.Units,
			result.StartedAt.UTC().Format(time.RFC3339Nano),
			result.Duration.Milliseconds(),
		)
		if err != nil {
			return fmt.Errorf("insert load run: %w", err)
		}

		docStmt, err := tx.PrepareContext(ctx, `INSERT INTO documents
			(run_id, source, content, metadata, position) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare document insert: %w", err)
		}
		defer docStmt.Close()

		for i, doc := range docs {
			metadataJSON, err := marshalMetadata(doc.Metadata)
			if err != nil {
				return fmt.Errorf("marshal metadata for %s: %w", doc.Source(), err)
			}
			if _, err := docStmt.ExecContext(ctx, result.RunID, doc.Source(), doc.Content, metadataJSON, i); err != nil {
				return fmt.Errorf("insert document %d: %w", i, err)
			}
		}

		for i, skipped := range result.Skipped {
			if _, err := tx.ExecContext(ctx, `INSERT INTO skipped_files (run_id, path, error, position) VALUES (?, ?, ?, ?)`,
				result.RunID, skipped.Path, skipped.Error, i); err != nil {
				return fmt.Errorf("insert skipped file %s: %w", skipped.Path, err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit run: %w", err)
		}
		return nil
	})
}

// marshalMetadata encodes document metadata as a JSON object
func marshalMetadata(metadata map[string]any) (string, error) {
	if len(metadata) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

const runColumns = `run_id, root, pattern, candidates, loaded, units, started_at, duration_ms`

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// scanRun reads one load_runs row selected with runColumns
func scanRun(row scanner) (*models.LoadResult, error) {
	var (
		result     models.LoadResult
		startedAt  string
		durationMs int64
	)
	if err := row.Scan(
		&result.RunID,
		&result.Root,
		&result.Pattern,
		&result.Candidates,
		&result.Loaded,
		&result.Units,
		&startedAt,
		&durationMs,
	); err != nil {
		return nil, err
	}

	ts, err := time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return nil, fmt.Errorf("parse started_at %q: %w", startedAt, err)
	}
	result.StartedAt = ts
	result.Duration = time.Duration(durationMs) * time.Millisecond
	result.Skipped = []models.SkippedFile{}

	return &result, nil
}

// GetRun returns the summary of one run, including its skipped files.
// Returns ErrRunNotFound when the ID is unknown.
func (s *Store) GetRun(ctx context.Context, runID string) (*models.LoadResult, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM load_runs WHERE run_id = ?`, runID)
	result, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}

	skipped, err := s.listSkipped(ctx, runID)
	if err != nil {
		return nil, err
	}
	result.Skipped = skipped

	return result, nil
}

// listSkipped returns the skipped files of a run in processing order
func (s *Store) listSkipped(ctx context.Context, runID string) ([]models.SkippedFile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, error FROM skipped_files WHERE run_id = ? ORDER BY position ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query skipped files: %w", err)
	}
	defer rows.Close()

	skipped := []models.SkippedFile{}
	for rows.Next() {
		var sf models.SkippedFile
		if err := rows.Scan(&sf.Path, &sf.Error); err != nil {
			return nil, fmt.Errorf("scan skipped file: %w", err)
		}
		skipped = append(skipped, sf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skipped files: %w", err)
	}
	return skipped, nil
}

// ListRuns returns the most recent runs first. A limit <= 0 returns all runs.
// Skipped file details are not loaded; use GetRun for those.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*models.LoadResult, error) {
	query := `SELECT ` + runColumns + ` FROM load_runs ORDER BY id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.LoadResult
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ListDocuments returns the documents of a run in load order.
// Metadata is decoded from JSON, so numbers come back as float64.
func (s *Store) ListDocuments(ctx context.Context, runID string) ([]models.Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT content, metadata FROM documents WHERE run_id = ? ORDER BY position ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		var content, metadataJSON string
		if err := rows.Scan(&content, &metadataJSON); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}

		var metadata map[string]any
		if err := json.Unmarshal([]byte(metadataJSON), &metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
		docs = append(docs, models.NewDocument(content, metadata))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}

// DeleteRun removes a run with its documents and skipped files.
// Returns ErrRunNotFound when the ID is unknown.
func (s *Store) DeleteRun(ctx context.Context, runID string) error {
	return s.withWriteLock(ctx, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback()

		for _, table := range []string{"documents", "skipped_files"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE run_id = ?`, runID); err != nil {
				return fmt.Errorf("delete %s: %w", table, err)
			}
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM load_runs WHERE run_id = ?`, runID)
		if err != nil {
			return fmt.Errorf("delete run: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}

		return tx.Commit()
	})
}
