package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	// cgo driver, registered as "sqlite3"
	_ "github.com/mattn/go-sqlite3"
	// pure Go driver, registered as "sqlite"
	_ "modernc.org/sqlite"
)

const (
	// DriverCGO is the mattn/go-sqlite3 driver.
	DriverCGO = "sqlite3"
	// DriverPure is the modernc.org/sqlite driver.
	DriverPure = "sqlite"

	// DefaultBusyTimeout bounds how long a write waits for a lock held by another process.
	DefaultBusyTimeout = 5 * time.Second
)

const schema = `
CREATE TABLE IF NOT EXISTS variables (
	label      TEXT NOT NULL,
	value      TEXT NOT NULL,
	project    TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL,
	PRIMARY KEY (label, project)
);`

// SQLiteStore is a Store backed by a single SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

type Option func(*SQLiteStore)

// WithLogger sets the logger used for debug records of every write.
func WithLogger(l *slog.Logger) Option {
	return func(s *SQLiteStore) {
		s.logger = l
	}
}

// Open opens (creating if needed) the database at path with the given driver.
// An empty driver selects DriverCGO.
func Open(ctx context.Context, driver, path string, opts ...Option) (*SQLiteStore, error) {
	driver, err := parseDriver(driver)
	if err != nil {
		return nil, err
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps :memory: databases alive and serializes writes
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{
		db:     db,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	s.logger.Debug("variable store opened", "driver", driver, "path", path)
	return s, nil
}

func parseDriver(driver string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverCGO, "mattn":
		return DriverCGO, nil
	case DriverPure, "modernc":
		return DriverPure, nil
	default:
		return "", fmt.Errorf("unsupported store driver: %s (use %s or %s)", driver, DriverCGO, DriverPure)
	}
}

func (s *SQLiteStore) init(ctx context.Context) error {
	pragma := fmt.Sprintf("PRAGMA busy_timeout = %d;", DefaultBusyTimeout.Milliseconds())
	if _, err := s.db.ExecContext(ctx, pragma); err != nil {
		return fmt.Errorf("configuring database: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, label string, scope Scope) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM variables WHERE label = ? AND project = ?`,
		label, scope.Project,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading variable %q: %w", label, err)
	}
	return value, true, nil
}

// Set upserts the value in one statement keyed by (label, scope).
func (s *SQLiteStore) Set(ctx context.Context, label, value string, scope Scope) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO variables (label, value, project, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (label, project) DO UPDATE
		SET value = excluded.value, updated_at = excluded.updated_at`,
		label, value, scope.Project, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("%w %q (%s): %w", ErrPersist, label, scope, err)
	}
	s.logger.Debug("variable stored", "label", label, "scope", scope.String())
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, label string, scope Scope) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM variables WHERE label = ? AND project = ?`,
		label, scope.Project,
	)
	if err != nil {
		return fmt.Errorf("%w: deleting %q (%s): %w", ErrPersist, label, scope, err)
	}
	s.logger.Debug("variable deleted", "label", label, "scope", scope.String())
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, project string) ([]Variable, []Variable, error) {
	global, err := s.query(ctx,
		`SELECT label, value, project FROM variables WHERE project = '' ORDER BY label`)
	if err != nil {
		return nil, nil, err
	}
	if project == "" {
		return global, nil, nil
	}
	projectVars, err := s.query(ctx,
		`SELECT label, value, project FROM variables WHERE project = ? ORDER BY label`, project)
	if err != nil {
		return nil, nil, err
	}
	return global, projectVars, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Variable, error) {
	return s.query(ctx, `SELECT label, value, project FROM variables ORDER BY project, label`)
}

func (s *SQLiteStore) query(ctx context.Context, query string, args ...any) ([]Variable, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var vars []Variable
	for rows.Next() {
		var v Variable
		if err := rows.Scan(&v.Label, &v.Value, &v.Scope.Project); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		vars = append(vars, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return vars, nil
}
