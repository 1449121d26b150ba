// Package workspace persists the small local state that survives between
// runs: last-used file paths, the last view, and the known statement periods
// with their archive files. The core aggregation packages do not depend on
// it; it only feeds configuration values into the CLI layer.
package workspace

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var schemaFS embed.FS

// Well-known state keys.
const (
	KeyLastBudgetPath      = "last_budget_path"
	KeyLastProjectionsPath = "last_projections_path"
	KeyLastView            = "last_view"
)

// ErrNotFound is returned when a state key or period has no stored value.
var ErrNotFound = errors.New("workspace: not found")

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the workspace database and brings its
// schema up to date.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create workspace directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open workspace database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping workspace database: %w", err)
	}
	if err := migrateSchema(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate workspace schema: %w", err)
	}

	return &Store{db: db}, nil
}

// migrateSchema applies the embedded migrations on a dedicated connection so
// the store's own handle is left alone. An already up-to-date database is
// not an error.
func migrateSchema(dbPath string) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open schema connection: %w", err)
	}
	defer db.Close()

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("sqlite migrate driver: %w", err)
	}
	src, err := iofs.New(schemaFS, "migrations")
	if err != nil {
		return fmt.Errorf("embedded migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the value stored for a state key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM workspace_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("get state %s: %w", key, err)
	}
	return value, nil
}

// Set stores (or overwrites) a state key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO workspace_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("set state %s: %w", key, err)
	}
	slog.DebugContext(ctx, "Workspace state saved", "key", key)
	return nil
}

// LastBudgetPath returns the most recently used budget file, or "" when
// none has been recorded yet.
func (s *Store) LastBudgetPath(ctx context.Context) string {
	v, err := s.Get(ctx, KeyLastBudgetPath)
	if err != nil {
		return ""
	}
	return v
}

// RememberBudgetPath records the budget path and its derived projections
// path as the most recently used ones.
func (s *Store) RememberBudgetPath(ctx context.Context, budgetPath, projectionsPath string) error {
	if err := s.Set(ctx, KeyLastBudgetPath, budgetPath); err != nil {
		return err
	}
	return s.Set(ctx, KeyLastProjectionsPath, projectionsPath)
}

// LastView returns the last UI view label, or "" when unset.
func (s *Store) LastView(ctx context.Context) string {
	v, err := s.Get(ctx, KeyLastView)
	if err != nil {
		return ""
	}
	return v
}

// SetLastView records the last UI view label.
func (s *Store) SetLastView(ctx context.Context, view string) error {
	return s.Set(ctx, KeyLastView, view)
}

// AddStatementPeriod registers a statement-period label if it is new.
func (s *Store) AddStatementPeriod(ctx context.Context, label string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO statement_periods (label) VALUES (?)
		ON CONFLICT(label) DO NOTHING`, label)
	if err != nil {
		return fmt.Errorf("add statement period %s: %w", label, err)
	}
	return nil
}

// StatementPeriods lists all known statement-period labels in insertion
// order.
func (s *Store) StatementPeriods(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT label FROM statement_periods ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list statement periods: %w", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("scan statement period: %w", err)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate statement periods: %w", err)
	}
	return labels, nil
}

// SetArchiveFile records the archive filename for a statement period,
// registering the period if needed.
func (s *Store) SetArchiveFile(ctx context.Context, period, filename string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO statement_periods (label, archive_file) VALUES (?, ?)
		ON CONFLICT(label) DO UPDATE SET archive_file = excluded.archive_file`,
		period, filename)
	if err != nil {
		return fmt.Errorf("set archive file for %s: %w", period, err)
	}
	return nil
}

// ArchiveFile returns the archive filename recorded for a statement period.
func (s *Store) ArchiveFile(ctx context.Context, period string) (string, error) {
	var filename string
	err := s.db.QueryRowContext(ctx,
		`SELECT archive_file FROM statement_periods WHERE label = ?`, period).Scan(&filename)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: period %s", ErrNotFound, period)
	}
	if err != nil {
		return "", fmt.Errorf("get archive file for %s: %w", period, err)
	}
	if filename == "" {
		return "", fmt.Errorf("%w: no archive for period %s", ErrNotFound, period)
	}
	return filename, nil
}

// State dumps the full key-value state, for sync snapshots.
func (s *Store) State(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM workspace_state`)
	if err != nil {
		return nil, fmt.Errorf("dump workspace state: %w", err)
	}
	defer rows.Close()

	state := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan workspace state: %w", err)
		}
		state[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workspace state: %w", err)
	}
	return state, nil
}
