package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"budgetbook/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps budget documents in a SQLite table, one row per budget.
// The database is only the container; the row value is the same JSON
// document the file backend writes.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Put(ctx context.Context, name string, doc []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (name, document, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			document = excluded.document,
			updated_at = CURRENT_TIMESTAMP`,
		name, string(doc))
	if err != nil {
		return fmt.Errorf("store budget document: %w", err)
	}

	slog.InfoContext(ctx, "Budget document saved to SQLite",
		"name", name,
		"size_bytes", len(doc))
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, name string) ([]byte, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM budgets WHERE name = ?`, name).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load budget document: %w", err)
	}
	return []byte(doc), nil
}

func (s *SQLiteStore) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM budgets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan budget name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return names, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
