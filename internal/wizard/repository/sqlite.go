package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"bedrot-sim/internal/wizard/models"
)

var ErrNotFound = errors.New("not found")

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init запускает миграции.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	if err := r.runMigrations(ctx, migrationsPath); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func (r *Repository) RecordExport(ctx context.Context, e *models.Export) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO exports (id, session_id, file_name, path, comfort, social, rot, rank, caption)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, e.ID, e.SessionID, e.FileName, e.Path, e.Stats.Comfort, e.Stats.Social, e.Stats.Rot, string(e.Stats.Rank), e.Caption)
	if err != nil {
		return fmt.Errorf("insert export: %w", err)
	}
	return nil
}

func (r *Repository) GetExport(ctx context.Context, id string) (*models.Export, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, session_id, file_name, path, comfort, social, rot, rank, caption, created_at
        FROM exports
        WHERE id = ?
    `, id)

	e, err := scanExport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// ListExports возвращает последние экспорты, новые первыми. limit приводится к [1, MaxListLimit].
func (r *Repository) ListExports(ctx context.Context, limit int) ([]models.Export, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, session_id, file_name, path, comfort, social, rot, rank, caption, created_at
        FROM exports
        ORDER BY created_at DESC, rowid DESC
        LIMIT ?
    `, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	defer rows.Close()

	out := []models.Export{}
	for rows.Next() {
		e, err := scanExport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExport(s scanner) (*models.Export, error) {
	var e models.Export
	var rank string
	if err := s.Scan(&e.ID, &e.SessionID, &e.FileName, &e.Path, &e.Stats.Comfort, &e.Stats.Social, &e.Stats.Rot, &rank, &e.Caption, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Stats.Rank = models.Rank(rank)
	return &e, nil
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context, migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
