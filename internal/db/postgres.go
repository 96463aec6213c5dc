// Package db подключает PostgreSQL для журнала действий администратора.
package db

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/ignatzorin/agency-site/internal/logger"
)

// NewPostgres открывает пул соединений по DSN.
func NewPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	conn, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: не удалось подключиться: %w", err)
	}

	// В базе только журнал действий, большой пул не нужен.
	conn.SetMaxOpenConns(5)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxIdleTime(10 * time.Minute)

	return conn, nil
}

const schemaMigrationsDDL = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		name       TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// migrationFiles возвращает имена *.sql из корня fsys по возрастанию.
func migrationFiles(fsys fs.FS) ([]string, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// pending отбрасывает уже применённые миграции, сохраняя порядок.
func pending(files []string, applied map[string]bool) []string {
	out := make([]string, 0, len(files))
	for _, name := range files {
		if !applied[name] {
			out = append(out, name)
		}
	}
	return out
}

// RunMigrations применяет новые миграции из fsys, каждую в своей транзакции,
// и возвращает их имена.
func RunMigrations(ctx context.Context, conn *sqlx.DB, fsys fs.FS) ([]string, error) {
	if _, err := conn.ExecContext(ctx, schemaMigrationsDDL); err != nil {
		return nil, fmt.Errorf("postgres: таблица миграций: %w", err)
	}

	files, err := migrationFiles(fsys)
	if err != nil {
		return nil, fmt.Errorf("postgres: список миграций: %w", err)
	}

	var done []string
	if err := conn.SelectContext(ctx, &done, `SELECT name FROM schema_migrations`); err != nil {
		return nil, fmt.Errorf("postgres: применённые миграции: %w", err)
	}
	applied := make(map[string]bool, len(done))
	for _, name := range done {
		applied[name] = true
	}

	todo := pending(files, applied)
	for _, name := range todo {
		if err := apply(ctx, conn, fsys, name); err != nil {
			return nil, err
		}
		logger.WithComponent("db").WithField("migration", path.Base(name)).Info("migration applied")
	}
	return todo, nil
}

func apply(ctx context.Context, conn *sqlx.DB, fsys fs.FS, name string) error {
	body, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("postgres: чтение миграции %s: %w", name, err)
	}

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: транзакция для %s: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(body)); err != nil {
		return fmt.Errorf("postgres: миграция %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
		return fmt.Errorf("postgres: отметка миграции %s: %w", name, err)
	}
	return tx.Commit()
}
