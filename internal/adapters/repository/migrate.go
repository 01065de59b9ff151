package repository

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/summit/internal/adapters/repository/migrations"
)

const migrationTable = "schema_migrations"

// Migrate applies every embedded migration that has not run yet, each in its
// own transaction. It returns the names of the files it applied.
func Migrate(ctx context.Context, db *sqlx.DB) ([]string, error) {
	return applyMigrations(ctx, db, migrations.FS)
}

func applyMigrations(ctx context.Context, db *sqlx.DB, migrationFS fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	createSQL := fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            name       TEXT PRIMARY KEY,
            applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`, migrationTable)
	if _, err := db.ExecContext(ctx, createSQL); err != nil {
		return nil, fmt.Errorf("ensure migration table: %w", err)
	}

	var applied []string
	for _, file := range files {
		var count int
		checkSQL := fmt.Sprintf(`SELECT count(*) FROM %s WHERE name = $1`, migrationTable)
		if err := db.GetContext(ctx, &count, checkSQL, file); err != nil {
			return applied, fmt.Errorf("check migration %s: %w", file, err)
		}
		if count > 0 {
			continue
		}

		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", file, err)
		}
		upSQL := upSection(string(content))
		if strings.TrimSpace(upSQL) == "" {
			continue
		}

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return applied, fmt.Errorf("begin migration %s: %w", file, err)
		}
		if _, err := tx.ExecContext(ctx, upSQL); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("exec migration %s: %w", file, err)
		}
		recordSQL := fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) ON CONFLICT DO NOTHING`, migrationTable)
		if _, err := tx.ExecContext(ctx, recordSQL, file); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("commit migration %s: %w", file, err)
		}
		applied = append(applied, file)
	}

	return applied, nil
}

// upSection returns the SQL between the Up and Down markers, or the whole
// file when it has no markers.
func upSection(content string) string {
	const up, down = "-- +migrate Up", "-- +migrate Down"

	start := strings.Index(content, up)
	if start == -1 {
		return content
	}
	content = content[start+len(up):]
	if end := strings.Index(content, down); end != -1 {
		return content[:end]
	}
	return content
}
