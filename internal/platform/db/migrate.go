package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var Migrations embed.FS

const (
	migrationTable = "schema_migrations"
	migrationsRoot = "migrations"
	upMarker       = "-- +migrate Up"
	downMarker     = "-- +migrate Down"
)

// ApplyMigrations runs every *.sql file under root in name order, at most once per file.
func ApplyMigrations(ctx context.Context, conn *sqlx.DB, migrationFS fs.FS, root string) error {
	if conn == nil {
		return fmt.Errorf("sql db is required")
	}

	files, err := migrationFiles(migrationFS, root)
	if err != nil {
		return err
	}

	createSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    name TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, migrationTable)
	if _, err := conn.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range files {
		if err := applyMigration(ctx, conn, migrationFS, root, file); err != nil {
			return err
		}
	}

	return nil
}

// ApplyEmbedded applies the migrations bundled with this package.
func ApplyEmbedded(ctx context.Context, conn *sqlx.DB) error {
	return ApplyMigrations(ctx, conn, Migrations, migrationsRoot)
}

func migrationFiles(migrationFS fs.FS, root string) ([]string, error) {
	entries, err := fs.ReadDir(migrationFS, root)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func applyMigration(ctx context.Context, conn *sqlx.DB, migrationFS fs.FS, root, file string) error {
	var applied bool
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE name = $1)", migrationTable)
	if err := conn.GetContext(ctx, &applied, query, file); err != nil {
		return fmt.Errorf("check migration %s: %w", file, err)
	}
	if applied {
		return nil
	}

	content, err := fs.ReadFile(migrationFS, path.Join(root, file))
	if err != nil {
		return fmt.Errorf("read migration %s: %w", file, err)
	}

	upSQL := ExtractUpMigration(string(content))
	if strings.TrimSpace(upSQL) == "" {
		return nil
	}

	return NewSQLTxManager(conn).RunInTx(ctx, func(txCtx context.Context) error {
		tx := TxFromContext(txCtx)
		if _, err := tx.ExecContext(txCtx, upSQL); err != nil {
			return fmt.Errorf("exec migration %s: %w", file, err)
		}

		insert := fmt.Sprintf("INSERT INTO %s (name) VALUES ($1) ON CONFLICT DO NOTHING", migrationTable)
		if _, err := tx.ExecContext(txCtx, insert, file); err != nil {
			return fmt.Errorf("record migration %s: %w", file, err)
		}

		slog.Info("Applied migration.", "file", file)
		return nil
	})
}

// ExtractUpMigration returns the SQL in the -- +migrate Up section.
func ExtractUpMigration(content string) string {
	upIdx := strings.Index(content, upMarker)
	if upIdx == -1 {
		return content
	}
	downIdx := strings.Index(content, downMarker)
	if downIdx == -1 || downIdx < upIdx {
		return content[upIdx+len(upMarker):]
	}
	return content[upIdx+len(upMarker) : downIdx]
}
