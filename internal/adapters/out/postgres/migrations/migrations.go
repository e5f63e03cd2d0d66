// Package migrations holds the database schema as embedded goose migrations.
//
// The orders table name is substituted from the ORDERS_TABLE environment
// variable at migration time, falling back to "orders".
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var embedMigrations embed.FS

const dir = "sql"

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB) error {
	if err := prepare(); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Reset rolls every migration back. Used by tests that need an empty schema.
func Reset(ctx context.Context, db *sql.DB) error {
	if err := prepare(); err != nil {
		return err
	}

	if err := goose.ResetContext(ctx, db, dir); err != nil {
		return fmt.Errorf("reset migrations: %w", err)
	}
	return nil
}

func prepare() error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}
