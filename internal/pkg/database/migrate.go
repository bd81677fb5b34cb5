package database

import (
	"context"
	"fmt"

	"github.com/gajihub/payroll-backend-go/migrations"
	"github.com/pressly/goose/v3"

	// Registers the database/sql driver goose runs migrations through.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// RunMigrations applies the embedded goose migrations against the database.
// Goose keeps its own *sql.DB; the pgx pool stays untouched.
func RunMigrations(ctx context.Context, dsn string) error {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("goose: failed to open DB: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	goose.SetTableName("schema_migrations")

	if err := goose.RunContext(ctx, "up", db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
