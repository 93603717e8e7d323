package postgres

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies every pending schema migration. It opens and closes its own
// connection so the caller's pool is left alone.
func Migrate(storagePath string) error {
	const op = "storage.postgres.Migrate"

	db, err := sql.Open("postgres", storagePath)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	m, err := newMigrator(db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: up: %w", op, err)
	}

	return nil
}

// Rollback reverts the given number of migrations.
func Rollback(storagePath string, steps int) error {
	const op = "storage.postgres.Rollback"

	db, err := sql.Open("postgres", storagePath)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	m, err := newMigrator(db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: steps: %w", op, err)
	}

	return nil
}

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return nil, fmt.Errorf("db driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("source driver: %w", err)
	}

	return migrate.NewWithInstance("iofs", src, "postgres", driver)
}
