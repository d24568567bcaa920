package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationState describes where the schema currently is
type MigrationState struct {
	Version uint
	Dirty   bool
	Applied bool
}

// withMigrator runs fn against a migrator bound to a dedicated connection.
// The connection is released afterwards without closing db.
func withMigrator(ctx context.Context, db *sql.DB, fn func(*migrate.Migrate) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}

	driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{})
	if err != nil {
		conn.Close()
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		driver.Close()
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		source.Close()
		driver.Close()
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	return fn(m)
}

// RunMigrations applies every pending migration
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return withMigrator(ctx, db, func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("could not run migrations: %w", err)
		}
		return nil
	})
}

// RollbackMigrations reverts the last steps migrations
func RollbackMigrations(ctx context.Context, db *sql.DB, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	return withMigrator(ctx, db, func(m *migrate.Migrate) error {
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("could not roll back migrations: %w", err)
		}
		return nil
	})
}

func MigrationStatus(ctx context.Context, db *sql.DB) (MigrationState, error) {
	var state MigrationState
	err := withMigrator(ctx, db, func(m *migrate.Migrate) error {
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("could not read migration version: %w", err)
		}
		state = MigrationState{Version: version, Dirty: dirty, Applied: true}
		return nil
	})
	return state, err
}

func (db *DB) RunMigrations(ctx context.Context) error {
	return RunMigrations(ctx, db.DB)
}
