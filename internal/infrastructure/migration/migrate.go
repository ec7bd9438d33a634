package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Migrator wraps golang-migrate with logging. All methods treat
// migrate.ErrNoChange as success.
type Migrator struct {
	m      *migrate.Migrate
	logger *zap.Logger
}

// New creates a Migrator reading SQL files from migrationsPath and applying
// them over the given connection.
func New(db *sql.DB, migrationsPath string, logger *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}

	return &Migrator{m: m, logger: logger}, nil
}

// noChange reports whether err means the schema was already current,
// which callers treat as success.
func noChange(err error) bool {
	return errors.Is(err, migrate.ErrNoChange)
}

// logVersion logs the schema version reached after a successful run.
func (mg *Migrator) logVersion(msg string) {
	version, dirty, err := mg.m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		mg.logger.Warn("could not read schema version", zap.Error(err))
		return
	}
	mg.logger.Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
}

// Up applies all pending migrations.
func (mg *Migrator) Up() error {
	mg.logger.Info("applying pending migrations")

	if err := mg.m.Up(); err != nil {
		if noChange(err) {
			mg.logger.Info("schema already up to date")
			return nil
		}
		return fmt.Errorf("migrate up: %w", err)
	}

	mg.logVersion("migrations applied")
	return nil
}

// Down rolls back every applied migration.
func (mg *Migrator) Down() error {
	mg.logger.Info("rolling back all migrations")

	if err := mg.m.Down(); err != nil {
		if noChange(err) {
			mg.logger.Info("nothing to roll back")
			return nil
		}
		return fmt.Errorf("migrate down: %w", err)
	}

	mg.logger.Info("all migrations rolled back")
	return nil
}

// Steps applies n migrations, negative n rolls back.
func (mg *Migrator) Steps(n int) error {
	mg.logger.Info("applying migration steps", zap.Int("steps", n))

	if err := mg.m.Steps(n); err != nil {
		if noChange(err) {
			mg.logger.Info("schema already up to date")
			return nil
		}
		return fmt.Errorf("migrate steps: %w", err)
	}

	mg.logVersion("migration steps applied")
	return nil
}

// GoTo migrates up or down until the schema is at the given version.
func (mg *Migrator) GoTo(version uint) error {
	mg.logger.Info("migrating to version", zap.Uint("target_version", version))

	if err := mg.m.Migrate(version); err != nil {
		if noChange(err) {
			mg.logger.Info("already at target version")
			return nil
		}
		return fmt.Errorf("migrate to version %d: %w", version, err)
	}

	mg.logVersion("target version reached")
	return nil
}

// Version returns the current schema version. A fresh database reports
// version 0 without error.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

// Force overwrites the recorded schema version without running migrations.
// Only for repairing a dirty state.
func (mg *Migrator) Force(version int) error {
	mg.logger.Warn("forcing schema version", zap.Int("version", version))

	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Drop removes every object in the database, data included.
func (mg *Migrator) Drop() error {
	mg.logger.Warn("dropping all database objects")

	if err := mg.m.Drop(); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}
	return nil
}

// Close releases the source and database handles.
func (mg *Migrator) Close() error {
	sourceErr, dbErr := mg.m.Close()
	if sourceErr != nil {
		return fmt.Errorf("close migration source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration database: %w", dbErr)
	}
	return nil
}
