package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"trivia-api/internal/config"
	"trivia-api/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

// RunMigrations applies every pending up migration for the configured dialect.
func RunMigrations(cfg config.DBConfig) error {
	m, err := newMigrate(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply migrations: %w", err)
	}
	logVersion(m, "Migrations applied")
	return nil
}

// RollbackMigrations reverts every applied migration.
func RollbackMigrations(cfg config.DBConfig) error {
	m, err := newMigrate(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not roll back migrations: %w", err)
	}
	logger.Get().Info("Migrations rolled back", zap.String("driver", cfg.Driver))
	return nil
}

// newMigrate opens a dedicated connection; closing the returned Migrate closes it.
func newMigrate(cfg config.DBConfig) (*migrate.Migrate, error) {
	driverName, err := DriverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	src, err := iofs.New(migrationsFS, "migrations/"+cfg.Driver)
	if err != nil {
		return nil, fmt.Errorf("could not read embedded migrations: %w", err)
	}

	db, err := sql.Open(driverName, DataSourceName(cfg))
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not ping database: %w", err)
	}

	var driver migratedb.Driver
	switch cfg.Driver {
	case config.DriverPostgres:
		driver, err = pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	case config.DriverSQLite:
		driver, err = sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, cfg.Driver, driver)
	if err != nil {
		driver.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	return m, nil
}

func logVersion(m *migrate.Migrate, msg string) {
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		logger.Get().Warn("Could not read migration version", zap.Error(err))
		return
	}
	logger.Get().Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
}
