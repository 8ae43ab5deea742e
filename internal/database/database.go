package database

import (
	"fmt"
	"strings"

	"trivia-api/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// sqlitePragmas are applied to every SQLite connection: the schema relies on
// foreign keys, and question search expects case-sensitive LIKE.
var sqlitePragmas = []string{
	"_pragma=foreign_keys(1)",
	"_pragma=case_sensitive_like(1)",
	"_pragma=busy_timeout(5000)",
}

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// DriverName maps a configured dialect to its database/sql driver name.
func DriverName(dialect string) (string, error) {
	switch dialect {
	case config.DriverPostgres:
		return "pgx", nil
	case config.DriverSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported database dialect: %q", dialect)
	}
}

// DataSourceName returns the DSN handed to the driver for the given dialect.
func DataSourceName(cfg config.DBConfig) string {
	if cfg.Driver != config.DriverSQLite {
		return cfg.DSN
	}
	sep := "?"
	if strings.Contains(cfg.DSN, "?") {
		sep = "&"
	}
	return cfg.DSN + sep + strings.Join(sqlitePragmas, "&")
}

// NewSQLXDB opens and pings the configured database.
func NewSQLXDB(cfg config.DBConfig) (*sqlx.DB, error) {
	driverName, err := DriverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(driverName, DataSourceName(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	return db, nil
}
