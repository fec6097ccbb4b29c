// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/address-book/address-book/internal/config"
)

// sqliteForeignKeys turns on FK enforcement, sqlite keeps it off per connection by default.
const sqliteForeignKeys = "_pragma=foreign_keys(1)"

// Create builds the Data Source Name for the configured gorm engine.
func Create(cfg *config.Config) string {
	switch cfg.DB.GormEngine {
	case config.EnginePostgres:
		return Postgres(&cfg.DB)
	case config.EngineSQLite:
		return SQLite(&cfg.DB)
	default:
		return MySQL(&cfg.DB)
	}
}

// MySQL builds a go-sql-driver DSN, Extras is used as query string.
func MySQL(db *config.DB) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
		db.Extras,
	)
}

// Postgres builds a pgx keyword/value DSN, Extras is appended as is (e.g. "sslmode=disable").
func Postgres(db *config.DB) string {
	out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		db.Host,
		db.Port,
		db.User,
		db.Password,
		db.Name,
	)

	if db.Extras != "" {
		out += " " + db.Extras
	}

	return out
}

// SQLite builds a file DSN with foreign keys enabled, Extras is appended as query parameters.
func SQLite(db *config.DB) string {
	params := []string{sqliteForeignKeys}
	if db.Extras != "" {
		params = append(params, db.Extras)
	}

	return db.Path + "?" + strings.Join(params, "&")
}
