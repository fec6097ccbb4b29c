// Package database opens the gorm connection for the configured engine and
// migrates the schema.
package database

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/address-book/address-book/internal/config"
	"github.com/address-book/address-book/internal/db/dsn"
	"github.com/address-book/address-book/internal/db/models"
	"github.com/address-book/address-book/internal/logger/adapter/stdlogger"
)

const slowQueryThreshold = 200 * time.Millisecond

// Dialector returns the gorm driver for the configured engine.
func Dialector(cfg *config.Config) gorm.Dialector {
	switch cfg.DB.GormEngine {
	case config.EnginePostgres:
		return postgres.Open(dsn.Create(cfg))
	case config.EngineSQLite:
		return sqlite.Open(dsn.Create(cfg))
	default:
		return gormmysql.Open(dsn.Create(cfg))
	}
}

// Logger routes gorm's log output through zerolog.
func Logger(devMode bool) gormlogger.Interface {
	level := gormlogger.Warn
	if devMode || zerolog.GlobalLevel() <= zerolog.DebugLevel {
		level = gormlogger.Info
	}

	return gormlogger.New(stdlogger.New("gorm"), gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// Open connects to the configured database.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(Dialector(cfg), &gorm.Config{
		Logger: Logger(cfg.DevMode),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", cfg.DB.GormEngine)
	}

	if cfg.DB.GormEngine == config.EngineSQLite {
		// sqlite allows a single writer, a shared connection avoids "database is locked"
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get sql.DB")
		}

		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate creates or updates the schema of all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return nil
}
