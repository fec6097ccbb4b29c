// Package daemon wires the database and the web service of the address book.
package daemon

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/address-book/address-book/internal/config"
	"github.com/address-book/address-book/internal/db/database"
	"github.com/address-book/address-book/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	webService *web.Service
}

// Start serves http on the configured port until SIGINT or SIGTERM.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New opens and migrates the database, seeds it in dev mode and creates the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err = database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if cfg.DevMode {
		if err = seed(db); err != nil {
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
	}

	log.Info().
		Str("engine", cfg.DB.GormEngine).
		Int("port", cfg.Webserver.Port).
		Bool("devMode", cfg.DevMode).
		Msg("address book ready")

	return &Daemon{
		cfg:        cfg,
		db:         db,
		webService: web.New(cfg, db),
	}, nil
}
