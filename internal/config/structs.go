package config

import (
	"github.com/address-book/address-book/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown in seconds
	URL            string // base url for the webserver
	BodyLimit      int    // max request body size in bytes, 0 uses the fiber default
}
