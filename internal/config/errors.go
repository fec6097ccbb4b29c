package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownGormEngine error if config db.gormengine names an unsupported database.
	ErrUnknownGormEngine = errors.New("toml config db.gormengine is not supported")

	// ErrEmptySQLitePath error if the sqlite engine is selected without a database file.
	ErrEmptySQLitePath = errors.New("toml config db.path can not be empty for sqlite")
)
