package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownDBEngine error if config db.engine is not one of mysql or postgres.
	ErrUnknownDBEngine = errors.New("toml config db.engine must be mysql or postgres")

	// ErrUnknownSyncStrategy error if config sync.strategy is not a recognized strategy name.
	ErrUnknownSyncStrategy = errors.New("toml config sync.strategy must be menu-wins or aggregate")
)
