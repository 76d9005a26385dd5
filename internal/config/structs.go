package config

import (
	"time"

	"github.com/evination/backoffice/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Sync      Sync
	Title     string
	Webserver Webserver
}

// Recognized sync strategy names, see internal/authz.
const (
	// SyncStrategyMenuWins recomputes permissions from the edited menu only.
	SyncStrategyMenuWins = "menu-wins"
	// SyncStrategyAggregate ORs rights across all menus governing a permission.
	SyncStrategyAggregate = "aggregate"
)

// Sync settings for the role permission sync engine.
type Sync struct {
	// Strategy selects how permissions governed by multiple menus are
	// recomputed: "menu-wins" (default) or "aggregate".
	Strategy string
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool    // disable recover middleware
	Domain         string  // domain name for the webserver
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	Session        Session // session settings
}
