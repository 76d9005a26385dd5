// Package daemon assembles the application: database, session storage and
// the web service.
package daemon

import (
	"fmt"

	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/gofiber/storage"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/config"
	"github.com/evination/backoffice/internal/db/dsn"
	"github.com/evination/backoffice/internal/db/models"
	"github.com/evination/backoffice/internal/web"
	"github.com/evination/backoffice/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// OpenDB opens the configured database and migrates the schema.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	if cfg.DB.Engine == config.EnginePostgres {
		dialector = gormpostgres.Open(dsn.Create(cfg))
	} else {
		dialector = gormmysql.Open(dsn.Create(cfg))
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err = db.AutoMigrate(
		&models.Organization{},
		&models.Branch{},
		&models.Department{},
		&models.Role{},
		&models.Menu{},
		&models.Permission{},
		&models.MenuPermission{},
		&models.RoleRight{},
		&models.RolePermission{},
		&models.User{},
		&models.Setting{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// sessionStorage creates the fiber session storage on the same database
// engine the application uses.
func sessionStorage(cfg *config.Config) storage.Storage {
	if cfg.DB.Engine == config.EnginePostgres {
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         "sessions",
		})
	}

	return sessionmysql.New(sessionmysql.Config{
		ConnectionURI: dsn.Create(cfg),
		Table:         "sessions",
	})
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db, err := OpenDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
		return nil
	}

	session.Init(sessionStorage(cfg))

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db),
	}
}
