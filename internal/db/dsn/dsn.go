// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"

	"github.com/evination/backoffice/internal/config"
)

// Create builds the Data Source Name from the configuration.
// The format depends on the configured database engine.
func Create(cfg *config.Config) string {
	if cfg.DB.Engine == config.EnginePostgres {
		out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
			cfg.DB.Host,
			cfg.DB.Port,
			cfg.DB.User,
			cfg.DB.Password,
			cfg.DB.Name,
		)

		if cfg.DB.Extras != "" {
			out += " " + cfg.DB.Extras
		}

		return out
	}

	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.Name,
		cfg.DB.Extras,
	)

	return out
}
