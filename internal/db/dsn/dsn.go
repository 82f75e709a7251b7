// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/stockroom/stockroom/internal/config"
)

// Create builds the Data Source Name for the configured engine.
// A non-empty DB.URL is returned as is.
func Create(cfg *config.Config) string {
	db := cfg.DB

	if db.URL != "" {
		return db.URL
	}

	switch db.Engine {
	case config.EngineMySQL:
		out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
			db.User,
			db.Password,
			db.Host,
			db.Port,
			db.Name,
		)
		if db.Extras != "" {
			out += "?" + db.Extras
		}

		return out
	case config.EngineSQLite:
		out := db.Name
		if db.Extras != "" {
			out += "?" + db.Extras
		}

		return out
	default:
		parts := []string{
			"host=" + db.Host,
			fmt.Sprintf("port=%d", db.Port),
			"user=" + db.User,
			"password=" + db.Password,
			"dbname=" + db.Name,
		}
		if db.Extras != "" {
			parts = append(parts, strings.Fields(strings.ReplaceAll(db.Extras, "&", " "))...)
		}

		return strings.Join(parts, " ")
	}
}
