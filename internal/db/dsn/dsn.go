// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/GoTodoAPI/GoTodoAPI/internal/config"
)

// Create builds the Data Source Name from the configuration.
// The format depends on the configured gorm engine.
func Create(dbCfg *config.Config) string {
	switch dbCfg.DB.GormEngine {
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d %s",
			dbCfg.DB.Host,
			dbCfg.DB.User,
			dbCfg.DB.Password,
			dbCfg.DB.Name,
			dbCfg.DB.Port,
			dbCfg.DB.Extras,
		)
	case "sqlite":
		return dbCfg.DB.File
	default: // mysql
		// The controllers map RowsAffected == 0 to not-found, which requires
		// the server to report matched rows rather than changed rows.
		extras := dbCfg.DB.Extras
		if !strings.Contains(extras, "clientFoundRows=") {
			if extras != "" {
				extras += "&"
			}
			extras += "clientFoundRows=true"
		}

		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			dbCfg.DB.User,
			dbCfg.DB.Password,
			dbCfg.DB.Host,
			dbCfg.DB.Port,
			dbCfg.DB.Name,
			extras,
		)
	}
}
