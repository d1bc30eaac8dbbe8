// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/caraban-app/caraban-api/internal/config"
)

// ErrUnknownEngine is returned for an unsupported db.engine config value.
var ErrUnknownEngine = errors.New("unknown database engine")

// CreateMySQL builds the MySQL Data Source Name from the configuration.
func CreateMySQL(cfg *config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.Name,
		cfg.DB.Extras,
	)
}

// CreatePostgres builds the PostgreSQL Data Source Name from the configuration.
func CreatePostgres(cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s %s",
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Extras,
	)
}

// Dialector returns the gorm dialector matching the configured engine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.Engine {
	case "sqlite":
		storage := cfg.DB.Storage
		if storage == "" {
			storage = "./data/caraban.sqlite"
		}

		return sqlite.Open(storage), nil
	case "mysql":
		return gormmysql.Open(CreateMySQL(cfg)), nil
	case "postgres":
		return gormpostgres.Open(CreatePostgres(cfg)), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, cfg.DB.Engine)
	}
}
