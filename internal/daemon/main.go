// Package daemon assembles the service: database, migrations, seed data,
// token service and the web frontend.
package daemon

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoTodoAPI/GoTodoAPI/internal/auth"
	"github.com/GoTodoAPI/GoTodoAPI/internal/config"
	"github.com/GoTodoAPI/GoTodoAPI/internal/db/dsn"
	"github.com/GoTodoAPI/GoTodoAPI/internal/db/models"
	"github.com/GoTodoAPI/GoTodoAPI/internal/uniuri"
	"github.com/GoTodoAPI/GoTodoAPI/internal/web"
)

// devSecretLen is the length of the throwaway token secret generated in dev mode.
const devSecretLen = 48

// Daemon represents the main application daemon.
type Daemon struct {
	cfg *config.Config

	// webService is shared with the handlers registered in web.New;
	// the drain flag only works if both sides see the same instance.
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db, err := gorm.Open(openDialector(cfg), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Todo{},
	); err != nil {
		panic("failed to migrate database")
	}

	seed(cfg, db)

	tokenService := auth.NewTokenService(
		tokenSecret(cfg),
		time.Duration(cfg.Auth.TokenTTL)*time.Minute,
	)

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db, tokenService),
	}
}

// openDialector picks the gorm driver for the configured engine.
func openDialector(cfg *config.Config) gorm.Dialector {
	switch cfg.DB.GormEngine {
	case "postgres":
		return gormpostgres.Open(dsn.Create(cfg))
	case "sqlite":
		return sqlite.Open(dsn.Create(cfg))
	default:
		return gormmysql.Open(dsn.Create(cfg))
	}
}

// tokenSecret returns the configured token secret. In dev mode a missing
// secret is replaced with a random one, which invalidates all tokens on
// restart; outside dev mode it is a startup failure.
func tokenSecret(cfg *config.Config) string {
	if cfg.Auth.TokenSecret != "" {
		return cfg.Auth.TokenSecret
	}

	if !cfg.DevMode {
		log.Fatal().Msg("auth.tokenSecret is not configured")
		return ""
	}

	log.Warn().Msg("dev mode: generated a throwaway token secret, tokens will not survive a restart")

	return uniuri.NewLen(devSecretLen)
}
