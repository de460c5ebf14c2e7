package config

import (
	"github.com/GoTodoAPI/GoTodoAPI/internal/logger"
)

// Auth holds the settings for the bearer token service.
type Auth struct {
	// TokenSecret is the HMAC key used to sign and verify bearer tokens.
	// It is loaded once at startup and read-only for the process lifetime.
	TokenSecret string
	// TokenTTL is the lifetime of issued tokens in minutes.
	TokenTTL int
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Auth      Auth
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	Domain       string // domain name for the webserver
	Port         int    // listening port for the webserver
	ShutDownTime int    // wait time for shutdown
	URL          string // base url for the webserver
}
