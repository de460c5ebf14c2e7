// Package handler holds shared types and helpers for the web handler packages.
package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/GoTodoAPI/GoTodoAPI/internal/auth"
	"github.com/GoTodoAPI/GoTodoAPI/internal/config"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, db *gorm.DB, ts *auth.TokenService)
}
