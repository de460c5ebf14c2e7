// Package admin provides the coarse admin-only todo endpoints.
// Unlike the owner-scoped routes, a role mismatch here answers 403:
// the routes themselves are not a secret, only other users' todos are.
package admin

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoTodoAPI/GoTodoAPI/internal/auth"
	"github.com/GoTodoAPI/GoTodoAPI/internal/config"
	todoctl "github.com/GoTodoAPI/GoTodoAPI/internal/db/controller/todo"
	"github.com/GoTodoAPI/GoTodoAPI/internal/db/models"
	"github.com/GoTodoAPI/GoTodoAPI/internal/web/handler"
)

const (
	// Path is the base path of the admin todo routes.
	Path = "/admin/todos"
)

// Service is the admin handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the admin handler.
var Handler = Service{}

// Init initializes the admin handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, ts *auth.TokenService) {
	if app == nil || cfg == nil || db == nil || ts == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg

	group := app.Group(Path, auth.RequireAuth(ts), auth.RequireRole(models.RoleAdmin))
	group.Get(handler.RootPath, s.List)
	group.Delete("/:id", s.Delete)
}

// List returns every todo in the system.
func (s *Service) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromCtx(c)
	if !ok {
		return auth.Unauthorized(c)
	}

	if !auth.Can(identity, auth.ActionReadAll, nil) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "forbidden"})
	}

	list, err := todoctl.ListAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list todos")
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(list)
}

// Delete removes a todo regardless of owner. A missing todo is truly
// absent here, so 404 carries no ownership information.
func (s *Service) Delete(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromCtx(c)
	if !ok {
		return auth.Unauthorized(c)
	}

	if !auth.Can(identity, auth.ActionDeleteAny, nil) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "forbidden"})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.UnprocessableEntity(c, errors.New("todo id must be a positive integer"))
	}

	if err := todoctl.Delete(s.db, uint64(id)); err != nil {
		if errors.Is(err, todoctl.ErrTodoNotFound) {
			return handler.NotFound(c, "todo")
		}

		log.Error().Err(err).Int("todo_id", id).Msg("failed to delete todo")

		return c.SendStatus(fiber.StatusInternalServerError)
	}

	log.Info().Int("todo_id", id).Uint64("admin_id", identity.ID).Msg("todo deleted by admin")

	return c.SendStatus(fiber.StatusNoContent)
}
