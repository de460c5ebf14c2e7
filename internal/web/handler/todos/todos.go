// Package todos provides the owner-scoped todo CRUD endpoints.
//
// Every route passes the authentication guard first and then the
// authorization policy. Ownership misses on single todos answer 404,
// never 403, so a caller cannot confirm that a todo id belongs to
// someone else.
package todos

import (
	"errors"

	"github.com/go-playground/validator/v10"
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
	// Path is the base path of the todo routes.
	Path = "/todos"
)

// TodoRequest is the create/update input for a todo.
// A caller-supplied owner is deliberately absent: the owner of a created
// todo is always the authenticated identity.
type TodoRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"required,min=3,max=500"`
	Priority    int    `json:"priority" validate:"required,gte=1,lte=5"`
	Complete    bool   `json:"complete"`
}

// Service is the todos handler service.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the todos handler.
var Handler = Service{}

// Init initializes the todos handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, ts *auth.TokenService) {
	if app == nil || cfg == nil || db == nil || ts == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()

	group := app.Group(Path, auth.RequireAuth(ts))
	group.Get(handler.RootPath, s.List)
	group.Post(handler.RootPath, s.Create)
	group.Get("/:id", s.Get)
	group.Put("/:id", s.Update)
	group.Delete("/:id", s.Delete)
}

// List returns the todos owned by the caller.
func (s *Service) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromCtx(c)
	if !ok {
		return auth.Unauthorized(c)
	}

	list, err := todoctl.ListByOwner(s.db, identity.ID)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", identity.ID).Msg("failed to list todos")
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(list)
}

// Get returns a single todo owned by the caller.
func (s *Service) Get(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromCtx(c)
	if !ok {
		return auth.Unauthorized(c)
	}

	id, err := todoID(c)
	if err != nil {
		return handler.UnprocessableEntity(c, err)
	}

	t, err := todoctl.GetOwned(s.db, id, identity.ID)
	if err != nil {
		if errors.Is(err, todoctl.ErrTodoNotFound) {
			return handler.NotFound(c, "todo")
		}

		log.Error().Err(err).Uint64("todo_id", id).Msg("failed to load todo")

		return c.SendStatus(fiber.StatusInternalServerError)
	}

	if !auth.Can(identity, auth.ActionRead, t) {
		return handler.NotFound(c, "todo")
	}

	return c.JSON(t)
}

// Create stores a new todo owned by the caller. Any owner value a caller
// might smuggle into the payload is ignored.
func (s *Service) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromCtx(c)
	if !ok {
		return auth.Unauthorized(c)
	}

	req := new(TodoRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.UnprocessableEntity(c, err)
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.UnprocessableEntity(c, err)
	}

	if !auth.Can(identity, auth.ActionCreate, nil) {
		return handler.NotFound(c, "todo")
	}

	t := &models.Todo{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Complete:    req.Complete,
		OwnerID:     identity.ID, // forced, regardless of payload
	}

	if err := todoctl.Create(s.db, t); err != nil {
		log.Error().Err(err).Uint64("user_id", identity.ID).Msg("failed to create todo")
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusCreated).JSON(t)
}

// Update replaces the mutable fields of a todo owned by the caller.
// The ownership check and the write happen in the same statement, so
// there is no read-then-write window.
func (s *Service) Update(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromCtx(c)
	if !ok {
		return auth.Unauthorized(c)
	}

	id, err := todoID(c)
	if err != nil {
		return handler.UnprocessableEntity(c, err)
	}

	req := new(TodoRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.UnprocessableEntity(c, err)
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.UnprocessableEntity(c, err)
	}

	t := &models.Todo{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Complete:    req.Complete,
	}

	if err := todoctl.UpdateOwned(s.db, id, identity.ID, t); err != nil {
		if errors.Is(err, todoctl.ErrTodoNotFound) {
			return handler.NotFound(c, "todo")
		}

		log.Error().Err(err).Uint64("todo_id", id).Msg("failed to update todo")

		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Delete removes a todo owned by the caller.
func (s *Service) Delete(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromCtx(c)
	if !ok {
		return auth.Unauthorized(c)
	}

	id, err := todoID(c)
	if err != nil {
		return handler.UnprocessableEntity(c, err)
	}

	if err := todoctl.DeleteOwned(s.db, id, identity.ID); err != nil {
		if errors.Is(err, todoctl.ErrTodoNotFound) {
			return handler.NotFound(c, "todo")
		}

		log.Error().Err(err).Uint64("todo_id", id).Msg("failed to delete todo")

		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// todoID parses the :id path parameter; ids are positive integers.
func todoID(c *fiber.Ctx) (uint64, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, errors.New("todo id must be an integer")
	}

	if id <= 0 {
		return 0, errors.New("todo id must be greater than zero")
	}

	return uint64(id), nil
}
