// Package users provides self-service endpoints for the authenticated user.
package users

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoTodoAPI/GoTodoAPI/internal/auth"
	"github.com/GoTodoAPI/GoTodoAPI/internal/config"
	userctl "github.com/GoTodoAPI/GoTodoAPI/internal/db/controller/user"
	"github.com/GoTodoAPI/GoTodoAPI/internal/web/handler"
)

const (
	// Path is the base path of the user self-service routes.
	Path = "/users"
)

// PasswordChangeRequest is the password change input.
type PasswordChangeRequest struct {
	Password    string `json:"password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// Service is the users handler service.
type Service struct {
	cfg         *config.Config
	db          *gorm.DB
	credentials *auth.Credentials
	validator   *validator.Validate
}

// Handler is the users handler.
var Handler = Service{}

// Init initializes the users handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, ts *auth.TokenService) {
	if app == nil || cfg == nil || db == nil || ts == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.credentials = auth.NewCredentials(db)
	s.validator = validator.New()

	group := app.Group(Path, auth.RequireAuth(ts))
	group.Get("/me", s.Me)
	group.Put("/password", s.ChangePassword)
	group.Put("/phone-number/:number", s.ChangePhoneNumber)
}

// Me returns the caller's own user record.
func (s *Service) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromCtx(c)
	if !ok {
		return auth.Unauthorized(c)
	}

	user, err := userctl.GetByID(s.db, identity.ID)
	if err != nil {
		if errors.Is(err, userctl.ErrUserNotFound) {
			return handler.NotFound(c, "user")
		}

		log.Error().Err(err).Uint64("user_id", identity.ID).Msg("failed to load user")

		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(user)
}

// ChangePassword re-verifies the current password before storing the new
// hash. A wrong current password is a distinct failure from a missing or
// invalid token and never touches the stored hash.
func (s *Service) ChangePassword(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromCtx(c)
	if !ok {
		return auth.Unauthorized(c)
	}

	req := new(PasswordChangeRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.UnprocessableEntity(c, err)
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.UnprocessableEntity(c, err)
	}

	if err := s.credentials.ChangePassword(identity.ID, req.Password, req.NewPassword); err != nil {
		if errors.Is(err, auth.ErrInvalidOldPassword) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "current password is incorrect",
			})
		}

		log.Error().Err(err).Uint64("user_id", identity.ID).Msg("failed to change password")

		return c.SendStatus(fiber.StatusInternalServerError)
	}

	log.Info().Uint64("user_id", identity.ID).Msg("password changed")

	return c.SendStatus(fiber.StatusNoContent)
}

// ChangePhoneNumber updates the caller's phone number.
func (s *Service) ChangePhoneNumber(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromCtx(c)
	if !ok {
		return auth.Unauthorized(c)
	}

	number := c.Params("number")
	if number == "" || len(number) > 30 {
		return handler.UnprocessableEntity(c, errors.New("invalid phone number"))
	}

	if err := userctl.UpdatePhoneNumber(s.db, identity.ID, number); err != nil {
		if errors.Is(err, userctl.ErrUserNotFound) {
			return handler.NotFound(c, "user")
		}

		log.Error().Err(err).Uint64("user_id", identity.ID).Msg("failed to update phone number")

		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
