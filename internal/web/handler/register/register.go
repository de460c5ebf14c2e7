// Package register provides the user registration endpoint.
package register

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoTodoAPI/GoTodoAPI/internal/auth"
	"github.com/GoTodoAPI/GoTodoAPI/internal/config"
	userctl "github.com/GoTodoAPI/GoTodoAPI/internal/db/controller/user"
	"github.com/GoTodoAPI/GoTodoAPI/internal/db/models"
	"github.com/GoTodoAPI/GoTodoAPI/internal/web/handler"
)

const (
	// Path is the path to the registration endpoint.
	Path = "/auth"
)

// CreateUserRequest is the registration input.
type CreateUserRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=100"`
	Email       string `json:"email" validate:"required,email,max=255"`
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	Password    string `json:"password" validate:"required,min=6"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=30"`
	Role        string `json:"role" validate:"omitempty,oneof=user admin"`
}

// Service is the registration handler service.
type Service struct {
	cfg          *config.Config
	db           *gorm.DB
	credentials  *auth.Credentials
	tokenService *auth.TokenService
	validator    *validator.Validate
}

// Handler is the registration handler.
var Handler = Service{}

// Init initializes the registration handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, ts *auth.TokenService) {
	if app == nil || cfg == nil || db == nil || ts == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.credentials = auth.NewCredentials(db)
	s.tokenService = ts
	s.validator = validator.New()

	app.Post(Path, s.Post)
}

// Post handles user registration. The endpoint itself is public, but the
// requested role is only honored when the request carries a valid admin
// bearer token; everyone else is stored with the regular user role.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(CreateUserRequest)

	if err := c.BodyParser(req); err != nil {
		return handler.UnprocessableEntity(c, err)
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.UnprocessableEntity(c, err)
	}

	// an anonymous or non-admin caller cannot self-elevate
	requestedByAdmin := false
	if identity, err := auth.IdentityFromRequest(s.tokenService, c); err == nil {
		requestedByAdmin = identity.IsAdmin()
	}

	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Role:        models.Role(req.Role),
	}

	created, err := s.credentials.Register(user, req.Password, requestedByAdmin)
	if err != nil {
		if errors.Is(err, userctl.ErrUserNameOrEmailExists) {
			return handler.UnprocessableEntity(c, err)
		}

		log.Error().Err(err).Str("username", req.Username).Msg("failed to create user")

		return c.SendStatus(fiber.StatusInternalServerError)
	}

	log.Info().Uint64("user_id", created.ID).Str("username", created.Username).
		Str("role", string(created.Role)).
		Msg("user registered")

	return c.Status(fiber.StatusCreated).JSON(created)
}
