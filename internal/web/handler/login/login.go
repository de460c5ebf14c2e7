// Package login provides the token endpoint exchanging credentials for
// a signed bearer token.
package login

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoTodoAPI/GoTodoAPI/internal/auth"
	"github.com/GoTodoAPI/GoTodoAPI/internal/config"
	"github.com/GoTodoAPI/GoTodoAPI/internal/web/handler"
)

const (
	// Path is the path to the token endpoint.
	Path = "/auth/token"
)

// TokenResponse is the login output.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Service is the login handler service.
type Service struct {
	cfg          *config.Config
	db           *gorm.DB
	credentials  *auth.Credentials
	tokenService *auth.TokenService
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, ts *auth.TokenService) {
	if app == nil || cfg == nil || db == nil || ts == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.credentials = auth.NewCredentials(db)
	s.tokenService = ts

	app.Post(Path, s.Post)
}

// Post handles the login form submission. Credentials arrive form-encoded
// as username and password; the response carries the signed bearer token.
// Every failure path answers with the same generic 401 so callers cannot
// tell a wrong password from an unknown or disabled account.
func (s *Service) Post(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	if username == "" || password == "" {
		return auth.Unauthorized(c)
	}

	user, err := s.credentials.Authenticate(username, password)
	if err != nil {
		log.Debug().Err(err).Str("username", username).Msg("login failed")
		return auth.Unauthorized(c)
	}

	token, err := s.tokenService.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to issue token")
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
