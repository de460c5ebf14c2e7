package auth

import (
	"gorm.io/gorm"

	userctl "github.com/GoTodoAPI/GoTodoAPI/internal/db/controller/user"
	"github.com/GoTodoAPI/GoTodoAPI/internal/db/models"
)

// Credentials verifies username/password pairs against the local database.
type Credentials struct {
	db *gorm.DB
}

// NewCredentials creates a new credential verifier.
func NewCredentials(db *gorm.DB) *Credentials {
	return &Credentials{db: db}
}

// Authenticate authenticates a user by username and password.
// Callers surface every failure with the same generic message; the
// distinct errors exist for logging only.
func (p *Credentials) Authenticate(username, password string) (*models.User, error) {
	user, err := userctl.GetByUsername(p.db, username)
	if err != nil {
		return nil, err
	}

	if !user.Active {
		return nil, ErrUserAccountDisabled
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	return user, nil
}

// Register creates a new user account with a hashed password.
// The requested admin role is honored only when requestedByAdmin is set;
// otherwise the stored role is forced to the regular user role, closing
// the self-elevation hole of accepting a caller-supplied role verbatim.
func (p *Credentials) Register(u *models.User, password string, requestedByAdmin bool) (*models.User, error) {
	if u.Role != models.RoleUser && !requestedByAdmin {
		u.Role = models.RoleUser
	}

	if !u.Role.Valid() {
		u.Role = models.RoleUser
	}

	u.Active = true
	u.Password = models.HashPassword(password)

	if err := userctl.Create(p.db, u); err != nil {
		return nil, err
	}

	return u, nil
}

// ChangePassword changes a user's password after re-verifying the current
// one. A failed verification leaves the stored hash untouched and returns
// ErrInvalidOldPassword, distinct from an authentication failure.
func (p *Credentials) ChangePassword(userID uint64, oldPassword, newPassword string) error {
	user, err := userctl.GetByID(p.db, userID)
	if err != nil {
		return err
	}

	if !user.VerifyPassword(oldPassword) {
		return ErrInvalidOldPassword
	}

	return userctl.UpdatePassword(p.db, userID, models.HashPassword(newPassword))
}
