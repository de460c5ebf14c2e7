// Package user provides persistence operations for user accounts.
// It is a thin retrieval and mutation layer; credential logic
// (hashing, verification, token issuance) lives in internal/auth.
package user

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoTodoAPI/GoTodoAPI/internal/db/models"
)

const (
	whereID = "id = ?"
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the database.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserNameOrEmailExists is returned when attempting to create a user
	// with a username or email that already exists.
	ErrUserNameOrEmailExists = errors.New("user with username or email already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create inserts a new user after checking username/email uniqueness.
func Create(db *gorm.DB, u *models.User) error {
	if db == nil {
		return ErrDBNil
	}

	var existing models.User

	err := db.Where("username = ? OR email = ?", u.Username, u.Email).First(&existing).Error
	if err == nil {
		return ErrUserNameOrEmailExists
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return db.Create(u).Error
}

// GetByID retrieves a user by ID.
func GetByID(db *gorm.DB, id uint64) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.User
	result := db.First(&u, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	return &u, nil
}

// GetByUsername retrieves a user by username.
func GetByUsername(db *gorm.DB, username string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.User
	result := db.Where("username = ?", username).First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	return &u, nil
}

// UpdatePassword replaces the stored password hash of a user.
func UpdatePassword(db *gorm.DB, id uint64, hashedPassword string) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.User{}).
		Where(whereID, id).
		Update("password", hashedPassword)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdatePhoneNumber replaces the stored phone number of a user.
func UpdatePhoneNumber(db *gorm.DB, id uint64, phoneNumber string) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.User{}).
		Where(whereID, id).
		Update("phone_number", phoneNumber)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
