// Package todo provides CRUD operations for todo records.
//
// Every lookup and mutation that acts on behalf of a regular user is
// scoped by the owner id in the same SQL statement, so an ownership
// check can never race with the write it guards. Unscoped variants
// exist for admin operations only.
package todo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoTodoAPI/GoTodoAPI/internal/db/models"
)

const (
	ownedQueryPattern = "id = ? AND owner_id = ?"
)

var (
	// ErrTodoNotFound is returned when a todo does not exist or is not
	// visible to the requesting owner.
	ErrTodoNotFound = errors.New("todo not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create inserts a new todo record.
func Create(db *gorm.DB, t *models.Todo) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Create(t).Error
}

// GetOwned retrieves a todo by id, scoped to the given owner.
// A todo owned by someone else is indistinguishable from a missing one.
func GetOwned(db *gorm.DB, id, ownerID uint64) (*models.Todo, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var t models.Todo
	result := db.Where(ownedQueryPattern, id, ownerID).First(&t)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, result.Error
	}

	return &t, nil
}

// Get retrieves a todo by id without owner scoping. Admin use only.
func Get(db *gorm.DB, id uint64) (*models.Todo, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var t models.Todo
	result := db.First(&t, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, result.Error
	}

	return &t, nil
}

// ListByOwner retrieves all todos owned by the given user.
func ListByOwner(db *gorm.DB, ownerID uint64) ([]models.Todo, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var todos []models.Todo
	result := db.Where("owner_id = ?", ownerID).Find(&todos)
	if result.Error != nil {
		return nil, result.Error
	}

	return todos, nil
}

// ListAll retrieves every todo in the system. Admin use only.
func ListAll(db *gorm.DB) ([]models.Todo, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var todos []models.Todo
	result := db.Find(&todos)
	if result.Error != nil {
		return nil, result.Error
	}

	return todos, nil
}

// UpdateOwned updates the mutable fields of a todo in a single statement
// scoped by owner. The owner reference itself is never touched.
func UpdateOwned(db *gorm.DB, id, ownerID uint64, t *models.Todo) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.Todo{}).
		Where(ownedQueryPattern, id, ownerID).
		Updates(map[string]interface{}{
			"title":       t.Title,
			"description": t.Description,
			"priority":    t.Priority,
			"complete":    t.Complete,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}

	return nil
}

// DeleteOwned deletes a todo in a single statement scoped by owner.
func DeleteOwned(db *gorm.DB, id, ownerID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Where(ownedQueryPattern, id, ownerID).Delete(&models.Todo{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}

	return nil
}

// Delete deletes a todo by id without owner scoping. Admin use only.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Todo{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}

	return nil
}
