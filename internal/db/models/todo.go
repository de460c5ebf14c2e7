package models

import "time"

// Todo represents a single todo record owned by exactly one user.
// The owner reference is set at creation time and never changes.
type Todo struct {
	// ID is the unique identifier for the todo.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Title is the short summary of the todo.
	Title string `gorm:"size:100;not null" json:"title"`
	// Description holds the longer free-form text of the todo.
	Description string `gorm:"size:500" json:"description"`
	// Priority ranks the todo from 1 (lowest) to 5 (highest).
	Priority int `gorm:"not null" json:"priority"`
	// Complete indicates whether the todo is done.
	Complete bool `gorm:"not null;default:false" json:"complete"`
	// OwnerID is the ID of the user owning this todo (enforced with a foreign key constraint).
	OwnerID uint64 `gorm:"column:owner_id;not null" json:"owner_id"`
	// Owner is the associated user record.
	Owner User `gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE" json:"-"`
	// CreatedAt is the timestamp when the todo was created (managed by GORM).
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the timestamp when the todo was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the database table name for the Todo model.
func (Todo) TableName() string {
	return "todos"
}
