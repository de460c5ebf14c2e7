package todo

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoTodoAPI/GoTodoAPI/internal/db/models"
)

const (
	aliceID uint64 = 1
	bobID   uint64 = 2
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open sqlite in-memory db")

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Todo{}), "failed to migrate models")

	users := []models.User{
		{ID: aliceID, Active: true, Username: "alice", Email: "alice@example.com", Role: models.RoleUser},
		{ID: bobID, Active: true, Username: "bob", Email: "bob@example.com", Role: models.RoleUser},
	}
	require.NoError(t, db.Create(&users).Error)

	return db
}

func seedTodo(t *testing.T, db *gorm.DB, ownerID uint64, title string) *models.Todo {
	t.Helper()

	todo := &models.Todo{
		Title:       title,
		Description: "seeded for tests",
		Priority:    3,
		OwnerID:     ownerID,
	}
	require.NoError(t, Create(db, todo))

	return todo
}

func TestNilDB(t *testing.T) {
	assert.ErrorIs(t, Create(nil, &models.Todo{}), ErrDBNil)

	_, err := GetOwned(nil, 1, 1)
	assert.ErrorIs(t, err, ErrDBNil)

	_, err = ListAll(nil)
	assert.ErrorIs(t, err, ErrDBNil)

	assert.ErrorIs(t, Delete(nil, 1), ErrDBNil)
}

func TestGetOwnedScoping(t *testing.T) {
	db := newTestDB(t)
	todo := seedTodo(t, db, aliceID, "alice's todo")

	got, err := GetOwned(db, todo.ID, aliceID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, got.ID)

	// another owner's scoped lookup behaves exactly like a missing record
	_, err = GetOwned(db, todo.ID, bobID)
	assert.ErrorIs(t, err, ErrTodoNotFound)

	_, err = GetOwned(db, 9999, aliceID)
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestGetUnscoped(t *testing.T) {
	db := newTestDB(t)
	todo := seedTodo(t, db, aliceID, "alice's todo")

	got, err := Get(db, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, aliceID, got.OwnerID)

	_, err = Get(db, 9999)
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestListByOwner(t *testing.T) {
	db := newTestDB(t)
	seedTodo(t, db, aliceID, "one")
	seedTodo(t, db, aliceID, "two")
	seedTodo(t, db, bobID, "bob's")

	aliceTodos, err := ListByOwner(db, aliceID)
	require.NoError(t, err)
	assert.Len(t, aliceTodos, 2)

	for _, todo := range aliceTodos {
		assert.Equal(t, aliceID, todo.OwnerID)
	}

	all, err := ListAll(db)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateOwned(t *testing.T) {
	db := newTestDB(t)
	todo := seedTodo(t, db, aliceID, "before")

	update := &models.Todo{Title: "after", Description: "changed text", Priority: 5, Complete: true}

	require.NoError(t, UpdateOwned(db, todo.ID, aliceID, update))

	got, err := GetOwned(db, todo.ID, aliceID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, 5, got.Priority)
	assert.True(t, got.Complete)
	assert.Equal(t, aliceID, got.OwnerID, "owner must never change")

	// scoped update against a foreign owner touches nothing
	err = UpdateOwned(db, todo.ID, bobID, &models.Todo{Title: "hijacked", Description: "x", Priority: 1})
	assert.ErrorIs(t, err, ErrTodoNotFound)

	got, err = GetOwned(db, todo.ID, aliceID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
}

func TestUpdateOwnedCanClearComplete(t *testing.T) {
	db := newTestDB(t)
	todo := seedTodo(t, db, aliceID, "flagged")

	require.NoError(t, UpdateOwned(db, todo.ID, aliceID, &models.Todo{
		Title: "flagged", Description: "still here", Priority: 3, Complete: true,
	}))

	require.NoError(t, UpdateOwned(db, todo.ID, aliceID, &models.Todo{
		Title: "flagged", Description: "still here", Priority: 3, Complete: false,
	}))

	got, err := GetOwned(db, todo.ID, aliceID)
	require.NoError(t, err)
	assert.False(t, got.Complete)
}

func TestDeleteOwned(t *testing.T) {
	db := newTestDB(t)
	todo := seedTodo(t, db, aliceID, "doomed")

	// foreign owner cannot delete, record stays
	assert.ErrorIs(t, DeleteOwned(db, todo.ID, bobID), ErrTodoNotFound)

	_, err := GetOwned(db, todo.ID, aliceID)
	require.NoError(t, err)

	require.NoError(t, DeleteOwned(db, todo.ID, aliceID))

	_, err = GetOwned(db, todo.ID, aliceID)
	assert.ErrorIs(t, err, ErrTodoNotFound)

	// deleting again reports not found
	assert.ErrorIs(t, DeleteOwned(db, todo.ID, aliceID), ErrTodoNotFound)
}

func TestDeleteUnscoped(t *testing.T) {
	db := newTestDB(t)
	todo := seedTodo(t, db, aliceID, "admin target")

	require.NoError(t, Delete(db, todo.ID))
	assert.ErrorIs(t, Delete(db, todo.ID), ErrTodoNotFound)
}
