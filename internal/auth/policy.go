package auth

import (
	"github.com/GoTodoAPI/GoTodoAPI/internal/db/models"
)

// Action enumerates the operations the authorization policy decides on.
type Action string

const (
	// ActionCreate creates a todo owned by the caller.
	ActionCreate Action = "create"
	// ActionRead reads a single todo.
	ActionRead Action = "read"
	// ActionUpdate updates a single todo.
	ActionUpdate Action = "update"
	// ActionDelete deletes a single todo.
	ActionDelete Action = "delete"
	// ActionReadAll reads every todo in the system.
	ActionReadAll Action = "read-all"
	// ActionDeleteAny deletes a todo regardless of owner.
	ActionDeleteAny Action = "delete-any"
)

// Can decides whether the identity may perform the action on the given todo.
// It is a pure function: the role comes exclusively from validated token
// claims and the ownership comparison uses the stored owner reference.
//
// Regular users may read, update and delete only todos they own. Creating
// is allowed for any authenticated identity; the created todo's owner is
// forced to the caller's id elsewhere, so no owner check applies here.
// Read-all and delete-any require the admin role.
func Can(identity Identity, action Action, t *models.Todo) bool {
	switch action {
	case ActionCreate:
		return true
	case ActionRead, ActionUpdate, ActionDelete:
		return t != nil && t.OwnerID == identity.ID
	case ActionReadAll, ActionDeleteAny:
		return identity.IsAdmin()
	default:
		return false
	}
}
