// Package identity resolves the current user and implements the sharing
// primitives: grant access by email, change a collaborator's role, revoke.
package identity

import (
	"context"

	"github.com/octaltask/octaltask/internal/models"
)

// Item types sharing primitives operate on.
const (
	ItemTask = "task"
	ItemList = "list"
)

// Provider is the boundary the state container depends on. CurrentUser
// returns nil when nobody is authenticated.
type Provider interface {
	CurrentUser() *models.User
	ShareWithUser(ctx context.Context, itemID, itemType, email string, role models.Role) (models.SharedUser, error)
	UpdateUserPermission(ctx context.Context, itemID, itemType, userID string, role models.Role) error
	RemoveUserAccess(ctx context.Context, itemID, itemType, userID string) error
}

// Anonymous is the actor stamped on records when no user is authenticated.
func Anonymous() models.User {
	return models.User{ID: "anonymous", Name: "Anonymous"}
}
