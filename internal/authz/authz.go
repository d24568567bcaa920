// Package authz decides whether an actor may act on a resource owned by a user.
package authz

import (
	"github.com/google/uuid"

	"ecommerce-platform/internal/models"
)

// Authorize allows admins and the resource owner, and denies everyone else
func Authorize(actor models.Actor, ownerID uuid.UUID) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.UserID != uuid.Nil && actor.UserID == ownerID {
		return nil
	}
	return models.Unauthorized("Not authorized to access this route")
}

// RequireRole allows the actor only if it holds one of roles
func RequireRole(actor models.Actor, roles ...models.UserRole) error {
	for _, role := range roles {
		if actor.Role == role {
			return nil
		}
	}
	return models.Unauthorized("Unauthorized to access this route")
}
