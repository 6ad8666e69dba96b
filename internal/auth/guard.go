package auth

import (
	"expensetracker/internal/apperr"
	"expensetracker/internal/models"
)

// RequireAdmin fails with Forbidden unless role is admin.
func RequireAdmin(role string) error {
	if role != models.RoleAdmin {
		return apperr.Forbidden("Admin access required")
	}
	return nil
}

// RequireOwnershipOrAdmin fails with Forbidden unless the requester is an
// admin or owns the resource.
func RequireOwnershipOrAdmin(resourceOwnerID, requesterID uint, role string) error {
	if role == models.RoleAdmin || resourceOwnerID == requesterID {
		return nil
	}
	return apperr.Forbidden("Access denied")
}
