package service

import (
	"errors"

	"github.com/google/uuid"

	"shakwa-backend/internal/domain"
)

var ErrAccessDenied = errors.New("access denied")

// canAccess is the single ownership gate applied to every per-record read and
// write: admins see everything, citizens only their own records.
func canAccess(actor *domain.User, ownerID uuid.UUID) bool {
	if actor == nil {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	return actor.ID == ownerID
}

// scopeToOwner forces the owner filter for non-admin actors so a citizen's
// list queries can never widen beyond their own complaints.
func scopeToOwner(actor *domain.User, filter *domain.ComplaintFilter) {
	if actor != nil && !actor.IsAdmin() {
		filter.UserID = &actor.ID
	}
}
