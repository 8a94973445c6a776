package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"shakwa-backend/internal/domain"
)

func TestCanAccess(t *testing.T) {
	ownerID := uuid.New()

	t.Run("Admin Accesses Any Record", func(t *testing.T) {
		admin := &domain.User{ID: uuid.New(), UserType: domain.UserTypeAdmin}
		assert.True(t, canAccess(admin, ownerID))
	})

	t.Run("Owner Accesses Own Record", func(t *testing.T) {
		owner := &domain.User{ID: ownerID, UserType: domain.UserTypeCitizen}
		assert.True(t, canAccess(owner, ownerID))
	})

	t.Run("Citizen Denied Foreign Record", func(t *testing.T) {
		other := &domain.User{ID: uuid.New(), UserType: domain.UserTypeCitizen}
		assert.False(t, canAccess(other, ownerID))
	})

	t.Run("Nil Actor Denied", func(t *testing.T) {
		assert.False(t, canAccess(nil, ownerID))
	})
}

func TestScopeToOwner(t *testing.T) {
	t.Run("Citizen Filter Forced To Self", func(t *testing.T) {
		citizen := &domain.User{ID: uuid.New(), UserType: domain.UserTypeCitizen}
		foreign := uuid.New()
		filter := domain.ComplaintFilter{UserID: &foreign}

		scopeToOwner(citizen, &filter)

		assert.Equal(t, citizen.ID, *filter.UserID)
	})

	t.Run("Admin Filter Untouched", func(t *testing.T) {
		admin := &domain.User{ID: uuid.New(), UserType: domain.UserTypeAdmin}
		target := uuid.New()
		filter := domain.ComplaintFilter{UserID: &target}

		scopeToOwner(admin, &filter)

		assert.Equal(t, target, *filter.UserID)
	})

	t.Run("Admin Unfiltered Stays Unfiltered", func(t *testing.T) {
		admin := &domain.User{ID: uuid.New(), UserType: domain.UserTypeAdmin}
		filter := domain.ComplaintFilter{}

		scopeToOwner(admin, &filter)

		assert.Nil(t, filter.UserID)
	})
}
