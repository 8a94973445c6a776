package unit_test

import (
	"context"
	"testing"

	"shakwa-backend/internal/domain"
	"shakwa-backend/internal/service"
	"shakwa-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)

	t.Run("Success", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		storage := new(mocks.StorageService)
		svc := service.NewUserService(userRepo, storage)

		actor := citizen()
		stored := &domain.User{ID: actor.ID, PasswordHash: string(hash)}

		userRepo.On("GetByID", ctx, actor.ID).Return(stored, nil).Once()
		userRepo.On("UpdatePassword", ctx, actor.ID, mock.MatchedBy(func(newHash string) bool {
			return bcrypt.CompareHashAndPassword([]byte(newHash), []byte("newpassword1")) == nil
		})).Return(nil).Once()

		err := svc.ChangePassword(ctx, actor, domain.ChangePasswordInput{
			OldPassword: "oldpassword",
			NewPassword: "newpassword1",
		})

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("Wrong Old Password", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		storage := new(mocks.StorageService)
		svc := service.NewUserService(userRepo, storage)

		actor := citizen()
		stored := &domain.User{ID: actor.ID, PasswordHash: string(hash)}

		userRepo.On("GetByID", ctx, actor.ID).Return(stored, nil).Once()

		err := svc.ChangePassword(ctx, actor, domain.ChangePasswordInput{
			OldPassword: "guess",
			NewPassword: "newpassword1",
		})

		assert.ErrorIs(t, err, service.ErrWrongPassword)
		userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserService_SetActive(t *testing.T) {
	ctx := context.Background()

	t.Run("Self Deactivation Rejected", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		storage := new(mocks.StorageService)
		svc := service.NewUserService(userRepo, storage)

		actor := admin()

		err := svc.SetActive(ctx, actor, actor.ID, false)

		assert.ErrorIs(t, err, service.ErrSelfDeactivation)
		userRepo.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Deactivate Other User", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		storage := new(mocks.StorageService)
		svc := service.NewUserService(userRepo, storage)

		actor := admin()
		target := citizen()

		userRepo.On("GetByID", ctx, target.ID).Return(target, nil).Once()
		userRepo.On("SetActive", ctx, target.ID, false).Return(nil).Once()

		err := svc.SetActive(ctx, actor, target.ID, false)

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Citizen Cannot Change Role", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		storage := new(mocks.StorageService)
		svc := service.NewUserService(userRepo, storage)

		actor := citizen()
		stored := &domain.User{ID: actor.ID, UserType: domain.UserTypeCitizen}
		adminType := domain.UserTypeAdmin

		userRepo.On("GetByID", ctx, actor.ID).Return(stored, nil).Once()

		user, err := svc.Update(ctx, actor, actor.ID, domain.UpdateUserInput{UserType: &adminType})

		assert.ErrorIs(t, err, service.ErrAccessDenied)
		assert.Nil(t, user)
	})

	t.Run("Citizen Cannot Touch Foreign Profile", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		storage := new(mocks.StorageService)
		svc := service.NewUserService(userRepo, storage)

		actor := citizen()
		other := citizen()
		name := "New Name"

		user, err := svc.Update(ctx, actor, other.ID, domain.UpdateUserInput{FullName: &name})

		assert.ErrorIs(t, err, service.ErrAccessDenied)
		assert.Nil(t, user)
		userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}
