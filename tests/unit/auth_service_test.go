package unit_test

import (
	"context"
	"testing"
	"time"

	"shakwa-backend/internal/config"
	"shakwa-backend/internal/domain"
	"shakwa-backend/internal/service"
	"shakwa-backend/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTAccessSecret:  "test-access-secret",
		JWTRefreshSecret: "test-refresh-secret",
		JWTAccessExpiry:  time.Hour,
		JWTRefreshExpiry: 24 * time.Hour,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	input := domain.RegisterInput{
		NationalID: "1234567890",
		FullName:   "Ahmed Hassan",
		Phone:      "0501234567",
		Password:   "password123",
	}

	t.Run("Success", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := service.NewAuthService(mockUserRepo, testAuthConfig())

		mockUserRepo.On("ExistsByNationalID", ctx, "1234567890").Return(false, nil).Once()
		mockUserRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.NationalID == "1234567890" &&
				u.UserType == domain.UserTypeCitizen &&
				u.IsActive &&
				u.PasswordHash != "password123"
		})).Return(nil).Once()

		user, tokens, err := svc.Register(ctx, input)

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.Equal(t, int64(3600), tokens.ExpiresIn)

		mockUserRepo.AssertExpectations(t)
	})

	t.Run("Duplicate National ID", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := service.NewAuthService(mockUserRepo, testAuthConfig())

		mockUserRepo.On("ExistsByNationalID", ctx, "1234567890").Return(true, nil).Once()

		user, tokens, err := svc.Register(ctx, input)

		assert.ErrorIs(t, err, service.ErrNationalIDExists)
		assert.Nil(t, user)
		assert.Nil(t, tokens)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	activeUser := &domain.User{
		ID:           uuid.New(),
		NationalID:   "1234567890",
		PasswordHash: string(hash),
		UserType:     domain.UserTypeCitizen,
		IsActive:     true,
	}

	t.Run("Success", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := service.NewAuthService(mockUserRepo, testAuthConfig())

		mockUserRepo.On("GetByNationalID", ctx, "1234567890").Return(activeUser, nil).Once()

		user, tokens, err := svc.Login(ctx, domain.LoginInput{NationalID: "1234567890", Password: "password123"})

		assert.NoError(t, err)
		assert.Equal(t, activeUser.ID, user.ID)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("Unknown National ID", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := service.NewAuthService(mockUserRepo, testAuthConfig())

		mockUserRepo.On("GetByNationalID", ctx, "0000000000").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{NationalID: "0000000000", Password: "password123"})

		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := service.NewAuthService(mockUserRepo, testAuthConfig())

		mockUserRepo.On("GetByNationalID", ctx, "1234567890").Return(activeUser, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{NationalID: "1234567890", Password: "wrong"})

		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("Inactive Account", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := service.NewAuthService(mockUserRepo, testAuthConfig())

		inactive := *activeUser
		inactive.IsActive = false
		mockUserRepo.On("GetByNationalID", ctx, "1234567890").Return(&inactive, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{NationalID: "1234567890", Password: "password123"})

		assert.ErrorIs(t, err, service.ErrAccountInactive)
	})
}

func TestAuthService_TokenPair(t *testing.T) {
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &domain.User{
		ID:           uuid.New(),
		NationalID:   "1234567890",
		FullName:     "Ahmed Hassan",
		PasswordHash: string(hash),
		UserType:     domain.UserTypeAdmin,
		IsActive:     true,
	}

	mockUserRepo := new(mocks.UserRepository)
	svc := service.NewAuthService(mockUserRepo, testAuthConfig())

	mockUserRepo.On("GetByNationalID", ctx, "1234567890").Return(user, nil).Once()
	_, tokens, err := svc.Login(ctx, domain.LoginInput{NationalID: "1234567890", Password: "password123"})
	assert.NoError(t, err)

	t.Run("Access Token Carries Identity", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(tokens.AccessToken)

		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, "1234567890", claims.NationalID)
		assert.Equal(t, "admin", claims.UserType)
	})

	t.Run("Refresh Token Rejected As Access Token", func(t *testing.T) {
		// Signed with a different secret, so it must never pass access
		// validation.
		_, err := svc.ValidateAccessToken(tokens.RefreshToken)

		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("Refresh Rotates Pair", func(t *testing.T) {
		mockUserRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()

		rotated, err := svc.RefreshToken(ctx, tokens.RefreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, rotated.AccessToken)
		assert.NotEmpty(t, rotated.RefreshToken)
	})

	t.Run("Access Token Rejected As Refresh Token", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, tokens.AccessToken)

		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})
}

func TestAuthService_ValidateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Inactive User Rejected", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := service.NewAuthService(mockUserRepo, testAuthConfig())

		id := uuid.New()
		mockUserRepo.On("GetByID", ctx, id).Return(&domain.User{ID: id, IsActive: false}, nil).Once()

		user, err := svc.ValidateUser(ctx, id)

		assert.ErrorIs(t, err, service.ErrAccountInactive)
		assert.Nil(t, user)
	})

	t.Run("Missing User Rejected", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := service.NewAuthService(mockUserRepo, testAuthConfig())

		id := uuid.New()
		mockUserRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		user, err := svc.ValidateUser(ctx, id)

		assert.ErrorIs(t, err, service.ErrUserNotFound)
		assert.Nil(t, user)
	})
}
