package handler

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shakwa-backend/internal/service"
)

func TestMapAuthError(t *testing.T) {
	t.Run("Inactive Account Is Unauthorized", func(t *testing.T) {
		mapped := mapAuthError(service.ErrAccountInactive)

		fiberErr, ok := mapped.(*fiber.Error)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusUnauthorized, fiberErr.Code)
	})

	t.Run("Bad Credentials Are Unauthorized", func(t *testing.T) {
		mapped := mapAuthError(service.ErrInvalidCredentials)

		fiberErr, ok := mapped.(*fiber.Error)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusUnauthorized, fiberErr.Code)
	})

	t.Run("Invalid Token Is Unauthorized", func(t *testing.T) {
		for _, err := range []error{service.ErrInvalidToken, service.ErrUserNotFound} {
			mapped := mapAuthError(err)

			fiberErr, ok := mapped.(*fiber.Error)
			require.True(t, ok)
			assert.Equal(t, fiber.StatusUnauthorized, fiberErr.Code)
		}
	})

	t.Run("Unknown Errors Pass Through", func(t *testing.T) {
		plain := errors.New("boom")
		assert.Equal(t, plain, mapAuthError(plain))
	})
}
