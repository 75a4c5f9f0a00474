package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davisxavier1984/papprefeito/internal/config"
	"github.com/davisxavier1984/papprefeito/internal/utils"
	"github.com/davisxavier1984/papprefeito/pkg/user"
)

func newTestAuth(t *testing.T) (*ServiceImpl, *utils.MockClock) {
	t.Helper()
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	userService := user.NewService(user.NewStubRepo(), clock)
	_, err := userService.Create(context.Background(), user.User{Username: "maria"}, "correct-horse")
	require.NoError(t, err)

	cfg := config.Auth{TokenTTLMinutes: 60, RefreshTTLHours: 24}
	return NewService(NewStubSessionRepo(), userService, clock, cfg), clock
}

func TestLogin(t *testing.T) {
	t.Run("should open a session with valid credentials", func(t *testing.T) {
		// given
		service, clock := newTestAuth(t)

		// when
		session, authenticated, err := service.Login(context.Background(), "maria", "correct-horse")

		// then
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.NotEmpty(t, session.RefreshToken)
		assert.Equal(t, "maria", authenticated.Username)
		assert.Equal(t, clock.Now().Add(time.Hour), session.ExpiresAt)
	})

	t.Run("should reject wrong credentials", func(t *testing.T) {
		// given
		service, _ := newTestAuth(t)

		// when
		_, _, err := service.Login(context.Background(), "maria", "wrong-password")

		// then
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Run("should resolve a valid token to its user", func(t *testing.T) {
		// given
		service, _ := newTestAuth(t)
		session, _, err := service.Login(context.Background(), "maria", "correct-horse")
		require.NoError(t, err)

		// when
		authenticated, err := service.Authenticate(context.Background(), session.Token)

		// then
		require.NoError(t, err)
		assert.Equal(t, "maria", authenticated.Username)
	})

	t.Run("should reject an unknown token", func(t *testing.T) {
		// given
		service, _ := newTestAuth(t)

		// when
		_, err := service.Authenticate(context.Background(), "not-a-token")

		// then
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		// given
		service, clock := newTestAuth(t)
		session, _, err := service.Login(context.Background(), "maria", "correct-horse")
		require.NoError(t, err)

		// when the access token TTL elapses
		clock.SetNow(clock.Now().Add(2 * time.Hour))
		_, err = service.Authenticate(context.Background(), session.Token)

		// then
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestRefresh(t *testing.T) {
	t.Run("should rotate the session", func(t *testing.T) {
		// given
		service, _ := newTestAuth(t)
		session, _, err := service.Login(context.Background(), "maria", "correct-horse")
		require.NoError(t, err)

		// when
		rotated, err := service.Refresh(context.Background(), session.RefreshToken)

		// then
		require.NoError(t, err)
		assert.NotEqual(t, session.Token, rotated.Token)
		assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

		// and the old access token no longer works
		_, err = service.Authenticate(context.Background(), session.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("should reject an expired refresh token", func(t *testing.T) {
		// given
		service, clock := newTestAuth(t)
		session, _, err := service.Login(context.Background(), "maria", "correct-horse")
		require.NoError(t, err)

		// when the refresh TTL elapses
		clock.SetNow(clock.Now().Add(25 * time.Hour))
		_, err = service.Refresh(context.Background(), session.RefreshToken)

		// then
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestLogout(t *testing.T) {
	t.Run("should invalidate the session", func(t *testing.T) {
		// given
		service, _ := newTestAuth(t)
		session, _, err := service.Login(context.Background(), "maria", "correct-horse")
		require.NoError(t, err)

		// when
		err = service.Logout(context.Background(), session.Token)

		// then
		require.NoError(t, err)
		_, err = service.Authenticate(context.Background(), session.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("should fail for an unknown token", func(t *testing.T) {
		// given
		service, _ := newTestAuth(t)

		// when
		err := service.Logout(context.Background(), "not-a-token")

		// then
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
