package auth

import (
	"context"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
	"github.com/m04kA/LocalBiz-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/LocalBiz-BookingService/pkg/logger"
)

const testSecret = "test-secret"

func newAuthenticator(t *testing.T) (*JWTAuthenticator, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	a, err := NewJWTAuthenticator(testSecret, store, logger.NewNop())
	require.NoError(t, err)
	return a, store
}

func TestNewJWTAuthenticator_EmptySecret(t *testing.T) {
	_, err := NewJWTAuthenticator("", memory.NewStore(), logger.NewNop())
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestAuthenticate(t *testing.T) {
	a, store := newAuthenticator(t)
	admin := store.AddUser(domain.User{Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin})

	t.Run("valid token", func(t *testing.T) {
		token, err := a.IssueToken(&admin, time.Hour)
		require.NoError(t, err)

		user, err := a.Authenticate(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, admin.ID, user.ID)
		assert.True(t, user.IsAdmin())
	})

	t.Run("role comes from the store", func(t *testing.T) {
		forged := domain.User{ID: admin.ID, Role: domain.RoleUser}
		token, err := a.IssueToken(&forged, time.Hour)
		require.NoError(t, err)

		user, err := a.Authenticate(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, user.Role)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := a.IssueToken(&admin, -time.Minute)
		require.NoError(t, err)

		_, err = a.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewJWTAuthenticator("other-secret", store, logger.NewNop())
		require.NoError(t, err)
		token, err := other.IssueToken(&admin, time.Hour)
		require.NoError(t, err)

		_, err = a.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("unknown user", func(t *testing.T) {
		token, err := a.IssueToken(&domain.User{ID: 999}, time.Hour)
		require.NoError(t, err)

		_, err = a.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("non numeric subject", func(t *testing.T) {
		claims := Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = a.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := a.Authenticate(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}
