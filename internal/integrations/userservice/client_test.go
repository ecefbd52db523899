package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
	"github.com/m04kA/LocalBiz-BookingService/pkg/logger"
)

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", time.Second, logger.NewNop())
}

func TestAuthenticate(t *testing.T) {
	t.Run("resolves user", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/internal/auth/me", r.URL.Path)
			assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":7,"name":"Admin","email":"admin@example.com","role":"ADMIN"}`))
		})

		user, err := client.Authenticate(context.Background(), "token-1")
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		assert.True(t, user.IsAdmin())
	})

	t.Run("unknown role is a regular user", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":8,"name":"Eve","role":"superuser"}`))
		})

		user, err := client.Authenticate(context.Background(), "token")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, user.Role)
	})

	t.Run("rejected token", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := client.Authenticate(context.Background(), "bad")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("server error", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.Authenticate(context.Background(), "token")
		assert.ErrorIs(t, err, ErrInvalidResponse)
		assert.NotErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("malformed body", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":`))
		})

		_, err := client.Authenticate(context.Background(), "token")
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("unreachable service", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, logger.NewNop())

		_, err := client.Authenticate(context.Background(), "token")
		assert.ErrorIs(t, err, ErrInternal)
	})
}
