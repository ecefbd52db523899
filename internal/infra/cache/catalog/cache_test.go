package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
)

var errNotFound = errors.New("not found")

type countingSource struct {
	businesses map[int64]domain.Business
	calls      int
}

func (s *countingSource) GetBusinessByID(_ context.Context, id int64) (*domain.Business, error) {
	s.calls++
	b, ok := s.businesses[id]
	if !ok {
		return nil, errNotFound
	}
	return &b, nil
}

func (s *countingSource) GetProductByID(context.Context, int64) (*domain.Product, error) {
	s.calls++
	return nil, errNotFound
}

func (s *countingSource) GetServiceByID(_ context.Context, id int64) (*domain.Service, error) {
	s.calls++
	return &domain.Service{ID: id, BusinessID: 2, Name: "Haircut", Duration: "45 min"}, nil
}

func (s *countingSource) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	s.calls++
	return &domain.User{ID: id, Role: domain.RoleUser}, nil
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func newTestCache(t *testing.T) (*Cache, *countingSource, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	source := &countingSource{businesses: map[int64]domain.Business{
		1: {ID: 1, Name: "Business A", Type: domain.BookingTypeTable, TotalTables: 10},
	}}

	return NewCache(source, client, time.Minute, nopLogger{}), source, mr
}

func TestCache_GetBusinessByID_ReadThrough(t *testing.T) {
	cache, source, mr := newTestCache(t)
	ctx := context.Background()

	first, err := cache.GetBusinessByID(ctx, 1)
	require.NoError(t, err)
	second, err := cache.GetBusinessByID(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 10, second.TotalTables)
	assert.Equal(t, 1, source.calls)
	assert.True(t, mr.Exists("localbiz:catalog:business:1"))

	mr.FastForward(2 * time.Minute)
	_, err = cache.GetBusinessByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}

func TestCache_NotFoundIsNotCached(t *testing.T) {
	cache, source, mr := newTestCache(t)
	ctx := context.Background()

	_, err := cache.GetBusinessByID(ctx, 99)
	assert.ErrorIs(t, err, errNotFound)
	_, err = cache.GetBusinessByID(ctx, 99)
	assert.ErrorIs(t, err, errNotFound)

	assert.Equal(t, 2, source.calls)
	assert.False(t, mr.Exists("localbiz:catalog:business:99"))
}

func TestCache_RedisDownFallsThrough(t *testing.T) {
	cache, source, mr := newTestCache(t)
	mr.Close()

	service, err := cache.GetServiceByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Haircut", service.Name)
	assert.Equal(t, 1, source.calls)
}

func TestCache_Invalidate(t *testing.T) {
	cache, source, _ := newTestCache(t)
	ctx := context.Background()

	_, err := cache.GetBusinessByID(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx, "business", 1))
	_, err = cache.GetBusinessByID(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, source.calls)
}

func TestCache_UsersBypassCache(t *testing.T) {
	cache, source, _ := newTestCache(t)

	for i := 0; i < 2; i++ {
		_, err := cache.GetUserByID(context.Background(), 1)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, source.calls)
}
