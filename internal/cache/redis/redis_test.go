package redis

import (
	"context"
	"testing"
	"time"

	"shortlinks/internal/domain/models"

	"github.com/alicebob/miniredis/v2"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := goRedis.NewClient(&goRedis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return newCacheFromClient(client), srv
}

func TestCache_SetGetDelete(t *testing.T) {
	cache, srv := newTestCache(t)
	ctx := context.Background()

	_, found, err := cache.Get(ctx, "promo")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, "promo", "https://example.com", time.Hour))

	val, err := srv.Get("link:promo")
	require.NoError(t, err, "entries must be stored under the link: prefix")
	assert.Equal(t, "https://example.com", val)

	got, found, err := cache.Get(ctx, "promo")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "https://example.com", got)

	require.NoError(t, cache.Delete(ctx, "promo", "unknown"))
	_, found, err = cache.Get(ctx, "promo")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_TTLBoundsStaleness(t *testing.T) {
	cache, srv := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "promo", "https://example.com", time.Hour))
	assert.Equal(t, time.Hour, srv.TTL("link:promo"))

	srv.FastForward(time.Hour)

	_, found, err := cache.Get(ctx, "promo")
	require.NoError(t, err)
	assert.False(t, found, "entry must be gone once its TTL has elapsed")
}

func TestCache_Unavailable(t *testing.T) {
	cache, srv := newTestCache(t)
	srv.Close()

	ctx := context.Background()

	_, _, err := cache.Get(ctx, "promo")
	assert.ErrorIs(t, err, models.ErrCacheUnavailable)

	err = cache.Set(ctx, "promo", "https://example.com", time.Hour)
	assert.ErrorIs(t, err, models.ErrCacheUnavailable)

	err = cache.Delete(ctx, "promo")
	assert.ErrorIs(t, err, models.ErrCacheUnavailable)
}
