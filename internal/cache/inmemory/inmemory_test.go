package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_TTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cache := NewCache(clock)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "promo", "https://example.com", time.Hour))

	clock.Advance(59 * time.Minute)
	got, found, err := cache.Get(ctx, "promo")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "https://example.com", got)

	clock.Advance(time.Minute)
	_, found, err = cache.Get(ctx, "promo")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, cache.Len(), "expired entry is dropped on read")
}

func TestCache_Delete(t *testing.T) {
	cache := NewCache(clockwork.NewFakeClock())
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", "https://a.example", time.Hour))
	require.NoError(t, cache.Set(ctx, "b", "https://b.example", time.Hour))

	require.NoError(t, cache.Delete(ctx, "a", "missing"))

	_, found, _ := cache.Get(ctx, "a")
	assert.False(t, found)
	_, found, _ = cache.Get(ctx, "b")
	assert.True(t, found)
}

func TestCache_SetSweepsExpired(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cache := NewCache(clock)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "old1", "https://a.example", time.Minute))
	require.NoError(t, cache.Set(ctx, "old2", "https://b.example", time.Minute))
	require.NoError(t, cache.Set(ctx, "live", "https://c.example", time.Hour))

	// записи никто не читает, но следующий Set после интервала чистки их убирает
	clock.Advance(2 * time.Minute)
	assert.Equal(t, 3, cache.Len())

	require.NoError(t, cache.Set(ctx, "fresh", "https://d.example", time.Hour))
	assert.Equal(t, 2, cache.Len())

	_, found, err := cache.Get(ctx, "live")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestCache_SweepIsThrottled(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cache := NewCache(clock)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "short", "https://a.example", time.Second))

	// интервал чистки еще не прошел
	clock.Advance(2 * time.Second)
	require.NoError(t, cache.Set(ctx, "other", "https://b.example", time.Hour))
	assert.Equal(t, 2, cache.Len())

	clock.Advance(sweepInterval)
	require.NoError(t, cache.Set(ctx, "third", "https://c.example", time.Hour))
	assert.Equal(t, 2, cache.Len())
}
