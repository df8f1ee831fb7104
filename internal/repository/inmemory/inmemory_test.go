package inmemory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"shortlinks/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLink(code string, now time.Time, expiresIn time.Duration) models.ShortenedLink {
	link := models.ShortenedLink{
		OriginalURL:  "https://example.com/" + code,
		ShortCode:    code,
		CreatedAt:    now,
		LastAccessed: now,
	}
	if expiresIn != 0 {
		expiresAt := now.Add(expiresIn)
		link.ExpiresAt = &expiresAt
	} else {
		link.IsPermanent = true
	}
	return link
}

func TestInmemoryStorage_CreateConcurrentSameCode(t *testing.T) {
	storage := NewStorage()
	now := time.Now().UTC()

	const creators = 16
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		conflicts atomic.Int32
	)

	for i := 0; i < creators; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := storage.ShortenedLinkCreate(context.Background(), newLink("promo", now, time.Hour))
			switch {
			case err == nil:
				successes.Add(1)
			case assert.ErrorIs(t, err, models.ErrConflict):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(creators-1), conflicts.Load())
}

func TestInmemoryStorage_RecordClick(t *testing.T) {
	storage := NewStorage()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	_, err := storage.ShortenedLinkCreate(ctx, newLink("live", now, time.Hour))
	require.NoError(t, err)
	_, err = storage.ShortenedLinkCreate(ctx, newLink("dead", now, time.Minute))
	require.NoError(t, err)

	later := now.Add(2 * time.Minute)

	got, err := storage.ShortenedLinkRecordClick(ctx, "live", later)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Clicks)
	assert.Equal(t, later, got.LastAccessed)

	_, err = storage.ShortenedLinkRecordClick(ctx, "dead", later)
	assert.ErrorIs(t, err, models.ErrUnfound, "expired link must not be resolvable")

	_, err = storage.ShortenedLinkRecordClick(ctx, "missing", later)
	assert.ErrorIs(t, err, models.ErrUnfound)
}

func TestInmemoryStorage_UpdateShortCode(t *testing.T) {
	storage := NewStorage()
	now := time.Now().UTC()
	ctx := context.Background()

	_, err := storage.ShortenedLinkCreate(ctx, newLink("old", now, 0))
	require.NoError(t, err)
	_, err = storage.ShortenedLinkCreate(ctx, newLink("taken", now, 0))
	require.NoError(t, err)

	_, err = storage.ShortenedLinkUpdateShortCode(ctx, "old", "taken")
	assert.ErrorIs(t, err, models.ErrConflict)

	renamed, err := storage.ShortenedLinkUpdateShortCode(ctx, "old", "new")
	require.NoError(t, err)
	assert.Equal(t, "new", renamed.ShortCode)

	_, err = storage.ShortenedLinkGetByShortCode(ctx, "old")
	assert.ErrorIs(t, err, models.ErrUnfound)
}

func TestInmemoryStorage_DeleteExpired(t *testing.T) {
	storage := NewStorage()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	expired := newLink("expired", now.Add(-48*time.Hour), time.Hour)
	stale := newLink("stale", now.Add(-8*24*time.Hour), 0)
	fresh := newLink("fresh", now.Add(-24*time.Hour), 72*time.Hour)

	for _, link := range []models.ShortenedLink{expired, stale, fresh} {
		_, err := storage.ShortenedLinkCreate(ctx, link)
		require.NoError(t, err)
	}

	codes, err := storage.ShortenedLinkDeleteExpired(ctx, now, now.Add(-7*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"expired", "stale"}, codes)

	_, err = storage.ShortenedLinkGetByShortCode(ctx, "fresh")
	assert.NoError(t, err)
}

func TestInmemoryStorage_Users(t *testing.T) {
	storage := NewStorage()
	ctx := context.Background()

	alice, err := storage.UserCreate(ctx, models.User{Username: "alice", Email: "alice@example.com", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), alice.ID)

	_, err = storage.UserCreate(ctx, models.User{Username: "alice", Email: "other@example.com"})
	assert.ErrorIs(t, err, models.ErrUserExists)

	_, err = storage.UserCreate(ctx, models.User{Username: "bob", Email: "alice@example.com"})
	assert.ErrorIs(t, err, models.ErrUserExists)

	got, err := storage.UserGetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice, got)

	_, err = storage.UserGetByID(ctx, 42)
	assert.ErrorIs(t, err, models.ErrUnfound)
}
