package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shortlinks/internal/domain/models"

	goRedis "github.com/redis/go-redis/v9"
)

const (
	keyPrefix   = "link:"
	pingTimeout = 3 * time.Second
)

// Cache - кэш резолвинга short code -> original URL поверх Redis.
// Любая ошибка Redis оборачивается в models.ErrCacheUnavailable.
type Cache struct {
	client goRedis.UniversalClient
}

func NewCache(ctx context.Context, addr, password string, db int) (*Cache, error) {
	client := goRedis.NewClient(&goRedis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctxPing, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctxPing).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis connect failed: %w", models.ErrCacheUnavailable, err)
	}
	return &Cache{client: client}, nil
}

func newCacheFromClient(client goRedis.UniversalClient) *Cache {
	return &Cache{client: client}
}

func Key(shortCode string) string {
	return keyPrefix + shortCode
}

func (c *Cache) Get(ctx context.Context, shortCode string) (string, bool, error) {
	val, err := c.client.Get(ctx, Key(shortCode)).Result()
	if errors.Is(err, goRedis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: get: %w", models.ErrCacheUnavailable, err)
	}
	return val, true, nil
}

func (c *Cache) Set(ctx context.Context, shortCode, originalURL string, ttl time.Duration) error {
	if err := c.client.Set(ctx, Key(shortCode), originalURL, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %w", models.ErrCacheUnavailable, err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, shortCodes ...string) error {
	if len(shortCodes) == 0 {
		return nil
	}

	keys := make([]string, len(shortCodes))
	for i, code := range shortCodes {
		keys[i] = Key(code)
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: del: %w", models.ErrCacheUnavailable, err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}
