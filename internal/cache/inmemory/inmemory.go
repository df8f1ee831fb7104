package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Не чаще раза в sweepInterval Set вычищает все просроченные записи
const sweepInterval = time.Minute

type entry struct {
	value     string
	expiresAt time.Time
}

// Cache - кэш резолвинга в памяти процесса. Используется, когда Redis не настроен.
// Вытеснения нет, только TTL: просроченная запись удаляется при чтении или очередной чисткой в Set.
type Cache struct {
	mu        sync.RWMutex
	clock     clockwork.Clock
	entries   map[string]entry
	nextSweep time.Time
}

func NewCache(clock clockwork.Clock) *Cache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cache{
		clock:   clock,
		entries: make(map[string]entry),
	}
}

func (c *Cache) Get(ctx context.Context, shortCode string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	c.mu.RLock()
	e, exists := c.entries[shortCode]
	c.mu.RUnlock()

	if !exists {
		return "", false, nil
	}

	if !c.clock.Now().Before(e.expiresAt) {
		c.mu.Lock()
		if current, ok := c.entries[shortCode]; ok && current == e {
			delete(c.entries, shortCode)
		}
		c.mu.Unlock()
		return "", false, nil
	}

	return e.value, true, nil
}

func (c *Cache) Set(ctx context.Context, shortCode, originalURL string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if !now.Before(c.nextSweep) {
		c.sweep(now)
	}

	c.entries[shortCode] = entry{
		value:     originalURL,
		expiresAt: now.Add(ttl),
	}
	return nil
}

// sweep вызывается под c.mu
func (c *Cache) sweep(now time.Time) {
	for code, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, code)
		}
	}
	c.nextSweep = now.Add(sweepInterval)
}

func (c *Cache) Delete(ctx context.Context, shortCodes ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, code := range shortCodes {
		delete(c.entries, code)
	}
	return nil
}

// Len возвращает количество записей, включая еще не вычищенные просроченные.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
