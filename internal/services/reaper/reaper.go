package reaper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shortlinks/internal/metrics"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

const (
	DefaultInterval   = 5 * time.Minute
	DefaultStaleAfter = 7 * 24 * time.Hour
)

//go:generate mockgen -source=reaper.go -destination=../../mocks/mock_reaper.go -package=mocks
type ReapStorage interface {
	// ShortenedLinkDeleteExpired удаляет ссылки с expires_at < now или last_accessed < staleBefore
	// и возвращает их коды.
	ShortenedLinkDeleteExpired(ctx context.Context, now, staleBefore time.Time) ([]string, error)
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type CacheInvalidator interface {
	Delete(ctx context.Context, shortCodes ...string) error
}

type Option func(*Reaper)

func WithClock(clock clockwork.Clock) Option {
	return func(r *Reaper) {
		r.clock = clock
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Reaper) {
		r.metrics = m
	}
}

func WithInterval(interval time.Duration) Option {
	return func(r *Reaper) {
		r.interval = interval
	}
}

func WithStaleAfter(d time.Duration) Option {
	return func(r *Reaper) {
		r.staleAfter = d
	}
}

// Reaper периодически удаляет истекшие и давно не открывавшиеся ссылки
type Reaper struct {
	storage    ReapStorage
	cache      CacheInvalidator
	log        *zerolog.Logger
	clock      clockwork.Clock
	metrics    *metrics.Metrics
	interval   time.Duration
	staleAfter time.Duration
}

// NewReaper создает фоновый чистильщик. cache может быть nil.
func NewReaper(storage ReapStorage, cache CacheInvalidator, log *zerolog.Logger, opts ...Option) *Reaper {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	r := &Reaper{
		storage:    storage,
		cache:      cache,
		log:        log,
		clock:      clockwork.NewRealClock(),
		interval:   DefaultInterval,
		staleAfter: DefaultStaleAfter,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunOnce выполняет один цикл: удаление одной транзакцией, затем сброс кэша.
// Неудачная транзакция откатывается целиком, ссылки остаются до следующего цикла.
func (r *Reaper) RunOnce(ctx context.Context) (int, error) {
	now := r.clock.Now().UTC()
	staleBefore := now.Add(-r.staleAfter)

	var codes []string
	err := r.storage.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		codes, err = r.storage.ShortenedLinkDeleteExpired(ctx, now, staleBefore)
		return err
	})
	if err != nil {
		r.metrics.ReaperRun(0, err)
		return 0, fmt.Errorf("failed to reap links: %w", err)
	}

	// сброс кэша после коммита. Ошибка не фатальна: запись истечет по TTL,
	// а резолв все равно проверяет ссылку в хранилище.
	if len(codes) > 0 && r.cache != nil {
		if err := r.cache.Delete(ctx, codes...); err != nil {
			r.metrics.CacheError("delete")
			r.log.Warn().Err(err).Int("count", len(codes)).Msg("reaper: cache invalidation failed")
		}
	}

	r.metrics.ReaperRun(len(codes), nil)
	r.log.Info().
		Int("deleted", len(codes)).
		Time("stale_before", staleBefore).
		Msg("reaper cycle finished")

	return len(codes), nil
}

// Run запускает цикл по тикеру и блокируется до отмены ctx.
// Ошибки цикла логируются, следующая попытка - на следующем тике.
func (r *Reaper) Run(ctx context.Context) error {
	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Info().Dur("interval", r.interval).Dur("stale_after", r.staleAfter).Msg("reaper started")

	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("reaper stopped")
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.Chan():
			if _, err := r.RunOnce(ctx); err != nil {
				if ctx.Err() != nil {
					continue
				}
				r.log.Error().Err(err).Msg("reaper cycle failed")
			}
		}
	}
}
