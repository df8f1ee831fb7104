package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cacheinmemory "shortlinks/internal/cache/inmemory"
	cacheredis "shortlinks/internal/cache/redis"
	"shortlinks/internal/config"
	"shortlinks/internal/http/server"
	"shortlinks/internal/logger"
	"shortlinks/internal/metrics"
	"shortlinks/internal/repository"
	"shortlinks/internal/services/auth"
	"shortlinks/internal/services/reaper"
	"shortlinks/internal/services/url_shortener"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type linkCache interface {
	url_shortener.Cache
	Close() error
}

type nopCloser struct {
	*cacheinmemory.Cache
}

func (nopCloser) Close() error { return nil }

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	log := logger.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log *zerolog.Logger) error {
	if cfg.GeneratedJWTSecret {
		log.Warn().Msg("Using auto-generated JWT secret key. For production, set JWT_SECRET_KEY environment variable.")
	}

	storage, err := repository.NewStorage(ctx, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close storage")
		}
	}()
	if cfg.DatabaseDSN == "" {
		log.Warn().Msg("DATABASE_DSN is empty, links are kept in memory")
	}

	clock := clockwork.NewRealClock()

	cache, err := newCache(ctx, cfg, clock, log)
	if err != nil {
		return fmt.Errorf("failed to init cache: %w", err)
	}
	defer func() {
		if err := cache.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close cache")
		}
	}()

	m := metrics.New()

	svc := url_shortener.NewServiceURLShortener(storage, cache, log, cfg.BaseURL,
		url_shortener.WithClock(clock),
		url_shortener.WithMetrics(m),
		url_shortener.WithCacheTTL(cfg.CacheTTL),
		url_shortener.WithAnonymousTTL(cfg.AnonymousLinkTTL),
	)

	authService, err := auth.NewAuthentication(storage, log, cfg.JWTSecretKey, cfg.JWTAccessExpire,
		auth.WithClock(clock))
	if err != nil {
		return fmt.Errorf("failed to init auth: %w", err)
	}

	linkReaper := reaper.NewReaper(storage, cache, log,
		reaper.WithClock(clock),
		reaper.WithMetrics(m),
		reaper.WithInterval(cfg.ReaperInterval),
		reaper.WithStaleAfter(cfg.StaleAfter),
	)

	// первый проход до начала обслуживания запросов
	if _, err := linkReaper.RunOnce(ctx); err != nil {
		log.Error().Err(err).Msg("startup reap failed, will retry on schedule")
	}

	srv, err := server.NewServer(log, *cfg, svc, authService, m.Handler())
	if err != nil {
		return fmt.Errorf("failed to init server: %w", err)
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		return srv.Start()
	})

	eg.Go(func() error {
		return linkReaper.Run(egCtx)
	})

	eg.Go(func() error {
		<-egCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newCache подключает Redis, если задан адрес, иначе кэш живет в памяти процесса
func newCache(ctx context.Context, cfg *config.Config, clock clockwork.Clock, log *zerolog.Logger) (linkCache, error) {
	if cfg.RedisAddr == "" {
		log.Info().Msg("REDIS_ADDR is empty, using in-memory resolution cache")
		return nopCloser{cacheinmemory.NewCache(clock)}, nil
	}

	cache, err := cacheredis.NewCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, err
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("connected to Redis")
	return cache, nil
}
