package url_shortener

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"regexp"
	"strings"
	"time"

	"shortlinks/internal/domain/models"
	"shortlinks/internal/metrics"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

/*
URLStorage - хранилище ссылок, источник истины.
Cache - кэш short code -> original URL, только подсказка: при расхождении прав всегда URLStorage.
*/

//go:generate mockgen -source=url_shortener.go -destination=../../mocks/mock_url_storage.go -package=mocks
type URLStorage interface {
	ShortenedLinkCreate(ctx context.Context, link models.ShortenedLink) (models.ShortenedLink, error)
	ShortenedLinkGetByShortCode(ctx context.Context, shortCode string) (models.ShortenedLink, error)
	ShortenedLinkRecordClick(ctx context.Context, shortCode string, now time.Time) (models.ShortenedLink, error)
	ShortenedLinkUpdateShortCode(ctx context.Context, oldCode, newCode string) (models.ShortenedLink, error)
	ShortenedLinkUpdateExpiry(ctx context.Context, shortCode string, expiresAt time.Time) (models.ShortenedLink, error)
	ShortenedLinkDelete(ctx context.Context, shortCode string) error
	Ping(ctx context.Context) error

	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Cache interface {
	Get(ctx context.Context, shortCode string) (string, bool, error)
	Set(ctx context.Context, shortCode, originalURL string, ttl time.Duration) error
	Delete(ctx context.Context, shortCodes ...string) error
}

const (
	DefaultCacheTTL     = time.Hour
	DefaultAnonymousTTL = 24 * time.Hour
)

const (
	maxAttempts  = 10
	tokenLength  = 10
	tokenLetters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

var aliasPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

type Option func(*URLShortener)

func WithClock(clock clockwork.Clock) Option {
	return func(s *URLShortener) {
		s.clock = clock
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *URLShortener) {
		s.metrics = m
	}
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(s *URLShortener) {
		s.cacheTTL = ttl
	}
}

// WithAnonymousTTL задает срок жизни ссылок без явного срока (анонимных и небессрочных).
func WithAnonymousTTL(ttl time.Duration) Option {
	return func(s *URLShortener) {
		s.defaultTTL = ttl
	}
}

// URLShortener реализует жизненный цикл ссылок и согласованность кэша с хранилищем
type URLShortener struct {
	storage    URLStorage
	cache      Cache
	log        *zerolog.Logger
	clock      clockwork.Clock
	metrics    *metrics.Metrics
	baseURL    string
	cacheTTL   time.Duration
	defaultTTL time.Duration
}

// NewServiceURLShortener создает новый экземпляр сервиса. cache может быть nil.
func NewServiceURLShortener(storage URLStorage, cache Cache, log *zerolog.Logger, baseURL string, opts ...Option) *URLShortener {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	s := &URLShortener{
		storage:    storage,
		cache:      cache,
		log:        log,
		clock:      clockwork.NewRealClock(),
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		cacheTTL:   DefaultCacheTTL,
		defaultTTL: DefaultAnonymousTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetShortURL возвращает полный короткий URL
func (s *URLShortener) GetShortURL(shortCode string) string {
	return fmt.Sprintf("%s/links/%s", s.baseURL, shortCode)
}

// Create создает короткую ссылку. Кэш не прогревается.
func (s *URLShortener) Create(ctx context.Context, params models.CreateLinkParams, principal *models.Principal) (models.ShortenedLink, error) {
	if err := validateURL(params.OriginalURL); err != nil {
		return models.ShortenedLink{}, err
	}

	alias := strings.TrimSpace(params.CustomAlias)
	if alias != "" && !aliasPattern.MatchString(alias) {
		return models.ShortenedLink{}, fmt.Errorf("%w: alias must match %s", models.ErrInvalidData, aliasPattern)
	}

	now := s.clock.Now().UTC()
	link := models.ShortenedLink{
		OriginalURL:  params.OriginalURL,
		CreatedAt:    now,
		LastAccessed: now,
	}

	if principal.IsAnonymous() {
		expiresAt := now.Add(s.defaultTTL)
		link.ExpiresAt = &expiresAt
		link.IsPermanent = false
	} else {
		ownerID := principal.UserID
		link.OwnerID = &ownerID
		link.IsPermanent = params.IsPermanent != nil && *params.IsPermanent

		if params.ExpiresAt != nil {
			expiresAt := params.ExpiresAt.UTC()
			if !expiresAt.After(now) {
				return models.ShortenedLink{}, fmt.Errorf("%w: expires_at must be in the future", models.ErrInvalidData)
			}
			link.ExpiresAt = &expiresAt
		}
		if !link.IsPermanent && link.ExpiresAt == nil {
			expiresAt := now.Add(s.defaultTTL)
			link.ExpiresAt = &expiresAt
		}
	}

	created, err := s.insert(ctx, link, alias)
	if err != nil {
		return models.ShortenedLink{}, err
	}

	s.metrics.LinkCreated()
	s.log.Info().
		Str("short_code", created.ShortCode).
		Bool("anonymous", principal.IsAnonymous()).
		Bool("permanent", created.IsPermanent).
		Msg("link created")

	return created, nil
}

// insert полагается на атомарную проверку уникальности в хранилище.
// Занятый алиас - ошибка клиента, коллизия сгенерированного кода - повод попробовать еще раз.
func (s *URLShortener) insert(ctx context.Context, link models.ShortenedLink, alias string) (models.ShortenedLink, error) {
	if alias != "" {
		link.ShortCode = alias
		created, err := s.storage.ShortenedLinkCreate(ctx, link)
		if err != nil {
			if errors.Is(err, models.ErrConflict) {
				return models.ShortenedLink{}, fmt.Errorf("%w: alias %q is taken", models.ErrConflict, alias)
			}
			return models.ShortenedLink{}, fmt.Errorf("failed to create link: %w", err)
		}
		return created, nil
	}

	for i := 0; i < maxAttempts; i++ {
		token, err := generateRandomToken()
		if err != nil {
			return models.ShortenedLink{}, fmt.Errorf("failed to generate token: %w", err)
		}

		link.ShortCode = token
		created, err := s.storage.ShortenedLinkCreate(ctx, link)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, models.ErrConflict) {
			return models.ShortenedLink{}, fmt.Errorf("failed to create link: %w", err)
		}
	}

	return models.ShortenedLink{}, errors.New("failed to generate unique token after several attempts")
}

// Resolve возвращает оригинальный URL и засчитывает переход.
// Запись в хранилище выполняется при любом исходе чтения кэша: счетчик живет только там,
// и она же подтверждает, что ссылка еще существует и не истекла.
func (s *URLShortener) Resolve(ctx context.Context, shortCode string) (string, error) {
	if shortCode == "" {
		return "", models.ErrInvalidData
	}

	cached, hit := s.cacheGet(ctx, shortCode)

	link, err := s.storage.ShortenedLinkRecordClick(ctx, shortCode, s.clock.Now().UTC())
	if err != nil {
		if errors.Is(err, models.ErrUnfound) {
			if hit {
				s.cacheDelete(ctx, shortCode)
			}
			return "", err
		}
		return "", fmt.Errorf("failed to record click: %w", err)
	}

	if hit {
		s.metrics.LinkResolved(metrics.SourceCache)
		return cached, nil
	}

	s.cacheSet(ctx, shortCode, link.OriginalURL)
	s.metrics.LinkResolved(metrics.SourceStore)
	return link.OriginalURL, nil
}

// Stats возвращает запись ссылки без учета перехода
func (s *URLShortener) Stats(ctx context.Context, shortCode string) (models.ShortenedLink, error) {
	link, err := s.storage.ShortenedLinkGetByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, models.ErrUnfound) {
			return models.ShortenedLink{}, err
		}
		return models.ShortenedLink{}, fmt.Errorf("failed to get link: %w", err)
	}

	if link.IsExpired(s.clock.Now()) {
		return models.ShortenedLink{}, fmt.Errorf("%w: link expired", models.ErrUnfound)
	}
	return link, nil
}

// GetOriginalURL возвращает оригинальный URL без учета перехода и без прогрева кэша
func (s *URLShortener) GetOriginalURL(ctx context.Context, shortCode string) (string, error) {
	link, err := s.Stats(ctx, shortCode)
	if err != nil {
		return "", err
	}
	return link.OriginalURL, nil
}

// UpdateShortCode переименовывает ссылку. Записи кэша для старого и нового кода сбрасываются,
// новая заполнится при первом резолве.
func (s *URLShortener) UpdateShortCode(ctx context.Context, shortCode, newShortCode string, principal *models.Principal) (models.ShortenedLink, error) {
	newShortCode = strings.TrimSpace(newShortCode)
	if !aliasPattern.MatchString(newShortCode) {
		return models.ShortenedLink{}, fmt.Errorf("%w: new short code must match %s", models.ErrInvalidData, aliasPattern)
	}

	updated, err := s.mutateOwned(ctx, shortCode, principal, func(ctx context.Context, link models.ShortenedLink) (models.ShortenedLink, error) {
		if link.ShortCode == newShortCode {
			return link, nil
		}
		return s.storage.ShortenedLinkUpdateShortCode(ctx, shortCode, newShortCode)
	})
	if err != nil {
		return models.ShortenedLink{}, err
	}

	s.cacheDelete(ctx, shortCode, newShortCode)
	s.log.Info().
		Str("short_code", shortCode).
		Str("new_short_code", newShortCode).
		Msg("short code updated")

	return updated, nil
}

// Delete удаляет ссылку. Порядок фиксирован: сначала коммит удаления в хранилище, потом сброс кэша.
// Если параллельный резолв успеет снова положить URL в кэш, он не будет отдан:
// каждый резолв пишет в хранилище и получит ErrUnfound.
func (s *URLShortener) Delete(ctx context.Context, shortCode string, principal *models.Principal) error {
	_, err := s.mutateOwned(ctx, shortCode, principal, func(ctx context.Context, link models.ShortenedLink) (models.ShortenedLink, error) {
		return link, s.storage.ShortenedLinkDelete(ctx, shortCode)
	})
	if err != nil {
		return err
	}

	s.cacheDelete(ctx, shortCode)
	s.log.Info().Str("short_code", shortCode).Msg("link deleted")
	return nil
}

// UpdateExpiry выставляет новый срок жизни (в UTC) и сбрасывает запись кэша
func (s *URLShortener) UpdateExpiry(ctx context.Context, shortCode string, expiresAt time.Time, principal *models.Principal) (models.ShortenedLink, error) {
	if expiresAt.IsZero() {
		return models.ShortenedLink{}, fmt.Errorf("%w: expires_at is required", models.ErrInvalidData)
	}
	expiresAt = expiresAt.UTC()

	updated, err := s.mutateOwned(ctx, shortCode, principal, func(ctx context.Context, _ models.ShortenedLink) (models.ShortenedLink, error) {
		return s.storage.ShortenedLinkUpdateExpiry(ctx, shortCode, expiresAt)
	})
	if err != nil {
		return models.ShortenedLink{}, err
	}

	s.cacheDelete(ctx, shortCode)
	s.log.Info().
		Str("short_code", shortCode).
		Time("expires_at", expiresAt).
		Msg("link expiry updated")

	return updated, nil
}

// PingDataBase проверяет соединение с хранилищем
func (s *URLShortener) PingDataBase(ctx context.Context) error {
	if err := s.storage.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// mutateOwned загружает ссылку под блокировкой транзакции, проверяет владельца и выполняет fn
// в той же транзакции.
func (s *URLShortener) mutateOwned(
	ctx context.Context,
	shortCode string,
	principal *models.Principal,
	fn func(ctx context.Context, link models.ShortenedLink) (models.ShortenedLink, error),
) (models.ShortenedLink, error) {
	if shortCode == "" {
		return models.ShortenedLink{}, models.ErrInvalidData
	}

	var result models.ShortenedLink
	err := s.storage.WithinTx(ctx, func(ctx context.Context) error {
		link, err := s.storage.ShortenedLinkGetByShortCode(ctx, shortCode)
		if err != nil {
			return err
		}
		if link.IsExpired(s.clock.Now()) {
			return fmt.Errorf("%w: link expired", models.ErrUnfound)
		}
		if !link.CanBeModifiedBy(principal) {
			return fmt.Errorf("%w: link belongs to another user", models.ErrForbidden)
		}

		result, err = fn(ctx, link)
		return err
	})
	if err != nil {
		return models.ShortenedLink{}, err
	}
	return result, nil
}

func (s *URLShortener) cacheGet(ctx context.Context, shortCode string) (string, bool) {
	if s.cache == nil {
		return "", false
	}

	val, found, err := s.cache.Get(ctx, shortCode)
	if err != nil {
		s.metrics.CacheError("get")
		s.log.Warn().Err(err).Str("short_code", shortCode).Msg("cache get failed, falling back to store")
		return "", false
	}
	return val, found
}

func (s *URLShortener) cacheSet(ctx context.Context, shortCode, originalURL string) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Set(ctx, shortCode, originalURL, s.cacheTTL); err != nil {
		s.metrics.CacheError("set")
		s.log.Warn().Err(err).Str("short_code", shortCode).Msg("cache set failed")
	}
}

func (s *URLShortener) cacheDelete(ctx context.Context, shortCodes ...string) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, shortCodes...); err != nil {
		s.metrics.CacheError("delete")
		s.log.Warn().Err(err).Strs("short_codes", shortCodes).Msg("cache invalidation failed, entry expires by TTL")
	}
}

func validateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: original_url is required", models.ErrInvalidData)
	}

	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return fmt.Errorf("%w: original_url: %v", models.ErrInvalidData, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: original_url must be an absolute http(s) URL", models.ErrInvalidData)
	}
	return nil
}

func generateRandomToken() (string, error) {
	b := make([]byte, tokenLength)
	letterCount := big.NewInt(int64(len(tokenLetters)))

	for i := range b {
		n, err := rand.Int(rand.Reader, letterCount)
		if err != nil {
			return "", err
		}
		b[i] = tokenLetters[n.Int64()]
	}
	return string(b), nil
}
