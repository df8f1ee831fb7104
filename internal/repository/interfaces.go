package repository

import (
	"context"
	"time"

	"shortlinks/internal/domain/models"
	"shortlinks/internal/repository/inmemory"
	"shortlinks/internal/repository/postgres"
)

// Storage - полный контракт хранилища, который реализуют и PostgreSQL, и память.
// Сервисы зависят от своих узких интерфейсов, этот нужен точке сборки.
type (
	Storage interface {
		// Ссылки
		ShortenedLinkCreate(ctx context.Context, link models.ShortenedLink) (models.ShortenedLink, error)
		ShortenedLinkGetByShortCode(ctx context.Context, shortCode string) (models.ShortenedLink, error)
		ShortenedLinkRecordClick(ctx context.Context, shortCode string, now time.Time) (models.ShortenedLink, error)
		ShortenedLinkUpdateShortCode(ctx context.Context, oldCode, newCode string) (models.ShortenedLink, error)
		ShortenedLinkUpdateExpiry(ctx context.Context, shortCode string, expiresAt time.Time) (models.ShortenedLink, error)
		ShortenedLinkDelete(ctx context.Context, shortCode string) error
		ShortenedLinkDeleteExpired(ctx context.Context, now, staleBefore time.Time) ([]string, error)

		// Пользователи
		UserCreate(ctx context.Context, user models.User) (models.User, error)
		UserGetByID(ctx context.Context, id int64) (models.User, error)
		UserGetByUsername(ctx context.Context, username string) (models.User, error)

		WithinTx(ctx context.Context, fn func(ctx context.Context) error) error

		// Управление соединением
		Ping(ctx context.Context) error
		Close() error
	}
)

var (
	_ Storage = (*postgres.PostgresStorage)(nil)
	_ Storage = (*inmemory.InmemoryStorage)(nil)
)

// NewStorage открывает PostgreSQL по DSN, пустой DSN - хранилище в памяти
func NewStorage(ctx context.Context, dsn string) (Storage, error) {
	if dsn == "" {
		return inmemory.NewStorage(), nil
	}
	storage, err := postgres.NewStorage(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return storage, nil
}
