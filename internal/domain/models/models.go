package models

import (
	"errors"
	"time"
)

type (
	User struct {
		ID             int64
		Username       string
		Email          string
		HashedPassword string
		IsActive       bool
		CreatedAt      time.Time
	}

	// Principal - аутентифицированный пользователь, от имени которого выполняется запрос.
	// nil *Principal означает анонимный запрос.
	Principal struct {
		UserID   int64
		Username string
	}

	ShortenedLink struct {
		ID           int64      // Уникальный идентификатор
		OriginalURL  string     // Оригинальный URL в изначальном виде
		ShortCode    string     // Короткий код (aBcD12) - сокращенный URL
		CreatedAt    time.Time  // UTC
		ExpiresAt    *time.Time // nil - бессрочная ссылка
		IsPermanent  bool
		LastAccessed time.Time
		Clicks       int64
		OwnerID      *int64 // nil - анонимная ссылка
	}

	// CreateLinkParams - то, что клиент передает при создании ссылки.
	// Для анонимного запроса IsPermanent и ExpiresAt игнорируются.
	CreateLinkParams struct {
		OriginalURL string
		CustomAlias string
		IsPermanent *bool
		ExpiresAt   *time.Time
	}
)

var (
	ErrInvalidData      = errors.New("invalid input data")
	ErrUnfound          = errors.New("unfound data")
	ErrConflict         = errors.New("short code already exists")
	ErrForbidden        = errors.New("forbidden")
	ErrUserExists       = errors.New("user already exists")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrCacheUnavailable = errors.New("cache unavailable")
)

// IsExpired сообщает, истек ли срок жизни ссылки на момент now.
func (l ShortenedLink) IsExpired(now time.Time) bool {
	return l.ExpiresAt != nil && !l.ExpiresAt.After(now)
}

// CanBeModifiedBy: ссылку без владельца может менять кто угодно,
// ссылку с владельцем - только сам владелец.
func (l ShortenedLink) CanBeModifiedBy(p *Principal) bool {
	if l.OwnerID == nil {
		return true
	}
	return p != nil && p.UserID == *l.OwnerID
}

func (p *Principal) IsAnonymous() bool {
	return p == nil
}
