package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"shortlinks/internal/domain/models"
)

const initLastID = 0

type keyTxType int

const keyTxValue keyTxType = iota

// InmemoryStorage хранит ссылки и пользователей в памяти процесса.
// mu защищает данные, txMu сериализует транзакции WithinTx.
type InmemoryStorage struct {
	mu    sync.RWMutex
	txMu  sync.Mutex
	links map[string]models.ShortenedLink
	users map[int64]models.User

	lastLinkID int64
	lastUserID int64
}

func NewStorage() *InmemoryStorage {
	return &InmemoryStorage{
		links:      make(map[string]models.ShortenedLink),
		users:      make(map[int64]models.User),
		lastLinkID: initLastID,
		lastUserID: initLastID,
	}
}

func (m *InmemoryStorage) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(keyTxValue) != nil {
		return fn(ctx)
	}

	m.txMu.Lock()
	defer m.txMu.Unlock()

	return fn(context.WithValue(ctx, keyTxValue, true))
}

func (m *InmemoryStorage) ShortenedLinkCreate(ctx context.Context, link models.ShortenedLink) (models.ShortenedLink, error) {
	if err := ctx.Err(); err != nil {
		return models.ShortenedLink{}, err
	}

	if link.ShortCode == "" || link.OriginalURL == "" {
		return models.ShortenedLink{}, models.ErrInvalidData
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.links[link.ShortCode]; exists {
		return models.ShortenedLink{}, fmt.Errorf("%w: %s", models.ErrConflict, link.ShortCode)
	}

	m.lastLinkID++
	link = copyLink(link)
	link.ID = m.lastLinkID
	m.links[link.ShortCode] = link
	return copyLink(link), nil
}

func (m *InmemoryStorage) ShortenedLinkGetByShortCode(ctx context.Context, shortCode string) (models.ShortenedLink, error) {
	if err := ctx.Err(); err != nil {
		return models.ShortenedLink{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	link, exists := m.links[shortCode]
	if !exists {
		return models.ShortenedLink{}, fmt.Errorf("%w: short code not found", models.ErrUnfound)
	}
	return copyLink(link), nil
}

func (m *InmemoryStorage) ShortenedLinkRecordClick(ctx context.Context, shortCode string, now time.Time) (models.ShortenedLink, error) {
	if err := ctx.Err(); err != nil {
		return models.ShortenedLink{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	link, exists := m.links[shortCode]
	if !exists || link.IsExpired(now) {
		return models.ShortenedLink{}, fmt.Errorf("%w: short code not found", models.ErrUnfound)
	}

	link.Clicks++
	link.LastAccessed = now.UTC()
	m.links[shortCode] = link
	return copyLink(link), nil
}

func (m *InmemoryStorage) ShortenedLinkUpdateShortCode(ctx context.Context, oldCode, newCode string) (models.ShortenedLink, error) {
	if err := ctx.Err(); err != nil {
		return models.ShortenedLink{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	link, exists := m.links[oldCode]
	if !exists {
		return models.ShortenedLink{}, fmt.Errorf("%w: short code not found", models.ErrUnfound)
	}
	if oldCode == newCode {
		return copyLink(link), nil
	}
	if _, taken := m.links[newCode]; taken {
		return models.ShortenedLink{}, fmt.Errorf("%w: %s", models.ErrConflict, newCode)
	}

	delete(m.links, oldCode)
	link.ShortCode = newCode
	m.links[newCode] = link
	return copyLink(link), nil
}

func (m *InmemoryStorage) ShortenedLinkUpdateExpiry(ctx context.Context, shortCode string, expiresAt time.Time) (models.ShortenedLink, error) {
	if err := ctx.Err(); err != nil {
		return models.ShortenedLink{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	link, exists := m.links[shortCode]
	if !exists {
		return models.ShortenedLink{}, fmt.Errorf("%w: short code not found", models.ErrUnfound)
	}

	expiresAt = expiresAt.UTC()
	link.ExpiresAt = &expiresAt
	link.IsPermanent = false
	m.links[shortCode] = link
	return copyLink(link), nil
}

func (m *InmemoryStorage) ShortenedLinkDelete(ctx context.Context, shortCode string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.links[shortCode]; !exists {
		return fmt.Errorf("%w: short code not found", models.ErrUnfound)
	}
	delete(m.links, shortCode)
	return nil
}

// ShortenedLinkDeleteExpired удаляет все подходящие записи под одной блокировкой,
// частичного удаления не бывает.
func (m *InmemoryStorage) ShortenedLinkDeleteExpired(ctx context.Context, now, staleBefore time.Time) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var codes []string
	for code, link := range m.links {
		expired := link.ExpiresAt != nil && link.ExpiresAt.Before(now)
		stale := link.LastAccessed.Before(staleBefore)
		if expired || stale {
			codes = append(codes, code)
		}
	}

	for _, code := range codes {
		delete(m.links, code)
	}

	sort.Strings(codes)
	return codes, nil
}

func (m *InmemoryStorage) UserCreate(ctx context.Context, user models.User) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return models.User{}, models.ErrUserExists
		}
	}

	m.lastUserID++
	user.ID = m.lastUserID
	m.users[user.ID] = user
	return user, nil
}

func (m *InmemoryStorage) UserGetByID(ctx context.Context, id int64) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return models.User{}, fmt.Errorf("%w: user not found", models.ErrUnfound)
	}
	return user, nil
}

func (m *InmemoryStorage) UserGetByUsername(ctx context.Context, username string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, fmt.Errorf("%w: user not found", models.ErrUnfound)
}

func (m *InmemoryStorage) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *InmemoryStorage) Close() error {
	return nil
}

// copyLink не дает вызывающему менять указатели внутри хранилища
func copyLink(l models.ShortenedLink) models.ShortenedLink {
	if l.ExpiresAt != nil {
		expiresAt := *l.ExpiresAt
		l.ExpiresAt = &expiresAt
	}
	if l.OwnerID != nil {
		ownerID := *l.OwnerID
		l.OwnerID = &ownerID
	}
	return l
}
