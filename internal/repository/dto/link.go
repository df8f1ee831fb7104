package dto

import (
	"database/sql"
	"time"

	"shortlinks/internal/domain/models"
)

// LinkColumns - порядок колонок должен совпадать с LinkDB.ScanTargets
var LinkColumns = []string{
	"id",
	"original_url",
	"short_code",
	"created_at",
	"expires_at",
	"is_permanent",
	"last_accessed",
	"clicks",
	"owner_id",
}

// DTO БД для таблицы links
type LinkDB struct {
	ID           int64         `db:"id"`
	OriginalURL  string        `db:"original_url"`
	ShortCode    string        `db:"short_code"`
	CreatedAt    time.Time     `db:"created_at"`
	ExpiresAt    sql.NullTime  `db:"expires_at"`
	IsPermanent  bool          `db:"is_permanent"`
	LastAccessed time.Time     `db:"last_accessed"`
	Clicks       int64         `db:"clicks"`
	OwnerID      sql.NullInt64 `db:"owner_id"`
}

func (d *LinkDB) ScanTargets() []any {
	return []any{
		&d.ID,
		&d.OriginalURL,
		&d.ShortCode,
		&d.CreatedAt,
		&d.ExpiresAt,
		&d.IsPermanent,
		&d.LastAccessed,
		&d.Clicks,
		&d.OwnerID,
	}
}

// LinkDBToDomain преобразует DTO БД в доменную модель, все времена в UTC
func LinkDBToDomain(d LinkDB) models.ShortenedLink {
	link := models.ShortenedLink{
		ID:           d.ID,
		OriginalURL:  d.OriginalURL,
		ShortCode:    d.ShortCode,
		CreatedAt:    d.CreatedAt.UTC(),
		IsPermanent:  d.IsPermanent,
		LastAccessed: d.LastAccessed.UTC(),
		Clicks:       d.Clicks,
	}
	if d.ExpiresAt.Valid {
		expiresAt := d.ExpiresAt.Time.UTC()
		link.ExpiresAt = &expiresAt
	}
	if d.OwnerID.Valid {
		ownerID := d.OwnerID.Int64
		link.OwnerID = &ownerID
	}
	return link
}

// LinkDBFromDomain преобразует доменную модель в DTO БД
func LinkDBFromDomain(l models.ShortenedLink) LinkDB {
	d := LinkDB{
		ID:           l.ID,
		OriginalURL:  l.OriginalURL,
		ShortCode:    l.ShortCode,
		CreatedAt:    l.CreatedAt.UTC(),
		IsPermanent:  l.IsPermanent,
		LastAccessed: l.LastAccessed.UTC(),
		Clicks:       l.Clicks,
	}
	if l.ExpiresAt != nil {
		d.ExpiresAt = sql.NullTime{Time: l.ExpiresAt.UTC(), Valid: true}
	}
	if l.OwnerID != nil {
		d.OwnerID = sql.NullInt64{Int64: *l.OwnerID, Valid: true}
	}
	return d
}
