package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shortlinks/internal/domain/models"
	"shortlinks/internal/repository/dto"

	sq "github.com/Masterminds/squirrel"
)

const linksTable = "links"

func returningLinkColumns() string {
	return "RETURNING " + strings.Join(dto.LinkColumns, ", ")
}

func scanLink(row *sql.Row, op string) (models.ShortenedLink, error) {
	var d dto.LinkDB
	if err := row.Scan(d.ScanTargets()...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ShortenedLink{}, fmt.Errorf("%w: short code not found", models.ErrUnfound)
		}
		return models.ShortenedLink{}, unavailable(op, err)
	}
	return dto.LinkDBToDomain(d), nil
}

// ShortenedLinkCreate вставляет запись. Уникальность short_code обеспечивает ограничение БД,
// поэтому гонка двух создателей с одним алиасом заканчивается ErrConflict у одного из них.
func (p *PostgresStorage) ShortenedLinkCreate(ctx context.Context, link models.ShortenedLink) (models.ShortenedLink, error) {
	if link.ShortCode == "" || link.OriginalURL == "" {
		return models.ShortenedLink{}, models.ErrInvalidData
	}

	d := dto.LinkDBFromDomain(link)
	row, err := p.queryRow(ctx, p.builder.
		Insert(linksTable).
		Columns("original_url", "short_code", "created_at", "expires_at", "is_permanent", "last_accessed", "clicks", "owner_id").
		Values(d.OriginalURL, d.ShortCode, d.CreatedAt, d.ExpiresAt, d.IsPermanent, d.LastAccessed, d.Clicks, d.OwnerID).
		Suffix(returningLinkColumns()))
	if err != nil {
		return models.ShortenedLink{}, err
	}

	var created dto.LinkDB
	if err := row.Scan(created.ScanTargets()...); err != nil {
		if isUniqueViolation(err) {
			return models.ShortenedLink{}, fmt.Errorf("%w: %s", models.ErrConflict, link.ShortCode)
		}
		return models.ShortenedLink{}, unavailable("failed to insert link", err)
	}

	return dto.LinkDBToDomain(created), nil
}

// ShortenedLinkGetByShortCode читает запись. Внутри транзакции строка блокируется до ее конца.
func (p *PostgresStorage) ShortenedLinkGetByShortCode(ctx context.Context, shortCode string) (models.ShortenedLink, error) {
	builder := p.builder.
		Select(dto.LinkColumns...).
		From(linksTable).
		Where(sq.Eq{"short_code": shortCode})
	if inTx(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	row, err := p.queryRow(ctx, builder)
	if err != nil {
		return models.ShortenedLink{}, err
	}
	return scanLink(row, "failed to get link")
}

// ShortenedLinkRecordClick атомарно увеличивает счетчик переходов у неистекшей ссылки.
func (p *PostgresStorage) ShortenedLinkRecordClick(ctx context.Context, shortCode string, now time.Time) (models.ShortenedLink, error) {
	now = now.UTC()
	row, err := p.queryRow(ctx, p.builder.
		Update(linksTable).
		Set("clicks", sq.Expr("clicks + 1")).
		Set("last_accessed", now).
		Where(sq.Eq{"short_code": shortCode}).
		Where(sq.Or{sq.Eq{"expires_at": nil}, sq.Gt{"expires_at": now}}).
		Suffix(returningLinkColumns()))
	if err != nil {
		return models.ShortenedLink{}, err
	}
	return scanLink(row, "failed to record click")
}

func (p *PostgresStorage) ShortenedLinkUpdateShortCode(ctx context.Context, oldCode, newCode string) (models.ShortenedLink, error) {
	row, err := p.queryRow(ctx, p.builder.
		Update(linksTable).
		Set("short_code", newCode).
		Where(sq.Eq{"short_code": oldCode}).
		Suffix(returningLinkColumns()))
	if err != nil {
		return models.ShortenedLink{}, err
	}

	link, err := scanLink(row, "failed to update short code")
	if err != nil && isUniqueViolation(err) {
		return models.ShortenedLink{}, fmt.Errorf("%w: %s", models.ErrConflict, newCode)
	}
	return link, err
}

// ShortenedLinkUpdateExpiry выставляет явный срок жизни, ссылка перестает быть бессрочной.
func (p *PostgresStorage) ShortenedLinkUpdateExpiry(ctx context.Context, shortCode string, expiresAt time.Time) (models.ShortenedLink, error) {
	row, err := p.queryRow(ctx, p.builder.
		Update(linksTable).
		Set("expires_at", expiresAt.UTC()).
		Set("is_permanent", false).
		Where(sq.Eq{"short_code": shortCode}).
		Suffix(returningLinkColumns()))
	if err != nil {
		return models.ShortenedLink{}, err
	}
	return scanLink(row, "failed to update expiry")
}

func (p *PostgresStorage) ShortenedLinkDelete(ctx context.Context, shortCode string) error {
	query, args, err := p.builder.
		Delete(linksTable).
		Where(sq.Eq{"short_code": shortCode}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := p.querier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return unavailable("failed to delete link", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return unavailable("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: short code not found", models.ErrUnfound)
	}
	return nil
}

// ShortenedLinkDeleteExpired удаляет истекшие и давно не открывавшиеся ссылки одним запросом
// и возвращает их короткие коды. Атомарность обеспечивает вызывающий через WithinTx.
func (p *PostgresStorage) ShortenedLinkDeleteExpired(ctx context.Context, now, staleBefore time.Time) ([]string, error) {
	query, args, err := p.builder.
		Delete(linksTable).
		Where(sq.Or{
			sq.Lt{"expires_at": now.UTC()},
			sq.Lt{"last_accessed": staleBefore.UTC()},
		}).
		Suffix("RETURNING short_code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := p.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable("failed to delete expired links", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, unavailable("failed to scan short code", err)
		}
		codes = append(codes, code)
	}

	if err := rows.Err(); err != nil {
		return nil, unavailable("rows iteration error", err)
	}

	return codes, nil
}
