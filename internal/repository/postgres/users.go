package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"shortlinks/internal/domain/models"
	"shortlinks/internal/repository/dto"

	sq "github.com/Masterminds/squirrel"
)

const usersTable = "users"

func (p *PostgresStorage) UserCreate(ctx context.Context, user models.User) (models.User, error) {
	d := dto.UserDBFromDomain(user)
	row, err := p.queryRow(ctx, p.builder.
		Insert(usersTable).
		Columns("username", "email", "hashed_password", "is_active", "created_at").
		Values(d.Username, d.Email, d.HashedPassword, d.IsActive, d.CreatedAt).
		Suffix("RETURNING "+strings.Join(dto.UserColumns, ", ")))
	if err != nil {
		return models.User{}, err
	}

	var created dto.UserDB
	if err := row.Scan(created.ScanTargets()...); err != nil {
		if isUniqueViolation(err) {
			return models.User{}, models.ErrUserExists
		}
		return models.User{}, unavailable("failed to insert user", err)
	}
	return dto.UserDBToDomain(created), nil
}

func (p *PostgresStorage) UserGetByID(ctx context.Context, id int64) (models.User, error) {
	return p.userGet(ctx, sq.Eq{"id": id})
}

func (p *PostgresStorage) UserGetByUsername(ctx context.Context, username string) (models.User, error) {
	return p.userGet(ctx, sq.Eq{"username": username})
}

func (p *PostgresStorage) userGet(ctx context.Context, where sq.Eq) (models.User, error) {
	row, err := p.queryRow(ctx, p.builder.
		Select(dto.UserColumns...).
		From(usersTable).
		Where(where))
	if err != nil {
		return models.User{}, err
	}

	var d dto.UserDB
	if err := row.Scan(d.ScanTargets()...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("%w: user not found", models.ErrUnfound)
		}
		return models.User{}, unavailable("failed to get user", err)
	}
	return dto.UserDBToDomain(d), nil
}
