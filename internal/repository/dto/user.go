package dto

import (
	"time"

	"shortlinks/internal/domain/models"
)

var UserColumns = []string{
	"id",
	"username",
	"email",
	"hashed_password",
	"is_active",
	"created_at",
}

type (
	UserDB struct {
		ID             int64     `db:"id"`
		Username       string    `db:"username"`
		Email          string    `db:"email"`
		HashedPassword string    `db:"hashed_password"`
		IsActive       bool      `db:"is_active"`
		CreatedAt      time.Time `db:"created_at"`
	}
)

func (u *UserDB) ScanTargets() []any {
	return []any{&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.IsActive, &u.CreatedAt}
}

func UserDBToDomain(u UserDB) models.User {
	return models.User{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		HashedPassword: u.HashedPassword,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt.UTC(),
	}
}

func UserDBFromDomain(u models.User) UserDB {
	return UserDB{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		HashedPassword: u.HashedPassword,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt.UTC(),
	}
}
