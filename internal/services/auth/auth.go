package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"shortlinks/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

//go:generate mockgen -source=auth.go -destination=../../mocks/mock_user_storage.go -package=mocks
type UserStorage interface {
	UserCreate(ctx context.Context, user models.User) (models.User, error)
	UserGetByID(ctx context.Context, id int64) (models.User, error)
	UserGetByUsername(ctx context.Context, username string) (models.User, error)
}

type Option func(*Authentication)

func WithClock(clock clockwork.Clock) Option {
	return func(a *Authentication) {
		a.clock = clock
	}
}

// WithHashCost задает стоимость bcrypt, в тестах удобно bcrypt.MinCost
func WithHashCost(cost int) Option {
	return func(a *Authentication) {
		a.hashCost = cost
	}
}

type Authentication struct {
	storage   UserStorage
	log       *zerolog.Logger
	clock     clockwork.Clock
	secretKey []byte
	accessExp time.Duration
	hashCost  int
}

type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

func NewAuthentication(userStorage UserStorage, log *zerolog.Logger, secretKey string, accessExp time.Duration, opts ...Option) (*Authentication, error) {
	key, err := base64.StdEncoding.DecodeString(secretKey)
	if err != nil || len(key) < 32 {
		return nil, fmt.Errorf("invalid JWT secret key: must be at least 32 bytes when decoded")
	}
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	a := &Authentication{
		storage:   userStorage,
		log:       log,
		clock:     clockwork.NewRealClock(),
		secretKey: key,
		accessExp: accessExp,
		hashCost:  bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Register создает активного пользователя с bcrypt-хэшем пароля
func (a *Authentication) Register(ctx context.Context, username, email, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, fmt.Errorf("%w: username is required", models.ErrInvalidData)
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return models.User{}, fmt.Errorf("%w: invalid email", models.ErrInvalidData)
	}
	if len(password) < minPasswordLength {
		return models.User{}, fmt.Errorf("%w: password must be at least %d characters", models.ErrInvalidData, minPasswordLength)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), a.hashCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.storage.UserCreate(ctx, models.User{
		Username:       username,
		Email:          addr.Address,
		HashedPassword: string(hashed),
		IsActive:       true,
		CreatedAt:      a.clock.Now().UTC(),
	})
	if err != nil {
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Login проверяет учетные данные и выдает access-токен.
// Неизвестный пользователь, неверный пароль и неактивный аккаунт неразличимы для клиента.
func (a *Authentication) Login(ctx context.Context, username, password string) (string, error) {
	user, err := a.storage.UserGetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, models.ErrUnfound) {
			return "", fmt.Errorf("%w: incorrect username or password", models.ErrUnauthorized)
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		a.log.Warn().Str("username", user.Username).Msg("login failed: invalid password")
		return "", fmt.Errorf("%w: incorrect username or password", models.ErrUnauthorized)
	}
	if !user.IsActive {
		return "", fmt.Errorf("%w: inactive user", models.ErrUnauthorized)
	}

	token, err := a.jwtGenerate(user)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Principal проверяет токен и возвращает активного пользователя, от имени которого он выдан
func (a *Authentication) Principal(ctx context.Context, jwtToken string) (*models.Principal, error) {
	claims, err := a.parse(jwtToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrUnauthorized, err)
	}

	user, err := a.storage.UserGetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrUnfound) {
			return nil, fmt.Errorf("%w: user not found", models.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: inactive user", models.ErrUnauthorized)
	}

	return &models.Principal{UserID: user.ID, Username: user.Username}, nil
}

func (a *Authentication) jwtGenerate(user models.User) (string, error) {
	now := a.clock.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(a.accessExp)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: user.ID,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secretKey)
}

// parse одновременно валидирует подпись и срок действия
func (a *Authentication) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return a.secretKey, nil
		},
		jwt.WithTimeFunc(a.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	return claims, nil
}
