package auth

import (
	"context"
	"net/http"

	"shortlinks/internal/domain/models"
	"shortlinks/internal/http/httputils"

	"github.com/rs/zerolog"
)

type ctxKeyPrincipal struct{}

type Authentication interface {
	Principal(ctx context.Context, jwtToken string) (*models.Principal, error)
}

// MiddlewareAuth определяет, от чьего имени выполняется запрос.
// Отсутствующий или невалидный токен не ошибка: запрос просто становится анонимным.
func MiddlewareAuth(auth Authentication, log *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := httputils.BearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := auth.Principal(r.Context(), token)
			if err != nil {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("token rejected, continuing anonymously")
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

func WithPrincipal(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal{}, p)
}

// PrincipalFromContext возвращает nil для анонимного запроса
func PrincipalFromContext(ctx context.Context) *models.Principal {
	p, _ := ctx.Value(ctxKeyPrincipal{}).(*models.Principal)
	return p
}
