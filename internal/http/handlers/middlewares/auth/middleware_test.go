package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"shortlinks/internal/domain/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubAuth map[string]*models.Principal

func (s stubAuth) Principal(_ context.Context, token string) (*models.Principal, error) {
	if p, ok := s[token]; ok {
		return p, nil
	}
	return nil, models.ErrUnauthorized
}

func TestMiddlewareAuth(t *testing.T) {
	alice := &models.Principal{UserID: 1, Username: "alice"}
	auth := stubAuth{"good": alice}
	log := zerolog.Nop()

	tests := []struct {
		name   string
		header string
		query  string
		want   *models.Principal
	}{
		{name: "Без токена - анонимно"},
		{name: "Bearer токен", header: "Bearer good", want: alice},
		{name: "Токен в query", query: "?token=good", want: alice},
		{name: "Невалидный токен - анонимно", header: "Bearer forged"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *models.Principal
			called := false
			handler := MiddlewareAuth(auth, &log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				got = PrincipalFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/links/abc"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.True(t, called)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, got)
		})
	}
}
