package redirect

import (
	"context"
	"net/http"

	"shortlinks/internal/http/httputils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type ServiceURLShortener interface {
	Resolve(ctx context.Context, shortCode string) (string, error)
}

// HandlerRedirect засчитывает переход и отвечает 307 на оригинальный URL
func HandlerRedirect(svc ServiceURLShortener, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		originalURL, err := svc.Resolve(r.Context(), mux.Vars(r)["code"])
		if err != nil {
			httputils.WriteServiceError(w, log, err)
			return
		}

		http.Redirect(w, r, originalURL, http.StatusTemporaryRedirect)
	}
}
