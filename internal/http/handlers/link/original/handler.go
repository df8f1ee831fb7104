package original

import (
	"context"
	"net/http"

	"shortlinks/internal/http/dto"
	"shortlinks/internal/http/httputils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type ServiceURLShortener interface {
	GetOriginalURL(ctx context.Context, shortCode string) (string, error)
}

// HandlerOriginal отдает оригинальный URL без редиректа и без учета перехода
func HandlerOriginal(svc ServiceURLShortener, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		originalURL, err := svc.GetOriginalURL(r.Context(), mux.Vars(r)["code"])
		if err != nil {
			httputils.WriteServiceError(w, log, err)
			return
		}

		httputils.WriteJSONResponse(w, http.StatusOK, dto.OriginalURLResponse{OriginalURL: originalURL})
	}
}
