package stats

import (
	"context"
	"net/http"

	"shortlinks/internal/domain/models"
	"shortlinks/internal/http/dto"
	"shortlinks/internal/http/httputils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type ServiceURLShortener interface {
	Stats(ctx context.Context, shortCode string) (models.ShortenedLink, error)
	GetShortURL(shortCode string) string
}

func HandlerStats(svc ServiceURLShortener, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		link, err := svc.Stats(r.Context(), mux.Vars(r)["code"])
		if err != nil {
			httputils.WriteServiceError(w, log, err)
			return
		}

		httputils.WriteJSONResponse(w, http.StatusOK, dto.LinkResponseFromDomain(link, svc.GetShortURL(link.ShortCode)))
	}
}
