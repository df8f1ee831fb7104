package create

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"shortlinks/internal/domain/models"
	"shortlinks/internal/http/dto"
	"shortlinks/internal/http/handlers/middlewares/auth"
	"shortlinks/internal/http/httputils"

	"github.com/rs/zerolog"
)

type ServiceURLShortener interface {
	Create(ctx context.Context, params models.CreateLinkParams, principal *models.Principal) (models.ShortenedLink, error)
	GetShortURL(shortCode string) string
}

func HandlerCreate(svc ServiceURLShortener, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req dto.CreateLinkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			if errors.Is(err, models.ErrInvalidData) {
				httputils.WriteServiceError(w, log, err)
				return
			}
			httputils.WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		link, err := svc.Create(ctx, dto.CreateLinkRequestToDomain(req), auth.PrincipalFromContext(ctx))
		if err != nil {
			httputils.WriteServiceError(w, log, err)
			return
		}

		httputils.WriteJSONResponse(w, http.StatusOK, dto.LinkResponseFromDomain(link, svc.GetShortURL(link.ShortCode)))
	}
}
