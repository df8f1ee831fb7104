package update_expiry

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"shortlinks/internal/domain/models"
	"shortlinks/internal/http/dto"
	"shortlinks/internal/http/handlers/middlewares/auth"
	"shortlinks/internal/http/httputils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type ServiceURLShortener interface {
	UpdateExpiry(ctx context.Context, shortCode string, expiresAt time.Time, principal *models.Principal) (models.ShortenedLink, error)
}

func HandlerUpdateExpiry(svc ServiceURLShortener, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req dto.UpdateExpiryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			if errors.Is(err, models.ErrInvalidData) {
				httputils.WriteServiceError(w, log, err)
				return
			}
			httputils.WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.ExpiresAt == nil {
			httputils.WriteJSONError(w, http.StatusBadRequest, "expires_at is required")
			return
		}

		link, err := svc.UpdateExpiry(ctx, mux.Vars(r)["code"], req.ExpiresAt.Time, auth.PrincipalFromContext(ctx))
		if err != nil {
			httputils.WriteServiceError(w, log, err)
			return
		}

		resp := dto.UpdateExpiryResponse{Message: "expiry updated"}
		if link.ExpiresAt != nil {
			resp.ExpiresAt = link.ExpiresAt.UTC()
		}
		httputils.WriteJSONResponse(w, http.StatusOK, resp)
	}
}
