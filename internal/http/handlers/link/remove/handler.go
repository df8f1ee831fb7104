package remove

import (
	"context"
	"net/http"

	"shortlinks/internal/domain/models"
	"shortlinks/internal/http/dto"
	"shortlinks/internal/http/handlers/middlewares/auth"
	"shortlinks/internal/http/httputils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type ServiceURLShortener interface {
	Delete(ctx context.Context, shortCode string, principal *models.Principal) error
}

func HandlerDelete(svc ServiceURLShortener, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := svc.Delete(ctx, mux.Vars(r)["code"], auth.PrincipalFromContext(ctx)); err != nil {
			httputils.WriteServiceError(w, log, err)
			return
		}

		httputils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "link deleted"})
	}
}
