package rename

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"shortlinks/internal/domain/models"
	"shortlinks/internal/http/dto"
	"shortlinks/internal/http/handlers/middlewares/auth"
	"shortlinks/internal/http/httputils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

const paramNewShortCode = "new_short_code"

type ServiceURLShortener interface {
	UpdateShortCode(ctx context.Context, shortCode, newShortCode string, principal *models.Principal) (models.ShortenedLink, error)
	GetShortURL(shortCode string) string
}

// HandlerRename принимает новый код из JSON-тела или из query-параметра new_short_code
func HandlerRename(svc ServiceURLShortener, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		newShortCode := r.URL.Query().Get(paramNewShortCode)
		if newShortCode == "" {
			var req dto.RenameLinkRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
				httputils.WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
				return
			}
			newShortCode = req.NewShortCode
		}

		link, err := svc.UpdateShortCode(ctx, mux.Vars(r)["code"], newShortCode, auth.PrincipalFromContext(ctx))
		if err != nil {
			httputils.WriteServiceError(w, log, err)
			return
		}

		httputils.WriteJSONResponse(w, http.StatusOK, dto.LinkResponseFromDomain(link, svc.GetShortURL(link.ShortCode)))
	}
}
