package register

import (
	"context"
	"encoding/json"
	"net/http"

	"shortlinks/internal/domain/models"
	"shortlinks/internal/http/dto"
	"shortlinks/internal/http/httputils"

	"github.com/rs/zerolog"
)

type Authentication interface {
	Register(ctx context.Context, username, email, password string) (models.User, error)
}

func HandlerRegister(auth Authentication, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputils.WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		user, err := auth.Register(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			httputils.WriteServiceError(w, log, err)
			return
		}

		httputils.WriteJSONResponse(w, http.StatusOK, dto.UserResponseFromDomain(user))
	}
}
