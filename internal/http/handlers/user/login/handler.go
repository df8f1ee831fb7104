package login

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"

	"shortlinks/internal/http/dto"
	"shortlinks/internal/http/httputils"

	"github.com/rs/zerolog"
)

type Authentication interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// HandlerLogin принимает учетные данные как JSON или как форму (username, password)
func HandlerLogin(auth Authentication, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeCredentials(r)
		if !ok {
			httputils.WriteJSONError(w, http.StatusBadRequest, "invalid credentials payload")
			return
		}

		token, err := auth.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			httputils.WriteServiceError(w, log, err)
			return
		}

		httputils.WriteJSONResponse(w, http.StatusOK, dto.TokenResponse{Token: token, TokenType: "bearer"})
	}
}

func decodeCredentials(r *http.Request) (dto.LoginRequest, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get(httputils.HeaderContentType))

	if mediaType == httputils.MIMEApplicationForm || mediaType == "multipart/form-data" {
		if err := r.ParseForm(); err != nil {
			return dto.LoginRequest{}, false
		}
		return dto.LoginRequest{
			Username: r.PostForm.Get("username"),
			Password: r.PostForm.Get("password"),
		}, true
	}

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return dto.LoginRequest{}, false
	}
	return req, true
}
