package httputils

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"shortlinks/internal/domain/models"

	"github.com/rs/zerolog"
)

// MIME: https://developer.mozilla.org/en-US/docs/Web/HTTP/Guides/MIME_types/Common_types

const (
	HeaderContentType     = "Content-Type"
	HeaderContentEncoding = "Content-Encoding"
	HeaderAcceptEncoding  = "Accept-Encoding"
	HeaderContentLength   = "Content-Length"
	HeaderAuthorization   = "Authorization"
	HeaderVary            = "Vary"

	MIMEApplicationJSON = "application/json"
	MIMEApplicationForm = "application/x-www-form-urlencoded"
	MIMETextHTML        = "text/html"
	MIMETextPlain       = "text/plain"

	EncodingGzip = "gzip"

	msgInternalError = "internal server error"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteTextResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set(HeaderContentType, MIMETextPlain)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

func WriteJSONError(w http.ResponseWriter, status int, message string) {
	WriteJSONResponse(w, status, ErrorResponse{Error: message})
}

func WriteJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set(HeaderContentType, MIMEApplicationJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// StatusFromError сопоставляет доменные ошибки HTTP-статусам
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidData),
		errors.Is(err, models.ErrConflict),
		errors.Is(err, models.ErrUserExists):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrUnfound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteServiceError пишет ошибку сервиса. Текст неожиданных ошибок клиенту не отдается.
func WriteServiceError(w http.ResponseWriter, log *zerolog.Logger, err error) {
	status := StatusFromError(err)

	switch status {
	case http.StatusInternalServerError:
		log.Error().Err(err).Msg("unexpected service error")
		WriteJSONError(w, status, msgInternalError)
	case http.StatusServiceUnavailable:
		log.Error().Err(err).Msg("store unavailable")
		WriteJSONError(w, status, models.ErrStoreUnavailable.Error())
	default:
		WriteJSONError(w, status, err.Error())
	}
}

// BearerToken достает токен из заголовка Authorization или query-параметра token
func BearerToken(r *http.Request) string {
	if h := r.Header.Get(HeaderAuthorization); h != "" {
		scheme, token, found := strings.Cut(h, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return r.URL.Query().Get("token")
}
