package dto

import (
	"time"

	"shortlinks/internal/domain/models"
)

// Request
type (
	CreateLinkRequest struct {
		OriginalURL string     `json:"original_url"`
		CustomAlias string     `json:"custom_alias,omitempty"`
		IsPermanent *bool      `json:"is_permanent,omitempty"`
		ExpiresAt   *Timestamp `json:"expires_at,omitempty"`
	}

	RenameLinkRequest struct {
		NewShortCode string `json:"new_short_code"`
	}

	UpdateExpiryRequest struct {
		ExpiresAt *Timestamp `json:"expires_at"`
	}
)

// Response
type (
	LinkResponse struct {
		ID           int64      `json:"id"`
		ShortCode    string     `json:"short_code"`
		ShortURL     string     `json:"short_url"`
		OriginalURL  string     `json:"original_url"`
		CreatedAt    time.Time  `json:"created_at"`
		ExpiresAt    *time.Time `json:"expires_at"`
		IsPermanent  bool       `json:"is_permanent"`
		LastAccessed time.Time  `json:"last_accessed"`
		Clicks       int64      `json:"clicks"`
		OwnerID      *int64     `json:"owner_id"`
	}

	OriginalURLResponse struct {
		OriginalURL string `json:"original_url"`
	}

	MessageResponse struct {
		Message string `json:"message"`
	}

	UpdateExpiryResponse struct {
		Message   string    `json:"message"`
		ExpiresAt time.Time `json:"expires_at"`
	}
)

// Request → Domain
func CreateLinkRequestToDomain(req CreateLinkRequest) models.CreateLinkParams {
	return models.CreateLinkParams{
		OriginalURL: req.OriginalURL,
		CustomAlias: req.CustomAlias,
		IsPermanent: req.IsPermanent,
		ExpiresAt:   req.ExpiresAt.TimePtr(),
	}
}

// Domain → Response
func LinkResponseFromDomain(link models.ShortenedLink, shortURL string) LinkResponse {
	return LinkResponse{
		ID:           link.ID,
		ShortCode:    link.ShortCode,
		ShortURL:     shortURL,
		OriginalURL:  link.OriginalURL,
		CreatedAt:    link.CreatedAt.UTC(),
		ExpiresAt:    link.ExpiresAt,
		IsPermanent:  link.IsPermanent,
		LastAccessed: link.LastAccessed.UTC(),
		Clicks:       link.Clicks,
		OwnerID:      link.OwnerID,
	}
}
