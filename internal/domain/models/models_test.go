package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShortenedLink_IsExpired(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Hour)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{name: "permanent link", expiresAt: nil, want: false},
		{name: "expired in the past", expiresAt: &past, want: true},
		{name: "expires exactly now", expiresAt: &now, want: true},
		{name: "expires in the future", expiresAt: &future, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := ShortenedLink{ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, link.IsExpired(now))
		})
	}
}

func TestShortenedLink_CanBeModifiedBy(t *testing.T) {
	owner := int64(7)

	tests := []struct {
		name      string
		ownerID   *int64
		principal *Principal
		want      bool
	}{
		{name: "unowned link, anonymous", ownerID: nil, principal: nil, want: true},
		{name: "unowned link, any user", ownerID: nil, principal: &Principal{UserID: 3}, want: true},
		{name: "owned link, anonymous", ownerID: &owner, principal: nil, want: false},
		{name: "owned link, other user", ownerID: &owner, principal: &Principal{UserID: 3}, want: false},
		{name: "owned link, owner", ownerID: &owner, principal: &Principal{UserID: 7}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := ShortenedLink{OwnerID: tt.ownerID}
			assert.Equal(t, tt.want, link.CanBeModifiedBy(tt.principal))
		})
	}
}
