package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	cacheinmemory "shortlinks/internal/cache/inmemory"
	"shortlinks/internal/config"
	"shortlinks/internal/http/dto"
	"shortlinks/internal/metrics"
	storeinmemory "shortlinks/internal/repository/inmemory"
	"shortlinks/internal/services/auth"
	"shortlinks/internal/services/url_shortener"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type testApp struct {
	t       *testing.T
	handler http.Handler
	clock   clockwork.FakeClock
	cache   *cacheinmemory.Cache
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	log := zerolog.Nop()
	clock := clockwork.NewFakeClockAt(testNow)
	storage := storeinmemory.NewStorage()
	cache := cacheinmemory.NewCache(clock)
	m := metrics.New()

	svc := url_shortener.NewServiceURLShortener(storage, cache, &log, "http://sho.rt",
		url_shortener.WithClock(clock), url_shortener.WithMetrics(m))
	authService, err := auth.NewAuthentication(storage, &log,
		base64.StdEncoding.EncodeToString([]byte("test-secret-key-32-bytes-long!!!")), 30*time.Minute,
		auth.WithClock(clock), auth.WithHashCost(bcrypt.MinCost))
	require.NoError(t, err)

	srv, err := NewServer(&log, config.Config{ServerAddress: "localhost:0"}, svc, authService, m.Handler())
	require.NoError(t, err)

	return &testApp{t: t, handler: srv.Handler(), clock: clock, cache: cache}
}

func (a *testApp) do(method, target, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) userToken(username string) string {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/register", "", dto.RegisterRequest{
		Username: username, Email: username + "@example.com", Password: "secret1",
	})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.do(http.MethodPost, "/login", "", dto.LoginRequest{Username: username, Password: "secret1"})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.TokenResponse
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestServer_RegisterAndLogin(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/register", "", dto.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	user := decode[dto.UserResponse](t, rec)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.IsActive)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = app.do(http.MethodPost, "/register", "", dto.RegisterRequest{
		Username: "alice", Email: "other@example.com", Password: "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodPost, "/register", "", dto.RegisterRequest{
		Username: "bob", Email: "nope", Password: "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// форма вместо JSON
	form := url.Values{"username": {"alice"}, "password": {"secret1"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	formRec := httptest.NewRecorder()
	app.handler.ServeHTTP(formRec, req)
	require.Equal(t, http.StatusOK, formRec.Code)
	assert.NotEmpty(t, decode[dto.TokenResponse](t, formRec).Token)

	rec = app.do(http.MethodPost, "/login", "", dto.LoginRequest{Username: "alice", Password: "wrong!!"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"unauthorized: incorrect username or password"}`, rec.Body.String())
}

func TestServer_AnonymousLinkLifecycle(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/links/shorten", "", dto.CreateLinkRequest{
		OriginalURL: "https://example.com/very/long",
		IsPermanent: func() *bool { b := true; return &b }(),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	link := decode[dto.LinkResponse](t, rec)
	assert.Len(t, link.ShortCode, 10)
	assert.Equal(t, "http://sho.rt/links/"+link.ShortCode, link.ShortURL)
	assert.False(t, link.IsPermanent)
	require.NotNil(t, link.ExpiresAt)
	assert.True(t, testNow.Add(24*time.Hour).Equal(*link.ExpiresAt))
	assert.Nil(t, link.OwnerID)
	assert.NotZero(t, link.ID)

	for i := 0; i < 2; i++ {
		rec = app.do(http.MethodGet, "/links/"+link.ShortCode, "", nil)
		require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, "https://example.com/very/long", rec.Header().Get("Location"))
	}

	rec = app.do(http.MethodGet, "/links/"+link.ShortCode+"/stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), decode[dto.LinkResponse](t, rec).Clicks)

	rec = app.do(http.MethodGet, "/links/"+link.ShortCode+"/original", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"original_url":"https://example.com/very/long"}`, rec.Body.String())

	// original и stats не считают переходы
	rec = app.do(http.MethodGet, "/links/"+link.ShortCode+"/stats", "", nil)
	assert.Equal(t, int64(2), decode[dto.LinkResponse](t, rec).Clicks)

	app.clock.Advance(25 * time.Hour)
	rec = app.do(http.MethodGet, "/links/"+link.ShortCode, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_OwnedLink(t *testing.T) {
	app := newTestApp(t)
	alice := app.userToken("alice")
	bob := app.userToken("bob")

	rec := app.do(http.MethodPost, "/links/shorten", alice, dto.CreateLinkRequest{
		OriginalURL: "https://example.com/promo",
		CustomAlias: "promo",
		IsPermanent: func() *bool { b := true; return &b }(),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	link := decode[dto.LinkResponse](t, rec)
	assert.True(t, link.IsPermanent)
	assert.Nil(t, link.ExpiresAt)
	require.NotNil(t, link.OwnerID)

	rec = app.do(http.MethodPost, "/links/shorten", bob, dto.CreateLinkRequest{
		OriginalURL: "https://example.com/other",
		CustomAlias: "promo",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodGet, "/links/promo", "", nil)
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	require.Equal(t, 1, app.cache.Len())

	for _, token := range []string{"", bob, "forged.token.value"} {
		rec = app.do(http.MethodDelete, "/links/promo", token, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = app.do(http.MethodPut, "/links/promo?new_short_code=stolen", token, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = app.do(http.MethodPost, "/links/promo/update_expiry", token, map[string]string{
			"expires_at": testNow.Add(time.Hour).Format(time.RFC3339),
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	}

	rec = app.do(http.MethodPut, "/links/promo", alice, dto.RenameLinkRequest{NewShortCode: "sale"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "sale", decode[dto.LinkResponse](t, rec).ShortCode)
	assert.Equal(t, 0, app.cache.Len())

	rec = app.do(http.MethodGet, "/links/promo", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodPost, "/links/sale/update_expiry", alice, map[string]string{
		"expires_at": "2025-03-01T18:00:00+03:00",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"expiry updated","expires_at":"2025-03-01T15:00:00Z"}`, rec.Body.String())

	rec = app.do(http.MethodPost, "/links/sale/update_expiry", alice, map[string]string{"expires_at": "tomorrow"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodDelete, "/links/sale", "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = app.do(http.MethodDelete, "/links/sale?token="+alice, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"link deleted"}`, rec.Body.String())

	rec = app.do(http.MethodGet, "/links/sale", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = app.do(http.MethodDelete, "/links/sale", alice, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ExpiryWithoutTimezone(t *testing.T) {
	app := newTestApp(t)
	alice := app.userToken("alice")

	// без зоны значит UTC
	rec := app.do(http.MethodPost, "/links/shorten", alice, map[string]string{
		"original_url": "https://example.com/promo",
		"custom_alias": "promo",
		"expires_at":   "2025-03-02T12:00:00",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	link := decode[dto.LinkResponse](t, rec)
	require.NotNil(t, link.ExpiresAt)
	assert.Equal(t, "2025-03-02T12:00:00Z", link.ExpiresAt.UTC().Format(time.RFC3339))

	rec = app.do(http.MethodPost, "/links/promo/update_expiry", alice, map[string]string{
		"expires_at": "2025-03-05T12:00:00",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"expiry updated","expires_at":"2025-03-05T12:00:00Z"}`, rec.Body.String())

	rec = app.do(http.MethodGet, "/links/promo/stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[dto.LinkResponse](t, rec)
	require.NotNil(t, stats.ExpiresAt)
	assert.Equal(t, "2025-03-05T12:00:00Z", stats.ExpiresAt.UTC().Format(time.RFC3339))
	assert.Equal(t, link.ID, stats.ID)

	rec = app.do(http.MethodPost, "/links/promo/update_expiry", alice, map[string]string{
		"expires_at": "2025-03-06T12:00:00+03:00",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"expiry updated","expires_at":"2025-03-06T09:00:00Z"}`, rec.Body.String())

	for _, bad := range []string{"next week", "05.03.2025"} {
		rec = app.do(http.MethodPost, "/links/promo/update_expiry", alice, map[string]string{"expires_at": bad})
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
		assert.Contains(t, rec.Body.String(), "ISO 8601")

		rec = app.do(http.MethodPost, "/links/shorten", alice, map[string]string{
			"original_url": "https://example.com/x",
			"expires_at":   bad,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
	}
}

func TestServer_Validation(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name   string
		method string
		target string
		body   any
		want   int
	}{
		{name: "Невалидный URL", method: http.MethodPost, target: "/links/shorten", body: dto.CreateLinkRequest{OriginalURL: "ftp//nope"}, want: http.StatusBadRequest},
		{name: "Невалидный алиас", method: http.MethodPost, target: "/links/shorten", body: dto.CreateLinkRequest{OriginalURL: "https://example.com", CustomAlias: "a/b"}, want: http.StatusBadRequest},
		{name: "Битый JSON", method: http.MethodPost, target: "/links/shorten", body: "{", want: http.StatusBadRequest},
		{name: "Неизвестный код", method: http.MethodGet, target: "/links/missing", want: http.StatusNotFound},
		{name: "Статистика неизвестного кода", method: http.MethodGet, target: "/links/missing/stats", want: http.StatusNotFound},
		{name: "Переименование без нового кода", method: http.MethodPut, target: "/links/missing", want: http.StatusBadRequest},
		{name: "Неизвестный маршрут", method: http.MethodGet, target: "/nowhere", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(tt.method, tt.target, "", tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestServer_PingAndMetrics(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = app.do(http.MethodPost, "/links/shorten", "", dto.CreateLinkRequest{OriginalURL: "https://example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "shortlinks_links_created_total 1")
}

func TestNewServer_Validation(t *testing.T) {
	log := zerolog.Nop()

	_, err := NewServer(&log, config.Config{}, nil, nil, nil)
	assert.Error(t, err)

	_, err = NewServer(nil, config.Config{ServerAddress: "localhost:0"}, nil, nil, nil)
	assert.Error(t, err)
}
