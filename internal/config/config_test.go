package config

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(nil, envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.ServerAddress)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Empty(t, cfg.DatabaseDSN)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 5*time.Minute, cfg.ReaperInterval)
	assert.Equal(t, 7*24*time.Hour, cfg.StaleAfter)
	assert.Equal(t, 24*time.Hour, cfg.AnonymousLinkTTL)
	assert.Equal(t, 30*time.Minute, cfg.JWTAccessExpire)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.GeneratedJWTSecret)

	key, err := base64.StdEncoding.DecodeString(cfg.JWTSecretKey)
	require.NoError(t, err)
	assert.Len(t, key, 32)
}

func TestLoad_EnvOverridesFlags(t *testing.T) {
	secret := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))

	cfg, err := load(
		[]string{"-server-address", ":9090", "-cache-ttl", "10m", "-base-url", "http://sho.rt/"},
		envFrom(map[string]string{
			"CACHE_TTL":      "30m",
			"REDIS_ADDR":     "localhost:6379",
			"REDIS_DB":       "2",
			"DATABASE_DSN":   "postgres://u:p@localhost:5432/links",
			"JWT_SECRET_KEY": secret,
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, "localhost:9090", cfg.ServerAddress)
	assert.Equal(t, "http://sho.rt", cfg.BaseURL)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "postgres://u:p@localhost:5432/links", cfg.DatabaseDSN)
	assert.Equal(t, secret, cfg.JWTSecretKey)
	assert.False(t, cfg.GeneratedJWTSecret)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "Кривая длительность в окружении", env: map[string]string{"REAPER_INTERVAL": "often"}},
		{name: "Кривой номер БД Redis", env: map[string]string{"REDIS_DB": "first"}},
		{name: "Нулевой TTL кэша", args: []string{"-cache-ttl", "0s"}},
		{name: "Короткий JWT ключ", env: map[string]string{"JWT_SECRET_KEY": base64.StdEncoding.EncodeToString([]byte("short"))}},
		{name: "Неизвестный флаг", args: []string{"-file-storage-path", "x.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(tt.args, envFrom(tt.env))
			assert.Error(t, err)
		})
	}
}
