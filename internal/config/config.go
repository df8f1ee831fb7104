package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	envServerAddress    = "SERVER_ADDRESS"
	envBaseURL          = "BASE_URL"
	envDatabaseDSN      = "DATABASE_DSN"
	envRedisAddr        = "REDIS_ADDR"
	envRedisPassword    = "REDIS_PASSWORD"
	envRedisDB          = "REDIS_DB"
	envCacheTTL         = "CACHE_TTL"
	envReaperInterval   = "REAPER_INTERVAL"
	envStaleAfter       = "STALE_AFTER"
	envAnonymousLinkTTL = "ANONYMOUS_LINK_TTL"
	envJWTSecretKey     = "JWT_SECRET_KEY"
	envJWTAccessExpire  = "JWT_ACCESS_EXPIRE"
	envLogLevel         = "LOG_LEVEL"
	envShutdownTimeout  = "SHUTDOWN_TIMEOUT"
)

const (
	defaultServerAddress    = "localhost:8080"
	defaultBaseURL          = "http://localhost:8080"
	defaultCacheTTL         = time.Hour
	defaultReaperInterval   = 5 * time.Minute
	defaultStaleAfter       = 7 * 24 * time.Hour
	defaultAnonymousLinkTTL = 24 * time.Hour
	defaultJWTAccessExpire  = 30 * time.Minute
	defaultLogLevel         = "info"
	defaultShutdownTimeout  = 10 * time.Second
)

type Config struct {
	ServerAddress string
	BaseURL       string

	// Пустой DSN - хранилище в памяти, пустой адрес Redis - кэш в памяти
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CacheTTL         time.Duration
	ReaperInterval   time.Duration
	StaleAfter       time.Duration
	AnonymousLinkTTL time.Duration

	JWTSecretKey       string // Минимум 32 байта для HS256, base64
	JWTAccessExpire    time.Duration
	GeneratedJWTSecret bool

	LogLevel        string
	ShutdownTimeout time.Duration
}

// NewConfig собирает конфигурацию: значения по умолчанию, затем флаги, затем окружение (включая .env)
func NewConfig() (*Config, error) {
	_ = godotenv.Load() // .env может отсутствовать, это нормально

	return load(os.Args[1:], os.LookupEnv)
}

func load(args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := &Config{
		ServerAddress:    defaultServerAddress,
		BaseURL:          defaultBaseURL,
		CacheTTL:         defaultCacheTTL,
		ReaperInterval:   defaultReaperInterval,
		StaleAfter:       defaultStaleAfter,
		AnonymousLinkTTL: defaultAnonymousLinkTTL,
		JWTAccessExpire:  defaultJWTAccessExpire,
		LogLevel:         defaultLogLevel,
		ShutdownTimeout:  defaultShutdownTimeout,
	}

	fs := flag.NewFlagSet("shortlinks", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerAddress, "server-address", cfg.ServerAddress, "Server address")
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Base URL for short links")
	fs.StringVar(&cfg.DatabaseDSN, "database-dsn", cfg.DatabaseDSN, "PostgreSQL DSN, empty for in-memory store")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address, empty for in-memory cache")
	fs.StringVar(&cfg.RedisPassword, "redis-password", cfg.RedisPassword, "Redis password")
	fs.IntVar(&cfg.RedisDB, "redis-db", cfg.RedisDB, "Redis database number")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "Resolution cache TTL")
	fs.DurationVar(&cfg.ReaperInterval, "reaper-interval", cfg.ReaperInterval, "Interval between reaper cycles")
	fs.DurationVar(&cfg.StaleAfter, "stale-after", cfg.StaleAfter, "Links not accessed for this long are reaped")
	fs.DurationVar(&cfg.AnonymousLinkTTL, "anonymous-link-ttl", cfg.AnonymousLinkTTL, "Lifetime of links without explicit expiry")
	fs.DurationVar(&cfg.JWTAccessExpire, "jwt-access-expire", cfg.JWTAccessExpire, "JWT access token expiration")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Graceful shutdown timeout")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	env := envReader{lookup: lookupEnv}
	env.setString(envServerAddress, &cfg.ServerAddress)
	env.setString(envBaseURL, &cfg.BaseURL)
	env.setString(envDatabaseDSN, &cfg.DatabaseDSN)
	env.setString(envRedisAddr, &cfg.RedisAddr)
	env.setString(envRedisPassword, &cfg.RedisPassword)
	env.setInt(envRedisDB, &cfg.RedisDB)
	env.setDuration(envCacheTTL, &cfg.CacheTTL)
	env.setDuration(envReaperInterval, &cfg.ReaperInterval)
	env.setDuration(envStaleAfter, &cfg.StaleAfter)
	env.setDuration(envAnonymousLinkTTL, &cfg.AnonymousLinkTTL)
	env.setString(envJWTSecretKey, &cfg.JWTSecretKey)
	env.setDuration(envJWTAccessExpire, &cfg.JWTAccessExpire)
	env.setString(envLogLevel, &cfg.LogLevel)
	env.setDuration(envShutdownTimeout, &cfg.ShutdownTimeout)
	if env.err != nil {
		return nil, env.err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := cfg.ensureJWTSecret(); err != nil {
		return nil, err
	}
	cfg.normalize()

	return cfg, nil
}

type envReader struct {
	lookup func(string) (string, bool)
	err    error
}

func (e *envReader) setString(key string, target *string) {
	if val, ok := e.lookup(key); ok {
		*target = val
	}
}

func (e *envReader) setInt(key string, target *int) {
	val, ok := e.lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		e.err = errors.Join(e.err, fmt.Errorf("%s: %w", key, err))
		return
	}
	*target = n
}

func (e *envReader) setDuration(key string, target *time.Duration) {
	val, ok := e.lookup(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		e.err = errors.Join(e.err, fmt.Errorf("%s: %w", key, err))
		return
	}
	*target = d
}

func (c *Config) validate() error {
	durations := map[string]time.Duration{
		envCacheTTL:         c.CacheTTL,
		envReaperInterval:   c.ReaperInterval,
		envStaleAfter:       c.StaleAfter,
		envAnonymousLinkTTL: c.AnonymousLinkTTL,
		envJWTAccessExpire:  c.JWTAccessExpire,
		envShutdownTimeout:  c.ShutdownTimeout,
	}

	var err error
	for key, d := range durations {
		if d <= 0 {
			err = errors.Join(err, fmt.Errorf("%s must be positive, got %s", key, d))
		}
	}
	if c.ServerAddress == "" {
		err = errors.Join(err, errors.New("server address cannot be empty"))
	}
	return err
}

func (c *Config) ensureJWTSecret() error {
	if c.JWTSecretKey == "" {
		// ключ для разработки, токены не переживут рестарт
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return fmt.Errorf("failed to generate JWT secret key: %w", err)
		}
		c.JWTSecretKey = base64.StdEncoding.EncodeToString(key)
		c.GeneratedJWTSecret = true
		return nil
	}

	key, err := base64.StdEncoding.DecodeString(c.JWTSecretKey)
	if err != nil || len(key) < 32 {
		return errors.New("JWT secret key must be base64 of at least 32 bytes")
	}
	return nil
}

func (c *Config) normalize() {
	if strings.HasPrefix(c.ServerAddress, ":") {
		c.ServerAddress = "localhost" + c.ServerAddress
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
}
