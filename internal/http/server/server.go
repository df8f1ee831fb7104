package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"shortlinks/internal/config"
	"shortlinks/internal/domain/models"
	"shortlinks/internal/http/handlers/link/create"
	"shortlinks/internal/http/handlers/link/original"
	"shortlinks/internal/http/handlers/link/redirect"
	"shortlinks/internal/http/handlers/link/remove"
	"shortlinks/internal/http/handlers/link/rename"
	"shortlinks/internal/http/handlers/link/stats"
	"shortlinks/internal/http/handlers/link/update_expiry"
	"shortlinks/internal/http/handlers/middlewares/auth"
	"shortlinks/internal/http/handlers/middlewares/compress"
	"shortlinks/internal/http/handlers/middlewares/logger"
	"shortlinks/internal/http/handlers/system/ping"
	"shortlinks/internal/http/handlers/user/login"
	"shortlinks/internal/http/handlers/user/register"
	"shortlinks/internal/http/httputils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type Authentication interface {
	Register(ctx context.Context, username, email, password string) (models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Principal(ctx context.Context, jwtToken string) (*models.Principal, error)
}

type URLShortener interface {
	Create(ctx context.Context, params models.CreateLinkParams, principal *models.Principal) (models.ShortenedLink, error)
	Resolve(ctx context.Context, shortCode string) (string, error)
	Stats(ctx context.Context, shortCode string) (models.ShortenedLink, error)
	GetOriginalURL(ctx context.Context, shortCode string) (string, error)
	UpdateShortCode(ctx context.Context, shortCode, newShortCode string, principal *models.Principal) (models.ShortenedLink, error)
	UpdateExpiry(ctx context.Context, shortCode string, expiresAt time.Time, principal *models.Principal) (models.ShortenedLink, error)
	Delete(ctx context.Context, shortCode string, principal *models.Principal) error
	GetShortURL(shortCode string) string
	PingDataBase(ctx context.Context) error
}

type Server struct {
	httpServer  *http.Server
	router      *mux.Router
	log         *zerolog.Logger
	urlService  URLShortener
	authService Authentication
	metrics     http.Handler
	cfg         config.Config
}

// NewServer собирает роутер. metricsHandler может быть nil, тогда /metrics не регистрируется.
func NewServer(log *zerolog.Logger, cfg config.Config, svc URLShortener, authService Authentication, metricsHandler http.Handler) (*Server, error) {
	if cfg.ServerAddress == "" {
		return nil, errors.New("server address cannot be empty")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if svc == nil {
		return nil, errors.New("service cannot be nil")
	}
	if authService == nil {
		return nil, errors.New("auth service cannot be nil")
	}

	s := &Server{
		router:      mux.NewRouter(),
		cfg:         cfg,
		log:         log,
		urlService:  svc,
		authService: authService,
		metrics:     metricsHandler,
	}

	s.httpServer = &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           s.router,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(logger.MiddlewareLogging(s.log))
	s.router.Use(compress.MiddlewareCompressing())
	s.router.Use(auth.MiddlewareAuth(s.authService, s.log))

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputils.WriteJSONError(w, http.StatusNotFound, "route not found")
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputils.WriteJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	/*
		System
	*/
	s.router.HandleFunc("/ping", ping.HandlerPing(s.urlService, s.log)).Methods(http.MethodGet)
	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics).Methods(http.MethodGet)
	}

	/*
		Users
	*/
	s.router.HandleFunc("/register", register.HandlerRegister(s.authService, s.log)).Methods(http.MethodPost)
	s.router.HandleFunc("/login", login.HandlerLogin(s.authService, s.log)).Methods(http.MethodPost)

	/*
		Links: принципал опционален, права проверяет сервис
	*/
	links := s.router.PathPrefix("/links").Subrouter()
	links.HandleFunc("/shorten", create.HandlerCreate(s.urlService, s.log)).Methods(http.MethodPost)
	links.HandleFunc("/{code}/stats", stats.HandlerStats(s.urlService, s.log)).Methods(http.MethodGet)
	links.HandleFunc("/{code}/original", original.HandlerOriginal(s.urlService, s.log)).Methods(http.MethodGet)
	links.HandleFunc("/{code}/update_expiry", update_expiry.HandlerUpdateExpiry(s.urlService, s.log)).Methods(http.MethodPost)
	links.HandleFunc("/{code}", redirect.HandlerRedirect(s.urlService, s.log)).Methods(http.MethodGet) // 307
	links.HandleFunc("/{code}", rename.HandlerRename(s.urlService, s.log)).Methods(http.MethodPut)
	links.HandleFunc("/{code}", remove.HandlerDelete(s.urlService, s.log)).Methods(http.MethodDelete)
}

// Handler отдает роутер со всеми middleware, удобно для httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start блокируется до остановки сервера. После Shutdown возвращает nil.
func (s *Server) Start() error {
	s.log.Info().Str("address", s.cfg.ServerAddress).Msg("Starting server")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down server")
	return s.httpServer.Shutdown(ctx)
}
