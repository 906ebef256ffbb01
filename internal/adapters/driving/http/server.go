package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driving"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured
const DefaultMaxBodyBytes int64 = 20 << 20

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string
	logger     *slog.Logger

	maxBodyBytes int64
	corsOrigins  []string

	// Services
	redactionService driving.RedactionService
	authService      driving.AuthService
	adminService     driving.AdminService

	// Infrastructure
	rateLimiter driven.RateLimiter // optional
}

// Config holds server configuration
type Config struct {
	Host         string
	Port         int
	Version      string
	MaxBodyBytes int64
	CORSOrigins  []string

	// H2C serves HTTP/2 over cleartext alongside HTTP/1.1
	H2C bool

	Logger *slog.Logger
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         8080,
		Version:      "dev",
		MaxBodyBytes: DefaultMaxBodyBytes,
		CORSOrigins:  []string{"*"},
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	redactionService driving.RedactionService,
	authService driving.AuthService,
	adminService driving.AdminService,
	rateLimiter driven.RateLimiter, // can be nil
) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	s := &Server{
		router:           http.NewServeMux(),
		version:          cfg.Version,
		logger:           logger,
		maxBodyBytes:     maxBody,
		corsOrigins:      cfg.CORSOrigins,
		redactionService: redactionService,
		authService:      authService,
		adminService:     adminService,
		rateLimiter:      rateLimiter,
	}

	s.setupRoutes()

	handler := s.Handler()
	if cfg.H2C {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Handler returns the router wrapped in the global middleware chain:
// request ID, logging, panic recovery, CORS.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	h = NewCORSMiddleware(s.corsOrigins).Handler(h)
	h = NewRecoveryMiddleware(s.logger).Handler(h)
	h = NewLoggingMiddleware(s.logger).Handler(h)
	h = RequestID(h)
	return h
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.authService)
	limit := NewRateLimitMiddleware(s.rateLimiter, s.logger)

	client := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.Authenticate(limit.Handler(h))
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.Authenticate(authMiddleware.RequireAdmin(h))
	}

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)
	s.router.HandleFunc("GET /swagger/doc.json", s.handleSwaggerDoc)

	// Tool server endpoints
	s.router.HandleFunc("GET /{$}", s.handleRoot)
	s.router.HandleFunc("GET /toolspec", s.handleToolSpec)
	s.router.Handle("POST /scrub", client(s.handleScrub))

	// Redaction endpoints (authenticated, rate limited)
	s.router.Handle("POST /api/v1/redact/text", client(s.handleRedactText))
	s.router.Handle("POST /api/v1/redact/document", client(s.handleRedactDocument))

	// Admin endpoints (admin-only)
	s.router.Handle("GET /api/v1/stats", admin(s.handleStats))
	s.router.Handle("GET /api/v1/admin/events", admin(s.handleListEvents))
	s.router.Handle("GET /api/v1/admin/recognizer", admin(s.handleGetRecognizer))
	s.router.Handle("PUT /api/v1/admin/recognizer", admin(s.handleUpdateRecognizer))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
