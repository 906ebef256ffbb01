package main

//go:generate swag init --dir ../../ --generalInfo cmd/sercha-scrub/main.go --output ../../docs --parseInternal

// @title           Sercha Scrub API
// @version         1.0
// @description     PII redaction service: replaces emails, persons, organizations and locations in text and documents with stable numbered placeholders.

// @contact.name   Sercha OSS
// @contact.url    https://github.com/custodia-labs/sercha-scrub/issues

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/pflag"

	_ "github.com/custodia-labs/sercha-scrub/docs"
	"github.com/custodia-labs/sercha-scrub/internal/adapters/driven/auth"
	"github.com/custodia-labs/sercha-scrub/internal/adapters/driven/memory"
	"github.com/custodia-labs/sercha-scrub/internal/adapters/driven/postgres"
	"github.com/custodia-labs/sercha-scrub/internal/adapters/driven/recognizer"
	redisadapter "github.com/custodia-labs/sercha-scrub/internal/adapters/driven/redis"
	"github.com/custodia-labs/sercha-scrub/internal/adapters/driving/http"
	"github.com/custodia-labs/sercha-scrub/internal/codecs"
	"github.com/custodia-labs/sercha-scrub/internal/config"
	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-scrub/internal/core/services"
	"github.com/custodia-labs/sercha-scrub/internal/runtime"
)

var version = "dev"

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	// Run mode from RUN_MODE or the first non-flag argument
	mode := cfg.RunMode
	args := os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		mode, args = args[0], args[1:]
	}

	switch mode {
	case "serve":
		err = runServe(cfg, logger)
	case "token":
		err = runToken(cfg, args)
	case "hash-key":
		err = runHashKey(args)
	default:
		err = fmt.Errorf("unknown mode: %s (use: serve, token, or hash-key)", mode)
	}

	if err != nil {
		logger.Error("exiting", "mode", mode, "error", err)
		os.Exit(1)
	}
}

func runServe(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("sercha-scrub starting", "version", version)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// ===== Sentry (optional) =====
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.SentryEnvironment,
			Release:     "sercha-scrub@" + version,
		}); err != nil {
			return fmt.Errorf("failed to initialize sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
		logger.Info("sentry error reporting enabled")
	}

	// ===== Usage store and rate limiter (Redis if available, otherwise in-memory) =====
	var (
		usageStore  driven.UsageStore
		rateLimiter driven.RateLimiter
	)
	if cfg.RedisURL != "" {
		redisClient, err := redisadapter.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		usageStore = redisadapter.NewUsageStore(redisClient)
		if cfg.RateLimitPerMinute > 0 {
			rateLimiter = redisadapter.NewRateLimiter(redisClient, cfg.RateLimitPerMinute, time.Minute)
		}
		logger.Info("using redis usage store")
	} else {
		usageStore = memory.NewUsageStore()
		if cfg.RateLimitPerMinute > 0 {
			rateLimiter = memory.NewRateLimiter(cfg.RateLimitPerMinute)
		}
		logger.Info("using in-memory usage store")
	}

	// ===== Audit store (PostgreSQL if available, otherwise in-memory) =====
	var auditStore driven.AuditStore
	if cfg.DatabaseURL != "" {
		dbConfig := postgres.DefaultConfig(cfg.DatabaseURL)
		dbConfig.MaxOpenConns = cfg.DBMaxOpenConns
		dbConfig.MaxIdleConns = cfg.DBMaxIdleConns

		db, err := postgres.Connect(ctx, dbConfig)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.InitSchema(ctx); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
		auditStore = postgres.NewAuditStore(db)
		logger.Info("using postgres audit store")
	} else {
		auditStore = memory.NewAuditStore(cfg.AuditCapacity)
		logger.Info("using in-memory audit store", "capacity", cfg.AuditCapacity)
	}

	// ===== Recognizer =====
	recognizerFactory := recognizer.NewFactory()
	runtimeServices := runtime.NewServices()
	defer runtimeServices.Close()

	initial, err := recognizerFactory.Create(cfg.RecognizerURL, int(cfg.RecognizerTimeout/time.Second))
	if err != nil {
		return fmt.Errorf("invalid RECOGNIZER_URL: %w", err)
	}
	runtimeServices.SetRecognizer(initial, cfg.RecognizerURL)
	if cfg.RecognizerURL == "" {
		logger.Warn("RECOGNIZER_URL not set, only email addresses will be redacted")
	} else if err := initial.HealthCheck(ctx); err != nil {
		logger.Warn("recognizer health check failed, redaction requests will fail until it recovers",
			"endpoint", cfg.RecognizerURL, "error", err)
	} else {
		logger.Info("recognizer connected", "endpoint", cfg.RecognizerURL)
	}

	// ===== Services =====
	authAdapter := auth.NewAdapter(cfg.JWTSecret)
	authService := services.NewAuthService(services.AuthServiceConfig{
		Adapter:       authAdapter,
		TokensEnabled: cfg.JWTSecret != "",
		APIKeys:       cfg.APIKeys,
	})
	if !authService.Enabled() {
		logger.Warn("no JWT_SECRET or API_KEY_HASHES configured, authentication is disabled")
	}

	redactionService := services.NewRedactionService(services.RedactionServiceConfig{
		Recognizers: runtimeServices,
		Codecs:      codecs.DefaultRegistry(),
		AuditStore:  auditStore,
		UsageStore:  usageStore,
		Logger:      logger,
	})
	adminService := services.NewAdminService(services.AdminServiceConfig{
		Services:          runtimeServices,
		RecognizerFactory: recognizerFactory,
		AuditStore:        auditStore,
		UsageStore:        usageStore,
		Logger:            logger,
	})

	server := http.NewServer(http.Config{
		Host:         cfg.Host,
		Port:         cfg.Port,
		Version:      version,
		MaxBodyBytes: cfg.MaxBodyBytes,
		CORSOrigins:  cfg.CORSOrigins,
		H2C:          cfg.H2CEnabled,
		Logger:       logger,
	}, redactionService, authService, adminService, rateLimiter)

	logger.Info("media types", "supported", redactionService.MediaTypes())
	return server.Start()
}

// runToken mints a bearer token for a service client
func runToken(cfg *config.Config, args []string) error {
	fs := pflag.NewFlagSet("token", pflag.ContinueOnError)
	clientID := fs.StringP("client", "c", "", "client id to embed in the token")
	role := fs.StringP("role", "r", string(domain.RoleClient), "role: client or admin")
	ttl := fs.Duration("ttl", services.DefaultTokenTTL, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set to issue tokens")
	}

	authService := services.NewAuthService(services.AuthServiceConfig{
		Adapter:       auth.NewAdapter(cfg.JWTSecret),
		TokensEnabled: true,
	})
	token, err := authService.IssueToken(context.Background(), *clientID, domain.Role(*role), *ttl)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}

// runHashKey prints the bcrypt hash of an API key, generating a key if none is given
func runHashKey(args []string) error {
	fs := pflag.NewFlagSet("hash-key", pflag.ContinueOnError)
	key := fs.StringP("key", "k", "", "API key to hash (generated when empty)")
	clientID := fs.StringP("client", "c", "", "client id for the API_KEY_HASHES entry")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *key == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return fmt.Errorf("failed to generate key: %w", err)
		}
		*key = base64.RawURLEncoding.EncodeToString(buf)
		fmt.Printf("key:  %s\n", *key)
	}

	hash, err := auth.NewAdapter("").HashKey(*key)
	if err != nil {
		return err
	}

	if *clientID != "" {
		fmt.Printf("API_KEY_HASHES entry: %s:%s\n", *clientID, hash)
		return nil
	}
	fmt.Printf("hash: %s\n", hash)
	return nil
}
