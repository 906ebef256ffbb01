package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driving"
)

// DefaultTokenTTL is used when IssueToken is called without a TTL
const DefaultTokenTTL = 24 * time.Hour

// anonymousClientID identifies requests served while auth is disabled
const anonymousClientID = "anonymous"

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// AuthServiceConfig holds dependencies for the auth service
type AuthServiceConfig struct {
	Adapter driven.AuthAdapter

	// TokensEnabled is true when a JWT secret is configured
	TokensEnabled bool

	// APIKeys are the configured static keys
	APIKeys []domain.APIKey
}

// authService implements the AuthService interface
type authService struct {
	authAdapter   driven.AuthAdapter
	tokensEnabled bool
	apiKeys       []domain.APIKey
	now           func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(cfg AuthServiceConfig) driving.AuthService {
	return &authService{
		authAdapter:   cfg.Adapter,
		tokensEnabled: cfg.TokensEnabled,
		apiKeys:       cfg.APIKeys,
		now:           time.Now,
	}
}

// Enabled reports whether any credentials are configured
func (s *authService) Enabled() bool {
	return s.tokensEnabled || len(s.apiKeys) > 0
}

// Anonymous returns the context for unauthenticated local use.
// With auth disabled the service runs as a local tool with full access.
func (s *authService) Anonymous() *domain.AuthContext {
	return &domain.AuthContext{
		ClientID: anonymousClientID,
		Role:     domain.RoleAdmin,
		Method:   "anonymous",
	}
}

// ValidateToken validates a bearer token and returns the auth context
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}
	if !s.tokensEnabled {
		return nil, domain.ErrUnauthorized
	}

	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		return nil, err
	}

	if claims.ExpiresAt != 0 && s.now().Unix() > claims.ExpiresAt {
		return nil, domain.ErrTokenExpired
	}

	return &domain.AuthContext{
		ClientID: claims.ClientID,
		Role:     claims.Role,
		Method:   "jwt",
	}, nil
}

// ValidateAPIKey checks a static API key against the configured hashes
func (s *authService) ValidateAPIKey(ctx context.Context, key string) (*domain.AuthContext, error) {
	if key == "" {
		return nil, domain.ErrUnauthorized
	}

	for _, k := range s.apiKeys {
		if s.authAdapter.VerifyKey(key, k.Hash) {
			role := k.Role
			if role == "" {
				role = domain.RoleClient
			}
			return &domain.AuthContext{
				ClientID: k.ClientID,
				Role:     role,
				Method:   "api_key",
			}, nil
		}
	}

	return nil, domain.ErrUnauthorized
}

// IssueToken mints a bearer token for a client
func (s *authService) IssueToken(ctx context.Context, clientID string, role domain.Role, ttl time.Duration) (string, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return "", fmt.Errorf("%w: client id is required", domain.ErrInvalidInput)
	}
	if role == "" {
		role = domain.RoleClient
	}
	if !role.IsValid() {
		return "", fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	now := s.now()
	return s.authAdapter.GenerateToken(&domain.TokenClaims{
		ClientID:  clientID,
		Role:      role,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	})
}
