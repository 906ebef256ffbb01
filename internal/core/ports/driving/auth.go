package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
)

// AuthService authenticates API clients
type AuthService interface {
	// Enabled reports whether any credentials are configured.
	// When false every request is served as the anonymous client.
	Enabled() bool

	// Anonymous returns the auth context used when auth is disabled
	Anonymous() *domain.AuthContext

	// ValidateToken validates a bearer token and returns the auth context
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)

	// ValidateAPIKey checks a static API key against the configured hashes
	ValidateAPIKey(ctx context.Context, key string) (*domain.AuthContext, error)

	// IssueToken mints a bearer token for a client
	IssueToken(ctx context.Context, clientID string, role domain.Role, ttl time.Duration) (string, error)
}
