package driven

import "github.com/custodia-labs/sercha-scrub/internal/core/domain"

// AuthAdapter handles authentication cryptographic operations.
type AuthAdapter interface {
	// API key operations
	HashKey(key string) (string, error)
	VerifyKey(key, hash string) bool

	// Token operations
	GenerateToken(claims *domain.TokenClaims) (string, error)
	ParseToken(token string) (*domain.TokenClaims, error)
}
