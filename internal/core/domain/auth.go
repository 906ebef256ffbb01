package domain

// Role determines which endpoints a client may call
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleClient
}

// AuthContext contains authenticated client info for request context
type AuthContext struct {
	ClientID string `json:"client_id"`
	Role     Role   `json:"role"`
	Method   string `json:"method"` // "jwt", "api_key" or "anonymous"
}

// IsAdmin checks if the authenticated client is an admin
func (a *AuthContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// TokenClaims represents the JWT token payload
type TokenClaims struct {
	ClientID  string `json:"client_id"`
	Role      Role   `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// APIKey is a configured static key, stored only as a bcrypt hash
type APIKey struct {
	ClientID string
	Hash     string
	Role     Role
}
