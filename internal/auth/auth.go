package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload embedded in issued bearer tokens: the user
// identity plus the ids of every role assigned to that user.
type Claims struct {
	UserID  int64   `json:"user_id"`
	RoleIDs []int64 `json:"role_ids"`
	jwt.RegisteredClaims
}

// HasRole reports whether the token carries the given role id.
func (c *Claims) HasRole(roleID int64) bool {
	for _, id := range c.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

// TokenGenerator creates and validates signed bearer tokens.
type TokenGenerator interface {
	Generate(userID int64, roleIDs []int64) (token string, err error)
	Validate(tokenString string) (*Claims, error)
}

// UserRepository is the persistence surface the auth service needs:
// credential lookup by email and the role ids used as token claims.
type UserRepository interface {
	GetCredentialsByEmail(email string) (userID int64, passwordHash string, err error)
	GetRoleIDsForUser(userID int64) ([]int64, error)
}

// LoginResponse is returned to the client on successful authentication.
type LoginResponse struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// JWTTokenGenerator signs HS256 tokens with a symmetric secret.
type JWTTokenGenerator struct {
	Secret   []byte
	TokenTTL time.Duration
}
