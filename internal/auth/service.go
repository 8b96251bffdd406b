package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/access-management/internal"
)

// Service authenticates users and issues bearer tokens.
type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	hasher         *PasswordHasher
	logger         *slog.Logger
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, hasher *PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		hasher:         hasher,
		logger:         logger,
	}
}

// Login validates the credentials and returns a signed token carrying
// the user's role ids. An unknown email and a wrong password both
// collapse into the same InvalidCredentials failure so callers cannot
// enumerate accounts.
func (s *Service) Login(dto LoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	userID, storedHash, err := s.userRepo.GetCredentialsByEmail(dto.Email)
	if err != nil {
		s.logger.Warn("login failed: user lookup", "email", dto.Email)
		return nil, internal.ErrInvalidCredentials
	}

	if !s.hasher.Verify(dto.Password, storedHash) {
		s.logger.Warn("login failed: password mismatch", "user_id", userID)
		return nil, internal.ErrInvalidCredentials
	}

	roleIDs, err := s.userRepo.GetRoleIDsForUser(userID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load user roles", err)
	}

	token, err := s.tokenGenerator.Generate(userID, roleIDs)
	if err != nil {
		return nil, internal.NewInternalError("failed to sign token", err)
	}

	s.logger.Info("user authenticated", "user_id", userID, "roles", len(roleIDs))

	return &LoginResponse{Email: dto.Email, Token: token}, nil
}

// ValidateToken verifies a bearer token and returns its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.Validate(tokenString)
}

// NewJWTTokenGenerator creates a token generator signing with the given
// symmetric secret. Tokens expire after ttl (1 day when zero). A
// negative ttl is kept as-is and yields already-expired tokens.
func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &JWTTokenGenerator{
		Secret:   []byte(secret),
		TokenTTL: ttl,
	}
}

// Generate signs a HS256 token embedding the user id and role ids.
func (j *JWTTokenGenerator) Generate(userID int64, roleIDs []int64) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID:  userID,
		RoleIDs: roleIDs,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// Validate parses and verifies a token string. It fails when the
// signature is wrong, the token is malformed or the expiry has passed.
func (j *JWTTokenGenerator) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}

// PasswordHasher wraps bcrypt with a configured work factor.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash produces a salted one-way hash. The same plaintext hashed twice
// yields different values; both verify against the original.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash. A mismatch
// is a plain false, not an error.
func (h *PasswordHasher) Verify(plaintext, hashedValue string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedValue), []byte(plaintext)) == nil
}
