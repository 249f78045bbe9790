package utils

import (
	"errors"                          // Error classification
	"fitness_tracker/internal/domain" // Token error kinds
	"time"                            // Token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// DefaultTokenTTL is how long an issued token stays valid
const DefaultTokenTTL = 7 * 24 * time.Hour

// JWT Claims
type Claims struct {
	UserID               uint `json:"user_id"` // Custom claim for user ID
	jwt.RegisteredClaims      // Standard JWT claims
}

// TokenService issues and verifies HS256 session tokens
type TokenService struct {
	secret []byte           // HMAC key
	ttl    time.Duration    // Token lifetime
	now    func() time.Time // Clock, replaceable in tests
}

// NewTokenService creates a token service; a non-positive ttl falls back to DefaultTokenTTL
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock returns a copy of the service that reads time from now
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

// Issue creates a signed token for a given user ID
func (s *TokenService) Issue(userID uint) (string, error) {
	issuedAt := s.now()
	claims := Claims{
		UserID: userID, // Custom claim for user ID
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)), // Expiry
			IssuedAt:  jwt.NewNumericDate(issuedAt),            // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString(s.secret)                        // Sign the token with the secret
}

// Verify parses and validates a token string and returns the user ID it was issued for
func (s *TokenService) Verify(tokenStr string) (uint, error) {
	if tokenStr == "" {
		return 0, domain.ErrTokenMissing
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil // Return the secret key for validation
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), // Reject alg switching
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, classifyTokenError(err)
	}
	if !token.Valid {
		return 0, domain.ErrTokenInvalidSignature
	}
	if claims.UserID == 0 {
		return 0, domain.ErrTokenMalformed // Signed but carries no identity
	}
	return claims.UserID, nil
}

// classifyTokenError maps jwt parse errors onto the domain token errors
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return domain.ErrTokenInvalidSignature
	default:
		return domain.ErrTokenMalformed
	}
}
