package middleware

import (
	"context"                         // Identity lookup
	"errors"                          // Error classification
	"fitness_tracker/internal/domain" // Domain models and errors
	"net/http"                        // HTTP status codes
	"strings"                         // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// userKey is the gin context key holding the authenticated *domain.User
const userKey = "currentUser"

// TokenVerifier resolves a token string to the user id it was issued for
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// UserResolver loads the account a verified token points at
type UserResolver interface {
	Get(ctx context.Context, id uint) (*domain.User, error)
}

// authMessages gives each rejection a distinct message under the same 401
var authMessages = map[error]string{
	domain.ErrTokenMissing:          "Missing Authorization header",
	domain.ErrTokenMalformed:        "Malformed token",
	domain.ErrTokenExpired:          "Token has expired",
	domain.ErrTokenInvalidSignature: "Invalid token signature",
	domain.ErrUserNotFound:          "User not found",
}

// BearerToken extracts the token from an Authorization header value
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", domain.ErrTokenMissing
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return "", domain.ErrTokenMalformed
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", domain.ErrTokenMalformed
	}
	return token, nil
}

// JWTAuthMiddleware validates the bearer token, loads the user and stores it in the context
func JWTAuthMiddleware(tokens TokenVerifier, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := BearerToken(c.GetHeader("Authorization")) // Extract the token string
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		userID, err := tokens.Verify(tokenStr) // Parse the JWT token
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		// Token validity does not imply the account still exists
		user, err := users.Get(c.Request.Context(), userID)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		c.Set(userKey, user) // Store user in context
		c.Next()             // Proceed to the next handler
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	for kind, msg := range authMessages {
		if errors.Is(err, kind) {
			logrus.WithFields(logrus.Fields{
				"path":   c.FullPath(),
				"reason": kind.Error(),
			}).Debug("Request rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
	}
	logrus.WithError(err).Error("Failed to authenticate request")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// CurrentUser returns the user stored by JWTAuthMiddleware
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}
