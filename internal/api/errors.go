package api

import (
	"errors"                          // Error classification
	"fitness_tracker/internal/domain" // Domain errors
	"net/http"                        // HTTP status codes
	"strings"                         // Message trimming

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// respondError maps a store error onto the HTTP taxonomy. Unexpected errors are
// logged with fields and answered with failMsg only.
func respondError(c *gin.Context, err error, notFoundMsg, failMsg string, fields logrus.Fields) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
	case errors.Is(err, domain.ErrDuplicateUsername):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
	case errors.Is(err, domain.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	default:
		if fields == nil {
			fields = logrus.Fields{}
		}
		fields["error"] = err.Error()
		fields["path"] = c.FullPath()
		logrus.WithFields(fields).Error(failMsg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": failMsg})
	}
}

// validationMessage strips the sentinel prefix so clients see only the field message
func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
	if msg == "" || msg == domain.ErrValidation.Error() {
		return "Invalid request"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
