package api

import (
	"errors"                              // Error classification
	"fitness_tracker/internal/domain"     // Domain models
	"fitness_tracker/internal/middleware" // Authenticated user accessor
	"fitness_tracker/internal/store"      // Credential store
	"fitness_tracker/internal/utils"      // Token service, login throttle
	"net/http"                            // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// Request struct for registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`     // Username must be provided
	Password string `json:"password" binding:"required"`     // Password must be provided
	Email    string `json:"email" binding:"omitempty,email"` // Optional contact address
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"` // Password in use
	NewPassword     string `json:"newPassword" binding:"required"`     // Replacement
}

// Response struct for authentication
type AuthResponse struct {
	Token string       `json:"token"` // JWT token
	User  *domain.User `json:"user"`  // Authenticated account
}

// RegisterHandler creates an account and returns a token for it
func RegisterHandler(users *store.Users, tokens *utils.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required, email must be valid"})
			return
		}
		user, err := users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			respondError(c, err, "", "Failed to register user", logrus.Fields{"username": req.Username})
			return
		}
		token, err := tokens.Issue(user.ID) // Generate JWT token
		if err != nil {
			respondError(c, err, "", "Failed to generate token", logrus.Fields{"user_id": user.ID})
			return
		}
		logrus.WithField("user_id", user.ID).Info("User registered")
		c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(users *store.Users, tokens *utils.TokenService, limiter utils.LoginLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ctx := c.Request.Context()
		if limiter != nil {
			allowed, err := limiter.Allow(ctx, req.Username)
			if err != nil {
				// Throttling is best effort; a Redis outage must not block logins
				logrus.WithError(err).Warn("Login limiter unavailable")
			} else if !allowed {
				c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many failed login attempts, try again later"})
				return
			}
		}
		user, err := users.Verify(ctx, req.Username, req.Password)
		if err != nil {
			if limiter != nil && errors.Is(err, domain.ErrInvalidCredentials) {
				if ferr := limiter.Fail(ctx, req.Username); ferr != nil {
					logrus.WithError(ferr).Warn("Failed to record login failure")
				}
			}
			respondError(c, err, "", "Login failed", nil)
			return
		}
		if limiter != nil {
			if rerr := limiter.Reset(ctx, req.Username); rerr != nil {
				logrus.WithError(rerr).Warn("Failed to reset login failures")
			}
		}
		token, err := tokens.Issue(user.ID) // Generate JWT token
		if err != nil {
			respondError(c, err, "", "Failed to generate token", logrus.Fields{"user_id": user.ID})
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
	}
}

// MeHandler returns the authenticated account
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// ChangePasswordHandler replaces the authenticated user's password
func ChangePasswordHandler(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req ChangePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "currentPassword and newPassword are required"})
			return
		}
		if err := users.ChangePassword(c.Request.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
			respondError(c, err, "", "Failed to change password", logrus.Fields{"user_id": user.ID})
			return
		}
		logrus.WithField("user_id", user.ID).Info("Password changed")
		c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
	}
}

// DeleteAccountHandler removes the authenticated user and all of their workouts
func DeleteAccountHandler(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err := users.Delete(c.Request.Context(), user.ID); err != nil {
			respondError(c, err, "", "Failed to delete account", logrus.Fields{"user_id": user.ID})
			return
		}
		logrus.WithField("user_id", user.ID).Info("Account deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
	}
}
