package api

import (
	"fitness_tracker/internal/middleware" // Authentication and request logging
	"fitness_tracker/internal/store"      // Stores
	"fitness_tracker/internal/utils"      // Token service, login throttle
	"time"                                // CORS preflight cache

	"github.com/gin-contrib/cors" // CORS middleware
	"github.com/gin-gonic/gin"    // Gin web framework
)

// Deps holds everything the HTTP surface needs
type Deps struct {
	Users       *store.Users        // Credential store
	Catalog     *store.Catalog      // Exercise catalog
	Workouts    *store.Workouts     // Workout aggregate
	Tokens      *utils.TokenService // Token issuance and verification
	Limiter     utils.LoginLimiter  // Optional failed-login throttle
	CORSOrigins []string            // Allowed origins, "*" for any
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	cfg.MaxAge = 12 * time.Hour
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// NewRouter wires every route onto a fresh gin engine
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), cors.New(corsConfig(d.CORSOrigins)))

	auth := middleware.JWTAuthMiddleware(d.Tokens, d.Users)

	r.GET("/health", HealthHandler()) // Health check

	// Auth routes
	authGroup := r.Group("/auth")
	authGroup.POST("/register", RegisterHandler(d.Users, d.Tokens))      // Registration endpoint
	authGroup.POST("/login", LoginHandler(d.Users, d.Tokens, d.Limiter)) // Login endpoint
	authGroup.GET("/me", auth, MeHandler())                              // Current account
	authGroup.PUT("/password", auth, ChangePasswordHandler(d.Users))     // Password change
	authGroup.DELETE("/me", auth, DeleteAccountHandler(d.Users))         // Account removal

	// Exercise catalog, shared across users
	exerciseGroup := r.Group("/exercises")
	exerciseGroup.GET("", ListExercisesHandler(d.Catalog))
	exerciseGroup.GET("/:id", GetExerciseHandler(d.Catalog))
	exerciseGroup.POST("", CreateExerciseHandler(d.Catalog))

	// Workout routes (protected by JWT)
	workoutGroup := r.Group("/workouts")
	workoutGroup.Use(auth)
	workoutGroup.GET("", ListWorkoutsHandler(d.Workouts))
	workoutGroup.POST("", CreateWorkoutHandler(d.Workouts))
	workoutGroup.GET("/:id", GetWorkoutHandler(d.Workouts))
	workoutGroup.PUT("/:id", UpdateWorkoutHandler(d.Workouts))
	workoutGroup.DELETE("/:id", DeleteWorkoutHandler(d.Workouts))

	return r
}
