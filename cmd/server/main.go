package main

import (
	"context"                         // Redis ping, shutdown deadline
	"errors"                          // Server close detection
	"fitness_tracker/internal/api"    // Custom package for API handlers
	"fitness_tracker/internal/config" // Custom package for configuration
	"fitness_tracker/internal/db"     // Database bootstrap
	"fitness_tracker/internal/store"  // Stores
	"fitness_tracker/internal/utils"  // Token service, login throttle
	"net/http"                        // HTTP server
	"os"                              // Signals
	"os/signal"                       // Signal handling
	"syscall"                         // SIGTERM

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// setupLogger configures logrus for the environment
func setupLogger(cfg *config.Config) {
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	setupLogger(cfg)

	// Connect to the database
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("%v", err) // Fatal error if DB connection fails
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logrus.Errorf("failed to close DB: %v", err)
		}
	}()
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	catalog := store.NewCatalog(gdb)
	if _, err := catalog.Seed(context.Background()); err != nil {
		logrus.Fatalf("failed to seed exercises: %v", err)
	}

	deps := api.Deps{
		Users:       store.NewUsers(gdb, cfg.BcryptCost),
		Catalog:     catalog,
		Workouts:    store.NewWorkouts(gdb, catalog),
		Tokens:      utils.NewTokenService(cfg.JWTSecret, cfg.JWTTTL),
		CORSOrigins: cfg.CORSOrigins,
	}

	// Setup Redis client for login throttling, when configured
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		defer redisClient.Close()
		// Test Redis connection
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		deps.Limiter = utils.NewRedisLoginLimiter(redisClient, cfg.LoginMaxAttempts, cfg.LoginWindow)
	} else {
		logrus.Info("REDIS_ADDR not set, login throttling disabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r := api.NewRouter(deps)
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	server := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logrus.Infof("Server running on %s", cfg.AppPort) // Log server start
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("failed to start server: %v", err)
		}
	}()

	<-done
	logrus.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("graceful shutdown failed: %v", err)
	}
	logrus.Info("Server stopped")
}
