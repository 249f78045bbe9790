package config

import (
	"fmt"  // Error wrapping
	"time" // Durations

	"github.com/ilyakaznacheev/cleanenv" // Environment binding
	"github.com/joho/godotenv"           // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort          string        `env:"APP_PORT" env-default:"5000"`                    // Application port
	DBDriver         string        `env:"DB_DRIVER" env-default:"mysql"`                  // mysql, postgres or sqlite
	DBUser           string        `env:"DB_USER"`                                        // Database user
	DBPassword       string        `env:"DB_PASSWORD"`                                    // Database password
	DBHost           string        `env:"DB_HOST" env-default:"127.0.0.1"`                // Database host
	DBPort           string        `env:"DB_PORT" env-default:"3306"`                     // Database port
	DBName           string        `env:"DB_NAME" env-default:"fitness_tracker"`          // Database name
	DatabaseURL      string        `env:"DATABASE_URL"`                                   // Full DSN override, file path for sqlite
	JWTSecret        string        `env:"JWT_SECRET" env-required:"true"`                 // JWT secret key
	JWTTTL           time.Duration `env:"JWT_TTL" env-default:"168h"`                     // Token lifetime
	BcryptCost       int           `env:"BCRYPT_COST" env-default:"10"`                   // Password hashing cost
	RedisAddr        string        `env:"REDIS_ADDR"`                                     // Redis server address, empty disables throttling
	RedisPass        string        `env:"REDIS_PASS"`                                     // Redis password
	RedisDB          int           `env:"REDIS_DB" env-default:"0"`                       // Redis database number
	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS" env-default:"5"`             // Failed logins allowed per window
	LoginWindow      time.Duration `env:"LOGIN_WINDOW" env-default:"15m"`                 // Failed login counter lifetime
	CORSOrigins      []string      `env:"CORS_ORIGINS" env-default:"*" env-separator:","` // Allowed CORS origins
	LogLevel         string        `env:"LOG_LEVEL" env-default:"info"`                   // Logrus level
	IsProd           bool          `env:"IS_PROD" env-default:"false"`                    // Is production environment
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"5s"`              // Graceful shutdown budget
}

// LoadConfig loads configuration from the environment, reading a .env file first if present
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	return FromEnv()
}

// FromEnv binds the current process environment without touching .env
func FromEnv() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return &cfg, nil
}
