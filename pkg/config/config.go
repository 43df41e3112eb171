package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	PostgresURL   string
	MongoURI      string
	MongoDatabase string

	JWTSecret  string
	SessionTTL time.Duration

	// Optional; the trending cache is disabled when empty.
	RedisURL string
	CacheTTL time.Duration

	// Optional; Firebase login is disabled when empty.
	FirebaseCredentialsPath string

	AdminUsernames   []string
	AdminCollections []string
	CORSOrigins      []string
}

// Load reads configuration from the environment, after loading .env if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	cfg := &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		MongoDatabase:           getEnv("MONGO_DATABASE", "shayari"),
		RedisURL:                getEnv("REDIS_URL", ""),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		AdminUsernames:          getEnvSlice("ADMIN_USERNAMES", nil),
		AdminCollections:        getEnvSlice("ADMIN_COLLECTIONS", []string{"shayaris"}),
		CORSOrigins:             getEnvSlice("CORS_ORIGINS", []string{"http://localhost:3000"}),
	}

	var err error
	if cfg.PostgresURL, err = getEnvRequired("POSTGRES_CONN_STR"); err != nil {
		return nil, err
	}
	if cfg.MongoURI, err = getEnvRequired("MONGO_URI"); err != nil {
		return nil, err
	}
	if cfg.JWTSecret, err = getEnvRequired("JWT_SECRET"); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getEnvDuration("SESSION_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getEnvDuration("CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var problems []string

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		problems = append(problems, "PORT must be between 1 and 65535")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	if c.IsProduction() && len(c.JWTSecret) < 32 {
		problems = append(problems, "JWT_SECRET should be at least 32 characters long")
	}
	if c.SessionTTL <= 0 {
		problems = append(problems, "SESSION_TTL must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s environment variable not set", key)
	}
	return value, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration value for %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
