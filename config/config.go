package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Generation service configuration
	GenerationURL     string
	GenerationAPIKey  string
	GenerationTimeout time.Duration

	// JWT configuration
	JWTSecret string

	// CORS configuration
	AllowedOrigins []string
}

// LoadConfig reads configuration from environment variables, loading a
// .env file first when present. Secrets may alternatively be provided as
// files via the *_FILE convention.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, relying on environment")
	}

	cfg := &Config{
		ServerPort: getEnvWithDefault("SERVER_PORT", "8080"),
		ServerHost: getEnvWithDefault("SERVER_HOST", "0.0.0.0"),

		DBHost:     getEnvWithDefault("DB_HOST", "localhost"),
		DBPort:     getEnvWithDefault("DB_PORT", "5432"),
		DBUser:     getEnvWithDefault("DB_USER", "postgres"),
		DBPassword: getSecret("DB_PASSWORD"),
		DBName:     getEnvWithDefault("DB_NAME", "pantrychef"),
		DBSSLMode:  getEnvWithDefault("DB_SSL_MODE", "disable"),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisHost:     getEnvWithDefault("REDIS_HOST", "localhost"),
		RedisPort:     getEnvWithDefault("REDIS_PORT", "6379"),
		RedisPassword: getSecret("REDIS_PASSWORD"),

		GenerationURL:    os.Getenv("GENERATION_API_URL"),
		GenerationAPIKey: getSecret("GENERATION_API_KEY"),

		JWTSecret: getSecret("JWT_SECRET"),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			cfg.RedisDB = db
		}
	}

	cfg.GenerationTimeout = 60 * time.Second
	if t := os.Getenv("GENERATION_TIMEOUT_SECONDS"); t != "" {
		if secs, err := strconv.Atoi(t); err == nil && secs > 0 {
			cfg.GenerationTimeout = time.Duration(secs) * time.Second
		}
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GenerationURL == "" {
		return fmt.Errorf("GENERATION_API_URL is required")
	}
	return nil
}

// String returns a representation of Config with sensitive data masked.
func (c *Config) String() string {
	return fmt.Sprintf("Config{ServerHost: %s, ServerPort: %s, DBHost: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], RedisHost: %s, GenerationURL: %s, JWTSecret: [REDACTED]}",
		c.ServerHost, c.ServerPort, c.DBHost, c.DBName, c.DBUser, c.RedisHost, c.GenerationURL)
}

func getEnvWithDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getSecret reads KEY from the environment, falling back to the file named
// by KEY_FILE (Docker secrets convention).
func getSecret(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if path := os.Getenv(key + "_FILE"); path != "" {
		if data, err := os.ReadFile(filepath.Clean(path)); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return ""
}
