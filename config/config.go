package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage driver names accepted in STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Actor resolution policies accepted in AUTH_POLICY. The permissive
// variant lets unidentified requests through as anonymous; the strict
// variant rejects them with 401.
const (
	PolicyStrict    = "strict"
	PolicyAnonymous = "anonymous"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Persistence configuration
	StorageDriver string
	DataDir       string // file driver
	SQLitePath    string // sqlite driver
	DBHost        string // postgres driver
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string

	// Redis configuration (optional; empty addr disables caching and
	// rate limiting)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Actor resolution policy on protected routes
	AuthPolicy string

	// Rate limiting for recipe creation, per actor per hour
	RateLimitPerHour int

	// CORS
	AllowedOrigins []string

	// S3 image storage (optional; empty bucket disables uploads)
	S3Bucket  string
	AWSRegion string
}

// Load builds a Config from environment variables, reading a .env file
// first when one exists, and validates the result.
func Load() (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		ServerHost:       getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:       getEnv("SERVER_PORT", "8000"),
		StorageDriver:    getEnv("STORAGE_DRIVER", DriverMemory),
		DataDir:          getEnv("DATA_DIR", "database"),
		SQLitePath:       getEnv("SQLITE_PATH", "receptar.db"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           getEnv("DB_NAME", "receptar"),
		DBSSLMode:        getEnv("DB_SSL_MODE", "disable"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		AuthPolicy:       getEnv("AUTH_POLICY", PolicyStrict),
		S3Bucket:         os.Getenv("S3_BUCKET_NAME"),
		AWSRegion:        os.Getenv("AWS_REGION"),
		RateLimitPerHour: 30,
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		cfg.RedisDB = n
	}
	if v := os.Getenv("RATE_LIMIT_PER_HOUR"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_PER_HOUR %q: %w", v, err)
		}
		cfg.RateLimitPerHour = n
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		for _, origin := range strings.Split(v, ",") {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, strings.TrimSpace(origin))
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// PostgresDSN assembles the connection string for the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
