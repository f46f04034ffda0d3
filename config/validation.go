package config

import (
	"fmt"
	"strconv"
)

// Validate rejects configurations the server could not start with.
func Validate(cfg *Config) error {
	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		return fmt.Errorf("SERVER_PORT must be numeric, got %q", cfg.ServerPort)
	}

	switch cfg.StorageDriver {
	case DriverMemory, DriverFile, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of memory, file, sqlite, postgres; got %q", cfg.StorageDriver)
	}

	if cfg.StorageDriver == DriverPostgres && cfg.DBUser == "" {
		return fmt.Errorf("DB_USER is required with the postgres driver")
	}

	switch cfg.AuthPolicy {
	case PolicyStrict, PolicyAnonymous:
	default:
		return fmt.Errorf("AUTH_POLICY must be strict or anonymous, got %q", cfg.AuthPolicy)
	}

	if cfg.RateLimitPerHour <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_HOUR must be positive, got %d", cfg.RateLimitPerHour)
	}

	if cfg.S3Bucket != "" && cfg.AWSRegion == "" {
		return fmt.Errorf("AWS_REGION is required when S3_BUCKET_NAME is set")
	}

	return nil
}
