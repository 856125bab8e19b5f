package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vytor/studyflash/internal/logger"
)

type Config struct {
	Addr               string
	DBPath             string
	LogLevel           string
	ImportWorkerCount  int
	ImportQueueSize    int
	SessionDefaultSize int
	SessionMaxSize     int
	RateLimitRPS       float64
	RateLimitBurst     int
	// CORSAllowedOrigins lists browser origins allowed to call the API.
	// Empty disables CORS handling.
	CORSAllowedOrigins []string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or unparsable.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:               envOr("ADDR", ":8080"),
		DBPath:             envOr("DB_PATH", "file:studyflash.db"),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		ImportWorkerCount:  envIntOr("IMPORT_WORKER_COUNT", 2),
		ImportQueueSize:    envIntOr("IMPORT_QUEUE_SIZE", 32),
		SessionDefaultSize: envIntOr("SESSION_DEFAULT_SIZE", 20),
		SessionMaxSize:     envIntOr("SESSION_MAX_SIZE", 50),
		RateLimitRPS:       envFloatOr("RATE_LIMIT_RPS", 10),
		RateLimitBurst:     envIntOr("RATE_LIMIT_BURST", 20),
		CORSAllowedOrigins: envListOr("CORS_ALLOWED_ORIGINS", nil),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	if !logger.IsValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q must be one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.ImportWorkerCount < 1 {
		errs = append(errs, fmt.Errorf("IMPORT_WORKER_COUNT must be at least 1, got %d", c.ImportWorkerCount))
	}
	if c.ImportQueueSize < 1 {
		errs = append(errs, fmt.Errorf("IMPORT_QUEUE_SIZE must be at least 1, got %d", c.ImportQueueSize))
	}
	if c.SessionDefaultSize < 1 {
		errs = append(errs, fmt.Errorf("SESSION_DEFAULT_SIZE must be at least 1, got %d", c.SessionDefaultSize))
	}
	if c.SessionMaxSize < c.SessionDefaultSize {
		errs = append(errs, fmt.Errorf("SESSION_MAX_SIZE (%d) cannot be below SESSION_DEFAULT_SIZE (%d)", c.SessionMaxSize, c.SessionDefaultSize))
	}
	if c.RateLimitRPS <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS must be positive, got %v", c.RateLimitRPS))
	}
	if c.RateLimitBurst < 1 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST must be at least 1, got %d", c.RateLimitBurst))
	}
	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}

// envListOr splits a comma-separated variable, dropping blank entries.
func envListOr(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
