package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr               string
	DBPath             string
	LogLevel           string
	LogFormat          string
	CatalogPath        string
	ArchiveWorkerCount int
	ArchiveQueueSize   int
	SessionTTLMinutes  int
	MaxSessions        int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:               envOr("ADDR", ":8080"),
		DBPath:             envSetOr("DB_PATH", "file:thaiflash.db"),
		LogLevel:           strings.ToUpper(envOr("LOG_LEVEL", "INFO")),
		LogFormat:          strings.ToLower(envOr("LOG_FORMAT", "pretty")),
		CatalogPath:        envOr("CATALOG_PATH", ""),
		ArchiveWorkerCount: envIntOr("ARCHIVE_WORKER_COUNT", 2),
		ArchiveQueueSize:   envIntOr("ARCHIVE_QUEUE_SIZE", 64),
		SessionTTLMinutes:  envIntOr("SESSION_TTL_MINUTES", 60),
		MaxSessions:        envIntOr("MAX_SESSIONS", 1000),
	}
}

// ArchiveEnabled reports whether finished games are persisted.
func (c Config) ArchiveEnabled() bool {
	return c.DBPath != ""
}

// SessionTTL is how long an untouched game stays in memory.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// Validate reports every invalid setting, naming its environment key.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "pretty", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be pretty or json (got %q)", c.LogFormat))
	}
	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); err != nil {
			errs = append(errs, fmt.Errorf("CATALOG_PATH %q is not readable: %w", c.CatalogPath, err))
		}
	}
	if c.ArchiveWorkerCount < 1 {
		errs = append(errs, fmt.Errorf("ARCHIVE_WORKER_COUNT must be at least 1 (got %d)", c.ArchiveWorkerCount))
	}
	if c.ArchiveQueueSize < 1 {
		errs = append(errs, fmt.Errorf("ARCHIVE_QUEUE_SIZE must be at least 1 (got %d)", c.ArchiveQueueSize))
	}
	if c.SessionTTLMinutes < 1 {
		errs = append(errs, fmt.Errorf("SESSION_TTL_MINUTES must be at least 1 (got %d)", c.SessionTTLMinutes))
	}
	if c.MaxSessions < 1 {
		errs = append(errs, fmt.Errorf("MAX_SESSIONS must be at least 1 (got %d)", c.MaxSessions))
	}
	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envSetOr honours an explicitly empty value.
func envSetOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
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
