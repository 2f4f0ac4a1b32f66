package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vytor/thaiflash/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:               ":8080",
		DBPath:             "test.db",
		LogLevel:           "INFO",
		LogFormat:          "pretty",
		ArchiveWorkerCount: 2,
		ArchiveQueueSize:   64,
		SessionTTLMinutes:  60,
		MaxSessions:        1000,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPathDisablesArchive(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.ArchiveEnabled())
}

func TestValidate_LogLevel(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"DEBUG", false},
		{"INFO", false},
		{"WARN", false},
		{"ERROR", false},
		{"debug", false},
		{"INVALID", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_LogFormat(t *testing.T) {
	cfg := validConfig()
	cfg.LogFormat = "json"
	assert.NoError(t, cfg.Validate())

	cfg.LogFormat = "xml"
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestValidate_CatalogPath(t *testing.T) {
	cfg := validConfig()
	cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml")

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CATALOG_PATH")

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("consonants: []\n"), 0o600))
	cfg.CatalogPath = path
	assert.NoError(t, cfg.Validate())
}

func TestValidate_InvalidCounts(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.Config)
		expectedError string
	}{
		{"zero archive workers", func(c *config.Config) { c.ArchiveWorkerCount = 0 }, "ARCHIVE_WORKER_COUNT"},
		{"negative archive workers", func(c *config.Config) { c.ArchiveWorkerCount = -1 }, "ARCHIVE_WORKER_COUNT"},
		{"zero queue", func(c *config.Config) { c.ArchiveQueueSize = 0 }, "ARCHIVE_QUEUE_SIZE"},
		{"zero ttl", func(c *config.Config) { c.SessionTTLMinutes = 0 }, "SESSION_TTL_MINUTES"},
		{"zero max sessions", func(c *config.Config) { c.MaxSessions = 0 }, "MAX_SESSIONS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{LogLevel: "INVALID", LogFormat: "xml"}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "LOG_FORMAT")
	assert.Contains(t, errStr, "ARCHIVE_WORKER_COUNT")
	assert.Contains(t, errStr, "ARCHIVE_QUEUE_SIZE")
	assert.Contains(t, errStr, "SESSION_TTL_MINUTES")
	assert.Contains(t, errStr, "MAX_SESSIONS")
}

func TestSessionTTL(t *testing.T) {
	cfg := validConfig()
	cfg.SessionTTLMinutes = 5
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL())
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MAX_SESSIONS", "25")
	t.Setenv("ARCHIVE_QUEUE_SIZE", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 25, cfg.MaxSessions)
	assert.Equal(t, 64, cfg.ArchiveQueueSize)
}

func TestLoad_EmptyDBPath(t *testing.T) {
	t.Setenv("DB_PATH", "")

	cfg := config.Load()

	assert.False(t, cfg.ArchiveEnabled())
}
