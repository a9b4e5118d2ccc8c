package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ReferencePolicy decides how swap submissions treat unknown user ids
type ReferencePolicy string

const (
	// ReferenceStrict rejects requests naming users missing from the directory
	ReferenceStrict ReferencePolicy = "strict"
	// ReferenceLenient accepts them, skipping the skill checks it cannot perform
	ReferenceLenient ReferencePolicy = "lenient"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Seed data configuration
	Seed SeedConfig

	// Marketplace rules
	Market MarketConfig

	// Notification feed configuration
	Notify NotifyConfig

	// Import configuration
	Import ImportConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// SeedConfig selects the starting state
type SeedConfig struct {
	File       string // YAML fixture, overrides the built-in sample
	SampleData bool   // load the built-in sample when File is empty
}

// MarketConfig holds directory and ledger policies
type MarketConfig struct {
	HideBannedUsers bool
	ReferencePolicy ReferencePolicy
}

// NotifyConfig holds notification feed settings
type NotifyConfig struct {
	HistorySize int
}

// ImportConfig holds bulk import settings
type ImportConfig struct {
	MaxUploadSize int64 // in bytes
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
	Env    string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Seed: SeedConfig{
			File:       getEnv("SEED_FILE", ""),
			SampleData: getBoolEnv("SEED_SAMPLE_DATA", true),
		},
		Market: MarketConfig{
			HideBannedUsers: getBoolEnv("DIRECTORY_HIDE_BANNED", false),
			ReferencePolicy: ReferencePolicy(getEnv("SWAP_REFERENCE_POLICY", string(ReferenceStrict))),
		},
		Notify: NotifyConfig{
			HistorySize: getIntEnv("NOTIFY_HISTORY_SIZE", 200),
		},
		Import: ImportConfig{
			MaxUploadSize: getInt64Env("IMPORT_MAX_UPLOAD_SIZE", 10*1024*1024), // 10MB
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			Env:    getEnv("ENV", "production"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Seed:   SeedConfig{SampleData: true},
		Market: MarketConfig{ReferencePolicy: ReferenceStrict},
		Notify: NotifyConfig{HistorySize: 200},
		Import: ImportConfig{MaxUploadSize: 10 * 1024 * 1024},
		Log:    LogConfig{Level: "info", Format: "json", Env: "production"},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	switch c.Market.ReferencePolicy {
	case ReferenceStrict, ReferenceLenient:
	default:
		return fmt.Errorf("SWAP_REFERENCE_POLICY must be strict or lenient, got %q", c.Market.ReferencePolicy)
	}
	if c.Notify.HistorySize <= 0 {
		return fmt.Errorf("NOTIFY_HISTORY_SIZE must be positive")
	}
	if c.Log.Format != "json" && c.Log.Format != "pretty" {
		return fmt.Errorf("LOG_FORMAT must be json or pretty, got %q", c.Log.Format)
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
