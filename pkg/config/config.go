package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv/autoload"
)

// Config holds all application configuration
type Config struct {
	Log       LogConfig
	Reference ReferenceConfig
	Notify    NotifyConfig
	Watch     WatchConfig
}

type LogConfig struct {
	Level string
	File  string
}

// ReferenceConfig selects the optional Postgres source for GL code lookups.
// File-based sources (XLSX, CSV) are chosen per run on the command line.
type ReferenceConfig struct {
	Database DatabaseConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// NotifyConfig drives the unresolved-code email. Notifications are disabled
// when the API key is empty.
type NotifyConfig struct {
	ResendAPIKey string
	FromAddress  string
	ToAddresses  []string
}

type WatchConfig struct {
	Schedule string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
		Reference: ReferenceConfig{
			Database: DatabaseConfig{
				Host:     getEnv("POSTGRES_HOST", "localhost"),
				Port:     getEnvAsInt("POSTGRES_PORT", 5432),
				User:     getEnv("POSTGRES_USER", "postgres"),
				Password: getEnv("POSTGRES_PASSWORD", "postgres"),
				Database: getEnv("POSTGRES_DB", "invoices"),
				SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			},
		},
		Notify: NotifyConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromAddress:  getEnv("NOTIFY_FROM", "invoices@localhost"),
			ToAddresses:  getEnvAsSlice("NOTIFY_TO", nil),
		},
		Watch: WatchConfig{
			Schedule: getEnv("WATCH_SCHEDULE", "@every 5m"),
		},
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("unknown LOG_LEVEL %q", cfg.Log.Level)
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
