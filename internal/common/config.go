package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Documents DocumentsConfig
	Extract   ExtractConfig
	Ingest    IngestConfig
	Deadlines DeadlineConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver          string // "postgres" | "sqlite"
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr string
}

// DocumentsConfig holds contract template and output locations
type DocumentsConfig struct {
	TemplateDir  string
	TemplateFile string // purchase agreement template inside TemplateDir
	OutputDir    string
	SlotRegistry string // optional YAML slot registry; empty = built-in layout
}

// ExtractConfig holds text-extraction configuration
type ExtractConfig struct {
	Pdftotext string // binary name or absolute path
	MaxPages  int    // page cap for listing-document scans
}

// IngestConfig holds Realist inbox watcher configuration
type IngestConfig struct {
	InboxDir string // empty disables the watcher
	Debounce time.Duration
}

// DeadlineConfig holds deadline monitoring configuration
type DeadlineConfig struct {
	WindowDays int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "postgres"),
			DSN:             getEnv("DB_URL", ""),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 20),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Server: ServerConfig{
			HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		},
		Documents: DocumentsConfig{
			TemplateDir:  getEnv("TEMPLATE_DIR", "templates/contracts"),
			TemplateFile: getEnv("TEMPLATE_FILE", "Standard_Purchase_Agreement.pdf"),
			OutputDir:    getEnv("OUTPUT_DIR", "generated_contracts"),
			SlotRegistry: getEnv("SLOT_REGISTRY", ""),
		},
		Extract: ExtractConfig{
			Pdftotext: getEnv("PDFTOTEXT", "pdftotext"),
			MaxPages:  getEnvAsInt("EXTRACT_MAX_PAGES", 3),
		},
		Ingest: IngestConfig{
			InboxDir: getEnv("REALIST_INBOX_DIR", ""),
			Debounce: getEnvAsDuration("REALIST_INBOX_DEBOUNCE", 500*time.Millisecond),
		},
		Deadlines: DeadlineConfig{
			WindowDays: getEnvAsInt("DEADLINE_WINDOW_DAYS", 3),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return NewAppError("CONFIG_ERROR", "DB_DRIVER must be postgres or sqlite", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Extract.MaxPages <= 0 {
		return NewAppError("CONFIG_ERROR", "EXTRACT_MAX_PAGES must be positive", ErrInvalidInput)
	}
	return nil
}
