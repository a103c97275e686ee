package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Config holds all application configuration.
type Config struct {
	// Server configuration (serve command only)
	Server ServerConfig

	// Documentation rendering configuration
	Docs DocsConfig

	// Watch-mode configuration
	Watch WatchConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DocsConfig holds documentation rendering settings.
type DocsConfig struct {
	Title       string
	BaseURL     string
	TemplateDir string
	CacheSize   int
}

// WatchConfig holds the schema-directory watcher settings.
type WatchConfig struct {
	Debounce time.Duration
}

// ObservabilityConfig holds logging and metrics settings.
type ObservabilityConfig struct {
	LogLevel       logrus.Level
	LogJSON        bool
	MetricsEnabled bool
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Docs:          loadDocsConfig(),
		Watch:         loadWatchConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("PROTODOC_HOST", "0.0.0.0"),
		Port:            getEnv("PROTODOC_PORT", "8080"),
		ReadTimeout:     getEnvDuration("PROTODOC_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("PROTODOC_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("PROTODOC_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("PROTODOC_SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

func loadDocsConfig() DocsConfig {
	return DocsConfig{
		Title:       getEnv("PROTODOC_TITLE", "API Reference"),
		BaseURL:     getEnv("PROTODOC_BASE_URL", "https://api.example.com"),
		TemplateDir: getEnv("PROTODOC_TEMPLATE_DIR", ""),
		CacheSize:   getEnvInt("PROTODOC_CACHE_SIZE", 16),
	}
}

func loadWatchConfig() WatchConfig {
	return WatchConfig{
		Debounce: getEnvDuration("PROTODOC_WATCH_DEBOUNCE", 500*time.Millisecond),
	}
}

func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:       parseLogLevel(getEnv("PROTODOC_LOG_LEVEL", "info")),
		LogJSON:        getEnvBool("PROTODOC_LOG_JSON", false),
		MetricsEnabled: getEnvBool("PROTODOC_METRICS_ENABLED", true),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("invalid server port %q: %w", c.Server.Port, err)
	}
	if c.Docs.CacheSize <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", c.Docs.CacheSize)
	}
	if c.Watch.Debounce <= 0 {
		return fmt.Errorf("watch debounce must be positive, got %v", c.Watch.Debounce)
	}
	return nil
}

// NewLogger builds a logrus logger from the observability settings.
func (c *Config) NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(c.Observability.LogLevel)
	if c.Observability.LogJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}

// parseLogLevel parses a log level string, defaulting to info.
func parseLogLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// getEnv returns an environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
