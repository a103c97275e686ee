// Package config provides application configuration management from environment variables.
//
// # Overview
//
// This package loads and validates configuration from environment variables with
// sensible defaults for all settings. Only the serve command consults the server
// and watch sections; one-shot generation reads the docs section.
//
// # Configuration Structure
//
// Server settings:
//
//	PROTODOC_HOST="0.0.0.0"
//	PROTODOC_PORT="8080"
//	PROTODOC_READ_TIMEOUT="15s"
//	PROTODOC_WRITE_TIMEOUT="15s"
//	PROTODOC_SHUTDOWN_TIMEOUT="30s"
//
// Documentation settings:
//
//	PROTODOC_TITLE="API Reference"
//	PROTODOC_BASE_URL="https://api.example.com"
//	PROTODOC_TEMPLATE_DIR="./templates"
//	PROTODOC_CACHE_SIZE="16"
//
// Watch settings:
//
//	PROTODOC_WATCH_DEBOUNCE="500ms"
//
// Observability settings:
//
//	PROTODOC_LOG_LEVEL="info"  # debug, info, warn, error
//	PROTODOC_LOG_JSON="false"
//	PROTODOC_METRICS_ENABLED="true"
//
// # Usage Example
//
// Load configuration:
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("Server: %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//	fmt.Printf("Title: %s\n", cfg.Docs.Title)
//
// # Related Packages
//
//   - pkg/docs: Uses documentation configuration
//   - pkg/observability: Uses observability configuration
package config
