// Package config loads the console configuration.
//
// # Overview
//
// Values come from three layers, later layers winning: built-in defaults, an
// optional YAML file named by BACKOFFICE_CONFIG_FILE, and environment
// variables. LoadConfig validates the result.
//
// # Configuration Structure
//
// Upstream API:
//
//	API_URL="https://api.example.com"   # BACKEND_URL is read when unset
//	BACKOFFICE_UPSTREAM_TIMEOUT="10s"   # 0 disables the client timeout
//
// Server settings:
//
//	BACKOFFICE_HOST="0.0.0.0"
//	BACKOFFICE_PORT="3000"
//	BACKOFFICE_HEALTH_PORT="9090"
//	BACKOFFICE_READ_TIMEOUT="15s"
//	BACKOFFICE_WRITE_TIMEOUT="15s"
//	BACKOFFICE_SHUTDOWN_TIMEOUT="30s"
//
// Console settings:
//
//	NODE_ENV="production"               # Secure session cookies
//	BACKOFFICE_STATIC_DIR="./web"
//	BACKOFFICE_LANDING_PATH="/ventas"
//
// Observability settings:
//
//	BACKOFFICE_LOG_LEVEL="info"  # debug, info, warn, error
//	BACKOFFICE_METRICS_ENABLED="true"
//	BACKOFFICE_OTEL_ENABLED="true"
//	BACKOFFICE_OTEL_ENDPOINT="otel-collector:4317"
//	BACKOFFICE_OTEL_SAMPLE_RATIO="0.1"
//
// The YAML file uses the same structure with snake_case keys:
//
//	server:
//	  port: "3000"
//	upstream:
//	  url: https://api.example.com
//	console:
//	  landing_path: /ventas
//
// # Usage Example
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//	store := session.NewCookieStore(cfg.Production())
package config
