package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/platinummonkey/backoffice/pkg/observability"
	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the optional YAML file loaded before environment overrides
const ConfigFileEnv = "BACKOFFICE_CONFIG_FILE"

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig `yaml:"server"`

	// Upstream API the proxy relays to
	Upstream UpstreamConfig `yaml:"upstream"`

	// Console pages and session behaviour
	Console ConsoleConfig `yaml:"console"`

	// Observability configuration
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// Health/metrics server (separate port for k8s probes)
	HealthPort string `yaml:"health_port"`
}

// UpstreamConfig points at the backend API
type UpstreamConfig struct {
	// URL is the upstream base, e.g. https://api.example.com. Empty is allowed:
	// every proxied request then fails with "Missing API_URL".
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ConsoleConfig holds settings for the page side of the console
type ConsoleConfig struct {
	// Environment mirrors NODE_ENV; "production" turns on Secure cookies
	Environment string `yaml:"environment"`
	StaticDir   string `yaml:"static_dir"`
	LandingPath string `yaml:"landing_path"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	// Logging
	LogLevel string `yaml:"log_level"`

	// Metrics
	MetricsEnabled bool `yaml:"metrics_enabled"`

	// OpenTelemetry
	OTelEnabled        bool    `yaml:"otel_enabled"`
	OTelEndpoint       string  `yaml:"otel_endpoint"`
	OTelServiceName    string  `yaml:"otel_service_name"`
	OTelServiceVersion string  `yaml:"otel_service_version"`
	OTelInsecure       bool    `yaml:"otel_insecure"` // Use insecure gRPC connection
	OTelSampleRatio    float64 `yaml:"otel_sample_ratio"`
}

// DefaultConfig returns a Config with defaults for every setting
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            "3000",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			HealthPort:      "9090",
		},
		Upstream: UpstreamConfig{
			Timeout: 0, // no client-side timeout
		},
		Console: ConsoleConfig{
			Environment: "development",
			StaticDir:   "./web",
			LandingPath: "/ventas",
		},
		Observability: ObservabilityConfig{
			LogLevel:           "info",
			MetricsEnabled:     true,
			OTelEndpoint:       "localhost:4317",
			OTelServiceName:    "backoffice",
			OTelServiceVersion: "1.0.0",
			OTelInsecure:       true,
			OTelSampleRatio:    1,
		},
	}
}

// LoadConfig builds the configuration from defaults, the optional YAML file
// named by BACKOFFICE_CONFIG_FILE, and environment variables, in that order
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	if path := getEnv(ConfigFileEnv, ""); path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server = loadServerConfig(c.Server)
	c.Upstream = loadUpstreamConfig(c.Upstream)
	c.Console = loadConsoleConfig(c.Console)
	c.Observability = loadObservabilityConfig(c.Observability)
}

// loadServerConfig overrides server configuration from environment
func loadServerConfig(base ServerConfig) ServerConfig {
	return ServerConfig{
		Host:            getEnv("BACKOFFICE_HOST", base.Host),
		Port:            getEnv("BACKOFFICE_PORT", base.Port),
		ReadTimeout:     getEnvDuration("BACKOFFICE_READ_TIMEOUT", base.ReadTimeout),
		WriteTimeout:    getEnvDuration("BACKOFFICE_WRITE_TIMEOUT", base.WriteTimeout),
		IdleTimeout:     getEnvDuration("BACKOFFICE_IDLE_TIMEOUT", base.IdleTimeout),
		ShutdownTimeout: getEnvDuration("BACKOFFICE_SHUTDOWN_TIMEOUT", base.ShutdownTimeout),
		HealthPort:      getEnv("BACKOFFICE_HEALTH_PORT", base.HealthPort),
	}
}

// loadUpstreamConfig reads API_URL, falling back to the legacy BACKEND_URL
func loadUpstreamConfig(base UpstreamConfig) UpstreamConfig {
	return UpstreamConfig{
		URL:     getEnv("API_URL", getEnv("BACKEND_URL", base.URL)),
		Timeout: getEnvDuration("BACKOFFICE_UPSTREAM_TIMEOUT", base.Timeout),
	}
}

func loadConsoleConfig(base ConsoleConfig) ConsoleConfig {
	return ConsoleConfig{
		Environment: getEnv("NODE_ENV", base.Environment),
		StaticDir:   getEnv("BACKOFFICE_STATIC_DIR", base.StaticDir),
		LandingPath: getEnv("BACKOFFICE_LANDING_PATH", base.LandingPath),
	}
}

// loadObservabilityConfig overrides observability configuration from environment
func loadObservabilityConfig(base ObservabilityConfig) ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:           getEnv("BACKOFFICE_LOG_LEVEL", base.LogLevel),
		MetricsEnabled:     getEnvBool("BACKOFFICE_METRICS_ENABLED", base.MetricsEnabled),
		OTelEnabled:        getEnvBool("BACKOFFICE_OTEL_ENABLED", base.OTelEnabled),
		OTelEndpoint:       getEnv("BACKOFFICE_OTEL_ENDPOINT", base.OTelEndpoint),
		OTelServiceName:    getEnv("BACKOFFICE_OTEL_SERVICE_NAME", base.OTelServiceName),
		OTelServiceVersion: getEnv("BACKOFFICE_OTEL_SERVICE_VERSION", base.OTelServiceVersion),
		OTelInsecure:       getEnvBool("BACKOFFICE_OTEL_INSECURE", base.OTelInsecure),
		OTelSampleRatio:    getEnvFloat("BACKOFFICE_OTEL_SAMPLE_RATIO", base.OTelSampleRatio),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate server config
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}

	if c.Upstream.URL != "" {
		u, err := url.Parse(c.Upstream.URL)
		if err != nil {
			return fmt.Errorf("invalid upstream URL: %w", err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("upstream URL must be an absolute http(s) URL: %s", c.Upstream.URL)
		}
	}
	if c.Upstream.Timeout < 0 {
		return fmt.Errorf("upstream timeout must not be negative")
	}

	if !strings.HasPrefix(c.Console.LandingPath, "/") || strings.HasPrefix(c.Console.LandingPath, "//") {
		return fmt.Errorf("landing path must be a local absolute path: %q", c.Console.LandingPath)
	}

	// Validate OpenTelemetry config
	if c.Observability.OTelEnabled {
		if c.Observability.OTelEndpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTelServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
	}
	if r := c.Observability.OTelSampleRatio; r < 0 || r > 1 {
		return fmt.Errorf("OpenTelemetry sample ratio must be between 0 and 1")
	}

	return nil
}

// Production reports whether the console runs with production cookie settings
func (c *Config) Production() bool {
	return strings.EqualFold(c.Console.Environment, "production")
}

// LogLevel returns the parsed log level
func (c *Config) LogLevel() observability.LogLevel {
	return observability.ParseLogLevel(c.Observability.LogLevel)
}

// OTel converts the observability settings into the tracer configuration
func (c *Config) OTel() observability.OTelConfig {
	return observability.OTelConfig{
		Enabled:        c.Observability.OTelEnabled,
		Endpoint:       c.Observability.OTelEndpoint,
		ServiceName:    c.Observability.OTelServiceName,
		ServiceVersion: c.Observability.OTelServiceVersion,
		Insecure:       c.Observability.OTelInsecure,
		SampleRatio:    c.Observability.OTelSampleRatio,
	}
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvFloat returns a float environment variable or a default
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
