package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Defaults for the process-level variables.
const (
	DefaultEnvironment = "development"
	DefaultPort        = 5000
	DefaultLogLevel    = "silly"
)

// Config represents the complete application configuration
type Config struct {
	LoggingConfig

	Port      Port            `envconfig:"PORT" default:"5000"`
	Server    ServerConfig    `envconfig:"SERVER"`
	RateLimit RateLimitConfig `envconfig:"RATE_LIMIT"`
	Telemetry TelemetryConfig `envconfig:"OTEL"`
	CORS      CORSConfig      `envconfig:"CORS"`
}

// LoggingConfig contains logging configuration. It is embedded in Config so
// its variables keep their bare names.
type LoggingConfig struct {
	Environment string `envconfig:"NODE_ENV" default:"development"`
	Level       string `envconfig:"LOG_LEVEL" default:"silly"`
	Output      string `envconfig:"LOG_OUTPUT" default:"console"`
	FilePath    string `envconfig:"LOG_FILE" default:"logs/app.log"`
}

// IsDevelopment reports whether the logger should use the human-readable console format.
func (c LoggingConfig) IsDevelopment() bool {
	return c.Environment == DefaultEnvironment
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `envconfig:"ENABLED" default:"false"`
	RPS     float64 `envconfig:"RPS" default:"100"`
	Burst   int     `envconfig:"BURST" default:"50"`
}

// TelemetryConfig selects the OpenTelemetry exporters.
type TelemetryConfig struct {
	TracesExporter  string  `envconfig:"TRACES_EXPORTER" default:"none"`
	MetricsExporter string  `envconfig:"METRICS_EXPORTER" default:"prometheus"`
	SampleRatio     float64 `envconfig:"SAMPLE_RATIO" default:"1.0"`
}

// CORSConfig lists the browser origins allowed to call the API. An empty list
// allows every origin.
type CORSConfig struct {
	AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
	AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS" default:"false"`
}

// Load loads configuration from a .env file (if present) and environment variables
func Load() (*Config, error) {
	// Variables already set in the environment take precedence over .env
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.normalize()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// normalize applies the fallbacks for variables that are set but empty.
func (c *Config) normalize() {
	if c.Environment == "" {
		c.Environment = DefaultEnvironment
	}
	if c.Level == "" {
		c.Level = DefaultLogLevel
	}
	c.Output = strings.ToLower(c.Output)
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server request timeout must be positive")
	}

	switch c.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid log output %q: want console, file or both", c.Output)
	}

	if c.Output != "console" && c.FilePath == "" {
		return fmt.Errorf("log file path is required for %s output", c.Output)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit rps and burst must be positive")
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("telemetry sample ratio must be within [0, 1]: %v", c.Telemetry.SampleRatio)
	}

	return nil
}

// Address returns the listen address for the HTTP server.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		LoggingConfig: LoggingConfig{
			Environment: DefaultEnvironment,
			Level:       DefaultLogLevel,
			Output:      "console",
			FilePath:    "logs/app.log",
		},
		Port: DefaultPort,
		Server: ServerConfig{
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  30 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled: false,
			RPS:     100,
			Burst:   50,
		},
		Telemetry: TelemetryConfig{
			TracesExporter:  "none",
			MetricsExporter: "prometheus",
			SampleRatio:     1.0,
		},
	}
}
