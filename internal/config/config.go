package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Environment variable names for the configuration surface.
const (
	EnvSigningSecret   = "TASKLY_SIGNING_SECRET"
	EnvAudience        = "TASKLY_AUDIENCE"
	EnvBackendURL      = "TASKLY_BACKEND_URL"
	EnvBackendAPIKey   = "TASKLY_BACKEND_API_KEY"
	EnvServerName      = "TASKLY_SERVER_NAME"
	EnvLogLevel        = "TASKLY_LOG_LEVEL"
	EnvDataTimeout     = "TASKLY_DATA_TIMEOUT"
	EnvHealthTimeout   = "TASKLY_HEALTH_TIMEOUT"
	EnvServiceTokenTTL = "TASKLY_SERVICE_TOKEN_TTL"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultServerName      = "taskly-mcp"
	DefaultAudience        = "taskly-mobile"
	DefaultBackendURL      = "http://localhost:8080"
	DefaultLogLevel        = "info"
	DefaultDataTimeout     = 30 * time.Second
	DefaultHealthTimeout   = 10 * time.Second
	DefaultServiceTokenTTL = 30 * time.Minute
)

// SigningAlgorithm is the only JWT algorithm the codec accepts. There is no
// key rotation and no algorithm negotiation.
const SigningAlgorithm = "HS256"

// Config holds all process-wide settings. It is loaded once at startup and
// must not be mutated afterwards; components receive it by value or keep the
// fields they need.
type Config struct {
	// SigningSecret is the single shared HS256 secret used both to verify
	// incoming bearer tokens and to mint service tokens for the backend.
	SigningSecret string

	// Audience is the expected token audience claim.
	Audience string

	// BackendBaseURL is the base URL of the task-management backend,
	// without a trailing slash.
	BackendBaseURL string

	// BackendAPIKey is the static service API key sent on every backend call.
	BackendAPIKey string

	// ServerName and ServerVersion identify this server to MCP clients.
	ServerName    string
	ServerVersion string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// DataTimeout bounds each data-bearing backend call.
	DataTimeout time.Duration

	// HealthTimeout bounds the backend health probe.
	HealthTimeout time.Duration

	// ServiceTokenTTL is the lifetime of minted service tokens.
	ServiceTokenTTL time.Duration
}

// Load builds a Config from environment variables, applying defaults for
// anything unset. It does not validate; call Validate before use.
func Load() Config {
	return Config{
		SigningSecret:   os.Getenv(EnvSigningSecret),
		Audience:        getEnvOrDefault(EnvAudience, DefaultAudience),
		BackendBaseURL:  strings.TrimSuffix(getEnvOrDefault(EnvBackendURL, DefaultBackendURL), "/"),
		BackendAPIKey:   os.Getenv(EnvBackendAPIKey),
		ServerName:      getEnvOrDefault(EnvServerName, DefaultServerName),
		ServerVersion:   "dev",
		LogLevel:        getEnvOrDefault(EnvLogLevel, DefaultLogLevel),
		DataTimeout:     getEnvDurationOrDefault(EnvDataTimeout, DefaultDataTimeout),
		HealthTimeout:   getEnvDurationOrDefault(EnvHealthTimeout, DefaultHealthTimeout),
		ServiceTokenTTL: getEnvDurationOrDefault(EnvServiceTokenTTL, DefaultServiceTokenTTL),
	}
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	if c.SigningSecret == "" {
		return fmt.Errorf("missing signing secret (set %s)", EnvSigningSecret)
	}
	if c.BackendBaseURL == "" {
		return fmt.Errorf("missing backend base URL (set %s)", EnvBackendURL)
	}
	if c.BackendAPIKey == "" {
		return fmt.Errorf("missing backend API key (set %s)", EnvBackendAPIKey)
	}
	if c.DataTimeout <= 0 || c.HealthTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.ServiceTokenTTL <= 0 {
		return fmt.Errorf("service token TTL must be positive")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (expected debug, info, warn or error)", c.LogLevel)
	}
	return nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDurationOrDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
