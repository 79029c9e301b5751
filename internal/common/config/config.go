// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig                 `mapstructure:"app"`
	Server     ServerConfig              `mapstructure:"server"`
	Downstream DownstreamConfig          `mapstructure:"downstream"`
	Database   DatabaseConfig            `mapstructure:"database"`
	Workflows  map[string]WorkflowConfig `mapstructure:"workflows"`
	Logging    LoggingConfig             `mapstructure:"logging"`
	Metrics    MetricsConfig             `mapstructure:"metrics"`
	Registry   RegistryConfig            `mapstructure:"registry"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
	MaxUploadMB     int    `mapstructure:"max_upload_mb"`
}

// DownstreamConfig describes the engineering data service every saga step talks to.
type DownstreamConfig struct {
	BaseURL string     `mapstructure:"base_url"`
	Timeout int        `mapstructure:"timeout"` // milliseconds, 0 keeps the transport default
	Token   string     `mapstructure:"token"`   // static bearer token, used when auth.token_url is empty
	Auth    AuthConfig `mapstructure:"auth"`
}

// AuthConfig holds client-credentials settings for the downstream token endpoint.
type AuthConfig struct {
	TokenURL     string `mapstructure:"token_url"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	CacheKey     string `mapstructure:"cache_key"`
}

// Enabled reports whether token fetching is configured.
func (a AuthConfig) Enabled() bool {
	return a.TokenURL != "" && a.ClientID != ""
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkflowConfig holds the settings applicable to every exposed operation.
type WorkflowConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// RegistryConfig points at an optional operation registry override file.
type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

func (s ServerConfig) String() string {
	return fmt.Sprintf("address=%s read=%dms write=%dms", s.Address, s.ReadTimeout, s.WriteTimeout)
}
