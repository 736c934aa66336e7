// Package config loads application settings from the environment and an
// optional .env / config.env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config groups the application configuration.
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	JWT     JWTConfig
}

// AppConfig holds general settings.
type AppConfig struct {
	Env      string // development, staging, production
	LogLevel string
}

// IsDevelopment reports whether the app runs in development mode.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig selects and configures the document repository.
type StorageConfig struct {
	Driver string

	// Path is the JSON file (file) or database file (sqlite)
	Path string

	// DatabaseURL is the PostgreSQL connection string
	DatabaseURL string

	// DocumentKey names the row holding the document in sqlite and postgres
	DocumentKey string

	// CompressThreshold is the body size in bytes above which snapshots are zstd-compressed
	CompressThreshold int
}

// JWTConfig holds token settings.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// Load reads configuration from environment variables, falling back to
// .env or config.env in the working directory. Env vars take precedence.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig() // optional

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Storage: StorageConfig{
			Driver:            strings.ToLower(v.GetString("STORAGE_DRIVER")),
			Path:              v.GetString("STORAGE_PATH"),
			DatabaseURL:       v.GetString("DATABASE_URL"),
			DocumentKey:       v.GetString("DOCUMENT_KEY"),
			CompressThreshold: v.GetInt("SNAPSHOT_COMPRESS_THRESHOLD"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    v.GetDuration("JWT_TTL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("STORAGE_DRIVER", DriverFile)
	v.SetDefault("STORAGE_PATH", "stockbook.json")
	v.SetDefault("DOCUMENT_KEY", "main")
	v.SetDefault("SNAPSHOT_COMPRESS_THRESHOLD", 10*1024)
	v.SetDefault("JWT_SECRET", "change-me-in-production")
	v.SetDefault("JWT_TTL", "12h")
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverFile, DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("STORAGE_PATH is required for the %s driver", c.Storage.Driver)
		}
	case DriverPostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", c.HTTP.Port)
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if c.Storage.CompressThreshold < 0 {
		return fmt.Errorf("SNAPSHOT_COMPRESS_THRESHOLD must not be negative")
	}
	if !c.App.IsDevelopment() && c.JWT.Secret == "change-me-in-production" {
		return fmt.Errorf("JWT_SECRET must be set outside development")
	}
	return nil
}
