package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Snapshot    SnapshotConfig
	Logging     LogConfig
	RateLimit   RateLimitConfig
	Compression CompressionConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"127.0.0.1"`
}

// SnapshotConfig holds snapshot root configuration.
type SnapshotConfig struct {
	Root string `envconfig:"SNAPSHOT_ROOT" default:""`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// CompressionConfig holds response compression configuration.
type CompressionConfig struct {
	Enabled bool `envconfig:"COMPRESSION_ENABLED" default:"true"`
	MinSize int  `envconfig:"COMPRESSION_MIN_SIZE" default:"1024"`
	Level   int  `envconfig:"COMPRESSION_LEVEL" default:"6"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Snapshot.Root == "" {
		cfg.Snapshot.Root = defaultRoot()
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "127.0.0.1",
		},
		Snapshot: SnapshotConfig{
			Root: defaultRoot(),
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Compression: CompressionConfig{
			Enabled: true,
			MinSize: 1024,
			Level:   6,
		},
	}
}

// defaultRoot picks the directory holding the binary, matching how
// snapshots are packaged alongside the server.
func defaultRoot() string {
	if exe, err := os.Executable(); err == nil {
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
