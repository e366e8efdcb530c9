package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds all application configuration.
type Config struct {
	Root    RootConfig    `mapstructure:"root"`
	Traefik TraefikConfig `mapstructure:"traefik"`
	Viewer  ViewerConfig  `mapstructure:"viewer"`
	Network NetworkConfig `mapstructure:"network"`
	Log     LogConfig     `mapstructure:"log"`
}

// RootConfig locates the docker root and the files managed inside it.
type RootConfig struct {
	// Dir is the docker root holding the main compose file, stacks/ and
	// secrets/. Defaults to ~/docker.
	Dir string `mapstructure:"dir"`

	// StacksDir overrides <dir>/stacks.
	StacksDir string `mapstructure:"stacks_dir"`

	// MainCompose overrides <dir>/docker-compose.yml.
	MainCompose string `mapstructure:"main_compose"`

	// SecretsDir overrides <dir>/secrets.
	SecretsDir string `mapstructure:"secrets_dir"`
}

// TraefikConfig holds reverse-proxy related paths and names.
type TraefikConfig struct {
	// MiddlewareFile is the dynamic-configuration file listing middleware
	// chains. Overrides <dir>/apps/traefik2/rules/middleware-chains.yml.
	MiddlewareFile string `mapstructure:"middleware_file"`

	// ProxyNetwork is the shared reverse-proxy network exposed services join.
	ProxyNetwork string `mapstructure:"proxy_network"`
}

// ViewerConfig locates the well-known viewer stack whose services may be
// attached to freshly scaffolded database networks.
type ViewerConfig struct {
	// Compose overrides <dir>/stacks/viewer/docker-compose.yml.
	Compose string `mapstructure:"compose"`
}

// NetworkConfig holds the database-network subnet pool.
type NetworkConfig struct {
	// SubnetBase is the first candidate /24 block.
	SubnetBase string `mapstructure:"subnet_base"`

	// SubnetCount is the number of candidate blocks.
	SubnetCount int `mapstructure:"subnet_count"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// =============================================================================
// Derived Paths
// =============================================================================

// StacksDir returns the configured or conventional stacks directory.
func (c *Config) StacksDir() string {
	if c.Root.StacksDir != "" {
		return c.Root.StacksDir
	}
	return filepath.Join(c.Root.Dir, "stacks")
}

// MainCompose returns the configured or conventional main compose path.
func (c *Config) MainCompose() string {
	if c.Root.MainCompose != "" {
		return c.Root.MainCompose
	}
	return filepath.Join(c.Root.Dir, "docker-compose.yml")
}

// SecretsDir returns the configured or conventional secrets directory.
func (c *Config) SecretsDir() string {
	if c.Root.SecretsDir != "" {
		return c.Root.SecretsDir
	}
	return filepath.Join(c.Root.Dir, "secrets")
}

// MiddlewareFile returns the configured or conventional middleware file.
func (c *Config) MiddlewareFile() string {
	if c.Traefik.MiddlewareFile != "" {
		return c.Traefik.MiddlewareFile
	}
	return filepath.Join(c.Root.Dir, "apps", "traefik2", "rules", "middleware-chains.yml")
}

// ViewerCompose returns the configured or conventional viewer stack path.
func (c *Config) ViewerCompose() string {
	if c.Viewer.Compose != "" {
		return c.Viewer.Compose
	}
	return filepath.Join(c.StacksDir(), "viewer", "docker-compose.yml")
}

// =============================================================================
// Config Loading
// =============================================================================

// LoadConfig loads configuration from file and environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	// Set defaults
	v.SetDefault("root.dir", filepath.Join(home, "docker"))
	v.SetDefault("root.stacks_dir", "")
	v.SetDefault("root.main_compose", "")
	v.SetDefault("root.secrets_dir", "")
	v.SetDefault("traefik.middleware_file", "")
	v.SetDefault("traefik.proxy_network", "t2_proxy")
	v.SetDefault("viewer.compose", "")
	v.SetDefault("network.subnet_base", "10.90.0.0/24")
	v.SetDefault("network.subnet_count", 64)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Load from file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// Only return error if file was explicitly specified and is invalid
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			// File not found is OK, we'll use defaults
		}
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("COMPOSIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger with the configured level and format.
// Interactive output goes to stdout, so logs go to stderr.
func SetupLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
