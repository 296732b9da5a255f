// Package config loads the catalog configuration from an optional YAML
// file and CATALOG_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Sternrassler/pokedex-catalog/pkg/client"
	"github.com/Sternrassler/pokedex-catalog/pkg/logging"
	"github.com/Sternrassler/pokedex-catalog/pkg/pagination"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. CATALOG_BATCH_SIZE.
const EnvPrefix = "CATALOG"

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// UpstreamConfig holds upstream API configuration
type UpstreamConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// BatchConfig holds detail batch configuration
type BatchConfig struct {
	Size int `mapstructure:"size"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// Load reads configuration. When path is empty, catalog.yaml in the
// working directory is used if present; an explicit path must exist.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("catalog")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	clientDefaults := client.DefaultConfig()
	logDefaults := logging.DefaultConfig()

	v.SetDefault("server.addr", ":8080")

	v.SetDefault("upstream.base_url", clientDefaults.BaseURL)
	v.SetDefault("upstream.user_agent", clientDefaults.UserAgent)
	v.SetDefault("upstream.timeout", clientDefaults.Timeout)

	v.SetDefault("batch.size", pagination.DefaultConfig().BatchSize)

	v.SetDefault("log.level", string(logDefaults.Level))
	v.SetDefault("log.pretty", logDefaults.Pretty)
}

// Validate checks the values the rest of the program relies on.
func (c *Config) Validate() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream.base_url is required")
	}
	if c.Upstream.Timeout < 0 {
		return fmt.Errorf("upstream.timeout must be >= 0 (got %s)", c.Upstream.Timeout)
	}
	if c.Batch.Size < 1 {
		return fmt.Errorf("batch.size must be >= 1 (got %d)", c.Batch.Size)
	}
	if err := logging.ValidateLevel(logging.LogLevel(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Client returns the upstream client configuration.
func (c *Config) Client() client.Config {
	return client.Config{
		BaseURL:   c.Upstream.BaseURL,
		UserAgent: c.Upstream.UserAgent,
		Timeout:   c.Upstream.Timeout,
	}
}

// BatchFetcher returns the detail batch configuration.
func (c *Config) BatchFetcher() pagination.Config {
	return pagination.Config{
		BatchSize: c.Batch.Size,
		Timeout:   c.Upstream.Timeout,
	}
}

// Logging returns the logger configuration.
func (c *Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.LogLevel(c.Log.Level)
	cfg.Pretty = c.Log.Pretty
	return cfg
}
