package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader loads and validates configuration.
type Loader interface {
	Load() (*Config, error)
	Validate(*Config) error
}

// ViperLoader implements Loader using Viper.
type ViperLoader struct {
	configFile string
	envPrefix  string
}

// NewViperLoader creates a loader. configFile may be empty; envPrefix is the
// prefix for environment overrides (e.g. "DOCSHAPE" binds
// DOCSHAPE_MONGODB_URL to mongodb.url).
func NewViperLoader(configFile, envPrefix string) *ViperLoader {
	return &ViperLoader{configFile: configFile, envPrefix: envPrefix}
}

// Load loads configuration with precedence: ENV > file > defaults.
func (l *ViperLoader) Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("mongodb.url", defaults.MongoDB.URL)
	v.SetDefault("mongodb.database", defaults.MongoDB.Database)
	v.SetDefault("mongodb.collection", defaults.MongoDB.Collection)
	v.SetDefault("mongodb.connect_timeout", defaults.MongoDB.ConnectTimeout)
	v.SetDefault("mongodb.operation_timeout", defaults.MongoDB.OperationTimeout)

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", l.configFile, err)
		}
	}

	v.SetEnvPrefix(l.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := l.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for missing or inconsistent values.
func (l *ViperLoader) Validate(cfg *Config) error {
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format %q is not one of json, text", cfg.Log.Format)
	}
	if cfg.MongoDB.URL == "" {
		return fmt.Errorf("mongodb.url is required")
	}
	if cfg.MongoDB.Database == "" {
		return fmt.Errorf("mongodb.database is required")
	}
	if cfg.MongoDB.Collection == "" {
		return fmt.Errorf("mongodb.collection is required")
	}
	if cfg.MongoDB.ConnectTimeout <= 0 {
		return fmt.Errorf("mongodb.connect_timeout must be positive")
	}
	if cfg.MongoDB.OperationTimeout <= 0 {
		return fmt.Errorf("mongodb.operation_timeout must be positive")
	}
	return nil
}
