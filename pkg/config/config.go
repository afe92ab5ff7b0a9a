// Package config loads toolkit configuration with ENV > file > defaults
// precedence.
package config

import "time"

// Config is the root configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	MongoDB MongoDBConfig `mapstructure:"mongodb"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MongoDBConfig controls the document store connection.
type MongoDBConfig struct {
	URL              string        `mapstructure:"url"`
	Database         string        `mapstructure:"database"`
	Collection       string        `mapstructure:"collection"`
	ConnectTimeout   time.Duration `mapstructure:"connect_timeout"`
	OperationTimeout time.Duration `mapstructure:"operation_timeout"`
}

// DefaultConfig returns the defaults applied before file and environment
// overrides.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		MongoDB: MongoDBConfig{
			URL:              "mongodb://localhost:27017",
			Database:         "docshape",
			Collection:       "documents",
			ConnectTimeout:   5 * time.Second,
			OperationTimeout: 5 * time.Second,
		},
	}
}
