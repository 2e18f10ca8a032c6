// Package config defines all configuration structures for the BiasLens
// platform.  No I/O or parsing logic lives here, only plain data types and
// validation.
package config

import (
	"fmt"
	"time"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig holds logging parameters.
type LogConfig struct {
	Level      string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format     string `mapstructure:"format"` // "json" | "console"
	OutputPath string `mapstructure:"output_path"`
}

// MetricsConfig holds the Prometheus exposure settings.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// CacheConfig holds the optional redis response cache settings.  The cache is
// off unless Enabled is set; the engine works fully without it.
type CacheConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	TTL          time.Duration `mapstructure:"ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// LexiconConfig holds pattern data settings.
type LexiconConfig struct {
	// DataDir optionally points at a directory whose JSON files shadow the
	// embedded pattern data.
	DataDir string `mapstructure:"data_dir"`
}

// MorphologyConfig holds morphological backend settings.
type MorphologyConfig struct {
	// DictionaryDir optionally points at a directory whose <lang>.json files
	// shadow the embedded lemma dictionaries.
	DictionaryDir string `mapstructure:"dictionary_dir"`
}

// ClassifierEndpointConfig names one downstream classifier service.
type ClassifierEndpointConfig struct {
	Name    string        `mapstructure:"name"`
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ClassifiersConfig holds the classifier fan-out settings.
type ClassifiersConfig struct {
	Endpoints []ClassifierEndpointConfig `mapstructure:"endpoints"`
}

// Config is the root configuration object.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Lexicon     LexiconConfig     `mapstructure:"lexicon"`
	Morphology  MorphologyConfig  `mapstructure:"morphology"`
	Classifiers ClassifiersConfig `mapstructure:"classifiers"`
}

// Validate checks the configuration for structural errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port must be in 1..65535, got %d", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode must be debug, release or test, got %q", c.Server.Mode)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format must be json or console, got %q", c.Log.Format)
	}
	if c.Cache.Enabled && c.Cache.Addr == "" {
		return fmt.Errorf("config: cache.addr is required when cache.enabled is set")
	}
	for i, ep := range c.Classifiers.Endpoints {
		if ep.Name == "" {
			return fmt.Errorf("config: classifiers.endpoints[%d].name is required", i)
		}
		if ep.URL == "" {
			return fmt.Errorf("config: classifiers.endpoints[%d].url is required", i)
		}
	}
	return nil
}
