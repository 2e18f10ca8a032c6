package config

import "time"

// Default values applied to zero-valued fields before validation.
const (
	DefaultServerPort            = 8080
	DefaultServerMode            = "release"
	DefaultServerReadTimeout     = 15 * time.Second
	DefaultServerWriteTimeout    = 30 * time.Second
	DefaultServerMaxBodySize     = 1 << 20 // 1 MiB
	DefaultServerShutdownTimeout = 10 * time.Second

	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	DefaultLogOutputPath = "stdout"

	DefaultMetricsNamespace = "biaslens"

	DefaultCacheAddr         = "localhost:6379"
	DefaultCachePoolSize     = 10
	DefaultCacheDialTimeout  = 5 * time.Second
	DefaultCacheReadTimeout  = 3 * time.Second
	DefaultCacheWriteTimeout = 3 * time.Second
	DefaultCacheTTL          = 5 * time.Minute
	DefaultCacheKeyPrefix    = "biaslens:"

	DefaultClassifierTimeout = 5 * time.Second
)

// ApplyDefaults fills zero-valued fields.  It never overrides a value the
// caller has set explicitly.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
	if c.Server.Mode == "" {
		c.Server.Mode = DefaultServerMode
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if c.Server.MaxBodySize == 0 {
		c.Server.MaxBodySize = DefaultServerMaxBodySize
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Log.OutputPath == "" {
		c.Log.OutputPath = DefaultLogOutputPath
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}

	if c.Cache.Addr == "" {
		c.Cache.Addr = DefaultCacheAddr
	}
	if c.Cache.PoolSize == 0 {
		c.Cache.PoolSize = DefaultCachePoolSize
	}
	if c.Cache.DialTimeout == 0 {
		c.Cache.DialTimeout = DefaultCacheDialTimeout
	}
	if c.Cache.ReadTimeout == 0 {
		c.Cache.ReadTimeout = DefaultCacheReadTimeout
	}
	if c.Cache.WriteTimeout == 0 {
		c.Cache.WriteTimeout = DefaultCacheWriteTimeout
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = DefaultCacheKeyPrefix
	}

	for i := range c.Classifiers.Endpoints {
		if c.Classifiers.Endpoints[i].Timeout == 0 {
			c.Classifiers.Endpoints[i].Timeout = DefaultClassifierTimeout
		}
	}
}
