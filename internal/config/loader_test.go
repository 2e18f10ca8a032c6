package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/BiasLens-Intelligence/internal/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
  mode: debug
log:
  level: debug
  format: console
cache:
  enabled: true
  addr: redis:6379
  ttl: 10m
classifiers:
  endpoints:
    - name: political
      url: http://classifier:9001
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "redis:6379", cfg.Cache.Addr)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	require.Len(t, cfg.Classifiers.Endpoints, 1)
	assert.Equal(t, "political", cfg.Classifiers.Endpoints[0].Name)
	assert.Equal(t, config.DefaultClassifierTimeout, cfg.Classifiers.Endpoints[0].Timeout)

	// Unset sections fall back to defaults.
	assert.Equal(t, config.DefaultServerReadTimeout, cfg.Server.ReadTimeout)
	assert.Equal(t, config.DefaultMetricsNamespace, cfg.Metrics.Namespace)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidConfig(t *testing.T) {
	path := writeConfigFile(t, `
server:
  mode: staging
`)

	_, err := config.Load(path)
	assert.ErrorContains(t, err, "server.mode")
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := config.LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, config.DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, config.DefaultLogLevel, cfg.Log.Level)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
log:
  level: info
`)
	t.Setenv("BIASLENS_SERVER_PORT", "7070")
	t.Setenv("BIASLENS_LOG_LEVEL", "warn")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		config.MustLoad(filepath.Join(t.TempDir(), "nope.yaml"))
	})
}
