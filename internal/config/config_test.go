package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathways.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
  shutdown_timeout: 3s
log:
  level: debug
sessions:
  store: redis
  ttl: 1h
redis:
  addr: redis:6379
`), 0o644))

	cfg, err := LoadWithEnv(path, env(map[string]string{
		"PATHWAYS_LOG_FORMAT": "json",
		"PATHWAYS_REDIS_DB":   "2",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, StoreRedis, cfg.Sessions.Store)
	assert.Equal(t, time.Hour, cfg.Sessions.TTL)
	assert.Equal(t, 30*time.Second, cfg.Sessions.LockTTL, "unset keys keep defaults")
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoad_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathways.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pathways": {"source": "loam", "dir": "./graph"}}`), 0o644))

	cfg, err := LoadWithEnv(path, env(nil))
	require.NoError(t, err)
	assert.Equal(t, SourceLoam, cfg.Pathways.Source)
	assert.Equal(t, "./graph", cfg.Pathways.Dir)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("Missing File", func(t *testing.T) {
		_, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.yaml"), env(nil))
		assert.Error(t, err)
	})

	t.Run("Unknown Key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("servr:\n  addr: x\n"), 0o644))
		_, err := LoadWithEnv(path, env(nil))
		assert.Error(t, err)
	})

	t.Run("Bad Env Duration", func(t *testing.T) {
		_, err := LoadWithEnv("", env(map[string]string{"PATHWAYS_SESSION_TTL": "soon"}))
		assert.ErrorContains(t, err, "PATHWAYS_SESSION_TTL")
	})

	t.Run("Loam Without Dir", func(t *testing.T) {
		_, err := LoadWithEnv("", env(map[string]string{"PATHWAYS_PATHWAYS_SOURCE": "loam"}))
		assert.ErrorContains(t, err, "pathways.dir")
	})

	t.Run("Every Problem Reported", func(t *testing.T) {
		_, err := LoadWithEnv("", env(map[string]string{
			"PATHWAYS_LOG_LEVEL":     "loud",
			"PATHWAYS_SESSION_STORE": "etcd",
		}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loud")
		assert.Contains(t, err.Error(), "etcd")
	})
}
