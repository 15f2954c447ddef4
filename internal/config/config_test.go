package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/holocron/internal/config"
	"github.com/rshade/holocron/internal/swapi"
)

// isolate points HOLOCRON_HOME at a temp dir and returns it.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	return home
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew_Defaults(t *testing.T) {
	home := isolate(t)

	cfg := config.New()
	assert.Equal(t, swapi.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 20*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2, cfg.API.RetryMax)
	assert.Contains(t, cfg.API.UserAgent, "holocron/")
	assert.Positive(t, cfg.Fetch.MaxConcurrency)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 3600, cfg.Cache.TTLSeconds)
	assert.Equal(t, filepath.Join(home, "cache"), cfg.Cache.Directory)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, filepath.Join(home, "config.yaml"), cfg.Path())
	require.NoError(t, cfg.Validate())
}

func TestGetConfigDir(t *testing.T) {
	t.Run("HOLOCRON_HOME", func(t *testing.T) {
		home := isolate(t)
		dir, err := config.GetConfigDir()
		require.NoError(t, err)
		assert.Equal(t, home, dir)
	})

	t.Run("UserHome", func(t *testing.T) {
		t.Setenv(config.EnvHome, "")
		userHome := t.TempDir()
		t.Setenv("HOME", userHome)
		dir, err := config.GetConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(userHome, ".holocron"), dir)
	})
}

func TestLoad_MissingFile(t *testing.T) {
	home := isolate(t)

	cfg, err := config.Load(filepath.Join(home, "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, swapi.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, filepath.Join(home, "absent.yaml"), cfg.Path())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	home := isolate(t)
	path := writeConfig(t, home, `
api:
  base_url: http://localhost:9000/api
  timeout: 5s
fetch:
  max_concurrency: 2
server:
  allowed_origins:
    - https://example.com
logging:
  level: debug
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2, cfg.API.RetryMax, "unset fields keep their defaults")
	assert.Equal(t, 2, cfg.Fetch.MaxConcurrency)
	assert.Equal(t, []string{"https://example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := isolate(t)
	path := writeConfig(t, home, `
api:
  base_url: http://from-file/api
logging:
  level: debug
`)
	t.Setenv("HOLOCRON_API_BASE_URL", "http://from-env/api")
	t.Setenv("HOLOCRON_API_TIMEOUT", "3s")
	t.Setenv("HOLOCRON_LOG_LEVEL", "warn")
	t.Setenv("HOLOCRON_CACHE_ENABLED", "false")
	t.Setenv("HOLOCRON_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("HOLOCRON_SERVER_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
}

func TestLoad_Errors(t *testing.T) {
	home := isolate(t)

	t.Run("InvalidYAML", func(t *testing.T) {
		path := writeConfig(t, home, "api: [not, a, map")
		_, err := config.Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing config")
	})

	t.Run("InvalidEnv", func(t *testing.T) {
		t.Setenv("HOLOCRON_FETCH_MAX_CONCURRENCY", "many")
		_, err := config.Load(filepath.Join(home, "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse env")
	})
}

func TestSave(t *testing.T) {
	home := isolate(t)

	cfg := config.New()
	cfg.SetPath(filepath.Join(home, "nested", "config.yaml"))
	cfg.API.Timeout = 7 * time.Second
	cfg.Fetch.MaxConcurrency = 3
	require.NoError(t, cfg.Save())

	info, err := os.Stat(cfg.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := config.Load(cfg.Path())
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, loaded.API.Timeout)
	assert.Equal(t, 3, loaded.Fetch.MaxConcurrency)

	cfg.SetPath("")
	assert.Error(t, cfg.Save())
}

func TestValidate(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{
			name:    "relative base url",
			mutate:  func(c *config.Config) { c.API.BaseURL = "/api" },
			wantErr: "api.base_url",
		},
		{
			name:    "negative retries",
			mutate:  func(c *config.Config) { c.API.RetryMax = -1 },
			wantErr: "api.retry_max",
		},
		{
			name:    "negative concurrency",
			mutate:  func(c *config.Config) { c.Fetch.MaxConcurrency = -2 },
			wantErr: "fetch.max_concurrency",
		},
		{
			name:    "ttl too short",
			mutate:  func(c *config.Config) { c.Cache.TTLSeconds = 5 },
			wantErr: "cache.ttl_seconds",
		},
		{
			name: "ttl ignored when cache disabled",
			mutate: func(c *config.Config) {
				c.Cache.Enabled = false
				c.Cache.TTLSeconds = 0
			},
		},
		{
			name:    "empty addr",
			mutate:  func(c *config.Config) { c.Server.Addr = " " },
			wantErr: "server.addr",
		},
		{
			name:    "bad level",
			mutate:  func(c *config.Config) { c.Logging.Level = "loud" },
			wantErr: "logging.level",
		},
		{
			name:    "bad format",
			mutate:  func(c *config.Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHTTPOptions(t *testing.T) {
	isolate(t)

	cfg := config.New()
	cfg.API.RetryMax = 5
	cfg.API.UserAgent = "holocron/test"
	opts := cfg.HTTPOptions()
	assert.Equal(t, 5, opts.RetryMax)
	assert.Equal(t, "holocron/test", opts.UserAgent)
	assert.Equal(t, cfg.API.Timeout, opts.Timeout)
	assert.Positive(t, opts.RetryWait)
}

func TestEnsureConfigDir(t *testing.T) {
	home := filepath.Join(t.TempDir(), "holo")
	t.Setenv(config.EnvHome, home)

	require.NoError(t, config.EnsureConfigDir())
	info, err := os.Stat(home)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	logs, err := config.LogsDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs"), logs)
}

func TestToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "debug", Format: "json"}
	out := lc.ToLoggingConfig()
	assert.Equal(t, "debug", out.Level)
	assert.Equal(t, "json", out.Format)
	assert.Equal(t, "stderr", out.Output)

	lc.File = "/tmp/holocron.log"
	out = lc.ToLoggingConfig()
	assert.Equal(t, "file", out.Output)
	assert.Equal(t, "/tmp/holocron.log", out.File)
}
