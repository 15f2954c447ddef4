package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/holocron/internal/config"
)

// newDefaultTarget returns a Config with known non-zero values so tests can
// verify that absent overlay keys leave the original values intact.
func newDefaultTarget() *config.Config {
	return &config.Config{
		API: config.APIConfig{
			BaseURL:   "https://swapi.dev/api",
			Timeout:   20 * time.Second,
			RetryMax:  2,
			UserAgent: "holocron/test",
		},
		Fetch: config.FetchConfig{MaxConcurrency: 8},
		Cache: config.CacheConfig{
			Enabled:    true,
			TTLSeconds: 3600,
			Directory:  "/var/cache/holocron",
		},
		Server: config.ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
		Logging: config.LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// writeOverlay is a test helper that writes YAML content to a temp file
// and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestShallowMergeYAML_SingleKeyOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
api:
  base_url: http://localhost:9000/api
  retry_max: 0
`)

	err := config.ShallowMergeYAML(target, overlay)
	require.NoError(t, err)

	// API should be replaced wholesale.
	assert.Equal(t, "http://localhost:9000/api", target.API.BaseURL)
	assert.Equal(t, 0, target.API.RetryMax)
	assert.Zero(t, target.API.Timeout)
	assert.Empty(t, target.API.UserAgent)

	// Other sections should be unchanged.
	assert.Equal(t, "info", target.Logging.Level)
	assert.Equal(t, 8, target.Fetch.MaxConcurrency)
	assert.True(t, target.Cache.Enabled)
}

func TestShallowMergeYAML_MultipleKeyOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
cache:
  enabled: false
server:
  addr: 127.0.0.1:7000
  read_timeout: 2s
  allowed_origins: [https://holocron.test]
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.False(t, target.Cache.Enabled)
	assert.Zero(t, target.Cache.TTLSeconds)
	assert.Equal(t, "127.0.0.1:7000", target.Server.Addr)
	assert.Equal(t, 2*time.Second, target.Server.ReadTimeout)
	assert.Equal(t, []string{"https://holocron.test"}, target.Server.AllowedOrigins)
	assert.Equal(t, "https://swapi.dev/api", target.API.BaseURL)
}

func TestShallowMergeYAML_EmptyOverlayFile(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, "")

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, newDefaultTarget(), target)
}

func TestShallowMergeYAML_CommentOnlyFile(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, "# nothing here\n# still nothing\n")

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, newDefaultTarget(), target)
}

func TestShallowMergeYAML_CorruptedYAMLReturnsError(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, "api: [unterminated")

	err := config.ShallowMergeYAML(target, overlay)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing overlay YAML")
}

func TestShallowMergeYAML_MissingFileReturnsError(t *testing.T) {
	target := newDefaultTarget()

	err := config.ShallowMergeYAML(target, filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading overlay file")
}

func TestShallowMergeYAML_NilTarget(t *testing.T) {
	overlay := writeOverlay(t, "logging:\n  level: debug\n")
	assert.Error(t, config.ShallowMergeYAML(nil, overlay))
}

func TestShallowMergeYAML_TypeMismatchReturnsError(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
fetch:
  max_concurrency: lots
`)

	err := config.ShallowMergeYAML(target, overlay)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `applying overlay section "fetch"`)
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
plugins:
  aws: {}
logging:
  level: trace
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, "trace", target.Logging.Level)
	assert.Empty(t, target.Logging.Format)
}
