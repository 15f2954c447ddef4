// Package config loads holocron's settings.
//
// Settings come from built-in defaults, then ~/.holocron/config.yaml (the directory can be
// moved with HOLOCRON_HOME), then HOLOCRON_* environment variables. CLI flags are applied
// on top by the caller.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/holocron/internal/cache"
	"github.com/rshade/holocron/internal/swapi"
	"github.com/rshade/holocron/pkg/version"
)

const (
	// EnvHome overrides the holocron home directory.
	EnvHome = "HOLOCRON_HOME"

	configDirName  = ".holocron"
	configFileName = "config.yaml"
	cacheDirName   = "cache"
	logsDirName    = "logs"

	dirPerm  = 0o700
	filePerm = 0o600
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full holocron configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Cache   CacheConfig   `yaml:"cache"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`

	path string
}

// APIConfig controls the SWAPI client.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"   env:"HOLOCRON_API_BASE_URL"`
	Timeout   time.Duration `yaml:"timeout"    env:"HOLOCRON_API_TIMEOUT"`
	RetryMax  int           `yaml:"retry_max"  env:"HOLOCRON_API_RETRY_MAX"`
	UserAgent string        `yaml:"user_agent" env:"HOLOCRON_API_USER_AGENT"`
}

// FetchConfig controls the related-record fan-out.
type FetchConfig struct {
	// MaxConcurrency caps in-flight fetches per sequence. Zero means runtime.NumCPU().
	MaxConcurrency int `yaml:"max_concurrency" env:"HOLOCRON_FETCH_MAX_CONCURRENCY"`
}

// CacheConfig controls the on-disk response cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"     env:"HOLOCRON_CACHE_ENABLED"`
	TTLSeconds int    `yaml:"ttl_seconds" env:"HOLOCRON_CACHE_TTL_SECONDS"`
	Directory  string `yaml:"directory"   env:"HOLOCRON_CACHE_DIR"`
}

// ServerConfig controls `holocron serve`.
type ServerConfig struct {
	Addr           string        `yaml:"addr"            env:"HOLOCRON_SERVER_ADDR"`
	ReadTimeout    time.Duration `yaml:"read_timeout"    env:"HOLOCRON_SERVER_READ_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout"   env:"HOLOCRON_SERVER_WRITE_TIMEOUT"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"    env:"HOLOCRON_SERVER_IDLE_TIMEOUT"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"HOLOCRON_SERVER_ALLOWED_ORIGINS" envSeparator:","`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"  env:"HOLOCRON_LOG_LEVEL"`
	Format string `yaml:"format" env:"HOLOCRON_LOG_FORMAT"`
	File   string `yaml:"file"   env:"HOLOCRON_LOG_FILE"`
}

// GetConfigDir returns the holocron home directory.
func GetConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(EnvHome)); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// DefaultPath returns the path of the default config file.
func DefaultPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// New returns a Config holding the built-in defaults.
func New() *Config {
	dir, err := GetConfigDir()
	if err != nil {
		dir = filepath.Join(os.TempDir(), configDirName)
	}

	return &Config{
		API: APIConfig{
			BaseURL:   swapi.DefaultBaseURL,
			Timeout:   20 * time.Second,
			RetryMax:  2,
			UserAgent: version.UserAgent(),
		},
		Fetch: FetchConfig{
			MaxConcurrency: runtime.NumCPU(),
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: cache.DefaultTTLSeconds,
			Directory:  filepath.Join(dir, cacheDirName),
		},
		Server: ServerConfig{
			Addr:           ":8080",
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   30 * time.Second,
			IdleTimeout:    60 * time.Second,
			AllowedOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		path: filepath.Join(dir, configFileName),
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := New()
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err = cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads the config file under GetConfigDir.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Path returns the file this config was loaded from or will be saved to.
func (c *Config) Path() string {
	return c.path
}

// SetPath changes where Save writes.
func (c *Config) SetPath(path string) {
	c.path = path
}

// Save writes the config as YAML, creating the parent directory.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config path not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.path), dirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.path, data, filePerm); err != nil {
		return fmt.Errorf("writing config %s: %w", c.path, err)
	}
	return nil
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q is not an absolute URL", ErrInvalidConfig, c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout must not be negative", ErrInvalidConfig)
	}
	if c.API.RetryMax < 0 {
		return fmt.Errorf("%w: api.retry_max must not be negative", ErrInvalidConfig)
	}
	if c.Fetch.MaxConcurrency < 0 {
		return fmt.Errorf("%w: fetch.max_concurrency must not be negative", ErrInvalidConfig)
	}
	if c.Cache.Enabled {
		if err = cache.ValidateTTL(c.Cache.TTLSeconds); err != nil {
			return fmt.Errorf("%w: cache.ttl_seconds: %w", ErrInvalidConfig, err)
		}
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("%w: server.addr is required", ErrInvalidConfig)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console", "text", "":
	default:
		return fmt.Errorf("%w: logging.format %q", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// HTTPOptions returns the SWAPI HTTP client settings.
func (c *Config) HTTPOptions() swapi.HTTPOptions {
	opts := swapi.DefaultHTTPOptions()
	opts.Timeout = c.API.Timeout
	opts.RetryMax = c.API.RetryMax
	opts.UserAgent = c.API.UserAgent
	return opts
}

// EnsureConfigDir creates the holocron home directory.
func EnsureConfigDir() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, dirPerm)
}

// LogsDir returns the directory used for log files when none is configured.
func LogsDir() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, logsDirName), nil
}
