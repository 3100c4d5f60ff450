// Package config loads, validates and persists pokedex settings.
//
// Values are resolved in this order, later sources winning:
//
//	built-in defaults < ~/.pokedex/config.yaml < ./.env < POKEDEX_* environment < CLI flags
//
// CLI flags are applied by the cli package after Load returns.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/pokedex/internal/engine/cache"
	"github.com/rshade/pokedex/internal/logging"
	"github.com/rshade/pokedex/internal/pokeapi"
)

const (
	// EnvHome overrides the ~/.pokedex directory.
	EnvHome = "POKEDEX_HOME"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "POKEDEX_"

	dirName        = ".pokedex"
	configFileName = "config.yaml"

	MinPageSize     = 1
	MaxPageSize     = 100
	DefaultPageSize = 20
	MaxDebounce     = 5 * time.Second
	DefaultDebounce = 300 * time.Millisecond
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full settings tree.
type Config struct {
	SchemaVersion string        `yaml:"schema_version" json:"schema_version"`
	API           APIConfig     `yaml:"api"            json:"api"            envPrefix:"API_"`
	Browser       BrowserConfig `yaml:"browser"        json:"browser"        envPrefix:"BROWSER_"`
	Cache         CacheConfig   `yaml:"cache"          json:"cache"          envPrefix:"CACHE_"`
	Logging       LoggingConfig `yaml:"logging"        json:"logging"        envPrefix:"LOG_"`
}

// APIConfig points the client at PokeAPI.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"   json:"base_url"   env:"BASE_URL"`
	Timeout   time.Duration `yaml:"timeout"    json:"timeout"    env:"TIMEOUT"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" env:"USER_AGENT"`
}

// BrowserConfig tunes the list controller.
type BrowserConfig struct {
	PageSize int           `yaml:"page_size" json:"page_size" env:"PAGE_SIZE"`
	Debounce time.Duration `yaml:"debounce"  json:"debounce"  env:"DEBOUNCE"`
}

// CacheConfig controls the on-disk response cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"     json:"enabled"     env:"ENABLED"`
	TTLSeconds int    `yaml:"ttl_seconds" json:"ttl_seconds" env:"TTL_SECONDS"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb" env:"MAX_SIZE_MB"`
	Directory  string `yaml:"directory"   json:"directory"   env:"DIR"`
}

// LoggingConfig selects level, format and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"          env:"LEVEL"`
	Format string `yaml:"format"         json:"format"         env:"FORMAT"`
	File   string `yaml:"file,omitempty" json:"file,omitempty" env:"FILE"`
}

// Dir returns $POKEDEX_HOME or ~/.pokedex.
func Dir() (string, error) {
	return dirFrom(os.Getenv(EnvHome))
}

func dirFrom(home string) (string, error) {
	if home != "" {
		return filepath.Abs(home)
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(userHome, dirName), nil
}

// DefaultPath returns the config file location inside Dir.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Default returns the built-in settings rooted at dir.
func Default(dir string) *Config {
	return &Config{
		SchemaVersion: SchemaVersion,
		API: APIConfig{
			BaseURL:   pokeapi.DefaultBaseURL,
			Timeout:   pokeapi.DefaultTimeout,
			UserAgent: pokeapi.DefaultUserAgent,
		},
		Browser: BrowserConfig{
			PageSize: DefaultPageSize,
			Debounce: DefaultDebounce,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: cache.DefaultTTLSeconds,
			MaxSizeMB:  cache.DefaultMaxSizeMB,
			Directory:  filepath.Join(dir, "cache"),
		},
		Logging: LoggingConfig{
			Level:  zerolog.InfoLevel.String(),
			Format: logging.FormatConsole,
			File:   filepath.Join(dir, "logs", "pokedex.log"),
		},
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if err := CheckSchemaVersion(c.SchemaVersion); err != nil {
		errs = append(errs, err)
	}

	if u, err := url.Parse(c.API.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		add("api.base_url must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		add("api.timeout must be positive, got %s", c.API.Timeout)
	}

	if c.Browser.PageSize < MinPageSize || c.Browser.PageSize > MaxPageSize {
		add("browser.page_size must be between %d and %d, got %d", MinPageSize, MaxPageSize, c.Browser.PageSize)
	}
	if c.Browser.Debounce < 0 || c.Browser.Debounce > MaxDebounce {
		add("browser.debounce must be between 0s and %s, got %s", MaxDebounce, c.Browser.Debounce)
	}

	if c.Cache.Enabled {
		if err := cache.ValidateTTL(c.Cache.TTLSeconds); err != nil {
			add("cache.ttl_seconds: %w", err)
		}
		if c.Cache.MaxSizeMB < 0 {
			add("cache.max_size_mb must not be negative, got %d", c.Cache.MaxSizeMB)
		}
		if c.Cache.Directory == "" {
			add("cache.directory must be set when the cache is enabled")
		}
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
