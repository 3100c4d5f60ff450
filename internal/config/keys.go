package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"
)

// ErrUnknownKey is returned for a dotted key that names no setting.
var ErrUnknownKey = errors.New("unknown config key")

type accessor struct {
	get func(*Config) string
	set func(*Config, string) error
}

func stringField(field func(*Config) *string) accessor {
	return accessor{
		get: func(c *Config) string { return *field(c) },
		set: func(c *Config, v string) error { *field(c) = v; return nil },
	}
}

func intField(field func(*Config) *int) accessor {
	return accessor{
		get: func(c *Config) string { return strconv.Itoa(*field(c)) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("expected an integer: %w", err)
			}
			*field(c) = n
			return nil
		},
	}
}

func boolField(field func(*Config) *bool) accessor {
	return accessor{
		get: func(c *Config) string { return strconv.FormatBool(*field(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("expected true or false: %w", err)
			}
			*field(c) = b
			return nil
		},
	}
}

func durationField(field func(*Config) *time.Duration) accessor {
	return accessor{
		get: func(c *Config) string { return field(c).String() },
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("expected a duration such as 300ms: %w", err)
			}
			*field(c) = d
			return nil
		},
	}
}

//nolint:gochecknoglobals // fixed lookup table
var accessors = map[string]accessor{
	"schema_version":    stringField(func(c *Config) *string { return &c.SchemaVersion }),
	"api.base_url":      stringField(func(c *Config) *string { return &c.API.BaseURL }),
	"api.timeout":       durationField(func(c *Config) *time.Duration { return &c.API.Timeout }),
	"api.user_agent":    stringField(func(c *Config) *string { return &c.API.UserAgent }),
	"browser.page_size": intField(func(c *Config) *int { return &c.Browser.PageSize }),
	"browser.debounce":  durationField(func(c *Config) *time.Duration { return &c.Browser.Debounce }),
	"cache.enabled":     boolField(func(c *Config) *bool { return &c.Cache.Enabled }),
	"cache.ttl_seconds": intField(func(c *Config) *int { return &c.Cache.TTLSeconds }),
	"cache.max_size_mb": intField(func(c *Config) *int { return &c.Cache.MaxSizeMB }),
	"cache.directory":   stringField(func(c *Config) *string { return &c.Cache.Directory }),
	"logging.level":     stringField(func(c *Config) *string { return &c.Logging.Level }),
	"logging.format":    stringField(func(c *Config) *string { return &c.Logging.Format }),
	"logging.file":      stringField(func(c *Config) *string { return &c.Logging.File }),
}

// Keys lists every dotted key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(accessors))
	for k := range accessors {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Get returns the value of a dotted key such as "browser.page_size".
func (c *Config) Get(key string) (string, error) {
	a, ok := accessors[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return a.get(c), nil
}

// Set parses value into the dotted key. It does not validate the result.
func (c *Config) Set(key, value string) error {
	a, ok := accessors[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err := a.set(c, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}
