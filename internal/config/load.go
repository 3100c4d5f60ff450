package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	keySchemaVersion = "schema_version"
	keyAPI           = "api"
	keyBrowser       = "browser"
	keyCache         = "cache"
	keyLogging       = "logging"
)

// LoadOptions locates the sources Load reads. Zero values select the defaults.
type LoadOptions struct {
	// Path is the YAML file; empty means DefaultPath.
	Path string

	// DotEnvPath is the .env file; empty means ./.env. A missing file is ignored.
	DotEnvPath string

	// Environ replaces os.Environ, mainly for tests.
	Environ []string
}

// Load resolves the configuration from defaults, the YAML file, the .env file
// and the environment, then validates it.
func Load(opts LoadOptions) (*Config, error) {
	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	vars := env.ToMap(environ)

	dir, err := dirFrom(vars[EnvHome])
	if err != nil {
		return nil, err
	}
	path := opts.Path
	if path == "" {
		path = filepath.Join(dir, configFileName)
	}

	cfg := Default(dir)
	if err = MergeFile(cfg, path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if err = applyEnv(cfg, opts.DotEnvPath, vars); err != nil {
		return nil, err
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MergeFile overlays the YAML file at path onto cfg, one top-level section at a
// time. Fields a section omits keep their current values; unknown keys are
// ignored.
func MergeFile(cfg *Config, path string) error {
	if cfg == nil {
		return errors.New("nil target *Config in MergeFile")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	for key, node := range overlay {
		if err = mergeSection(cfg, key, &node); err != nil {
			return fmt.Errorf("applying section %q from %s: %w", key, path, err)
		}
	}
	return nil
}

// mergeSection decodes into a copy so a failed section leaves cfg untouched.
func mergeSection(cfg *Config, key string, node *yaml.Node) error {
	switch key {
	case keySchemaVersion:
		return node.Decode(&cfg.SchemaVersion)
	case keyAPI:
		return decodeInto(node, &cfg.API)
	case keyBrowser:
		return decodeInto(node, &cfg.Browser)
	case keyCache:
		return decodeInto(node, &cfg.Cache)
	case keyLogging:
		return decodeInto(node, &cfg.Logging)
	}
	return nil
}

func decodeInto[T any](node *yaml.Node, target *T) error {
	v := *target
	if err := node.Decode(&v); err != nil {
		return err
	}
	*target = v
	return nil
}

// applyEnv overlays POKEDEX_* variables. Variables from the .env file apply
// only where the real environment does not set them.
func applyEnv(cfg *Config, dotEnvPath string, vars map[string]string) error {
	if dotEnvPath == "" {
		dotEnvPath = ".env"
	}
	dotenv, err := godotenv.Read(dotEnvPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", dotEnvPath, err)
	}

	merged := make(map[string]string, len(dotenv)+len(vars))
	for k, v := range dotenv {
		merged[k] = v
	}
	for k, v := range vars {
		merged[k] = v
	}

	if err = env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix, Environment: merged}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Save writes cfg to path as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	tmp := path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing config file: %w", err)
	}
	return nil
}
