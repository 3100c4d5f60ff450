package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/pokedex/internal/config"
	"github.com/rshade/pokedex/internal/engine/cache"
	"github.com/rshade/pokedex/internal/logging"
)

// annotationLenientConfig marks commands that must run even when the
// configuration does not load, such as config init and config validate.
const annotationLenientConfig = "pokedex.lenient-config"

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // Required for zerolog context integration

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	debug      bool
	configPath string
	baseURL    string
	noCache    bool
	cacheTTL   int
}

// NewRootCmd creates the root Cobra command for the pokedex CLI. It loads the
// configuration, wires logging and tracing, and registers the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		flags     rootFlags
		logResult *logging.LogPathResult
	)

	cmd := &cobra.Command{
		Use:           "pokedex",
		Short:         "Browse Pokémon from PokeAPI",
		Long:          "pokedex: browse, search and inspect Pokémon from PokeAPI in the terminal",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			result := setupLogging(cmd, cfg, flags.debug)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging to stderr")
	pf.StringVar(&flags.configPath, "config", "", "config file (default $POKEDEX_HOME/config.yaml or ~/.pokedex/config.yaml)")
	pf.StringVar(&flags.baseURL, "api-url", "", "PokeAPI base URL (overrides config and environment)")
	pf.BoolVar(&flags.noCache, "no-cache", false, "bypass the on-disk response cache")
	pf.IntVar(&flags.cacheTTL, "cache-ttl", 0,
		"cache TTL in seconds (0 = use config default, overrides config file and env var)")

	cmd.AddCommand(
		NewBrowseCmd(),
		NewListCmd(),
		NewShowCmd(),
		newCacheCmd(),
		newConfigCmd(),
		NewVersionCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Browse interactively
  pokedex browse

  # Start the browser already filtered
  pokedex browse --query char

  # List the second page of 50 as JSON
  pokedex list --page 2 --page-size 50 --output json

  # Search and include types
  pokedex list --query saur --details

  # Show one Pokémon
  pokedex show pikachu

  # Inspect and clear the response cache
  pokedex cache stats
  pokedex cache clear

  # Initialize and edit configuration
  pokedex config init
  pokedex config set browser.page_size 30`

// loadConfig resolves the configuration, applies flag overrides and stores
// the result in the command context.
func loadConfig(cmd *cobra.Command, flags rootFlags) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{Path: flags.configPath})
	if err != nil {
		if cmd.Annotations[annotationLenientConfig] == "" {
			return nil, err
		}
		dir, dirErr := config.Dir()
		if dirErr != nil {
			return nil, errors.Join(err, dirErr)
		}
		cfg = config.Default(dir)
	}

	if cmd.Flags().Changed("api-url") {
		cfg.API.BaseURL = flags.baseURL
	}
	if flags.noCache {
		cfg.Cache.Enabled = false
	}
	if cmd.Flags().Changed("cache-ttl") {
		if flags.cacheTTL < 0 {
			return nil, fmt.Errorf("cache-ttl must be >= 0, got %d", flags.cacheTTL)
		}
		if flags.cacheTTL > 0 {
			if err = cache.ValidateTTL(flags.cacheTTL); err != nil {
				return nil, err
			}
			cfg.Cache.TTLSeconds = flags.cacheTTL
		}
	}

	cmd.SetContext(contextWithConfig(cmd.Context(), cfg, flags.configPath))
	return cfg, nil
}

type configKey struct{}

type configValue struct {
	cfg  *config.Config
	path string
}

func contextWithConfig(ctx context.Context, cfg *config.Config, path string) context.Context {
	return context.WithValue(ctx, configKey{}, configValue{cfg: cfg, path: path})
}

// configFromContext returns the configuration loaded for this invocation,
// falling back to the defaults when the context carries none.
func configFromContext(ctx context.Context) *config.Config {
	if v, ok := ctx.Value(configKey{}).(configValue); ok && v.cfg != nil {
		return v.cfg
	}
	dir, err := config.Dir()
	if err != nil {
		dir = "."
	}
	return config.Default(dir)
}

// configPathFromContext returns the --config path or the default location.
func configPathFromContext(ctx context.Context) (string, error) {
	if v, ok := ctx.Value(configKey{}).(configValue); ok && v.path != "" {
		return v.path, nil
	}
	return config.DefaultPath()
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Configuration management commands",
		Annotations: map[string]string{annotationLenientConfig: "true"},
	}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	for _, sub := range cmd.Commands() {
		sub.Annotations = map[string]string{annotationLenientConfig: "true"}
	}
	return cmd
}

// newCacheCmd creates the cache command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Response cache commands"}
	cmd.AddCommand(NewCacheStatsCmd(), NewCacheClearCmd(), NewCachePruneCmd())
	return cmd
}
