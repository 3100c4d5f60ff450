package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/pokedex/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Loads the configuration exactly as other commands do and reports every problem.

This includes:
- YAML syntax of the config file
- Schema version compatibility
- POKEDEX_* environment variables and .env values that do not parse
- Value ranges (page size, debounce, timeouts, cache TTL and size)
- Logging level and format names`,
		Example: `  # Validate current configuration
  pokedex config validate

  # Validate and show the effective values
  pokedex config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	path, err := configPathFromContext(cmd.Context())
	if err != nil {
		return err
	}

	cfg, err := config.Load(config.LoadOptions{Path: path})
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")
	if verbose {
		printVerboseDetails(cmd, cfg, path)
	}
	return nil
}

// printVerboseDetails prints the effective configuration.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config, path string) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", path)
	cmd.Printf("  Schema version: %s\n", cfg.SchemaVersion)
	cmd.Printf("  API: %s (timeout %s)\n", cfg.API.BaseURL, cfg.API.Timeout)
	cmd.Printf("  Page size: %d\n", cfg.Browser.PageSize)
	cmd.Printf("  Search debounce: %s\n", cfg.Browser.Debounce)
	if cfg.Cache.Enabled {
		cmd.Printf("  Cache: %s (ttl %ds, max %d MB)\n", cfg.Cache.Directory, cfg.Cache.TTLSeconds, cfg.Cache.MaxSizeMB)
	} else {
		cmd.Printf("  Cache: disabled\n")
	}
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
}
