package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/holocron/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates ~/.holocron/config.yaml together with HOLOCRON_* environment overrides.

This includes:
- YAML syntax
- API base URL, timeout and retry bounds
- Cache TTL range (when caching is enabled)
- Server address and logging level/format`,
		Example: `  # Validate current configuration
  holocron config validate

  # Validate and show the effective values
  holocron config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate re-reads the config file so flag overrides do not mask problems in it.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}
	return nil
}

func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.Path())
	cmd.Printf("  API base URL: %s\n", cfg.API.BaseURL)
	cmd.Printf("  API timeout: %s (retries: %d)\n", cfg.API.Timeout, cfg.API.RetryMax)
	cmd.Printf("  Max concurrency: %d\n", cfg.Fetch.MaxConcurrency)
	if cfg.Cache.Enabled {
		cmd.Printf("  Cache: %s (ttl %ds)\n", cfg.Cache.Directory, cfg.Cache.TTLSeconds)
	} else {
		cmd.Println("  Cache: disabled")
	}
	cmd.Printf("  Server address: %s\n", cfg.Server.Addr)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}
}
