// Package cli implements the holocron command line.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/holocron/internal/cache"
	"github.com/rshade/holocron/internal/config"
	"github.com/rshade/holocron/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the holocron CLI.
// It loads configuration, applies the persistent flag overrides, sets up logging and
// registers the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "holocron",
		Short:         "Star Wars character pages from SWAPI",
		Long:          "holocron fetches a character from the Star Wars API together with its films, starships and vehicles, and shows the result in the terminal, as JSON, or over HTTP.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "YAML file whose sections override the config file")
	cmd.PersistentFlags().
		String("cache-ttl", "", "cache TTL as seconds or a duration such as 30m (overrides config file and env var)")
	cmd.PersistentFlags().Bool("no-cache", false, "bypass the response cache")
	cmd.PersistentFlags().String("base-url", "", "SWAPI base URL (overrides config file and env var)")

	cmd.AddCommand(
		NewCharacterCmd(),
		NewBrowseCmd(),
		NewServeCmd(),
		newCacheCmd(),
		newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Show Luke Skywalker
  holocron character 1

  # Same page as JSON
  holocron character 1 --output json

  # Browse characters interactively (n/p to move, q to quit)
  holocron browse 1

  # Serve the character pages on :8080
  holocron serve

  # Skip the on-disk cache for one run
  holocron character 4 --no-cache

  # Create the default configuration file
  holocron config init`

// loadConfig resolves defaults < config file < env < --config overlay < flags and
// publishes the result as the global config. Commands under `config` run against
// defaults when the file is unreadable, so a broken file can be inspected or replaced.
func loadConfig(cmd *cobra.Command) error {
	lenient := isConfigCmd(cmd)

	cfg, err := config.LoadDefault()
	if err != nil {
		if !lenient {
			return err
		}
		cmd.PrintErrf("Warning: %v; using defaults\n", err)
		cfg = config.New()
		_ = cfg.ApplyEnv()
	}

	if overlay, _ := cmd.Flags().GetString("config"); overlay != "" {
		if err = config.ShallowMergeYAML(cfg, overlay); err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("base-url") {
		cfg.API.BaseURL, _ = cmd.Flags().GetString("base-url")
	}
	if ttl, _ := cmd.Flags().GetString("cache-ttl"); ttl != "" {
		seconds, parseErr := cache.ParseTTL(ttl)
		if parseErr != nil {
			return fmt.Errorf("--cache-ttl: %w", parseErr)
		}
		cfg.Cache.TTLSeconds = seconds
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}

	if !lenient {
		if err = cfg.Validate(); err != nil {
			return err
		}
	}
	config.SetGlobalConfig(cfg)
	return nil
}

// isConfigCmd reports whether cmd belongs to the config command group.
func isConfigCmd(cmd *cobra.Command) bool {
	for c := cmd; c != nil && c.HasParent(); c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}

// newCacheCmd creates the cache command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Response cache maintenance"}
	cmd.AddCommand(NewCacheStatsCmd(), NewCacheClearCmd(), NewCachePruneCmd())
	return cmd
}
