package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/holocron/internal/cache"
	"github.com/rshade/holocron/internal/config"
)

// NewCacheStatsCmd creates the cache stats command.
func NewCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache location, size and entry counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			store, err := openCacheStore(cfg)
			if err != nil {
				return err
			}
			stats, err := store.Stats()
			if err != nil {
				return err
			}

			enabled := "enabled"
			if !cfg.Cache.Enabled {
				enabled = "disabled"
			}
			cmd.Printf("Directory: %s\n", stats.Directory)
			cmd.Printf("Status:    %s\n", enabled)
			cmd.Printf("TTL:       %s\n", cache.FormatDuration(time.Duration(stats.TTLSeconds)*time.Second))
			cmd.Printf("Entries:   %d (%d expired)\n", stats.Entries, stats.Expired)
			cmd.Printf("Size:      %s\n", formatBytes(stats.SizeBytes))
			if stats.Entries > 0 {
				cmd.Printf("Oldest:    %s\n", cache.FormatDuration(stats.OldestAge))
				if stats.NextExpiry > 0 {
					cmd.Printf("Next expiry in %s\n", cache.FormatDuration(stats.NextExpiry))
				}
			}
			return nil
		},
	}
}

// NewCacheClearCmd creates the cache clear command.
func NewCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCacheStore(config.GetGlobalConfig())
			if err != nil {
				return err
			}
			n, err := store.Clear()
			if err != nil {
				return err
			}
			logger.Info().Int("removed", n).Str("directory", store.Directory()).Msg("cache cleared")
			cmd.Printf("Removed %d cached responses\n", n)
			return nil
		},
	}
}

// NewCachePruneCmd creates the cache prune command.
func NewCachePruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired cached responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCacheStore(config.GetGlobalConfig())
			if err != nil {
				return err
			}
			n, err := store.CleanupExpired()
			if err != nil {
				return err
			}
			cmd.Printf("Removed %d expired responses\n", n)
			return nil
		},
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
