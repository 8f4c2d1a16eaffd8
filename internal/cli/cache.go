package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nirmanlabs/nirman/internal/config"
)

// newCacheCmd creates the cache command group.
func newCacheCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local plan cache",
	}
	cmd.AddCommand(newCacheClearCmd(configPath))
	return cmd
}

// newCacheClearCmd creates cache clear: delete the file cache
// directory. Redis-backed caches are managed by the Redis instance and
// are not touched.
func newCacheClearCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached plan results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Cache.Backend != config.CacheFile {
				printInfo("cache backend is %q, nothing to clear locally", cfg.Cache.Backend)
				return nil
			}
			if err := os.RemoveAll(cfg.Cache.Dir); err != nil {
				return err
			}
			printSuccess("cleared cache at %s", cfg.Cache.Dir)
			return nil
		},
	}
}
