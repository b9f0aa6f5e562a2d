package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/crawlviz/internal/config"
	"github.com/matzehuels/crawlviz/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local result cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePruneCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// localCacheDir returns the file cache directory from the config, or the
// XDG default.
func (c *CLI) localCacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return "", fmt.Errorf("get cache dir: %w", err)
	}
	return dir, nil
}

// cacheStages are the key namespaces that can be cleared on their own.
var cacheStages = []string{"graph", "layout", "artifact"}

// openLocalCache opens the file cache, or returns nil when there is nothing
// to clean up.
func (c *CLI) openLocalCache() (*cache.FileCache, error) {
	if c.Config.Cache.Backend != config.CacheFile {
		c.printWarning("Cache backend is %q; only the file cache can be managed here", c.Config.Cache.Backend)
		return nil, nil
	}
	dir, err := c.localCacheDir()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		c.printInfo("Cache is empty")
		return nil, nil
	}
	return cache.NewFileCache(dir)
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var stage string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached graphs, layouts and renderings",
		Long: `Remove cached entries. With --stage only one kind of entry is removed;
--stage graph makes the next run fetch every crawl graph again while
keeping layouts and renderings of unchanged graphs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if stage != "" {
				if !slices.Contains(cacheStages, stage) {
					return fmt.Errorf("unknown cache stage %q (want %s)", stage, strings.Join(cacheStages, ", "))
				}
				prefix = c.Config.Cache.Prefix + stage + ":"
			}

			fc, err := c.openLocalCache()
			if err != nil || fc == nil {
				return err
			}
			count, err := fc.ClearPrefix(prefix)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			c.printSuccess("Cleared %d cached entries", count)
			c.printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}

	cmd.Flags().StringVar(&stage, "stage", "", "only clear one stage: "+strings.Join(cacheStages, ", "))
	_ = cmd.RegisterFlagCompletionFunc("stage", cobra.FixedCompletions(cacheStages, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

// cachePruneCommand creates the "cache prune" subcommand.
func (c *CLI) cachePruneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.openLocalCache()
			if err != nil || fc == nil {
				return err
			}
			count, err := fc.Prune()
			if err != nil {
				return fmt.Errorf("prune cache: %w", err)
			}
			c.printSuccess("Pruned %d expired entries", count)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.localCacheDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, dir)
			return nil
		},
	}
}
