package internal

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/wpmirror/wpmirror/internal/download"
	"github.com/wpmirror/wpmirror/internal/globalconfig"
	"github.com/wpmirror/wpmirror/internal/logger"
	"github.com/wpmirror/wpmirror/internal/registry"
)

func NewDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download and extract matching plugins",
		Long: `Enumerates the plugin registry (or reads the cache), writes the filtered
set to plugins_cache.json, then downloads and extracts each plugin into
<download-dir>/plugins/<slug>. Individual plugin failures are reported and do
not stop the batch.

Examples:
    wpmirror download --min-installs 500000
    wpmirror download --max-pages 3 --use-cache
    wpmirror download --dry-run      # enumerate and cache only`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			criteria, err := criteriaFromFlags(cmd)
			if err != nil {
				return err
			}
			downloadDir, err := resolveDownloadDir(cmd)
			if err != nil {
				return err
			}

			useCache, _ := cmd.Flags().GetBool("use-cache")
			maxPages, _ := cmd.Flags().GetInt("max-pages")
			concurrency, _ := cmd.Flags().GetInt("concurrency")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			if err := os.MkdirAll(filepath.Join(downloadDir, "plugins"), 0o755); err != nil {
				return err
			}

			plugins, err := collectPlugins(cmd, downloadDir, criteria, useCache, maxPages, concurrency)
			if err != nil {
				return err
			}

			if len(plugins) == 0 {
				logger.Warn("no plugins matched the criteria")
				return nil
			}

			if dryRun {
				logger.Info("dry run: %d plugins would be downloaded", len(plugins))
				return nil
			}

			mgr := download.New(registry.New("", nil), downloadDir, criteria)
			mgr.ProcessAll(cmd.Context(), plugins)
			return nil
		},
	}

	cmd.Flags().String("download-dir", ".", "Directory to mirror plugins into")
	cmd.Flags().Int("min-installs", 0, "Minimum active install count")
	cmd.Flags().Int("max-installs", 0, "Maximum active install count (unbounded when unset)")
	cmd.Flags().Int("max-pages", 0, "Maximum registry pages to scan (0 = all)")
	cmd.Flags().Int("concurrency", globalconfig.DefaultConcurrency, "Concurrent page fetches")
	cmd.Flags().Bool("use-cache", false, "Reuse plugins_cache.json instead of re-querying the registry")
	cmd.Flags().Bool("dry-run", false, "Enumerate and write the cache without downloading")

	return cmd
}
