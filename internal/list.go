package internal

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/wpmirror/wpmirror/internal/globalconfig"
	"github.com/wpmirror/wpmirror/internal/logger"
)

func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plugins matching the filter criteria",
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

			plugins, err := collectPlugins(cmd, downloadDir, criteria, useCache, maxPages, concurrency)
			if err != nil {
				return err
			}

			if len(plugins) == 0 {
				logger.Warn("no plugins matched the criteria")
				return nil
			}

			table := logger.CreateTable([]string{"Slug", "Version", "Installs", "Last updated"})
			for _, p := range plugins {
				if err := table.Append([]string{
					p.Slug,
					p.Version,
					strconv.Itoa(p.ActiveInstalls),
					p.LastUpdated,
				}); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}

	cmd.Flags().String("download-dir", ".", "Directory holding plugins_cache.json")
	cmd.Flags().Int("min-installs", 0, "Minimum active install count")
	cmd.Flags().Int("max-installs", 0, "Maximum active install count (unbounded when unset)")
	cmd.Flags().Int("max-pages", 0, "Maximum registry pages to scan (0 = all)")
	cmd.Flags().Int("concurrency", globalconfig.DefaultConcurrency, "Concurrent page fetches")
	cmd.Flags().Bool("use-cache", false, "Reuse plugins_cache.json instead of re-querying the registry")

	return cmd
}
