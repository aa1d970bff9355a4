package internal

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/wpmirror/wpmirror/internal/cache"
	"github.com/wpmirror/wpmirror/internal/enumerate"
	"github.com/wpmirror/wpmirror/internal/errs"
	"github.com/wpmirror/wpmirror/internal/filter"
	"github.com/wpmirror/wpmirror/internal/globalconfig"
	"github.com/wpmirror/wpmirror/internal/logger"
	"github.com/wpmirror/wpmirror/internal/middleware"
	"github.com/wpmirror/wpmirror/internal/models"
	"github.com/wpmirror/wpmirror/internal/registry"
	"github.com/wpmirror/wpmirror/internal/utils"
)

// criteriaFromFlags builds the filter criteria shared by download and list.
// --max-installs is unbounded unless the flag was actually set.
func criteriaFromFlags(cmd *cobra.Command) (filter.Criteria, error) {
	minInstalls, err := cmd.Flags().GetInt("min-installs")
	if err != nil {
		return filter.Criteria{}, err
	}

	criteria := filter.Criteria{MinInstalls: minInstalls}

	if cmd.Flags().Changed("max-installs") {
		maxInstalls, err := cmd.Flags().GetInt("max-installs")
		if err != nil {
			return filter.Criteria{}, err
		}
		criteria.MaxInstalls = &maxInstalls
	}

	return criteria, nil
}

// resolveDownloadDir prefers the flag, then the persistent config default.
func resolveDownloadDir(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("download-dir") {
		return cmd.Flags().GetString("download-dir")
	}

	cfg, err := middleware.Get[*globalconfig.PersistentConfig](cmd, middleware.CtxKeyPConfig)
	if err != nil {
		return cmd.Flags().GetString("download-dir")
	}
	return cfg.DownloadDir, nil
}

// collectPlugins returns the filtered plugin set, either from the cache file
// or by enumerating the registry. A fresh enumeration always rewrites the
// cache; a broken cache file falls back to enumeration with a warning.
func collectPlugins(cmd *cobra.Command, downloadDir string, criteria filter.Criteria, useCache bool, maxPages, concurrency int) ([]models.Plugin, error) {
	cachePath := filepath.Join(downloadDir, globalconfig.CacheFileName)

	if useCache {
		if ok, _ := utils.FileExists(cachePath); ok {
			plugins, err := cache.Load(cachePath)
			if err == nil {
				logger.Info("loaded %d plugins from cache %s", len(plugins), cachePath)
				return plugins, nil
			}
			var cerr *errs.CacheError
			if errors.As(err, &cerr) {
				logger.Warn("cache unusable, re-enumerating: %v", err)
			} else {
				return nil, err
			}
		}
	}

	enum := enumerate.New(registry.New("", nil), criteria)
	enum.MaxPages = maxPages
	if concurrency > 0 {
		enum.Concurrency = concurrency
	}
	enum.OnPageDone = func(done, total int) {
		logger.Debug("filtered page %d/%d", done, total)
	}

	plugins, err := enum.Run(cmd.Context())
	if err != nil {
		return nil, err
	}
	logger.Info("enumeration finished: %d plugins matched", len(plugins))

	if err := cache.Save(cachePath, plugins); err != nil {
		logger.Warn("could not write cache: %v", err)
	} else {
		logger.Debug("wrote cache to %s", cachePath)
	}

	return plugins, nil
}
