package cache

import (
	"github.com/wpmirror/wpmirror/internal/errs"
	"github.com/wpmirror/wpmirror/internal/models"
	"github.com/wpmirror/wpmirror/internal/utils"
)

// Save writes the full filtered plugin set to path as indented UTF-8 JSON,
// replacing whatever was there. The cache has no merge semantics: each
// successful enumeration overwrites it wholesale.
func Save(path string, plugins []models.Plugin) error {
	if plugins == nil {
		plugins = []models.Plugin{}
	}
	if err := utils.CreateFile(path, plugins, utils.FileTypeJSON, 0o644); err != nil {
		return &errs.CacheError{Path: path, Err: err}
	}
	return nil
}

// Load reads a previously saved plugin set. Missing or corrupt files come
// back as *errs.CacheError so the caller can fall back to re-enumerating.
func Load(path string) ([]models.Plugin, error) {
	var plugins []models.Plugin
	if err := utils.FileReader(path, utils.FileTypeJSON, &plugins); err != nil {
		return nil, &errs.CacheError{Path: path, Err: err}
	}
	return plugins, nil
}
