package globalconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// RegistryBaseURL is the WordPress.org plugin API root.
	RegistryBaseURL = "https://api.wordpress.org"

	// DefaultPerPage is the query page size; the registry caps it at 250 but
	// 100 keeps response bodies reasonable.
	DefaultPerPage = 100

	// DefaultConcurrency bounds the number of in-flight page fetches.
	DefaultConcurrency = 10

	// HTTPTimeout applies to every registry request.
	HTTPTimeout = 60 * time.Second

	// MaxArchiveBytes caps a single plugin download (zip bomb guard).
	MaxArchiveBytes = 512 << 20

	// CacheFileName is the filtered-plugin cache inside the download dir.
	CacheFileName = "plugins_cache.json"
)

type PersistentConfig struct {
	DownloadDir string `yaml:"download_dir"`
}

const (
	configDir  = ".config/wpmirror"
	configFile = "config.yml"
)

func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

func LoadPersistentConfig() (*PersistentConfig, error) {
	fullConfigDir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}
	configPath := filepath.Join(fullConfigDir, configFile)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("no configuration found. Please run 'wpmirror init' first")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg PersistentConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
	}

	if cfg.DownloadDir == "" {
		cfg.DownloadDir = "."
	}
	return &cfg, nil
}

func (c *PersistentConfig) Save() error {
	fullConfigDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(fullConfigDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(filepath.Join(fullConfigDir, configFile), data, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
