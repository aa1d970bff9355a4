package middleware

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/wpmirror/wpmirror/internal/globalconfig"
	"github.com/wpmirror/wpmirror/internal/logger"
)

// LoadPersistentConfig injects the persistent config into the command
// context. A missing config file is not an error: the commands fall back to
// flag defaults, so `wpmirror init` stays optional.
func LoadPersistentConfig(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	cfg, err := globalconfig.LoadPersistentConfig()
	if err != nil {
		logger.Debug("no persistent config: %v", err)
		cfg = &globalconfig.PersistentConfig{DownloadDir: "."}
	}

	ctx := context.WithValue(cmd.Context(), CtxKeyPConfig, cfg)
	cmd.SetContext(ctx)

	return next(cmd, args)
}
