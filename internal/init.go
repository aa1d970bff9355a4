package internal

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/wpmirror/wpmirror/internal/globalconfig"
	"github.com/wpmirror/wpmirror/internal/logger"
)

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [download-dir]",
		Short: "Save a default download directory in ~/.config/wpmirror",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			abs, err := filepath.Abs(dir)
			if err != nil {
				return err
			}

			cfg := globalconfig.PersistentConfig{DownloadDir: abs}
			if err := cfg.Save(); err != nil {
				return err
			}

			logger.Success("Default download directory set to %s", abs)
			return nil
		},
	}

	return cmd
}
