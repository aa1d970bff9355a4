package internal

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wpmirror/wpmirror/internal/logger"
)

var (
	Version = "dev"
	Commit  = "unknown"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wpmirror",
		Short: "Mirror WordPress.org plugins locally",
		Long: `wpmirror enumerates the WordPress.org plugin registry, filters plugins by
install count and last-updated recency, and downloads each matching plugin's
zip distribution into a local directory tree.`,
		Example: `wpmirror download --download-dir ./mirror --min-installs 100000 --max-pages 5`,
		Run: func(cmd *cobra.Command, _ []string) {
			versionFlag, _ := cmd.Flags().GetBool("version")
			if versionFlag {
				fmt.Fprintf(cmd.OutOrStdout(), "Version: %s (commit %s)\n", Version, Commit)
				return
			}
			_ = cmd.Help()
		},
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.ConfigureLoggerFromFlags()
		},
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.Flags().BoolP("version", "v", false, "Print version information")
	cmd.PersistentFlags().CountVarP(&logger.FlagVerboseCount, "verbose", "V", "Increase log verbosity (-V debug)")
	cmd.PersistentFlags().BoolVarP(&logger.FlagQuiet, "quiet", "q", false, "Only log errors")
	cmd.PersistentFlags().BoolVar(&logger.FlagJSON, "log-json", false, "Emit JSON logs (CI)")

	RegisterSubCommands(cmd)

	return cmd
}

func Execute() error {
	root := NewRootCmd()

	if err := root.Execute(); err != nil {
		logger.Debug("Failed to execute root command: %v", err)
		return err
	}
	return nil
}
