package internal

import (
	"github.com/spf13/cobra"
	"github.com/wpmirror/wpmirror/internal/middleware"
)

var defaultCommands = []middleware.CommandFactory{
	NewInitCmd,
	middleware.UseMiddlewareChain(middleware.LoadPersistentConfig)(NewDownloadCmd),
	middleware.UseMiddlewareChain(middleware.LoadPersistentConfig)(NewListCmd),
}

func RegisterSubCommands(cmd *cobra.Command) {
	for _, factory := range defaultCommands {
		cmd.AddCommand(factory())
	}
}
