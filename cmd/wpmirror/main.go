package main

import (
	"os"

	cmd "github.com/wpmirror/wpmirror/internal"
	"github.com/wpmirror/wpmirror/internal/logger"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logger.LogError(err.Error())
		os.Exit(1)
	}
}
