// Package printer holds the color formatters behind the logger's console
// output. Colors degrade to plain text automatically when stdout is not a
// terminal, so cached CI logs stay readable.
package printer

import (
	"github.com/fatih/color"
)

// ColorPrinter formats one message per severity; each field is a Sprintf
// variant that returns the colored string instead of printing it.
type ColorPrinter struct {
	Success func(format string, a ...interface{}) string
	Error   func(format string, a ...interface{}) string
	Warning func(format string, a ...interface{}) string
	Info    func(format string, a ...interface{}) string
	Debug   func(format string, a ...interface{}) string
}

func NewColorPrinter() *ColorPrinter {
	return &ColorPrinter{
		Success: color.New(color.FgGreen).SprintfFunc(),
		Error:   color.New(color.FgRed).SprintfFunc(),
		Warning: color.New(color.FgYellow).SprintfFunc(),
		Info:    color.New(color.FgBlue).SprintfFunc(),
		Debug:   color.New(color.FgCyan).SprintfFunc(),
	}
}
