package logger

import (
	"io"
	"os"
)

var (
	FlagVerboseCount int  // -V, -VV
	FlagQuiet        bool // --quiet/-q
	FlagJSON         bool // for CI
)

func ConfigureLoggerFromFlags() {
	var out io.Writer = os.Stdout
	var level string
	switch {
	case FlagQuiet:
		level = "error"
	default:
		switch FlagVerboseCount {
		case 0:
			level = "info"
		default:
			level = "debug"
		}
	}

	Configure(Options{
		Level: level,
		JSON:  FlagJSON,
		Out:   out,
	})
}
