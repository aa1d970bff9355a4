package pathsafe

import (
	"runtime"
	"strings"
)

// Windows rejects paths past ~260 characters unless they carry the
// extended-length prefix; the switch happens a little early to leave room
// for file names appended later.
const longPathThreshold = 240

const extendedPrefix = `\\?\`

// Normalizer converts a resolved absolute path into a form every filesystem
// call on the target platform will accept. The default is chosen per GOOS;
// tests inject their own.
type Normalizer func(path string) string

// ForPlatform returns the normalizer for the given GOOS.
func ForPlatform(goos string) Normalizer {
	if goos == "windows" {
		return windowsLongPath
	}
	return identity
}

// Default is the normalizer for the running platform.
func Default() Normalizer {
	return ForPlatform(runtime.GOOS)
}

func identity(path string) string { return path }

func windowsLongPath(path string) string {
	if len(path) < longPathThreshold || strings.HasPrefix(path, extendedPrefix) {
		return path
	}
	return extendedPrefix + path
}
