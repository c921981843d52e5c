package runner

import (
	"os"
	"regexp"
)

// sudoToken matches sudo in command position: at the start of the line or
// right after a shell separator. The separator is kept.
var sudoToken = regexp.MustCompile(`(^|&&|\|\||[;|])(\s*)sudo\s+`)

// StripElevation removes redundant sudo prefixes from a shell command line.
// Applying it twice yields the same result as applying it once.
func StripElevation(command string) string {
	for {
		stripped := sudoToken.ReplaceAllString(command, "$1$2")
		if stripped == command {
			return stripped
		}
		command = stripped
	}
}

// processElevated reports whether the current process runs with root privileges.
// os.Geteuid returns -1 on Windows, which is never elevated here.
func processElevated() bool {
	return os.Geteuid() == 0
}
