package version

import (
	"fmt"

	goversion "go.hein.dev/go-version"
)

// These variables are populated at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns a human-friendly version string that surfaces build metadata.
func Info() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}

// Output renders build metadata as json or yaml, or just the version number
// when short is set.
func Output(short bool, format string) string {
	return goversion.FuncWithOutput(short, Version, Commit, Date, format)
}
