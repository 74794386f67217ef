// Package version exposes build information set at link time.
package version

import (
	"fmt"
	"runtime"
)

// Set with -ldflags "-X github.com/rshade/planetprint/pkg/version.version=...".
//
//nolint:gochecknoglobals // Overridden by the linker.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the release version, "dev" for local builds.
func GetVersion() string {
	return version
}

// Info returns a one-line build description.
func Info() string {
	return fmt.Sprintf("planetprint %s (commit %s, built %s, %s/%s)",
		version, gitCommit, buildDate, runtime.GOOS, runtime.GOARCH)
}
