// Package version holds build metadata set by the linker:
//
//	go build -ldflags "-X github.com/dkoosis/ctrf/internal/version.Version=v1.2.0"
package version

import "fmt"

// These variables are populated by the Go linker (LDFLAGS) at build time.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String returns a one-line description of the build.
func String() string {
	return fmt.Sprintf("ctrf %s (commit %s, built %s)", Version, CommitHash, BuildDate)
}
