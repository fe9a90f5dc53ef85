package version

import "fmt"

// Version is set at build time:
// go build -ldflags "-X github.com/newstack-cloud/celerity-docs/internal/version.Version=v0.3.0".
var Version = "unknown"

// Build metadata, also injected via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by the CLI.
func String() string {
	return fmt.Sprintf("celerity-docs %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
