package build

import "runtime"

// Overridden at link time, e.g.
// -ldflags "-X github.com/jacksonrnewhouse/arroyo/internal/arroyoctl/build.ReleaseVersion=v0.1.0"
var (
	ReleaseVersion = "UNKNOWN_RELEASE"
	GitCommit      = "UNKNOWN_GITCOMMIT"
	BuildTime      = "UNKNOWN_BUILDTIME"
	GoVersion      = runtime.Version()
)
