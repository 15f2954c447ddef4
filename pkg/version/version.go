// Package version exposes build metadata injected at link time.
package version

// These are set with -ldflags "-X github.com/rshade/holocron/pkg/version.version=...".
//
//nolint:gochecknoglobals // Populated by the linker.
var (
	version = "0.1.0-dev"
	commit  = "none"
)

// GetVersion returns the semantic version of the build.
func GetVersion() string {
	return version
}

// GetCommit returns the git commit the binary was built from.
func GetCommit() string {
	return commit
}

// UserAgent returns the User-Agent string sent to upstream APIs.
func UserAgent() string {
	return "holocron/" + version
}
