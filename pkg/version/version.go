// Package version provides the refpin build version.
package version

// Version is set at build time via -ldflags.
var Version = "dev"

// GetVersion returns the current version of refpin.
func GetVersion() string {
	return Version
}
