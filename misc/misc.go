// Package misc keeps build identity helpers used across the program.
package misc

import "runtime/debug"

const appName = "rbg"

// GetAppName returns the short program name used for temporary files,
// log prefixes and the CLI binary.
func GetAppName() string {
	return appName
}

// GetVersion returns the module version embedded by the Go toolchain.
func GetVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}

// GetGitHash returns the vcs revision embedded by the Go toolchain.
func GetGitHash() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
