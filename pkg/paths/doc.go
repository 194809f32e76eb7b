// Package paths carries the explicit environment the provisioning code runs
// against: the target platform, the resolved home directory and the XDG
// directories used for settings and logs.
//
// Nothing below pkg/paths reads runtime.GOOS or the user's home directory on
// its own. The CLI builds one Environment with Detect and hands it down, and
// tests construct Environment values for platforms they are not running on:
//
//	env := paths.Environment{
//	    Platform: paths.Platform{OS: "windows", Arch: "amd64"},
//	    Home:     t.TempDir(),
//	}
//	dir := env.ExpandHome("~/wiki")
//
// # Environment Variables
//
//   - WIKIKIT_CONFIG_DIR: overrides $XDG_CONFIG_HOME/wikikit
//   - HOME: fallback when the OS cannot report a home directory
package paths
