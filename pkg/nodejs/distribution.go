package nodejs

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fedwiki/wikikit/pkg/config"
	"github.com/fedwiki/wikikit/pkg/errors"
	"github.com/fedwiki/wikikit/pkg/paths"
)

// DistributionURL returns the runtime archive URL for platform. An explicit
// settings URL wins over the computed one and is the only way to provision
// platforms without a known distribution.
func DistributionURL(platform paths.Platform, rs config.RuntimeSettings) (string, error) {
	if rs.URL != "" {
		return rs.URL, nil
	}
	if rs.Version == "" {
		return "", errors.New(errors.ErrInvalidInput, "runtime version is not set")
	}

	version := strings.TrimPrefix(rs.Version, "v")
	base := strings.TrimSuffix(rs.BaseURL, "/")

	var name string
	switch platform.OS {
	case "windows":
		name = fmt.Sprintf("node-v%s-win-x64.zip", version)
	case "linux":
		name = fmt.Sprintf("node-v%s-linux-%s.tar.xz", version, linuxArch(platform.Arch))
	default:
		return "", errors.Newf(errors.ErrUnsupportedPlatform, "no Node.js distribution for %s; set runtime.url", platform).
			WithDetail("platform", platform.String())
	}
	return fmt.Sprintf("%s/v%s/%s", base, version, name), nil
}

func linuxArch(arch string) string {
	if arch == "arm64" {
		return "arm64"
	}
	return "x64"
}

// ArchiveName is the local file name for a distribution URL
func ArchiveName(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	return path.Base(url)
}

// BinDir is the directory holding the node and npm executables
func BinDir(platform paths.Platform, runtimePath string) string {
	if platform.IsWindows() {
		return runtimePath
	}
	return filepath.Join(runtimePath, "bin")
}

// PackageManager returns the npm executable inside runtimePath
func PackageManager(platform paths.Platform, runtimePath string) string {
	if platform.IsWindows() {
		return filepath.Join(runtimePath, "npm.cmd")
	}
	return filepath.Join(runtimePath, "bin", "npm")
}

// Env returns the environment additions that put the runtime first on PATH.
// npm resolves node through PATH, so every package manager call needs this.
func Env(platform paths.Platform, runtimePath string) []string {
	sep := string(os.PathListSeparator)
	if platform.IsWindows() {
		sep = ";"
	}
	p := BinDir(platform, runtimePath)
	if cur := os.Getenv("PATH"); cur != "" {
		p += sep + cur
	}
	return []string{"PATH=" + p}
}
