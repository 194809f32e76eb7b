package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"

	"github.com/fedwiki/wikikit/pkg/errors"
)

const (
	// EnvConfigDir overrides the XDG config directory for wikikit
	EnvConfigDir = "WIKIKIT_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"

	// AppDirName is the directory name used under XDG base directories
	AppDirName = "wikikit"

	// SettingsFileName is the user settings file inside the config dir
	SettingsFileName = "config.toml"
)

// Platform names the operating system and architecture to provision for
type Platform struct {
	OS   string
	Arch string
}

// CurrentPlatform returns the platform the process runs on
func CurrentPlatform() Platform {
	return Platform{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

// IsWindows reports whether the platform is windows
func (p Platform) IsWindows() bool {
	return p.OS == "windows"
}

func (p Platform) String() string {
	return p.OS + "/" + p.Arch
}

// Environment is the explicit context passed to resolvers and provisioners
type Environment struct {
	Platform Platform
	Home     string
}

// Detect builds an Environment for the running process
func Detect() (Environment, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv(EnvHome)
		if home == "" {
			return Environment{}, errors.Wrap(err, errors.ErrFileAccess, "unable to find home directory")
		}
	}
	return Environment{Platform: CurrentPlatform(), Home: home}, nil
}

// ExpandHome replaces a leading ~ with the environment's home directory.
// "~user" forms are returned unchanged.
func (e Environment) ExpandHome(path string) string {
	if path == "" || path[0] != '~' || e.Home == "" {
		return path
	}
	if len(path) == 1 {
		return e.Home
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(e.Home, path[2:])
	}
	return path
}

// Resolve expands home and makes path absolute
func (e Environment) Resolve(path string) (string, error) {
	abs, err := filepath.Abs(e.ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", path)
	}
	return abs, nil
}

// ConfigDir returns the wikikit settings directory
func (e Environment) ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return e.ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// SettingsPath returns the default user settings file
func (e Environment) SettingsPath() string {
	return filepath.Join(e.ConfigDir(), SettingsFileName)
}
