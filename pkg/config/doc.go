// Package config loads wikikit tool settings.
//
// Settings are layered with koanf, later layers winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user settings file, $XDG_CONFIG_HOME/wikikit/config.toml
//  3. WIKIKIT_* environment variables (WIKIKIT_RUNTIME_VERSION -> runtime.version)
//  4. explicit overrides, usually command-line flags
//
// Settings describe how to provision (runtime version, archive host, start
// flags). The per-install document lives in pkg/install.
package config
