package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/fedwiki/wikikit/pkg/errors"
)

// EnvPrefix prefixes environment overrides
const EnvPrefix = "WIKIKIT_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// Settings is the effective tool configuration
type Settings struct {
	Runtime  RuntimeSettings  `koanf:"runtime"`
	Archive  ArchiveSettings  `koanf:"archive"`
	Fetch    FetchSettings    `koanf:"fetch"`
	Run      RunSettings      `koanf:"run"`
	Defaults DefaultsSettings `koanf:"defaults"`
}

// RuntimeSettings selects the Node.js distribution
type RuntimeSettings struct {
	Version string `koanf:"version"`
	BaseURL string `koanf:"base_url"`
	URL     string `koanf:"url"`
}

// ArchiveSettings configures where branch archives are fetched from
type ArchiveSettings struct {
	Host string `koanf:"host"`
}

// FetchSettings configures downloads
type FetchSettings struct {
	Timeout time.Duration `koanf:"timeout"`
}

// RunSettings configures the wiki start command
type RunSettings struct {
	Flags []string `koanf:"flags"`
}

// DefaultsSettings seeds a fresh install
type DefaultsSettings struct {
	Dir     string   `koanf:"dir"`
	Wiki    string   `koanf:"wiki"`
	Server  string   `koanf:"server"`
	Client  string   `koanf:"client"`
	Plugins []string `koanf:"plugins"`
}

// LoadOptions controls which layers Load reads
type LoadOptions struct {
	// Path is the user settings file. Missing files are ignored unless Required is set.
	Path     string
	Required bool
	// Overrides are applied last, keyed by dotted path ("runtime.version").
	Overrides map[string]interface{}
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Default returns the embedded settings
func Default() (*Settings, error) {
	return Load(LoadOptions{})
}

// Load builds Settings from all layers
func Load(opts LoadOptions) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load default settings")
	}

	if opts.Path != "" {
		if _, err := os.Stat(opts.Path); err == nil {
			if err := k.Load(file.Provider(opts.Path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load settings from %s", opts.Path).
					WithDetail("path", opts.Path)
			}
		} else if opts.Required {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "settings file %s not found", opts.Path).
				WithDetail("path", opts.Path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment settings")
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply setting overrides")
		}
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode settings")
	}

	return &s, nil
}

// parserFor picks the settings parser from the file extension. TOML is the
// default.
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	}
	return toml.Parser()
}

// envKey maps WIKIKIT_RUNTIME_BASE_URL to runtime.base_url
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}
