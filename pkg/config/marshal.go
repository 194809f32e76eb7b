package config

import (
	"github.com/pelletier/go-toml/v2"
)

type settingsDoc struct {
	Runtime struct {
		Version string `toml:"version"`
		BaseURL string `toml:"base_url"`
		URL     string `toml:"url"`
	} `toml:"runtime"`
	Archive struct {
		Host string `toml:"host"`
	} `toml:"archive"`
	Fetch struct {
		Timeout string `toml:"timeout"`
	} `toml:"fetch"`
	Run struct {
		Flags []string `toml:"flags"`
	} `toml:"run"`
	Defaults struct {
		Dir     string   `toml:"dir"`
		Wiki    string   `toml:"wiki"`
		Server  string   `toml:"server"`
		Client  string   `toml:"client"`
		Plugins []string `toml:"plugins"`
	} `toml:"defaults"`
}

// Marshal renders s in the settings file format
func Marshal(s *Settings) ([]byte, error) {
	var doc settingsDoc
	doc.Runtime.Version = s.Runtime.Version
	doc.Runtime.BaseURL = s.Runtime.BaseURL
	doc.Runtime.URL = s.Runtime.URL
	doc.Archive.Host = s.Archive.Host
	doc.Fetch.Timeout = s.Fetch.Timeout.String()
	doc.Run.Flags = s.Run.Flags
	doc.Defaults.Dir = s.Defaults.Dir
	doc.Defaults.Wiki = s.Defaults.Wiki
	doc.Defaults.Server = s.Defaults.Server
	doc.Defaults.Client = s.Defaults.Client
	doc.Defaults.Plugins = s.Defaults.Plugins
	if doc.Defaults.Plugins == nil {
		doc.Defaults.Plugins = []string{}
	}
	return toml.Marshal(doc)
}
