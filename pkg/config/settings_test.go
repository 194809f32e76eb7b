package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedwiki/wikikit/pkg/errors"
)

func TestDefault(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "12.13.0", s.Runtime.Version)
	assert.Equal(t, "https://nodejs.org/dist", s.Runtime.BaseURL)
	assert.Empty(t, s.Runtime.URL)
	assert.Equal(t, "github.com", s.Archive.Host)
	assert.Equal(t, 10*time.Minute, s.Fetch.Timeout)
	assert.Equal(t, []string{"--security_type=friends", "--session_duration=10"}, s.Run.Flags)
	assert.Equal(t, "~/wiki", s.Defaults.Dir)
	assert.Equal(t, "fedwiki/wiki", s.Defaults.Wiki)
	assert.Equal(t, "fedwiki/wiki-server", s.Defaults.Server)
	assert.Equal(t, "fedwiki/wiki-client", s.Defaults.Client)
	assert.Empty(t, s.Defaults.Plugins)
}

func TestLoad_UserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[runtime]
version = "14.0.0"

[fetch]
timeout = "30s"

[defaults]
plugins = ["fedwiki/wiki-plugin-roster"]
`), 0644))

	s, err := Load(LoadOptions{Path: path})
	require.NoError(t, err)

	assert.Equal(t, "14.0.0", s.Runtime.Version)
	assert.Equal(t, "https://nodejs.org/dist", s.Runtime.BaseURL, "untouched keys keep defaults")
	assert.Equal(t, 30*time.Second, s.Fetch.Timeout)
	assert.Equal(t, []string{"fedwiki/wiki-plugin-roster"}, s.Defaults.Plugins)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
archive:
  host: git.example.org
run:
  flags: ["--port=3001"]
`), 0644))

	s, err := Load(LoadOptions{Path: path})
	require.NoError(t, err)

	assert.Equal(t, "git.example.org", s.Archive.Host)
	assert.Equal(t, []string{"--port=3001"}, s.Run.Flags)
	assert.Equal(t, "12.13.0", s.Runtime.Version)
}

func TestLoad_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.toml")

	_, err := Load(LoadOptions{Path: missing})
	require.NoError(t, err)

	_, err = Load(LoadOptions{Path: missing, Required: true})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[runtime\nversion ="), 0644))

	_, err := Load(LoadOptions{Path: path})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestLoad_EnvAndOverrides(t *testing.T) {
	t.Setenv("WIKIKIT_RUNTIME_BASE_URL", "http://mirror.local/node")
	t.Setenv("WIKIKIT_RUN_FLAGS", "--security_type=friends,--port=3001")
	t.Setenv("WIKIKIT_ARCHIVE_HOST", "git.example.org")

	s, err := Load(LoadOptions{Overrides: map[string]interface{}{
		"archive.host": "http://127.0.0.1:9999",
	}})
	require.NoError(t, err)

	assert.Equal(t, "http://mirror.local/node", s.Runtime.BaseURL)
	assert.Equal(t, []string{"--security_type=friends", "--port=3001"}, s.Run.Flags)
	assert.Equal(t, "http://127.0.0.1:9999", s.Archive.Host, "overrides beat environment")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "runtime.base_url", envKey("WIKIKIT_RUNTIME_BASE_URL"))
	assert.Equal(t, "fetch.timeout", envKey("WIKIKIT_FETCH_TIMEOUT"))
}

func TestMarshal(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	out, err := Marshal(s)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "[runtime]")
	assert.Contains(t, text, "version = '12.13.0'")
	assert.Contains(t, text, "timeout = '10m0s'")

	// rendered settings load back to the same values
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, out, 0644))
	back, err := Load(LoadOptions{Path: path, Required: true})
	require.NoError(t, err)
	assert.Equal(t, s, back)
}
