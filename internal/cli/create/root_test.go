package create

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedwiki/wikikit/pkg/branchspec"
	"github.com/fedwiki/wikikit/pkg/errors"
	"github.com/fedwiki/wikikit/pkg/install"
	"github.com/fedwiki/wikikit/pkg/paths"
	"github.com/fedwiki/wikikit/pkg/testutil"
)

const runtimeRoot = "node-v12.13.0-linux-x64"

type cli struct {
	t        *testing.T
	dir      string
	settings string
	srv      *testutil.ArchiveServer
	runner   *testutil.RecordingRunner
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv(paths.EnvConfigDir, filepath.Join(tmp, "config"))
	t.Setenv("NO_COLOR", "1")

	c := &cli{
		t:      t,
		dir:    filepath.Join(tmp, "wiki"),
		srv:    testutil.NewArchiveServer(t),
		runner: &testutil.RecordingRunner{},
	}
	c.srv.Handle("/v12.13.0/"+runtimeRoot+".tar.xz", testutil.TarXzBytes(t, testutil.RuntimeEntries(runtimeRoot)))
	for _, s := range []string{"fedwiki/wiki", "fedwiki/wiki-server", "fedwiki/wiki-client", "someone/wiki-client:dev"} {
		b := branchspec.MustParse(s)
		c.srv.Handle("/"+b.Owner+"/"+b.Repo+"/archive/"+b.Branch+".zip", testutil.ZipBytes(t, testutil.BundleEntries(b.DirName())))
	}

	c.settings = filepath.Join(tmp, "settings.toml")
	body := "[runtime]\nbase_url = \"" + c.srv.URL + "\"\n\n[archive]\nhost = \"" + c.srv.URL + "\"\n"
	require.NoError(t, os.WriteFile(c.settings, []byte(body), 0644))
	return c
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	root := NewRootCmdWithDeps(Deps{
		Runner:     c.runner,
		Platform:   paths.Platform{OS: "linux", Arch: "amd64"},
		HTTPClient: c.srv.Client(),
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--settings", c.settings))
	err := root.Execute()
	return out.String(), err
}

func TestCreate(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("--dir", c.dir)
	require.NoError(t, err)
	assert.Contains(t, out, MsgPhaseRuntime)
	assert.Contains(t, out, "Wiki ready in "+c.dir+" (4 downloads)")
	assert.FileExists(t, filepath.Join(c.dir, install.DocumentName))
	assert.Len(t, c.runner.Calls(), 5)

	out, err = c.run("--dir", c.dir)
	require.NoError(t, err)
	assert.Contains(t, out, "already holds a wiki")
	assert.Equal(t, 4, c.srv.TotalHits())
}

func TestCreate_BundleFlags(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("--dir", c.dir, "--client", "someone/wiki-client:dev")
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(c.dir, "wiki-client-dev"))

	state, err := install.NewStore(afero.NewOsFs()).Load(c.dir)
	require.NoError(t, err)
	assert.Equal(t, "someone/wiki-client:dev", state.Client.String())

	_, err = c.run("--dir", c.dir, "--update", "--server", "nope")
	assert.True(t, errors.IsErrorCode(err, errors.ErrBranchSpecParse))
}

func TestCreate_FromDocument(t *testing.T) {
	c := newCLI(t)
	require.NoError(t, os.MkdirAll(c.dir, 0755))
	docPath := filepath.Join(filepath.Dir(c.dir), "wiki.yaml")
	require.NoError(t, os.WriteFile(docPath, []byte("dir: "+c.dir+"\nclient: someone/wiki-client:dev\n"), 0644))

	_, err := c.run("--config", docPath)
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(c.dir, "wiki-client-dev"))
	assert.FileExists(t, filepath.Join(c.dir, install.DocumentName))
}

func TestStatus(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("status", "--dir", c.dir)
	require.NoError(t, err)
	assert.Contains(t, out, "holds no completed install")

	_, err = c.run("--dir", c.dir)
	require.NoError(t, err)

	out, err = c.run("status", "--dir", c.dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Runtime: "+filepath.Join(c.dir, runtimeRoot))
	assert.Contains(t, out, "fedwiki/wiki-server")
	assert.Contains(t, out, "done install wiki")
}

func TestRun(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("run", "--dir", c.dir)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotProvisioned))

	_, err = c.run("--dir", c.dir)
	require.NoError(t, err)
	c.runner.Reset()

	_, err = c.run("run", "--dir", c.dir)
	require.NoError(t, err)
	calls := c.runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "start", calls[0].Args[0])
	assert.Equal(t, filepath.Join(c.dir, "wiki-master"), calls[0].Dir)
}

func TestDelete(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("--dir", c.dir)
	require.NoError(t, err)

	out, err := c.run("delete", "runtime", "--dir", c.dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted runtime")
	assert.NoDirExists(t, filepath.Join(c.dir, runtimeRoot))
	assert.DirExists(t, filepath.Join(c.dir, "wiki-master"))

	out, err = c.run("delete", "runtime", "--dir", c.dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to delete")

	_, err = c.run("delete", "plugins", "--dir", c.dir)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = c.run("delete", "all", "--dir", c.dir)
	require.NoError(t, err)
	assert.NoDirExists(t, c.dir)
}

func TestSettings(t *testing.T) {
	c := newCLI(t)

	t.Setenv("WIKIKIT_RUNTIME_VERSION", "14.0.0")

	out, err := c.run("settings")
	require.NoError(t, err)
	assert.Contains(t, out, "base_url = '"+c.srv.URL+"'")
	assert.Contains(t, out, "version = '14.0.0'")
}

func TestSettings_MissingFile(t *testing.T) {
	c := newCLI(t)
	c.settings = filepath.Join(t.TempDir(), "missing.toml")

	_, err := c.run("settings")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestVersion(t *testing.T) {
	c := newCLI(t)
	out, err := c.run("version")
	require.NoError(t, err)
	assert.Contains(t, out, "wiki-create version")
}

func TestHelpTopics(t *testing.T) {
	c := newCLI(t)
	out, err := c.run("help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "layout")
	assert.Contains(t, out, "--update")
}
