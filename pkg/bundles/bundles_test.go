package bundles_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedwiki/wikikit/pkg/archive"
	"github.com/fedwiki/wikikit/pkg/branchspec"
	"github.com/fedwiki/wikikit/pkg/bundles"
	"github.com/fedwiki/wikikit/pkg/errors"
	"github.com/fedwiki/wikikit/pkg/fetch"
	"github.com/fedwiki/wikikit/pkg/testutil"
)

func serveBundle(t *testing.T, srv *testutil.ArchiveServer, spec string) {
	t.Helper()
	b := branchspec.MustParse(spec)
	srv.Handle("/"+b.Owner+"/"+b.Repo+"/archive/"+b.Branch+".zip", testutil.ZipBytes(t, testutil.BundleEntries(b.DirName())))
}

func TestProvision(t *testing.T) {
	fs := afero.NewMemMapFs()
	srv := testutil.NewArchiveServer(t)
	for _, s := range []string{"fedwiki/wiki", "fedwiki/wiki-server", "someone/wiki-client:dev"} {
		serveBundle(t, srv, s)
	}

	p := bundles.New("/w", srv.URL, fetch.New(fs, srv.Client()), archive.NewExtractor(fs, nil))
	got, err := p.Provision(context.Background(),
		branchspec.MustParse("fedwiki/wiki"),
		branchspec.MustParse("fedwiki/wiki-server"),
		branchspec.MustParse("someone/wiki-client:dev"),
	)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "/w/wiki-master.zip", got[0].Archive)
	assert.Equal(t, "wiki-master", got[0].Root)
	assert.Equal(t, "/w/wiki-server-master", got[1].Path)
	assert.Equal(t, "/w/wiki-client-dev", got[2].Path)
	assert.Equal(t, srv.URL, got[2].Spec.Host())

	for _, b := range got {
		ok, err := afero.Exists(fs, b.Path+"/package.json")
		require.NoError(t, err)
		assert.True(t, ok, b.Path)
	}

	_, err = p.Provision(context.Background(), branchspec.MustParse("fedwiki/wiki"))
	require.NoError(t, err)
	assert.Equal(t, 3, srv.TotalHits(), "existing archives are not downloaded again")
}

func TestProvision_DownloadsBeforeExtracting(t *testing.T) {
	fs := afero.NewMemMapFs()
	srv := testutil.NewArchiveServer(t)
	serveBundle(t, srv, "fedwiki/wiki")

	p := bundles.New("/w", srv.URL, fetch.New(fs, srv.Client()), archive.NewExtractor(fs, nil))
	_, err := p.Provision(context.Background(),
		branchspec.MustParse("fedwiki/wiki"),
		branchspec.MustParse("fedwiki/missing"),
	)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDownload))

	ok, _ := afero.Exists(fs, "/w/wiki-master.zip")
	assert.True(t, ok, "first archive was downloaded")
	ok, _ = afero.DirExists(fs, "/w/wiki-master")
	assert.False(t, ok, "nothing is extracted when a download fails")
}

func TestProvision_ExtractFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	srv := testutil.NewArchiveServer(t)
	srv.Handle("/fedwiki/wiki/archive/master.zip", []byte("not a zip"))

	p := bundles.New("/w", srv.URL, fetch.New(fs, srv.Client()), archive.NewExtractor(fs, nil))
	_, err := p.Provision(context.Background(), branchspec.MustParse("fedwiki/wiki"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrExtract))
}
