package nodejs

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/fedwiki/wikikit/pkg/archive"
	"github.com/fedwiki/wikikit/pkg/config"
	"github.com/fedwiki/wikikit/pkg/errors"
	"github.com/fedwiki/wikikit/pkg/fetch"
	"github.com/fedwiki/wikikit/pkg/filesystem"
	"github.com/fedwiki/wikikit/pkg/install"
	"github.com/fedwiki/wikikit/pkg/logging"
	"github.com/fedwiki/wikikit/pkg/paths"
)

// Fetcher downloads a URL to a file unless the file exists
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) (fetch.Result, error)
}

// Extractor unpacks an archive and returns its root name
type Extractor interface {
	Extract(archivePath, destDir string) (string, error)
}

// Provisioner acquires the runtime into an install directory
type Provisioner struct {
	fs        afero.Fs
	fetcher   Fetcher
	extractor Extractor
	platform  paths.Platform
	settings  config.RuntimeSettings
	logger    zerolog.Logger
}

// New creates a Provisioner for platform
func New(fs afero.Fs, fetcher Fetcher, extractor Extractor, platform paths.Platform, settings config.RuntimeSettings) *Provisioner {
	return &Provisioner{
		fs:        fs,
		fetcher:   fetcher,
		extractor: extractor,
		platform:  platform,
		settings:  settings,
		logger:    logging.GetLogger("nodejs"),
	}
}

// Provision makes sure rec points at an extracted runtime inside dir. rec is
// updated as each stage completes so a failure still leaves what was learned.
func (p *Provisioner) Provision(ctx context.Context, dir string, rec *install.RuntimeRecord) error {
	if rec.Path != "" && filesystem.IsDir(p.fs, rec.Path) {
		p.logger.Info().Str("path", rec.Path).Msg("Runtime already present")
		return nil
	}

	url, err := DistributionURL(p.platform, p.settings)
	if err != nil {
		return err
	}

	dest := filepath.Join(dir, ArchiveName(url))
	if rec.URL == url && rec.Archive != "" {
		dest = rec.Archive
	}

	p.logger.Info().Str("url", url).Str("platform", p.platform.String()).Msg("Provisioning runtime")
	if _, err := p.fetcher.Fetch(ctx, url, dest); err != nil {
		return err
	}
	rec.URL = url
	rec.Archive = dest

	if !filesystem.Exists(p.fs, dest) {
		return errors.Newf(errors.ErrMissingArtifact, "runtime archive %s not found after download", dest).
			WithDetail("path", dest)
	}

	root, err := p.extractor.Extract(dest, dir)
	if err != nil {
		return err
	}
	rec.Path = filepath.Join(dir, root)
	p.logger.Info().Str("path", rec.Path).Msg("Runtime ready")
	return nil
}

var (
	_ Fetcher   = (*fetch.Fetcher)(nil)
	_ Extractor = (*archive.Extractor)(nil)
)
