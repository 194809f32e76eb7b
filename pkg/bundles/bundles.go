// Package bundles downloads and extracts branch archives of the wiki code
// bundles. Every archive is downloaded before any is extracted.
package bundles

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/fedwiki/wikikit/pkg/branchspec"
	"github.com/fedwiki/wikikit/pkg/fetch"
	"github.com/fedwiki/wikikit/pkg/logging"
)

// Fetcher downloads a URL to a file unless the file exists
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) (fetch.Result, error)
}

// Extractor unpacks an archive and returns its root name
type Extractor interface {
	Extract(archivePath, destDir string) (string, error)
}

// Bundle is one provisioned code bundle
type Bundle struct {
	Spec    branchspec.BranchSpec
	Archive string
	Root    string
	Path    string
}

// Provisioner materialises bundles inside one directory
type Provisioner struct {
	dir       string
	host      string
	fetcher   Fetcher
	extractor Extractor
	logger    zerolog.Logger
}

// New creates a Provisioner for dir. host overrides the archive host when set.
func New(dir, host string, fetcher Fetcher, extractor Extractor) *Provisioner {
	return &Provisioner{
		dir:       dir,
		host:      host,
		fetcher:   fetcher,
		extractor: extractor,
		logger:    logging.GetLogger("bundles"),
	}
}

// Provision downloads then extracts specs, returning bundles in input order.
// A download failure stops before anything is extracted.
func (p *Provisioner) Provision(ctx context.Context, specs ...branchspec.BranchSpec) ([]Bundle, error) {
	out := make([]Bundle, len(specs))
	for i, spec := range specs {
		if p.host != "" {
			spec = spec.WithHost(p.host)
		}
		archive := filepath.Join(p.dir, spec.ArchiveName())
		p.logger.Info().Str("bundle", spec.String()).Msg("Fetching bundle")
		if _, err := p.fetcher.Fetch(ctx, spec.ArchiveURL(), archive); err != nil {
			return nil, err
		}
		out[i] = Bundle{Spec: spec, Archive: archive}
	}

	for i := range out {
		b := &out[i]
		root, err := p.extractor.Extract(b.Archive, p.dir)
		if err != nil {
			return nil, err
		}
		b.Root = root
		b.Path = filepath.Join(p.dir, root)
		p.logger.Debug().Str("bundle", b.Spec.String()).Str("path", b.Path).Msg("Bundle ready")
	}
	return out, nil
}
