// Package fetch downloads remote artifacts to files, skipping destinations
// that already exist.
package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/fedwiki/wikikit/pkg/errors"
	"github.com/fedwiki/wikikit/pkg/filesystem"
	"github.com/fedwiki/wikikit/pkg/logging"
)

// DefaultTimeout bounds a single download when no client is supplied
const DefaultTimeout = 10 * time.Minute

// Result describes what a Fetch call did
type Result struct {
	URL     string
	Path    string
	Skipped bool
	Bytes   int64
}

// Fetcher performs idempotent network-to-file downloads
type Fetcher struct {
	fs     afero.Fs
	client *http.Client
	logger zerolog.Logger
}

// New creates a Fetcher writing to fs. A nil client gets DefaultTimeout.
func New(fs afero.Fs, client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Fetcher{
		fs:     fs,
		client: client,
		logger: logging.GetLogger("fetch"),
	}
}

// Fetch downloads url to dest unless dest already exists. An existing file is
// trusted as-is; its contents are not checked.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string) (Result, error) {
	result := Result{URL: url, Path: dest}

	if filesystem.Exists(f.fs, dest) {
		f.logger.Info().Str("path", dest).Msg("Already downloaded, skipping")
		result.Skipped = true
		return result, nil
	}

	f.logger.Info().Str("url", url).Str("path", dest).Msg("Downloading")
	done := logging.LogOperationStart(f.logger, "download")
	defer done()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return result, errors.Wrapf(err, errors.ErrDownload, "invalid download url %s", url).
			WithDetail("url", url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return result, errors.Wrapf(err, errors.ErrDownload, "failed to download %s", url).
			WithDetail("url", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, errors.Newf(errors.ErrDownload, "failed to download %s: %s", url, resp.Status).
			WithDetail("url", url).
			WithDetail("status", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, errors.Wrapf(err, errors.ErrDownload, "failed to read response from %s", url).
			WithDetail("url", url)
	}

	if err := filesystem.WriteFileAtomic(f.fs, dest, body, 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", dest).
			WithDetail("path", dest)
	}

	result.Bytes = int64(len(body))
	f.logger.Debug().Str("path", dest).Int64("bytes", result.Bytes).Msg("Download complete")
	return result, nil
}
