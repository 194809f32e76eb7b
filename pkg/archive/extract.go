package archive

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"compress/gzip"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/ulikunitz/xz"

	"github.com/fedwiki/wikikit/pkg/errors"
	"github.com/fedwiki/wikikit/pkg/filesystem"
	"github.com/fedwiki/wikikit/pkg/logging"
)

// Extractor unpacks archives onto a filesystem
type Extractor struct {
	fs       afero.Fs
	manifest Manifest
	logger   zerolog.Logger
}

// NewExtractor creates an Extractor recording into manifest. A nil manifest starts empty.
func NewExtractor(fs afero.Fs, manifest Manifest) *Extractor {
	if manifest == nil {
		manifest = Manifest{}
	}
	return &Extractor{
		fs:       fs,
		manifest: manifest,
		logger:   logging.GetLogger("archive"),
	}
}

// Manifest returns the extraction manifest
func (e *Extractor) Manifest() Manifest {
	return e.manifest
}

// Extract unpacks archivePath into destDir and returns the archive's root name
func (e *Extractor) Extract(archivePath, destDir string) (string, error) {
	format, err := DetectFormat(archivePath)
	if err != nil {
		return "", err
	}

	logger := e.logger.With().Str("archive", archivePath).Str("format", string(format)).Logger()

	if root, ok := e.manifest.Root(archivePath); ok && filesystem.Exists(e.fs, filepath.Join(destDir, root)) {
		logger.Info().Str("root", root).Msg("Already extracted, skipping")
		return root, nil
	}

	var root string
	switch format {
	case FormatZip:
		root, err = e.extractZip(logger, archivePath, destDir)
	default:
		root, err = e.extractTar(logger, format, archivePath, destDir)
	}
	if err != nil {
		return "", err
	}

	e.manifest.Record(archivePath, root)
	return root, nil
}

func (e *Extractor) extractZip(logger zerolog.Logger, archivePath, destDir string) (string, error) {
	f, err := e.fs.Open(archivePath)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to open %s", archivePath)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", archivePath)
	}

	// entry names are sanitised below, so insecure paths are not fatal
	r, err := zip.NewReader(f, info.Size())
	if err != nil && !stderrors.Is(err, zip.ErrInsecurePath) {
		return "", extractError(err, archivePath)
	}

	first, err := firstName(zipNames(r))
	if err != nil {
		return "", extractError(err, archivePath)
	}
	root := rootOf(first)
	if filesystem.Exists(e.fs, targetPath(destDir, first)) {
		logger.Info().Str("root", root).Msg("Root already present, skipping extraction")
		return root, nil
	}

	logger.Info().Str("dest", destDir).Msg("Extracting")
	done := logging.LogOperationStart(logger, "extract")
	defer done()

	for _, zf := range r.File {
		name := sanitize(zf.Name)
		if name == "" {
			continue
		}
		target := targetPath(destDir, name)
		if err := e.confine(destDir, target, zf.Name); err != nil {
			return "", extractError(err, archivePath)
		}
		mode := zf.Mode()

		switch {
		case mode.IsDir():
			err = e.fs.MkdirAll(target, dirPerm(mode))
		case mode&os.ModeSymlink != 0:
			err = e.zipSymlink(logger, zf, destDir, target)
		default:
			err = e.writeEntry(target, mode.Perm(), func() (io.ReadCloser, error) { return zf.Open() })
		}
		if err != nil {
			return "", extractError(err, archivePath)
		}
	}
	return root, nil
}

func zipNames(r *zip.Reader) []string {
	names := make([]string, len(r.File))
	for i, zf := range r.File {
		names[i] = zf.Name
	}
	return names
}

func (e *Extractor) zipSymlink(logger zerolog.Logger, zf *zip.File, destDir, target string) error {
	rc, err := zf.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	link, err := io.ReadAll(rc)
	if err != nil {
		return err
	}
	return e.symlink(logger, destDir, string(link), target)
}

func (e *Extractor) extractTar(logger zerolog.Logger, format Format, archivePath, destDir string) (string, error) {
	f, err := e.fs.Open(archivePath)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to open %s", archivePath)
	}
	defer f.Close()

	stream, err := decompress(format, bufio.NewReader(f))
	if err != nil {
		return "", extractError(err, archivePath)
	}
	tr := tar.NewReader(stream)

	// the first named entry decides the root and whether to skip
	var hdr *tar.Header
	var first string
	for first == "" {
		hdr, err = tr.Next()
		if err == io.EOF {
			return "", extractError(errEmpty, archivePath)
		}
		if err != nil {
			return "", extractError(err, archivePath)
		}
		first = sanitize(hdr.Name)
	}
	root := rootOf(first)
	if filesystem.Exists(e.fs, targetPath(destDir, first)) {
		logger.Info().Str("root", root).Msg("Root already present, skipping extraction")
		return root, nil
	}

	logger.Info().Str("dest", destDir).Msg("Extracting")
	done := logging.LogOperationStart(logger, "extract")
	defer done()

	for {
		if err := e.writeTarEntry(logger, tr, hdr, destDir); err != nil {
			return "", extractError(err, archivePath)
		}
		hdr, err = tr.Next()
		if err == io.EOF {
			return root, nil
		}
		if err != nil {
			return "", extractError(err, archivePath)
		}
	}
}

func decompress(format Format, r io.Reader) (io.Reader, error) {
	switch format {
	case FormatTarXz:
		return xz.NewReader(r)
	case FormatTarGz:
		return gzip.NewReader(r)
	}
	return nil, errors.Newf(errors.ErrUnsupportedArchive, "no decompressor for %s", format)
}

func (e *Extractor) writeTarEntry(logger zerolog.Logger, tr *tar.Reader, hdr *tar.Header, destDir string) error {
	name := sanitize(hdr.Name)
	if name == "" {
		return nil
	}
	target := targetPath(destDir, name)
	if err := e.confine(destDir, target, hdr.Name); err != nil {
		return err
	}
	mode := hdr.FileInfo().Mode()

	switch hdr.Typeflag {
	case tar.TypeDir:
		return e.fs.MkdirAll(target, dirPerm(mode))
	case tar.TypeReg:
		return e.writeEntry(target, mode.Perm(), func() (io.ReadCloser, error) { return io.NopCloser(tr), nil })
	case tar.TypeSymlink:
		return e.symlink(logger, destDir, hdr.Linkname, target)
	case tar.TypeLink:
		source := targetPath(destDir, sanitize(hdr.Linkname))
		if err := e.confine(destDir, source, hdr.Linkname); err != nil {
			return err
		}
		return e.writeEntry(target, mode.Perm(), func() (io.ReadCloser, error) { return e.fs.Open(source) })
	default:
		logger.Trace().Str("entry", hdr.Name).Msg("Skipping unsupported tar entry type")
		return nil
	}
}

func (e *Extractor) writeEntry(target string, perm os.FileMode, open func() (io.ReadCloser, error)) error {
	if err := e.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	if perm == 0 {
		perm = 0644
	}
	// replace a link in place rather than write through it
	if filesystem.IsSymlink(e.fs, target) {
		if err := e.fs.Remove(target); err != nil {
			return err
		}
	}
	src, err := open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := e.fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (e *Extractor) symlink(logger zerolog.Logger, destDir, link, target string) error {
	if err := e.checkLink(destDir, target, link); err != nil {
		return err
	}
	if err := e.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	if _, err := filesystem.RemoveIfExists(e.fs, target); err != nil {
		return err
	}
	ok, err := filesystem.Symlink(e.fs, link, target)
	if err != nil {
		return err
	}
	if !ok {
		logger.Debug().Str("link", target).Msg("Filesystem has no symlink support, skipping link")
	}
	return nil
}

func dirPerm(mode os.FileMode) os.FileMode {
	if perm := mode.Perm(); perm != 0 {
		return perm | 0700
	}
	return 0755
}
