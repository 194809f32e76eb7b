package archive

import (
	"strings"

	"github.com/fedwiki/wikikit/pkg/errors"
)

// Format is a supported archive encoding
type Format string

const (
	FormatZip   Format = "zip"
	FormatTarXz Format = "tar.xz"
	FormatTarGz Format = "tar.gz"
)

var suffixes = []struct {
	suffix string
	format Format
}{
	{".zip", FormatZip},
	{".tar.xz", FormatTarXz},
	{".txz", FormatTarXz},
	{".tar.gz", FormatTarGz},
	{".tgz", FormatTarGz},
}

// DetectFormat maps an archive path to its format by extension
func DetectFormat(path string) (Format, error) {
	lower := strings.ToLower(path)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s.suffix) {
			return s.format, nil
		}
	}
	return "", errors.Newf(errors.ErrUnsupportedArchive, "unsupported archive format: %s", path).
		WithDetail("path", path)
}
