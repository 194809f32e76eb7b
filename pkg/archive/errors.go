package archive

import (
	stderrors "errors"

	"github.com/fedwiki/wikikit/pkg/errors"
)

var errEmpty = stderrors.New("archive has no entries")

func firstName(names []string) (string, error) {
	for _, n := range names {
		if s := sanitize(n); s != "" {
			return s, nil
		}
	}
	return "", errEmpty
}

func extractError(err error, archivePath string) error {
	return errors.Wrapf(err, errors.ErrExtract, "failed to extract %s", archivePath).
		WithDetail("path", archivePath)
}
