package archive

import "path/filepath"

// Manifest records, per archive file name, the root it was extracted to
type Manifest map[string]string

// Root returns the recorded root for archivePath
func (m Manifest) Root(archivePath string) (string, bool) {
	root, ok := m[filepath.Base(archivePath)]
	return root, ok
}

// Record marks archivePath as materialised at root
func (m Manifest) Record(archivePath, root string) {
	m[filepath.Base(archivePath)] = root
}
