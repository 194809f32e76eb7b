package archive

import (
	"path"
	"path/filepath"
	"strings"
)

// sanitize turns an archive entry name into a relative slash path that
// cannot climb out of the destination. Leading separators, volume names,
// "." and ".." components are dropped.
func sanitize(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	parts := make([]string, 0, 8)
	for i, p := range strings.Split(name, "/") {
		switch {
		case p == "", p == ".", p == "..":
			continue
		case i == 0 && strings.HasSuffix(p, ":"):
			continue
		}
		parts = append(parts, p)
	}
	return path.Join(parts...)
}

// rootOf returns the first component of a sanitised name
func rootOf(sanitized string) string {
	root, _, _ := strings.Cut(sanitized, "/")
	return root
}

func targetPath(destDir, sanitized string) string {
	return filepath.Join(destDir, filepath.FromSlash(sanitized))
}
