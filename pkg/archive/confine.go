package archive

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fedwiki/wikikit/pkg/filesystem"
)

var errEscape = stderrors.New("entry escapes the destination")

// within reports whether path is destDir or lies below it
func within(destDir, path string) bool {
	rel, err := filepath.Rel(destDir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// confine refuses target when an existing directory between destDir and
// target is a symlink. Writes never follow links laid down by earlier entries.
func (e *Extractor) confine(destDir, target, entry string) error {
	rel, err := filepath.Rel(destDir, target)
	if err != nil || !within(destDir, target) {
		return fmt.Errorf("%s: %w", entry, errEscape)
	}
	parts := strings.Split(rel, string(filepath.Separator))
	cur := destDir
	for _, p := range parts[:len(parts)-1] {
		cur = filepath.Join(cur, p)
		if filesystem.IsSymlink(e.fs, cur) {
			return fmt.Errorf("%s: parent %s is a symlink: %w", entry, cur, errEscape)
		}
	}
	return nil
}

// checkLink refuses a symlink at target pointing at link unless link is
// relative and resolves under destDir without passing through another symlink
func (e *Extractor) checkLink(destDir, target, link string) error {
	slashed := strings.ReplaceAll(link, "\\", "/")
	if slashed == "" || strings.HasPrefix(slashed, "/") || filepath.IsAbs(link) || filepath.VolumeName(link) != "" {
		return fmt.Errorf("link %s -> %s: %w", target, link, errEscape)
	}

	cur := filepath.Dir(target)
	parts := strings.Split(slashed, "/")
	for i, p := range parts {
		switch p {
		case "", ".":
			continue
		case "..":
			cur = filepath.Dir(cur)
		default:
			cur = filepath.Join(cur, p)
			if i < len(parts)-1 && filesystem.IsSymlink(e.fs, cur) {
				return fmt.Errorf("link %s -> %s passes through %s: %w", target, link, cur, errEscape)
			}
		}
		if !within(destDir, cur) {
			return fmt.Errorf("link %s -> %s: %w", target, link, errEscape)
		}
	}
	return nil
}
