package filesystem

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// partSuffix marks a file that is still being written
const partSuffix = ".part"

// NewOS returns the operating system filesystem
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// NewMemory returns an in-memory filesystem
func NewMemory() afero.Fs {
	return afero.NewMemMapFs()
}

// Exists reports whether path exists. Errors other than not-exist count as existing,
// so callers never overwrite something they could not stat.
func Exists(fs afero.Fs, path string) bool {
	_, err := fs.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

// IsDir reports whether path exists and is a directory
func IsDir(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && info.IsDir()
}

// WriteFileAtomic writes data next to path and renames it into place
func WriteFileAtomic(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp := path + partSuffix
	if err := afero.WriteFile(fs, tmp, data, perm); err != nil {
		_ = fs.Remove(tmp)
		return err
	}
	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return err
	}
	return nil
}

// Symlink creates newname pointing at oldname when fs supports links.
// It returns false when the filesystem cannot represent symlinks.
func Symlink(fs afero.Fs, oldname, newname string) (bool, error) {
	linker, ok := fs.(afero.Linker)
	if !ok {
		return false, nil
	}
	if err := linker.SymlinkIfPossible(oldname, newname); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveIfExists deletes path recursively. It returns false when there was nothing to delete.
func RemoveIfExists(fs afero.Fs, path string) (bool, error) {
	if _, err := lstat(fs, path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := fs.RemoveAll(path); err != nil {
		return false, err
	}
	return true, nil
}

// IsSymlink reports whether path itself is a symbolic link
func IsSymlink(fs afero.Fs, path string) bool {
	info, err := lstat(fs, path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

func lstat(fs afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fs.Stat(path)
}
