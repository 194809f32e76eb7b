package install

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/fedwiki/wikikit/pkg/errors"
	"github.com/fedwiki/wikikit/pkg/filesystem"
)

// Store reads and writes install documents on a filesystem
type Store struct {
	fs afero.Fs
}

// NewStore creates a Store on fs
func NewStore(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// Exists reports whether dir holds a completed install
func (st *Store) Exists(dir string) bool {
	return filesystem.Exists(st.fs, filepath.Join(dir, DocumentName))
}

// Load reads the document in dir
func (st *Store) Load(dir string) (*State, error) {
	return st.LoadFile(filepath.Join(dir, DocumentName))
}

// LoadFile reads a document from an explicit path. A document without a dir
// field installs next to the document.
func (st *Store) LoadFile(path string) (*State, error) {
	s, err := st.read(path)
	if err != nil {
		return nil, err
	}
	if s.Dir == "" {
		s.Dir = filepath.Dir(path)
	}
	return s, nil
}

// LoadCheckpoint reads the progress checkpoint in dir. It returns nil when there is none.
func (st *Store) LoadCheckpoint(dir string) (*State, error) {
	path := filepath.Join(dir, CheckpointName)
	if !filesystem.Exists(st.fs, path) {
		return nil, nil
	}
	return st.read(path)
}

func (st *Store) read(path string) (*State, error) {
	data, err := afero.ReadFile(st.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path).
			WithDetail("path", path)
	}

	s := &State{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path).
			WithDetail("path", path)
	}
	defaults := New(s.Dir)
	if s.Wiki.IsZero() {
		s.Wiki = defaults.Wiki
	}
	if s.Server.IsZero() {
		s.Server = defaults.Server
	}
	if s.Client.IsZero() {
		s.Client = defaults.Client
	}
	s.normalize()
	return s, nil
}

// Save writes the document for s
func (st *Store) Save(s *State) error {
	return st.write(s.DocumentPath(), s)
}

// SaveCheckpoint records progress of an unfinished create
func (st *Store) SaveCheckpoint(s *State) error {
	return st.write(s.CheckpointPath(), s)
}

// ClearCheckpoint removes the progress checkpoint
func (st *Store) ClearCheckpoint(s *State) error {
	if err := st.fs.Remove(s.CheckpointPath()); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to remove checkpoint")
	}
	return nil
}

func (st *Store) write(path string, s *State) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode install state")
	}
	if err := filesystem.WriteFileAtomic(st.fs, path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).
			WithDetail("path", path)
	}
	return nil
}
