// Package install models the state of one wiki install and its persisted
// document, <dir>/config.yaml.
//
// The document is written only after a create sequence fully succeeds, so
// its presence means the directory holds a completed install. Progress of an
// unfinished create is kept separately in a checkpoint file so a rerun can
// resume where the failed one stopped.
package install

import (
	"path/filepath"
	"strings"

	"github.com/fedwiki/wikikit/pkg/archive"
	"github.com/fedwiki/wikikit/pkg/branchspec"
	"github.com/fedwiki/wikikit/pkg/config"
	"github.com/fedwiki/wikikit/pkg/linker"
)

const (
	// DocumentName is the persisted install document inside the install dir
	DocumentName = "config.yaml"

	// CheckpointName holds progress of an unfinished create
	CheckpointName = ".wikikit-progress.yaml"
)

// RuntimeRecord tracks the acquired Node.js runtime
type RuntimeRecord struct {
	URL     string `yaml:"url,omitempty"`
	Archive string `yaml:"archive,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// IsZero reports whether no runtime was ever recorded
func (r RuntimeRecord) IsZero() bool {
	return r.URL == "" && r.Archive == "" && r.Path == ""
}

// State is the aggregate describing one install
type State struct {
	Dir         string                  `yaml:"dir"`
	Wiki        branchspec.BranchSpec   `yaml:"wiki"`
	Server      branchspec.BranchSpec   `yaml:"server"`
	Client      branchspec.BranchSpec   `yaml:"client"`
	Plugins     []branchspec.BranchSpec `yaml:"plugins,omitempty"`
	Runtime     RuntimeRecord           `yaml:"runtime,omitempty"`
	Extractions archive.Manifest        `yaml:"extractions,omitempty"`
	Steps       []linker.Step           `yaml:"steps,omitempty"`
}

// New returns a fresh state for dir with the default bundles
func New(dir string) *State {
	return &State{
		Dir:         dir,
		Wiki:        branchspec.MustParse("fedwiki/wiki"),
		Server:      branchspec.MustParse("fedwiki/wiki-server"),
		Client:      branchspec.MustParse("fedwiki/wiki-client"),
		Extractions: archive.Manifest{},
	}
}

// FromSettings returns a fresh state for dir seeded from settings defaults
func FromSettings(dir string, s *config.Settings) (*State, error) {
	st := New(dir)
	var err error
	if s.Defaults.Wiki != "" {
		if st.Wiki, err = branchspec.Parse(s.Defaults.Wiki); err != nil {
			return nil, err
		}
	}
	if s.Defaults.Server != "" {
		if st.Server, err = branchspec.Parse(s.Defaults.Server); err != nil {
			return nil, err
		}
	}
	if s.Defaults.Client != "" {
		if st.Client, err = branchspec.Parse(s.Defaults.Client); err != nil {
			return nil, err
		}
	}
	for _, p := range s.Defaults.Plugins {
		spec, err := branchspec.Parse(p)
		if err != nil {
			return nil, err
		}
		st.Plugins = append(st.Plugins, spec)
	}
	return st, nil
}

// Bundle kinds addressable for teardown
const (
	KindWiki   = "wiki"
	KindServer = "server"
	KindClient = "client"
)

// Kinds lists the named bundles in provisioning order
var Kinds = []string{KindWiki, KindServer, KindClient}

// Spec returns the branch spec of a bundle kind
func (s *State) Spec(kind string) (branchspec.BranchSpec, bool) {
	switch kind {
	case KindWiki:
		return s.Wiki, true
	case KindServer:
		return s.Server, true
	case KindClient:
		return s.Client, true
	}
	return branchspec.BranchSpec{}, false
}

// Bundles returns wiki, server, client and then plugin specs
func (s *State) Bundles() []branchspec.BranchSpec {
	specs := []branchspec.BranchSpec{s.Wiki, s.Server, s.Client}
	return append(specs, s.Plugins...)
}

// BundleDir is where a bundle's archive extracts to
func (s *State) BundleDir(spec branchspec.BranchSpec) string {
	if root, ok := s.Extractions.Root(spec.ArchiveName()); ok {
		return filepath.Join(s.Dir, root)
	}
	return filepath.Join(s.Dir, spec.DirName())
}

// DocumentPath returns the persisted document path
func (s *State) DocumentPath() string {
	return filepath.Join(s.Dir, DocumentName)
}

// CheckpointPath returns the progress checkpoint path
func (s *State) CheckpointPath() string {
	return filepath.Join(s.Dir, CheckpointName)
}

// Rebase moves s to dir. Recorded runtime and step paths under the old dir
// move along; runtime paths outside it are dropped so nothing outside dir is
// ever acted on.
func (s *State) Rebase(dir string) {
	old := s.Dir
	s.Dir = dir
	if old == "" || filepath.Clean(old) == filepath.Clean(dir) {
		return
	}

	var ok bool
	if s.Runtime.Path, ok = rebasePath(old, dir, s.Runtime.Path); !ok {
		s.Runtime.Path = ""
	}
	if s.Runtime.Archive, ok = rebasePath(old, dir, s.Runtime.Archive); !ok {
		s.Runtime.Archive = ""
	}
	for i := range s.Steps {
		if p, ok := rebasePath(old, dir, s.Steps[i].Dir); ok {
			s.Steps[i].Dir = p
		}
		for j, arg := range s.Steps[i].Args {
			if p, ok := rebasePath(old, dir, arg); ok {
				s.Steps[i].Args[j] = p
			}
		}
	}
}

// Contains reports whether path lies inside the install directory
func (s *State) Contains(path string) bool {
	_, ok := relInside(s.Dir, path)
	return ok
}

// rebasePath maps path from under old to under dir. Empty paths map to
// themselves.
func rebasePath(old, dir, path string) (string, bool) {
	if path == "" {
		return "", true
	}
	rel, ok := relInside(old, path)
	if !ok {
		return path, false
	}
	return filepath.Join(dir, rel), true
}

func relInside(base, path string) (string, bool) {
	if !filepath.IsAbs(path) && filepath.IsAbs(base) {
		return "", false
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

func (s *State) normalize() {
	if s.Extractions == nil {
		s.Extractions = archive.Manifest{}
	}
}
