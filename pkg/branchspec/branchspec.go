// Package branchspec parses compact remote bundle identifiers of the form
// owner/repo[:branch] and derives the archive URL and local names for them.
package branchspec

import (
	"fmt"
	"strings"

	"github.com/fedwiki/wikikit/pkg/errors"
)

const (
	// DefaultBranch is used when a spec names no branch
	DefaultBranch = "master"

	// DefaultHost serves branch archives
	DefaultHost = "github.com"
)

// BranchSpec names a branch of a remote repository. The zero value is not valid;
// construct with Parse.
type BranchSpec struct {
	Owner  string
	Repo   string
	Branch string
	host   string
}

// Parse parses owner/repo or owner/repo:branch
func Parse(s string) (BranchSpec, error) {
	s = strings.TrimSpace(s)
	owner, rest, found := strings.Cut(s, "/")
	if !found || owner == "" {
		return BranchSpec{}, parseError(s, "missing owner")
	}

	repo, branch, hasBranch := strings.Cut(rest, ":")
	if repo == "" {
		return BranchSpec{}, parseError(s, "missing repo")
	}
	if strings.Contains(repo, "/") {
		return BranchSpec{}, parseError(s, "repo must not contain '/'")
	}
	if hasBranch && branch == "" {
		return BranchSpec{}, parseError(s, "empty branch")
	}
	if !hasBranch {
		branch = DefaultBranch
	}

	return BranchSpec{Owner: owner, Repo: repo, Branch: branch}, nil
}

// MustParse is Parse for compiled-in specs
func MustParse(s string) BranchSpec {
	spec, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return spec
}

func parseError(input, reason string) error {
	return errors.Newf(errors.ErrBranchSpecParse, "invalid branch spec %q: %s", input, reason).
		WithDetail("input", input)
}

// WithHost returns a copy that resolves archive URLs against host
func (b BranchSpec) WithHost(host string) BranchSpec {
	b.host = host
	return b
}

// Host returns the archive host
func (b BranchSpec) Host() string {
	if b.host == "" {
		return DefaultHost
	}
	return b.host
}

// ArchiveURL returns the branch archive download URL
func (b BranchSpec) ArchiveURL() string {
	host := b.Host()
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	return fmt.Sprintf("%s/%s/%s/archive/%s.zip", strings.TrimRight(host, "/"), b.Owner, b.Repo, b.Branch)
}

// DirName is the directory the archive extracts to
func (b BranchSpec) DirName() string {
	return b.Repo + "-" + b.Branch
}

// ArchiveName is the local file name of the downloaded archive
func (b BranchSpec) ArchiveName() string {
	return b.DirName() + ".zip"
}

// IsZero reports whether b was never parsed
func (b BranchSpec) IsZero() bool {
	return b.Owner == "" && b.Repo == ""
}

// String renders the compact form, omitting the default branch
func (b BranchSpec) String() string {
	if b.IsZero() {
		return ""
	}
	s := b.Owner + "/" + b.Repo
	if b.Branch != DefaultBranch {
		s += ":" + b.Branch
	}
	return s
}

// MarshalText implements encoding.TextMarshaler
func (b BranchSpec) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (b *BranchSpec) UnmarshalText(text []byte) error {
	spec, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = spec
	return nil
}
