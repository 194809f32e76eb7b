package branchspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fedwiki/wikikit/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		owner  string
		repo   string
		branch string
	}{
		{"default branch", "fedwiki/wiki", "fedwiki", "wiki", "master"},
		{"explicit branch", "fedwiki/wiki-server:next", "fedwiki", "wiki-server", "next"},
		{"branch with slash", "fedwiki/wiki:feature/x", "fedwiki", "wiki", "feature/x"},
		{"surrounding spaces", "  fedwiki/wiki-client ", "fedwiki", "wiki-client", "master"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.owner, spec.Owner)
			assert.Equal(t, tt.repo, spec.Repo)
			assert.Equal(t, tt.branch, spec.Branch)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, input := range []string{"", "wiki", "/wiki", "fedwiki/", "fedwiki/:dev", "fedwiki/wiki:", "a/b/c"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrBranchSpecParse))
		})
	}
}

func TestDerivedNames(t *testing.T) {
	spec := MustParse("fedwiki/wiki")
	assert.Equal(t, "https://github.com/fedwiki/wiki/archive/master.zip", spec.ArchiveURL())
	assert.Equal(t, "wiki-master", spec.DirName())
	assert.Equal(t, "wiki-master.zip", spec.ArchiveName())

	branched := MustParse("owner/repo:x")
	assert.Equal(t, "repo-x", branched.DirName())
	assert.Equal(t, "repo-x.zip", branched.ArchiveName())
	assert.Contains(t, branched.ArchiveURL(), "/archive/x.zip")
}

func TestWithHost(t *testing.T) {
	spec := MustParse("fedwiki/wiki:dev")

	assert.Equal(t, "https://git.example.org/fedwiki/wiki/archive/dev.zip", spec.WithHost("git.example.org").ArchiveURL())
	assert.Equal(t, "http://127.0.0.1:8080/fedwiki/wiki/archive/dev.zip", spec.WithHost("http://127.0.0.1:8080/").ArchiveURL())
	// original value is untouched
	assert.Equal(t, DefaultHost, spec.Host())
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("nope") })
}

func TestString(t *testing.T) {
	assert.Equal(t, "fedwiki/wiki", MustParse("fedwiki/wiki:master").String())
	assert.Equal(t, "fedwiki/wiki:dev", MustParse("fedwiki/wiki:dev").String())
	assert.Equal(t, "", BranchSpec{}.String())
}

func TestYAMLRoundTrip(t *testing.T) {
	type doc struct {
		Wiki    BranchSpec   `yaml:"wiki"`
		Plugins []BranchSpec `yaml:"plugins"`
	}

	in := doc{
		Wiki:    MustParse("fedwiki/wiki"),
		Plugins: []BranchSpec{MustParse("fedwiki/wiki-plugin-roster:dev")},
	}
	out, err := yaml.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(out), "wiki: fedwiki/wiki\n")
	assert.Contains(t, string(out), "fedwiki/wiki-plugin-roster:dev")

	var back doc
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, in, back)

	var bad doc
	err = yaml.Unmarshal([]byte("wiki: nope\n"), &bad)
	require.Error(t, err)
}
