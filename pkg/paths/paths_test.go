package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandHome(t *testing.T) {
	env := Environment{Home: "/home/ward"}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"tilde only", "~", "/home/ward"},
		{"tilde slash", "~/wiki", filepath.Join("/home/ward", "wiki")},
		{"absolute", "/srv/wiki", "/srv/wiki"},
		{"other user", "~bob/wiki", "~bob/wiki"},
		{"relative", "wiki", "wiki"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, env.ExpandHome(tt.in))
		})
	}
}

func TestExpandHome_NoHome(t *testing.T) {
	assert.Equal(t, "~/wiki", Environment{}.ExpandHome("~/wiki"))
}

func TestResolve(t *testing.T) {
	home := t.TempDir()
	env := Environment{Home: home}

	got, err := env.Resolve("~/wiki")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "wiki"), got)

	got, err = env.Resolve("relative")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}

func TestPlatform(t *testing.T) {
	assert.True(t, Platform{OS: "windows", Arch: "amd64"}.IsWindows())
	assert.False(t, Platform{OS: "linux", Arch: "amd64"}.IsWindows())
	assert.Equal(t, "linux/arm64", Platform{OS: "linux", Arch: "arm64"}.String())
	assert.NotEmpty(t, CurrentPlatform().OS)
}

func TestConfigDir_Override(t *testing.T) {
	env := Environment{Home: "/home/ward"}
	t.Setenv(EnvConfigDir, "~/cfg")

	assert.Equal(t, filepath.Join("/home/ward", "cfg"), env.ConfigDir())
	assert.Equal(t, filepath.Join("/home/ward", "cfg", "config.toml"), env.SettingsPath())
}

func TestDetect(t *testing.T) {
	env, err := Detect()
	require.NoError(t, err)
	assert.NotEmpty(t, env.Home)
	assert.Equal(t, CurrentPlatform(), env.Platform)
}
