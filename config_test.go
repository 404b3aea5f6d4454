package civetdocs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(vars map[string]string) EnvFunc {
	return func(key string) string {
		return vars[key]
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig(testEnv(map[string]string{"HOME": "/home/moose"}))

	assert.Equal(t, "master", cfg.Branch)
	assert.Equal(t, "moosetest", cfg.Author)
	assert.True(t, cfg.DownloadTestResults)
	assert.True(t, cfg.GenerateTestReports)
	assert.Equal(t, "civet", cfg.TestReportsLocation)
	assert.Equal(t, "/home/moose/.local/share/civet/jobs", cfg.TestResultsCache)
	assert.Equal(t, 10, cfg.MergeLimit)
	assert.Equal(t, 4, cfg.MaxConcurrentFetches)
	assert.Equal(t, "doc", cfg.SiteDir)
	assert.Equal(t, "site", cfg.DestDir)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "civet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
remotes:
  moose:
    url: https://civet.inl.gov
    repo: idaholab/moose
  libmesh:
    url: https://civet.inl.gov
    repo: libmesh/libmesh
    download_test_results: false
    test_results_cache: $CACHE_ROOT/libmesh
branch: devel
download_test_results: false
test_results_cache: ~/jobs
merge_limit: 5
`), 0o644))

	env := testEnv(map[string]string{"HOME": "/home/moose", "CACHE_ROOT": "/var/cache"})
	cfg, err := LoadConfig(path, env)
	require.NoError(t, err)

	// file values override defaults, unset keys keep them
	assert.Equal(t, "devel", cfg.Branch)
	assert.Equal(t, "moosetest", cfg.Author)
	assert.False(t, cfg.DownloadTestResults)
	assert.Equal(t, 5, cfg.MergeLimit)
	assert.Equal(t, 4, cfg.MaxConcurrentFetches)

	// paths expand through the injected environment
	assert.Equal(t, "/home/moose/jobs", cfg.TestResultsCache)
	assert.Equal(t, "/var/cache/libmesh", cfg.Remotes["libmesh"].TestResultsCache)

	require.Contains(t, cfg.Remotes, "moose")
	assert.Equal(t, "idaholab/moose", cfg.Remotes["moose"].Repo)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), testEnv(nil))
	assert.Error(t, err)
}

func TestRemoteNamesSorted(t *testing.T) {
	cfg := Config{Remotes: map[string]RemoteConfig{
		"moose":   {},
		"libmesh": {},
		"app":     {},
	}}
	assert.Equal(t, []string{"app", "libmesh", "moose"}, cfg.RemoteNames())
}

func TestDownloadEnabled(t *testing.T) {
	yes, no := true, false
	cfg := Config{DownloadTestResults: true}

	assert.True(t, cfg.downloadEnabled(RemoteConfig{}))
	assert.True(t, cfg.downloadEnabled(RemoteConfig{DownloadTestResults: &yes}))
	assert.False(t, cfg.downloadEnabled(RemoteConfig{DownloadTestResults: &no}))

	cfg.DownloadTestResults = false
	assert.False(t, cfg.downloadEnabled(RemoteConfig{}))
	assert.True(t, cfg.downloadEnabled(RemoteConfig{DownloadTestResults: &yes}))
}

func TestCacheDirAndLocation(t *testing.T) {
	cfg := Config{TestResultsCache: "/default/cache"}

	assert.Equal(t, "/default/cache", cfg.cacheDir(RemoteConfig{}))
	assert.Equal(t, "/other", cfg.cacheDir(RemoteConfig{TestResultsCache: "/other"}))

	assert.Equal(t, ".", cfg.location(RemoteConfig{}))
	assert.Equal(t, "/repo", cfg.location(RemoteConfig{Location: "/repo"}))
}

func TestExpandPath(t *testing.T) {
	env := testEnv(map[string]string{"HOME": "/home/moose", "DATA": "/data"})

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", "/home/moose"},
		{"~/jobs", "/home/moose/jobs"},
		{"$DATA/jobs", "/data/jobs"},
		{"/absolute/path", "/absolute/path"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandPath(tt.in, env), tt.in)
	}
}
