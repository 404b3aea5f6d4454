package civetdocs

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvFunc supplies environment variables to configuration defaults and path
// expansion. Injecting it keeps logic free of ad-hoc os.Getenv calls and
// makes defaults testable.
type EnvFunc func(key string) string

// RemoteConfig is one CIVET category to pull results from. Per-category
// fields override the top-level defaults.
type RemoteConfig struct {
	URL                 string `yaml:"url"`
	Repo                string `yaml:"repo"`
	Location            string `yaml:"location,omitempty"`
	DownloadTestResults *bool  `yaml:"download_test_results,omitempty"`
	TestResultsCache    string `yaml:"test_results_cache,omitempty"`
}

// Config holds the documentation build configuration
type Config struct {
	Remotes map[string]RemoteConfig `yaml:"remotes"`

	// Branch is the stable branch test results are extracted for
	Branch string `yaml:"branch"`
	// Author is the author of merge commits into the stable branch
	Author string `yaml:"author"`

	DownloadTestResults bool   `yaml:"download_test_results"`
	GenerateTestReports bool   `yaml:"generate_test_reports"`
	TestReportsLocation string `yaml:"test_reports_location"`
	TestResultsCache    string `yaml:"test_results_cache"`

	MergeLimit           int `yaml:"merge_limit"`
	MaxConcurrentFetches int `yaml:"max_concurrent_fetches"`

	// SiteDir is the markdown source tree; DestDir receives rendered HTML
	SiteDir string `yaml:"site_dir"`
	DestDir string `yaml:"dest_dir"`
}

// DefaultConfig returns the configuration defaults. env supplies HOME for
// the cache location.
func DefaultConfig(env EnvFunc) Config {
	return Config{
		Branch:               "master",
		Author:               "moosetest",
		DownloadTestResults:  true,
		GenerateTestReports:  true,
		TestReportsLocation:  "civet",
		TestResultsCache:     env("HOME") + "/.local/share/civet/jobs",
		MergeLimit:           10,
		MaxConcurrentFetches: 4,
		SiteDir:              "doc",
		DestDir:              "site",
	}
}

// LoadConfig reads a YAML configuration file on top of the defaults
func LoadConfig(path string, env EnvFunc) (Config, error) {
	cfg := DefaultConfig(env)

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.TestResultsCache = ExpandPath(cfg.TestResultsCache, env)
	for name, remote := range cfg.Remotes {
		remote.TestResultsCache = ExpandPath(remote.TestResultsCache, env)
		remote.Location = ExpandPath(remote.Location, env)
		cfg.Remotes[name] = remote
	}

	return cfg, nil
}

// RemoteNames returns the category names in sorted order; the first sorted
// name acts as the default category, and collection order follows it so
// overwrite semantics are deterministic.
func (c Config) RemoteNames() []string {
	names := make([]string, 0, len(c.Remotes))
	for name := range c.Remotes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// downloadEnabled resolves the per-category download switch against the
// top-level default
func (c Config) downloadEnabled(remote RemoteConfig) bool {
	if remote.DownloadTestResults != nil {
		return *remote.DownloadTestResults
	}
	return c.DownloadTestResults
}

// cacheDir resolves the per-category cache directory against the top-level
// default
func (c Config) cacheDir(remote RemoteConfig) string {
	if remote.TestResultsCache != "" {
		return remote.TestResultsCache
	}
	return c.TestResultsCache
}

// location resolves the working directory used for a category's git lookups
func (c Config) location(remote RemoteConfig) string {
	if remote.Location != "" {
		return remote.Location
	}
	return "."
}

// ExpandPath expands a leading "~" and $VAR references using the injected
// environment
func ExpandPath(p string, env EnvFunc) string {
	if p == "" {
		return p
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		p = env("HOME") + p[1:]
	}
	return os.Expand(p, env)
}
