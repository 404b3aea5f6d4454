// Package civetdocs builds a documentation site enriched with CIVET
// continuous-integration results: it collects per-test recipe outcomes from
// one or more CIVET remotes, generates a report page per test, and renders
// markdown sources containing !civet: directives to HTML.
package civetdocs

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"github.com/idaholab/civet-docs/civet"
	"github.com/idaholab/civet-docs/gitinfo"
	"github.com/idaholab/civet-docs/markdown"
	"github.com/idaholab/civet-docs/metrics"
	"github.com/idaholab/civet-docs/reporting"
	"github.com/idaholab/civet-docs/templates"
	"github.com/idaholab/civet-docs/types"
)

// Builder runs one documentation build: collect, generate, render
type Builder struct {
	cfg   Config
	log   *slog.Logger
	env   EnvFunc
	runID string

	store      types.Results
	pageNames  map[string]string
	hasReports bool
	generated  map[string]string // generated markdown pages, keyed by source-relative path
	git        markdown.GitInfo
}

// New creates a Builder for one build run
func New(cfg Config, log *slog.Logger, env EnvFunc) *Builder {
	if env == nil {
		env = os.Getenv
	}
	return &Builder{
		cfg:       cfg,
		log:       log,
		env:       env,
		runID:     uuid.NewString(),
		store:     make(types.Results),
		pageNames: make(map[string]string),
		generated: make(map[string]string),
	}
}

// HasTestReports reports whether report pages were generated in this build
func (b *Builder) HasTestReports() bool {
	return b.hasReports
}

// Run executes the build
func (b *Builder) Run(ctx context.Context) error {
	b.log.Info("starting build", "run_id", b.runID, "site", b.cfg.SiteDir, "dest", b.cfg.DestDir)

	if err := b.collectResults(ctx); err != nil {
		return err
	}
	b.generatePages()
	if err := b.buildSite(); err != nil {
		return err
	}

	if len(b.store) > 0 {
		fmt.Println(reporting.SummaryTable(b.store, "CIVET Results"))
	}
	metrics.Summarize(b.log)
	return nil
}

// collectResults populates the result store. It only runs when the current
// repository is on the configured stable branch with the configured author
// identity; anything else leaves the store empty, which in turn disables
// report generation.
func (b *Builder) collectResults(ctx context.Context) error {
	repo, err := gitinfo.Open(".")
	if err != nil {
		b.log.Info("no git repository found, skipping result collection", "err", err)
	} else {
		b.git = repo
	}

	if repo != nil && b.matchesRepository(repo) {
		start := time.Now()
		b.log.Info("collecting CIVET results")

		collector := civet.NewCollector(b.log, nil, b.cfg.MaxConcurrentFetches)
		for _, name := range b.cfg.RemoteNames() {
			remote := b.cfg.Remotes[name]
			b.log.Info("gathering CIVET results", "remote", name, "location", b.cfg.location(remote))

			var hashes []string
			if b.cfg.downloadEnabled(remote) {
				catRepo := repo
				if loc := b.cfg.location(remote); loc != "." {
					catRepo, err = gitinfo.Open(loc)
					if err != nil {
						return NewRuntimeError(fmt.Errorf("failed to open repository for remote %s: %w", name, err))
					}
				}
				hashes, err = catRepo.MergeSHAs(b.cfg.Branch, b.cfg.Author, b.cfg.MergeLimit)
				if err != nil {
					return NewRuntimeError(fmt.Errorf("failed to list merge commits for remote %s: %w", name, err))
				}
				if hashes == nil {
					hashes = []string{}
				}
			}

			res, err := collector.Collect(ctx, civet.CollectRequest{
				Remote:   name,
				URL:      remote.URL,
				Repo:     remote.Repo,
				CacheDir: b.cfg.cacheDir(remote),
				Hashes:   hashes,
			})
			if err != nil {
				return NewRuntimeError(fmt.Errorf("failed to collect results for remote %s: %w", name, err))
			}
			b.store.Merge(res)
		}
		b.log.Info("collecting CIVET results complete", "sec", time.Since(start).Seconds(), "tests", len(b.store))
	}

	if len(b.store) == 0 && b.cfg.GenerateTestReports {
		b.log.Info("test result reports are being disabled; they require results to exist and the configured branch and author to match the current repository",
			"branch", b.cfg.Branch, "author", b.cfg.Author)
		b.cfg.GenerateTestReports = false
	}
	b.hasReports = b.cfg.GenerateTestReports
	return nil
}

// matchesRepository checks the branch/author gate for result collection
func (b *Builder) matchesRepository(repo *gitinfo.Repo) bool {
	onBranch, err := repo.IsBranch(b.cfg.Branch)
	if err != nil {
		b.log.Info("failed to check current branch, skipping result collection", "err", err)
		return false
	}
	user, err := repo.UserName()
	if err != nil {
		b.log.Info("failed to read git user.name, skipping result collection", "err", err)
		return false
	}
	if !onBranch || user != b.cfg.Author {
		b.log.Info("repository does not match the configured branch and author, skipping result collection",
			"branch", b.cfg.Branch, "author", b.cfg.Author, "user", user)
		return false
	}
	return true
}

// generatePages creates the report index plus one page per test key. Keys
// are numbered in sorted order so page names are stable across builds.
func (b *Builder) generatePages() {
	if !b.hasReports {
		return
	}

	start := time.Now()
	b.log.Info("creating CIVET result pages")
	root := b.cfg.TestReportsLocation

	var index strings.Builder
	index.WriteString("# Test Results\n\n")

	for i, key := range b.store.Keys() {
		name := fmt.Sprintf("result_%d", i)
		b.pageNames[key] = name

		b.generated[path.Join(root, name+".md")] = fmt.Sprintf(
			"# Test Results: %s\n\n!civet:report tests=%q\n", key, key)
		index.WriteString(fmt.Sprintf("1. [%s](%s.html)\n", key, name))
	}
	b.generated[path.Join(root, "index.md")] = index.String()

	metrics.RecordPages(b.runID, len(b.pageNames)+1)
	b.log.Info("creating CIVET result pages complete", "sec", time.Since(start).Seconds(), "pages", len(b.pageNames)+1)
}

// buildSite renders every markdown page, on-disk and generated, into the
// destination directory
func (b *Builder) buildSite() error {
	ext, err := markdown.NewExtension(markdown.Options{
		Log:             b.log,
		Remotes:         b.remotes(),
		Branch:          b.cfg.Branch,
		Author:          b.cfg.Author,
		MergeLimit:      b.cfg.MergeLimit,
		Store:           b.store,
		PageNames:       b.pageNames,
		ReportsLocation: b.cfg.TestReportsLocation,
		HasReports:      b.hasReports,
		Git:             b.git,
		Target:          markdown.TargetHTML,
	})
	if err != nil {
		return NewRuntimeError(err)
	}
	md := goldmark.New(goldmark.WithExtensions(ext))

	pageFmt, err := reporting.NewPageFormatter()
	if err != nil {
		return NewRuntimeError(err)
	}

	pages, err := b.sourcePages()
	if err != nil {
		return NewRuntimeError(err)
	}
	for rel, content := range b.generated {
		pages[rel] = content
	}

	if err := b.writeAsset("css/civet.css", templates.CSS); err != nil {
		return NewRuntimeError(err)
	}

	rels := make([]string, 0, len(pages))
	for rel := range pages {
		rels = append(rels, rel)
	}
	sort.Strings(rels)

	start := time.Now()
	for _, rel := range rels {
		outRel := strings.TrimSuffix(rel, ".md") + ".html"
		ext.SetCurrentPage(outRel)

		var body bytes.Buffer
		if err := md.Convert([]byte(pages[rel]), &body); err != nil {
			return NewRuntimeError(fmt.Errorf("failed to render %s: %w", rel, err))
		}

		cssHref, err := filepath.Rel(path.Dir(outRel), "css/civet.css")
		if err != nil {
			cssHref = "css/civet.css"
		}
		out, err := pageFmt.Format(reporting.PageView{
			Title:   pageTitle(rel, pages[rel]),
			CSSHref: filepath.ToSlash(cssHref),
			Content: template.HTML(body.String()),
		})
		if err != nil {
			return NewRuntimeError(fmt.Errorf("failed to render %s: %w", rel, err))
		}

		dest := filepath.Join(b.cfg.DestDir, filepath.FromSlash(outRel))
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return NewRuntimeError(fmt.Errorf("failed to create output directory: %w", err))
		}
		if err := os.WriteFile(dest, []byte(out), 0644); err != nil {
			return NewRuntimeError(fmt.Errorf("failed to write %s: %w", dest, err))
		}
	}
	b.log.Info("site build complete", "sec", time.Since(start).Seconds(), "pages", len(rels))

	return nil
}

// sourcePages reads every .md file under the site directory, keyed by
// slash-separated relative path. A missing site directory yields no pages.
func (b *Builder) sourcePages() (map[string]string, error) {
	pages := make(map[string]string)

	err := filepath.WalkDir(b.cfg.SiteDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(p) != ".md" {
			return nil
		}
		rel, err := filepath.Rel(b.cfg.SiteDir, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		pages[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if os.IsNotExist(err) {
		return pages, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read site directory %s: %w", b.cfg.SiteDir, err)
	}
	return pages, nil
}

func (b *Builder) writeAsset(rel string, data []byte) error {
	dest := filepath.Join(b.cfg.DestDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create asset directory: %w", err)
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return fmt.Errorf("failed to write asset %s: %w", dest, err)
	}
	return nil
}

// remotes returns the configured categories in collection order
func (b *Builder) remotes() []markdown.Remote {
	var out []markdown.Remote
	for _, name := range b.cfg.RemoteNames() {
		remote := b.cfg.Remotes[name]
		out = append(out, markdown.Remote{Name: name, URL: remote.URL, Repo: remote.Repo})
	}
	return out
}

// pageTitle extracts the first level-one heading, falling back to the file
// basename
func pageTitle(rel, content string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	base := path.Base(rel)
	return strings.TrimSuffix(base, path.Ext(base))
}
