// Package markdown plugs CIVET result directives into the goldmark
// pipeline. Directives take the form
//
//	!civet:results [remote=... url=... repo=...]
//	!civet:mergeresults [remote=... url=... repo=...]
//	!civet:badges tests="suite.a suite.b" [prefix=...]
//	!civet:report tests="suite.a" [prefix=...]
//
// and occupy the remainder of their line. Parsing resolves git and remote
// information into self-contained AST nodes; rendering consults the result
// store only.
package markdown

import (
	"fmt"
	"log/slog"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/idaholab/civet-docs/types"
)

// Remote is one configured CIVET category. The first remote acts as the
// default for directives without an explicit remote= setting.
type Remote struct {
	Name string
	URL  string
	Repo string
}

// GitInfo is the repository surface the directives need. It is an interface
// so tests can stub commit hashes without a real repository.
type GitInfo interface {
	HeadSHA() (string, error)
	MergeSHAs(branch, author string, limit int) ([]string, error)
}

// Extension wires the civet directives into a goldmark.Markdown instance
type Extension struct {
	log *slog.Logger

	remotes    []Remote
	branch     string
	author     string
	mergeLimit int

	store      types.Results
	pageNames  map[string]string // test key -> report page basename
	reportsLoc string
	hasReports bool

	git GitInfo // nil when the repository checks failed

	target   Target
	renderer *htmlRenderer
}

// Options configures a new Extension
type Options struct {
	Log        *slog.Logger
	Remotes    []Remote
	Branch     string
	Author     string
	MergeLimit int

	Store           types.Results
	PageNames       map[string]string
	ReportsLocation string
	HasReports      bool

	Git    GitInfo
	Target Target
}

// NewExtension creates the directive extension
func NewExtension(opts Options) (*Extension, error) {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Store == nil {
		opts.Store = make(types.Results)
	}
	if opts.PageNames == nil {
		opts.PageNames = make(map[string]string)
	}
	if opts.MergeLimit <= 0 {
		opts.MergeLimit = 10
	}

	e := &Extension{
		log:        opts.Log,
		remotes:    opts.Remotes,
		branch:     opts.Branch,
		author:     opts.Author,
		mergeLimit: opts.MergeLimit,
		store:      opts.Store,
		pageNames:  opts.PageNames,
		reportsLoc: opts.ReportsLocation,
		hasReports: opts.HasReports,
		git:        opts.Git,
		target:     opts.Target,
	}

	if opts.Target == TargetHTML {
		r, err := newHTMLRenderer(e)
		if err != nil {
			return nil, fmt.Errorf("failed to create directive renderer: %w", err)
		}
		e.renderer = r
	}

	return e, nil
}

// Extend implements goldmark.Extender
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&directiveParser{ext: e}, 100),
	))

	var nr renderer.NodeRenderer
	switch e.target {
	case TargetHTML:
		nr = e.renderer
	default:
		nr = &noopRenderer{}
	}
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(nr, 100),
	))
}

// SetCurrentPage tells the renderer which output page is being produced,
// as a slash-separated path relative to the destination root. Report page
// links are computed relative to it.
func (e *Extension) SetCurrentPage(rel string) {
	if e.renderer != nil {
		e.renderer.currentPage = rel
	}
}

// civetInfo resolves the site URL and repository slug for a directive:
// explicit url=/repo= settings win, then the remote= category, then the
// first configured category. Both come back empty when nothing is
// configured, and renderers degrade to a placeholder.
func (e *Extension) civetInfo(settings map[string]string) (url, repo string) {
	if len(e.remotes) > 0 {
		category := e.remotes[0]
		if name := settings["remote"]; name != "" {
			found := false
			for _, r := range e.remotes {
				if r.Name == name {
					category = r
					found = true
					break
				}
			}
			if !found {
				e.log.Warn("unknown remote category", "remote", name)
			}
		}
		url = settingOr(settings, "url", category.URL)
		repo = settingOr(settings, "repo", category.Repo)
		return url, repo
	}
	return settings["url"], settings["repo"]
}
