package markdown

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/idaholab/civet-docs/reporting"
)

// Target selects the output flavor of the directive renderer
type Target int

const (
	TargetHTML Target = iota
	TargetLatex
)

// String implements fmt.Stringer
func (t Target) String() string {
	switch t {
	case TargetHTML:
		return "html"
	case TargetLatex:
		return "latex"
	default:
		return fmt.Sprintf("target(%d)", int(t))
	}
}

// htmlRenderer renders the civet directive nodes as HTML, delegating badge
// and table markup to the reporting formatters
type htmlRenderer struct {
	ext    *Extension
	badges *reporting.BadgeFormatter
	report *reporting.ReportFormatter

	// currentPage is the output page being rendered, relative to the
	// destination root. Report page links are computed relative to it.
	currentPage string
}

func newHTMLRenderer(ext *Extension) (*htmlRenderer, error) {
	badges, err := reporting.NewBadgeFormatter()
	if err != nil {
		return nil, err
	}
	report, err := reporting.NewReportFormatter()
	if err != nil {
		return nil, err
	}
	return &htmlRenderer{ext: ext, badges: badges, report: report}, nil
}

// RegisterFuncs implements renderer.NodeRenderer
func (r *htmlRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindResultsLink, r.renderResultsLink)
	reg.Register(KindMergeResults, r.renderMergeResults)
	reg.Register(KindBadgeGroup, r.renderBadgeGroup)
	reg.Register(KindReportTable, r.renderReportTable)
}

func (r *htmlRenderer) renderResultsLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ResultsLink)
	writeShaLink(w, n.URL, n.SHA)
	return ast.WalkContinue, nil
}

func (r *htmlRenderer) renderMergeResults(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*MergeResults)
	for i, link := range n.Links {
		if i > 0 {
			_, _ = w.WriteString("<br>\n")
		}
		writeShaLink(w, link.URL, link.SHA)
	}
	return ast.WalkContinue, nil
}

func (r *htmlRenderer) renderBadgeGroup(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*BadgeGroup)

	view := reporting.BuildBadgeGroup(r.ext.store, qualify(n.Prefix, n.Tests), r.reportHref)
	out, err := r.badges.Format(view)
	if err != nil {
		return ast.WalkStop, err
	}
	_, _ = w.WriteString(out)
	return ast.WalkContinue, nil
}

func (r *htmlRenderer) renderReportTable(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ReportTable)

	view := reporting.ReportView{}
	for _, test := range qualify(n.Prefix, n.Tests) {
		view.Tables = append(view.Tables, reporting.BuildReportTable(r.ext.store, test))
	}
	out, err := r.report.Format(view)
	if err != nil {
		return ast.WalkStop, err
	}
	_, _ = w.WriteString(out)
	return ast.WalkContinue, nil
}

// reportHref resolves a test name to the report page link for the page
// currently being rendered, or "" when no report page exists
func (r *htmlRenderer) reportHref(test string) string {
	if !r.ext.hasReports {
		return ""
	}
	base, ok := r.ext.pageNames[test]
	if !ok {
		return ""
	}
	target := path.Join(r.ext.reportsLoc, base+".html")
	rel, err := filepath.Rel(path.Dir(r.currentPage), target)
	if err != nil {
		return target
	}
	return filepath.ToSlash(rel)
}

// qualify applies the page prefix to bare test names
func qualify(prefix string, tests []string) []string {
	if prefix == "" {
		return tests
	}
	out := make([]string, 0, len(tests))
	for _, test := range tests {
		out = append(out, prefix+"."+test)
	}
	return out
}

func writeShaLink(w util.BufWriter, url, sha string) {
	label := sha
	if label == "" {
		label = "results unavailable"
	}
	if url == "" {
		_, _ = w.WriteString(`<span class="civet-link-missing">`)
		_, _ = w.Write(util.EscapeHTML([]byte(label)))
		_, _ = w.WriteString("</span>")
		return
	}
	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML([]byte(url)))
	_, _ = w.WriteString(`">`)
	_, _ = w.Write(util.EscapeHTML([]byte(label)))
	_, _ = w.WriteString("</a>")
}

// noopRenderer drops every civet node; used for output targets that have no
// badge or report representation
type noopRenderer struct{}

// RegisterFuncs implements renderer.NodeRenderer
func (r *noopRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	skip := func(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
		return ast.WalkContinue, nil
	}
	reg.Register(KindResultsLink, skip)
	reg.Register(KindMergeResults, skip)
	reg.Register(KindBadgeGroup, skip)
	reg.Register(KindReportTable, skip)
}
