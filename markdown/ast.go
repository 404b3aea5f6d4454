package markdown

import (
	"github.com/yuin/goldmark/ast"
)

// ResultsLink links to the CIVET event page for a single commit. An empty
// URL means no remote was configured; renderers emit a placeholder instead
// of a link.
type ResultsLink struct {
	ast.BaseInline
	URL string
	SHA string
}

// KindResultsLink is the node kind of ResultsLink
var KindResultsLink = ast.NewNodeKind("CivetResultsLink")

func (n *ResultsLink) Kind() ast.NodeKind {
	return KindResultsLink
}

func (n *ResultsLink) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"URL": n.URL,
		"SHA": n.SHA,
	}, nil)
}

// ShaLink is one entry of a MergeResults node
type ShaLink struct {
	URL string
	SHA string
}

// MergeResults links to the CIVET event page of every merge commit on the
// stable branch
type MergeResults struct {
	ast.BaseInline
	Links []ShaLink
}

// KindMergeResults is the node kind of MergeResults
var KindMergeResults = ast.NewNodeKind("CivetMergeResults")

func (n *MergeResults) Kind() ast.NodeKind {
	return KindMergeResults
}

func (n *MergeResults) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// BadgeGroup renders per-status result count badges for a list of tests
type BadgeGroup struct {
	ast.BaseInline
	Prefix string
	Tests  []string
}

// KindBadgeGroup is the node kind of BadgeGroup
var KindBadgeGroup = ast.NewNodeKind("CivetBadgeGroup")

func (n *BadgeGroup) Kind() ast.NodeKind {
	return KindBadgeGroup
}

func (n *BadgeGroup) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Prefix": n.Prefix,
	}, nil)
}

// ReportTable renders the full job/recipe outcome table for a list of tests
type ReportTable struct {
	ast.BaseInline
	Prefix string
	Tests  []string
}

// KindReportTable is the node kind of ReportTable
var KindReportTable = ast.NewNodeKind("CivetReportTable")

func (n *ReportTable) Kind() ast.NodeKind {
	return KindReportTable
}

func (n *ReportTable) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Prefix": n.Prefix,
	}, nil)
}
