package reporting

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/idaholab/civet-docs/templates"
	"github.com/idaholab/civet-docs/types"
)

// Badge is one rendered count-label element summarizing results by status
type Badge struct {
	Status types.Status
	Count  int
}

// BadgeTestView is the badge set for a single test, plus the link target of
// its report page when one exists. An empty Href renders as a plain span.
type BadgeTestView struct {
	Name   string
	Href   string
	Failed bool
	Badges []Badge
}

// BadgeGroupView is the rendering input for one badges directive. Failed is
// the aggregate failure signal across the group's tests; the renderer applies
// it to the container it owns instead of reaching into ancestor markup.
type BadgeGroupView struct {
	Failed bool
	Tests  []BadgeTestView
}

// BuildBadges converts status counts into badges in vocabulary order and
// returns the explicit failure signal: true whenever OK is absent, which
// covers both all-non-OK results and no results at all.
func BuildBadges(counts types.StatusCounts) ([]Badge, bool) {
	var badges []Badge
	for _, status := range counts.Ordered() {
		badges = append(badges, Badge{Status: status, Count: counts[status]})
	}
	return badges, counts.HasFailure()
}

// BuildBadgeGroup assembles the rendering input for a list of tests. href
// resolves a test name to its report page link, returning "" when no report
// page exists.
func BuildBadgeGroup(res types.Results, tests []string, href func(test string) string) BadgeGroupView {
	view := BadgeGroupView{}
	for _, test := range tests {
		badges, failed := BuildBadges(res.CountStatuses(test))
		view.Tests = append(view.Tests, BadgeTestView{
			Name:   test,
			Href:   href(test),
			Failed: failed,
			Badges: badges,
		})
		if failed {
			view.Failed = true
		}
	}
	return view
}

// BadgeFormatter renders badge groups as HTML
type BadgeFormatter struct {
	tmpl *template.Template
}

// NewBadgeFormatter creates a badge formatter from the embedded template
func NewBadgeFormatter() (*BadgeFormatter, error) {
	tmpl, err := templates.Get("badges.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to create badge formatter: %w", err)
	}
	return &BadgeFormatter{tmpl: tmpl}, nil
}

// Format renders one badge group
func (f *BadgeFormatter) Format(view BadgeGroupView) (string, error) {
	var buf bytes.Buffer
	if err := f.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render badges: %w", err)
	}
	return buf.String(), nil
}
