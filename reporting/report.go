package reporting

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"

	"github.com/idaholab/civet-docs/templates"
	"github.com/idaholab/civet-docs/types"
)

// ReportRow is one recipe outcome in a report table
type ReportRow struct {
	Status  types.Status
	Job     types.JobID
	JobHref string
	Recipe  string
}

// ReportTableView is the table for a single test: one row per job per
// individual result record
type ReportTableView struct {
	Test string
	Rows []ReportRow
}

// ReportView is the rendering input for one report directive
type ReportView struct {
	Tables []ReportTableView
}

// BuildReportTable flattens a test's results into table rows. Jobs are
// ordered by id so the table is stable across builds; within a job the
// recipe order from the service is preserved.
func BuildReportTable(res types.Results, test string) ReportTableView {
	view := ReportTableView{Test: test}

	jobs := res[test]
	ids := make([]types.JobID, 0, len(jobs))
	for id := range jobs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		for _, item := range jobs[id] {
			view.Rows = append(view.Rows, ReportRow{
				Status:  item.Status,
				Job:     id,
				JobHref: fmt.Sprintf("%s/job/%d", item.URL, id),
				Recipe:  item.Recipe,
			})
		}
	}
	return view
}

// ReportFormatter renders report tables as HTML
type ReportFormatter struct {
	tmpl *template.Template
}

// NewReportFormatter creates a report formatter from the embedded template
func NewReportFormatter() (*ReportFormatter, error) {
	tmpl, err := templates.Get("report.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to create report formatter: %w", err)
	}
	return &ReportFormatter{tmpl: tmpl}, nil
}

// Format renders the tables for one report directive
func (f *ReportFormatter) Format(view ReportView) (string, error) {
	var buf bytes.Buffer
	if err := f.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}
