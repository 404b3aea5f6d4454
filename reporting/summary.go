package reporting

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/idaholab/civet-docs/types"
)

// SummaryTable renders the collected result store as a text table, one row
// per test with its per-status counts. Used for the post-build console
// summary.
func SummaryTable(res types.Results, title string) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)

	header := table.Row{"Test", "Jobs"}
	for _, status := range types.KnownStatuses {
		header = append(header, string(status))
	}
	t.AppendHeader(header)

	totals := make(types.StatusCounts)
	var totalJobs int
	for _, key := range res.Keys() {
		counts := res.CountStatuses(key)
		row := table.Row{key, len(res[key])}
		for _, status := range types.KnownStatuses {
			row = append(row, counts[status])
			totals[status] += counts[status]
		}
		totalJobs += len(res[key])
		t.AppendRow(row)
	}

	footer := table.Row{"Total", totalJobs}
	for _, status := range types.KnownStatuses {
		footer = append(footer, totals[status])
	}
	t.AppendFooter(footer)

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
	})

	return t.Render()
}
