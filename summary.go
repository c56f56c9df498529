package main

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/chaos-io/bgclear/batch"
)

// renderSummary prints the succeeded/failed counts and, when anything
// failed, one row per failed image with its reason.
func renderSummary(report *batch.Report) string {
	counts := table.NewWriter()
	counts.SetStyle(table.StyleRounded)
	counts.AppendHeader(table.Row{"Run", "Total", "Succeeded", "Failed", "Elapsed"})
	counts.AppendRow(table.Row{
		report.RunID.String(),
		report.Total,
		report.Succeeded(),
		report.FailedCount(),
		report.Elapsed.Round(time.Millisecond).String(),
	})
	counts.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	var b strings.Builder
	b.WriteString(counts.Render())

	failed := report.Failed()
	if len(failed) == 0 {
		return b.String()
	}

	failures := table.NewWriter()
	failures.SetStyle(table.StyleRounded)
	failures.AppendHeader(table.Row{"#", "File", "Reason"})
	for i, o := range failed {
		failures.AppendRow(table.Row{strconv.Itoa(i + 1), filepath.Base(o.Path), o.Err.Error()})
	}
	failures.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, WidthMax: 80},
	})

	b.WriteString("\n")
	b.WriteString(failures.Render())
	return b.String()
}
