package main

import (
	"fmt"

	"github.com/docker/go-units"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/framepack/framepack/internal/application"
)

// summaryTable renders the per-folder breakdown of a run.
func summaryTable(report *application.RunReport) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Folder", "Files", "Size"})

	for _, bin := range report.Bins {
		tw.AppendRow(table.Row{bin.Index, bin.Files, units.BytesSize(float64(bin.Bytes))})
	}
	tw.AppendFooter(table.Row{"Total", report.TotalFiles, units.BytesSize(float64(report.TotalBytes))})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft, AlignFooter: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

// summaryLine renders the closing one-liner, including the seed needed to
// replay the exact layout.
func summaryLine(report *application.RunReport) string {
	verb := "Copied"
	if report.DryRun {
		verb = "Planned"
	}
	return fmt.Sprintf("%s %d photos into %d folders under %s (seed %d, run %s)",
		verb, report.TotalFiles, len(report.Bins), report.Destination, report.Seed, report.RunID)
}
