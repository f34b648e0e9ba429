package main

import (
	"strings"
	"testing"

	"github.com/framepack/framepack/internal/application"
)

func sampleReport() *application.RunReport {
	return &application.RunReport{
		RunID:       "0c9d6f2e-0000-0000-0000-000000000000",
		Seed:        42,
		Source:      "/photos",
		Destination: "/display",
		Bins: []application.BinSummary{
			{Index: 1, Files: 1200, Bytes: 4 << 30},
			{Index: 2, Files: 100, Bytes: 200 << 20},
		},
		TotalFiles: 1300,
		TotalBytes: 4<<30 + 200<<20,
	}
}

func TestSummaryTable(t *testing.T) {
	t.Parallel()

	out := summaryTable(sampleReport())
	for _, want := range []string{"Folder", "Files", "Size", "4GiB", "200MiB", "Total"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary table missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryLine(t *testing.T) {
	t.Parallel()

	report := sampleReport()
	line := summaryLine(report)
	for _, want := range []string{"Copied 1300 photos", "2 folders", "/display", "seed 42", report.RunID} {
		if !strings.Contains(line, want) {
			t.Fatalf("summary line missing %q: %s", want, line)
		}
	}

	report.DryRun = true
	if !strings.HasPrefix(summaryLine(report), "Planned") {
		t.Fatalf("dry-run summary should start with Planned: %s", summaryLine(report))
	}
}
