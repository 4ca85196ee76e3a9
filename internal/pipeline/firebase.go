package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/yukhold/indlovu/internal/warehouse"
)

// SyncWarehouse runs the static secondary analytics report table and
// materializes each result as a tab-delimited file in destDir. Cells are
// isolated exactly like App Store cells: a failing query is recorded and
// the stage continues. Warehouse exports carry the sentinel date range;
// their rows are aggregates, not dated report lines.
func SyncWarehouse(ctx context.Context, source *warehouse.Source, destDir string, logger *slog.Logger, out io.Writer) []Outcome {
	outcomes := make([]Outcome, 0, len(warehouse.Reports))

	for _, report := range warehouse.Reports {
		fmt.Fprintf(out, "Downloading: %s...\n", report.Description)

		outcome := syncWarehouseCell(ctx, source, report, destDir)
		outcomes = append(outcomes, outcome)

		switch outcome.State {
		case StateSucceeded:
			fmt.Fprintf(out, "  Saved: %s\n", outcome.Filename)
		case StateNoData:
			fmt.Fprintln(out, "  No data available")
		case StateFailed:
			fmt.Fprintf(out, "  Error: %s\n", outcome.Reason)
			logger.Warn("warehouse report failed", "file", outcome.Filename, "reason", outcome.Reason)
		}
	}

	succeeded := 0
	for _, outcome := range outcomes {
		if outcome.Succeeded() {
			succeeded++
		}
	}

	fmt.Fprintf(out, "\nDownloaded %d Firebase reports\n", succeeded)

	return outcomes
}

func syncWarehouseCell(ctx context.Context, source *warehouse.Source, report warehouse.Report, destDir string) Outcome {
	outcome := Outcome{
		Filename: report.Filename,
		Source:   SourceFirebase,
		Oldest:   dateUnknown,
		Newest:   dateUnknown,
	}

	result, err := source.Run(ctx, report)
	if err != nil {
		return failed(outcome, err)
	}

	path, err := warehouse.WriteTSV(result, destDir, report.Filename)
	if errors.Is(err, warehouse.ErrNoData) {
		outcome.State = StateNoData

		return outcome
	}

	if err != nil {
		return failed(outcome, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return failed(outcome, err)
	}

	outcome.State = StateSucceeded
	outcome.LocalPath = path
	outcome.SizeBytes = info.Size()
	outcome.CompletedAt = time.Now()

	return outcome
}
