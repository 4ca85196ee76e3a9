package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/yukhold/indlovu/internal/appstore"
	"github.com/yukhold/indlovu/internal/catalog"
	"github.com/yukhold/indlovu/pkg/sizefmt"
)

// completedAtFormat is how the run summary displays completion times.
const completedAtFormat = "15:04"

// ResourceClient is the slice of the analytics client the runner needs.
// *appstore.Client satisfies it.
type ResourceClient interface {
	ListInstances(ctx context.Context, reportID string, granularity catalog.Granularity) ([]appstore.Instance, error)
	ListSegments(ctx context.Context, instanceID string) ([]appstore.Segment, error)
	DownloadSegment(ctx context.Context, segment appstore.Segment, destPath string) (string, error)
}

// SelectLatestInstance picks the instance to download from a server-ordered
// result set: the first one returned. The analytics API returns instances
// newest first; no client-side sorting by recency happens, so a server that
// reorders its results changes what gets downloaded.
func SelectLatestInstance(instances []appstore.Instance) (appstore.Instance, bool) {
	if len(instances) == 0 {
		return appstore.Instance{}, false
	}

	return instances[0], true
}

// Runner walks the report catalog and materializes one file per cell.
type Runner struct {
	client    ResourceClient
	requestID string
	logger    *slog.Logger
	out       io.Writer
}

// NewRunner builds a Runner. Progress lines go to out; diagnostics go to
// the logger.
func NewRunner(client ResourceClient, requestID string, logger *slog.Logger, out io.Writer) *Runner {
	return &Runner{client: client, requestID: requestID, logger: logger, out: out}
}

// SyncReports traverses catalog order × declared granularity order and
// returns exactly one outcome per cell. No error from one cell ever aborts
// the traversal: anything that goes wrong inside a cell is captured on its
// outcome and the loop moves on.
func (r *Runner) SyncReports(ctx context.Context, destDir string) ([]Outcome, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	outcomes := make([]Outcome, 0, catalog.CellCount())

	for _, def := range catalog.Definitions {
		reportID := def.ReportID(r.requestID)

		for _, granularity := range def.Granularities {
			filename := def.Filename(granularity)
			fmt.Fprintf(r.out, "Downloading: %s...\n", filename)

			outcome := r.syncCell(ctx, reportID, granularity, destDir, filename)
			outcomes = append(outcomes, outcome)

			r.report(outcome)
		}
	}

	succeeded := 0
	for _, outcome := range outcomes {
		if outcome.Succeeded() {
			succeeded++
		}
	}

	fmt.Fprintf(r.out, "\nDownloaded %d files\n", succeeded)

	return outcomes, nil
}

// syncCell runs one cell to its terminal state. This is the failure
// isolation boundary: every error ends up on the returned outcome.
func (r *Runner) syncCell(ctx context.Context, reportID string, granularity catalog.Granularity, destDir, filename string) Outcome {
	outcome := Outcome{
		Filename: filename,
		Source:   SourceAppStore,
		Oldest:   dateUnknown,
		Newest:   dateUnknown,
	}

	instances, err := r.client.ListInstances(ctx, reportID, granularity)
	if err != nil {
		return failed(outcome, err)
	}

	instance, ok := SelectLatestInstance(instances)
	if !ok {
		outcome.State = StateNoInstances

		return outcome
	}

	segments, err := r.client.ListSegments(ctx, instance.ID)
	if err != nil {
		return failed(outcome, err)
	}

	segment, ok := appstore.SelectPrimarySegment(segments)
	if !ok {
		outcome.State = StateNoSegments

		return outcome
	}

	path, err := r.client.DownloadSegment(ctx, segment, filepath.Join(destDir, filename))
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
	outcome.Oldest, outcome.Newest = appstore.DateRange(path)

	return outcome
}

func (r *Runner) report(outcome Outcome) {
	switch outcome.State {
	case StateSucceeded:
		fmt.Fprintf(r.out, "  Saved: %s (%s)\n", outcome.Filename, sizefmt.Bytes(outcome.SizeBytes))
	case StateNoInstances:
		fmt.Fprintln(r.out, "  No instances available")
	case StateNoSegments:
		fmt.Fprintln(r.out, "  No segments available")
	case StateFailed:
		fmt.Fprintf(r.out, "  Error: %s\n", outcome.Reason)
		r.logger.Warn("cell failed", "file", outcome.Filename, "reason", outcome.Reason)
	}
}

func failed(outcome Outcome, err error) Outcome {
	outcome.State = StateFailed
	outcome.Reason = err.Error()

	return outcome
}
