package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/yukhold/indlovu/internal/config"
	"github.com/yukhold/indlovu/internal/pipeline"
	"github.com/yukhold/indlovu/internal/publish"
	"github.com/yukhold/indlovu/internal/tabstore"
	"github.com/yukhold/indlovu/internal/warehouse"
)

// runDateFormat names the per-run output directory and the summary file.
const runDateFormat = "2006-01-02"

// NewSyncCommand creates the sync command: the full download, summarize,
// publish pipeline. Designed to run unattended from cron.
func NewSyncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run the full synchronization pipeline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if err := cfg.ValidateSync(); err != nil {
				return err
			}

			return runSync(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
}

func runSync(ctx context.Context, cfg *config.Config, out io.Writer) error {
	logger := newLogger(cfg)
	start := time.Now()
	dateStr := start.Format(runDateFormat)
	destDir := filepath.Join(cfg.ReportsDir, dateStr)

	printHeader(out, "Weekly App Store Analytics Sync")
	fmt.Fprintf(out, "Started: %s\n", start.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Output: %s\n", destDir)

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	report := pipeline.NewRunReport(cfg.AppName)

	printHeader(out, "Downloading Reports")

	runner := pipeline.NewRunner(client, cfg.RequestID, logger, out)

	outcomes, err := runner.SyncReports(ctx, destDir)
	if err != nil {
		return err
	}

	report.Append(outcomes...)

	printHeader(out, "Downloading Firebase Analytics")
	report.Append(syncWarehouse(ctx, cfg, destDir, logger, out)...)

	report.Finish()

	printHeader(out, "Creating Summary")

	summaryPath, err := report.WriteSummary(destDir, dateStr)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Created: %s\n", summaryPath)

	printHeader(out, "Uploading to Tabular Store")
	publishRun(ctx, cfg, report, logger, out)

	printHeader(out, "Sync Complete")
	fmt.Fprintf(out, "Duration: %.0f seconds\n", time.Since(start).Seconds())
	fmt.Fprintf(out, "Files: %d\n", len(report.Succeeded()))
	fmt.Fprintf(out, "Output: %s\n", destDir)

	return nil
}

// syncWarehouse runs the secondary analytics stage. A missing or unreachable
// warehouse skips the stage; it never fails the run.
func syncWarehouse(ctx context.Context, cfg *config.Config, destDir string, logger *slog.Logger, out io.Writer) []pipeline.Outcome {
	if cfg.WarehouseDSN == "" {
		fmt.Fprintln(out, "Skipping Firebase: WAREHOUSE_DSN is not set")

		return nil
	}

	querier, err := warehouse.ConnectPostgres(ctx, cfg.WarehouseDSN)
	if err != nil {
		fmt.Fprintf(out, "Skipping Firebase: %s\n", err)
		logger.Warn("warehouse unavailable", "reason", err.Error())

		return nil
	}
	defer querier.Close(ctx)

	source := warehouse.NewSource(querier, cfg.WarehouseDays)

	return pipeline.SyncWarehouse(ctx, source, destDir, logger, out)
}

// publishRun uploads the run's files. A missing store configuration skips
// the stage; it never fails the run.
func publishRun(ctx context.Context, cfg *config.Config, report *pipeline.RunReport, logger *slog.Logger, out io.Writer) {
	if cfg.StoreDBPath == "" {
		fmt.Fprintln(out, "Skipping upload: STORE_DB_PATH is not set")

		return
	}

	store, err := tabstore.OpenSQLite(cfg.StoreDBPath)
	if err != nil {
		fmt.Fprintf(out, "Skipping upload: %s\n", err)
		logger.Warn("tabular store unavailable", "reason", err.Error())

		return
	}
	defer store.Close()

	publisher := publish.NewPublisher(store, logger, out)
	uploaded := publisher.Publish(ctx, report.Outcomes)

	fmt.Fprintf(out, "\nUploaded %d files\n", uploaded)
}
