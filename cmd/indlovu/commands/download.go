package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yukhold/indlovu/internal/appstore"
	"github.com/yukhold/indlovu/internal/config"
	"github.com/yukhold/indlovu/internal/pipeline"
	"github.com/yukhold/indlovu/pkg/sizefmt"
)

// instanceFilenamePrefixLen is how much of the instance ID names the file.
const instanceFilenamePrefixLen = 8

// errInstanceIDRequired rejects a single-instance download without a target.
var errInstanceIDRequired = errors.New("--instance-id is required unless --all is set")

// NewDownloadCommand creates the download command: a single report instance
// by ID, or with --all the whole configured catalog. The catalog mode stops
// at the files; no summary is written and nothing is published.
func NewDownloadCommand() *cobra.Command {
	var (
		instanceID, outputDir string
		all                   bool
	)

	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download a report instance, or every configured report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if all {
				if err := cfg.ValidateSync(); err != nil {
					return err
				}
			} else if instanceID == "" {
				return errInstanceIDRequired
			}

			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if all {
				return runDownloadAll(cmd.Context(), cfg, client, outputDir, out)
			}

			return runDownloadInstance(cmd.Context(), client, instanceID, outputDir, out)
		},
	}

	downloadCmd.Flags().StringVar(&instanceID, "instance-id", "", "report instance ID")
	downloadCmd.Flags().StringVar(&outputDir, "output-dir", "reports", "output directory for downloads")
	downloadCmd.Flags().BoolVar(&all, "all", false, "download every configured report")

	return downloadCmd
}

// runDownloadInstance fetches one instance into outputDir.
func runDownloadInstance(ctx context.Context, client *appstore.Client, instanceID, outputDir string, out io.Writer) error {
	fmt.Fprintf(out, "Downloading instance: %s\n", instanceID)

	prefix := instanceID
	if len(prefix) > instanceFilenamePrefixLen {
		prefix = prefix[:instanceFilenamePrefixLen]
	}

	filename := fmt.Sprintf("report-%s.csv", prefix)

	path, err := client.DownloadInstance(ctx, instanceID, outputDir, filename)
	if errors.Is(err, appstore.ErrNoSegments) {
		fmt.Fprintln(out, "  No segments found for this instance.")

		return nil
	}

	if err != nil {
		return err
	}

	oldest, newest := appstore.DateRange(path)

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "  Saved to: %s (%s) [%s to %s]\n", path, sizefmt.Bytes(info.Size()), oldest, newest)

	return nil
}

// runDownloadAll walks the whole report catalog into outputDir.
func runDownloadAll(ctx context.Context, cfg *config.Config, client *appstore.Client, outputDir string, out io.Writer) error {
	printHeader(out, "Downloading All Reports")
	fmt.Fprintf(out, "Output directory: %s\n\n", outputDir)

	runner := pipeline.NewRunner(client, cfg.RequestID, newLogger(cfg), out)

	_, err := runner.SyncReports(ctx, outputDir)

	return err
}
