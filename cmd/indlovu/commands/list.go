package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yukhold/indlovu/internal/catalog"
	"github.com/yukhold/indlovu/internal/config"
)

// NewListCommand creates the list command group for inspecting the remote
// resource hierarchy by hand.
func NewListCommand() *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Inspect report requests, reports, and instances",
	}

	listCmd.AddCommand(newListRequestsCommand())
	listCmd.AddCommand(newListReportsCommand())
	listCmd.AddCommand(newListInstancesCommand())

	return listCmd
}

func newListRequestsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "requests",
		Short: "List all analytics report requests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printHeader(out, "Analytics Report Requests")

			requests, err := client.ListReportRequests(cmd.Context())
			if err != nil {
				return err
			}

			if len(requests) == 0 {
				fmt.Fprintln(out, "No report requests found.")
				fmt.Fprintln(out, "Create one with: indlovu request create")

				return nil
			}

			for _, request := range requests {
				fmt.Fprintf(out, "  ID: %s\n", request.ID)
				fmt.Fprintf(out, "    Access Type: %s\n", request.AccessType)
				fmt.Fprintf(out, "    Stale: %t\n\n", request.Stale)
			}

			return nil
		},
	}
}

func newListReportsCommand() *cobra.Command {
	var requestID, category string

	reportsCmd := &cobra.Command{
		Use:   "reports",
		Short: "List reports available under a report request",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if requestID == "" {
				requestID = cfg.RequestID
			}

			if requestID == "" {
				return config.ErrMissingRequestID
			}

			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printHeader(out, "Reports for Request: "+requestID)

			reports, err := client.ListReports(cmd.Context(), requestID, category)
			if err != nil {
				return err
			}

			if len(reports) == 0 {
				fmt.Fprintln(out, "No reports available.")

				return nil
			}

			for _, report := range reports {
				fmt.Fprintf(out, "  ID: %s\n", report.ID)
				fmt.Fprintf(out, "    Name: %s\n", report.Name)
				fmt.Fprintf(out, "    Category: %s\n\n", report.Category)
			}

			return nil
		},
	}

	reportsCmd.Flags().StringVar(&requestID, "request-id", "", "analytics report request ID (defaults to ANALYTICS_REQUEST_ID)")
	reportsCmd.Flags().StringVar(&category, "category", "", "filter reports by category (e.g. APP_USAGE, COMMERCE)")

	return reportsCmd
}

func newListInstancesCommand() *cobra.Command {
	var reportID, granularity string

	instancesCmd := &cobra.Command{
		Use:   "instances",
		Short: "List instances of a report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsedGranularity, err := parseGranularity(granularity)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printHeader(out, "Instances for Report: "+reportID)

			instances, err := client.ListInstances(cmd.Context(), reportID, parsedGranularity)
			if err != nil {
				return err
			}

			if len(instances) == 0 {
				fmt.Fprintln(out, "No instances available.")

				return nil
			}

			for _, instance := range instances {
				fmt.Fprintf(out, "  ID: %s\n", instance.ID)
				fmt.Fprintf(out, "    Granularity: %s\n", instance.Granularity)
				fmt.Fprintf(out, "    Processing Date: %s\n\n", instance.ProcessingDate)
			}

			return nil
		},
	}

	instancesCmd.Flags().StringVar(&reportID, "report-id", "", "analytics report ID")
	instancesCmd.Flags().StringVar(&granularity, "granularity", "", "filter instances by granularity (DAILY, WEEKLY, MONTHLY)")
	_ = instancesCmd.MarkFlagRequired("report-id")

	return instancesCmd
}

// parseGranularity validates an optional granularity flag value.
func parseGranularity(value string) (catalog.Granularity, error) {
	switch catalog.Granularity(value) {
	case "", catalog.Daily, catalog.Weekly, catalog.Monthly:
		return catalog.Granularity(value), nil
	default:
		return "", fmt.Errorf("invalid granularity %q: must be DAILY, WEEKLY, or MONTHLY", value)
	}
}
