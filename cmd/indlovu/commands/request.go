package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yukhold/indlovu/internal/appstore"
	"github.com/yukhold/indlovu/internal/config"
)

// NewRequestCommand creates the request command group.
func NewRequestCommand() *cobra.Command {
	requestCmd := &cobra.Command{
		Use:   "request",
		Short: "Manage analytics report requests",
	}

	requestCmd.AddCommand(newRequestCreateCommand())

	return requestCmd
}

func newRequestCreateCommand() *cobra.Command {
	var accessType string

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new analytics report request",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if accessType != appstore.AccessOneTimeSnapshot && accessType != appstore.AccessOngoing {
				return fmt.Errorf("invalid access type %q: must be %s or %s",
					accessType, appstore.AccessOneTimeSnapshot, appstore.AccessOngoing)
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
			printHeader(out, "Creating Report Request")

			requestID, err := client.CreateReportRequest(cmd.Context(), accessType)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Created report request: %s\n", requestID)
			fmt.Fprintf(out, "Access type: %s\n\n", accessType)
			fmt.Fprintln(out, "Add this to your .env file:")
			fmt.Fprintf(out, "ANALYTICS_REQUEST_ID=%s\n", requestID)

			return nil
		},
	}

	createCmd.Flags().StringVar(&accessType, "access-type", appstore.AccessOneTimeSnapshot,
		"access type for the new request (ONE_TIME_SNAPSHOT or ONGOING)")

	return createCmd
}
