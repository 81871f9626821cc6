package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check system health",
	Long:  `Verifies the metadata store is reachable and reports the vector index state.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if statusService == nil {
		if err := setupApp(cmd.Context(), appNeeds{}); err != nil {
			return err
		}
	}
	if statusService == nil {
		return errors.New("status service not configured")
	}

	health, err := statusService.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("checking status: %w", err)
	}

	verdict := "healthy"
	if !health.OK {
		verdict = "degraded"
	}

	cmd.Printf("System %s\n", verdict)
	cmd.Printf("  Database: %s\n", health.DB)
	cmd.Printf("  Index:    %s (%d vectors)\n", health.Index, health.Vectors)

	if !health.OK {
		return errors.New("system degraded")
	}
	return nil
}
