package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sgoyal/qbank-go/internal/progress"
)

var statusCmd = &cobra.Command{
	Use:   "status <file-id>",
	Short: "Show the processing status of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := apiClient.PipelineStatus(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("fetch status: %w", err)
		}

		fmt.Printf("File:     %s\n", snap.Filename)
		fmt.Printf("Status:   %s\n", snap.Status)
		fmt.Printf("Progress: %s (%.0f%%)\n", snap.Progress, progress.PercentFor(snap.Status, snap.Progress))
		if snap.Error != "" {
			fmt.Printf("Error:    %s\n", snap.Error)
		}
		return nil
	},
}
