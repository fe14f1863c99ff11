package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sgoyal/qbank-go/internal/progress"
)

var processCmd = &cobra.Command{
	Use:   "process <file-id>",
	Short: "Run the question pipeline for an uploaded file",
	Long: `Start the extract-and-generate pipeline for an uploaded file and
watch its progress until questions are ready.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchPipeline(cmd.Context(), args[0])
	},
}

// watchPipeline starts the pipeline and renders reconciled progress until a
// terminal state.
func watchPipeline(ctx context.Context, fileID string) error {
	poller := progress.NewPoller(apiClient, progress.DefaultInterval)
	updates, err := poller.Watch(ctx, fileID)
	if err != nil {
		return err
	}

	var last progress.Update
	for update := range updates {
		last = update
		renderUpdate(update)
	}

	fmt.Println()
	if last.Err != "" {
		return fmt.Errorf("pipeline failed: %s", last.Err)
	}
	if last.Terminal {
		fmt.Printf("Questions ready. Run 'qbank questions list --file %s' to review them.\n", fileID)
		return nil
	}
	return ctx.Err()
}

func renderUpdate(u progress.Update) {
	var checks []string
	for _, m := range u.Milestones {
		mark := " "
		if m.Done {
			mark = "x"
		}
		checks = append(checks, fmt.Sprintf("[%s] %s", mark, m.Name))
	}

	line := fmt.Sprintf("\r%3.0f%%  %s  %s", u.Percent, strings.Join(checks, " "), u.Message)
	if u.QuestionCount > 0 {
		line += fmt.Sprintf("  (%d questions so far)", u.QuestionCount)
	}
	// Pad to clear leftovers from a longer previous line.
	fmt.Printf("%-100s", line)
}
