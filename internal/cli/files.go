package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List uploaded files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := apiClient.ListFiles(cmd.Context())
		if err != nil {
			return fmt.Errorf("list files: %w", err)
		}
		if len(files) == 0 {
			fmt.Println("No uploads found")
			return nil
		}

		fmt.Printf("%-38s %-30s %-10s %s\n", "FILE ID", "FILENAME", "QUESTIONS", "UPLOADED")
		for _, f := range files {
			uploaded := time.Unix(int64(f.UploadTime), 0).Format("2006-01-02 15:04")
			fmt.Printf("%-38s %-30s %-10d %s\n", f.FileID, f.Filename, f.QuestionCount, uploaded)
		}
		return nil
	},
}
