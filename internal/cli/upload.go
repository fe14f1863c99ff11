package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var uploadProcess bool

var uploadCmd = &cobra.Command{
	Use:   "upload <file.pdf>",
	Short: "Upload a PDF to the server",
	Long: `Upload a PDF document to the qbank server.

Examples:
  qbank upload lecture.pdf            # Upload only
  qbank upload lecture.pdf --process  # Upload, then process and watch`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().BoolVar(&uploadProcess, "process", false, "start the pipeline after uploading and watch its progress")
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	result, err := apiClient.Upload(ctx, args[0])
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	fmt.Printf("Uploaded %s\n", result.Filename)
	fmt.Printf("File ID: %s\n", result.FileID)

	if !uploadProcess {
		fmt.Printf("Run 'qbank process %s' to generate questions.\n", result.FileID)
		return nil
	}
	return watchPipeline(ctx, result.FileID)
}
