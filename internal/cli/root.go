// Package cli provides the command-line interface for qbank.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/sgoyal/qbank-go/internal/client"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	serverURL string

	// Shared API client, initialized before every command run.
	apiClient *client.Client
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "qbank",
	Short: "Generate quiz questions from PDF documents",
	Long: `QBank turns PDF documents into quiz questions.

Upload a PDF to a running qbank server, process it through the
extract-and-generate pipeline, then review and persist the generated
questions.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		apiClient = client.New(serverURL)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "qbank server URL (default $QBANK_SERVER_URL or http://localhost:8080)")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(questionsCmd)
}
