package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sgoyal/qbank-go/internal/client"
)

var (
	questionsFile       string
	questionsType       string
	questionsDifficulty string
	questionsTopic      string
	questionsLimit      int
	questionsSkip       int
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Review and persist generated questions",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted questions",
	Long: `List questions stored in the database.

Examples:
  qbank questions list --file 3f1a...     # Questions for one upload
  qbank questions list --type mcq         # Only multiple choice
  qbank questions list --topic history    # Topic substring match`,
	Args: cobra.NoArgs,
	RunE: runQuestionsList,
}

var questionsSaveCmd = &cobra.Command{
	Use:   "save <file-id>",
	Short: "Persist the generated questions of a file",
	Long: `Fetch the generated questions artifact for a file and persist it to
the database, making the questions available for listing and editing.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuestionsSave,
}

func init() {
	questionsListCmd.Flags().StringVar(&questionsFile, "file", "", "filter by file ID")
	questionsListCmd.Flags().StringVar(&questionsType, "type", "", "filter by question type (mcq, fill_in_blank, true_false)")
	questionsListCmd.Flags().StringVar(&questionsDifficulty, "difficulty", "", "filter by difficulty (easy, medium, hard)")
	questionsListCmd.Flags().StringVar(&questionsTopic, "topic", "", "filter by topic substring")
	questionsListCmd.Flags().IntVar(&questionsLimit, "limit", 50, "maximum questions to list")
	questionsListCmd.Flags().IntVar(&questionsSkip, "skip", 0, "questions to skip")

	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsSaveCmd)
}

func runQuestionsList(cmd *cobra.Command, args []string) error {
	questions, err := apiClient.ListQuestions(cmd.Context(), client.QuestionListOptions{
		FileID:     questionsFile,
		Type:       questionsType,
		Difficulty: questionsDifficulty,
		Topic:      questionsTopic,
		Skip:       questionsSkip,
		Limit:      questionsLimit,
	})
	if err != nil {
		return fmt.Errorf("list questions: %w", err)
	}
	if len(questions) == 0 {
		fmt.Println("No questions found")
		return nil
	}

	for _, q := range questions {
		fmt.Printf("#%d [%s/%s] %s\n", q.ID, q.Type, q.Difficulty, q.Question)
		for _, opt := range q.Options {
			fmt.Printf("    %s) %s\n", opt.Label, opt.Text)
		}
		fmt.Printf("    Answer: %s\n", q.CorrectAnswer)
		if q.Explanation != "" {
			fmt.Printf("    Why: %s\n", q.Explanation)
		}
		fmt.Println()
	}
	fmt.Printf("%d question(s)\n", len(questions))
	return nil
}

func runQuestionsSave(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	fileID := args[0]

	artifact, err := apiClient.GeneratedQuestions(ctx, fileID)
	if err != nil {
		return fmt.Errorf("fetch generated questions: %w", err)
	}
	if len(artifact.Questions) == 0 {
		return fmt.Errorf("no generated questions for %s", fileID)
	}

	saved, err := apiClient.SaveQuestions(ctx, fileID, artifact.Questions)
	if err != nil {
		return fmt.Errorf("save questions: %w", err)
	}
	fmt.Printf("Saved %d question(s) for %s\n", saved, fileID)
	return nil
}
