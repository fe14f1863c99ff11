package pipeline

import (
	"encoding/json"
	"os"

	"github.com/sgoyal/qbank-go/internal/models"
)

// writeArtifact persists the questions JSON atomically: write to a temp
// file next to the target, then rename over it, so concurrent readers
// never see a half-written document.
func writeArtifact(path string, questions []models.Question) error {
	data, err := json.MarshalIndent(models.GeneratedQuestions{Questions: questions}, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ReadArtifact loads a previously written questions artifact.
func ReadArtifact(path string) (*models.GeneratedQuestions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var payload models.GeneratedQuestions
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
