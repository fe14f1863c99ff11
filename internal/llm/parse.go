package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sgoyal/qbank-go/internal/models"
)

// ParseQuestionsResponse extracts the questions object from a raw model
// reply. Models frequently wrap the JSON in markdown fences or surround it
// with prose despite the prompt, so the parser strips fences, seeks the
// first opening brace, and balances braces to find where the object ends.
func ParseQuestionsResponse(response string) ([]models.Question, error) {
	cleaned := strings.TrimSpace(response)

	// Remove markdown code blocks if present.
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	// Skip any leading prose before the JSON object.
	if start := strings.Index(cleaned, "{"); start > 0 {
		cleaned = cleaned[start:]
	}

	// Balance braces to find where the main object actually ends; models
	// sometimes append trailing commentary.
	braceCount := 0
	jsonEnd := -1
	for i, ch := range cleaned {
		switch ch {
		case '{':
			braceCount++
		case '}':
			braceCount--
			if braceCount == 0 {
				jsonEnd = i
			}
		}
		if jsonEnd != -1 {
			break
		}
	}
	if jsonEnd != -1 {
		cleaned = cleaned[:jsonEnd+1]
	}

	var payload models.GeneratedQuestions
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("invalid JSON response from LLM: %w", err)
	}
	return payload.Questions, nil
}
