package models

import "time"

// Question types. MCQs carry four labeled options, the other two types
// only a correct answer.
const (
	QuestionTypeMCQ         = "mcq"
	QuestionTypeFillInBlank = "fill_in_blank"
	QuestionTypeTrueFalse   = "true_false"
)

// QuestionOption is a single labeled choice of an MCQ.
type QuestionOption struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Question represents one generated or reviewed quiz question.
type Question struct {
	ID            int64            `json:"id,omitempty"`
	FileID        string           `json:"file_id,omitempty"`
	Type          string           `json:"type"`
	Question      string           `json:"question"`
	Options       []QuestionOption `json:"options,omitempty"`
	CorrectAnswer string           `json:"correct_answer"`
	Explanation   string           `json:"explanation,omitempty"`
	Difficulty    string           `json:"difficulty,omitempty"` // easy, medium, hard
	Topic         string           `json:"topic,omitempty"`
	CreatedAt     time.Time        `json:"created_at,omitempty"`
	UpdatedAt     time.Time        `json:"updated_at,omitempty"`
}

// GeneratedQuestions is the artifact written to generated_questions/{file_id}.json.
// It is rewritten after every processed chunk, so readers may observe a
// partial question list while generation is still running.
type GeneratedQuestions struct {
	Questions []Question `json:"questions"`
}
