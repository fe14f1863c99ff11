// This file defines the core data structures (models) for our application.
// These structs represent uploaded documents and their processing lifecycle.

package models

import "time"

// Processing statuses for an upload. They form a total ordering of the
// pipeline stages, terminal at StatusReady or StatusFailed.
const (
	StatusUploaded   = "uploaded"
	StatusExtracting = "extracting"
	StatusExtracted  = "extracted"
	StatusGenerating = "generating"
	StatusReady      = "ready"
	StatusFailed     = "failed"
)

// Upload represents a single uploaded PDF document and its pipeline state.
type Upload struct {
	ID                     int64     `json:"id"`
	FileID                 string    `json:"file_id"`
	Filename               string    `json:"filename"`
	FilePath               string    `json:"-"` // Server-side path, hidden from JSON responses
	Status                 string    `json:"status"`
	Error                  string    `json:"error,omitempty"`
	ProgressCurrent        int       `json:"progress_current"`
	ProgressTotal          int       `json:"progress_total"`
	ProgressMessage        string    `json:"progress_message,omitempty"`
	ExtractedTextPath      string    `json:"-"`
	GeneratedQuestionsPath string    `json:"-"`
	Thumbnail              string    `json:"thumbnail,omitempty"`
	UploadTime             time.Time `json:"upload_time"`
}

// FileSummary is the shape returned by the upload listing endpoint.
type FileSummary struct {
	FileID        string  `json:"fileId"`
	Filename      string  `json:"filename"`
	QuestionCount int     `json:"questionCount"`
	UploadTime    float64 `json:"uploadTime"` // Unix seconds, newest first in listings
	Thumbnail     string  `json:"thumbnail,omitempty"`
}
