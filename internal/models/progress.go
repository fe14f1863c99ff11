package models

// ProgressUpdate is broadcast over the websocket hub whenever the pipeline
// advances for a file.
type ProgressUpdate struct {
	FileID   string  `json:"file_id"`
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	Progress float64 `json:"progress"`
	Done     bool    `json:"done"`
}
