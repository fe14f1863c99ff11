// A file in the store package dedicated to read queries for the API.
// This keeps store.go focused on write/update operations.

package store

import (
	"database/sql"

	"github.com/sgoyal/qbank-go/internal/models"
)

func scanUpload(row interface{ Scan(...any) error }) (*models.Upload, error) {
	var u models.Upload
	var errMsg, progressMsg, extractedPath, questionsPath, thumbnail sql.NullString
	err := row.Scan(
		&u.ID, &u.FileID, &u.Filename, &u.FilePath, &u.Status, &errMsg,
		&u.ProgressCurrent, &u.ProgressTotal, &progressMsg,
		&extractedPath, &questionsPath, &thumbnail, &u.UploadTime,
	)
	if err != nil {
		return nil, err
	}
	u.Error = errMsg.String
	u.ProgressMessage = progressMsg.String
	u.ExtractedTextPath = extractedPath.String
	u.GeneratedQuestionsPath = questionsPath.String
	u.Thumbnail = thumbnail.String
	return &u, nil
}

const uploadColumns = `id, file_id, filename, file_path, status, error,
	progress_current, progress_total, progress_message,
	extracted_text_path, generated_questions_path, thumbnail, upload_time`

// GetUploadByFileID fetches a single upload by its opaque file identifier.
func (s *Store) GetUploadByFileID(fileID string) (*models.Upload, error) {
	row := s.db.QueryRow("SELECT "+uploadColumns+" FROM uploads WHERE file_id = ?", fileID)
	return scanUpload(row)
}

// ListUploads fetches all uploads, newest first.
func (s *Store) ListUploads() ([]*models.Upload, error) {
	rows, err := s.db.Query("SELECT " + uploadColumns + " FROM uploads ORDER BY upload_time DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uploads []*models.Upload
	for rows.Next() {
		u, err := scanUpload(rows)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, u)
	}
	return uploads, rows.Err()
}

// CountQuestionsForFile returns how many reviewed questions are stored for a file.
func (s *Store) CountQuestionsForFile(fileID string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM questions WHERE file_id = ?", fileID).Scan(&count)
	return count, err
}
