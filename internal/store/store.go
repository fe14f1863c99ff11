// To handle all database interactions. This is our
// data access layer, keeping SQL queries separate from business logic.

package store

import (
	"database/sql"
	"time"

	"github.com/sgoyal/qbank-go/internal/models"
)

// Store provides all functions to interact with the database.
type Store struct {
	db *sql.DB
}

// New creates a new Store instance.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateUpload inserts a new upload row in the 'uploaded' state.
func (s *Store) CreateUpload(fileID, filename, filePath string) (*models.Upload, error) {
	now := time.Now()
	res, err := s.db.Exec(
		"INSERT INTO uploads (file_id, filename, file_path, status, upload_time) VALUES (?, ?, ?, ?, ?)",
		fileID, filename, filePath, models.StatusUploaded, now)
	if err != nil {
		return nil, err
	}
	id, _ := res.LastInsertId()
	return &models.Upload{
		ID:         id,
		FileID:     fileID,
		Filename:   filename,
		FilePath:   filePath,
		Status:     models.StatusUploaded,
		UploadTime: now,
	}, nil
}

// UpdateUploadStatus sets the processing status for a file. An empty errMsg
// leaves the stored error untouched so a terminal failure message survives
// later reads.
func (s *Store) UpdateUploadStatus(fileID, status, errMsg string) error {
	var res sql.Result
	var err error
	if errMsg != "" {
		res, err = s.db.Exec("UPDATE uploads SET status = ?, error = ? WHERE file_id = ?", status, errMsg, fileID)
	} else {
		res, err = s.db.Exec("UPDATE uploads SET status = ? WHERE file_id = ?", status, fileID)
	}
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateUploadProgress records chunk-level progress during generation.
func (s *Store) UpdateUploadProgress(fileID string, current, total int, message string) error {
	if message != "" {
		_, err := s.db.Exec(
			"UPDATE uploads SET progress_current = ?, progress_total = ?, progress_message = ? WHERE file_id = ?",
			current, total, message, fileID)
		return err
	}
	_, err := s.db.Exec(
		"UPDATE uploads SET progress_current = ?, progress_total = ? WHERE file_id = ?",
		current, total, fileID)
	return err
}

// SetExtractedTextPath records where the extracted text was written.
func (s *Store) SetExtractedTextPath(fileID, path string) error {
	_, err := s.db.Exec("UPDATE uploads SET extracted_text_path = ? WHERE file_id = ?", path, fileID)
	return err
}

// SetGeneratedQuestionsPath records where the questions artifact was written.
func (s *Store) SetGeneratedQuestionsPath(fileID, path string) error {
	_, err := s.db.Exec("UPDATE uploads SET generated_questions_path = ? WHERE file_id = ?", path, fileID)
	return err
}

// SetUploadThumbnail stores the base64 data URI of the first-page thumbnail.
func (s *Store) SetUploadThumbnail(fileID, thumbnail string) error {
	_, err := s.db.Exec("UPDATE uploads SET thumbnail = ? WHERE file_id = ?", thumbnail, fileID)
	return err
}

// DeleteUpload removes an upload. Cascading deletes handle its questions.
func (s *Store) DeleteUpload(fileID string) error {
	_, err := s.db.Exec("DELETE FROM uploads WHERE file_id = ?", fileID)
	return err
}
