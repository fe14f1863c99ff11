package api

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sgoyal/qbank-go/internal/models"
)

// maxUploadSize bounds the multipart form parse (50 MB).
const maxUploadSize = 50 << 20

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Missing 'file' field")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		RespondWithError(w, http.StatusBadRequest, "Only PDF files are supported")
		return
	}

	fileID := uuid.NewString()
	destPath := filepath.Join(s.app.Config().Storage.UploadDir, fileID+".pdf")
	dest, err := os.Create(destPath)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}
	defer dest.Close()
	if _, err := io.Copy(dest, file); err != nil {
		os.Remove(destPath)
		RespondWithError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	upload, err := s.store.CreateUpload(fileID, header.Filename, destPath)
	if err != nil {
		os.Remove(destPath)
		RespondWithError(w, http.StatusInternalServerError, "Failed to record upload")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{
		"file_id":  upload.FileID,
		"filename": upload.Filename,
		"status":   upload.Status,
	})
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	uploads, err := s.store.ListUploads()
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to list uploads")
		return
	}

	summaries := make([]models.FileSummary, 0, len(uploads))
	for _, u := range uploads {
		count, err := s.store.CountQuestionsForFile(u.FileID)
		if err != nil {
			count = 0
		}
		summaries = append(summaries, models.FileSummary{
			FileID:        u.FileID,
			Filename:      u.Filename,
			QuestionCount: count,
			UploadTime:    float64(u.UploadTime.Unix()),
			Thumbnail:     u.Thumbnail,
		})
	}
	RespondWithJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleDeleteUpload(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	upload, err := s.store.GetUploadByFileID(fileID)
	if err != nil {
		RespondWithError(w, http.StatusNotFound, "File not found")
		return
	}
	if err := s.store.DeleteUpload(fileID); err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to delete upload")
		return
	}

	// Artifacts on disk go too. Missing files are fine.
	os.Remove(upload.FilePath)
	if upload.ExtractedTextPath != "" {
		os.Remove(upload.ExtractedTextPath)
	}
	if upload.GeneratedQuestionsPath != "" {
		os.Remove(upload.GeneratedQuestionsPath)
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Upload deleted"})
}
