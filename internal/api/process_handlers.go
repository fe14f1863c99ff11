package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/sgoyal/qbank-go/internal/models"
	"github.com/sgoyal/qbank-go/internal/pipeline"
)

// progressMap holds the default human-readable message per status. A custom
// message recorded by the pipeline takes precedence.
var progressMap = map[string]string{
	models.StatusUploaded:   "File uploaded, ready for processing",
	models.StatusExtracting: "Extracting text from PDF...",
	models.StatusExtracted:  "Text extracted successfully",
	models.StatusGenerating: "Generating questions using LLM...",
	models.StatusReady:      "Questions generated and ready for review",
	models.StatusFailed:     "Processing failed",
}

func (s *Server) handleFullPipeline(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	if _, err := s.store.GetUploadByFileID(fileID); err != nil {
		RespondWithError(w, http.StatusNotFound, "File not found")
		return
	}

	// The run outlives the request, so it gets its own context.
	if !s.pipeline.Start(context.Background(), fileID) {
		RespondWithError(w, http.StatusConflict, "Pipeline already running for this file")
		return
	}
	RespondWithJSON(w, http.StatusAccepted, map[string]string{
		"message": "Full pipeline started",
		"file_id": fileID,
	})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	if _, err := s.store.GetUploadByFileID(fileID); err != nil {
		RespondWithError(w, http.StatusNotFound, "File not found")
		return
	}

	if !s.pipeline.StartExtraction(context.Background(), fileID) {
		RespondWithError(w, http.StatusConflict, "Pipeline already running for this file")
		return
	}
	RespondWithJSON(w, http.StatusAccepted, map[string]string{
		"message": "Text extraction started",
		"file_id": fileID,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	upload, err := s.store.GetUploadByFileID(fileID)
	if err != nil {
		RespondWithError(w, http.StatusNotFound, "File not found")
		return
	}

	// A finished run already has an artifact; return it instead of
	// generating again.
	if upload.Status == models.StatusReady && upload.GeneratedQuestionsPath != "" {
		artifact, err := pipeline.ReadArtifact(upload.GeneratedQuestionsPath)
		if err == nil {
			RespondWithJSON(w, http.StatusOK, artifact)
			return
		}
	}

	// Generation extracts the text on demand when it has not run yet, so
	// any non-running upload may start here.
	if !s.pipeline.StartGeneration(context.Background(), fileID) {
		RespondWithError(w, http.StatusConflict, "Pipeline already running for this file")
		return
	}
	RespondWithJSON(w, http.StatusAccepted, map[string]string{
		"message": "Question generation started",
		"file_id": fileID,
	})
}

func (s *Server) handleProcessStatus(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	upload, err := s.store.GetUploadByFileID(fileID)
	if err != nil {
		RespondWithError(w, http.StatusNotFound, "File not found")
		return
	}

	message := upload.ProgressMessage
	if message == "" {
		message = progressMap[upload.Status]
		if message == "" {
			message = "Unknown status"
		}
	}
	// Embed the sub-percentage while generating with a known chunk total.
	if upload.Status == models.StatusGenerating && upload.ProgressTotal > 0 {
		percentage := upload.ProgressCurrent * 100 / upload.ProgressTotal
		message = fmt.Sprintf("%s (%d%%)", message, percentage)
	}

	response := map[string]interface{}{
		"file_id":  upload.FileID,
		"filename": upload.Filename,
		"status":   upload.Status,
		"progress": message,
	}
	if upload.Error != "" {
		response["error"] = upload.Error
	}
	RespondWithJSON(w, http.StatusOK, response)
}

func (s *Server) handleGeneratedQuestions(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	upload, err := s.store.GetUploadByFileID(fileID)
	if err != nil {
		RespondWithError(w, http.StatusNotFound, "File not found")
		return
	}
	if upload.GeneratedQuestionsPath == "" {
		RespondWithError(w, http.StatusNotFound, "Questions not generated yet")
		return
	}
	artifact, err := pipeline.ReadArtifact(upload.GeneratedQuestionsPath)
	if err != nil {
		RespondWithError(w, http.StatusNotFound, "Questions not generated yet")
		return
	}
	RespondWithJSON(w, http.StatusOK, artifact)
}

// handleServeArtifact serves the artifact file straight off disk, so the
// running count probe can observe partial results before the pipeline has
// recorded a final path.
func (s *Server) handleServeArtifact(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	path := filepath.Join(s.app.Config().Storage.QuestionsDir, fileID+".json")
	if _, err := os.Stat(path); err != nil {
		RespondWithError(w, http.StatusNotFound, "Questions not generated yet")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	http.ServeFile(w, r, path)
}
