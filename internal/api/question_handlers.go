package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sgoyal/qbank-go/internal/models"
	"github.com/sgoyal/qbank-go/internal/store"
)

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	skip, _ := strconv.Atoi(q.Get("skip"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	filter := store.QuestionFilter{
		FileID:     q.Get("file_id"),
		Type:       q.Get("type"),
		Difficulty: q.Get("difficulty"),
		Topic:      q.Get("topic"),
	}

	questions, err := s.store.ListQuestions(skip, limit, filter)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to list questions")
		return
	}
	RespondWithJSON(w, http.StatusOK, questions)
}

func (s *Server) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "questionID"), 10, 64)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid question ID")
		return
	}
	question, err := s.store.GetQuestionByID(id)
	if err != nil {
		RespondWithError(w, http.StatusNotFound, "Question not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, question)
}

func (s *Server) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "questionID"), 10, 64)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid question ID")
		return
	}

	var upd store.QuestionUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if upd.IsEmpty() {
		RespondWithError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	if err := s.store.UpdateQuestion(id, upd); err != nil {
		if err == sql.ErrNoRows {
			RespondWithError(w, http.StatusNotFound, "Question not found")
			return
		}
		RespondWithError(w, http.StatusInternalServerError, "Failed to update question")
		return
	}

	question, err := s.store.GetQuestionByID(id)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to load updated question")
		return
	}
	RespondWithJSON(w, http.StatusOK, question)
}

func (s *Server) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "questionID"), 10, 64)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid question ID")
		return
	}
	if err := s.store.DeleteQuestion(id); err != nil {
		if err == sql.ErrNoRows {
			RespondWithError(w, http.StatusNotFound, "Question not found")
			return
		}
		RespondWithError(w, http.StatusInternalServerError, "Failed to delete question")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Question deleted"})
}

func (s *Server) handleSaveQuestions(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	if _, err := s.store.GetUploadByFileID(fileID); err != nil {
		RespondWithError(w, http.StatusNotFound, "File not found")
		return
	}

	var payload struct {
		Questions []models.Question `json:"questions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if len(payload.Questions) == 0 {
		RespondWithError(w, http.StatusBadRequest, "No questions to save")
		return
	}

	ids, err := s.store.SaveQuestions(fileID, payload.Questions)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to save questions")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"saved": len(ids),
		"ids":   ids,
	})
}
