package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/sgoyal/qbank-go/internal/models"
	"github.com/sgoyal/qbank-go/internal/testutil"
)

func saveSampleQuestions(t *testing.T, server http.Handler, fileID string) []int64 {
	t.Helper()
	payload := map[string]interface{}{
		"questions": []models.Question{
			{
				Type:     models.QuestionTypeMCQ,
				Question: "Which planet is closest to the sun?",
				Options: []models.QuestionOption{
					{Label: "A", Text: "Venus"},
					{Label: "B", Text: "Mercury"},
					{Label: "C", Text: "Mars"},
					{Label: "D", Text: "Earth"},
				},
				CorrectAnswer: "B",
				Difficulty:    "easy",
				Topic:         "Astronomy",
			},
			{
				Type:          models.QuestionTypeTrueFalse,
				Question:      "Mercury has no moons.",
				CorrectAnswer: "True",
				Difficulty:    "medium",
				Topic:         "Astronomy",
			},
		},
	}
	data, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/questions/save/"+fileID, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Save failed with status %d: %s", rr.Code, rr.Body.String())
	}
	var result struct {
		Saved int     `json:"saved"`
		IDs   []int64 `json:"ids"`
	}
	json.Unmarshal(rr.Body.Bytes(), &result)
	if result.Saved != 2 {
		t.Fatalf("Expected 2 saved questions, got %d", result.Saved)
	}
	return result.IDs
}

func TestSaveAndListQuestions(t *testing.T) {
	server, db := testutil.SetupTestServer(t, stubGenerator{})
	insertUpload(t, db, "f1", "ready")
	router := server.Router()

	saveSampleQuestions(t, router, "f1")

	req := httptest.NewRequest("GET", "/api/questions/?file_id=f1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var questions []*models.Question
	json.Unmarshal(rr.Body.Bytes(), &questions)
	if len(questions) != 2 {
		t.Fatalf("Expected 2 questions, got %d", len(questions))
	}
	if len(questions[0].Options) != 4 {
		t.Errorf("Expected MCQ options to survive the round trip, got %d", len(questions[0].Options))
	}
}

func TestListQuestionsFilterByType(t *testing.T) {
	server, db := testutil.SetupTestServer(t, stubGenerator{})
	insertUpload(t, db, "f1", "ready")
	router := server.Router()
	saveSampleQuestions(t, router, "f1")

	req := httptest.NewRequest("GET", "/api/questions/?type=true_false", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var questions []*models.Question
	json.Unmarshal(rr.Body.Bytes(), &questions)
	if len(questions) != 1 {
		t.Fatalf("Expected 1 true_false question, got %d", len(questions))
	}
	if questions[0].Type != models.QuestionTypeTrueFalse {
		t.Errorf("Filter returned wrong type: %s", questions[0].Type)
	}
}

func TestSaveQuestionsUnknownFile(t *testing.T) {
	server, _ := testutil.SetupTestServer(t, stubGenerator{})

	data, _ := json.Marshal(map[string]interface{}{"questions": []models.Question{}})
	req := httptest.NewRequest("POST", "/api/questions/save/ghost", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

func TestUpdateQuestion(t *testing.T) {
	server, db := testutil.SetupTestServer(t, stubGenerator{})
	insertUpload(t, db, "f1", "ready")
	router := server.Router()
	ids := saveSampleQuestions(t, router, "f1")

	update := map[string]string{"question": "Which planet orbits nearest to the sun?"}
	data, _ := json.Marshal(update)
	req := httptest.NewRequest("PUT", "/api/questions/"+itoa(ids[0]), bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var updated models.Question
	json.Unmarshal(rr.Body.Bytes(), &updated)
	if updated.Question != "Which planet orbits nearest to the sun?" {
		t.Errorf("Question text not updated: %q", updated.Question)
	}
	if updated.CorrectAnswer != "B" {
		t.Errorf("Untouched field changed: %q", updated.CorrectAnswer)
	}
}

func TestUpdateQuestionEmptyPayload(t *testing.T) {
	server, db := testutil.SetupTestServer(t, stubGenerator{})
	insertUpload(t, db, "f1", "ready")
	router := server.Router()
	ids := saveSampleQuestions(t, router, "f1")

	req := httptest.NewRequest("PUT", "/api/questions/"+itoa(ids[0]), bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for an empty update, got %d", rr.Code)
	}
}

func TestDeleteQuestion(t *testing.T) {
	server, db := testutil.SetupTestServer(t, stubGenerator{})
	insertUpload(t, db, "f1", "ready")
	router := server.Router()
	ids := saveSampleQuestions(t, router, "f1")

	req := httptest.NewRequest("DELETE", "/api/questions/"+itoa(ids[0]), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	req = httptest.NewRequest("GET", "/api/questions/"+itoa(ids[0]), nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 after delete, got %d", rr.Code)
	}
}

func TestDeleteQuestionNotFound(t *testing.T) {
	server, _ := testutil.SetupTestServer(t, stubGenerator{})

	req := httptest.NewRequest("DELETE", "/api/questions/99999", nil)
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
