package api_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sgoyal/qbank-go/internal/testutil"
)

func insertUpload(t *testing.T, db *sql.DB, fileID, status string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO uploads (file_id, filename, file_path, status, upload_time) VALUES (?, 'doc.pdf', '/tmp/doc.pdf', ?, '2026-01-01 10:00:00')`,
		fileID, status)
	if err != nil {
		t.Fatalf("Failed to insert upload: %v", err)
	}
}

func TestProcessStatusDefaultMessages(t *testing.T) {
	server, db := testutil.SetupTestServer(t, stubGenerator{})
	insertUpload(t, db, "f1", "extracting")

	req := httptest.NewRequest("GET", "/api/process/status/f1", nil)
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var body map[string]interface{}
	json.Unmarshal(rr.Body.Bytes(), &body)
	if body["status"] != "extracting" {
		t.Errorf("Expected status 'extracting', got %v", body["status"])
	}
	if body["progress"] != "Extracting text from PDF..." {
		t.Errorf("Unexpected progress message: %v", body["progress"])
	}
	if _, present := body["error"]; present {
		t.Error("Error field must be omitted when empty")
	}
}

func TestProcessStatusEmbedsGenerationPercentage(t *testing.T) {
	server, db := testutil.SetupTestServer(t, stubGenerator{})
	insertUpload(t, db, "f1", "generating")
	db.Exec(`UPDATE uploads SET progress_current = 4, progress_total = 10, progress_message = 'Processing chunk 4/10' WHERE file_id = 'f1'`)

	req := httptest.NewRequest("GET", "/api/process/status/f1", nil)
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)

	var body map[string]interface{}
	json.Unmarshal(rr.Body.Bytes(), &body)
	if body["progress"] != "Processing chunk 4/10 (40%)" {
		t.Errorf("Expected '(40%%)' suffix, got %v", body["progress"])
	}
}

func TestProcessStatusFailedCarriesError(t *testing.T) {
	server, db := testutil.SetupTestServer(t, stubGenerator{})
	insertUpload(t, db, "f1", "failed")
	db.Exec(`UPDATE uploads SET error = 'OCR timeout' WHERE file_id = 'f1'`)

	req := httptest.NewRequest("GET", "/api/process/status/f1", nil)
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)

	var body map[string]interface{}
	json.Unmarshal(rr.Body.Bytes(), &body)
	if body["error"] != "OCR timeout" {
		t.Errorf("Expected error 'OCR timeout', got %v", body["error"])
	}
}

func TestProcessStatusUnknownFile(t *testing.T) {
	server, _ := testutil.SetupTestServer(t, stubGenerator{})

	req := httptest.NewRequest("GET", "/api/process/status/unknown", nil)
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

func TestFullPipelineUnknownFile(t *testing.T) {
	server, _ := testutil.SetupTestServer(t, stubGenerator{})

	req := httptest.NewRequest("POST", "/api/process/full-pipeline/unknown", nil)
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

func TestGenerateAcceptsUnextractedUpload(t *testing.T) {
	// Generation extracts on demand, so an upload that never went through
	// the extract endpoint is still accepted.
	server, db := testutil.SetupTestServer(t, stubGenerator{})
	insertUpload(t, db, "f1", "uploaded")

	req := httptest.NewRequest("POST", "/api/process/generate/f1", nil)
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusAccepted {
		t.Errorf("Expected status 202, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestGeneratedQuestionsNotReady(t *testing.T) {
	server, db := testutil.SetupTestServer(t, stubGenerator{})
	insertUpload(t, db, "f1", "extracting")

	req := httptest.NewRequest("GET", "/api/process/questions/f1", nil)
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 before generation, got %d", rr.Code)
	}
}

func TestServeArtifactMissing(t *testing.T) {
	server, _ := testutil.SetupTestServer(t, stubGenerator{})

	req := httptest.NewRequest("GET", "/generated_questions/unknown.json", nil)
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for a missing artifact, got %d", rr.Code)
	}
}
