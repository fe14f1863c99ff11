package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sgoyal/qbank-go/internal/models"
	"github.com/sgoyal/qbank-go/internal/testutil"
)

func multipartPDF(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	part.Write(content)
	writer.Close()
	return &buf, writer.FormDataContentType()
}

func TestUploadAcceptsPDF(t *testing.T) {
	server, _ := testutil.SetupTestServer(t, stubGenerator{})

	body, contentType := multipartPDF(t, "lecture.pdf", []byte("%PDF-1.4 test"))
	req := httptest.NewRequest("POST", "/api/upload/", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var result map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if result["file_id"] == "" {
		t.Error("Expected a file_id in the response")
	}
	if result["status"] != models.StatusUploaded {
		t.Errorf("Expected status 'uploaded', got %q", result["status"])
	}
	if result["filename"] != "lecture.pdf" {
		t.Errorf("Expected original filename, got %q", result["filename"])
	}
}

func TestUploadRejectsNonPDF(t *testing.T) {
	server, _ := testutil.SetupTestServer(t, stubGenerator{})

	body, contentType := multipartPDF(t, "notes.txt", []byte("plain text"))
	req := httptest.NewRequest("POST", "/api/upload/", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for non-PDF, got %d", rr.Code)
	}
}

func TestListFilesNewestFirst(t *testing.T) {
	server, db := testutil.SetupTestServer(t, stubGenerator{})

	// Two uploads with distinct times.
	db.Exec(`INSERT INTO uploads (file_id, filename, file_path, status, upload_time) VALUES ('f1', 'old.pdf', '/tmp/f1.pdf', 'ready', '2026-01-01 10:00:00')`)
	db.Exec(`INSERT INTO uploads (file_id, filename, file_path, status, upload_time) VALUES ('f2', 'new.pdf', '/tmp/f2.pdf', 'uploaded', '2026-02-01 10:00:00')`)

	req := httptest.NewRequest("GET", "/api/upload/files", nil)
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var files []models.FileSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &files); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got %d", len(files))
	}
	if files[0].FileID != "f2" {
		t.Errorf("Expected newest upload first, got %q", files[0].FileID)
	}
}

func TestDeleteUploadUnknownFile(t *testing.T) {
	server, _ := testutil.SetupTestServer(t, stubGenerator{})

	req := httptest.NewRequest("DELETE", "/api/upload/nonexistent", nil)
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}
