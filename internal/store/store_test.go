package store_test

import (
	"database/sql"
	"testing"

	"github.com/sgoyal/qbank-go/internal/store"
	"github.com/sgoyal/qbank-go/internal/testutil"
)

func TestUploadLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)

	up, err := s.CreateUpload("file-abc", "chapter1.pdf", "/tmp/file-abc.pdf")
	if err != nil {
		t.Fatalf("CreateUpload failed: %v", err)
	}
	if up.Status != "uploaded" {
		t.Errorf("New upload should be 'uploaded', got %q", up.Status)
	}

	if err := s.UpdateUploadStatus("file-abc", "extracting", ""); err != nil {
		t.Fatalf("UpdateUploadStatus failed: %v", err)
	}
	if err := s.UpdateUploadProgress("file-abc", 2, 5, "Processing chunk 2/5"); err != nil {
		t.Fatalf("UpdateUploadProgress failed: %v", err)
	}
	if err := s.SetExtractedTextPath("file-abc", "/tmp/file-abc.txt"); err != nil {
		t.Fatalf("SetExtractedTextPath failed: %v", err)
	}

	got, err := s.GetUploadByFileID("file-abc")
	if err != nil {
		t.Fatalf("GetUploadByFileID failed: %v", err)
	}
	if got.Status != "extracting" {
		t.Errorf("Expected status 'extracting', got %q", got.Status)
	}
	if got.ProgressCurrent != 2 || got.ProgressTotal != 5 {
		t.Errorf("Expected progress 2/5, got %d/%d", got.ProgressCurrent, got.ProgressTotal)
	}
	if got.ProgressMessage != "Processing chunk 2/5" {
		t.Errorf("Unexpected progress message %q", got.ProgressMessage)
	}
	if got.ExtractedTextPath != "/tmp/file-abc.txt" {
		t.Errorf("Unexpected extracted text path %q", got.ExtractedTextPath)
	}

	// A failure stores the error message alongside the status.
	if err := s.UpdateUploadStatus("file-abc", "failed", "OCR timeout"); err != nil {
		t.Fatalf("UpdateUploadStatus failed: %v", err)
	}
	got, _ = s.GetUploadByFileID("file-abc")
	if got.Error != "OCR timeout" {
		t.Errorf("Expected error 'OCR timeout', got %q", got.Error)
	}
}

func TestUpdateUploadStatusUnknownFile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)

	err := s.UpdateUploadStatus("no-such-file", "ready", "")
	if err != sql.ErrNoRows {
		t.Errorf("Expected sql.ErrNoRows for unknown file, got %v", err)
	}
}

func TestListUploadsOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)

	if _, err := s.CreateUpload("older", "a.pdf", "/tmp/a.pdf"); err != nil {
		t.Fatal(err)
	}
	// Force a distinct, newer upload_time for the second row.
	if _, err := s.CreateUpload("newer", "b.pdf", "/tmp/b.pdf"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("UPDATE uploads SET upload_time = datetime('now', '+1 hour') WHERE file_id = 'newer'"); err != nil {
		t.Fatal(err)
	}

	uploads, err := s.ListUploads()
	if err != nil {
		t.Fatalf("ListUploads failed: %v", err)
	}
	if len(uploads) != 2 {
		t.Fatalf("Expected 2 uploads, got %d", len(uploads))
	}
	if uploads[0].FileID != "newer" {
		t.Errorf("Expected newest upload first, got %q", uploads[0].FileID)
	}
}
