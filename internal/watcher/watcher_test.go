package watcher_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sgoyal/qbank-go/internal/jobs"
	"github.com/sgoyal/qbank-go/internal/store"
	"github.com/sgoyal/qbank-go/internal/testutil"
	"github.com/sgoyal/qbank-go/internal/watcher"
)

func TestWatcherStartStop(t *testing.T) {
	app := testutil.SetupTestApp(t)
	w := watcher.New(app)

	if err := w.Start(); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("Failed to stop watcher: %v", err)
	}
}

func TestWatcherPicksUpDroppedPDF(t *testing.T) {
	app := testutil.SetupTestApp(t)
	jobs.RegisterAll(app)

	w := watcher.New(app)
	if err := w.Start(); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	defer w.Stop()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(app.Config().Storage.UploadDir, "dropped.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	// The debounce delay is 2s; the sync job then registers the stray file.
	s := store.New(app.DB())
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		uploads, err := s.ListUploads()
		if err != nil {
			t.Fatalf("Failed to list uploads: %v", err)
		}
		if len(uploads) == 1 {
			if uploads[0].Filename != "dropped.pdf" {
				t.Errorf("Expected filename 'dropped.pdf', got %q", uploads[0].Filename)
			}
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatal("Dropped PDF was never registered by the sync job")
}

func TestWatcherIgnoresNonPDF(t *testing.T) {
	app := testutil.SetupTestApp(t)
	jobs.RegisterAll(app)

	w := watcher.New(app)
	if err := w.Start(); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	defer w.Stop()
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(app.Config().Storage.UploadDir, "notes.txt")
	if err := os.WriteFile(path, []byte("text"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	time.Sleep(3 * time.Second)
	s := store.New(app.DB())
	uploads, err := s.ListUploads()
	if err != nil {
		t.Fatalf("Failed to list uploads: %v", err)
	}
	if len(uploads) != 0 {
		t.Errorf("Non-PDF file must not be registered, got %d uploads", len(uploads))
	}
}
