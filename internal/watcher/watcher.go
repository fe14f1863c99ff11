// This file implements a file system watcher for the uploads directory.
// It uses OS-level file system events to pick up PDFs dropped into the
// directory outside the API and reconcile them via the uploads-sync job.

package watcher

import (
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sgoyal/qbank-go/internal/jobs"
)

// Service watches the uploads directory and triggers the uploads-sync job
// when PDF files appear, change, or disappear.
type Service struct {
	ctx           jobs.JobContext
	watcher       *fsnotify.Watcher
	pending       bool
	mu            sync.Mutex
	debounceTimer *time.Timer
	debounceDelay time.Duration
	stopChan      chan struct{}
}

// New creates a watcher service over the app's uploads directory.
func New(ctx jobs.JobContext) *Service {
	return &Service{
		ctx:           ctx,
		debounceDelay: 2 * time.Second, // Wait out bursts of events before syncing
		stopChan:      make(chan struct{}),
	}
}

// Start begins watching the uploads directory for changes.
func (w *Service) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher

	uploadDir := w.ctx.Config().Storage.UploadDir
	if err := watcher.Add(uploadDir); err != nil {
		watcher.Close()
		return err
	}

	log.Printf("File watcher started for uploads: %s", uploadDir)
	go w.processEvents()
	return nil
}

// Stop stops the file watcher service.
func (w *Service) Stop() error {
	close(w.stopChan)
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

func (w *Service) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)

		case <-w.stopChan:
			return
		}
	}
}

func (w *Service) handleEvent(event fsnotify.Event) {
	// Chmod fires when files are merely opened or browsed; skip it.
	if event.Op == fsnotify.Chmod {
		return
	}

	relevant := event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
	if !relevant || !isPDF(event.Name) {
		return
	}

	w.mu.Lock()
	w.pending = true
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, w.triggerSync)
	w.mu.Unlock()
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

func (w *Service) triggerSync() {
	w.mu.Lock()
	if !w.pending {
		w.mu.Unlock()
		return
	}
	w.pending = false
	w.mu.Unlock()

	log.Printf("File watcher detected upload changes, triggering uploads sync")
	if err := w.ctx.JobManager().RunJob("uploads-sync", w.ctx); err != nil {
		// Already-running is normal here; the running sync will pick up
		// the new files on its pass or the next event retriggers.
		log.Printf("Uploads sync not started: %v", err)
	}
}
