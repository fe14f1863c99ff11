// Maintenance tasks over the storage directories. The uploads dir is the
// source of truth for PDFs; the database row is the source of truth for
// pipeline state.

package jobs

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sgoyal/qbank-go/internal/models"
	"github.com/sgoyal/qbank-go/internal/store"
)

// RunUploadsSync reconciles the uploads directory with the database:
// PDFs dropped into the directory outside the API get registered, and rows
// whose backing file disappeared are marked failed.
func RunUploadsSync(ctx JobContext) {
	st := store.New(ctx.DB())
	uploadDir := ctx.Config().Storage.UploadDir

	entries, err := os.ReadDir(uploadDir)
	if err != nil {
		log.Printf("Uploads sync: cannot read %s: %v", uploadDir, err)
		return
	}

	known := make(map[string]bool)
	uploads, err := st.ListUploads()
	if err != nil {
		log.Printf("Uploads sync: cannot list uploads: %v", err)
		return
	}
	for _, u := range uploads {
		known[filepath.Base(u.FilePath)] = true
	}

	registered := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		if known[entry.Name()] {
			continue
		}
		fileID := uuid.NewString()
		path := filepath.Join(uploadDir, entry.Name())
		if _, err := st.CreateUpload(fileID, entry.Name(), path); err != nil {
			log.Printf("Uploads sync: failed to register %s: %v", entry.Name(), err)
			continue
		}
		registered++
	}

	// Mark rows whose file vanished so clients stop waiting on them.
	vanished := 0
	for _, u := range uploads {
		if u.Status == models.StatusFailed {
			continue
		}
		if _, err := os.Stat(u.FilePath); os.IsNotExist(err) {
			if err := st.UpdateUploadStatus(u.FileID, models.StatusFailed, "Uploaded file no longer exists"); err != nil && err != sql.ErrNoRows {
				log.Printf("Uploads sync: failed to mark %s: %v", u.FileID, err)
			}
			vanished++
		}
	}

	if registered > 0 || vanished > 0 {
		log.Printf("Uploads sync: registered %d new file(s), marked %d vanished file(s)", registered, vanished)
	}
}

// RunArtifactCleanup deletes extracted text and question artifacts that no
// longer have a matching upload row.
func RunArtifactCleanup(ctx JobContext) {
	st := store.New(ctx.DB())

	uploads, err := st.ListUploads()
	if err != nil {
		log.Printf("Artifact cleanup: cannot list uploads: %v", err)
		return
	}
	live := make(map[string]bool)
	for _, u := range uploads {
		live[u.FileID] = true
	}

	removed := 0
	for dir, ext := range map[string]string{
		ctx.Config().Storage.ExtractedDir: ".txt",
		ctx.Config().Storage.QuestionsDir: ".json",
	} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			log.Printf("Artifact cleanup: cannot read %s: %v", dir, err)
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ext {
				continue
			}
			fileID := strings.TrimSuffix(entry.Name(), ext)
			if live[fileID] {
				continue
			}
			if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
				log.Printf("Artifact cleanup: failed to remove %s: %v", entry.Name(), err)
				continue
			}
			removed++
		}
	}

	if removed > 0 {
		log.Printf("Artifact cleanup: removed %d orphaned artifact(s)", removed)
	}
}
