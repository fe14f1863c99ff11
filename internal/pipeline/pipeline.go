// Package pipeline runs the extract-then-generate processing chain for an
// uploaded PDF and records every stage transition in the store.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/sgoyal/qbank-go/internal/config"
	"github.com/sgoyal/qbank-go/internal/extractor"
	"github.com/sgoyal/qbank-go/internal/llm"
	"github.com/sgoyal/qbank-go/internal/models"
	"github.com/sgoyal/qbank-go/internal/store"
	"github.com/sgoyal/qbank-go/internal/websocket"
)

// TextExtractor pulls plain text and a cover thumbnail out of a PDF on disk.
type TextExtractor interface {
	ExtractText(path string) (string, error)
	GenerateThumbnail(path string) (string, error)
}

// fitzExtractor is the production TextExtractor backed by go-fitz.
type fitzExtractor struct{}

func (fitzExtractor) ExtractText(path string) (string, error) { return extractor.ExtractText(path) }
func (fitzExtractor) GenerateThumbnail(path string) (string, error) {
	return extractor.GenerateThumbnail(path)
}

// Runner executes the full processing pipeline for uploads. At most one run
// per file is active at a time; a second start for the same file is a no-op.
type Runner struct {
	cfg       *config.Config
	store     *store.Store
	extractor TextExtractor
	generator llm.Generator
	wsHub     *websocket.Hub

	mu      sync.Mutex
	running map[string]bool
}

// NewRunner builds a Runner with the production extractor. The generator is
// injected so the caller decides the provider (and tests can stub it).
func NewRunner(cfg *config.Config, s *store.Store, generator llm.Generator, hub *websocket.Hub) *Runner {
	return &Runner{
		cfg:       cfg,
		store:     s,
		extractor: fitzExtractor{},
		generator: generator,
		wsHub:     hub,
		running:   make(map[string]bool),
	}
}

// SetExtractor overrides the PDF extractor. Used in tests.
func (r *Runner) SetExtractor(e TextExtractor) { r.extractor = e }

// Start launches the pipeline for a file in a background goroutine. It
// returns false if a run for that file is already in flight.
func (r *Runner) Start(ctx context.Context, fileID string) bool {
	return r.startStage(fileID, func() error { return r.Run(ctx, fileID) })
}

// StartExtraction launches only the extraction stage in the background.
func (r *Runner) StartExtraction(ctx context.Context, fileID string) bool {
	return r.startStage(fileID, func() error { return r.RunExtraction(fileID) })
}

// StartGeneration launches only the generation stage in the background,
// reading the previously extracted text from disk.
func (r *Runner) StartGeneration(ctx context.Context, fileID string) bool {
	return r.startStage(fileID, func() error { return r.RunGeneration(ctx, fileID) })
}

func (r *Runner) startStage(fileID string, stage func() error) bool {
	r.mu.Lock()
	if r.running[fileID] {
		r.mu.Unlock()
		return false
	}
	r.running[fileID] = true
	r.mu.Unlock()

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("Pipeline stage for %s panicked: %v", fileID, rec)
				r.fail(fileID, fmt.Sprintf("internal error: %v", rec))
			}
			r.mu.Lock()
			delete(r.running, fileID)
			r.mu.Unlock()
		}()
		if err := stage(); err != nil {
			log.Printf("Pipeline stage for %s failed: %v", fileID, err)
		}
	}()
	return true
}

// RunExtraction executes the extraction stage alone and leaves the upload
// in the extracted state.
func (r *Runner) RunExtraction(fileID string) error {
	upload, err := r.store.GetUploadByFileID(fileID)
	if err != nil {
		return fmt.Errorf("load upload %s: %w", fileID, err)
	}
	if _, err := r.extract(fileID, upload.FilePath); err != nil {
		r.fail(fileID, err.Error())
		return err
	}
	return nil
}

// RunGeneration executes the generation stage alone and finishes at ready.
// When the text has not been extracted yet, extraction runs on demand first.
func (r *Runner) RunGeneration(ctx context.Context, fileID string) error {
	upload, err := r.store.GetUploadByFileID(fileID)
	if err != nil {
		return fmt.Errorf("load upload %s: %w", fileID, err)
	}

	var text string
	if upload.ExtractedTextPath == "" {
		text, err = r.extract(fileID, upload.FilePath)
		if err != nil {
			r.fail(fileID, err.Error())
			return err
		}
	} else {
		data, err := os.ReadFile(upload.ExtractedTextPath)
		if err != nil {
			r.fail(fileID, fmt.Sprintf("read extracted text: %v", err))
			return err
		}
		text = string(data)
	}

	if err := r.generate(ctx, fileID, text); err != nil {
		r.fail(fileID, err.Error())
		return err
	}
	r.transition(fileID, models.StatusReady, "")
	return nil
}

// IsRunning reports whether a pipeline for the file is currently in flight.
func (r *Runner) IsRunning(fileID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running[fileID]
}

// Run executes extraction and generation synchronously. On any stage error
// the upload is marked failed with the error message and Run returns it.
func (r *Runner) Run(ctx context.Context, fileID string) error {
	upload, err := r.store.GetUploadByFileID(fileID)
	if err != nil {
		return fmt.Errorf("load upload %s: %w", fileID, err)
	}

	text, err := r.extract(fileID, upload.FilePath)
	if err != nil {
		r.fail(fileID, err.Error())
		return err
	}

	if err := r.generate(ctx, fileID, text); err != nil {
		r.fail(fileID, err.Error())
		return err
	}

	r.transition(fileID, models.StatusReady, "")
	return nil
}

// extract runs the extraction stage: pull text out of the PDF, persist it
// under the extracted-text dir, and capture a first-page thumbnail.
func (r *Runner) extract(fileID, filePath string) (string, error) {
	r.transition(fileID, models.StatusExtracting, "")

	text, err := r.extractor.ExtractText(filePath)
	if err != nil {
		return "", fmt.Errorf("text extraction failed: %w", err)
	}

	textPath := filepath.Join(r.cfg.Storage.ExtractedDir, fileID+".txt")
	if err := os.WriteFile(textPath, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("write extracted text: %w", err)
	}
	if err := r.store.SetExtractedTextPath(fileID, textPath); err != nil {
		return "", fmt.Errorf("record extracted text path: %w", err)
	}

	// Thumbnail failures are cosmetic, the pipeline continues without one.
	if thumb, err := r.extractor.GenerateThumbnail(filePath); err != nil {
		log.Printf("Thumbnail generation for %s failed: %v", fileID, err)
	} else if err := r.store.SetUploadThumbnail(fileID, thumb); err != nil {
		log.Printf("Could not save thumbnail for %s: %v", fileID, err)
	}

	r.transition(fileID, models.StatusExtracted, "")
	return text, nil
}

// generate runs the generation stage: chunk the text and ask the LLM for
// questions per chunk. The artifact JSON is rewritten after every chunk so
// readers can observe partial results while generation is still running.
func (r *Runner) generate(ctx context.Context, fileID, text string) error {
	r.transition(fileID, models.StatusGenerating, "")

	chunks := extractor.ChunkText(text, r.cfg.Generation.MaxChunkSize, r.cfg.Generation.ChunkOverlap)
	if len(chunks) == 0 {
		return fmt.Errorf("no text chunks to generate questions from")
	}

	artifactPath := filepath.Join(r.cfg.Storage.QuestionsDir, fileID+".json")
	var collected []models.Question

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("generation cancelled: %w", err)
		}

		message := fmt.Sprintf("Processing chunk %d/%d", i+1, len(chunks))
		if err := r.store.UpdateUploadProgress(fileID, i+1, len(chunks), message); err != nil {
			log.Printf("Could not update progress for %s: %v", fileID, err)
		}
		r.broadcast(fileID, models.StatusGenerating, message, false)

		questions, err := r.generator.GenerateQuestions(ctx, chunk, r.cfg.Generation.QuestionsPerChunk)
		if err != nil {
			// A single bad chunk does not sink the run.
			log.Printf("Chunk %d/%d of %s produced no questions: %v", i+1, len(chunks), fileID, err)
			continue
		}
		for j := range questions {
			questions[j].FileID = fileID
		}
		collected = append(collected, questions...)

		if err := writeArtifact(artifactPath, collected); err != nil {
			return fmt.Errorf("write questions artifact: %w", err)
		}
	}

	if len(collected) == 0 {
		return fmt.Errorf("question generation produced no questions")
	}
	if err := r.store.SetGeneratedQuestionsPath(fileID, artifactPath); err != nil {
		return fmt.Errorf("record questions path: %w", err)
	}
	return nil
}

func (r *Runner) transition(fileID, status, errMsg string) {
	if err := r.store.UpdateUploadStatus(fileID, status, errMsg); err != nil {
		log.Printf("Could not set status %s for %s: %v", status, fileID, err)
	}
	message := errMsg
	done := status == models.StatusReady || status == models.StatusFailed
	r.broadcast(fileID, status, message, done)
}

func (r *Runner) fail(fileID, message string) {
	r.transition(fileID, models.StatusFailed, message)
}

func (r *Runner) broadcast(fileID, status, message string, done bool) {
	if r.wsHub == nil {
		return
	}
	r.wsHub.BroadcastJSON(models.ProgressUpdate{
		FileID:  fileID,
		Status:  status,
		Message: message,
		Done:    done,
	})
}
