package progress

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sgoyal/qbank-go/internal/models"
)

// API is the slice of the backend the poller consumes.
type API interface {
	StartPipeline(ctx context.Context, fileID string) error
	PipelineStatus(ctx context.Context, fileID string) (*Snapshot, error)
	GeneratedQuestions(ctx context.Context, fileID string) (*models.GeneratedQuestions, error)
}

// DefaultInterval is the polling cadence between status fetches.
const DefaultInterval = 2 * time.Second

// Poller triggers a pipeline exactly once per file and then watches its
// status until a terminal state. Updates arrive on the channel returned by
// Watch; the channel is closed when polling stops for any reason, and no
// update is ever delivered after the context is cancelled.
type Poller struct {
	api      API
	interval time.Duration

	mu      sync.Mutex
	started map[string]bool
}

// NewPoller creates a poller over the given API. A non-positive interval
// falls back to DefaultInterval.
func NewPoller(api API, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		api:      api,
		interval: interval,
		started:  make(map[string]bool),
	}
}

// Watch starts the pipeline for fileID and begins polling. The start call
// happens at most once per file for the lifetime of the poller; a second
// Watch for the same file returns an error. A failed start is terminal and
// is not retried.
func (p *Poller) Watch(ctx context.Context, fileID string) (<-chan Update, error) {
	p.mu.Lock()
	if p.started[fileID] {
		p.mu.Unlock()
		return nil, fmt.Errorf("pipeline for %s already started", fileID)
	}
	p.started[fileID] = true
	p.mu.Unlock()

	if err := p.api.StartPipeline(ctx, fileID); err != nil {
		return nil, fmt.Errorf("start pipeline for %s: %w", fileID, err)
	}

	updates := make(chan Update, 1)
	go p.loop(ctx, fileID, updates)
	return updates, nil
}

// loop polls status on each tick until a terminal update or cancellation.
// Ticks never overlap: the next fetch is only scheduled once the previous
// one finished. Transient fetch errors are logged and the loop keeps going.
func (p *Poller) loop(ctx context.Context, fileID string, updates chan<- Update) {
	defer close(updates)

	tracker := NewTracker(fileID)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		snap, err := p.api.PipelineStatus(ctx, fileID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Status poll for %s failed (will retry): %v", fileID, err)
			continue
		}

		// Best-effort running count while generation is in flight. The
		// artifact may not exist yet; any failure is ignored.
		if snap.Status == models.StatusGenerating {
			if artifact, err := p.api.GeneratedQuestions(ctx, fileID); err == nil {
				tracker.SetQuestionCount(len(artifact.Questions))
			}
		}

		update := tracker.Apply(*snap)
		select {
		case updates <- update:
		case <-ctx.Done():
			return
		}
		if update.Terminal {
			return
		}
	}
}
