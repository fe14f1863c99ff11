package progress

import "github.com/sgoyal/qbank-go/internal/models"

// DefaultFailureMessage is shown when the backend reports failure without
// an error detail.
const DefaultFailureMessage = "Processing failed. Please try again."

// Snapshot is one polled status observation of a pipeline.
type Snapshot struct {
	FileID   string `json:"file_id"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
	Progress string `json:"progress"`
	Error    string `json:"error,omitempty"`
}

// Update is the reconciled view emitted after each successful poll.
type Update struct {
	FileID        string
	Status        string
	Percent       float64
	Message       string
	Milestones    []Milestone
	QuestionCount int
	Terminal      bool
	Err           string // set only when Status is failed
}

// Tracker folds a stream of snapshots into monotone display state for one
// file. It is not safe for concurrent use; the poller owns it.
type Tracker struct {
	fileID        string
	percent       float64
	lastStage     string
	questionCount int
	terminal      bool
}

// NewTracker starts tracking the given file.
func NewTracker(fileID string) *Tracker {
	return &Tracker{fileID: fileID, lastStage: models.StatusUploaded}
}

// SetQuestionCount records the running count from the best-effort artifact
// probe.
func (t *Tracker) SetQuestionCount(n int) { t.questionCount = n }

// Terminal reports whether a terminal snapshot has been applied.
func (t *Tracker) Terminal() bool { return t.terminal }

// Apply folds one snapshot into the tracker and returns the update to
// display. A failed snapshot freezes the percentage at its last computed
// value and carries the backend's error verbatim, or the default message.
func (t *Tracker) Apply(snap Snapshot) Update {
	update := Update{
		FileID:        t.fileID,
		Status:        snap.Status,
		Message:       snap.Progress,
		QuestionCount: t.questionCount,
	}

	if snap.Status == models.StatusFailed {
		t.terminal = true
		update.Percent = t.percent
		update.Milestones = Milestones(t.lastStage)
		update.Terminal = true
		update.Err = snap.Error
		if update.Err == "" {
			update.Err = DefaultFailureMessage
		}
		return update
	}

	t.percent = PercentFor(snap.Status, snap.Progress)
	t.lastStage = snap.Status
	update.Percent = t.percent
	update.Milestones = Milestones(snap.Status)
	if snap.Status == models.StatusReady {
		t.terminal = true
		update.Terminal = true
	}
	return update
}
