// Package progress reconciles polled pipeline status snapshots into a
// bounded progress percentage and milestone checklist for display.
package progress

import (
	"regexp"
	"strconv"

	"github.com/sgoyal/qbank-go/internal/models"
)

// stageOrder is the total ordering of pipeline stages. Terminal stages sit
// above every intermediate one so milestone checks stay simple index
// comparisons.
var stageOrder = map[string]int{
	models.StatusUploaded:   0,
	models.StatusExtracting: 1,
	models.StatusExtracted:  2,
	models.StatusGenerating: 3,
	models.StatusReady:      4,
}

// subPercentRe matches the "(NN%)" token the backend embeds in the progress
// message during generation. Parsing prose is fragile but it is the wire
// contract we have; see the status endpoint for the producing side.
var subPercentRe = regexp.MustCompile(`\((\d+)%\)`)

// PercentFor maps a status snapshot to an overall percentage. During
// generation the embedded sub-percentage is interpolated onto [50,95];
// without a token the stage reports 70. The failed status has no
// percentage of its own, callers freeze the last computed value.
func PercentFor(status, progressMessage string) float64 {
	switch status {
	case models.StatusUploaded:
		return 10
	case models.StatusExtracting:
		return 30
	case models.StatusExtracted:
		return 50
	case models.StatusGenerating:
		if m := subPercentRe.FindStringSubmatch(progressMessage); m != nil {
			sub, err := strconv.Atoi(m[1])
			if err == nil {
				return 50 + float64(sub)*0.45
			}
		}
		return 70
	case models.StatusReady:
		return 100
	default:
		return 0
	}
}

// Milestone names, in pipeline order.
const (
	MilestoneUploaded   = "Uploaded"
	MilestoneExtracted  = "Extracted"
	MilestoneGenerating = "Generating"
)

// Milestone is one checkpoint of the checklist display.
type Milestone struct {
	Name string
	Done bool
}

// Milestones derives the checklist from the current stage. Because each
// entry is a membership test against the stage ordering, the checklist can
// never contradict the numeric percentage.
func Milestones(status string) []Milestone {
	idx, known := stageOrder[status]
	if !known {
		idx = -1
	}
	return []Milestone{
		{Name: MilestoneUploaded, Done: idx >= stageOrder[models.StatusUploaded]},
		{Name: MilestoneExtracted, Done: idx >= stageOrder[models.StatusExtracted]},
		{Name: MilestoneGenerating, Done: idx >= stageOrder[models.StatusGenerating]},
	}
}
