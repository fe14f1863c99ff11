package progress

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sgoyal/qbank-go/internal/models"
)

func TestPercentForFixedStages(t *testing.T) {
	cases := []struct {
		status string
		want   float64
	}{
		{models.StatusUploaded, 10},
		{models.StatusExtracting, 30},
		{models.StatusExtracted, 50},
		{models.StatusReady, 100},
	}
	for _, tc := range cases {
		// Fixed stages ignore whatever the progress text says.
		got := PercentFor(tc.status, "Processing chunk 3/10 (30%)")
		require.Equal(t, tc.want, got, "status %s", tc.status)
	}
}

func TestPercentForGeneratingWithToken(t *testing.T) {
	got := PercentFor(models.StatusGenerating, "Generating question batch (40%)")
	require.Equal(t, 68.0, got)
}

func TestPercentForGeneratingWithoutToken(t *testing.T) {
	got := PercentFor(models.StatusGenerating, "Generating questions")
	require.Equal(t, 70.0, got)
}

func TestPercentForGeneratingBounds(t *testing.T) {
	require.Equal(t, 50.0, PercentFor(models.StatusGenerating, "(0%)"))
	require.Equal(t, 95.0, PercentFor(models.StatusGenerating, "(100%)"))
}

func TestMilestonesFollowStageOrder(t *testing.T) {
	ms := Milestones(models.StatusUploaded)
	require.True(t, ms[0].Done)
	require.False(t, ms[1].Done)
	require.False(t, ms[2].Done)

	ms = Milestones(models.StatusExtracted)
	require.True(t, ms[0].Done)
	require.True(t, ms[1].Done)
	require.False(t, ms[2].Done)

	ms = Milestones(models.StatusGenerating)
	require.True(t, ms[2].Done)

	for _, m := range Milestones(models.StatusReady) {
		require.True(t, m.Done, "milestone %s", m.Name)
	}
}

func TestTrackerFreezesPercentOnFailure(t *testing.T) {
	tr := NewTracker("f1")
	tr.Apply(Snapshot{Status: models.StatusGenerating, Progress: "Processing chunk 4/10 (40%)"})

	update := tr.Apply(Snapshot{Status: models.StatusFailed, Error: "OCR timeout"})
	require.True(t, update.Terminal)
	require.Equal(t, 68.0, update.Percent, "percentage must freeze at last computed value")
	require.Equal(t, "OCR timeout", update.Err)
}

func TestTrackerDefaultFailureMessage(t *testing.T) {
	tr := NewTracker("f1")
	update := tr.Apply(Snapshot{Status: models.StatusFailed})
	require.Equal(t, DefaultFailureMessage, update.Err)
}

func TestTrackerReadyIsTerminal(t *testing.T) {
	tr := NewTracker("f1")
	update := tr.Apply(Snapshot{Status: models.StatusReady})
	require.True(t, update.Terminal)
	require.Equal(t, 100.0, update.Percent)
	require.True(t, tr.Terminal())
}
