package jobs

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// RegisterAll wires up every maintenance job with the manager.
func RegisterAll(app JobContext) {
	app.JobManager().Register("uploads-sync", "Uploads Directory Sync", RunUploadsSync)
	app.JobManager().Register("artifact-cleanup", "Orphaned Artifact Cleanup", RunArtifactCleanup)
}

// StartScheduler starts the background job scheduler.
func StartScheduler(app JobContext) {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	startUploadsSyncJob(s, app)

	log.Println("Starting background job scheduler...")
	s.StartAsync()
}

func startUploadsSyncJob(s *gocron.Scheduler, app JobContext) {
	interval := app.Config().SyncInterval
	if interval == 0 {
		log.Println("Uploads sync interval is 0, scheduled sync is disabled.")
		return
	}

	jobID := "uploads-sync"
	log.Printf("Scheduling job: '%s' to run every %d minutes.", jobID, interval)

	_, err := s.Every(interval).Minutes().Do(func() {
		log.Println("Scheduler is triggering job:", jobID)
		// Submit the job to the manager instead of running it directly.
		// This prevents conflicts with manually triggered jobs.
		err := app.JobManager().RunJob(jobID, app)
		if err != nil {
			log.Printf("Scheduled job '%s' could not start: %v", jobID, err)
		}
	})
	if err != nil {
		log.Printf("Error scheduling '%s' job: %v", jobID, err)
	}
}
