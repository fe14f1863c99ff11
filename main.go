package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sgoyal/qbank-go/internal/api"
	"github.com/sgoyal/qbank-go/internal/auth"
	"github.com/sgoyal/qbank-go/internal/core"
	"github.com/sgoyal/qbank-go/internal/jobs"
	"github.com/sgoyal/qbank-go/internal/llm"
	"github.com/sgoyal/qbank-go/internal/pipeline"
	"github.com/sgoyal/qbank-go/internal/store"
	"github.com/sgoyal/qbank-go/internal/watcher"
)

var version = "dev"

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize the core application components
	app, err := core.New(version)
	if err != nil {
		log.Fatalf("Fatal error during application setup: %v", err)
	}
	defer app.Close()

	// --- First User Provisioning ---
	st := store.New(app.DB())
	userCount, err := st.CountUsers()
	if err != nil {
		log.Fatalf("Could not check user count: %v", err)
	}
	if userCount == 0 {
		log.Println("No users found. Creating default admin account.")
		password := generateRandomPassword(12)
		passwordHash, _ := auth.HashPassword(password)
		if _, err := st.CreateUser("admin", passwordHash, "admin"); err != nil {
			log.Fatalf("Could not create default admin user: %v", err)
		}
		log.Println("==================================================")
		log.Println("Default admin user created.")
		log.Printf("Username: admin")
		log.Printf("Password: %s", password)
		log.Println("Please change this password immediately.")
		log.Println("==================================================")
	}

	// Background maintenance jobs and their schedule.
	jobs.RegisterAll(app)
	jobs.StartScheduler(app)

	// Watch the uploads directory for PDFs dropped in outside the API.
	uploadsWatcher := watcher.New(app)
	if err := uploadsWatcher.Start(); err != nil {
		log.Printf("Warning: could not start uploads watcher: %v", err)
	} else {
		defer uploadsWatcher.Stop()
	}

	// LLM-backed question generation and the processing pipeline.
	generator, err := llm.NewService(app.Config())
	if err != nil {
		log.Fatalf("Could not initialize LLM provider: %v", err)
	}
	runner := pipeline.NewRunner(app.Config(), st, generator, app.WsHub())

	// Setup the API server
	server := api.NewServer(app, runner)
	addr := fmt.Sprintf(":%d", app.Config().Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Router(),
	}

	// --- Graceful Shutdown ---
	// Start the server in a goroutine so it doesn't block.
	go func() {
		log.Printf("Starting web server on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %v", err)
		}
	}()

	// Wait for an interrupt signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create a context with a timeout to allow existing connections to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

func generateRandomPassword(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[seededRand.Intn(len(charset))]
	}
	return string(b)
}
