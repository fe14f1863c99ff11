// It defines the API server, sets up the routes (endpoints)
// using chi, and links them to the handler functions.

package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sgoyal/qbank-go/internal/core"
	"github.com/sgoyal/qbank-go/internal/pipeline"
	"github.com/sgoyal/qbank-go/internal/store"
)

// Server holds the dependencies for our API.
type Server struct {
	app      *core.App
	db       *sql.DB
	store    *store.Store
	pipeline *pipeline.Runner
}

// Store returns the store instance.
func (s *Server) Store() *store.Store {
	return s.store
}

// NewServer creates a new Server instance.
func NewServer(app *core.App, runner *pipeline.Runner) *Server {
	return &Server{
		app:      app,
		db:       app.DB(),
		store:    store.New(app.DB()),
		pipeline: runner,
	}
}

// Router sets up and returns the main router for the application.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)    // Logs requests to the console
	r.Use(middleware.Recoverer) // Recovers from panics
	r.Use(middleware.Timeout(60 * time.Second))

	r.Post("/api/users/login", s.handleLogin)
	r.Get("/api/version", s.handleGetVersion)

	// Upload and processing routes. These back the polling client, so they
	// stay session-free; only administrative routes need a login.
	r.Route("/api/upload", func(r chi.Router) {
		r.Post("/", s.handleUpload)
		r.Get("/files", s.handleListFiles)
		r.Delete("/{fileID}", s.handleDeleteUpload)
	})

	r.Route("/api/process", func(r chi.Router) {
		r.Post("/full-pipeline/{fileID}", s.handleFullPipeline)
		r.Post("/extract/{fileID}", s.handleExtract)
		r.Post("/generate/{fileID}", s.handleGenerate)
		r.Get("/status/{fileID}", s.handleProcessStatus)
		r.Get("/questions/{fileID}", s.handleGeneratedQuestions)
	})

	// Static serving of the questions artifact. Partial files are expected
	// while generation is running.
	r.Get("/generated_questions/{fileID}.json", s.handleServeArtifact)

	r.Route("/api/questions", func(r chi.Router) {
		r.Get("/", s.handleListQuestions)
		r.Post("/save/{fileID}", s.handleSaveQuestions)
		r.Get("/{questionID}", s.handleGetQuestion)
		r.Put("/{questionID}", s.handleUpdateQuestion)
		r.Delete("/{questionID}", s.handleDeleteQuestion)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.AuthMiddleware)

		r.Post("/api/users/logout", s.handleLogout)
		r.Get("/api/users/me", s.handleGetMe)

		r.Route("/api/admin", func(r chi.Router) {
			r.Use(s.AdminOnlyMiddleware)

			r.Get("/jobs/status", s.handleGetAdminJobsStatus)
			r.Post("/jobs/run", s.handleRunAdminJob)

			r.Get("/users", s.handleAdminListUsers)
			r.Post("/users", s.handleAdminCreateUser)
			r.Delete("/users/{userID}", s.handleAdminDeleteUser)
		})
	})

	// WebSocket route
	r.Get("/ws/progress", func(w http.ResponseWriter, r *http.Request) {
		s.app.WsHub().ServeWs(w, r)
	})

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if err := s.db.Ping(); err != nil {
			RespondWithError(w, http.StatusServiceUnavailable, "Database connection failed")
			return
		}
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
