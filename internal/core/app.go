package core

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/sgoyal/qbank-go/internal/config"
	"github.com/sgoyal/qbank-go/internal/db"
	"github.com/sgoyal/qbank-go/internal/jobs"
	"github.com/sgoyal/qbank-go/internal/websocket"
)

// App holds the core components of the application that are shared
// between the server and the CLI.
type App struct {
	cfg        *config.Config
	database   *sql.DB
	wsHub      *websocket.Hub
	jobManager *jobs.JobManager
	version    string
}

// New sets up and returns a new App instance. It handles loading the
// configuration, initializing the database connection, running migrations
// and creating the storage directories.
func New(version string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// The pipeline reads and writes these directories; create them up front.
	for _, dir := range []string{cfg.Storage.UploadDir, cfg.Storage.ExtractedDir, cfg.Storage.QuestionsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
		}
	}

	database, err := db.InitDB(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.RunMigrations(database); err != nil {
		// We can't proceed without a valid database schema.
		database.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	hub := websocket.NewHub()
	go hub.Run()

	app := &App{
		cfg:      cfg,
		database: database,
		wsHub:    hub,
		version:  version,
	}
	app.jobManager = jobs.NewManager(app)

	log.Println("Core application setup complete.")
	return app, nil
}

// NewWith assembles an App from pre-built components. It exists for tests
// and for callers that manage their own config and database lifecycle.
func NewWith(cfg *config.Config, database *sql.DB, hub *websocket.Hub, version string) *App {
	app := &App{
		cfg:      cfg,
		database: database,
		wsHub:    hub,
		version:  version,
	}
	app.jobManager = jobs.NewManager(app)
	return app
}

// Close gracefully closes the application's resources, like the DB connection.
func (a *App) Close() {
	if a.database != nil {
		a.database.Close()
	}
}

func (a *App) DB() *sql.DB                  { return a.database }
func (a *App) Config() *config.Config       { return a.cfg }
func (a *App) WsHub() *websocket.Hub        { return a.wsHub }
func (a *App) JobManager() *jobs.JobManager { return a.jobManager }
func (a *App) Version() string              { return a.version }
