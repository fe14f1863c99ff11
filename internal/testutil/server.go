// A shared test server setup utility, which simplifies all API tests.

package testutil

import (
	"database/sql"
	"testing"

	"github.com/sgoyal/qbank-go/internal/api"
	"github.com/sgoyal/qbank-go/internal/config"
	"github.com/sgoyal/qbank-go/internal/core"
	"github.com/sgoyal/qbank-go/internal/llm"
	"github.com/sgoyal/qbank-go/internal/pipeline"
	"github.com/sgoyal/qbank-go/internal/store"
	"github.com/sgoyal/qbank-go/internal/websocket"
)

// TestConfig returns a config whose storage dirs all live under temp
// directories owned by the test.
func TestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Storage.UploadDir = t.TempDir()
	cfg.Storage.ExtractedDir = t.TempDir()
	cfg.Storage.QuestionsDir = t.TempDir()
	cfg.Generation.QuestionsPerChunk = 2
	cfg.Generation.MaxChunkSize = 2000
	cfg.Generation.ChunkOverlap = 200
	return cfg
}

// SetupTestApp initializes a core.App over an in-memory database.
func SetupTestApp(t *testing.T) *core.App {
	t.Helper()
	database := SetupTestDB(t)

	hub := websocket.NewHub()
	go hub.Run()

	return core.NewWith(TestConfig(t), database, hub, "test")
}

// SetupTestServer initializes a full core.App and api.Server for
// integration testing. The pipeline runner uses the given generator, which
// may be nil for tests that never start processing.
func SetupTestServer(t *testing.T, generator llm.Generator) (*api.Server, *sql.DB) {
	t.Helper()
	app := SetupTestApp(t)
	runner := pipeline.NewRunner(app.Config(), store.New(app.DB()), generator, app.WsHub())
	return api.NewServer(app, runner), app.DB()
}
