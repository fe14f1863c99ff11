// Package client is the HTTP client for the QBank server API, used by the
// CLI and by the pipeline progress poller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sgoyal/qbank-go/internal/models"
	"github.com/sgoyal/qbank-go/internal/progress"
)

// Client talks to a QBank server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given server. If baseURL is empty it uses
// the QBANK_SERVER_URL environment variable, then localhost:8080.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("QBANK_SERVER_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// apiError is the server's standard error payload.
type apiError struct {
	Error string `json:"error"`
}

// do issues the request and decodes a JSON body into out (when non-nil).
// Non-2xx responses are turned into errors carrying the server's message.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var payload apiError
		if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, payload.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

// UploadResult is the server's response to a successful upload.
type UploadResult struct {
	FileID   string `json:"file_id"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
}

// Upload sends a PDF to the server as multipart form data.
func (c *Client) Upload(ctx context.Context, path string) (*UploadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result UploadResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// StartPipeline triggers server-side processing for an uploaded file.
func (c *Client) StartPipeline(ctx context.Context, fileID string) error {
	return c.postJSON(ctx, "/api/process/full-pipeline/"+fileID, nil, nil)
}

// PipelineStatus fetches the current processing snapshot for a file.
func (c *Client) PipelineStatus(ctx context.Context, fileID string) (*progress.Snapshot, error) {
	var snap progress.Snapshot
	if err := c.getJSON(ctx, "/api/process/status/"+fileID, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// GeneratedQuestions fetches the questions artifact written so far. During
// generation the artifact holds a partial list; before generation starts
// the server returns 404.
func (c *Client) GeneratedQuestions(ctx context.Context, fileID string) (*models.GeneratedQuestions, error) {
	var payload models.GeneratedQuestions
	if err := c.getJSON(ctx, "/generated_questions/"+fileID+".json", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ListFiles returns summaries of all uploads, newest first.
func (c *Client) ListFiles(ctx context.Context) ([]models.FileSummary, error) {
	var files []models.FileSummary
	if err := c.getJSON(ctx, "/api/upload/files", &files); err != nil {
		return nil, err
	}
	return files, nil
}

// QuestionListOptions filters and pages the question listing.
type QuestionListOptions struct {
	FileID     string
	Type       string
	Difficulty string
	Topic      string
	Skip       int
	Limit      int
}

// ListQuestions returns persisted questions matching the options.
func (c *Client) ListQuestions(ctx context.Context, opts QuestionListOptions) ([]*models.Question, error) {
	path := "/api/questions?" + opts.encode()
	var questions []*models.Question
	if err := c.getJSON(ctx, path, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// SaveQuestions persists reviewed questions for a file and returns the
// stored count.
func (c *Client) SaveQuestions(ctx context.Context, fileID string, questions []models.Question) (int, error) {
	body := map[string]interface{}{"questions": questions}
	var result struct {
		Saved int `json:"saved"`
	}
	if err := c.postJSON(ctx, "/api/questions/save/"+fileID, body, &result); err != nil {
		return 0, err
	}
	return result.Saved, nil
}

// UpdateQuestion applies a partial update to a stored question.
func (c *Client) UpdateQuestion(ctx context.Context, id int64, fields map[string]interface{}) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("%s/api/questions/%d", c.baseURL, id), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nil)
}

// DeleteQuestion removes a stored question.
func (c *Client) DeleteQuestion(ctx context.Context, id int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/api/questions/%d", c.baseURL, id), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (o QuestionListOptions) encode() string {
	values := url.Values{}
	if o.FileID != "" {
		values.Set("file_id", o.FileID)
	}
	if o.Type != "" {
		values.Set("type", o.Type)
	}
	if o.Difficulty != "" {
		values.Set("difficulty", o.Difficulty)
	}
	if o.Topic != "" {
		values.Set("topic", o.Topic)
	}
	if o.Skip > 0 {
		values.Set("skip", strconv.Itoa(o.Skip))
	}
	if o.Limit > 0 {
		values.Set("limit", strconv.Itoa(o.Limit))
	}
	return values.Encode()
}
