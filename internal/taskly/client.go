package taskly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mytaskly/taskly-mcp/internal/auth"
	"github.com/mytaskly/taskly-mcp/internal/config"
	"github.com/mytaskly/taskly-mcp/internal/instrumentation"
	"github.com/mytaskly/taskly-mcp/internal/logging"
)

// apiKeyHeader is the header carrying the static service API key.
const apiKeyHeader = "X-API-Key"

// noteCreatedMessage is the confirmation message echoed on note creation.
const noteCreatedMessage = "✅ Nota creata con successo"

// Client issues authenticated HTTP calls to the task-management backend.
// All fields are read-only after construction; the client is safe for
// concurrent use. Every call runs on a fresh connection with its own timeout
// budget, and a single failed attempt is a single reported failure.
type Client struct {
	baseURL       string
	apiKey        string
	codec         *auth.Codec
	tokenTTL      time.Duration
	dataTimeout   time.Duration
	healthTimeout time.Duration
	httpClient    *http.Client
	logger        *slog.Logger
	metrics       *instrumentation.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client, used by tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics attaches a metrics recorder for backend call observability.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a backend client from the process configuration. The
// codec is the same one that verifies inbound credentials, so service tokens
// are minted with the configuration-owned secret.
func NewClient(cfg config.Config, codec *auth.Codec, opts ...Option) *Client {
	c := &Client{
		baseURL:       cfg.BackendBaseURL,
		apiKey:        cfg.BackendAPIKey,
		codec:         codec,
		tokenTTL:      cfg.ServiceTokenTTL,
		dataTimeout:   cfg.DataTimeout,
		healthTimeout: cfg.HealthTimeout,
		httpClient: &http.Client{
			// Connections are not reused between calls.
			Transport: &http.Transport{DisableKeepAlives: true},
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// serviceToken mints a short-lived credential embedding the user identifier
// as subject, used to act on the user's behalf against the backend.
//
// Known limitation: the subject is the bare user id with no lookup of a real
// user record. The backend resolves the subject as the user id, so the
// simplification holds; see DESIGN.md.
func (c *Client) serviceToken(userID int) (string, error) {
	token, err := c.codec.Issue(userID, c.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to mint service token: %w", err)
	}
	c.logger.Debug("minted service token",
		logging.Subject(userID),
		slog.Duration("ttl", c.tokenTTL))
	return token, nil
}

// GetTasks fetches all tasks for a user.
func (c *Client) GetTasks(ctx context.Context, userID int) ([]Task, error) {
	var tasks []Task
	if err := c.call(ctx, "get_tasks", http.MethodGet, "/tasks/", userID, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetCategories fetches all categories for a user.
func (c *Client) GetCategories(ctx context.Context, userID int) ([]Category, error) {
	var categories []Category
	if err := c.call(ctx, "get_categories", http.MethodGet, "/categories/", userID, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateNote creates a note for a user. The backend answers with the assigned
// identifier only; the returned Note echoes the input fields alongside it.
func (c *Client) CreateNote(ctx context.Context, userID int, input NoteInput) (*Note, error) {
	body := createNoteRequest{
		UserID:    userID,
		Title:     input.Title,
		PositionX: input.PositionX,
		PositionY: input.PositionY,
		Color:     input.Color,
	}

	var resp createNoteResponse
	if err := c.call(ctx, "create_note", http.MethodPost, "/notes", userID, body, &resp); err != nil {
		return nil, err
	}

	return &Note{
		NoteID:    resp.NoteID,
		Title:     input.Title,
		PositionX: input.PositionX,
		PositionY: input.PositionY,
		Color:     input.Color,
		Message:   noteCreatedMessage,
	}, nil
}

// Health probes the backend. It never returns an error: failures degrade to
// an unhealthy status carrying the underlying message.
func (c *Client) Health(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return HealthStatus{Status: StatusUnhealthy, Error: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return HealthStatus{Status: StatusUnhealthy, Error: err.Error()}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return HealthStatus{Status: StatusHealthy, Code: resp.StatusCode}
}

// call performs one authenticated request against the backend and decodes the
// JSON response into out. Failures come back as *UpstreamError.
func (c *Client) call(ctx context.Context, op, method, path string, userID int, body, out interface{}) error {
	start := time.Now()
	statusCode := 0
	defer func() {
		c.metrics.RecordUpstreamRequest(ctx, op, statusCode, time.Since(start))
	}()

	token, err := c.serviceToken(userID)
	if err != nil {
		return &UpstreamError{Op: op, Err: err}
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &UpstreamError{Op: op, Err: fmt.Errorf("failed to encode request body: %w", err)}
		}
		reqBody = bytes.NewReader(buf)
	}

	ctx, cancel := context.WithTimeout(ctx, c.dataTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &UpstreamError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	statusCode = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &UpstreamError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", string(detail)),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &UpstreamError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
		}
	}
	return nil
}
