package facade

import (
	"context"
	"log/slog"
	"time"

	"github.com/mytaskly/taskly-mcp/internal/auth"
	"github.com/mytaskly/taskly-mcp/internal/format"
	"github.com/mytaskly/taskly-mcp/internal/instrumentation"
	"github.com/mytaskly/taskly-mcp/internal/logging"
	"github.com/mytaskly/taskly-mcp/internal/taskly"
)

// Defaults applied to note creation when the caller omits a field.
const (
	DefaultNotePosition = "0"
	DefaultNoteColor    = "#FFEB3B"
)

// CategoriesResult is the payload of the get_categories operation.
type CategoriesResult struct {
	Categories []taskly.Category `json:"categories"`
	Total      int               `json:"total"`
}

// NoteRequest carries the caller-visible arguments of create_note.
type NoteRequest struct {
	Title     string `json:"title"`
	PositionX string `json:"position_x"`
	PositionY string `json:"position_y"`
	Color     string `json:"color"`
}

// applyDefaults fills omitted fields with the documented defaults.
func (r *NoteRequest) applyDefaults() {
	if r.PositionX == "" {
		r.PositionX = DefaultNotePosition
	}
	if r.PositionY == "" {
		r.PositionY = DefaultNotePosition
	}
	if r.Color == "" {
		r.Color = DefaultNoteColor
	}
}

// HealthResult is the payload of the health_check operation.
type HealthResult struct {
	MCPServer      string              `json:"mcp_server"`
	Backend        string              `json:"backend"`
	BackendURL     string              `json:"backend_url"`
	BackendDetails taskly.HealthStatus `json:"backend_details"`
}

// Facade composes the token codec, the backend client and the formatting
// rules into the four named operations. Authentication failures always
// short-circuit before any backend call is made.
type Facade struct {
	codec   *auth.Codec
	client  *taskly.Client
	logger  *slog.Logger
	metrics *instrumentation.Metrics
	audit   *instrumentation.AuditLogger
}

// Option configures a Facade.
type Option func(*Facade)

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Facade) {
		f.logger = logger
	}
}

// WithMetrics attaches a metrics recorder for operation observability.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(f *Facade) {
		f.metrics = m
	}
}

// WithAuditLogger attaches an audit logger for per-invocation audit events.
func WithAuditLogger(a *instrumentation.AuditLogger) Option {
	return func(f *Facade) {
		f.audit = a
	}
}

// New creates a Facade over the given codec and backend client.
func New(codec *auth.Codec, client *taskly.Client, opts ...Option) *Facade {
	f := &Facade{
		codec:  codec,
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// GetTasks verifies the credential, fetches the user's tasks and pipes them
// through the formatting rules.
func (f *Facade) GetTasks(ctx context.Context, authorization string) (*format.TaskListView, error) {
	start := time.Now()

	userID, err := f.codec.VerifyHeader(authorization)
	if err != nil {
		f.observe(ctx, OpGetTasks, "", start, err)
		return nil, err
	}

	tasks, err := f.client.GetTasks(ctx, userID)
	f.observe(ctx, OpGetTasks, logging.AnonymizeSubject(userID), start, err)
	if err != nil {
		return nil, err
	}

	return format.BuildTaskList(tasks), nil
}

// GetCategories verifies the credential and fetches the user's categories.
// Categories are passed through unchanged.
func (f *Facade) GetCategories(ctx context.Context, authorization string) (*CategoriesResult, error) {
	start := time.Now()

	userID, err := f.codec.VerifyHeader(authorization)
	if err != nil {
		f.observe(ctx, OpGetCategories, "", start, err)
		return nil, err
	}

	categories, err := f.client.GetCategories(ctx, userID)
	f.observe(ctx, OpGetCategories, logging.AnonymizeSubject(userID), start, err)
	if err != nil {
		return nil, err
	}

	if categories == nil {
		categories = []taskly.Category{}
	}
	return &CategoriesResult{Categories: categories, Total: len(categories)}, nil
}

// CreateNote verifies the credential and creates a note for the user,
// applying position and color defaults for omitted fields.
func (f *Facade) CreateNote(ctx context.Context, authorization string, req NoteRequest) (*taskly.Note, error) {
	start := time.Now()

	userID, err := f.codec.VerifyHeader(authorization)
	if err != nil {
		f.observe(ctx, OpCreateNote, "", start, err)
		return nil, err
	}

	if req.Title == "" {
		err := &ValidationError{Field: "title", Reason: "title is required"}
		f.observe(ctx, OpCreateNote, logging.AnonymizeSubject(userID), start, err)
		return nil, err
	}
	req.applyDefaults()

	note, err := f.client.CreateNote(ctx, userID, taskly.NoteInput{
		Title:     req.Title,
		PositionX: req.PositionX,
		PositionY: req.PositionY,
		Color:     req.Color,
	})
	f.observe(ctx, OpCreateNote, logging.AnonymizeSubject(userID), start, err)
	if err != nil {
		return nil, err
	}
	return note, nil
}

// HealthCheck reports the health of this server and of the backend. It takes
// no credential and never fails: backend trouble degrades the result instead.
func (f *Facade) HealthCheck(ctx context.Context) *HealthResult {
	start := time.Now()

	backend := f.client.Health(ctx)
	f.observe(ctx, OpHealthCheck, "", start, nil)

	return &HealthResult{
		MCPServer:      taskly.StatusHealthy,
		Backend:        backend.Status,
		BackendURL:     f.client.BaseURL(),
		BackendDetails: backend,
	}
}

// observe records the outcome of one operation in logs, metrics and the
// audit trail.
func (f *Facade) observe(ctx context.Context, op, subjectHash string, start time.Time, err error) {
	duration := time.Since(start)

	result := instrumentation.ResultSuccess
	status := logging.StatusSuccess
	if err != nil {
		result = instrumentation.ResultError
		status = logging.StatusError
	}

	f.logger.Debug("operation finished",
		logging.Operation(op),
		logging.Status(status),
		slog.Duration("duration", duration),
		logging.Err(err))

	f.metrics.RecordToolInvocation(ctx, op, result, duration)
	f.audit.RecordToolInvocation(instrumentation.ToolInvocation{
		Tool:        op,
		SubjectHash: subjectHash,
		Outcome:     result,
		Duration:    duration,
	})
}
