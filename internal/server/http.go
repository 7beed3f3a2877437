package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mytaskly/taskly-mcp/internal/auth"
	"github.com/mytaskly/taskly-mcp/internal/facade"
	"github.com/mytaskly/taskly-mcp/internal/instrumentation"
	"github.com/mytaskly/taskly-mcp/internal/logging"
	"github.com/mytaskly/taskly-mcp/internal/taskly"
)

// DefaultHTTPAddr is the default bind address for the HTTP transport.
const DefaultHTTPAddr = ":8000"

// Error codes of the HTTP error envelope.
const (
	ErrorCodeUnauthenticated = "UNAUTHENTICATED"
	ErrorCodeUpstream        = "UPSTREAM_ERROR"
	ErrorCodeValidation      = "VALIDATION_ERROR"
	ErrorCodeInternal        = "INTERNAL_ERROR"
)

// ErrorEnvelope is the uniform error body of every HTTP error response.
type ErrorEnvelope struct {
	Detail    string `json:"detail"`
	ErrorCode string `json:"error_code"`
}

// HTTPServerConfig holds configuration for the HTTP transport.
type HTTPServerConfig struct {
	// Addr is the address to bind to (e.g., ":8000").
	Addr string

	// ServerName and Version are reported on the root endpoint.
	ServerName string
	Version    string

	// Facade provides the operations exposed as routes.
	Facade *facade.Facade

	// Logger receives request and error logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Metrics records per-request observations. May be nil.
	Metrics *instrumentation.Metrics
}

// HTTPServer exposes the facade operations as HTTP routes. It is a thin
// wrapper: all authentication and formatting decisions live in the facade, so
// the stdio transport and this one cannot drift apart.
type HTTPServer struct {
	echo    *echo.Echo
	health  *HealthChecker
	config  HTTPServerConfig
	logger  *slog.Logger
	metrics *instrumentation.Metrics
}

// NewHTTPServer creates the HTTP transport and registers its routes.
func NewHTTPServer(config HTTPServerConfig) (*HTTPServer, error) {
	if config.Facade == nil {
		return nil, errors.New("facade is required for HTTP server")
	}
	if config.Addr == "" {
		config.Addr = DefaultHTTPAddr
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	s := &HTTPServer{
		echo:    echo.New(),
		health:  NewHealthChecker(),
		config:  config,
		logger:  config.Logger,
		metrics: config.Metrics,
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.HTTPErrorHandler = s.errorHandler

	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	s.echo.Use(s.observeRequests)

	s.registerRoutes()
	return s, nil
}

func (s *HTTPServer) registerRoutes() {
	s.echo.GET("/", s.handleRoot)
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/healthz", s.health.LivenessHandler)
	s.echo.GET("/readyz", s.health.ReadinessHandler)

	s.echo.POST("/mcp/"+facade.OpGetTasks, s.handleGetTasks)
	s.echo.POST("/mcp/"+facade.OpGetCategories, s.handleGetCategories)
	s.echo.POST("/mcp/"+facade.OpCreateNote, s.handleCreateNote)
}

// observeRequests records one metrics observation per request.
func (s *HTTPServer) observeRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			// Run the error handler now so the recorded status is final.
			c.Error(err)
		}
		s.metrics.RecordHTTPRequest(c.Request().Context(),
			c.Request().Method, c.Path(), c.Response().Status, time.Since(start))
		return nil
	}
}

type rootResponse struct {
	Name       string   `json:"name"`
	Version    string   `json:"version"`
	Transport  string   `json:"transport"`
	Operations []string `json:"operations"`
}

func (s *HTTPServer) handleRoot(c echo.Context) error {
	ops := facade.Operations()
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		names = append(names, op.Name)
	}
	return c.JSON(http.StatusOK, rootResponse{
		Name:       s.config.ServerName,
		Version:    s.config.Version,
		Transport:  "http",
		Operations: names,
	})
}

func (s *HTTPServer) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, s.config.Facade.HealthCheck(c.Request().Context()))
}

func (s *HTTPServer) handleGetTasks(c echo.Context) error {
	view, err := s.config.Facade.GetTasks(c.Request().Context(),
		c.Request().Header.Get(echo.HeaderAuthorization))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func (s *HTTPServer) handleGetCategories(c echo.Context) error {
	result, err := s.config.Facade.GetCategories(c.Request().Context(),
		c.Request().Header.Get(echo.HeaderAuthorization))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (s *HTTPServer) handleCreateNote(c echo.Context) error {
	var req facade.NoteRequest
	if err := c.Bind(&req); err != nil {
		return &facade.ValidationError{Field: "body", Reason: "malformed JSON body"}
	}

	note, err := s.config.Facade.CreateNote(c.Request().Context(),
		c.Request().Header.Get(echo.HeaderAuthorization), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, note)
}

// errorHandler maps facade errors to the {detail, error_code} envelope.
// Internal errors are logged in full but reported with a generic detail so
// backend internals never leak to callers.
func (s *HTTPServer) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		status   int
		envelope ErrorEnvelope
	)

	var authErr *auth.AuthError
	var upstreamErr *taskly.UpstreamError
	var validationErr *facade.ValidationError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &authErr):
		status = http.StatusUnauthorized
		envelope = ErrorEnvelope{Detail: authErr.Error(), ErrorCode: ErrorCodeUnauthenticated}
	case errors.As(err, &upstreamErr):
		status = http.StatusBadGateway
		envelope = ErrorEnvelope{Detail: upstreamErr.Error(), ErrorCode: ErrorCodeUpstream}
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		envelope = ErrorEnvelope{Detail: validationErr.Error(), ErrorCode: ErrorCodeValidation}
	case errors.As(err, &echoErr):
		status = echoErr.Code
		envelope = ErrorEnvelope{Detail: http.StatusText(status), ErrorCode: ErrorCodeInternal}
		if status == http.StatusNotFound || status == http.StatusMethodNotAllowed {
			envelope.Detail = "route not found"
		}
	default:
		status = http.StatusInternalServerError
		envelope = ErrorEnvelope{Detail: "internal server error", ErrorCode: ErrorCodeInternal}
		s.logger.Error("unexpected error",
			logging.Transport("http"),
			slog.String("path", c.Path()),
			logging.Err(err))
	}

	if jsonErr := c.JSON(status, envelope); jsonErr != nil {
		s.logger.Error("failed to write error response", logging.Err(jsonErr))
	}
}

// StartWithReadySignal binds the listener, closes ready once the port is
// bound, then serves until shutdown. Call in a goroutine.
func (s *HTTPServer) StartWithReadySignal(ready chan<- struct{}) error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	s.echo.Listener = listener

	s.logger.Info("starting http server",
		logging.Transport("http"), slog.String("addr", s.config.Addr))
	if ready != nil {
		close(ready)
	}
	return s.echo.Start(s.config.Addr)
}

// Shutdown drains in-flight requests and stops the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.health.SetShuttingDown()
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}

// Addr returns the configured bind address.
func (s *HTTPServer) Addr() string {
	return s.config.Addr
}

// Handler exposes the underlying handler for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.echo
}
