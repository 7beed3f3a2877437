package facade

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mytaskly/taskly-mcp/internal/auth"
	"github.com/mytaskly/taskly-mcp/internal/config"
	"github.com/mytaskly/taskly-mcp/internal/taskly"
)

const testSecret = "facade-test-secret"

type fixture struct {
	facade   *Facade
	codec    *auth.Codec
	backend  *httptest.Server
	hits     *atomic.Int64
	shutdown func()
}

func newFixture(t *testing.T, handler http.HandlerFunc) *fixture {
	t.Helper()

	hits := &atomic.Int64{}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))

	codec := auth.NewCodec(testSecret, "taskly-mobile")
	cfg := config.Config{
		SigningSecret:   testSecret,
		Audience:        "taskly-mobile",
		BackendBaseURL:  backend.URL,
		BackendAPIKey:   "facade-test-api-key",
		DataTimeout:     5 * time.Second,
		HealthTimeout:   2 * time.Second,
		ServiceTokenTTL: time.Minute,
	}
	client := taskly.NewClient(cfg, codec)

	return &fixture{
		facade:   New(codec, client),
		codec:    codec,
		backend:  backend,
		hits:     hits,
		shutdown: backend.Close,
	}
}

func (f *fixture) bearer(t *testing.T, userID int) string {
	t.Helper()
	token, err := f.codec.Issue(userID, time.Minute)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestGetTasksFormatsBackendData(t *testing.T) {
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]taskly.Task{
			{
				TaskID:   1,
				Title:    "Test Task",
				EndTime:  "2025-12-15T18:00:00+00:00",
				Priority: "Alta",
				Status:   "In sospeso",
				Category: "Lavoro",
			},
		})
	})
	defer fx.shutdown()

	view, err := fx.facade.GetTasks(context.Background(), fx.bearer(t, 42))
	require.NoError(t, err)

	require.Len(t, view.Tasks, 1)
	assert.Equal(t, "⚡", view.Tasks[0].PriorityEmoji)
	assert.Equal(t, "#3B82F6", view.Tasks[0].CategoryColor)
	assert.Equal(t, 1, view.Summary.Total)
	assert.Equal(t, 1, view.Summary.HighPriority)
}

func TestAuthFailureShortCircuitsBackend(t *testing.T) {
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]taskly.Task{})
	})
	defer fx.shutdown()

	headers := []string{
		"",
		"Bearer not-a-token",
		"Basic abc",
	}

	for _, header := range headers {
		_, err := fx.facade.GetTasks(context.Background(), header)
		require.Error(t, err)

		var authErr *auth.AuthError
		assert.True(t, errors.As(err, &authErr), "header %q: expected AuthError, got %T", header, err)
	}

	// Expired credentials must be rejected the same way.
	expired, err := fx.codec.Issue(1, -time.Minute)
	require.NoError(t, err)
	_, err = fx.facade.GetTasks(context.Background(), "Bearer "+expired)
	var authErr *auth.AuthError
	require.True(t, errors.As(err, &authErr))

	assert.Equal(t, int64(0), fx.hits.Load(), "backend must never be reached on auth failure")
}

func TestGetCategoriesReturnsEmptySliceNotNil(t *testing.T) {
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})
	defer fx.shutdown()

	result, err := fx.facade.GetCategories(context.Background(), fx.bearer(t, 7))
	require.NoError(t, err)
	assert.NotNil(t, result.Categories)
	assert.Empty(t, result.Categories)
	assert.Equal(t, 0, result.Total)

	payload, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"categories":[],"total":0}`, string(payload))
}

func TestCreateNoteValidatesTitle(t *testing.T) {
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"note_id": 1})
	})
	defer fx.shutdown()

	_, err := fx.facade.CreateNote(context.Background(), fx.bearer(t, 7), NoteRequest{})
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "title", validationErr.Field)
	assert.Equal(t, int64(0), fx.hits.Load(), "backend must not be reached on validation failure")
}

func TestCreateNoteAppliesDefaults(t *testing.T) {
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "0", body["position_x"])
		assert.Equal(t, "0", body["position_y"])
		assert.Equal(t, "#FFEB3B", body["color"])
		_ = json.NewEncoder(w).Encode(map[string]int{"note_id": 5})
	})
	defer fx.shutdown()

	note, err := fx.facade.CreateNote(context.Background(), fx.bearer(t, 7), NoteRequest{Title: "Promemoria"})
	require.NoError(t, err)
	assert.Equal(t, 5, note.NoteID)
	assert.Equal(t, DefaultNotePosition, note.PositionX)
	assert.Equal(t, DefaultNoteColor, note.Color)
}

func TestUpstreamErrorsPropagate(t *testing.T) {
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusServiceUnavailable)
	})
	defer fx.shutdown()

	_, err := fx.facade.GetTasks(context.Background(), fx.bearer(t, 7))
	require.Error(t, err)

	var upstreamErr *taskly.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusServiceUnavailable, upstreamErr.StatusCode)
}

func TestHealthCheckNeverFails(t *testing.T) {
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	result := fx.facade.HealthCheck(context.Background())
	assert.Equal(t, taskly.StatusHealthy, result.MCPServer)
	assert.Equal(t, taskly.StatusHealthy, result.Backend)
	assert.Equal(t, fx.backend.URL, result.BackendURL)

	fx.shutdown()
	result = fx.facade.HealthCheck(context.Background())
	assert.Equal(t, taskly.StatusHealthy, result.MCPServer)
	assert.Equal(t, taskly.StatusUnhealthy, result.Backend)
	assert.NotEmpty(t, result.BackendDetails.Error)
}

func TestValidateRegistration(t *testing.T) {
	names := make([]string, 0, len(Operations()))
	for _, op := range Operations() {
		names = append(names, op.Name)
	}
	require.NoError(t, ValidateRegistration(names))

	require.Error(t, ValidateRegistration(names[:len(names)-1]))
	require.Error(t, ValidateRegistration(append(append([]string{}, names...), "delete_everything")))
}
