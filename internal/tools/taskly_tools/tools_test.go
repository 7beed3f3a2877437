package taskly_tools

import (
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mytaskly/taskly-mcp/internal/auth"
	"github.com/mytaskly/taskly-mcp/internal/config"
	"github.com/mytaskly/taskly-mcp/internal/facade"
	"github.com/mytaskly/taskly-mcp/internal/taskly"
)

func TestGetAuthorizationFromArgs(t *testing.T) {
	// Missing key yields the empty string; the facade rejects it.
	args := map[string]interface{}{}
	if got := getAuthorizationFromArgs(args); got != "" {
		t.Errorf("Expected empty authorization, got %s", got)
	}

	args = map[string]interface{}{
		"authorization": "Bearer abc",
	}
	if got := getAuthorizationFromArgs(args); got != "Bearer abc" {
		t.Errorf("Expected 'Bearer abc', got %s", got)
	}

	// Non-string value yields the empty string
	args = map[string]interface{}{
		"authorization": 123,
	}
	if got := getAuthorizationFromArgs(args); got != "" {
		t.Errorf("Expected empty authorization for non-string value, got %s", got)
	}
}

func TestGetStringOrDefault(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]interface{}
		key      string
		fallback string
		want     string
	}{
		{
			name:     "missing key falls back",
			args:     map[string]interface{}{},
			key:      "color",
			fallback: "#FFEB3B",
			want:     "#FFEB3B",
		},
		{
			name:     "empty value falls back",
			args:     map[string]interface{}{"color": ""},
			key:      "color",
			fallback: "#FFEB3B",
			want:     "#FFEB3B",
		},
		{
			name:     "present value wins",
			args:     map[string]interface{}{"color": "#FF0000"},
			key:      "color",
			fallback: "#FFEB3B",
			want:     "#FF0000",
		},
		{
			name:     "non-string value falls back",
			args:     map[string]interface{}{"color": 7},
			key:      "color",
			fallback: "#FFEB3B",
			want:     "#FFEB3B",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getStringOrDefault(tt.args, tt.key, tt.fallback); got != tt.want {
				t.Errorf("getStringOrDefault() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegisterTasklyTools(t *testing.T) {
	codec := auth.NewCodec("tools-test-secret", "taskly-mobile")
	cfg := config.Config{
		SigningSecret:  "tools-test-secret",
		BackendBaseURL: "http://localhost:1",
		BackendAPIKey:  "tools-test-api-key",
	}
	client := taskly.NewClient(cfg, codec)
	f := facade.New(codec, client)

	mcpSrv := mcpserver.NewMCPServer("taskly-mcp", "test",
		mcpserver.WithToolCapabilities(true),
	)
	if err := RegisterTasklyTools(mcpSrv, f); err != nil {
		t.Fatalf("RegisterTasklyTools() error = %v", err)
	}
}
