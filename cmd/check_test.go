package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mytaskly/taskly-mcp/internal/config"
)

func TestCheckRedactsSecrets(t *testing.T) {
	t.Setenv(config.EnvSigningSecret, "super-secret-value")
	t.Setenv(config.EnvBackendAPIKey, "api-key-value")
	t.Setenv(config.EnvBackendURL, "http://backend:8080")

	cmd := newCheckCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--skip-probe"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("check command error = %v", err)
	}

	output := out.String()
	if strings.Contains(output, "super-secret-value") || strings.Contains(output, "api-key-value") {
		t.Errorf("check output leaks secrets:\n%s", output)
	}
	if !strings.Contains(output, "Configuration OK") {
		t.Errorf("check output missing confirmation:\n%s", output)
	}
	for _, op := range []string{"get_tasks", "get_categories", "create_note", "health_check"} {
		if !strings.Contains(output, op) {
			t.Errorf("check output missing operation %s:\n%s", op, output)
		}
	}
}

func TestCheckFailsOnInvalidConfig(t *testing.T) {
	t.Setenv(config.EnvSigningSecret, "")
	t.Setenv(config.EnvBackendAPIKey, "")

	cmd := newCheckCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--skip-probe"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("check command expected error for missing configuration")
	}
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.2.3")

	cmd := newVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command error = %v", err)
	}
	if !strings.Contains(out.String(), "1.2.3") {
		t.Errorf("version output = %q, want to contain 1.2.3", out.String())
	}
}
