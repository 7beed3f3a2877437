package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestSetupWithWriterLevels(t *testing.T) {
	var buf bytes.Buffer
	SetupWithWriter(&buf, "warn")

	slog.Info("hidden")
	slog.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "visible") {
		t.Error("warn message should pass at warn level")
	}
}

func TestSetupWithWriterUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	SetupWithWriter(&buf, "chatty")

	slog.Debug("hidden")
	slog.Info("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "visible") {
		t.Errorf("unexpected output for default level: %q", out)
	}
}

func TestErrNilIsOmitted(t *testing.T) {
	var buf bytes.Buffer
	SetupWithWriter(&buf, "info")

	slog.Info("message", Err(nil))
	if strings.Contains(buf.String(), KeyError) {
		t.Errorf("nil error should not appear in output: %q", buf.String())
	}

	buf.Reset()
	slog.Info("message", Err(errors.New("boom")))
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("error value missing from output: %q", buf.String())
	}
}

func TestAnonymizeSubject(t *testing.T) {
	first := AnonymizeSubject(42)
	if !strings.HasPrefix(first, "user:") {
		t.Errorf("AnonymizeSubject() = %q, want user: prefix", first)
	}
	if strings.Contains(first, "42") {
		t.Errorf("AnonymizeSubject() = %q, leaks the raw identifier", first)
	}
	if first != AnonymizeSubject(42) {
		t.Error("AnonymizeSubject() must be deterministic")
	}
	if first == AnonymizeSubject(43) {
		t.Error("AnonymizeSubject() must distinguish identifiers")
	}
}

func TestSanitizers(t *testing.T) {
	if got := SanitizeToken(""); got != "<empty>" {
		t.Errorf("SanitizeToken(\"\") = %q", got)
	}
	if got := SanitizeToken("abcdef"); got != "[token:6 chars]" {
		t.Errorf("SanitizeToken() = %q", got)
	}
	if got := SanitizeSecret(""); got != "<unset>" {
		t.Errorf("SanitizeSecret(\"\") = %q", got)
	}
	if got := SanitizeSecret("hunter2"); got != "[secret:7 chars]" {
		t.Errorf("SanitizeSecret() = %q", got)
	}
	if strings.Contains(SanitizeSecret("hunter2"), "hunter2") {
		t.Error("SanitizeSecret() must not leak the secret")
	}
}
