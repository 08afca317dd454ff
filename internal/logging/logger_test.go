package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelWarn, Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestAttributeHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Output: &buf})

	logger.Debug("installing",
		Technology("react"),
		Target("cursor"),
		Path(".cursor/rules/react/hooks.mdc"),
		Operation("init"),
		Count(3),
	)

	out := buf.String()
	for _, want := range []string{
		"technology=react",
		"target=cursor",
		"operation=init",
		"count=3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestErrNil(t *testing.T) {
	if attr := Err(nil); attr.Key != "" {
		t.Errorf("Err(nil) = %v, want empty attr", attr)
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Level != slog.LevelWarn {
		t.Errorf("default level = %v, want warn", opts.Level)
	}
	if opts.AddSource {
		t.Error("AddSource should default to false")
	}
}
