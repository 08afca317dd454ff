package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/ruledist/ruledist/internal/cli"
)

func TestCLIInitialization(t *testing.T) {
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("creating pipe: %v", err)
	}
	os.Stdout = w

	runErr := cli.Run(context.Background(), []string{"ruledist", "--help"})

	if err := w.Close(); err != nil {
		t.Fatalf("closing pipe: %v", err)
	}
	os.Stdout = old

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("reading output: %v", err)
	}

	if runErr != nil {
		t.Errorf("expected --help to succeed, got: %v", runErr)
	}
	out := buf.String()
	if !strings.Contains(out, "ruledist") {
		t.Errorf("help output should mention the tool name, got:\n%s", out)
	}
	for _, cmd := range []string{"init", "update", "status", "list", "version"} {
		if !strings.Contains(out, cmd) {
			t.Errorf("help output missing %q command", cmd)
		}
	}
}

func TestRunReportsErrors(t *testing.T) {
	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("creating pipe: %v", err)
	}
	os.Stderr = w

	code := run([]string{"ruledist", "update", "--source", t.TempDir(), "--target", t.TempDir()})

	if err := w.Close(); err != nil {
		t.Fatalf("closing pipe: %v", err)
	}
	os.Stderr = old

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("reading output: %v", err)
	}

	if code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
	if !strings.Contains(buf.String(), "manifest") {
		t.Errorf("stderr should describe the failure, got:\n%s", buf.String())
	}
}
