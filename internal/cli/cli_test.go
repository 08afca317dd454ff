package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruledist/ruledist/internal/ui"
)

func TestVersionVariables(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if Commit == "" {
		t.Error("Commit should not be empty")
	}
	if BuildDate == "" {
		t.Error("BuildDate should not be empty")
	}
}

// writeSource lays out a minimal canonical tree for command tests.
func writeSource(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"rulesets.yaml": "technologies:\n  react:\n    description: React rules\n",
		"technologies/react/rules/hooks.md": "---\ndescription: Hooks\npaths:\n  - \"**/*.tsx\"\n---\n\nRule body.",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o640))
	}
	return root
}

// capture runs the CLI and returns its stdout.
func capture(t *testing.T, args ...string) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := Run(context.Background(), args)

	require.NoError(t, w.Close())
	os.Stdout = old

	var buf bytes.Buffer
	_, copyErr := io.Copy(&buf, r)
	require.NoError(t, copyErr)
	return buf.String(), runErr
}

func TestInitCommand(t *testing.T) {
	src := writeSource(t)
	dest := t.TempDir()

	out, err := capture(t, "ruledist", "init", "--source", src, "--target", dest, "--targets", "cursor", "react")
	require.NoError(t, err)
	assert.Contains(t, out, "created")
	assert.FileExists(t, filepath.Join(dest, ".cursor", "rules", "react", "hooks.mdc"))
}

func TestInitCommandUnknownTechnology(t *testing.T) {
	src := writeSource(t)
	dest := t.TempDir()

	_, err := capture(t, "ruledist", "init", "--source", src, "--target", dest, "rails")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rails")
}

func TestInitCommandNoArgsNonInteractive(t *testing.T) {
	src := writeSource(t)

	// Test stdin is not a terminal, so the picker must not launch.
	_, err := capture(t, "ruledist", "init", "--source", src, "--target", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no technologies")
}

func TestInitCommandInvalidTarget(t *testing.T) {
	src := writeSource(t)

	_, err := capture(t, "ruledist", "init", "--source", src, "--targets", "zed", "react")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zed")
}

func TestInitCommandDryRun(t *testing.T) {
	src := writeSource(t)
	dest := t.TempDir()

	out, err := capture(t, "ruledist", "init", "--source", src, "--target", dest, "--dry-run", "react")
	require.NoError(t, err)
	assert.Contains(t, out, "would-create")

	entries, readErr := os.ReadDir(dest)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestUpdateCommandWithoutManifest(t *testing.T) {
	src := writeSource(t)

	_, err := capture(t, "ruledist", "update", "--source", src, "--target", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest")
}

func TestUpdateCommandAfterInit(t *testing.T) {
	src := writeSource(t)
	dest := t.TempDir()

	_, err := capture(t, "ruledist", "init", "--source", src, "--target", dest, "react")
	require.NoError(t, err)

	out, err := capture(t, "ruledist", "update", "--source", src, "--target", dest, "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "unchanged")
}

func TestStatusCommand(t *testing.T) {
	src := writeSource(t)
	dest := t.TempDir()

	// Before any install: informational, exit zero.
	out, err := capture(t, "ruledist", "status", "--target", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "no ruledist installation")

	_, err = capture(t, "ruledist", "init", "--source", src, "--target", dest, "react")
	require.NoError(t, err)

	out, err = capture(t, "ruledist", "status", "--target", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "react")
	assert.Contains(t, out, "up to date")
}

func TestListCommand(t *testing.T) {
	src := writeSource(t)

	out, err := capture(t, "ruledist", "list", "--source", src)
	require.NoError(t, err)
	assert.Contains(t, out, "react")
	assert.Contains(t, out, "React rules")
}

func TestListCommandEmptySource(t *testing.T) {
	out, err := capture(t, "ruledist", "list", "--source", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "no technologies")
}

func TestColorConfiguration(t *testing.T) {
	wasEnabled := ui.IsColorEnabled()
	defer func() {
		if wasEnabled {
			ui.EnableColors()
		} else {
			ui.DisableColors()
		}
	}()

	t.Setenv("CLICOLOR_FORCE", "1")
	_, err := capture(t, "ruledist", "version")
	require.NoError(t, err)
	assert.True(t, ui.IsColorEnabled(), "CLICOLOR_FORCE must enable colors")

	_, err = capture(t, "ruledist", "--no-color", "version")
	require.NoError(t, err)
	assert.False(t, ui.IsColorEnabled(), "--no-color must win over CLICOLOR_FORCE")
}

func TestHelpOutput(t *testing.T) {
	out, err := capture(t, "ruledist", "--help")
	require.NoError(t, err)
	for _, cmd := range []string{"init", "update", "status", "list"} {
		if !strings.Contains(out, cmd) {
			t.Errorf("help output missing %q command", cmd)
		}
	}
}
