package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	dest := t.TempDir()
	orig := filepath.Join(dest, ".cursor", "rules", "react", "hooks.mdc")
	require.NoError(t, os.MkdirAll(filepath.Dir(orig), 0o750))
	require.NoError(t, os.WriteFile(orig, []byte("original content"), 0o640))

	backupPath, err := Create(dest, orig)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(backupPath, filepath.Join(dest, Dir)),
		"backup must live under the destination backup dir: %s", backupPath)
	assert.True(t, strings.HasSuffix(backupPath, filepath.Join(".cursor", "rules", "react", "hooks.mdc")),
		"backup must keep the destination-relative path: %s", backupPath)

	content, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, "original content", string(content))
}

func TestCreateMissingFile(t *testing.T) {
	dest := t.TempDir()
	_, err := Create(dest, filepath.Join(dest, "nope.md"))
	require.Error(t, err)
}

func TestCreateDistinctContentDistinctBackups(t *testing.T) {
	dest := t.TempDir()
	orig := filepath.Join(dest, "file.md")
	require.NoError(t, os.WriteFile(orig, []byte("one"), 0o640))

	first, err := Create(dest, orig)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(orig, []byte("two"), 0o640))
	second, err := Create(dest, orig)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "different content must hash to different backup dirs")
}
