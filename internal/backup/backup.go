// Package backup copies destination files aside before they are
// overwritten. Backups are write-once: nothing in ruledist reads them back,
// they exist purely for manual recovery.
package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// Dir is the backup directory name under the destination root.
	Dir = ".ruledist-backups"

	// dirPerm is the permission for backup directories (rwxr-x---).
	dirPerm = 0o750
	// filePerm is the permission for backup files (rw-r-----).
	filePerm = 0o640
)

// Create copies filePath into the destination's backup directory before an
// overwrite. The backup keeps the file's destination-relative path under a
// run-unique directory named from the current time and a content hash, so
// repeated runs never collide and a human can map a backup straight back to
// the file it came from. Returns the backup path.
func Create(destRoot, filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file for backup %q: %w", filePath, err)
	}

	rel, err := filepath.Rel(destRoot, filePath)
	if err != nil || filepath.IsAbs(rel) {
		rel = filepath.Base(filePath)
	}

	hash := sha256.Sum256(content)
	id := time.Now().Format("20060102-150405") + "-" + hex.EncodeToString(hash[:])[:8]

	backupPath := filepath.Join(destRoot, Dir, id, rel)
	if err := os.MkdirAll(filepath.Dir(backupPath), dirPerm); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if err := os.WriteFile(backupPath, content, filePerm); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	return backupPath, nil
}
