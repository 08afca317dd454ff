package installer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ManifestName is the manifest filename inside the primary dialect
// directory (.claude). The Claude directory hosts it because it is the only
// dialect root with a settings surface and therefore always present.
const ManifestName = "ruledist.json"

// ErrNoManifest indicates no prior installation was found at a destination.
var ErrNoManifest = errors.New("no ruledist manifest found")

// ManifestOptions records the choices made at install time.
type ManifestOptions struct {
	WithSkills bool `json:"withSkills"`
	WithRules  bool `json:"withRules"`
}

// Manifest is the persisted record of one installation. It is the single
// source of truth for what update re-applies, so it must round-trip through
// write and read without information loss.
type Manifest struct {
	Version      string          `json:"version"`
	Technologies []string        `json:"technologies"`
	Options      ManifestOptions `json:"options"`
	InstalledAt  time.Time       `json:"installedAt"`
}

// ManifestPath returns the manifest location for a destination.
func ManifestPath(dest string) string {
	return filepath.Join(dest, ".claude", ManifestName)
}

// ReadManifest loads the manifest for a destination. Missing files map to
// ErrNoManifest. Older manifests missing newer option keys decode with
// those options false; that is forward compatibility, not an error.
func ReadManifest(dest string) (*Manifest, error) {
	data, err := os.ReadFile(ManifestPath(dest))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoManifest
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %q: %w", ManifestPath(dest), err)
	}
	return &m, nil
}

// WriteManifest persists the manifest for a destination.
func WriteManifest(dest string, m Manifest) error {
	path := ManifestPath(dest)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o640); err != nil {
		return fmt.Errorf("failed to write manifest %q: %w", path, err)
	}
	return nil
}
