// Package model defines the shared value types for ruledist: the set of
// supported target tools and the identifiers used to select them.
package model

import "fmt"

// Target represents a supported assistant tool dialect.
type Target string

const (
	ClaudeCode Target = "claude"
	Cursor     Target = "cursor"
	Copilot    Target = "copilot"
	Windsurf   Target = "windsurf"
)

// IsValid returns true if the target is recognized.
func (t Target) IsValid() bool {
	switch t {
	case ClaudeCode, Cursor, Copilot, Windsurf:
		return true
	default:
		return false
	}
}

// AllTargets returns all supported targets in their canonical order.
// ClaudeCode comes first because it is the primary dialect: it owns the
// settings surface and the manifest location.
func AllTargets() []Target {
	return []Target{ClaudeCode, Cursor, Copilot, Windsurf}
}

// ParseTarget converts a user-supplied identifier into a Target.
// A few common aliases are accepted.
func ParseTarget(s string) (Target, error) {
	switch s {
	case "claude", "claude-code", "claudecode":
		return ClaudeCode, nil
	case "cursor":
		return Cursor, nil
	case "copilot", "github-copilot":
		return Copilot, nil
	case "windsurf":
		return Windsurf, nil
	default:
		return "", fmt.Errorf("unknown target %q (supported: claude, cursor, copilot, windsurf)", s)
	}
}

// ParseTargets converts a list of identifiers, rejecting the first invalid one.
func ParseTargets(names []string) ([]Target, error) {
	targets := make([]Target, 0, len(names))
	for _, name := range names {
		t, err := ParseTarget(name)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}
