package installer

import (
	"encoding/json"
	"fmt"
	"os"
)

// mergeSettings merges a technology's settings template into an existing
// settings document. Merge rules:
//
//   - permissions.allow and permissions.deny: set union preserving
//     first-seen order, exact duplicates removed
//   - env: template keys are added only when absent, so a user's prior
//     customization of a key is never overwritten
//   - any other top-level key in the existing document is preserved as-is;
//     template-only keys are added
//
// Both inputs are generic JSON objects; an existing document that is not
// valid JSON is the caller's fatal error, never silently discarded.
func mergeSettings(existing, template map[string]any) map[string]any {
	merged := make(map[string]any, len(existing)+len(template))
	for k, v := range existing {
		merged[k] = v
	}

	for key, tmplValue := range template {
		switch key {
		case "permissions":
			merged[key] = mergePermissions(asObject(existing[key]), asObject(tmplValue))
		case "env":
			merged[key] = mergeEnv(asObject(existing[key]), asObject(tmplValue))
		default:
			if _, exists := merged[key]; !exists {
				merged[key] = tmplValue
			}
		}
	}

	return merged
}

func mergePermissions(existing, template map[string]any) map[string]any {
	merged := make(map[string]any, len(existing)+1)
	for k, v := range existing {
		merged[k] = v
	}
	for _, field := range []string{"allow", "deny"} {
		union := unionStrings(asStrings(existing[field]), asStrings(template[field]))
		if len(union) > 0 {
			merged[field] = union
		}
	}
	return merged
}

func mergeEnv(existing, template map[string]any) map[string]any {
	merged := make(map[string]any, len(existing)+len(template))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range template {
		if _, exists := merged[k]; !exists {
			merged[k] = v
		}
	}
	return merged
}

// unionStrings appends extras to base, keeping first-seen order and
// dropping exact duplicates.
func unionStrings(base, extras []string) []string {
	seen := make(map[string]bool, len(base)+len(extras))
	var out []string
	for _, s := range append(base, extras...) {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func asObject(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}

func asStrings(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// readSettings parses a settings document from disk. A missing file is an
// empty document; an unparseable one is fatal, since dropping a user's
// existing permissions file would be a security-relevant regression.
func readSettings(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("failed to read settings %q: %w", path, err)
	}

	doc, err := parseSettings(data)
	if err != nil {
		return nil, fmt.Errorf("existing settings file %q is not valid JSON: %w", path, err)
	}
	return doc, nil
}

// parseSettings decodes a settings document.
func parseSettings(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// encodeSettings renders a settings document deterministically (JSON object
// keys sort alphabetically), which keeps repeated runs byte-identical.
func encodeSettings(doc map[string]any) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	return append(data, '\n'), nil
}
