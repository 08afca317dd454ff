package installer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSettings(t *testing.T) {
	tests := map[string]struct {
		existing map[string]any
		template map[string]any
		check    func(t *testing.T, merged map[string]any)
	}{
		"deny union keeps first-seen order": {
			existing: map[string]any{
				"permissions": map[string]any{"deny": []any{"Bash(rm -rf *)"}},
			},
			template: map[string]any{
				"permissions": map[string]any{"deny": []any{"Bash(curl *)", "Bash(rm -rf *)"}},
			},
			check: func(t *testing.T, merged map[string]any) {
				perms := merged["permissions"].(map[string]any)
				assert.Equal(t, []string{"Bash(rm -rf *)", "Bash(curl *)"}, perms["deny"])
			},
		},
		"allow and deny merged independently": {
			existing: map[string]any{
				"permissions": map[string]any{"allow": []any{"Read"}},
			},
			template: map[string]any{
				"permissions": map[string]any{
					"allow": []any{"Read", "Glob"},
					"deny":  []any{"Bash(curl *)"},
				},
			},
			check: func(t *testing.T, merged map[string]any) {
				perms := merged["permissions"].(map[string]any)
				assert.Equal(t, []string{"Read", "Glob"}, perms["allow"])
				assert.Equal(t, []string{"Bash(curl *)"}, perms["deny"])
			},
		},
		"existing env keys win": {
			existing: map[string]any{
				"env": map[string]any{"NODE_ENV": "production"},
			},
			template: map[string]any{
				"env": map[string]any{"NODE_ENV": "development", "CI": "true"},
			},
			check: func(t *testing.T, merged map[string]any) {
				env := merged["env"].(map[string]any)
				assert.Equal(t, "production", env["NODE_ENV"])
				assert.Equal(t, "true", env["CI"])
			},
		},
		"unknown existing keys preserved": {
			existing: map[string]any{"model": "opus", "hooks": []any{"fmt"}},
			template: map[string]any{"model": "haiku"},
			check: func(t *testing.T, merged map[string]any) {
				assert.Equal(t, "opus", merged["model"])
				assert.Equal(t, []any{"fmt"}, merged["hooks"])
			},
		},
		"template-only keys added": {
			existing: map[string]any{},
			template: map[string]any{"env": map[string]any{"CI": "true"}},
			check: func(t *testing.T, merged map[string]any) {
				env := merged["env"].(map[string]any)
				assert.Equal(t, "true", env["CI"])
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			tc.check(t, mergeSettings(tc.existing, tc.template))
		})
	}
}

func TestMergeSettingsIdempotent(t *testing.T) {
	existing := map[string]any{
		"permissions": map[string]any{"deny": []any{"Bash(rm -rf *)"}},
	}
	template := map[string]any{
		"permissions": map[string]any{"deny": []any{"Bash(curl *)"}},
	}

	once := mergeSettings(existing, template)
	first, err := encodeSettings(once)
	require.NoError(t, err)

	reparsed, err := parseSettings(first)
	require.NoError(t, err)
	second, err := encodeSettings(mergeSettings(reparsed, template))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second), "re-merging must not accumulate entries")
}

func TestParseSettingsInvalid(t *testing.T) {
	_, err := parseSettings([]byte("{broken"))
	require.Error(t, err)
}

func TestUnionStrings(t *testing.T) {
	got := unionStrings([]string{"a", "b"}, []string{"b", "c", "a", "c"})
	assert.Equal(t, []string{"a", "b", "c"}, got)

	assert.Nil(t, unionStrings(nil, nil))
}
