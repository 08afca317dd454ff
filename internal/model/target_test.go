package model

import "testing"

func TestTargetValidation(t *testing.T) {
	tests := map[string]struct {
		target Target
		valid  bool
	}{
		"claude code valid": {target: ClaudeCode, valid: true},
		"cursor valid":      {target: Cursor, valid: true},
		"copilot valid":     {target: Copilot, valid: true},
		"windsurf valid":    {target: Windsurf, valid: true},
		"empty invalid":     {target: "", valid: false},
		"unknown invalid":   {target: "unknown", valid: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := tt.target.IsValid()
			if got != tt.valid {
				t.Errorf("Target(%q).IsValid() = %v, want %v",
					tt.target, got, tt.valid)
			}
		})
	}
}

func TestAllTargets(t *testing.T) {
	targets := AllTargets()

	if len(targets) != 4 {
		t.Errorf("AllTargets() returned %d targets, want 4", len(targets))
	}
	if targets[0] != ClaudeCode {
		t.Errorf("AllTargets()[0] = %q, want %q", targets[0], ClaudeCode)
	}

	for _, tgt := range targets {
		if !tgt.IsValid() {
			t.Errorf("AllTargets() returned invalid target: %q", tgt)
		}
	}
}

func TestParseTarget(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    Target
		wantErr bool
	}{
		"claude":             {input: "claude", want: ClaudeCode},
		"claude-code alias":  {input: "claude-code", want: ClaudeCode},
		"claudecode alias":   {input: "claudecode", want: ClaudeCode},
		"cursor":             {input: "cursor", want: Cursor},
		"copilot":            {input: "copilot", want: Copilot},
		"github alias":       {input: "github-copilot", want: Copilot},
		"windsurf":           {input: "windsurf", want: Windsurf},
		"empty rejected":     {input: "", wantErr: true},
		"uppercase rejected": {input: "Cursor", wantErr: true},
		"unknown rejected":   {input: "zed", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseTarget(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTarget(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTarget(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTarget(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTargets(t *testing.T) {
	got, err := ParseTargets([]string{"cursor", "claude"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != Cursor || got[1] != ClaudeCode {
		t.Errorf("ParseTargets() = %v, want [cursor claude]", got)
	}

	if _, err := ParseTargets([]string{"cursor", "zed"}); err == nil {
		t.Error("ParseTargets() expected error for unknown target")
	}
}
