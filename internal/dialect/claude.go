package dialect

import (
	"path/filepath"
	"strings"

	"github.com/ruledist/ruledist/internal/header"
	"github.com/ruledist/ruledist/internal/model"
)

// ClaudeAdapter targets Claude Code: rules stay markdown under .claude, the
// paths list collapses into a comma-separated globs string, skills keep the
// canonical SKILL.md layout, and technology settings templates merge into
// .claude/settings.json. Claude has no aggregate file; always-on rules are
// written standalone like any other rule.
type ClaudeAdapter struct{}

const claudeRoot = ".claude"

// SettingsFile is the destination-relative path of the Claude settings file.
const SettingsFile = claudeRoot + "/settings.json"

func (a *ClaudeAdapter) Name() model.Target { return model.ClaudeCode }

func (a *ClaudeAdapter) Root() string { return claudeRoot }

func (a *ClaudeAdapter) SupportsSkills() bool { return true }

func (a *ClaudeAdapter) SupportsSettings() bool { return true }

func (a *ClaudeAdapter) TransformRule(content, sourcePath string) Output {
	doc := header.Parse(content)
	if doc.Header == nil {
		return passThrough(content, sourcePath)
	}

	rewritten := rewriteHeader(doc.Header, func(out *header.Record, key string, value any) {
		if key == "paths" {
			if paths, ok := value.([]string); ok {
				out.Set("globs", strings.Join(paths, ", "))
				return
			}
		}
		out.Set(key, value)
	})

	return Output{
		Content:  header.Build(rewritten, doc.Body),
		Filename: filepath.Base(sourcePath),
		Global:   isGlobal(doc.Header),
	}
}

// TransformSkill keeps skills in their canonical shape; Claude Code is the
// reference layout for SKILL.md.
func (a *ClaudeAdapter) TransformSkill(content, sourcePath string) Output {
	return Output{
		Content:  content,
		Filename: "SKILL.md",
		SkillDir: skillName(sourcePath),
	}
}

func (a *ClaudeAdapter) AggregateGlobalRules(_ []GlobalRule) *Aggregate { return nil }

func (a *ClaudeAdapter) AggregatePath() string { return "" }

func (a *ClaudeAdapter) RuleOutputPath(technology, filename string) string {
	return filepath.Join(claudeRoot, "rules", technology, filename)
}

func (a *ClaudeAdapter) SharedRuleOutputPath(relPath string) string {
	return filepath.Join(claudeRoot, "rules", "shared", relPath)
}

func (a *ClaudeAdapter) SkillOutputPath(skillDir, filename string) string {
	return filepath.Join(claudeRoot, "skills", skillDir, filename)
}
