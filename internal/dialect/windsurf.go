package dialect

import (
	"path/filepath"
	"strings"

	"github.com/ruledist/ruledist/internal/header"
	"github.com/ruledist/ruledist/internal/model"
)

// WindsurfAdapter targets Windsurf: rules stay markdown under
// .windsurf/rules with an explicit trigger field (glob for path-scoped
// rules, always for global ones), global rules also collapse into
// .windsurf/rules/global-rules.md, and skills become workflows: a
// workflow.md per skill directory with trigger: manual.
type WindsurfAdapter struct{}

const (
	windsurfRoot      = ".windsurf"
	windsurfAggregate = ".windsurf/rules/global-rules.md"
)

func (a *WindsurfAdapter) Name() model.Target { return model.Windsurf }

func (a *WindsurfAdapter) Root() string { return windsurfRoot }

func (a *WindsurfAdapter) SupportsSkills() bool { return true }

func (a *WindsurfAdapter) SupportsSettings() bool { return false }

func (a *WindsurfAdapter) TransformRule(content, sourcePath string) Output {
	doc := header.Parse(content)
	if doc.Header == nil {
		return passThrough(content, sourcePath)
	}

	global := isGlobal(doc.Header)
	hasPaths := false

	rewritten := rewriteHeader(doc.Header, func(out *header.Record, key string, value any) {
		switch key {
		case "alwaysApply":
			if global {
				out.Set("trigger", "always")
				return
			}
			// alwaysApply: false carries no information here
		case "paths":
			if global {
				// always-on rules must not carry a glob restriction
				return
			}
			out.Set("globs", value)
			hasPaths = true
		default:
			out.Set(key, value)
		}
	})
	if hasPaths {
		rewritten.Set("trigger", "glob")
	}

	return Output{
		Content:  header.Build(rewritten, doc.Body),
		Filename: filepath.Base(sourcePath),
		Global:   global,
	}
}

// TransformSkill turns a SKILL.md into a Windsurf workflow: same directory
// name, workflow.md filename, manual trigger.
func (a *WindsurfAdapter) TransformSkill(content, sourcePath string) Output {
	doc := header.Parse(content)
	if doc.Header == nil {
		return Output{
			Content:  content,
			Filename: "workflow.md",
			SkillDir: skillName(sourcePath),
		}
	}

	rewritten := rewriteHeader(doc.Header, func(out *header.Record, key string, value any) {
		out.Set(key, value)
	})
	rewritten.Set("trigger", "manual")

	return Output{
		Content:  header.Build(rewritten, doc.Body),
		Filename: "workflow.md",
		SkillDir: skillName(sourcePath),
	}
}

// AggregateGlobalRules builds global-rules.md with the same section format
// as the Copilot aggregate, under a Windsurf-specific heading.
func (a *WindsurfAdapter) AggregateGlobalRules(rules []GlobalRule) *Aggregate {
	if len(rules) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("# Global Rules\n")
	for _, rule := range rules {
		doc := header.Parse(rule.Content)
		b.WriteString("\n## ")
		b.WriteString(ruleStem(rule.SourcePath))
		b.WriteString(" - ")
		b.WriteString(aggregateLabel(doc.Header, rule.SourcePath))
		b.WriteString("\n\n")
		b.WriteString(strings.TrimRight(doc.Body, "\n"))
		b.WriteString("\n")
	}

	return &Aggregate{Filename: filepath.Base(windsurfAggregate), Content: b.String()}
}

func (a *WindsurfAdapter) AggregatePath() string {
	return filepath.FromSlash(windsurfAggregate)
}

func (a *WindsurfAdapter) RuleOutputPath(technology, filename string) string {
	return filepath.Join(windsurfRoot, "rules", technology, filename)
}

func (a *WindsurfAdapter) SharedRuleOutputPath(relPath string) string {
	return filepath.Join(windsurfRoot, "rules", "shared", relPath)
}

func (a *WindsurfAdapter) SkillOutputPath(skillDir, filename string) string {
	return filepath.Join(windsurfRoot, "workflows", skillDir, filename)
}
