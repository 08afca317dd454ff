package dialect

import (
	"path/filepath"
	"strings"

	"github.com/ruledist/ruledist/internal/header"
	"github.com/ruledist/ruledist/internal/model"
)

// CopilotAdapter targets GitHub Copilot: rules become .instructions.md files
// under .github/instructions, the paths list is renamed to applyTo, and the
// alwaysApply marker is dropped because Copilot expresses always-on rules
// only through the aggregate .github/copilot-instructions.md file.
type CopilotAdapter struct{}

const (
	copilotRoot      = ".github/instructions"
	copilotAggregate = ".github/copilot-instructions.md"
)

func (a *CopilotAdapter) Name() model.Target { return model.Copilot }

func (a *CopilotAdapter) Root() string { return copilotRoot }

func (a *CopilotAdapter) SupportsSkills() bool { return false }

func (a *CopilotAdapter) SupportsSettings() bool { return false }

func (a *CopilotAdapter) TransformRule(content, sourcePath string) Output {
	doc := header.Parse(content)
	if doc.Header == nil {
		// Content passes through untouched but the extension swap still
		// applies.
		out := passThrough(content, sourcePath)
		out.Filename = ruleStem(sourcePath) + ".instructions.md"
		return out
	}

	rewritten := rewriteHeader(doc.Header, func(out *header.Record, key string, value any) {
		switch key {
		case "paths":
			out.Set("applyTo", value)
		case "alwaysApply":
			// dropped: Copilot has no per-file always-on field
		default:
			out.Set(key, value)
		}
	})

	return Output{
		Content:  header.Build(rewritten, doc.Body),
		Filename: ruleStem(sourcePath) + ".instructions.md",
		Global:   isGlobal(doc.Header),
	}
}

func (a *CopilotAdapter) TransformSkill(content, sourcePath string) Output {
	return passThrough(content, sourcePath)
}

// AggregateGlobalRules builds copilot-instructions.md: a fixed top heading
// with one section per rule, titled by filename stem and description.
func (a *CopilotAdapter) AggregateGlobalRules(rules []GlobalRule) *Aggregate {
	if len(rules) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("# Project Instructions\n")
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

	return &Aggregate{Filename: filepath.Base(copilotAggregate), Content: b.String()}
}

func (a *CopilotAdapter) AggregatePath() string {
	return filepath.FromSlash(copilotAggregate)
}

func (a *CopilotAdapter) RuleOutputPath(technology, filename string) string {
	return filepath.Join(filepath.FromSlash(copilotRoot), technology, filename)
}

func (a *CopilotAdapter) SharedRuleOutputPath(relPath string) string {
	return filepath.Join(filepath.FromSlash(copilotRoot), "shared", relPath)
}

func (a *CopilotAdapter) SkillOutputPath(_, _ string) string { return "" }
