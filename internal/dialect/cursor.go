package dialect

import (
	"path/filepath"
	"strings"

	"github.com/ruledist/ruledist/internal/header"
	"github.com/ruledist/ruledist/internal/model"
)

// CursorAdapter targets Cursor: rules become .mdc files under .cursor/rules,
// the paths list is renamed to globs with its array shape kept, and
// always-on rules collapse into a single .cursorrules file at the project
// root. Cursor has no settings template or skill layout.
type CursorAdapter struct{}

const (
	cursorRoot      = ".cursor"
	cursorAggregate = ".cursorrules"
)

func (a *CursorAdapter) Name() model.Target { return model.Cursor }

func (a *CursorAdapter) Root() string { return cursorRoot }

func (a *CursorAdapter) SupportsSkills() bool { return false }

func (a *CursorAdapter) SupportsSettings() bool { return false }

func (a *CursorAdapter) TransformRule(content, sourcePath string) Output {
	doc := header.Parse(content)
	if doc.Header == nil {
		// Content passes through untouched but the extension swap still
		// applies.
		out := passThrough(content, sourcePath)
		out.Filename = ruleStem(sourcePath) + ".mdc"
		return out
	}

	rewritten := rewriteHeader(doc.Header, func(out *header.Record, key string, value any) {
		if key == "paths" {
			out.Set("globs", value)
			return
		}
		out.Set(key, value)
	})

	return Output{
		Content:  header.Build(rewritten, doc.Body),
		Filename: ruleStem(sourcePath) + ".mdc",
		Global:   isGlobal(doc.Header),
	}
}

func (a *CursorAdapter) TransformSkill(content, sourcePath string) Output {
	return passThrough(content, sourcePath)
}

// AggregateGlobalRules builds the .cursorrules file: each rule's body under
// a heading taken from its description, falling back to a title derived
// from the filename.
func (a *CursorAdapter) AggregateGlobalRules(rules []GlobalRule) *Aggregate {
	if len(rules) == 0 {
		return nil
	}

	var b strings.Builder
	for i, rule := range rules {
		doc := header.Parse(rule.Content)
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("# ")
		b.WriteString(aggregateLabel(doc.Header, rule.SourcePath))
		b.WriteString("\n\n")
		b.WriteString(strings.TrimRight(doc.Body, "\n"))
		b.WriteString("\n")
	}

	return &Aggregate{Filename: cursorAggregate, Content: b.String()}
}

func (a *CursorAdapter) AggregatePath() string { return cursorAggregate }

func (a *CursorAdapter) RuleOutputPath(technology, filename string) string {
	return filepath.Join(cursorRoot, "rules", technology, filename)
}

func (a *CursorAdapter) SharedRuleOutputPath(relPath string) string {
	return filepath.Join(cursorRoot, "rules", "shared", relPath)
}

func (a *CursorAdapter) SkillOutputPath(_, _ string) string { return "" }
