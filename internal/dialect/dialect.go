// Package dialect translates canonical rule and skill documents into the
// on-disk shape each target tool expects. Every target implements the same
// Adapter contract; the differences are confined to header field names, file
// extensions, and aggregation conventions. Adding a tool means adding an
// implementation, never editing an existing one.
package dialect

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ruledist/ruledist/internal/header"
	"github.com/ruledist/ruledist/internal/model"
)

// Output is the result of adapting one document for one target.
type Output struct {
	// Content is the fully rewritten document.
	Content string

	// Filename is the target-specific file name for the document.
	Filename string

	// Global is true when the document has no path restriction and must be
	// merged into the target's always-on aggregate file.
	Global bool

	// SkillDir is the directory a skill is placed under in the target
	// layout. Empty for rules.
	SkillDir string
}

// GlobalRule is one rule collected for aggregation, in its canonical form.
type GlobalRule struct {
	Content    string
	SourcePath string
}

// Aggregate is the combined always-on document for one target.
type Aggregate struct {
	Filename string
	Content  string
}

// Adapter converts canonical documents into one target dialect.
type Adapter interface {
	// Name returns the target this adapter serves.
	Name() model.Target

	// Root returns the target's destination-relative root directory.
	Root() string

	// SupportsSkills reports whether the target has a skill/workflow layout.
	SupportsSkills() bool

	// SupportsSettings reports whether the target has a settings file that
	// technology templates merge into.
	SupportsSettings() bool

	// TransformRule rewrites one rule document. Documents without a
	// parseable header pass through byte-identical with Global=false.
	TransformRule(content, sourcePath string) Output

	// TransformSkill rewrites one skill document. Only meaningful when
	// SupportsSkills is true.
	TransformSkill(content, sourcePath string) Output

	// AggregateGlobalRules combines every global rule into one document,
	// or returns nil when the list is empty or the target has no
	// aggregate file.
	AggregateGlobalRules(rules []GlobalRule) *Aggregate

	// AggregatePath returns the destination-relative path of the aggregate
	// file, or empty when the target has none.
	AggregatePath() string

	// RuleOutputPath computes the destination-relative path for a
	// technology rule file.
	RuleOutputPath(technology, filename string) string

	// SharedRuleOutputPath computes the destination-relative path for a
	// shared rule, given its category-relative path.
	SharedRuleOutputPath(relPath string) string

	// SkillOutputPath computes the destination-relative path for a skill
	// file. Empty when skills are unsupported.
	SkillOutputPath(skillDir, filename string) string
}

// ForTarget returns the adapter for a single target.
func ForTarget(t model.Target) (Adapter, error) {
	switch t {
	case model.ClaudeCode:
		return &ClaudeAdapter{}, nil
	case model.Cursor:
		return &CursorAdapter{}, nil
	case model.Copilot:
		return &CopilotAdapter{}, nil
	case model.Windsurf:
		return &WindsurfAdapter{}, nil
	default:
		return nil, fmt.Errorf("no adapter for target %q", t)
	}
}

// ForTargets returns adapters for each target, in order.
func ForTargets(targets []model.Target) ([]Adapter, error) {
	adapters := make([]Adapter, 0, len(targets))
	for _, t := range targets {
		a, err := ForTarget(t)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}
	return adapters, nil
}

// isGlobal reports whether a parsed header marks the document as always-on.
func isGlobal(rec *header.Record) bool {
	v, _ := rec.GetBool("alwaysApply")
	return v
}

// rewriteHeader builds a new record from rec, letting fn decide how each
// field maps into the output. Field order is preserved.
func rewriteHeader(rec *header.Record, fn func(out *header.Record, key string, value any)) *header.Record {
	out := header.NewRecord()
	for _, key := range rec.Keys() {
		value, _ := rec.Get(key)
		fn(out, key, value)
	}
	return out
}

// passThrough is the Output for documents with no parseable header.
func passThrough(content, sourcePath string) Output {
	return Output{Content: content, Filename: filepath.Base(sourcePath)}
}

// titleFromStem derives a human title from a filename stem: hyphens become
// spaces and each word is capitalized.
func titleFromStem(sourcePath string) string {
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	words := strings.Split(strings.ReplaceAll(stem, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ruleStem returns the filename without extension.
func ruleStem(sourcePath string) string {
	base := filepath.Base(sourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// aggregateLabel picks the section label for a rule inside an aggregate
// file: its description when present, otherwise a title derived from the
// filename stem.
func aggregateLabel(rec *header.Record, sourcePath string) string {
	if desc, ok := rec.GetString("description"); ok && desc != "" {
		return desc
	}
	return titleFromStem(sourcePath)
}

// skillName derives a skill's name from its parent directory. Skills are
// stored one per directory, so the filename itself carries no identity.
func skillName(sourcePath string) string {
	return filepath.Base(filepath.Dir(sourcePath))
}
