// Package installer applies a canonical rule/skill tree onto a destination
// project for one or more target dialects, merging with whatever already
// exists there and recording its choices in a manifest.
//
// Runs are single-threaded and deterministic: technologies are processed in
// the order supplied by the caller, files in directory traversal order.
// Concurrent invocations against the same destination are unsupported; the
// tool assumes a single foreground run.
package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ruledist/ruledist/internal/backup"
	"github.com/ruledist/ruledist/internal/dialect"
	"github.com/ruledist/ruledist/internal/logging"
	"github.com/ruledist/ruledist/internal/model"
	"github.com/ruledist/ruledist/internal/progress"
	"github.com/ruledist/ruledist/internal/source"
)

// Action describes what happened to one destination file.
type Action string

const (
	// ActionCreated indicates a new file was written.
	ActionCreated Action = "created"
	// ActionUpdated indicates an existing file was overwritten.
	ActionUpdated Action = "updated"
	// ActionSkipped indicates the existing file was already identical.
	ActionSkipped Action = "skipped"
	// ActionWouldCreate is the dry-run counterpart of ActionCreated.
	ActionWouldCreate Action = "would-create"
	// ActionWouldUpdate is the dry-run counterpart of ActionUpdated.
	ActionWouldUpdate Action = "would-update"
)

// FileResult is the outcome for one destination file.
type FileResult struct {
	// Path is destination-relative.
	Path   string
	Action Action
	Target model.Target
}

// Result is the complete outcome of an installation run.
type Result struct {
	Files []FileResult

	// SkippedShared lists shared categories not relevant to any chosen
	// technology, in first-seen order. Informational, never an error.
	SkippedShared []string

	Manifest *Manifest
	DryRun   bool
}

// Count returns how many files ended in one of the given actions.
func (r *Result) Count(actions ...Action) int {
	n := 0
	for _, f := range r.Files {
		for _, a := range actions {
			if f.Action == a {
				n++
			}
		}
	}
	return n
}

// Options configures an installation run.
type Options struct {
	// Dest is the destination project directory.
	Dest string
	// Targets selects the dialects to install. Empty means all.
	Targets []model.Target
	// WithRules includes the shared cross-technology rules.
	WithRules bool
	// WithSkills includes skills.
	WithSkills bool
	// DryRun reports operations without touching the filesystem.
	DryRun bool
	// Force overwrites without taking backups.
	Force bool
}

// Installer runs installations from one canonical source tree.
type Installer struct {
	tree    *source.Tree
	version string
}

// New creates an installer for a source tree and tool version.
func New(tree *source.Tree, version string) *Installer {
	return &Installer{tree: tree, version: version}
}

// Init performs a full installation of the given technologies.
func (i *Installer) Init(technologies []string, opts Options) (*Result, error) {
	techs := dedupe(technologies)
	if len(techs) == 0 {
		return nil, fmt.Errorf("no technologies selected")
	}
	for _, tech := range techs {
		if !i.tree.HasTechnology(tech) {
			return nil, fmt.Errorf("technology %q has no source directory under %q", tech, i.tree.Root())
		}
	}

	if len(opts.Targets) == 0 {
		opts.Targets = model.AllTargets()
	}
	adapters, err := dialect.ForTargets(opts.Targets)
	if err != nil {
		return nil, err
	}

	run, err := i.gather(techs, opts)
	if err != nil {
		return nil, err
	}

	w := &writer{dest: opts.Dest, dryRun: opts.DryRun, force: opts.Force}
	bar := progress.New(progress.Options{
		Max:         progressSteps(run, adapters, opts.WithSkills),
		Description: "Installing",
	})
	defer bar.Finish()

	for _, a := range adapters {
		if err := i.installTarget(a, run, opts, w, bar); err != nil {
			return nil, err
		}
	}

	result := &Result{
		Files:         w.files,
		SkippedShared: run.skippedShared,
		DryRun:        opts.DryRun,
	}

	manifest := Manifest{
		Version:      i.version,
		Technologies: techs,
		Options:      ManifestOptions{WithSkills: opts.WithSkills, WithRules: opts.WithRules},
		InstalledAt:  time.Now().UTC(),
	}
	if !opts.DryRun {
		if err := WriteManifest(opts.Dest, manifest); err != nil {
			return nil, err
		}
	}
	result.Manifest = &manifest

	logging.Info("installation finished",
		logging.Operation("init"),
		logging.Count(len(result.Files)),
	)
	return result, nil
}

// Update re-runs installation with the technologies and options recorded in
// the destination's manifest. Fails when no manifest exists.
func (i *Installer) Update(opts Options) (*Result, error) {
	m, err := ReadManifest(opts.Dest)
	if err != nil {
		return nil, err
	}

	opts.WithRules = m.Options.WithRules
	opts.WithSkills = m.Options.WithSkills

	logging.Info("re-applying recorded installation",
		logging.Operation("update"),
		logging.Count(len(m.Technologies)),
	)
	return i.Init(m.Technologies, opts)
}

// runSet is everything gathered from the source tree for one run.
type runSet struct {
	techs         []string
	rules         map[string][]source.File
	skills        map[string][]source.File
	sharedRules   []source.File
	sharedSkills  []source.File
	skippedShared []string
	allowed       map[string]bool
}

func (r *runSet) ruleCount() int {
	n := len(r.sharedRules)
	for _, tech := range r.techs {
		n += len(r.rules[tech])
	}
	return n
}

func (r *runSet) skillCount() int {
	n := len(r.sharedSkills)
	for _, tech := range r.techs {
		n += len(r.skills[tech])
	}
	return n
}

// progressSteps counts the bar increments a run will make: every adapter
// steps through all rules, but only skill-capable adapters step through
// skills.
func progressSteps(run *runSet, adapters []dialect.Adapter, withSkills bool) int64 {
	var steps int64
	for _, a := range adapters {
		steps += int64(run.ruleCount())
		if withSkills && a.SupportsSkills() {
			steps += int64(run.skillCount())
		}
	}
	return steps
}

// gather lists every source document once, up front, so each adapter works
// from the same snapshot and the progress total is known.
func (i *Installer) gather(techs []string, opts Options) (*runSet, error) {
	run := &runSet{
		techs:   techs,
		rules:   make(map[string][]source.File, len(techs)),
		skills:  make(map[string][]source.File, len(techs)),
		allowed: make(map[string]bool),
	}

	for _, tech := range techs {
		rules, err := i.tree.RuleFiles(tech)
		if err != nil {
			return nil, fmt.Errorf("technology %q: %w", tech, err)
		}
		run.rules[tech] = rules

		if opts.WithSkills {
			skills, err := i.tree.SkillFiles(tech)
			if err != nil {
				return nil, fmt.Errorf("technology %q: %w", tech, err)
			}
			run.skills[tech] = skills
		}

		for _, category := range i.tree.SharedCategories(tech) {
			run.allowed[category] = true
		}

		logging.Debug("gathered technology documents",
			logging.Technology(tech),
			logging.Count(len(run.rules[tech])+len(run.skills[tech])),
		)
	}

	if opts.WithRules {
		shared, err := i.tree.SharedRuleFiles()
		if err != nil {
			return nil, err
		}
		skipped := make(map[string]bool)
		for _, f := range shared {
			// Rules sitting directly in shared/rules/ belong to no
			// category and are always included.
			category := sharedCategory(f.Rel)
			if category == "" || run.allowed[category] {
				run.sharedRules = append(run.sharedRules, f)
				continue
			}
			if !skipped[category] {
				skipped[category] = true
				run.skippedShared = append(run.skippedShared, category)
				logging.Debug("shared category not relevant to chosen technologies",
					logging.Operation("init"),
					logging.Path(category),
				)
			}
		}
	}

	if opts.WithSkills {
		sharedSkills, err := i.tree.SharedSkillFiles()
		if err != nil {
			return nil, err
		}
		run.sharedSkills = sharedSkills
	}

	return run, nil
}

// installTarget applies one adapter's full output: settings, technology
// rules, shared rules, skills, then the global-rule aggregate. The global
// accumulator lives here and nowhere else.
func (i *Installer) installTarget(a dialect.Adapter, run *runSet, opts Options, w *writer, bar *progress.Bar) error {
	var globals []dialect.GlobalRule
	aggregates := a.AggregatePath() != ""

	for _, tech := range run.techs {
		if a.SupportsSettings() {
			if template, ok := i.tree.SettingsTemplate(tech); ok {
				if err := i.applySettings(a, tech, template, w); err != nil {
					return err
				}
			}
		}

		for _, f := range run.rules[tech] {
			content, err := os.ReadFile(f.Path)
			if err != nil {
				return fmt.Errorf("technology %q: failed to read rule %q: %w", tech, f.Path, err)
			}
			out := a.TransformRule(string(content), f.Rel)
			if out.Global && aggregates {
				globals = append(globals, dialect.GlobalRule{Content: string(content), SourcePath: f.Rel})
			} else {
				if err := w.write(a.Name(), a.RuleOutputPath(tech, out.Filename), out.Content); err != nil {
					return err
				}
			}
			bar.Add(1)
		}
	}

	for _, f := range run.sharedRules {
		content, err := os.ReadFile(f.Path)
		if err != nil {
			return fmt.Errorf("failed to read shared rule %q: %w", f.Path, err)
		}
		out := a.TransformRule(string(content), f.Rel)
		if out.Global && aggregates {
			globals = append(globals, dialect.GlobalRule{Content: string(content), SourcePath: f.Rel})
		} else {
			rel := filepath.Join(filepath.Dir(filepath.FromSlash(f.Rel)), out.Filename)
			if err := w.write(a.Name(), a.SharedRuleOutputPath(rel), out.Content); err != nil {
				return err
			}
		}
		bar.Add(1)
	}

	if opts.WithSkills && a.SupportsSkills() {
		skillSets := make([]source.File, 0, len(run.sharedSkills))
		for _, tech := range run.techs {
			skillSets = append(skillSets, run.skills[tech]...)
		}
		skillSets = append(skillSets, run.sharedSkills...)

		for _, f := range skillSets {
			content, err := os.ReadFile(f.Path)
			if err != nil {
				return fmt.Errorf("failed to read skill %q: %w", f.Path, err)
			}
			out := a.TransformSkill(string(content), f.Rel)
			if err := w.write(a.Name(), a.SkillOutputPath(out.SkillDir, out.Filename), out.Content); err != nil {
				return err
			}
			bar.Add(1)
		}
	}

	if agg := a.AggregateGlobalRules(globals); agg != nil {
		if err := w.write(a.Name(), a.AggregatePath(), agg.Content); err != nil {
			return err
		}
	}

	return nil
}

// applySettings merges a technology's settings template into the target's
// existing settings file.
func (i *Installer) applySettings(a dialect.Adapter, tech, templatePath string, w *writer) error {
	templateData, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("technology %q: failed to read settings template: %w", tech, err)
	}
	template, err := parseSettings(templateData)
	if err != nil {
		return fmt.Errorf("technology %q: settings template %q: %w", tech, templatePath, err)
	}

	destRel := filepath.FromSlash(dialect.SettingsFile)
	existing, err := readSettings(filepath.Join(w.dest, destRel))
	if err != nil {
		return err
	}

	encoded, err := encodeSettings(mergeSettings(existing, template))
	if err != nil {
		return err
	}
	return w.write(a.Name(), destRel, string(encoded))
}

// writer applies file writes with the skip/backup/dry-run discipline shared
// by every output kind.
type writer struct {
	dest   string
	dryRun bool
	force  bool
	files  []FileResult
}

func (w *writer) write(target model.Target, relPath, content string) error {
	full := filepath.Join(w.dest, relPath)

	existing, err := os.ReadFile(full)
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to inspect %q: %w", full, err)
	}

	if exists && string(existing) == content {
		w.record(target, relPath, ActionSkipped)
		return nil
	}

	if w.dryRun {
		if exists {
			w.record(target, relPath, ActionWouldUpdate)
		} else {
			w.record(target, relPath, ActionWouldCreate)
		}
		return nil
	}

	if exists && !w.force {
		if _, err := backup.Create(w.dest, full); err != nil {
			logging.Error("backup failed, aborting write",
				logging.Path(relPath),
				logging.Err(err),
			)
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for %q: %w", full, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o640); err != nil {
		return fmt.Errorf("failed to write %q: %w", full, err)
	}

	if exists {
		w.record(target, relPath, ActionUpdated)
	} else {
		w.record(target, relPath, ActionCreated)
	}
	return nil
}

func (w *writer) record(target model.Target, relPath string, action Action) {
	logging.Debug("processed file",
		logging.Target(string(target)),
		logging.Path(relPath),
		logging.Operation(string(action)),
	)
	w.files = append(w.files, FileResult{Path: relPath, Action: action, Target: target})
}

// sharedCategory extracts the leading category segment of a shared rule's
// relative path. Rules directly under the shared root have no category and
// return the empty string.
func sharedCategory(rel string) string {
	if idx := strings.IndexByte(rel, '/'); idx >= 0 {
		return rel[:idx]
	}
	return ""
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
