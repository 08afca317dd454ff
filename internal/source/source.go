// Package source reads the canonical rule/skill tree that ruledist
// distributes. The tree layout is fixed:
//
//	rulesets.yaml                                  technology metadata
//	technologies/<tech>/rules/<category>/<name>.md
//	technologies/<tech>/settings.json              Claude settings template
//	technologies/<tech>/skills/<category>/<skill>/SKILL.md
//	shared/rules/<category>/<name>.md
//	shared/skills/<category>/<skill>/SKILL.md
//
// Documents are read fresh on every run and never mutated in place.
package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the injected ruleset configuration at the tree root. It carries
// per-technology metadata, most importantly which shared rule categories a
// technology pulls in; this mapping is data, not a directory convention.
type Config struct {
	Technologies map[string]TechConfig `yaml:"technologies"`
}

// TechConfig describes one technology entry in rulesets.yaml.
type TechConfig struct {
	// Description is a one-line summary shown by the list command.
	Description string `yaml:"description"`
	// Shared lists the shared rule categories relevant to this technology.
	Shared []string `yaml:"shared"`
}

// File is one document in the canonical tree.
type File struct {
	// Path is the absolute path on disk.
	Path string
	// Rel is the path relative to its rule or skill root, e.g.
	// "components/naming.md" or "dev/learning/SKILL.md".
	Rel string
}

// Tree provides access to one canonical source tree.
type Tree struct {
	root   string
	config Config
}

// ConfigFile is the ruleset configuration filename at the tree root.
const ConfigFile = "rulesets.yaml"

// Open validates root and loads its ruleset configuration. A missing
// rulesets.yaml is allowed: technologies then carry no description and no
// shared categories.
func Open(root string) (*Tree, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("source tree %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source tree %q is not a directory", root)
	}

	tree := &Tree{root: root}

	data, err := os.ReadFile(filepath.Join(root, ConfigFile))
	if err != nil {
		if os.IsNotExist(err) {
			return tree, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}
	if err := yaml.Unmarshal(data, &tree.config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFile, err)
	}

	return tree, nil
}

// Root returns the tree's root directory.
func (t *Tree) Root() string { return t.root }

// Technologies returns the identifiers of every technology directory,
// sorted.
func (t *Tree) Technologies() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(t.root, "technologies"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list technologies: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// HasTechnology reports whether a technology source directory exists.
func (t *Tree) HasTechnology(id string) bool {
	info, err := os.Stat(filepath.Join(t.root, "technologies", id))
	return err == nil && info.IsDir()
}

// Description returns the configured one-line description for a technology.
func (t *Tree) Description(id string) string {
	return t.config.Technologies[id].Description
}

// SharedCategories returns the shared rule categories a technology declares
// as relevant. Technologies absent from the config get none.
func (t *Tree) SharedCategories(id string) []string {
	return t.config.Technologies[id].Shared
}

// RuleFiles returns every rule document for a technology in directory
// traversal order. A technology without a rules directory has no rules.
func (t *Tree) RuleFiles(tech string) ([]File, error) {
	return markdownFiles(filepath.Join(t.root, "technologies", tech, "rules"))
}

// SharedRuleFiles returns every shared rule document; Rel starts with the
// category segment.
func (t *Tree) SharedRuleFiles() ([]File, error) {
	return markdownFiles(filepath.Join(t.root, "shared", "rules"))
}

// SkillFiles returns every SKILL.md under a technology's skills directory.
func (t *Tree) SkillFiles(tech string) ([]File, error) {
	return skillFiles(filepath.Join(t.root, "technologies", tech, "skills"))
}

// SharedSkillFiles returns every SKILL.md under the shared skills directory.
func (t *Tree) SharedSkillFiles() ([]File, error) {
	return skillFiles(filepath.Join(t.root, "shared", "skills"))
}

// SettingsTemplate returns the path of a technology's Claude settings
// template, if it has one.
func (t *Tree) SettingsTemplate(tech string) (string, bool) {
	path := filepath.Join(t.root, "technologies", tech, "settings.json")
	info, err := os.Stat(path)
	return path, err == nil && !info.IsDir()
}

// markdownFiles walks dir collecting .md files. The walk is lexical, so
// processing order is deterministic across runs.
func markdownFiles(dir string) ([]File, error) {
	return walkFiles(dir, func(path string, d fs.DirEntry) bool {
		return strings.HasSuffix(d.Name(), ".md")
	})
}

// skillFiles walks dir collecting SKILL.md files only; skills are stored
// one per directory and the document is the only file the installer copies.
func skillFiles(dir string) ([]File, error) {
	return walkFiles(dir, func(path string, d fs.DirEntry) bool {
		return d.Name() == "SKILL.md"
	})
}

func walkFiles(dir string, keep func(path string, d fs.DirEntry) bool) ([]File, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	var files []File
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !keep(path, d) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, File{Path: path, Rel: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", dir, err)
	}
	return files, nil
}
