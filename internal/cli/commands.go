// Package cli provides command definitions for ruledist.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/ruledist/ruledist/internal/installer"
	"github.com/ruledist/ruledist/internal/model"
	"github.com/ruledist/ruledist/internal/source"
	"github.com/ruledist/ruledist/internal/ui"
	"github.com/ruledist/ruledist/internal/ui/tui"
)

func sharedFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "source",
			Usage: "Canonical rule tree directory",
			Value: ".",
		},
		&cli.StringFlag{
			Name:  "target",
			Usage: "Destination project directory",
			Value: ".",
		},
		&cli.StringSliceFlag{
			Name:  "targets",
			Usage: "Target tools to install for (claude, cursor, copilot, windsurf); defaults to all",
		},
		&cli.BoolFlag{
			Name:    "dry-run",
			Aliases: []string{"d"},
			Usage:   "Preview changes without modifying files",
		},
		&cli.BoolFlag{
			Name:  "force",
			Usage: "Overwrite existing files without taking backups",
		},
	}
}

func initCommand() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Install rule sets for the chosen technologies",
		UsageText: "ruledist init [options] <technology...>",
		Description: `Install the canonical rules (and optionally skills and shared rules)
   for one or more technologies into a project.

   Examples:
     ruledist init react --with-rules --with-skills
     ruledist init react go --targets cursor --target ../myapp
     ruledist init --dry-run react`,
		Flags: append(sharedFlags(),
			&cli.BoolFlag{
				Name:  "with-rules",
				Usage: "Include shared cross-technology rules",
			},
			&cli.BoolFlag{
				Name:  "with-skills",
				Usage: "Include skills",
			},
		),
		Action: func(_ context.Context, cmd *cli.Command) error {
			tree, err := source.Open(cmd.String("source"))
			if err != nil {
				return err
			}

			techs := cmd.Args().Slice()
			if len(techs) == 0 {
				techs, err = pickTechnologies(tree)
				if err != nil {
					return err
				}
			}

			targets, err := model.ParseTargets(cmd.StringSlice("targets"))
			if err != nil {
				return err
			}

			opts := installer.Options{
				Dest:       cmd.String("target"),
				Targets:    targets,
				WithRules:  cmd.Bool("with-rules"),
				WithSkills: cmd.Bool("with-skills"),
				DryRun:     cmd.Bool("dry-run"),
				Force:      cmd.Bool("force"),
			}

			result, err := installer.New(tree, Version).Init(techs, opts)
			if err != nil {
				return err
			}
			printResult(result)
			return nil
		},
	}
}

func updateCommand() *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: "Re-apply a prior installation with a fresh rule set",
		Description: `Re-run installation using the technologies and options recorded in the
   project's manifest. Fails when the project has no manifest.`,
		Flags: sharedFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			tree, err := source.Open(cmd.String("source"))
			if err != nil {
				return err
			}

			targets, err := model.ParseTargets(cmd.StringSlice("targets"))
			if err != nil {
				return err
			}

			opts := installer.Options{
				Dest:    cmd.String("target"),
				Targets: targets,
				DryRun:  cmd.Bool("dry-run"),
				Force:   cmd.Bool("force"),
			}

			result, err := installer.New(tree, Version).Update(opts)
			if err != nil {
				if errors.Is(err, installer.ErrNoManifest) {
					return fmt.Errorf("%w in %q; run init first", err, cmd.String("target"))
				}
				return err
			}
			printResult(result)
			return nil
		},
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Report what is installed in a project",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "target",
				Usage: "Destination project directory",
				Value: ".",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			report, err := installer.Status(cmd.String("target"), Version)
			if err != nil {
				return err
			}

			if !report.Installed {
				fmt.Println(ui.StatusSkipped("no ruledist installation found"))
				return nil
			}

			m := report.Manifest
			fmt.Println(ui.Header("Installed rule set"))
			fmt.Printf("  version:      %s\n", m.Version)
			fmt.Printf("  technologies: %s\n", ui.Bold(strings.Join(m.Technologies, ", ")))
			fmt.Printf("  with rules:   %v\n", m.Options.WithRules)
			fmt.Printf("  with skills:  %v\n", m.Options.WithSkills)
			fmt.Printf("  installed at: %s\n", m.InstalledAt.Format("2006-01-02 15:04:05 MST"))

			if report.OutOfDate() {
				fmt.Println(ui.StatusWarning(fmt.Sprintf("rule set %s available (installed %s); run update", Version, m.Version)))
			} else {
				fmt.Println(ui.StatusSuccess("up to date"))
			}
			return nil
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List available technologies",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "source",
				Usage: "Canonical rule tree directory",
				Value: ".",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			tree, err := source.Open(cmd.String("source"))
			if err != nil {
				return err
			}

			techs, err := tree.Technologies()
			if err != nil {
				return err
			}
			if len(techs) == 0 {
				fmt.Println(ui.StatusSkipped("no technologies found in source tree"))
				return nil
			}

			fmt.Println(ui.Header("Available technologies"))
			for _, id := range techs {
				if desc := tree.Description(id); desc != "" {
					fmt.Printf("  %s  %s\n", ui.Bold(id), ui.Dim(desc))
				} else {
					fmt.Printf("  %s\n", ui.Bold(id))
				}
			}
			return nil
		},
	}
}

// pickTechnologies opens the interactive picker when init is invoked with
// no technology arguments. Non-interactive invocations must name them.
func pickTechnologies(tree *source.Tree) ([]string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("no technologies specified (run `ruledist list` to see what is available)")
	}

	available, err := tree.Technologies()
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		return nil, fmt.Errorf("source tree %q contains no technologies", tree.Root())
	}

	choices := make([]tui.TechChoice, 0, len(available))
	for _, id := range available {
		choices = append(choices, tui.TechChoice{ID: id, Description: tree.Description(id)})
	}

	result, err := tui.RunTechPicker(choices)
	if err != nil {
		return nil, err
	}
	if result.Action != tui.TechPickerActionConfirm {
		return nil, errors.New("no technologies selected")
	}
	return result.Technologies, nil
}

func printResult(result *installer.Result) {
	if result.DryRun {
		fmt.Println(ui.Info("Dry run, no files were written:"))
		for _, f := range result.Files {
			fmt.Printf("  %s %s (%s)\n", ui.Dim(string(f.Action)), f.Path, f.Target)
		}
	} else {
		created := result.Count(installer.ActionCreated)
		updated := result.Count(installer.ActionUpdated)
		skipped := result.Count(installer.ActionSkipped)
		fmt.Println(ui.StatusSuccess(fmt.Sprintf("%d created, %d updated, %d unchanged", created, updated, skipped)))
	}

	for _, category := range result.SkippedShared {
		fmt.Println(ui.StatusSkipped(fmt.Sprintf("shared category %q not relevant to chosen technologies", category)))
	}
}

