package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	versionator "github.com/albertocavalcante/go-versionator"
	"github.com/albertocavalcante/go-versionator/project"
)

// confirmFunc asks a yes/no question. Tests replace it.
var confirmFunc = func(title string) (bool, error) {
	ok := false
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Write").
			Negative("Cancel").
			Value(&ok),
	)).Run()
	return ok, err
}

// changeFlags are shared by commands that rewrite files.
type changeFlags struct {
	dryRun      bool
	interactive bool
}

func (f *changeFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.dryRun, dryRunFlagName, "n", false, "print the edits as diffs without writing anything")
	cmd.Flags().BoolVarP(&f.interactive, interactiveFlag, "i", false, "show the edits and ask before writing")
}

// compute derives the target model of a change from the loaded project.
type compute func(p *project.Project) (*versionator.Model, error)

// runChange loads the project, computes the result, and shows or writes the
// resulting edits.
func (a *app) runChange(cmd *cobra.Command, flags changeFlags, fn compute) error {
	out := cmd.OutOrStdout()

	p, err := project.Load(cmd.Context(), a.dir, project.WithLogger(a.logger))
	if err != nil {
		return err
	}
	result, err := fn(p)
	if err != nil {
		return err
	}
	diff, err := versionator.Diff(p.Model, result)
	if err != nil {
		return err
	}
	edits, err := p.Plan(result)
	if err != nil {
		return err
	}

	if len(edits) == 0 {
		_, err := fmt.Fprintln(out, "Nothing to change.")
		return err
	}
	printSummary(out, diff)

	if flags.dryRun || flags.interactive {
		for _, e := range edits {
			printDiff(out, e.UnifiedDiff())
		}
	}
	if flags.dryRun {
		_, err := fmt.Fprintf(out, "Dry run: %s would change.\n", plural(len(edits), "file"))
		return err
	}
	if flags.interactive {
		ok, err := confirmFunc(fmt.Sprintf("Write %s?", plural(len(edits), "file")))
		if err != nil {
			return err
		}
		if !ok {
			_, err := fmt.Fprintln(out, color.YellowString("Cancelled, nothing written."))
			return err
		}
	}

	if err := project.Write(edits); err != nil {
		return err
	}
	for _, e := range edits {
		a.logger.Info("wrote file", "file", e.Path)
	}
	_, err = fmt.Fprintln(out, color.GreenString("Updated %s.", plural(len(edits), "file")))
	return err
}

func printSummary(w io.Writer, d *versionator.ModelDiff) {
	for _, c := range d.Upgraded {
		_, _ = fmt.Fprintf(w, "%s %s %s -> %s\n", color.GreenString("↑"), c.GroupArtifact, c.OldVersion, color.GreenString("%s", c.NewVersion))
	}
	for _, c := range d.Downgraded {
		_, _ = fmt.Fprintf(w, "%s %s %s -> %s\n", color.YellowString("↓"), c.GroupArtifact, c.OldVersion, color.YellowString("%s", c.NewVersion))
	}
	for _, c := range d.Properties {
		_, _ = fmt.Fprintf(w, "%s %s ${%s} %s -> %s\n", color.CyanString("~"), c.GroupArtifact, c.Key, c.OldValue, color.CyanString("%s", c.NewValue))
	}
	if n := d.Touched - len(d.Upgraded) - len(d.Downgraded); n > 0 {
		_, _ = fmt.Fprintf(w, "  and %s with updated references\n", plural(n, "other pom"))
	}
}

func printDiff(w io.Writer, diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case line == "":
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			_, _ = fmt.Fprint(w, color.New(color.Bold).Sprint(line))
		case strings.HasPrefix(line, "+"):
			_, _ = fmt.Fprint(w, color.GreenString("%s", line))
		case strings.HasPrefix(line, "-"):
			_, _ = fmt.Fprint(w, color.RedString("%s", line))
		case strings.HasPrefix(line, "@@"):
			_, _ = fmt.Fprint(w, color.CyanString("%s", line))
		default:
			_, _ = fmt.Fprint(w, line)
		}
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
