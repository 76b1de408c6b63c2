// Package project ties the engine to files on disk: it loads every pom of a
// directory into a versionator.Model and turns a result Model into file
// edits.
package project

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	versionator "github.com/albertocavalcante/go-versionator"
	"github.com/albertocavalcante/go-versionator/bazelpin"
	"github.com/albertocavalcante/go-versionator/pomxml"
)

// Project is a loaded multi-module project.
type Project struct {
	// Dir is the absolute project root.
	Dir string

	// Model holds every pom found under Dir.
	Model *versionator.Model

	// ModuleFile is the path of Dir/MODULE.bazel, empty when absent.
	ModuleFile string

	logger *slog.Logger
}

// Option configures Load.
type Option func(*Project)

// WithLogger sets a structured logger for loading and planning.
func WithLogger(l *slog.Logger) Option {
	return func(p *Project) {
		p.logger = l
	}
}

// Load discovers the poms under dir and builds their model.
func Load(ctx context.Context, dir string, opts ...Option) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	p := &Project{Dir: abs, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(p)
	}

	poms, err := pomxml.FindAll(ctx, abs)
	if err != nil {
		return nil, err
	}
	p.Model, err = versionator.NewModel(poms)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", abs, err)
	}

	moduleFile := filepath.Join(abs, bazelpin.FileName)
	switch _, err := os.Stat(moduleFile); {
	case err == nil:
		p.ModuleFile = moduleFile
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}

	p.logger.Info("loaded project", "dir", abs, "poms", p.Model.Len(), "module_file", p.ModuleFile != "")
	return p, nil
}

// Rel returns path relative to the project root, or path itself when it is
// outside.
func (p *Project) Rel(path string) string {
	rel, err := filepath.Rel(p.Dir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// Plan computes the edits that turn the project's files into result.
// Only files whose bytes change are returned, poms first in model order,
// then MODULE.bazel.
func (p *Project) Plan(result *versionator.Model) ([]Edit, error) {
	pairs, err := versionator.ChangedPoms(p.Model, result)
	if err != nil {
		return nil, err
	}

	var edits []Edit
	for _, pair := range pairs {
		path := pair.Original.File
		before, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		after, err := pomxml.Patch(before, pair.Original, pair.Result)
		if err != nil {
			return nil, &pomxml.ParseError{Path: path, Err: err}
		}
		if bytes.Equal(before, after) {
			p.logger.Debug("pom unchanged on disk", "pom", pair.Original.Gav.String(), "file", path)
			continue
		}
		edits = append(edits, Edit{Path: path, Name: p.Rel(path), Before: before, After: after})
	}

	if p.ModuleFile != "" {
		edit, ok, err := p.planModuleFile(pinChanges(pairs))
		if err != nil {
			return nil, err
		}
		if ok {
			edits = append(edits, edit)
		}
	}

	p.logger.Debug("planned edits", "changed_poms", len(pairs), "files", len(edits))
	return edits, nil
}

func (p *Project) planModuleFile(changes []bazelpin.Change) (Edit, bool, error) {
	if len(changes) == 0 {
		return Edit{}, false, nil
	}
	before, err := os.ReadFile(p.ModuleFile)
	if err != nil {
		return Edit{}, false, err
	}
	after, err := bazelpin.Rewrite(p.ModuleFile, before, changes)
	if err != nil {
		return Edit{}, false, fmt.Errorf("%s: %w", p.ModuleFile, err)
	}
	if bytes.Equal(before, after) {
		return Edit{}, false, nil
	}
	return Edit{Path: p.ModuleFile, Name: p.Rel(p.ModuleFile), Before: before, After: after}, true, nil
}

// pinChanges collects every version move in the changed poms: own
// coordinates and references, without duplicates.
func pinChanges(pairs []versionator.Pair[versionator.Pom]) []bazelpin.Change {
	seen := make(map[bazelpin.Change]bool)
	var out []bazelpin.Change
	add := func(c bazelpin.Change) {
		if c.From != c.To && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, pair := range pairs {
		o, r := pair.Original, pair.Result
		add(bazelpin.Change{GroupArtifact: o.GroupArtifact(), From: o.Gav.Version, To: r.Gav.Version})
		if o.Parent != nil && r.Parent != nil {
			add(bazelpin.Change{GroupArtifact: o.Parent.GroupArtifact(), From: o.Parent.Version(), To: r.Parent.Version()})
		}
		for _, d := range versionator.Zip(o.Dependencies, r.Dependencies) {
			add(bazelpin.Change{GroupArtifact: d.Original.GroupArtifact(), From: d.Original.Version(), To: d.Result.Version()})
		}
	}
	return out
}
