package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	versionator "github.com/albertocavalcante/go-versionator"
	"github.com/albertocavalcante/go-versionator/coord"
	"github.com/albertocavalcante/go-versionator/project"
	"github.com/albertocavalcante/go-versionator/version"
)

const setVersionLongDescription = `Set one or more coordinates to new versions.

Each GAV is GROUP:ARTIFACT:VERSION. The last coordinate may instead be given
as GROUP:ARTIFACT OLD NEW, in which case the change only applies while the
coordinate is still at OLD.

Examples:
  versionator set-version com.example:core:2.0-SNAPSHOT
  versionator set-version com.example:core 1.4 1.5-SNAPSHOT
  versionator set-version -n com.example:api:3.0 com.example:core:2.0`

// guard requires a coordinate to be at a version before it is changed.
type guard struct {
	ga  coord.GroupArtifact
	old version.Version
}

func newSetVersionCmd(a *app) *cobra.Command {
	var flags changeFlags
	cmd := &cobra.Command{
		Use:   "set-version {GAV...} (GAV | GROUP:ARTIFACT OLD NEW)",
		Short: "Set coordinates to new versions",
		Long:  setVersionLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gavs, guards, err := extractChanges(args)
			if err != nil {
				return err
			}
			return a.runChange(cmd, flags, func(p *project.Project) (*versionator.Model, error) {
				for _, g := range guards {
					if err := checkGuard(p.Model, g); err != nil {
						return nil, err
					}
				}
				return p.Model.Apply(gavs, versionator.WithLogger(a.logger))
			})
		},
	}
	flags.register(cmd)
	return cmd
}

// extractChanges reads "{GAV...} (GAV | GROUP:ARTIFACT OLD NEW)".
func extractChanges(args []string) ([]coord.Gav, []guard, error) {
	if len(args) == 0 {
		return nil, nil, errors.New("no coordinates given. Perhaps try --help?")
	}

	var guards []guard
	rest := args
	if n := len(args); n >= 3 && strings.Count(args[n-3], ":") == 1 {
		old, next := args[n-2], args[n-1]
		if strings.Contains(old, ":") || strings.Contains(next, ":") {
			return nil, nil, fmt.Errorf("expected GROUP:ARTIFACT OLD NEW but found %q %q %q. Perhaps try --help?", args[n-3], old, next)
		}
		ga, err := coord.ParseGroupArtifact(args[n-3])
		if err != nil {
			return nil, nil, fmt.Errorf("%w. Perhaps try --help?", err)
		}
		oldV, err := version.Parse(old)
		if err != nil {
			return nil, nil, fmt.Errorf("%w. Perhaps try --help?", err)
		}
		newV, err := version.Parse(next)
		if err != nil {
			return nil, nil, fmt.Errorf("%w. Perhaps try --help?", err)
		}
		guards = append(guards, guard{ga: ga, old: oldV})
		rest = append(slices.Clone(args[:n-3]), coord.NewGav(ga, newV).String())
	}

	gavs, err := versionator.ParseGavs(rest...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w. Perhaps try --help?", err)
	}
	return gavs, guards, nil
}

// checkGuard verifies a coordinate's current version. A pom of the project
// is checked against its own version; an external coordinate against the
// versions it is referenced at.
func checkGuard(m *versionator.Model, g guard) error {
	if p, ok := m.Lookup(g.ga); ok {
		if p.Gav.Version != g.old {
			return fmt.Errorf("%s is at %s, not %s", g.ga, p.Gav.Version, g.old)
		}
		return nil
	}

	var seen []string
	for _, p := range m.Poms() {
		refs := slices.Clone(p.Dependencies)
		if p.Parent != nil {
			refs = append(refs, *p.Parent)
		}
		for _, d := range refs {
			if d.GroupArtifact() != g.ga {
				continue
			}
			if d.Version() == g.old {
				return nil
			}
			seen = append(seen, d.Version().String())
		}
	}
	if len(seen) == 0 {
		return fmt.Errorf("%s is not referenced by any pom", g.ga)
	}
	slices.Sort(seen)
	return fmt.Errorf("%s is referenced at %s, not %s", g.ga, strings.Join(slices.Compact(seen), ", "), g.old)
}
