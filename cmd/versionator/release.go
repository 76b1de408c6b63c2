package main

import (
	"slices"

	"github.com/spf13/cobra"

	versionator "github.com/albertocavalcante/go-versionator"
	"github.com/albertocavalcante/go-versionator/project"
)

const releaseLongDescription = `Release every snapshot version of the project.

Snapshot poms move to their release version and every reference follows.
Released poms that still refer to snapshots they cannot release first move to
their next snapshot. Excluded coordinates keep their snapshot version; more
exclusions can be listed under release.exclude in .versionator.yaml.`

func newReleaseCmd(a *app) *cobra.Command {
	var (
		flags      changeFlags
		exclusions []string
	)
	cmd := &cobra.Command{
		Use:   "release [-x GROUP:ARTIFACT]...",
		Short: "Release snapshot versions",
		Long:  releaseLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all := slices.Concat(exclusions, a.cfg.GetStringSlice(releaseExcludeKey))
			excluded, err := versionator.ParseGroupArtifacts(all...)
			if err != nil {
				return err
			}
			return a.runChange(cmd, flags, func(p *project.Project) (*versionator.Model, error) {
				return p.Model.Release(excluded, versionator.WithLogger(a.logger))
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringArrayVarP(&exclusions, "exclude", "x", nil, "a GROUP:ARTIFACT to keep at its snapshot (can be repeated)")
	return cmd
}
