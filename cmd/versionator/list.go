package main

import (
	"github.com/spf13/cobra"

	"github.com/albertocavalcante/go-versionator/listing"
	"github.com/albertocavalcante/go-versionator/project"
)

const listLongDescription = `List the coordinates the project's poms refer to.

PATTERNs are globs over GROUP:ARTIFACT:VERSION using * and ?. They apply in
order and later patterns override earlier ones; a pattern starting with !
excludes what it matches.

Examples:
  versionator list
  versionator list 'com.example:*'
  versionator list --group-by pom '!*:*-SNAPSHOT'`

func newListCmd(a *app) *cobra.Command {
	var (
		groupBy string
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "list [PATTERN...]",
		Short: "List referenced coordinates",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			grouping, err := listing.ParseGrouping(groupBy)
			if err != nil {
				return err
			}
			filter, err := listing.NewFilter(args...)
			if err != nil {
				return err
			}
			p, err := project.Load(cmd.Context(), a.dir, project.WithLogger(a.logger))
			if err != nil {
				return err
			}
			entries := listing.Collect(p.Model, filter)
			a.logger.Debug("collected references", "entries", len(entries))
			return listing.Render(cmd.OutOrStdout(), entries, listing.Options{
				Grouping: grouping,
				Verbose:  verbose,
				RootDir:  p.Dir,
			})
		},
	}
	cmd.Flags().StringVarP(&groupBy, "group-by", "g", "gav", "group output by gav or pom")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "also show the poms referring to each coordinate (ignored with --group-by pom)")
	return cmd
}
