package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/go-versionator/coord"
	"github.com/albertocavalcante/go-versionator/graph"
	"github.com/albertocavalcante/go-versionator/project"
)

func newGraphCmd(a *app) *cobra.Command {
	var (
		format  string
		explain string
	)
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Show how the project's poms refer to each other",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := project.Load(cmd.Context(), a.dir, project.WithLogger(a.logger))
			if err != nil {
				return err
			}
			g := graph.Build(p.Model)
			out := cmd.OutOrStdout()

			if explain != "" {
				ga, err := coord.ParseGroupArtifact(explain)
				if err != nil {
					return err
				}
				text, err := g.ToExplainText(ga)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(out, text)
				return err
			}

			switch format {
			case "text":
				_, err = fmt.Fprint(out, g.ToText())
			case "dot":
				_, err = fmt.Fprint(out, g.ToDOT())
			case "json":
				var data []byte
				if data, err = g.ToJSON(); err == nil {
					_, err = fmt.Fprintln(out, string(data))
				}
			case "yaml":
				var data []byte
				if data, err = g.ToYAML(); err == nil {
					_, err = out.Write(data)
				}
			default:
				err = fmt.Errorf("unknown format %q (want text, dot, json or yaml)", format)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, dot, json or yaml")
	cmd.Flags().StringVar(&explain, "explain", "", "explain where GROUP:ARTIFACT is referenced and what moves with it")
	return cmd
}
