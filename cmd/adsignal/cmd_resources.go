package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-adsignal/resource"
)

func newResourcesCmd(a *app) *cobra.Command {
	var projection string
	cmd := &cobra.Command{
		Use:   "resources [KIND]",
		Short: "List resource kinds or describe one",
		Long: `Without KIND, lists every known resource kind. With KIND (snake case or
type name), prints its descriptor. --fields validates a projection against the
kind and prints the request parameters it produces.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				format := a.format("table")
				if format != "table" {
					return writeOutput(out, format, resource.All())
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "KIND\tTYPE\tFIELDS\tREADABLE")
				for _, d := range resource.All() {
					fmt.Fprintf(tw, "%s\t%s\t%d\t%t\n", d.Kind, d.TypeName, len(d.Fields), d.Readable)
				}
				return tw.Flush()
			}

			d, err := resource.Lookup(args[0])
			if err != nil {
				return err
			}
			if projection == "" {
				return writeOutput(out, a.format("yaml"), d)
			}
			p, err := resource.ParseProjection(d, projection)
			if err != nil {
				return err
			}
			return writeOutput(out, a.format("json"), p.Params(nil))
		},
	}
	cmd.Flags().StringVar(&projection, "fields", "", "comma separated fields to project")
	return cmd
}
