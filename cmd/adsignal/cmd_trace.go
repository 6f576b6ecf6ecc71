package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	adsignal "github.com/goliatone/go-adsignal"
	"github.com/goliatone/go-adsignal/fields"
)

func newTraceCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "trace FILE [FIELD...]",
		Short: "Show which backing supplies each resolved value",
		Long: `trace prints, per field, the value each backing holds and which one wins.
Without FIELD arguments only present fields are shown unless --all is set.
Output contains raw values; treat it as PII.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.loadUserData(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			traces, err := selectTraces(u, args[1:], all)
			if err != nil {
				return err
			}
			format := a.format("table")
			if format != "table" {
				return writeOutput(cmd.OutOrStdout(), format, traces)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FIELD\tVALUE\tSOURCE\tSERVER\tBUSINESS_DATA")
			for _, trace := range traces {
				fmt.Fprintf(tw, "%s\t%s\t%s", trace.Field, display(trace.Value), trace.Source)
				for _, layer := range trace.Layers {
					cell := "-"
					if layer.Declared {
						cell = display(layer.Value)
					}
					fmt.Fprintf(tw, "\t%s", cell)
				}
				fmt.Fprintln(tw)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include absent fields")
	return cmd
}

func selectTraces(u *adsignal.UserData, names []string, all bool) ([]adsignal.Trace, error) {
	if len(names) == 0 {
		var out []adsignal.Trace
		for _, trace := range u.Traces() {
			if all || trace.Value != nil {
				out = append(out, trace)
			}
		}
		return out, nil
	}
	out := make([]adsignal.Trace, 0, len(names))
	for _, raw := range names {
		name, err := fields.Lookup(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, u.Trace(name))
	}
	return out, nil
}

func display(value *string) string {
	if value == nil {
		return "<absent>"
	}
	if *value == "" {
		return `""`
	}
	return *value
}
