package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-adsignal/fields"
)

func newFieldsCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the user data field registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := filterFields(category)
			if err != nil {
				return err
			}
			format := a.format("table")
			if format != "table" {
				return writeOutput(cmd.OutOrStdout(), format, infos)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tWIRE KEY\tCATEGORY\tHASHED")
			for _, info := range infos {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", info.Name, info.WireKey, info.Category, info.Hashed)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list shared, server_only or business_data_only fields")
	return cmd
}

func filterFields(category string) ([]fields.Info, error) {
	all := fields.All()
	if category == "" {
		return all, nil
	}
	want := strings.ToLower(strings.TrimSpace(category))
	var out []fields.Info
	for _, info := range all {
		if info.Category.String() == want {
			out = append(out, info)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	return out, nil
}
