package main

import (
	"github.com/spf13/cobra"

	adsignal "github.com/goliatone/go-adsignal"
	"github.com/goliatone/go-adsignal/schema/openapi"
)

func newSchemaCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema [FILE]",
		Short: "Print the OpenAPI document for both ingestion payloads",
		Long: `schema prints the OpenAPI document describing the conversions and
business-data payloads. With FILE, fields present in the record are marked
with x-present.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var u *adsignal.UserData
			if len(args) == 1 {
				var err error
				if u, err = a.loadUserData(args[0], cmd.InOrStdin()); err != nil {
					return err
				}
			}
			doc, err := openapi.NewGenerator().Generate(u)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), a.format("yaml"), doc.Document)
		},
	}
	return cmd
}
