package main

import (
	"github.com/spf13/cobra"

	adsignal "github.com/goliatone/go-adsignal"
	"github.com/goliatone/go-adsignal/businessdata"
	"github.com/goliatone/go-adsignal/fields"
	"github.com/goliatone/go-adsignal/serverside"
)

func newPayloadCmd(a *app) *cobra.Command {
	var (
		target string
		noHash bool
	)
	cmd := &cobra.Command{
		Use:   "payload FILE",
		Short: "Print the wire payload each backing would send",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if target == "" {
				target = a.config.Target
			}
			backings, err := parseTarget(target)
			if err != nil {
				return err
			}
			u, err := a.loadUserData(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			hash := a.config.hash() && !noHash
			return writeOutput(cmd.OutOrStdout(), a.format("json"), payloads(u, backings, hash))
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "server, business_data or both (default from config)")
	cmd.Flags().BoolVar(&noHash, "no-hash", false, "send normalized values in the clear")
	return cmd
}

func payloads(u *adsignal.UserData, backings []fields.Backing, hash bool) map[string]any {
	out := make(map[string]any, len(backings))
	for _, b := range backings {
		switch b {
		case fields.BackingServer:
			var opts []serverside.PayloadOption
			if !hash {
				opts = append(opts, serverside.WithoutHashing())
			}
			out[string(b)] = u.Server().Payload(opts...)
		case fields.BackingBusinessData:
			var opts []businessdata.PayloadOption
			if !hash {
				opts = append(opts, businessdata.WithoutHashing())
			}
			out[string(b)] = u.BusinessData().Payload(opts...)
		}
	}
	return out
}
