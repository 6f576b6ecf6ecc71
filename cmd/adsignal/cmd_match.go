package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	adsignal "github.com/goliatone/go-adsignal"
)

func newMatchCmd(a *app) *cobra.Command {
	var engine string
	cmd := &cobra.Command{
		Use:   "match FILE EXPR",
		Short: "Evaluate a boolean rule against a record",
		Long: `match binds every field name to its resolved value (nil when absent),
plus "fields" (present values) and "sources" (winning backing per field), and
prints whether EXPR holds. Exits non-zero when the rule fails to evaluate.`,
		Example: `  adsignal match lead.yaml 'email != nil && sources["email"] == "server"'
  adsignal match lead.yaml --engine cel '"fbp" in fields'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			evaluator, err := newEvaluator(engine)
			if err != nil {
				return err
			}
			record, err := readRecord(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			opts := append(a.userDataOptions(args[0]), adsignal.WithEvaluator(evaluator))
			u, err := adsignal.FromPayload(record, opts...)
			if err != nil {
				return err
			}
			matched, err := u.Match(args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), matched)
			return err
		},
	}
	cmd.Flags().StringVar(&engine, "engine", "expr", "rule engine: expr, cel or js")
	return cmd
}

func newEvaluator(engine string) (adsignal.Evaluator, error) {
	registry := adsignal.DefaultFunctions()
	switch strings.ToLower(engine) {
	case "", "expr":
		return adsignal.NewExprEvaluator(adsignal.ExprWithFunctionRegistry(registry)), nil
	case "cel":
		return adsignal.NewCELEvaluator(adsignal.CELWithFunctionRegistry(registry)), nil
	case "js":
		return adsignal.NewJSEvaluator(adsignal.JSWithFunctionRegistry(registry)), nil
	default:
		return nil, fmt.Errorf("unknown engine %q: want expr, cel or js", engine)
	}
}
