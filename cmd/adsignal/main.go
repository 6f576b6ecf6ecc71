// Command adsignal inspects user data records the way the ingestion clients
// see them: registry listing, per-backing payloads, precedence traces, rule
// matching, resource descriptors and the payload schema.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	adsignal "github.com/goliatone/go-adsignal"
	"github.com/goliatone/go-adsignal/pkg/logging/zaplog"
)

type app struct {
	configPath string
	verbose    bool
	output     string

	config cliConfig
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "adsignal",
		Short:         "Inspect advertising user data records",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `adsignal reads user data records from YAML or JSON files and shows how the
conversions and business-data ingestion clients see them.

Records are flat maps keyed by canonical field names (email, first_name) or
wire keys (em, fn). Pass "-" to read a record from stdin.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log every field write and rule evaluation")
	flags.StringVarP(&a.output, "output", "o", "", "output format: json, yaml or table")

	root.AddCommand(
		newFieldsCmd(a),
		newPayloadCmd(a),
		newTraceCmd(a),
		newMatchCmd(a),
		newResourcesCmd(a),
		newSchemaCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.config = cfg

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}
	zcfg := zap.NewProductionConfig()
	if a.verbose {
		zcfg = zap.NewDevelopmentConfig()
		level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	zcfg.Level = level
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

// userDataOptions wires the facade's loggers into the CLI logger.
func (a *app) userDataOptions(label string) []adsignal.Option {
	opts := zaplog.New(a.logger).Options()
	return append(opts, adsignal.WithLabel(label))
}

func (a *app) format(fallback string) string {
	if a.output != "" {
		return strings.ToLower(a.output)
	}
	return fallback
}
