package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fieldops/zonereport/pkg/interfaces/cli/commands"
)

var (
	logger  *zap.Logger
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "zonereport",
		Short: "Zone-wise request report generator",
		Long: `zonereport ingests a field request tracker, normalizes request statuses
through a rule table, partitions rows by zone, and produces per-zone
summary and detail reports in several output formats.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logCfg := zap.NewProductionConfig()
			if verbose {
				logCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
			}
			logger, err = logCfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newGenerateCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRunCommand() *cobra.Command {
	var cfg commands.Config

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the report pipeline over a tracker and rule table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Verbose = verbose
			return commands.NewReportCommand(cfg, logger).Execute(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&cfg.ConfigFile, "config", "c", "", "path to YAML config file")
	cmd.Flags().StringVar(&cfg.RecordsFile, "records", "", "path to the request tracker file")
	cmd.Flags().StringVar(&cfg.RulesFile, "rules", "", "path to the status rule table file")
	cmd.Flags().StringVar(&cfg.InputFormat, "input-format", "", "input format: csv or xlsx")
	cmd.Flags().StringVar(&cfg.RecordsSheet, "records-sheet", "", "worksheet name for xlsx trackers")
	cmd.Flags().StringVar(&cfg.RulesSheet, "rules-sheet", "", "worksheet name for xlsx rule tables")
	cmd.Flags().StringVarP(&cfg.OutputDir, "output", "o", "", "output directory for rendered reports")
	cmd.Flags().StringSliceVar(&cfg.Formats, "formats", nil, "output formats: text, json, csv, html, xlsx")
	cmd.Flags().StringVar(&cfg.ZonePrefix, "zone-prefix", "", "required zone code prefix")
	cmd.Flags().Float64Var(&cfg.TolerancePercent, "tolerance", 0, "reconciliation tolerance as a percentage")
	cmd.Flags().BoolVar(&cfg.Parallel, "parallel", false, "process zones concurrently")
	cmd.Flags().IntVar(&cfg.MaxWorkers, "max-workers", 0, "worker limit for parallel zone processing")
	cmd.Flags().BoolVar(&cfg.Strict, "strict", false, "fail the run on any reconciliation mismatch")

	return cmd
}

func newGenerateCommand() *cobra.Command {
	var cfg commands.GenerateConfig

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic tracker and rule table for testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Verbose = verbose
			return commands.NewGenerateCommand(cfg).Execute(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&cfg.Zones, "zones", 4, "number of zones")
	cmd.Flags().IntVar(&cfg.AreasPerZone, "areas", 5, "areas per zone")
	cmd.Flags().IntVar(&cfg.RequestsPerArea, "requests", 40, "requests per area")
	cmd.Flags().Float64Var(&cfg.UnmappedRate, "unmapped-rate", 0.02, "fraction of rows with an unmapped status")
	cmd.Flags().Float64Var(&cfg.BadRowRate, "bad-row-rate", 0, "fraction of rows missing a key field")
	cmd.Flags().StringVarP(&cfg.OutputDir, "output", "o", "testdata/generated", "output directory")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", 0, "random seed (0 uses current time)")

	return cmd
}
