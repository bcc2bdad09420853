package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appservices "github.com/fieldops/zonereport/pkg/application/services"
	"github.com/fieldops/zonereport/pkg/domain/entities"
	"github.com/fieldops/zonereport/pkg/infrastructure/config"
	"github.com/fieldops/zonereport/pkg/infrastructure/events"
	csvrepo "github.com/fieldops/zonereport/pkg/infrastructure/repositories/csv"
	"github.com/fieldops/zonereport/pkg/infrastructure/repositories/memory"
	xlsxrepo "github.com/fieldops/zonereport/pkg/infrastructure/repositories/xlsx"
	"github.com/fieldops/zonereport/pkg/interfaces/cli/output"
)

// Config holds configuration for the report command. Flag values override
// the config file; zero values fall through to the file or the defaults.
type Config struct {
	ConfigFile string

	RecordsFile  string
	RulesFile    string
	InputFormat  string
	RecordsSheet string
	RulesSheet   string

	OutputDir string
	Formats   []string

	ZonePrefix       string
	TolerancePercent float64
	Parallel         bool
	MaxWorkers       int

	// Strict turns a dirty run (any reconciliation mismatch) into an error
	// so scripted distribution stops before sending anything
	Strict  bool
	Verbose bool
}

// ReportCommand runs the full ingest-aggregate-render pipeline
type ReportCommand struct {
	config Config
	logger *zap.Logger
}

// NewReportCommand creates a new report command
func NewReportCommand(cfg Config, logger *zap.Logger) *ReportCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportCommand{config: cfg, logger: logger}
}

// Execute runs the report command
func (c *ReportCommand) Execute(ctx context.Context) error {
	cfg, err := c.resolveConfig()
	if err != nil {
		return err
	}

	if cfg.Input.RecordsPath == "" {
		return fmt.Errorf("no tracker input: set --records or input.records_path in the config file")
	}
	if cfg.Input.RulesPath == "" {
		return fmt.Errorf("no rule input: set --rules or input.rules_path in the config file")
	}

	if c.config.Verbose {
		fmt.Printf("📂 Loading %s data from %s...\n", cfg.Input.Format, cfg.Input.RecordsPath)
	}

	records, ruleEntries, err := loadInputs(cfg)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("✅ Loaded %d records and %d rule entries\n", len(records), len(ruleEntries))
	}

	recordRepo := memory.NewRecordRepository(len(records))
	if err := recordRepo.LoadRecords(records); err != nil {
		return fmt.Errorf("failed to load records into repository: %w", err)
	}

	ruleRepo := memory.NewRuleRepository()
	if err := ruleRepo.LoadRules(ruleEntries); err != nil {
		return fmt.Errorf("failed to load rule table: %w", err)
	}

	store := events.NewInMemoryEventStore()
	service := appservices.NewReportService(appservices.PipelineConfig{
		ZonePrefix:       cfg.Pipeline.ZonePrefix,
		TolerancePercent: decimal.NewFromFloat(cfg.Pipeline.TolerancePercent),
		Parallel:         cfg.Pipeline.Parallel,
		MaxWorkers:       cfg.Pipeline.MaxWorkers,
	}, c.logger, store)

	result, err := service.Run(ctx, recordRepo, ruleRepo)
	if err != nil {
		return fmt.Errorf("pipeline run failed: %w", err)
	}

	if err := output.Generate(result, output.Config{
		Formats:   cfg.Output.Formats,
		OutputDir: cfg.Output.Dir,
		Verbose:   c.config.Verbose,
	}); err != nil {
		return fmt.Errorf("output generation failed: %w", err)
	}

	if c.config.Verbose {
		c.printEventLog(store, result.Diagnostics.RunID)
	}

	if c.config.Strict && !result.Diagnostics.Clean() {
		return fmt.Errorf("run has %d reconciliation mismatches, withholding distribution", len(result.Diagnostics.Mismatches))
	}

	return nil
}

// resolveConfig merges flags over the optional config file
func (c *ReportCommand) resolveConfig() (*config.Config, error) {
	cfg := config.Default()
	if c.config.ConfigFile != "" {
		loaded, err := config.Load(c.config.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.config.RecordsFile != "" {
		cfg.Input.RecordsPath = c.config.RecordsFile
	}
	if c.config.RulesFile != "" {
		cfg.Input.RulesPath = c.config.RulesFile
	}
	if c.config.InputFormat != "" {
		cfg.Input.Format = c.config.InputFormat
	}
	if c.config.RecordsSheet != "" {
		cfg.Input.RecordsSheet = c.config.RecordsSheet
	}
	if c.config.RulesSheet != "" {
		cfg.Input.RulesSheet = c.config.RulesSheet
	}
	if c.config.OutputDir != "" {
		cfg.Output.Dir = c.config.OutputDir
	}
	if len(c.config.Formats) > 0 {
		cfg.Output.Formats = c.config.Formats
	}
	if c.config.ZonePrefix != "" {
		cfg.Pipeline.ZonePrefix = c.config.ZonePrefix
	}
	if c.config.TolerancePercent > 0 {
		cfg.Pipeline.TolerancePercent = c.config.TolerancePercent
	}
	if c.config.Parallel {
		cfg.Pipeline.Parallel = true
	}
	if c.config.MaxWorkers > 0 {
		cfg.Pipeline.MaxWorkers = c.config.MaxWorkers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadInputs(cfg *config.Config) ([]entities.RequestRecord, []entities.RuleEntry, error) {
	switch cfg.Input.Format {
	case "xlsx":
		loader := xlsxrepo.NewLoader()
		records, err := loader.LoadRecords(cfg.Input.RecordsPath, cfg.Input.RecordsSheet)
		if err != nil {
			return nil, nil, fmt.Errorf("error loading tracker: %w", err)
		}
		rules, err := loader.LoadRules(cfg.Input.RulesPath, cfg.Input.RulesSheet)
		if err != nil {
			return nil, nil, fmt.Errorf("error loading rules: %w", err)
		}
		return records, rules, nil
	default:
		loader := csvrepo.NewLoader()
		records, err := loader.LoadRecords(cfg.Input.RecordsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("error loading tracker: %w", err)
		}
		rules, err := loader.LoadRules(cfg.Input.RulesPath)
		if err != nil {
			return nil, nil, fmt.Errorf("error loading rules: %w", err)
		}
		return records, rules, nil
	}
}

func (c *ReportCommand) printEventLog(store events.EventStore, runID string) {
	evts, err := store.ReadEvents(runID)
	if err != nil || len(evts) == 0 {
		return
	}
	fmt.Printf("📜 Run event log (%d events):\n", len(evts))
	for _, evt := range evts {
		fmt.Printf("  [%d] %s\n", evt.Version(), evt.Type())
	}
	fmt.Println()
}
