package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fieldops/zonereport/pkg/application/dto"
	"github.com/fieldops/zonereport/pkg/domain/entities"
	"github.com/fieldops/zonereport/pkg/domain/repositories"
	domainservices "github.com/fieldops/zonereport/pkg/domain/services"
	"github.com/fieldops/zonereport/pkg/infrastructure/events"
)

// PipelineConfig holds the knobs of one report run
type PipelineConfig struct {
	// ZonePrefix is the top-level naming convention; codes without it are excluded
	ZonePrefix string
	// TolerancePercent is the reconciliation tolerance; zero means strict
	TolerancePercent decimal.Decimal
	// Parallel enables per-zone fan-out. Partitions are disjoint so workers
	// share no mutable state; output ordering is fixed by zone code either way.
	Parallel bool
	// MaxWorkers caps the fan-out (0 = one worker per zone)
	MaxWorkers int
}

// DefaultPipelineConfig returns the strict, sequential defaults
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		ZonePrefix:       "ZN",
		TolerancePercent: decimal.Zero,
	}
}

// ReportService runs the full aggregation-and-partitioning pipeline:
// validate -> normalize -> partition -> aggregate -> reconcile -> assemble.
// One run is all-or-nothing up front: a schema or rule-table failure aborts
// before any per-zone processing begins and nothing is emitted.
type ReportService struct {
	config PipelineConfig
	logger *zap.Logger
	store  events.EventStore
}

// NewReportService creates a report service with the given configuration.
// A nil logger disables logging; a nil store disables the run event stream.
func NewReportService(config PipelineConfig, logger *zap.Logger, store events.EventStore) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = events.NewInMemoryEventStore()
	}
	return &ReportService{config: config, logger: logger, store: store}
}

// EventStore exposes the run event stream for operator review
func (s *ReportService) EventStore() events.EventStore {
	return s.store
}

// Run executes one pipeline run over the loaded records and rules.
// The returned result carries every zone's report plus the run diagnostics;
// reconciliation mismatches are surfaced there, never swallowed.
func (s *ReportService) Run(
	ctx context.Context,
	recordRepo repositories.RecordRepository,
	ruleRepo repositories.RuleRepository,
) (*dto.ReportResult, error) {
	start := time.Now()
	runID := uuid.NewString()

	rules, err := ruleRepo.GetRuleTable()
	if err != nil {
		return nil, fmt.Errorf("failed to load rule table: %w", err)
	}

	records, err := recordRepo.GetAllRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	s.appendEvent(events.NewRunStartedEvent(runID, len(records), rules.Len()))
	s.logger.Info("run started",
		zap.String("run_id", runID),
		zap.Int("input_rows", len(records)),
		zap.Int("rule_pairs", rules.Len()))

	// Row validation: bad rows are excluded and counted, never coerced
	validator := domainservices.NewRecordValidator()
	validation := validator.ValidateRecords(records)
	for _, row := range validation.Excluded {
		s.appendEvent(events.NewRowExcludedEvent(runID, row))
	}

	// Status normalization against the immutable rule table
	normalizer := domainservices.NewStatusNormalizer(rules)
	normalized, unmapped := normalizer.Normalize(validation.Valid)
	for _, raw := range sortedKeys(unmapped) {
		s.appendEvent(events.NewStatusUnmappedEvent(runID, raw, unmapped[raw]))
		s.logger.Warn("raw status has no rule entry",
			zap.String("raw_status", raw),
			zap.Int("count", unmapped[raw]))
	}

	// Exclusive per-zone partitioning
	partitioner := domainservices.NewZonePartitioner(s.config.ZonePrefix)
	partitionResult, err := partitioner.Partition(normalized)
	if err != nil {
		return nil, fmt.Errorf("partitioning failed: %w", err)
	}
	for _, row := range partitionResult.Excluded {
		s.appendEvent(events.NewRowExcludedEvent(runID, row))
	}

	reports, err := s.processZones(ctx, partitionResult.Partitions, rules.FinalStatuses())
	if err != nil {
		return nil, err
	}

	assembler := NewOutputAssembler(rules.FinalStatuses())
	result := &dto.ReportResult{
		Reports: reports,
		Zones:   make([]dto.ZoneOutput, 0, len(reports)),
	}

	var mismatches []entities.ReconciliationMismatch
	for _, report := range reports {
		result.Zones = append(result.Zones, assembler.AssembleZone(report))
		s.appendEvent(events.NewZoneProcessedEvent(runID, report.ZoneCode, len(report.Records), len(report.AreaRows)))
		for _, mismatch := range report.Mismatches {
			mismatches = append(mismatches, mismatch)
			s.appendEvent(events.NewZoneMismatchEvent(runID, mismatch))
			s.logger.Error("reconciliation mismatch", zap.String("zone", string(mismatch.ZoneCode)), zap.Error(mismatch))
		}
	}

	excluded := append(append([]entities.ExcludedRow{}, validation.Excluded...), partitionResult.Excluded...)
	result.Diagnostics = dto.RunDiagnostics{
		RunID:          runID,
		StartedAt:      start,
		Duration:       time.Since(start),
		InputRows:      len(records),
		ValidRows:      len(validation.Valid),
		ZonesProduced:  len(reports),
		ExcludedRows:   excluded,
		UnmappedCounts: unmapped,
		Mismatches:     mismatches,
	}

	s.appendEvent(events.NewRunCompletedEvent(runID, len(validation.Valid), len(reports), len(mismatches)))
	s.logger.Info("run completed",
		zap.String("run_id", runID),
		zap.Int("zones", len(reports)),
		zap.Int("excluded_rows", len(excluded)),
		zap.Int("unmapped", result.Diagnostics.UnmappedTotal()),
		zap.Int("mismatches", len(mismatches)),
		zap.Duration("duration", result.Diagnostics.Duration))

	return result, nil
}

// processZones aggregates and reconciles every partition. Zones are
// independent, so fan-out is safe; results land in a slice indexed by the
// partition's position, which is already sorted by zone code.
func (s *ReportService) processZones(
	ctx context.Context,
	partitions []entities.ZonePartition,
	statusOrder []string,
) ([]entities.ZoneReport, error) {
	reports := make([]entities.ZoneReport, len(partitions))

	if !s.config.Parallel {
		for i, partition := range partitions {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			reports[i] = s.buildZoneReport(partition, statusOrder)
		}
		return reports, nil
	}

	group, ctx := errgroup.WithContext(ctx)
	if s.config.MaxWorkers > 0 {
		group.SetLimit(s.config.MaxWorkers)
	}

	for i, partition := range partitions {
		i, partition := i, partition
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = s.buildZoneReport(partition, statusOrder)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *ReportService) buildZoneReport(partition entities.ZonePartition, statusOrder []string) entities.ZoneReport {
	aggregator := domainservices.NewAggregator()
	areaRows, totalRow := aggregator.Summarize(partition, statusOrder)

	detail := make([]entities.RequestRecord, len(partition.Records))
	copy(detail, partition.Records)
	sort.Slice(detail, func(i, j int) bool {
		if detail[i].AreaCode != detail[j].AreaCode {
			return detail[i].AreaCode < detail[j].AreaCode
		}
		return detail[i].RequestID < detail[j].RequestID
	})

	report := entities.ZoneReport{
		ZoneCode:  partition.ZoneCode,
		ZoneName:  partition.ZoneName,
		ZoneEmail: partition.ZoneEmail,
		AreaRows:  areaRows,
		TotalRow:  totalRow,
		Records:   detail,
	}

	reconciler := domainservices.NewReconciler(s.config.TolerancePercent)
	report.Mismatches = reconciler.Check(report)
	return report
}

func (s *ReportService) appendEvent(event events.Event) {
	// The event stream is diagnostic; a full store must not fail the run
	_ = s.store.AppendEvent(event.StreamID(), event)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
