package events

import (
	"github.com/fieldops/zonereport/pkg/domain/entities"
)

const (
	RunStartedEvent   = "run.started"
	RunCompletedEvent = "run.completed"

	RowExcludedEvent    = "row.excluded"
	StatusUnmappedEvent = "status.unmapped"
	ZoneProcessedEvent  = "zone.processed"
	ZoneMismatchEvent   = "zone.reconciliation_mismatch"
)

type RunStarted struct {
	InputRows int `json:"input_rows"`
	RulePairs int `json:"rule_pairs"`
}

type RunCompleted struct {
	ValidRows     int `json:"valid_rows"`
	ZonesProduced int `json:"zones_produced"`
	Mismatches    int `json:"mismatches"`
}

type RowExcluded struct {
	Row entities.ExcludedRow `json:"row"`
}

type StatusUnmapped struct {
	RawStatus string `json:"raw_status"`
	Count     int    `json:"count"`
}

type ZoneProcessed struct {
	ZoneCode    entities.ZoneCode `json:"zone_code"`
	RecordCount int               `json:"record_count"`
	AreaCount   int               `json:"area_count"`
}

type ZoneMismatch struct {
	Mismatch entities.ReconciliationMismatch `json:"mismatch"`
}

func NewRunStartedEvent(runID string, inputRows, rulePairs int) Event {
	return NewEvent(RunStartedEvent, runID, RunStarted{InputRows: inputRows, RulePairs: rulePairs})
}

func NewRunCompletedEvent(runID string, validRows, zonesProduced, mismatches int) Event {
	return NewEvent(RunCompletedEvent, runID, RunCompleted{
		ValidRows:     validRows,
		ZonesProduced: zonesProduced,
		Mismatches:    mismatches,
	})
}

func NewRowExcludedEvent(runID string, row entities.ExcludedRow) Event {
	return NewEvent(RowExcludedEvent, runID, RowExcluded{Row: row})
}

func NewStatusUnmappedEvent(runID string, rawStatus string, count int) Event {
	return NewEvent(StatusUnmappedEvent, runID, StatusUnmapped{RawStatus: rawStatus, Count: count})
}

func NewZoneProcessedEvent(runID string, zoneCode entities.ZoneCode, recordCount, areaCount int) Event {
	return NewEvent(ZoneProcessedEvent, runID, ZoneProcessed{
		ZoneCode:    zoneCode,
		RecordCount: recordCount,
		AreaCount:   areaCount,
	})
}

func NewZoneMismatchEvent(runID string, mismatch entities.ReconciliationMismatch) Event {
	return NewEvent(ZoneMismatchEvent, runID, ZoneMismatch{Mismatch: mismatch})
}
