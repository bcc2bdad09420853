package dto

import (
	"time"

	"github.com/fieldops/zonereport/pkg/domain/entities"
)

// ColumnType identifies the value type carried by a table column
type ColumnType int

const (
	ColumnString ColumnType = iota
	ColumnInt
	ColumnDate
)

// String method for ColumnType enum
func (c ColumnType) String() string {
	switch c {
	case ColumnString:
		return "string"
	case ColumnInt:
		return "int"
	case ColumnDate:
		return "date"
	default:
		return "unknown"
	}
}

// Column describes one typed column of an output table
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Table is the neutral intermediate representation handed to renderers:
// ordered rows with typed columns, no formatting or file-naming concerns.
type Table struct {
	Title   string   `json:"title"`
	Columns []Column `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// ZoneOutput is the per-zone renderer input: the summary table (area rows
// plus closing total row), the detail table, and the zone's correlation keys.
type ZoneOutput struct {
	ZoneCode  entities.ZoneCode `json:"zone_code"`
	ZoneName  string            `json:"zone_name"`
	ZoneEmail string            `json:"zone_email"`

	Summary Table `json:"summary"`
	Detail  Table `json:"detail"`

	Mismatches []entities.ReconciliationMismatch `json:"mismatches,omitempty"`
}

// RunDiagnostics is the operator-facing record of everything the run
// excluded, failed to map, or failed to reconcile. It must be reviewed
// before any downstream distribution step.
type RunDiagnostics struct {
	RunID     string        `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`

	InputRows     int `json:"input_rows"`
	ValidRows     int `json:"valid_rows"`
	ZonesProduced int `json:"zones_produced"`

	ExcludedRows   []entities.ExcludedRow            `json:"excluded_rows,omitempty"`
	UnmappedCounts map[string]int                    `json:"unmapped_counts,omitempty"`
	Mismatches     []entities.ReconciliationMismatch `json:"mismatches,omitempty"`
}

// UnmappedTotal returns the number of records whose raw status had no rule
func (d *RunDiagnostics) UnmappedTotal() int {
	total := 0
	for _, count := range d.UnmappedCounts {
		total += count
	}
	return total
}

// Clean reports whether the run produced no mismatches. Excluded rows and
// unmapped statuses are tolerated; reconciliation failures are not.
func (d *RunDiagnostics) Clean() bool {
	return len(d.Mismatches) == 0
}

// ReportResult is the complete output of one pipeline run
type ReportResult struct {
	Reports     []entities.ZoneReport `json:"-"`
	Zones       []ZoneOutput          `json:"zones"`
	Diagnostics RunDiagnostics        `json:"diagnostics"`
}
