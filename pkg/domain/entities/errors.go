package entities

import (
	"fmt"
	"strings"
)

// SchemaError is fatal: a required column is absent from the input schema.
// Nothing is emitted when this is raised.
type SchemaError struct {
	MissingColumns []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("input schema is missing required columns: %s", strings.Join(e.MissingColumns, ", "))
}

// RuleTableError is fatal: the rule table could not be loaded.
// Key names the offending raw-status key when one is known.
type RuleTableError struct {
	Reason string
	Key    string
}

func (e *RuleTableError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("rule table: %s: %q", e.Reason, e.Key)
	}
	return fmt.Sprintf("rule table: %s", e.Reason)
}

// RowValidationError is recoverable: a single row is missing a key value.
// The row is excluded and counted; the run continues.
type RowValidationError struct {
	RowNumber int
	Field     string
}

func (e *RowValidationError) Error() string {
	return fmt.Sprintf("row %d: missing value for key field %q", e.RowNumber, e.Field)
}

// ReconciliationMismatch is recoverable: a zone's aggregate totals diverged
// from its detailed partition. AreaCode is empty for the zone-level check.
type ReconciliationMismatch struct {
	ZoneCode         ZoneCode
	AreaCode         AreaCode
	Expected         int
	Actual           int
	ExceedsTolerance bool
}

func (m ReconciliationMismatch) Error() string {
	scope := string(m.ZoneCode)
	if m.AreaCode != "" {
		scope = fmt.Sprintf("%s/%s", m.ZoneCode, m.AreaCode)
	}
	return fmt.Sprintf(
		"reconciliation mismatch for %s: expected %d, got %d (exceeds tolerance: %v)",
		scope, m.Expected, m.Actual, m.ExceedsTolerance,
	)
}
