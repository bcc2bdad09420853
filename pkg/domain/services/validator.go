package services

import (
	"strings"

	"github.com/fieldops/zonereport/pkg/domain/entities"
)

// Tracker column names the pipeline cannot run without. Loaders check these
// against the input header before any row is parsed.
var RequiredColumns = []string{
	"Zone Terr Code",
	"Zone Name",
	"Area Terr Code",
	"Area Name",
	"Request Id",
	"Request Status",
	"Rep Email",
	"Customer Code",
	"Request Date",
}

// RecordValidator checks row-level integrity of ingested records.
// Schema-level presence of required columns is the loader's responsibility;
// the validator handles rows whose columns exist but hold no value.
type RecordValidator struct{}

// NewRecordValidator creates a new record validator
func NewRecordValidator() *RecordValidator {
	return &RecordValidator{}
}

// ValidationResult contains the outcome of row validation
type ValidationResult struct {
	Valid    []entities.RequestRecord
	Excluded []entities.ExcludedRow
	Errors   []*entities.RowValidationError
}

// keyFields are the per-row values that must be non-empty for a record to
// enter the pipeline. Rows failing any of these are excluded, never coerced.
var keyFields = []struct {
	name  string
	value func(entities.RequestRecord) string
}{
	{"Zone Terr Code", func(r entities.RequestRecord) string { return string(r.ZoneCode) }},
	{"Area Terr Code", func(r entities.RequestRecord) string { return string(r.AreaCode) }},
	{"Request Id", func(r entities.RequestRecord) string { return string(r.RequestID) }},
	{"Request Status", func(r entities.RequestRecord) string { return r.RawStatus }},
}

// ValidateRecords cleans and validates the ingested rows. String fields are
// whitespace-trimmed and territory codes upper-cased before the key-field
// check, so "zn1 " and "ZN1" partition identically. Row numbers are 1-based
// positions in the input slice.
func (v *RecordValidator) ValidateRecords(records []entities.RequestRecord) *ValidationResult {
	result := &ValidationResult{
		Valid: make([]entities.RequestRecord, 0, len(records)),
	}

	for i, record := range records {
		rowNumber := i + 1
		cleaned := cleanRecord(record)

		missing := ""
		for _, field := range keyFields {
			if field.value(cleaned) == "" {
				missing = field.name
				break
			}
		}

		if missing != "" {
			rowErr := &entities.RowValidationError{RowNumber: rowNumber, Field: missing}
			result.Errors = append(result.Errors, rowErr)
			result.Excluded = append(result.Excluded, entities.ExcludedRow{
				RowNumber: rowNumber,
				Record:    cleaned,
				Reason:    entities.ExclusionMissingKeyField,
				Detail:    rowErr.Error(),
			})
			continue
		}

		result.Valid = append(result.Valid, cleaned)
	}

	return result
}

func cleanRecord(r entities.RequestRecord) entities.RequestRecord {
	r.RequestID = entities.RequestID(strings.TrimSpace(string(r.RequestID)))
	r.ZoneCode = entities.ZoneCode(strings.ToUpper(strings.TrimSpace(string(r.ZoneCode))))
	r.ZoneName = strings.TrimSpace(r.ZoneName)
	r.ZoneEmail = strings.TrimSpace(r.ZoneEmail)
	r.AreaCode = entities.AreaCode(strings.ToUpper(strings.TrimSpace(string(r.AreaCode))))
	r.AreaName = strings.TrimSpace(r.AreaName)
	r.AreaEmail = strings.TrimSpace(r.AreaEmail)
	r.RepEmail = strings.TrimSpace(r.RepEmail)
	r.RepHQ = strings.TrimSpace(r.RepHQ)
	r.CustomerCode = strings.TrimSpace(r.CustomerCode)
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.ItemCode = strings.TrimSpace(r.ItemCode)
	r.SKU = strings.TrimSpace(r.SKU)
	r.RawStatus = strings.TrimSpace(r.RawStatus)
	r.RTOReason = strings.TrimSpace(r.RTOReason)
	return r
}
