package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fieldops/zonereport/pkg/domain/entities"
	"github.com/fieldops/zonereport/pkg/domain/services"
)

// Loader handles loading tracker and rule data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadRecords loads request records from a named-column tracker CSV.
// Every column in services.RequiredColumns must be present in the header or
// the load fails with a SchemaError before any row is parsed.
func (l *Loader) LoadRecords(filename string) ([]entities.RequestRecord, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open tracker file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read tracker CSV: %w", err)
	}

	return ParseRecordRows(rows)
}

// ParseRecordRows parses a header row plus data rows into request records.
// The XLSX loader feeds excelize rows through the same path so both formats
// share one schema contract.
func ParseRecordRows(rows [][]string) ([]entities.RequestRecord, error) {
	if len(rows) < 1 {
		return nil, fmt.Errorf("tracker input must have a header row")
	}

	columns, err := indexColumns(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]entities.RequestRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		record, err := parseRecord(row, columns)
		if err != nil {
			return nil, fmt.Errorf("tracker row %d: %w", i+2, err)
		}
		records = append(records, record)
	}

	return records, nil
}

// LoadRules loads the status rule table from a two-column CSV
// (raw_status,final_status). Duplicate keys reject the whole load.
func (l *Loader) LoadRules(filename string) ([]entities.RuleEntry, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open rules file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read rules CSV: %w", err)
	}

	return ParseRuleRows(rows)
}

// ParseRuleRows parses a two-column rule source (raw_status,final_status)
func ParseRuleRows(rows [][]string) ([]entities.RuleEntry, error) {
	if len(rows) < 2 {
		return nil, &entities.RuleTableError{Reason: "rule source must have header and at least one data row"}
	}

	expectedHeader := []string{"raw_status", "final_status"}
	if !validateHeader(rows[0], expectedHeader) {
		return nil, fmt.Errorf("rule header mismatch. Expected: %v, Got: %v", expectedHeader, rows[0])
	}

	entries := make([]entities.RuleEntry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 2 {
			continue
		}
		entries = append(entries, entities.RuleEntry{
			RawStatus:   row[0],
			FinalStatus: row[1],
		})
	}

	return entries, nil
}

// indexColumns maps header names to column positions and verifies the
// required schema. Header matching is case-insensitive on trimmed names.
func indexColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, required := range services.RequiredColumns {
		if _, ok := columns[strings.ToLower(required)]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &entities.SchemaError{MissingColumns: missing}
	}

	return columns, nil
}

func parseRecord(row []string, columns map[string]int) (entities.RequestRecord, error) {
	field := func(name string) string {
		i, ok := columns[strings.ToLower(name)]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	record := entities.RequestRecord{
		RequestID:    entities.RequestID(field("Request Id")),
		ZoneCode:     entities.ZoneCode(field("Zone Terr Code")),
		ZoneName:     field("Zone Name"),
		ZoneEmail:    field("Zone Email"),
		AreaCode:     entities.AreaCode(field("Area Terr Code")),
		AreaName:     field("Area Name"),
		AreaEmail:    field("Area Email"),
		RepEmail:     field("Rep Email"),
		RepHQ:        field("Rep HQ"),
		CustomerCode: field("Customer Code"),
		CustomerName: field("Customer Name"),
		ItemCode:     field("Item Code"),
		SKU:          field("SKU"),
		RawStatus:    field("Request Status"),
		RTOReason:    field("Rto Reason"),
	}

	if qtyStr := strings.TrimSpace(field("Requested Qty")); qtyStr != "" {
		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			return entities.RequestRecord{}, fmt.Errorf("invalid Requested Qty: %s", qtyStr)
		}
		record.RequestedQty = qty
	}

	for _, dateColumn := range []struct {
		name   string
		target **time.Time
	}{
		{"Request Date", &record.RequestDate},
		{"Dispatch Date", &record.DispatchDate},
		{"Delivery Date", &record.DeliveryDate},
	} {
		value := strings.TrimSpace(field(dateColumn.name))
		if value == "" {
			continue
		}
		parsed, err := parseDate(value)
		if err != nil {
			return entities.RequestRecord{}, fmt.Errorf("invalid %s format: %s (expected YYYY-MM-DD)", dateColumn.name, value)
		}
		*dateColumn.target = &parsed
	}

	return record, nil
}

// parseDate accepts the tracker's date renderings: ISO dates plus the
// dd/mm/yyyy form spreadsheet exports produce.
func parseDate(value string) (time.Time, error) {
	layouts := []string{"2006-01-02", "02/01/2006", "01-02-06"}
	var firstErr error
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}
