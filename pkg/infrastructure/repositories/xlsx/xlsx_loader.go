package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/fieldops/zonereport/pkg/domain/entities"
	csvrepo "github.com/fieldops/zonereport/pkg/infrastructure/repositories/csv"
)

// Loader handles loading tracker and rule data from Excel workbooks.
// Parsed rows go through the same schema contract as the CSV loader.
type Loader struct{}

// NewLoader creates a new XLSX loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadRecords loads request records from a tracker workbook sheet.
// An empty sheet name selects the workbook's first sheet.
func (l *Loader) LoadRecords(filename, sheet string) ([]entities.RequestRecord, error) {
	rows, err := readSheet(filename, sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracker workbook %s: %w", filename, err)
	}
	return csvrepo.ParseRecordRows(rows)
}

// LoadRules loads the status rule table from a workbook sheet with the
// two-column (raw_status, final_status) layout
func (l *Loader) LoadRules(filename, sheet string) ([]entities.RuleEntry, error) {
	rows, err := readSheet(filename, sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules workbook %s: %w", filename, err)
	}
	return csvrepo.ParseRuleRows(rows)
}

func readSheet(filename, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}
