package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fieldops/zonereport/pkg/application/dto"
)

const (
	summarySheetName = "Summary"
	detailSheetName  = "Consolidated Data"
)

// generateXLSXOutput writes one workbook per zone: a styled summary sheet
// and the detailed extract the zone distributes onward
func generateXLSXOutput(result *dto.ReportResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for XLSX format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, zone := range result.Zones {
		filename := filepath.Join(config.OutputDir, zoneFilename("Zone_Report", zone, "xlsx"))
		if err := writeZoneWorkbook(zone, filename); err != nil {
			return fmt.Errorf("failed to write workbook for %s: %w", zone.ZoneCode, err)
		}
		if config.Verbose {
			fmt.Printf("💾 Workbook saved to: %s\n", filename)
		}
	}

	return nil
}

func writeZoneWorkbook(zone dto.ZoneOutput, filename string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheetName); err != nil {
		return err
	}
	if _, err := f.NewSheet(detailSheetName); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Family: "Arial", Size: 10},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D3D3D3"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Family: "Arial", Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr("dd/mm/yyyy")})
	if err != nil {
		return err
	}

	if err := writeTableSheet(f, summarySheetName, zone.Summary, headerStyle, dateStyle); err != nil {
		return err
	}
	if err := writeTableSheet(f, detailSheetName, zone.Detail, headerStyle, dateStyle); err != nil {
		return err
	}

	// Bold the closing total row of the summary
	if rows := len(zone.Summary.Rows); rows > 0 {
		lastRow := rows + 1
		start, _ := excelize.CoordinatesToCellName(1, lastRow)
		end, _ := excelize.CoordinatesToCellName(len(zone.Summary.Columns), lastRow)
		if err := f.SetCellStyle(summarySheetName, start, end, totalStyle); err != nil {
			return err
		}
	}

	return f.SaveAs(filename)
}

// writeTableSheet writes a table IR onto one sheet: styled header row, data
// rows, date formatting, and content-sized column widths
func writeTableSheet(f *excelize.File, sheet string, table dto.Table, headerStyle, dateStyle int) error {
	widths := make([]int, len(table.Columns))

	for c, column := range table.Columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, column.Name); err != nil {
			return err
		}
		widths[c] = len(column.Name)
	}

	headerEnd, _ := excelize.CoordinatesToCellName(len(table.Columns), 1)
	if err := f.SetCellStyle(sheet, "A1", headerEnd, headerStyle); err != nil {
		return err
	}

	for r, row := range table.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}

			switch v := value.(type) {
			case nil:
				// leave blank
			case time.Time:
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return err
				}
				if err := f.SetCellStyle(sheet, cell, cell, dateStyle); err != nil {
					return err
				}
			default:
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return err
				}
			}

			if c < len(widths) {
				if l := len(formatValue(value)); l > widths[c] {
					widths[c] = l
				}
			}
		}
	}

	for c := range table.Columns {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		width := float64(widths[c] + 2)
		if width > 50 {
			width = 50
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}

	return nil
}

func strPtr(s string) *string {
	return &s
}
