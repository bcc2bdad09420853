package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fieldops/zonereport/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	// Formats is the set of renderers to run: text, json, csv, html, xlsx
	Formats   []string
	OutputDir string
	Verbose   bool
}

// Generate renders the report result in every configured format.
// Renderers consume only the neutral table IR; no aggregation logic here.
func Generate(result *dto.ReportResult, config Config) error {
	for _, format := range config.Formats {
		var err error
		switch format {
		case "text":
			err = generateTextOutput(result, config)
		case "json":
			err = generateJSONOutput(result, config)
		case "csv":
			err = generateCSVOutput(result, config)
		case "html":
			err = generateHTMLOutput(result, config)
		case "xlsx":
			err = generateXLSXOutput(result, config)
		default:
			err = fmt.Errorf("unsupported output format: %s", format)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// generateTextOutput prints the diagnostics and per-zone summaries to stdout
func generateTextOutput(result *dto.ReportResult, config Config) error {
	diag := result.Diagnostics

	fmt.Printf("📊 Zone Report Summary\n")
	fmt.Printf("======================\n\n")
	fmt.Printf("Run ID: %s\n", diag.RunID)
	fmt.Printf("Input Rows: %d\n", diag.InputRows)
	fmt.Printf("Valid Rows: %d\n", diag.ValidRows)
	fmt.Printf("Excluded Rows: %d\n", len(diag.ExcludedRows))
	fmt.Printf("Unmapped Statuses: %d\n", diag.UnmappedTotal())
	fmt.Printf("Zones Produced: %d\n", diag.ZonesProduced)
	fmt.Printf("Mismatches: %d\n", len(diag.Mismatches))
	fmt.Printf("Duration: %v\n\n", diag.Duration)

	for _, zone := range result.Zones {
		fmt.Printf("🗂  Zone %s — %s (%d requests)\n", zone.ZoneCode, zone.ZoneName, len(zone.Detail.Rows))
		printTable(zone.Summary)
		fmt.Println()
	}

	if len(diag.Mismatches) > 0 {
		fmt.Printf("⚠️  Reconciliation mismatches:\n")
		for _, mismatch := range diag.Mismatches {
			fmt.Printf("  %s\n", mismatch.Error())
		}
		fmt.Println()
	}

	if config.Verbose && len(diag.ExcludedRows) > 0 {
		fmt.Printf("Excluded rows:\n")
		for _, row := range diag.ExcludedRows {
			fmt.Printf("  row %d: %s (%s)\n", row.RowNumber, row.Reason, row.Detail)
		}
		fmt.Println()
	}

	return nil
}

// printTable renders a table with per-column widths sized to content
func printTable(table dto.Table) {
	widths := make([]int, len(table.Columns))
	for i, column := range table.Columns {
		widths[i] = len(column.Name)
	}

	formatted := make([][]string, len(table.Rows))
	for r, row := range table.Rows {
		formatted[r] = make([]string, len(row))
		for c, value := range row {
			formatted[r][c] = formatValue(value)
			if c < len(widths) && len(formatted[r][c]) > widths[c] {
				widths[c] = len(formatted[r][c])
			}
		}
	}

	var header, separator strings.Builder
	for i, column := range table.Columns {
		fmt.Fprintf(&header, "%-*s  ", widths[i], column.Name)
		fmt.Fprintf(&separator, "%s  ", strings.Repeat("-", widths[i]))
	}
	fmt.Println(header.String())
	fmt.Println(separator.String())

	for _, row := range formatted {
		var line strings.Builder
		for i, cell := range row {
			fmt.Fprintf(&line, "%-*s  ", widths[i], cell)
		}
		fmt.Println(line.String())
	}
}

// generateJSONOutput writes the full result (tables plus diagnostics) as JSON
func generateJSONOutput(result *dto.ReportResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "zone_reports.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Printf("💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes one summary and one detail CSV per zone
func generateCSVOutput(result *dto.ReportResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, zone := range result.Zones {
		summaryFile := filepath.Join(config.OutputDir, zoneFilename("Zone_Summary", zone, "csv"))
		if err := writeTableCSV(zone.Summary, summaryFile); err != nil {
			return fmt.Errorf("failed to write summary CSV for %s: %w", zone.ZoneCode, err)
		}

		detailFile := filepath.Join(config.OutputDir, zoneFilename("Zone_Consolidated", zone, "csv"))
		if err := writeTableCSV(zone.Detail, detailFile); err != nil {
			return fmt.Errorf("failed to write detail CSV for %s: %w", zone.ZoneCode, err)
		}

		if config.Verbose {
			fmt.Printf("💾 %s: %s, %s\n", zone.ZoneCode, summaryFile, detailFile)
		}
	}

	return nil
}

func writeTableCSV(table dto.Table, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := make([]string, len(table.Columns))
	for i, column := range table.Columns {
		header[i] = column.Name
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, row := range table.Rows {
		record := make([]string, len(row))
		for i, value := range row {
			record[i] = formatValue(value)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

// zoneFilename builds the per-zone file name the distribution workflow
// expects: prefix, zone code, sanitized zone name.
func zoneFilename(prefix string, zone dto.ZoneOutput, ext string) string {
	name := zone.ZoneName
	if name == "" {
		name = "Unknown"
	}
	return fmt.Sprintf("%s_%s_%s.%s", prefix, zone.ZoneCode, sanitizeName(name), ext)
}

func sanitizeName(name string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_")
	return replacer.Replace(name)
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return fmt.Sprintf("%d", v)
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", v)
	}
}
