package output

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/fieldops/zonereport/pkg/application/dto"
)

// summaryTemplate renders a zone summary the way the distribution emails
// present it: bordered table, grey header, bold closing total row.
const summaryTemplate = `<html>
<body style="font-family: Arial, sans-serif; font-size: 12px;">
<p>Dear {{.ZoneName}},</p>
<p>Please find below the request summary for zone <b>{{.ZoneCode}}</b>.</p>
<table border="1" cellpadding="5" cellspacing="0" style="border-collapse: collapse; font-family: Arial, sans-serif; font-size: 11px;">
  <thead>
    <tr style="background-color: #D3D3D3; font-weight: bold; text-align: center;">
{{- range .Header}}
      <th>{{.}}</th>
{{- end}}
    </tr>
  </thead>
  <tbody>
{{- range $i, $row := .Rows}}
    <tr{{if $row.Total}} style="font-weight: bold; background-color: #F0F0F0;"{{end}}>
{{- range $row.Cells}}
      <td style="text-align: center;">{{.}}</td>
{{- end}}
    </tr>
{{- end}}
  </tbody>
</table>
<p>The detailed extract for your zone is attached.</p>
</body>
</html>
`

type htmlRow struct {
	Cells []string
	Total bool
}

type htmlSummary struct {
	ZoneCode string
	ZoneName string
	Header   []string
	Rows     []htmlRow
}

// generateHTMLOutput writes one email-body style HTML summary per zone
func generateHTMLOutput(result *dto.ReportResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for HTML format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmpl, err := template.New("summary").Parse(summaryTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse summary template: %w", err)
	}

	for _, zone := range result.Zones {
		data := htmlSummary{
			ZoneCode: string(zone.ZoneCode),
			ZoneName: zone.ZoneName,
		}
		for _, column := range zone.Summary.Columns {
			data.Header = append(data.Header, column.Name)
		}
		for i, row := range zone.Summary.Rows {
			htmlr := htmlRow{Total: i == len(zone.Summary.Rows)-1}
			for _, value := range row {
				htmlr.Cells = append(htmlr.Cells, formatValue(value))
			}
			data.Rows = append(data.Rows, htmlr)
		}

		filename := filepath.Join(config.OutputDir, zoneFilename("Zone_Summary", zone, "html"))
		file, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("failed to create HTML file for %s: %w", zone.ZoneCode, err)
		}
		if err := tmpl.Execute(file, data); err != nil {
			file.Close()
			return fmt.Errorf("failed to render HTML for %s: %w", zone.ZoneCode, err)
		}
		if err := file.Close(); err != nil {
			return err
		}

		if config.Verbose {
			fmt.Printf("💾 HTML summary saved to: %s\n", filename)
		}
	}

	return nil
}
