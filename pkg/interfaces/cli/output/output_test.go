package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fieldops/zonereport/pkg/application/dto"
)

func TestZoneFilename(t *testing.T) {
	testCases := []struct {
		name     string
		zone     dto.ZoneOutput
		want     string
	}{
		{
			"spaces become underscores",
			dto.ZoneOutput{ZoneCode: "ZN001", ZoneName: "North Zone"},
			"Zone_Summary_ZN001_North_Zone.csv",
		},
		{
			"path separators are stripped",
			dto.ZoneOutput{ZoneCode: "ZN002", ZoneName: "East/West Zone"},
			"Zone_Summary_ZN002_East_West_Zone.csv",
		},
		{
			"empty name falls back",
			dto.ZoneOutput{ZoneCode: "ZN003"},
			"Zone_Summary_ZN003_Unknown.csv",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := zoneFilename("Zone_Summary", tc.zone, "csv")
			if got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name  string
		value any
		want  string
	}{
		{"nil is empty", nil, ""},
		{"string passes through", "North Zone", "North Zone"},
		{"int renders plainly", 42, "42"},
		{"date renders ISO", date, "2025-03-10"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatValue(tc.value); got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestGenerateCSVOutput(t *testing.T) {
	dir := t.TempDir()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	result := &dto.ReportResult{
		Zones: []dto.ZoneOutput{
			{
				ZoneCode: "ZN001",
				ZoneName: "North Zone",
				Summary: dto.Table{
					Columns: []dto.Column{
						{Name: "Area Code", Type: dto.ColumnString},
						{Name: "Total", Type: dto.ColumnInt},
					},
					Rows: [][]any{
						{"AB001", 3},
						{"", 3},
					},
				},
				Detail: dto.Table{
					Columns: []dto.Column{
						{Name: "Request Id", Type: dto.ColumnString},
						{Name: "Request Date", Type: dto.ColumnDate},
					},
					Rows: [][]any{
						{"REQ001", date},
						{"REQ002", nil},
					},
				},
			},
		},
	}

	if err := Generate(result, Config{Formats: []string{"csv"}, OutputDir: dir}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	summaryPath := filepath.Join(dir, "Zone_Summary_ZN001_North_Zone.csv")
	file, err := os.Open(summaryPath)
	if err != nil {
		t.Fatalf("Expected summary file at %s: %v", summaryPath, err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read summary CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Area Code" || rows[1][1] != "3" {
		t.Errorf("Unexpected summary content: %v", rows)
	}

	detailPath := filepath.Join(dir, "Zone_Consolidated_ZN001_North_Zone.csv")
	detailFile, err := os.Open(detailPath)
	if err != nil {
		t.Fatalf("Expected detail file at %s: %v", detailPath, err)
	}
	defer detailFile.Close()

	detailRows, err := csv.NewReader(detailFile).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read detail CSV: %v", err)
	}
	if detailRows[1][1] != "2025-03-10" {
		t.Errorf("Expected ISO date, got %q", detailRows[1][1])
	}
	if detailRows[2][1] != "" {
		t.Errorf("Expected empty cell for nil date, got %q", detailRows[2][1])
	}
}

func TestGenerate_UnknownFormat(t *testing.T) {
	if err := Generate(&dto.ReportResult{}, Config{Formats: []string{"pdf"}}); err == nil {
		t.Fatal("Expected unknown format to fail")
	}
}
