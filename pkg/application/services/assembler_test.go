package services

import (
	"testing"
	"time"

	"github.com/fieldops/zonereport/pkg/application/dto"
	"github.com/fieldops/zonereport/pkg/domain/entities"
)

func assemblerReport() entities.ZoneReport {
	requestDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	return entities.ZoneReport{
		ZoneCode:  "ZN001",
		ZoneName:  "North Zone",
		ZoneEmail: "north@fieldops.example",
		AreaRows: []entities.AreaSummaryRow{
			{
				AreaCode:          "AB001",
				AreaName:          "North Area 1",
				DistinctReps:      2,
				DistinctCustomers: 3,
				StatusCounts: map[string]int{
					"Delivered":              2,
					"Dispatch Pending":       1,
					entities.StatusUnmapped: 0,
				},
				Total: 3,
			},
		},
		TotalRow: entities.ZoneTotalRow{
			DistinctReps:      2,
			DistinctCustomers: 3,
			StatusCounts: map[string]int{
				"Delivered":              2,
				"Dispatch Pending":       1,
				entities.StatusUnmapped: 0,
			},
			GrandTotal: 3,
		},
		Records: []entities.RequestRecord{
			{
				RequestID:   "REQ001",
				AreaCode:    "AB001",
				AreaName:    "North Area 1",
				RepEmail:    "rep1@fieldops.example",
				RawStatus:   "delivered",
				FinalStatus: "Delivered",
				RequestDate: &requestDate,
			},
		},
	}
}

func TestOutputAssembler_SummaryColumns(t *testing.T) {
	assembler := NewOutputAssembler([]string{"Delivered", "Dispatch Pending"})
	zone := assembler.AssembleZone(assemblerReport())

	wantColumns := []string{
		"Area Code", "Area Name", "Unique Reps", "Unique Customers",
		"Delivered", "Dispatch Pending", entities.StatusUnmapped, "Total",
	}
	if len(zone.Summary.Columns) != len(wantColumns) {
		t.Fatalf("Expected %d summary columns, got %d", len(wantColumns), len(zone.Summary.Columns))
	}
	for i, want := range wantColumns {
		if zone.Summary.Columns[i].Name != want {
			t.Errorf("Column %d: expected %q, got %q", i, want, zone.Summary.Columns[i].Name)
		}
	}
}

func TestOutputAssembler_SummaryClosingTotalRow(t *testing.T) {
	assembler := NewOutputAssembler([]string{"Delivered", "Dispatch Pending"})
	zone := assembler.AssembleZone(assemblerReport())

	if len(zone.Summary.Rows) != 2 {
		t.Fatalf("Expected area row plus total row, got %d rows", len(zone.Summary.Rows))
	}

	totalRow := zone.Summary.Rows[len(zone.Summary.Rows)-1]
	if totalRow[0] != "" || totalRow[1] != "Total" {
		t.Errorf("Expected closing total row, got %v", totalRow)
	}
	if totalRow[len(totalRow)-1] != 3 {
		t.Errorf("Expected grand total 3 in the last cell, got %v", totalRow[len(totalRow)-1])
	}
}

func TestOutputAssembler_DetailRows(t *testing.T) {
	assembler := NewOutputAssembler([]string{"Delivered", "Dispatch Pending"})
	zone := assembler.AssembleZone(assemblerReport())

	if len(zone.Detail.Rows) != 1 {
		t.Fatalf("Expected 1 detail row, got %d", len(zone.Detail.Rows))
	}

	row := zone.Detail.Rows[0]
	if row[0] != "REQ001" {
		t.Errorf("Expected request id REQ001, got %v", row[0])
	}

	// Date cells carry time.Time values; nil dates carry nil
	foundDate := false
	for i, column := range zone.Detail.Columns {
		if column.Type != dto.ColumnDate {
			continue
		}
		switch v := row[i].(type) {
		case time.Time:
			foundDate = true
		case nil:
		default:
			t.Errorf("Column %q: expected time.Time or nil, got %T", column.Name, v)
		}
	}
	if !foundDate {
		t.Error("Expected at least one populated date cell")
	}
}
