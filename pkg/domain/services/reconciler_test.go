package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fieldops/zonereport/pkg/domain/entities"
)

// consistentReport builds a report whose aggregate and detail agree
func consistentReport() entities.ZoneReport {
	records := []entities.RequestRecord{
		summaryRecord("REQ001", "AB001", "rep1", "CUST1", "Delivered"),
		summaryRecord("REQ002", "AB001", "rep2", "CUST2", "Dispatch Pending"),
		summaryRecord("REQ003", "AB002", "rep3", "CUST3", "Delivered"),
	}

	rows, total := NewAggregator().Summarize(entities.ZonePartition{
		ZoneCode: "ZN001",
		Records:  records,
	}, summaryStatusOrder)

	return entities.ZoneReport{
		ZoneCode: "ZN001",
		AreaRows: rows,
		TotalRow: total,
		Records:  records,
	}
}

func TestReconciler_CleanReportPasses(t *testing.T) {
	mismatches := NewStrictReconciler().Check(consistentReport())
	if len(mismatches) != 0 {
		t.Errorf("Expected no mismatches for a consistent report, got %v", mismatches)
	}
}

func TestReconciler_DetectsGrandTotalDrift(t *testing.T) {
	report := consistentReport()
	report.TotalRow.GrandTotal = 5

	mismatches := NewStrictReconciler().Check(report)
	if len(mismatches) != 1 {
		t.Fatalf("Expected 1 mismatch, got %d", len(mismatches))
	}

	m := mismatches[0]
	if m.ZoneCode != "ZN001" || m.AreaCode != "" {
		t.Errorf("Expected a zone-level mismatch, got zone=%s area=%s", m.ZoneCode, m.AreaCode)
	}
	if m.Expected != 3 || m.Actual != 5 {
		t.Errorf("Expected expected=3 actual=5, got expected=%d actual=%d", m.Expected, m.Actual)
	}
	if !m.ExceedsTolerance {
		t.Error("Expected strict reconciliation to flag the drift as exceeding tolerance")
	}
}

func TestReconciler_DetectsAreaBucketDrift(t *testing.T) {
	report := consistentReport()
	report.AreaRows[0].StatusCounts["Delivered"]++

	mismatches := NewStrictReconciler().Check(report)
	if len(mismatches) != 1 {
		t.Fatalf("Expected 1 mismatch, got %d", len(mismatches))
	}
	if mismatches[0].AreaCode != "AB001" {
		t.Errorf("Expected area-level mismatch for AB001, got %s", mismatches[0].AreaCode)
	}
}

func TestReconciler_DetectsAreaTotalDrift(t *testing.T) {
	report := consistentReport()
	// Keep buckets and total self-consistent but wrong against the detail
	report.AreaRows[0].StatusCounts["Delivered"]++
	report.AreaRows[0].Total++
	report.TotalRow.GrandTotal++

	mismatches := NewStrictReconciler().Check(report)
	// Zone grand total and the area row both diverge from the detail
	if len(mismatches) != 2 {
		t.Fatalf("Expected 2 mismatches, got %d: %v", len(mismatches), mismatches)
	}
}

func TestReconciler_ToleranceSuppressesFlagNotReport(t *testing.T) {
	report := consistentReport()
	report.TotalRow.GrandTotal = 4 // 1 off of 3, ~33% divergence

	within := NewReconciler(decimal.NewFromInt(50)).Check(report)
	if len(within) != 1 {
		t.Fatalf("Expected the divergence to still be reported, got %d mismatches", len(within))
	}
	if within[0].ExceedsTolerance {
		t.Error("Expected a 33%% divergence to stay inside a 50%% tolerance")
	}

	over := NewReconciler(decimal.NewFromInt(10)).Check(report)
	if !over[0].ExceedsTolerance {
		t.Error("Expected a 33%% divergence to exceed a 10%% tolerance")
	}
}

func TestReconciler_ZeroExpectedAlwaysExceeds(t *testing.T) {
	report := entities.ZoneReport{
		ZoneCode: "ZN001",
		TotalRow: entities.ZoneTotalRow{GrandTotal: 2},
	}

	mismatches := NewReconciler(decimal.NewFromInt(99)).Check(report)
	if len(mismatches) != 1 {
		t.Fatalf("Expected 1 mismatch, got %d", len(mismatches))
	}
	if !mismatches[0].ExceedsTolerance {
		t.Error("Expected any divergence from a zero expected count to exceed tolerance")
	}
}
