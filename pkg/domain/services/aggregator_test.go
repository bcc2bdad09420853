package services

import (
	"reflect"
	"testing"

	"github.com/fieldops/zonereport/pkg/domain/entities"
)

func summaryRecord(id, area, rep, customer, final string) entities.RequestRecord {
	return entities.RequestRecord{
		RequestID:    entities.RequestID(id),
		ZoneCode:     "ZN001",
		AreaCode:     entities.AreaCode(area),
		AreaName:     "Area " + area,
		RepEmail:     rep,
		CustomerCode: customer,
		FinalStatus:  final,
	}
}

var summaryStatusOrder = []string{"Delivered", "Dispatch Pending"}

func TestAggregator_Summarize(t *testing.T) {
	aggregator := NewAggregator()

	partition := entities.ZonePartition{
		ZoneCode: "ZN001",
		Records: []entities.RequestRecord{
			summaryRecord("REQ001", "AB002", "rep1", "CUST1", "Delivered"),
			summaryRecord("REQ002", "AB001", "rep1", "CUST1", "Delivered"),
			summaryRecord("REQ003", "AB001", "rep1", "CUST2", "Dispatch Pending"),
			summaryRecord("REQ004", "AB001", "rep2", "CUST2", "Delivered"),
			summaryRecord("REQ005", "AB002", "rep3", "CUST3", entities.StatusUnmapped),
		},
	}

	rows, total := aggregator.Summarize(partition, summaryStatusOrder)

	if len(rows) != 2 {
		t.Fatalf("Expected 2 area rows, got %d", len(rows))
	}

	// Ascending area code order
	if rows[0].AreaCode != "AB001" || rows[1].AreaCode != "AB002" {
		t.Errorf("Expected rows ordered AB001, AB002; got %s, %s", rows[0].AreaCode, rows[1].AreaCode)
	}

	ab001 := rows[0]
	if ab001.DistinctReps != 2 {
		t.Errorf("AB001: expected 2 distinct reps, got %d", ab001.DistinctReps)
	}
	if ab001.DistinctCustomers != 2 {
		t.Errorf("AB001: expected 2 distinct customers, got %d", ab001.DistinctCustomers)
	}
	if ab001.StatusCounts["Delivered"] != 2 || ab001.StatusCounts["Dispatch Pending"] != 1 {
		t.Errorf("AB001: unexpected status counts %v", ab001.StatusCounts)
	}
	if ab001.Total != 3 {
		t.Errorf("AB001: expected total 3, got %d", ab001.Total)
	}

	ab002 := rows[1]
	if ab002.StatusCounts[entities.StatusUnmapped] != 1 {
		t.Errorf("AB002: expected 1 unmapped, got %d", ab002.StatusCounts[entities.StatusUnmapped])
	}
	// Declared buckets are present even when zero
	if count, ok := ab002.StatusCounts["Dispatch Pending"]; !ok || count != 0 {
		t.Errorf("AB002: expected explicit zero bucket for Dispatch Pending, got %v (present=%v)", count, ok)
	}

	// Total row is the column-wise sum
	if total.GrandTotal != 5 {
		t.Errorf("Expected grand total 5, got %d", total.GrandTotal)
	}
	if total.DistinctReps != ab001.DistinctReps+ab002.DistinctReps {
		t.Errorf("Expected total reps to be the column sum, got %d", total.DistinctReps)
	}
	if total.StatusCounts["Delivered"] != 3 {
		t.Errorf("Expected 3 Delivered in total row, got %d", total.StatusCounts["Delivered"])
	}
	if total.StatusCounts[entities.StatusUnmapped] != 1 {
		t.Errorf("Expected 1 Unmapped in total row, got %d", total.StatusCounts[entities.StatusUnmapped])
	}
}

func TestAggregator_BucketSumsMatchRowTotals(t *testing.T) {
	aggregator := NewAggregator()

	partition := entities.ZonePartition{
		ZoneCode: "ZN001",
		Records: []entities.RequestRecord{
			summaryRecord("REQ001", "AB001", "rep1", "CUST1", "Delivered"),
			summaryRecord("REQ002", "AB001", "rep2", "CUST2", "Dispatch Pending"),
			summaryRecord("REQ003", "AB002", "rep3", "CUST3", entities.StatusUnmapped),
		},
	}

	rows, total := aggregator.Summarize(partition, summaryStatusOrder)

	grandFromRows := 0
	for _, row := range rows {
		bucketSum := 0
		for _, count := range row.StatusCounts {
			bucketSum += count
		}
		if bucketSum != row.Total {
			t.Errorf("%s: bucket sum %d != row total %d", row.AreaCode, bucketSum, row.Total)
		}
		grandFromRows += row.Total
	}
	if grandFromRows != total.GrandTotal {
		t.Errorf("Sum of row totals %d != grand total %d", grandFromRows, total.GrandTotal)
	}
	if total.GrandTotal != len(partition.Records) {
		t.Errorf("Grand total %d != partition size %d", total.GrandTotal, len(partition.Records))
	}
}

func TestAggregator_Deterministic(t *testing.T) {
	aggregator := NewAggregator()

	partition := entities.ZonePartition{
		ZoneCode: "ZN001",
		Records: []entities.RequestRecord{
			summaryRecord("REQ001", "AB003", "rep1", "CUST1", "Delivered"),
			summaryRecord("REQ002", "AB001", "rep2", "CUST2", "Delivered"),
			summaryRecord("REQ003", "AB002", "rep3", "CUST3", "Dispatch Pending"),
		},
	}

	firstRows, firstTotal := aggregator.Summarize(partition, summaryStatusOrder)
	secondRows, secondTotal := aggregator.Summarize(partition, summaryStatusOrder)

	if !reflect.DeepEqual(firstRows, secondRows) {
		t.Error("Expected repeated aggregation to yield identical rows")
	}
	if !reflect.DeepEqual(firstTotal, secondTotal) {
		t.Error("Expected repeated aggregation to yield an identical total row")
	}
}

func TestAggregator_EmptyPartition(t *testing.T) {
	rows, total := NewAggregator().Summarize(entities.ZonePartition{ZoneCode: "ZN001"}, summaryStatusOrder)
	if len(rows) != 0 {
		t.Errorf("Expected no rows for an empty partition, got %d", len(rows))
	}
	if total.GrandTotal != 0 {
		t.Errorf("Expected zero grand total, got %d", total.GrandTotal)
	}
}
