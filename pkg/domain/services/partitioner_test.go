package services

import (
	"testing"

	"github.com/fieldops/zonereport/pkg/domain/entities"
)

func zoneRecord(id, zone, zoneName string) entities.RequestRecord {
	return entities.RequestRecord{
		RequestID: entities.RequestID(id),
		ZoneCode:  entities.ZoneCode(zone),
		ZoneName:  zoneName,
		AreaCode:  "AB001",
		RawStatus: "Delivered",
	}
}

func TestZonePartitioner_ExclusivePartitions(t *testing.T) {
	partitioner := NewZonePartitioner("ZN")

	records := []entities.RequestRecord{
		zoneRecord("REQ001", "ZN002", "South Zone"),
		zoneRecord("REQ002", "ZN001", "North Zone"),
		zoneRecord("REQ003", "ZN001", "North Zone"),
		zoneRecord("REQ004", "ZN002", "South Zone"),
		zoneRecord("REQ005", "ZN001", "North Zone"),
	}

	result, err := partitioner.Partition(records)
	if err != nil {
		t.Fatalf("Expected partition to succeed: %v", err)
	}

	if len(result.Partitions) != 2 {
		t.Fatalf("Expected 2 partitions, got %d", len(result.Partitions))
	}

	// Ordered ascending by zone code
	if result.Partitions[0].ZoneCode != "ZN001" || result.Partitions[1].ZoneCode != "ZN002" {
		t.Errorf("Expected partitions ordered ZN001, ZN002; got %s, %s",
			result.Partitions[0].ZoneCode, result.Partitions[1].ZoneCode)
	}

	// Every record in exactly one partition
	seen := make(map[entities.RequestID]int)
	total := 0
	for _, partition := range result.Partitions {
		for _, record := range partition.Records {
			if record.ZoneCode != partition.ZoneCode {
				t.Errorf("Record %s with zone %s landed in partition %s",
					record.RequestID, record.ZoneCode, partition.ZoneCode)
			}
			seen[record.RequestID]++
			total++
		}
	}
	if total != len(records) {
		t.Errorf("Expected %d records across partitions, got %d", len(records), total)
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("Record %s appeared in %d partitions", id, count)
		}
	}
}

func TestZonePartitioner_ExcludesBadPrefix(t *testing.T) {
	partitioner := NewZonePartitioner("ZN")

	records := []entities.RequestRecord{
		zoneRecord("REQ001", "ZN001", "North Zone"),
		zoneRecord("REQ002", "XX009", "Mystery Zone"),
		zoneRecord("REQ003", "ZN001", "North Zone"),
	}

	result, err := partitioner.Partition(records)
	if err != nil {
		t.Fatalf("Expected partition to succeed: %v", err)
	}

	if len(result.Partitions) != 1 {
		t.Fatalf("Expected 1 partition, got %d", len(result.Partitions))
	}
	if len(result.Excluded) != 1 {
		t.Fatalf("Expected 1 excluded row, got %d", len(result.Excluded))
	}

	excluded := result.Excluded[0]
	if excluded.Reason != entities.ExclusionBadZonePrefix {
		t.Errorf("Expected reason %q, got %q", entities.ExclusionBadZonePrefix, excluded.Reason)
	}
	if excluded.Record.RequestID != "REQ002" {
		t.Errorf("Expected REQ002 excluded, got %s", excluded.Record.RequestID)
	}
	if excluded.RowNumber != 2 {
		t.Errorf("Expected row number 2, got %d", excluded.RowNumber)
	}
}

func TestZonePartitioner_EmptyPrefixAdmitsAll(t *testing.T) {
	partitioner := NewZonePartitioner("")

	result, err := partitioner.Partition([]entities.RequestRecord{
		zoneRecord("REQ001", "ZN001", "North Zone"),
		zoneRecord("REQ002", "XX009", "Mystery Zone"),
	})
	if err != nil {
		t.Fatalf("Expected partition to succeed: %v", err)
	}

	if len(result.Partitions) != 2 {
		t.Errorf("Expected 2 partitions with empty prefix, got %d", len(result.Partitions))
	}
	if len(result.Excluded) != 0 {
		t.Errorf("Expected no exclusions with empty prefix, got %d", len(result.Excluded))
	}
}

func TestZonePartitioner_ElectsMostFrequentIdentity(t *testing.T) {
	partitioner := NewZonePartitioner("ZN")

	records := []entities.RequestRecord{
		zoneRecord("REQ001", "ZN001", "North Zone"),
		zoneRecord("REQ002", "ZN001", "N. Zone"),
		zoneRecord("REQ003", "ZN001", "North Zone"),
		zoneRecord("REQ004", "ZN001", ""),
	}

	result, err := partitioner.Partition(records)
	if err != nil {
		t.Fatalf("Expected partition to succeed: %v", err)
	}

	if result.Partitions[0].ZoneName != "North Zone" {
		t.Errorf("Expected elected name North Zone, got %q", result.Partitions[0].ZoneName)
	}
}

func TestZonePartitioner_IdentityTieBreaksLexicographically(t *testing.T) {
	partitioner := NewZonePartitioner("ZN")

	records := []entities.RequestRecord{
		zoneRecord("REQ001", "ZN001", "Zone B"),
		zoneRecord("REQ002", "ZN001", "Zone A"),
	}

	result, err := partitioner.Partition(records)
	if err != nil {
		t.Fatalf("Expected partition to succeed: %v", err)
	}

	if result.Partitions[0].ZoneName != "Zone A" {
		t.Errorf("Expected tie to break to Zone A, got %q", result.Partitions[0].ZoneName)
	}
}

func TestZonePartitioner_EmptyInput(t *testing.T) {
	result, err := NewZonePartitioner("ZN").Partition(nil)
	if err != nil {
		t.Fatalf("Expected empty partition to succeed: %v", err)
	}
	if len(result.Partitions) != 0 || len(result.Excluded) != 0 {
		t.Errorf("Expected empty result for empty input")
	}
}
