package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fieldops/zonereport/pkg/domain/entities"
)

// ZonePartitioner groups records by zone code into exclusive subsets.
// Zone code equality is the only partitioning key; codes that fail the
// top-level prefix convention are excluded with a recorded reason.
type ZonePartitioner struct {
	zonePrefix string
}

// NewZonePartitioner creates a partitioner. Only zone codes starting with
// zonePrefix count as valid top-level zones; an empty prefix admits all codes.
func NewZonePartitioner(zonePrefix string) *ZonePartitioner {
	return &ZonePartitioner{zonePrefix: strings.ToUpper(zonePrefix)}
}

// PartitionResult contains the exclusive per-zone subsets and the rows
// excluded by the zone naming convention
type PartitionResult struct {
	// Partitions are ordered ascending by zone code
	Partitions []entities.ZonePartition
	Excluded   []entities.ExcludedRow
}

// Partition splits records into one exclusive subset per zone code in a
// single pass. Post-condition: every input record lands in exactly one
// partition or the excluded set; the count check makes a silent drop or a
// double count impossible to miss.
func (p *ZonePartitioner) Partition(records []entities.RequestRecord) (*PartitionResult, error) {
	byZone := make(map[entities.ZoneCode][]entities.RequestRecord)
	var excluded []entities.ExcludedRow

	for i, record := range records {
		if p.zonePrefix != "" && !strings.HasPrefix(string(record.ZoneCode), p.zonePrefix) {
			excluded = append(excluded, entities.ExcludedRow{
				RowNumber: i + 1,
				Record:    record,
				Reason:    entities.ExclusionBadZonePrefix,
				Detail:    fmt.Sprintf("zone code %q does not start with %q", record.ZoneCode, p.zonePrefix),
			})
			continue
		}
		byZone[record.ZoneCode] = append(byZone[record.ZoneCode], record)
	}

	partitioned := 0
	partitions := make([]entities.ZonePartition, 0, len(byZone))
	for zoneCode, zoneRecords := range byZone {
		name, email := electZoneIdentity(zoneRecords)
		partitions = append(partitions, entities.ZonePartition{
			ZoneCode:  zoneCode,
			ZoneName:  name,
			ZoneEmail: email,
			Records:   zoneRecords,
		})
		partitioned += len(zoneRecords)
	}

	sort.Slice(partitions, func(i, j int) bool {
		return partitions[i].ZoneCode < partitions[j].ZoneCode
	})

	if partitioned+len(excluded) != len(records) {
		return nil, fmt.Errorf(
			"partition count check failed: %d partitioned + %d excluded != %d input records",
			partitioned, len(excluded), len(records),
		)
	}

	return &PartitionResult{Partitions: partitions, Excluded: excluded}, nil
}

// electZoneIdentity picks the display name and email for a zone from its
// records: the most frequent non-empty value, ties broken lexicographically
// so the choice is stable across runs.
func electZoneIdentity(records []entities.RequestRecord) (name string, email string) {
	name = mostFrequent(records, func(r entities.RequestRecord) string { return r.ZoneName })
	email = mostFrequent(records, func(r entities.RequestRecord) string { return r.ZoneEmail })
	return name, email
}

func mostFrequent(records []entities.RequestRecord, value func(entities.RequestRecord) string) string {
	counts := make(map[string]int)
	for _, r := range records {
		if v := value(r); v != "" {
			counts[v]++
		}
	}

	best := ""
	bestCount := 0
	for v, count := range counts {
		if count > bestCount || (count == bestCount && v < best) {
			best = v
			bestCount = count
		}
	}
	return best
}
