package services

import (
	"sort"

	"github.com/fieldops/zonereport/pkg/domain/entities"
)

// Aggregator computes the per-area summary rows and the zone total row for
// one zone partition. All metrics are non-negative integer counts; no
// rounding or averaging happens at this layer.
type Aggregator struct{}

// NewAggregator creates a new aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Summarize groups a partition's records by area code and computes, per area:
// distinct rep count, distinct customer count, and a count per final-status
// bucket (statusOrder plus the Unmapped sentinel). Rows are emitted ascending
// by area code so re-running on identical input yields identical ordering.
// The total row is the column-wise sum across areas.
func (a *Aggregator) Summarize(partition entities.ZonePartition, statusOrder []string) ([]entities.AreaSummaryRow, entities.ZoneTotalRow) {
	buckets := append(append([]string{}, statusOrder...), entities.StatusUnmapped)

	type areaGroup struct {
		name      string
		reps      map[string]bool
		customers map[string]bool
		statuses  map[string]int
		total     int
	}

	groups := make(map[entities.AreaCode]*areaGroup)
	for _, record := range partition.Records {
		group, ok := groups[record.AreaCode]
		if !ok {
			group = &areaGroup{
				reps:      make(map[string]bool),
				customers: make(map[string]bool),
				statuses:  make(map[string]int),
			}
			groups[record.AreaCode] = group
		}

		if group.name == "" {
			group.name = record.AreaName
		}
		if record.RepEmail != "" {
			group.reps[record.RepEmail] = true
		}
		if record.CustomerCode != "" {
			group.customers[record.CustomerCode] = true
		}
		group.statuses[record.FinalStatus]++
		group.total++
	}

	areaCodes := make([]entities.AreaCode, 0, len(groups))
	for areaCode := range groups {
		areaCodes = append(areaCodes, areaCode)
	}
	sort.Slice(areaCodes, func(i, j int) bool { return areaCodes[i] < areaCodes[j] })

	total := entities.ZoneTotalRow{StatusCounts: zeroCounts(buckets)}
	rows := make([]entities.AreaSummaryRow, 0, len(areaCodes))

	for _, areaCode := range areaCodes {
		group := groups[areaCode]

		row := entities.AreaSummaryRow{
			AreaCode:          areaCode,
			AreaName:          group.name,
			DistinctReps:      len(group.reps),
			DistinctCustomers: len(group.customers),
			StatusCounts:      zeroCounts(buckets),
			Total:             group.total,
		}
		for status, count := range group.statuses {
			row.StatusCounts[status] = count
		}
		rows = append(rows, row)

		total.DistinctReps += row.DistinctReps
		total.DistinctCustomers += row.DistinctCustomers
		total.GrandTotal += row.Total
		for status, count := range row.StatusCounts {
			total.StatusCounts[status] += count
		}
	}

	return rows, total
}

func zeroCounts(buckets []string) map[string]int {
	counts := make(map[string]int, len(buckets))
	for _, bucket := range buckets {
		counts[bucket] = 0
	}
	return counts
}
