package entities

// ZonePartition is the exclusive subset of records belonging to one zone.
// Partitions are pairwise disjoint; a record appears in exactly one partition
// or in the excluded set, never both and never neither.
type ZonePartition struct {
	ZoneCode  ZoneCode
	ZoneName  string
	ZoneEmail string
	Records   []RequestRecord
}

// AreaSummaryRow holds the aggregate metrics for one area under a zone
type AreaSummaryRow struct {
	AreaCode          AreaCode
	AreaName          string
	DistinctReps      int
	DistinctCustomers int
	StatusCounts      map[string]int
	Total             int
}

// ZoneTotalRow is the column-wise sum of all area rows under a zone.
// GrandTotal must equal the record count of the zone's partition.
type ZoneTotalRow struct {
	DistinctReps      int
	DistinctCustomers int
	StatusCounts      map[string]int
	GrandTotal        int
}

// ZoneReport is the complete per-zone output: the ordered area summary, the
// total row, and the detailed record extract for distribution to that zone.
type ZoneReport struct {
	ZoneCode  ZoneCode
	ZoneName  string
	ZoneEmail string

	// AreaRows are ordered ascending by area code
	AreaRows []AreaSummaryRow
	TotalRow ZoneTotalRow

	// Records are the zone's exclusive detail extract, sorted by area code
	// then request ID
	Records []RequestRecord

	// Mismatches flags the report when aggregate and detail counts diverge.
	// The report is still produced; distribution is the operator's call.
	Mismatches []ReconciliationMismatch
}
