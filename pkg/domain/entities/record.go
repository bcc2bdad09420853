package entities

import (
	"time"
)

// ZoneCode identifies a top-level zone territory
type ZoneCode string

// AreaCode identifies an area territory nested under a zone
type AreaCode string

// RequestID identifies a single sample request
type RequestID string

// RequestRecord is one request row from the master tracker.
// Records are immutable once validated; the pipeline only reads them.
type RequestRecord struct {
	RequestID RequestID

	ZoneCode  ZoneCode
	ZoneName  string
	ZoneEmail string

	AreaCode  AreaCode
	AreaName  string
	AreaEmail string

	RepEmail string
	RepHQ    string

	CustomerCode string
	CustomerName string

	ItemCode     string
	SKU          string
	RequestedQty int

	RequestDate  *time.Time
	DispatchDate *time.Time
	DeliveryDate *time.Time

	RawStatus   string
	FinalStatus string
	RTOReason   string
}

// ExclusionReason explains why a record was left out of every partition
type ExclusionReason string

const (
	// ExclusionMissingKeyField marks rows dropped because a key identifier was empty
	ExclusionMissingKeyField ExclusionReason = "missing_key_field"
	// ExclusionBadZonePrefix marks rows whose zone code fails the top-level naming convention
	ExclusionBadZonePrefix ExclusionReason = "bad_zone_prefix"
)

// ExcludedRow pairs a rejected record with the reason it was rejected.
// The set of excluded rows plus the union of all partitions must equal the
// full input; nothing is dropped without an entry here.
type ExcludedRow struct {
	RowNumber int
	Record    RequestRecord
	Reason    ExclusionReason
	Detail    string
}
