package services

import (
	"github.com/shopspring/decimal"

	"github.com/fieldops/zonereport/pkg/domain/entities"
)

// Reconciler cross-validates a zone's aggregate rows against its detailed
// partition. A divergence is always reported; ExceedsTolerance tells the
// operator whether it passed the configured threshold. Checking is
// report-only: one zone's mismatch never stops another zone's run.
type Reconciler struct {
	// tolerancePercent is the allowed divergence as a percentage of the
	// expected count. Zero means strict equality.
	tolerancePercent decimal.Decimal
}

// NewReconciler creates a reconciler with the given percentage tolerance
func NewReconciler(tolerancePercent decimal.Decimal) *Reconciler {
	return &Reconciler{tolerancePercent: tolerancePercent}
}

// NewStrictReconciler creates a reconciler that flags any divergence
func NewStrictReconciler() *Reconciler {
	return NewReconciler(decimal.Zero)
}

// Check verifies that the zone total row's grand total equals the partition
// record count, and that each area row's status buckets sum to the row total
// and the row total matches the area's record count.
func (r *Reconciler) Check(report entities.ZoneReport) []entities.ReconciliationMismatch {
	var mismatches []entities.ReconciliationMismatch

	detailCount := len(report.Records)
	if report.TotalRow.GrandTotal != detailCount {
		mismatches = append(mismatches, entities.ReconciliationMismatch{
			ZoneCode:         report.ZoneCode,
			Expected:         detailCount,
			Actual:           report.TotalRow.GrandTotal,
			ExceedsTolerance: r.exceeds(detailCount, report.TotalRow.GrandTotal),
		})
	}

	areaCounts := make(map[entities.AreaCode]int)
	for _, record := range report.Records {
		areaCounts[record.AreaCode]++
	}

	for _, row := range report.AreaRows {
		bucketSum := 0
		for _, count := range row.StatusCounts {
			bucketSum += count
		}
		if bucketSum != row.Total {
			mismatches = append(mismatches, entities.ReconciliationMismatch{
				ZoneCode:         report.ZoneCode,
				AreaCode:         row.AreaCode,
				Expected:         row.Total,
				Actual:           bucketSum,
				ExceedsTolerance: r.exceeds(row.Total, bucketSum),
			})
		}
		if expected := areaCounts[row.AreaCode]; row.Total != expected {
			mismatches = append(mismatches, entities.ReconciliationMismatch{
				ZoneCode:         report.ZoneCode,
				AreaCode:         row.AreaCode,
				Expected:         expected,
				Actual:           row.Total,
				ExceedsTolerance: r.exceeds(expected, row.Total),
			})
		}
	}

	return mismatches
}

// exceeds reports whether |expected-actual| is over the tolerance, expressed
// as a percentage of the expected count. With a zero expected count any
// divergence exceeds.
func (r *Reconciler) exceeds(expected, actual int) bool {
	diff := expected - actual
	if diff < 0 {
		diff = -diff
	}
	if diff == 0 {
		return false
	}
	if expected == 0 {
		return true
	}

	divergence := decimal.NewFromInt(int64(diff)).
		Div(decimal.NewFromInt(int64(expected))).
		Mul(decimal.NewFromInt(100))
	return divergence.GreaterThan(r.tolerancePercent)
}
