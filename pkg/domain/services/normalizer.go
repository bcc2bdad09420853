package services

import (
	"github.com/fieldops/zonereport/pkg/domain/entities"
)

// StatusNormalizer applies the rule table to every record's raw status.
// Normalization is a pure function of (record, rule table): no ordering or
// time dependence, so repeated runs over the same input are identical.
type StatusNormalizer struct {
	rules *entities.RuleTable
}

// NewStatusNormalizer creates a normalizer bound to an immutable rule table
func NewStatusNormalizer(rules *entities.RuleTable) *StatusNormalizer {
	return &StatusNormalizer{rules: rules}
}

// Normalize returns a copy of the records with FinalStatus populated, plus a
// count of unmatched raw statuses keyed by their cleaned value. Records with
// no matching rule stay in the run under the Unmapped sentinel; they are
// counted here for operator review, never dropped.
func (n *StatusNormalizer) Normalize(records []entities.RequestRecord) ([]entities.RequestRecord, map[string]int) {
	normalized := make([]entities.RequestRecord, len(records))
	unmapped := make(map[string]int)

	for i, record := range records {
		final, ok := n.rules.Lookup(record.RawStatus)
		if !ok {
			final = entities.StatusUnmapped
			unmapped[record.RawStatus]++
		}
		record.FinalStatus = final
		normalized[i] = record
	}

	return normalized, unmapped
}
