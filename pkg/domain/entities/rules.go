package entities

import (
	"strings"
)

// StatusUnmapped is the reserved final status assigned to records whose raw
// status has no rule entry. It is never a valid rule target.
const StatusUnmapped = "Unmapped"

// RuleEntry is one (raw status -> final status) mapping row
type RuleEntry struct {
	RawStatus   string
	FinalStatus string
}

// RuleTable maps raw request statuses to normalized final statuses.
// It is built once per run and never mutated afterwards. Lookups are exact
// matches on a trimmed, casefolded key.
type RuleTable struct {
	entries map[string]string
	finals  []string
}

// NewRuleTable builds an immutable rule table from the given entries.
// An empty table, an empty raw-status key, an empty final status, or a
// duplicate raw-status key rejects the whole load with a RuleTableError.
func NewRuleTable(entries []RuleEntry) (*RuleTable, error) {
	if len(entries) == 0 {
		return nil, &RuleTableError{Reason: "rule table is empty"}
	}

	table := &RuleTable{
		entries: make(map[string]string, len(entries)),
	}
	seenFinals := make(map[string]bool, len(entries))

	for _, entry := range entries {
		key := normalizeStatusKey(entry.RawStatus)
		final := strings.TrimSpace(entry.FinalStatus)

		if key == "" {
			return nil, &RuleTableError{Reason: "empty raw-status key"}
		}
		if final == "" {
			return nil, &RuleTableError{Reason: "empty final status", Key: entry.RawStatus}
		}
		if final == StatusUnmapped {
			return nil, &RuleTableError{Reason: "final status collides with the reserved sentinel", Key: entry.RawStatus}
		}
		if _, exists := table.entries[key]; exists {
			return nil, &RuleTableError{Reason: "duplicate raw-status key", Key: entry.RawStatus}
		}

		table.entries[key] = final
		if !seenFinals[final] {
			seenFinals[final] = true
			table.finals = append(table.finals, final)
		}
	}

	return table, nil
}

// Lookup returns the final status for a raw status and whether a rule matched
func (t *RuleTable) Lookup(rawStatus string) (string, bool) {
	final, ok := t.entries[normalizeStatusKey(rawStatus)]
	return final, ok
}

// FinalStatuses returns the distinct final statuses in rule-table order.
// This is the declared column order for summary output; the Unmapped sentinel
// is not included.
func (t *RuleTable) FinalStatuses() []string {
	finals := make([]string, len(t.finals))
	copy(finals, t.finals)
	return finals
}

// Len returns the number of rule entries
func (t *RuleTable) Len() int {
	return len(t.entries)
}

func normalizeStatusKey(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
