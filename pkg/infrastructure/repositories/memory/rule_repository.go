package memory

import (
	"github.com/fieldops/zonereport/pkg/domain/entities"
	"github.com/fieldops/zonereport/pkg/domain/repositories"
)

// RuleRepository provides in-memory rule table storage
type RuleRepository struct {
	table *entities.RuleTable
}

// NewRuleRepository creates a new in-memory rule repository
func NewRuleRepository() *RuleRepository {
	return &RuleRepository{}
}

// Verify interface compliance
var _ repositories.RuleRepository = (*RuleRepository)(nil)

// LoadRules builds the immutable rule table from the given entries.
// A duplicate key or empty entry rejects the whole load.
func (r *RuleRepository) LoadRules(entries []entities.RuleEntry) error {
	table, err := entities.NewRuleTable(entries)
	if err != nil {
		return err
	}
	r.table = table
	return nil
}

// GetRuleTable returns the loaded rule table
func (r *RuleRepository) GetRuleTable() (*entities.RuleTable, error) {
	if r.table == nil {
		return nil, &entities.RuleTableError{Reason: "no rules loaded"}
	}
	return r.table, nil
}
