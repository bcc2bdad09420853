package repositories

import "github.com/fieldops/zonereport/pkg/domain/entities"

// RuleRepository provides access to the status rule table
type RuleRepository interface {
	GetRuleTable() (*entities.RuleTable, error)
	LoadRules(entries []entities.RuleEntry) error
}
