package repositories

import "github.com/fieldops/zonereport/pkg/domain/entities"

// RecordRepository provides access to the validated request record set
type RecordRepository interface {
	GetAllRecords() ([]entities.RequestRecord, error)
	GetRecordsByZone(zoneCode entities.ZoneCode) ([]entities.RequestRecord, error)
	GetZoneCodes() ([]entities.ZoneCode, error)
	LoadRecords(records []entities.RequestRecord) error
	Count() int
}
